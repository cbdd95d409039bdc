package watcher

import (
	"fmt"
	"reflect"
	"time"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/core"
	"go.uber.org/zap"
)

type state int

const WatcherTaskName = "watcher"

const (
	POLLING state = iota
	SUB_IDLE
	IDLE
)

const (
	DEFAULT_DIR           = "./shares/jobs"
	DEFAULT_COUNT         = 10
	DEFAULT_NORMAL_PERIOD = time.Duration(10) * time.Second
	DEFAULT_IDLE_PERIOD   = time.Duration(60) * time.Second
	DEFAULT_MAX_RETRY     = 3
)

func (s state) String() string {
	switch s {
	case POLLING:
		return "POLLING"
	case SUB_IDLE:
		return "SUB_IDLE"
	case IDLE:
		return "IDLE"
	default:
		return "UNKNOWN"
	}
}

// Watcher polls a directory for submitted problem files and hands the
// decoded jobs to the scheduler. It slows down to the idle period when the
// directory stays empty and speeds back up on the first new submission.
type Watcher struct {
	Dir          string        `toml:"dir"`
	Count        int           `toml:"count"`
	NormalPeriod time.Duration `toml:"normal_period"`
	IdlePeriod   time.Duration `toml:"idle_period"`
	MaxRetry     int           `toml:"max_retry"`

	jobSource

	currentPeriod time.Duration
	noJobsCount   int
	state         state

	sysCom *core.SystemComponents
}

func (w *Watcher) GetEmptyParams() interface{} {
	return &Watcher{}
}

func (w *Watcher) SetParams(params interface{}) error {
	if params == nil {
		msg := "no params for watcher"
		zap.L().Debug(msg)
		return nil
	}
	wp, ok := params.(map[string]interface{})
	if !ok {
		msg := fmt.Errorf("failed to set params for watcher/params: %s", params)
		zap.L().Error(msg.Error())
		return msg
	}
	zap.L().Debug(fmt.Sprintf("Set params for watcher: %v", wp))
	setField[string]("dir", &w.Dir, wp, defaultDir())
	setField[int]("count", &w.Count, wp, DEFAULT_COUNT)
	setField[int]("max_retry", &w.MaxRetry, wp, DEFAULT_MAX_RETRY)

	setDurationField("normal_period", &w.NormalPeriod, wp, DEFAULT_NORMAL_PERIOD)
	setDurationField("idle_period", &w.IdlePeriod, wp, DEFAULT_IDLE_PERIOD)

	return nil
}

func defaultDir() string {
	if core.CurrentInfo != nil && core.CurrentInfo.Conf != nil && core.CurrentInfo.Conf.WatchDir != "" {
		return core.CurrentInfo.Conf.WatchDir
	}
	return DEFAULT_DIR
}

func setField[T string | int | bool](key string, target *T, wp map[string]interface{}, defaultVal T) {
	if v, ok := wp[key]; ok && !reflect.ValueOf(v).IsZero() {
		*target = v.(T)
		return
	}
	zap.L().Debug(fmt.Sprintf("Set default value for %s: %v", key, defaultVal))
	*target = defaultVal
}

func setDurationField(key string, target *time.Duration, wp map[string]interface{}, defaultVal time.Duration) {
	if v, ok := wp[key]; ok && !reflect.ValueOf(v).IsZero() {
		dur, err := time.ParseDuration(v.(string))
		if err != nil {
			zap.L().Error(fmt.Sprintf("failed to parse duration for %s/reason:%s", key, err))
		}
		*target = dur
		return
	}
	zap.L().Debug(fmt.Sprintf("Set default value for %s: %v", key, defaultVal))
	*target = defaultVal
}

func (w *Watcher) RequirePeriodUpdate() (bool, time.Duration) {
	return true, w.currentPeriod
}

type jobSource interface {
	request() ([]core.Job, error)
}

func (w *Watcher) Setup() error {
	source, err := newFileSource(
		&fileSourceParams{
			dir:   w.Dir,
			count: w.Count,
		})
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to set file source/reason:%s", err))
		return err
	}
	zap.L().Info(fmt.Sprintf("watching %s for submitted problems", w.Dir))
	w.jobSource = source
	w.currentPeriod = w.NormalPeriod
	w.noJobsCount = 0
	w.state = POLLING
	w.sysCom = core.GetSystemComponents()
	return nil
}

func (w *Watcher) Task() {
	zap.L().Debug("Watcher is getting jobs")
	jobsNum, err := w.getJobs()
	if err != nil || jobsNum == 0 {
		if err != nil {
			zap.L().Info(fmt.Sprintf("Failed to get jobs. NoJobsCount:%d, Reason:%s",
				w.noJobsCount, err))
		} else {
			zap.L().Debug(fmt.Sprintf("Get no jobs. NoJobsCount:%d", w.noJobsCount))
		}
		switch w.state {
		case POLLING:
			w.noJobsCount = 1
			w.updateState(SUB_IDLE)
			zap.L().Debug(fmt.Sprintf("Transition to sub idle mode. Retry after %s", w.NormalPeriod))
			return
		case SUB_IDLE:
			w.noJobsCount++
			if w.noJobsCount < w.MaxRetry {
				zap.L().Debug(fmt.Sprintf("Retry after %s", w.NormalPeriod))
			} else {
				zap.L().Info("Reached max retry. Transition to idle mode")
				w.noJobsCount = 0
				w.updateState(IDLE)
				w.currentPeriod = w.IdlePeriod
			}
		case IDLE:
			zap.L().Debug(fmt.Sprintf("Already in idle mode. Retry after idle period %s", w.IdlePeriod))
		default:
			zap.L().Error(fmt.Sprintf("Unknown state %d", int(w.state)))
		}
	} else { // got jobs
		switch w.state {
		case POLLING:
			zap.L().Debug("keep polling")
		case SUB_IDLE:
			zap.L().Info("Transition to polling mode from sub_idle state")
			w.updateState(POLLING)
			w.noJobsCount = 0
		case IDLE:
			zap.L().Info("Transition to polling mode from idle state")
			w.currentPeriod = w.NormalPeriod
			w.updateState(POLLING)
			w.noJobsCount = 0
		default:
			zap.L().Error(fmt.Sprintf("Unknown state %d", int(w.state)))
		}
	}
}

func (w *Watcher) Cleanup() {
	zap.L().Info("Watcher is cleaning up")
}

func (w *Watcher) request() ([]core.Job, error) {
	return w.jobSource.request()
}

func (w *Watcher) getJobs() (int, error) {
	if err := passPollingCondition(); err != nil {
		zap.L().Info(fmt.Sprintf("not get jobs. reason:%s", err))
		return 0, err
	}
	jobs, err := w.request()
	if err != nil {
		zap.L().Error(fmt.Sprintf("Failed to get jobs. Reason:%s", err))
		return 0, err
	}
	zap.L().Debug(fmt.Sprintf("get %d jobs", len(jobs)))
	handlingJobsNum := 0
	for _, job := range jobs {
		jd := job.JobData()
		zap.L().Debug(fmt.Sprintf("Handling a job. Job ID:%s created:%s", jd.ID, jd.Created))
		w.sysCom.Invoke(
			func(s core.Scheduler) error {
				s.HandleJob(job)
				return nil
			})
		handlingJobsNum++
	}
	return handlingJobsNum, nil
}

func (w *Watcher) updateState(newState state) {
	w.state = newState
}

func passPollingCondition() error {
	s := core.GetSystemComponents()
	if s.IsQueueOverRefillThreshold() {
		return fmt.Errorf("queue size is over refill-threshold. current queue size:%d",
			s.GetCurrentQueueSize())
	}
	zap.L().Debug(fmt.Sprintf("queue is under refill-threshold. current queue size:%d",
		s.GetCurrentQueueSize()))
	return nil
}
