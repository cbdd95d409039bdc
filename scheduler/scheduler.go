package scheduler

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/core"
)

// RunScheduler feeds optimization runs through pre-processing, queues them
// for the single processing loop, and drives post-processing. Runs are
// processed one at a time; the variational loop saturates the backend, so
// there is no gain in running two at once.
type RunScheduler struct {
	queue         *RunQueue
	statusManager *statusManager
}

type queuedRun struct {
	job      core.Job
	finished *sync.WaitGroup
}

type statusManager struct {
	history map[string][]core.Status
	mu      sync.RWMutex
}

func newStatusManager() *statusManager {
	return &statusManager{
		history: make(map[string][]core.Status),
	}
}

func (s *statusManager) Update(job core.Job, status core.Status) {
	job.JobData().Status = status
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[job.JobData().ID] = append(s.history[job.JobData().ID], status)
}

func (s *statusManager) Record(job core.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[job.JobData().ID] = append(s.history[job.JobData().ID], job.JobData().Status)
}

func (s *statusManager) Delete(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.history, jobID)
}

func (s *statusManager) Get(jobID string) []core.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history[jobID]
}

func (n *RunScheduler) Setup(conf *core.Conf) error {
	n.queue = &RunQueue{}
	n.queue.Setup(conf)
	n.statusManager = newStatusManager()
	return nil
}

func (n *RunScheduler) Start() error {
	go func() {
		for {
			zap.L().Debug("checking the queue...")
			qr, err := n.queue.Dequeue(true)
			if err != nil {
				zap.L().Error(fmt.Sprintf("failed to get a run from queue. Reason:%s", err))
				continue
			}
			jid := qr.job.JobData().ID
			zap.L().Debug(fmt.Sprintf("processing run:%s", jid))
			n.statusManager.Update(qr.job, core.RUNNING)
			qr.job.JobContext().DBChan <- qr.job.Clone()
			processWithRecover(qr.job)
			zap.L().Debug(fmt.Sprintf("finished to process run(%s), status:%s", jid, qr.job.JobData().Status))
			qr.finished.Done()
		}
	}()
	return nil
}

func processWithRecover(j core.Job) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error(fmt.Sprintf("recovered from panic in run(%s). Reason:%v", j.JobData().ID, r))
			core.SetFailureWithError(j, fmt.Errorf("panic in processing:%v", r))
		}
	}()
	j.Process()
}

func (n *RunScheduler) HandleJob(j core.Job) {
	zap.L().Debug(fmt.Sprintf("starting to handle run(%s) in %s", j.JobData().ID, j.JobData().Status))
	go func() {
		defer func() {
			zap.L().Debug(fmt.Sprintf("status history run(%s): %v",
				j.JobData().ID, n.statusManager.Get(j.JobData().ID)))
			n.statusManager.Delete(j.JobData().ID)
		}()
		n.handleImpl(j)
	}()
}

func (n *RunScheduler) HandleJobForTest(j core.Job, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()
		n.handleImpl(j)
	}()
}

func (n *RunScheduler) handleImpl(j core.Job) {
	jid := j.JobData().ID
	n.statusManager.Record(j)
	if j.JobData().Status != core.READY {
		zap.L().Error(
			fmt.Sprintf("finished to handle run(%s) with unexpected status:%s", jid, j.JobData().Status.String()))
		// not write to DB
		return
	}
	zap.L().Debug(fmt.Sprintf("handling run(%s). start pre-processing", jid))
	j.PreProcess()
	j.JobContext().DBChan <- j.Clone()
	if j.IsFinished() {
		zap.L().Debug(fmt.Sprintf("finished to handle run(%s) after pre-processing", jid))
		n.statusManager.Record(j)
		return
	}
	var wg sync.WaitGroup
	wg.Add(1)
	qr := &queuedRun{
		job:      j,
		finished: &wg,
	}
	n.queue.queueChan <- qr
	wg.Wait() // wait for processing
	zap.L().Debug(fmt.Sprintf("processed run status: %s", j.JobData().Status))
	if j.IsFinished() {
		zap.L().Debug(fmt.Sprintf("finished to handle run(%s) after processing with status:%s",
			jid, j.JobData().Status.String()))
		n.statusManager.Record(j)
		j.JobContext().DBChan <- j.Clone()
		return
	}
	zap.L().Debug(fmt.Sprintf("handling run(%s). start post-processing", jid))
	j.PostProcess()
	zap.L().Debug(fmt.Sprintf("finished to handle run(%s) after post-processing with status:%s",
		jid, j.JobData().Status.String()))
	n.statusManager.Record(j)
	j.JobContext().DBChan <- j.Clone()
}

func (n *RunScheduler) GetCurrentQueueSize() int {
	return n.queue.fifo.GetLen()
}

func (n *RunScheduler) IsOverRefillThreshold() bool {
	return n.queue.refillThreshold <= n.queue.fifo.GetLen()
}
