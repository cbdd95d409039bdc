//go:build unit
// +build unit

package scheduler

import (
	"fmt"
	"sync"
	"testing"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/core"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var jm *core.JobManager

const FAILED_IN_PRE_PROCESS_JOB = "failed_in_pre_process_job"
const FAILED_IN_PROCESS_JOB = "failed_in_process_job"
const FAILED_IN_POST_PROCESS_JOB = "failed_in_post_process_job"
const SUCCESS_IN_POST_PROCESS_JOB = "success_in_post_process_job"
const PANIC_IN_PROCESS_JOB = "panic_in_process_job"

func TestMain(m *testing.M) {
	jm, _ = core.NewJobManager(
		&failedInPreProcessJob{},
		&failedInProcessJob{},
		&failedInPostProcessJob{},
		&successInPostProcessJob{},
		&panicInProcessJob{},
	)
	m.Run()
}

func TestHandleJob(t *testing.T) {
	nsc := &RunScheduler{}
	s := core.SCWithScheduler(nsc)
	defer s.TearDown()
	err := s.StartContainer()
	assert.Nil(t, err)

	tests := []struct {
		name            string
		job             core.Job
		wantStatusSlice []core.Status
	}{
		{
			name: "handle run finishing in post-process in ready state",
			job:  testJob(t, SUCCESS_IN_POST_PROCESS_JOB, core.READY),
			wantStatusSlice: []core.Status{
				core.READY,
				core.RUNNING,
				core.SUCCEEDED,
			},
		},
		{
			name: "handle run finishing in post-process in failed state",
			job:  testJob(t, SUCCESS_IN_POST_PROCESS_JOB, core.FAILED),
			wantStatusSlice: []core.Status{
				core.FAILED,
			},
		},
		{
			name: "handle run failed in pre-processing in ready state",
			job:  testJob(t, FAILED_IN_PRE_PROCESS_JOB, core.READY),
			wantStatusSlice: []core.Status{
				core.READY,
				core.FAILED,
			},
		},
		{
			name: "handle run failed in pre-processing in failed state",
			job:  testJob(t, FAILED_IN_PRE_PROCESS_JOB, core.FAILED),
			wantStatusSlice: []core.Status{
				core.FAILED,
			},
		},
		{
			name: "handle run failed in processing with pre-processing",
			job:  testJob(t, FAILED_IN_PROCESS_JOB, core.READY),
			wantStatusSlice: []core.Status{
				core.READY,
				core.RUNNING,
				core.FAILED,
			},
		},
		{
			name: "handle run failed in post-processing with pre-processing",
			job:  testJob(t, FAILED_IN_POST_PROCESS_JOB, core.READY),
			wantStatusSlice: []core.Status{
				core.READY,
				core.RUNNING,
				core.FAILED,
			},
		},
		{
			name: "recover from panic in processing",
			job:  testJob(t, PANIC_IN_PROCESS_JOB, core.READY),
			wantStatusSlice: []core.Status{
				core.READY,
				core.RUNNING,
				core.FAILED, // the run panics, so it should end in FAILED
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobID := tt.job.JobData().ID
			var wg sync.WaitGroup
			wg.Add(1)
			nsc.HandleJobForTest(tt.job, &wg)
			wg.Wait()
			assert.Equal(
				t,
				tt.wantStatusSlice,
				nsc.statusManager.Get(jobID),
				fmt.Sprintf(
					"expected status slice:%s\n actual status slice:%s\n",
					printStatusSlice(tt.wantStatusSlice),
					printStatusSlice(nsc.statusManager.Get(jobID))))
		})
	}
}

func testJob(t *testing.T, jobType string, firstStatus core.Status) core.Job {
	jd := core.NewJobData()
	jd.ID = uuid.NewString()
	jd.Shots = 1000
	jd.Status = firstStatus
	jd.JobType = jobType
	jc, err := core.NewJobContext()
	assert.Nil(t, err)
	j, err := jm.NewJobFromJobData(jd, jc)
	assert.Nil(t, err)
	return j
}

func printStatusSlice(ss []core.Status) string {
	s := "[\n"
	for _, status := range ss {
		s += fmt.Sprintf("  %v,\n", status)
	}
	return s + "]"
}

type failedInPreProcessJob struct {
	*core.UnimplementedJob
}

func (j *failedInPreProcessJob) New(jd *core.JobData, jc *core.JobContext) core.Job {
	u := &core.UnimplementedJob{}
	return &failedInPreProcessJob{
		UnimplementedJob: u.New(jd, jc).(*core.UnimplementedJob),
	}
}

func (j *failedInPreProcessJob) PreProcess() {
	j.JobData().Status = core.FAILED
}

func (j *failedInPreProcessJob) JobType() string {
	return FAILED_IN_PRE_PROCESS_JOB
}

type failedInProcessJob struct {
	*core.UnimplementedJob
}

func (j *failedInProcessJob) New(jd *core.JobData, jc *core.JobContext) core.Job {
	u := &core.UnimplementedJob{}
	return &failedInProcessJob{
		UnimplementedJob: u.New(jd, jc).(*core.UnimplementedJob),
	}
}

func (j *failedInProcessJob) Process() {
	j.JobData().Status = core.FAILED
}

func (j *failedInProcessJob) JobType() string {
	return FAILED_IN_PROCESS_JOB
}

type failedInPostProcessJob struct {
	*core.UnimplementedJob
}

func (j *failedInPostProcessJob) New(jd *core.JobData, jc *core.JobContext) core.Job {
	u := &core.UnimplementedJob{}
	return &failedInPostProcessJob{
		UnimplementedJob: u.New(jd, jc).(*core.UnimplementedJob),
	}
}

func (j *failedInPostProcessJob) PostProcess() {
	j.JobData().Status = core.FAILED
}

func (j *failedInPostProcessJob) JobType() string {
	return FAILED_IN_POST_PROCESS_JOB
}

type successInPostProcessJob struct {
	*core.UnimplementedJob
}

func (j *successInPostProcessJob) New(jd *core.JobData, jc *core.JobContext) core.Job {
	u := &core.UnimplementedJob{}
	return &successInPostProcessJob{
		UnimplementedJob: u.New(jd, jc).(*core.UnimplementedJob),
	}
}

func (j *successInPostProcessJob) PostProcess() {
	j.JobData().Status = core.SUCCEEDED
}

func (j *successInPostProcessJob) JobType() string {
	return SUCCESS_IN_POST_PROCESS_JOB
}

type panicInProcessJob struct {
	*core.UnimplementedJob
}

func (j *panicInProcessJob) New(jd *core.JobData, jc *core.JobContext) core.Job {
	u := &core.UnimplementedJob{}
	return &panicInProcessJob{
		UnimplementedJob: u.New(jd, jc).(*core.UnimplementedJob),
	}
}

func (j *panicInProcessJob) Process() {
	panic("panic in process")
}

func (j *panicInProcessJob) JobType() string {
	return PANIC_IN_PROCESS_JOB
}
