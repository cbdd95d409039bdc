//go:build unit
// +build unit

package core

import (
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
)

func TestResultToString(t *testing.T) {
	tests := []struct {
		name       string
		result     *Result
		wantString string
	}{
		{
			name:   "empty result",
			result: NewResult(),
			wantString: heredoc.Doc(`
			  {
			    "counts": {},
			    "expectation": 0,
			    "best_bitstring": "",
			    "best_value": 0,
			    "optimal_theta": null,
			    "iterations": 0,
			    "converged": false,
			    "message": "",
			    "execution_time": 0
			  }
			`),
		},
		{
			name:   "message in result",
			result: messageInResult(),
			wantString: heredoc.Doc(`
			  {
			    "counts": {},
			    "expectation": 0,
			    "best_bitstring": "",
			    "best_value": 0,
			    "optimal_theta": null,
			    "iterations": 0,
			    "converged": false,
			    "message": "dummy message",
			    "execution_time": 0
			  }
			`),
		},
		{
			name:   "counts in result",
			result: countsInResult(),
			wantString: heredoc.Doc(`
			  {
			    "counts": {
			      "0011": 20,
			      "1100": 10
			    },
			    "expectation": 0,
			    "best_bitstring": "",
			    "best_value": 0,
			    "optimal_theta": null,
			    "iterations": 0,
			    "converged": false,
			    "message": "",
			    "execution_time": 0
			  }
			`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act := tt.result.ToString()
			assert.Equal(t, tt.wantString, act)
		})
	}
}

func messageInResult() *Result {
	r := NewResult()
	r.Message = "dummy message"
	return r
}

func countsInResult() *Result {
	r := NewResult()
	r.Counts = make(Counts)
	r.Counts["1100"] = uint32(10)
	r.Counts["0011"] = uint32(20)
	return r
}

func TestCountsTotalShots(t *testing.T) {
	c := Counts{"1100": 600, "1010": 400}
	assert.Equal(t, uint32(1000), c.TotalShots())
	assert.Equal(t, uint32(0), Counts{}.TotalShots())
}

func TestCloneJobData(t *testing.T) {
	tests := []struct {
		name    string
		jobData *JobData
	}{
		{
			name: "no properties",
			jobData: &JobData{
				ID:      "dummy_id",
				Shots:   1000,
				Spec:    &ProblemSpec{},
				Result:  NewResult(),
				Created: strfmt.NewDateTime(),
				Ended:   strfmt.NewDateTime(),
			},
		},
		{
			name: "with properties",
			jobData: &JobData{
				ID:    "dummy_id",
				Shots: 1000,
				Spec: &ProblemSpec{
					N:         4,
					B:         2,
					Layers:    1,
					MixerKind: "xy",
					Topology:  "ring",
					Q:         [][]float64{{1, 0.5}, {0.5, 1}},
				},
				Result: countsInResult(),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clonedJobData := tt.jobData.Clone()

			assert.False(t, tt.jobData == clonedJobData)
			assert.Equal(t, tt.jobData.ID, clonedJobData.ID)
			assert.Equal(t, tt.jobData.Shots, clonedJobData.Shots)
			assert.Equal(t, tt.jobData.Created, clonedJobData.Created)
			assert.Equal(t, tt.jobData.Ended, clonedJobData.Ended)
			assert.False(t, tt.jobData.Result == clonedJobData.Result)
			if tt.jobData.Spec != nil {
				assert.False(t, tt.jobData.Spec == clonedJobData.Spec)
				assert.Equal(t, tt.jobData.Spec, clonedJobData.Spec)
			}
		})
	}
}

func TestToStatus(t *testing.T) {
	for _, st := range []Status{SUBMITTED, READY, RUNNING, SUCCEEDED, FAILED, CANCELLED} {
		got, err := ToStatus(st.String())
		assert.Nil(t, err)
		assert.Equal(t, st, got)
	}
	_, err := ToStatus("bogus")
	assert.NotNil(t, err)
}
