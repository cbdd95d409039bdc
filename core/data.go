package core

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	jsoniter "github.com/json-iterator/go"
	"github.com/mohae/deepcopy"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

type Status int // Status of an optimization job in the engine.
type Counts map[string]uint32
type Distribution map[string]float64

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

func (c Counts) String() string {
	st, err := jsonIter.Marshal(c)
	if err != nil {
		zap.L().Error("Failed to marshal core.Counts")
		return ""
	}
	return string(st)
}

// TotalShots sums the observed counts.
func (c Counts) TotalShots() uint32 {
	var total uint32
	for _, v := range c {
		total += v
	}
	return total
}

func ToStatus(s string) (Status, error) {
	switch s {
	case "submitted":
		return SUBMITTED, nil
	case "ready":
		return READY, nil
	case "running":
		return RUNNING, nil
	case "succeeded":
		return SUCCEEDED, nil
	case "failed":
		return FAILED, nil
	case "cancelled":
		return CANCELLED, nil
	default:
		return 0, fmt.Errorf("unknown status: %s", s)
	}
}

const (
	SUBMITTED Status = iota // Accepted but not yet handled.
	READY                   // Validated and waiting in the queue.
	RUNNING                 // The variational loop is being driven.
	SUCCEEDED               // Finished successfully.
	FAILED                  // Finished with failure.
	CANCELLED               // Finished with cancellation.
)

func (s Status) String() string {
	switch s {
	case SUBMITTED:
		return "submitted"
	case READY:
		return "ready"
	case RUNNING:
		return "running"
	case SUCCEEDED:
		return "succeeded"
	case FAILED:
		return "failed"
	case CANCELLED:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ProblemSpec is the full configuration of one optimization job: the QUBO
// handed over by the cost-model builder plus the algorithm choices. It is
// built once per job and never mutated afterwards.
type ProblemSpec struct {
	N             int         `json:"n" toml:"n"`
	B             int         `json:"b" toml:"b"`
	Layers        int         `json:"layers" toml:"layers"`
	MixerKind     string      `json:"mixer_kind" toml:"mixer_kind"`
	Topology      string      `json:"topology" toml:"topology"`
	Edges         [][2]int    `json:"edges,omitempty" toml:"edges"`
	InitialState  string      `json:"initial_state" toml:"initial_state"`
	Restarts      int         `json:"restarts" toml:"restarts"`
	MaxIter       int         `json:"max_iter" toml:"max_iter"`
	Tolerance     float64     `json:"tolerance" toml:"tolerance"`
	PostSelection string      `json:"post_selection" toml:"post_selection"`
	Q             [][]float64 `json:"q" toml:"q"`
	Linear        []float64   `json:"linear,omitempty" toml:"linear"`
	ConstOffset   float64     `json:"const_offset" toml:"const_offset"`
}

type Result struct {
	Counts        Counts        `json:"counts"`
	Expectation   float64       `json:"expectation"`
	BestBitstring string        `json:"best_bitstring"`
	BestValue     float64       `json:"best_value"`
	OptimalTheta  []float64     `json:"optimal_theta"`
	Iterations    int           `json:"iterations"`
	Converged     bool          `json:"converged"`
	Trace         []float64     `json:"trace,omitempty"`
	Message       string        `json:"message"`
	ExecutionTime time.Duration `json:"execution_time"`
}

type JobData struct {
	ID      string
	Status  Status
	Shots   int
	Spec    *ProblemSpec
	Result  *Result
	JobType string
	Created strfmt.DateTime
	Ended   strfmt.DateTime
}

func (jd *JobData) Clone() *JobData {
	c := deepcopy.Copy(jd).(*JobData)
	c.Created = *jd.Created.DeepCopy()
	c.Ended = *jd.Ended.DeepCopy()
	return c
}

func NewResult() *Result {
	return &Result{
		Counts: make(Counts),
	}
}

func NewJobData() *JobData {
	return &JobData{
		Result:  NewResult(),
		Created: strfmt.DateTime(time.Now()),
	}
}

func (r *Result) ToString() string {
	st, err := jsonIter.Marshal(r)
	if err != nil {
		zap.L().Error("Failed to marshal core.Result")
		return ""
	}
	st = pretty.Pretty(st)
	return string(st)
}
