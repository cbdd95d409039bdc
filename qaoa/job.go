package qaoa

import (
	"fmt"
	"math"
	"time"

	"github.com/go-openapi/strfmt"
	"go.uber.org/zap"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/ansatz"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/circuit"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/common"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/core"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/mixer"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/optimizer"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/postsel"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/qubo"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/state"
)

const (
	QAOA_JOB         = core.QAOA_JOB
	QAOA_SETTING_KEY = "qaoa"

	DEFAULT_RESTARTS  = 3
	DEFAULT_MAX_ITER  = 200
	DEFAULT_TOLERANCE = 1e-6
)

type QAOASetting struct {
	Restarts  int     `toml:"restarts"`
	MaxIter   int     `toml:"max_iter"`
	Tolerance float64 `toml:"tolerance"`
}

func NewQAOASetting() QAOASetting {
	return QAOASetting{
		Restarts:  DEFAULT_RESTARTS,
		MaxIter:   DEFAULT_MAX_ITER,
		Tolerance: DEFAULT_TOLERANCE,
	}
}

// OptimizeJob runs one variational portfolio optimization: PreProcess builds
// every circuit ingredient eagerly so a bad configuration fails before any
// sampling, Process drives the optimizer loop against the evaluator, and
// PostProcess selects the best feasible bitstring from the final counts.
type OptimizeJob struct {
	setting    QAOASetting
	jobData    *core.JobData
	jobContext *core.JobContext

	problem   *qubo.Problem
	ising     *qubo.IsingModel
	mixerSpec *mixer.Spec
	prep      circuit.StatePrep
	policy    postsel.Policy
	layers    int

	finalCounts core.Counts
	finished    bool
}

func (j *OptimizeJob) New(jd *core.JobData, jc *core.JobContext) core.Job {
	var setting QAOASetting
	s, ok := core.GetComponentSetting(QAOA_SETTING_KEY)
	if !ok {
		zap.L().Debug("qaoa setting is not found, using defaults")
		setting = NewQAOASetting()
	} else {
		mapped, ok := s.(map[string]interface{})
		if !ok {
			zap.L().Debug("qaoa setting is not set")
			setting = NewQAOASetting()
		} else {
			setting = NewQAOASetting()
			if r, ok := mapped["restarts"].(int64); ok {
				setting.Restarts = int(r)
			}
			if m, ok := mapped["max_iter"].(int64); ok {
				setting.MaxIter = int(m)
			}
			if tol, ok := mapped["tolerance"].(float64); ok {
				setting.Tolerance = tol
			}
		}
	}
	return &OptimizeJob{
		setting:    setting,
		jobData:    jd,
		jobContext: jc,
		finished:   false,
	}
}

func (j *OptimizeJob) PreProcess() {
	if err := j.preProcessImpl(); err != nil {
		zap.L().Error(fmt.Sprintf("failed to pre-process a job(%s). Reason:%s",
			j.JobData().ID, err.Error()))
		core.SetFailureWithError(j, err)
		j.finished = true
		return
	}
	return
}

func (j *OptimizeJob) preProcessImpl() (err error) {
	err = nil
	jd := j.JobData()
	container := core.GetSystemComponents().Container
	err = container.Invoke(
		func(d core.DBManager) error {
			if d.ExistInInnerJobIDSet(jd.ID) {
				return core.ErrorJobIDConflict
			}
			return nil
		})
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to check the existence of a job(%s). Reason:%s",
			jd.ID, err.Error()))
		return
	}
	err = container.Invoke(
		func(d core.DBManager) error {
			return d.Insert(j)
		})
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to insert a job(%s). Reason:%s", jd.ID, err.Error()))
		return
	}
	if err = j.buildIngredients(jd.Spec); err != nil {
		return
	}
	_ = container.Invoke(
		func(d core.DBManager) error {
			d.AddToInnerJobIDSet(jd.ID)
			return nil
		})
	return
}

// buildIngredients turns the problem spec into everything the variational
// loop needs. All validation happens here, before any circuit runs.
func (j *OptimizeJob) buildIngredients(spec *core.ProblemSpec) error {
	if spec == nil {
		return fmt.Errorf("problem spec is empty")
	}
	if spec.Layers <= 0 {
		return fmt.Errorf("layers(%d) must be greater than 0", spec.Layers)
	}
	j.layers = spec.Layers

	problem, err := qubo.NewProblem(spec.Q, spec.Linear, spec.ConstOffset, spec.B)
	if err != nil {
		return err
	}
	if problem.N != spec.N {
		return fmt.Errorf("QUBO size(%d) does not match declared size(%d)", problem.N, spec.N)
	}
	j.problem = problem
	j.ising = problem.ToIsing()

	kind, err := mixer.ToKind(spec.MixerKind)
	if err != nil {
		return err
	}
	edges, err := topologyEdges(spec, kind)
	if err != nil {
		return err
	}
	j.mixerSpec, err = mixer.Build(spec.N, kind, edges)
	if err != nil {
		return err
	}

	variant, err := state.ToVariant(spec.InitialState)
	if err != nil {
		return err
	}
	j.prep, err = state.Select(spec.N, spec.B, kind, variant)
	if err != nil {
		return err
	}

	j.policy, err = postsel.ToPolicy(spec.PostSelection)
	if err != nil {
		return err
	}
	zap.L().Debug(fmt.Sprintf("built ingredients for job(%s)/mixer:%s/prep:%s/layers:%d",
		j.jobData.ID, kind, j.prep.Kind, j.layers))
	return nil
}

func topologyEdges(spec *core.ProblemSpec, kind mixer.Kind) ([]mixer.Edge, error) {
	if kind == mixer.KindX {
		if spec.Topology != "" && spec.Topology != "none" {
			return nil, fmt.Errorf("x mixer does not take a topology, got %q", spec.Topology)
		}
		return nil, nil
	}
	switch spec.Topology {
	case "", "ring":
		return mixer.RingEdges(spec.N), nil
	case "complete":
		return mixer.CompleteEdges(spec.N), nil
	case "custom":
		edges := make([]mixer.Edge, len(spec.Edges))
		for i, e := range spec.Edges {
			edges[i] = mixer.Edge{I: e[0], J: e[1]}
		}
		return edges, nil
	default:
		return nil, fmt.Errorf("unknown topology %q", spec.Topology)
	}
}

func (j *OptimizeJob) Process() {
	if j.IsFinished() {
		return
	}
	start := time.Now()
	if err := j.processImpl(); err != nil {
		zap.L().Error(fmt.Sprintf("failed to process a job(%s). Reason:%s",
			j.JobData().ID, err.Error()))
		core.SetFailureWithError(j, err)
		j.finished = true
		return
	}
	j.jobData.Result.ExecutionTime = time.Since(start)
	zap.L().Debug(fmt.Sprintf("finished to process a job(%s)/status:%s",
		j.JobData().ID, j.JobData().Status))
}

func (j *OptimizeJob) processImpl() error {
	c := core.GetSystemComponents().Container
	jd := j.jobData
	jd.Status = core.RUNNING

	var ev core.Evaluator
	if err := c.Invoke(func(e core.Evaluator) error {
		ev = e
		return nil
	}); err != nil {
		return err
	}

	objective := func(theta []float64) (float64, error) {
		sched, err := j.buildSchedule(theta)
		if err != nil {
			return 0, err
		}
		counts, err := ev.Sample(sched, jd.Shots)
		if err != nil {
			return 0, err
		}
		return j.energy(counts)
	}

	seed := core.GetSystemComponents().GetEngineInfo().Seed
	loop, err := optimizer.New(objective, optimizer.Options{
		Dim:       2 * j.layers,
		Restarts:  j.restarts(),
		MaxIter:   j.maxIter(),
		Tolerance: j.tolerance(),
		Seed:      seed,
	})
	if err != nil {
		return err
	}
	outcome, err := loop.Run()
	if err != nil {
		return err
	}

	// one more sampling pass at the best angles to get the reported counts
	sched, err := j.buildSchedule(outcome.BestTheta)
	if err != nil {
		return err
	}
	counts, err := ev.Sample(sched, jd.Shots)
	if err != nil {
		return err
	}
	j.finalCounts = counts

	jd.Result.Expectation = outcome.BestValue
	jd.Result.OptimalTheta = outcome.BestTheta
	jd.Result.Iterations = outcome.Iterations
	jd.Result.Converged = outcome.Converged
	jd.Result.Trace = outcome.Trace
	zap.L().Debug(fmt.Sprintf("optimizer loop done for job(%s)/state:%s/expectation:%g",
		jd.ID, loop.State(), outcome.BestValue))
	return nil
}

func (j *OptimizeJob) buildSchedule(theta []float64) (*circuit.Schedule, error) {
	return ansatz.Build(j.ising, j.mixerSpec, j.prep, ansatz.FromFlat(theta))
}

// energy is the sample mean of the QUBO objective over measured bitstrings.
func (j *OptimizeJob) energy(counts core.Counts) (float64, error) {
	total := counts.TotalShots()
	if total == 0 {
		return 0, fmt.Errorf("empty counts")
	}
	sum := 0.0
	for bitstring, c := range counts {
		v, err := j.problem.EvaluateBitstring(bitstring)
		if err != nil {
			return 0, err
		}
		sum += v * float64(c)
	}
	return sum / float64(total), nil
}

func (j *OptimizeJob) PostProcess() {
	if j.IsFinished() {
		return
	}
	j.finished = true
	jd := j.jobData
	kept, err := postsel.Apply(j.finalCounts, j.problem.B, j.policy)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to post-process a job(%s). Reason:%s",
			jd.ID, err.Error()))
		core.SetFailureWithError(j, err)
		return
	}
	jd.Result.Counts = kept

	best := ""
	bestValue := math.Inf(1)
	for bitstring := range kept {
		v, err := j.problem.EvaluateBitstring(bitstring)
		if err != nil {
			core.SetFailureWithError(j, err)
			return
		}
		if v < bestValue {
			bestValue = v
			best = bitstring
		}
	}
	jd.Result.BestBitstring = best
	jd.Result.BestValue = bestValue
	jd.Status = core.SUCCEEDED
	jd.Ended = strfmt.DateTime(time.Now())
	zap.L().Info(fmt.Sprintf("job(%s) succeeded/best:%s/value:%g",
		jd.ID, best, bestValue))
	zap.L().Debug(fmt.Sprintf("result of job(%s):%s",
		jd.ID, common.PlainJsonString(jd.Result.ToString())))
	return
}

func (j *OptimizeJob) restarts() int {
	if s := j.jobData.Spec.Restarts; s > 0 {
		return s
	}
	return j.setting.Restarts
}

func (j *OptimizeJob) maxIter() int {
	if s := j.jobData.Spec.MaxIter; s > 0 {
		return s
	}
	return j.setting.MaxIter
}

func (j *OptimizeJob) tolerance() float64 {
	if s := j.jobData.Spec.Tolerance; s > 0 {
		return s
	}
	return j.setting.Tolerance
}

// IsFinished reports whether the job reached a terminal state, either
// through its own lifecycle or because another component marked its data
// FAILED (e.g. a full run queue).
func (j *OptimizeJob) IsFinished() bool {
	return j.finished ||
		j.jobData.Status == core.SUCCEEDED ||
		j.jobData.Status == core.FAILED
}

func (j *OptimizeJob) JobData() *core.JobData {
	return j.jobData
}

func (j *OptimizeJob) JobType() string {
	return QAOA_JOB
}

func (j *OptimizeJob) JobContext() *core.JobContext {
	return j.jobContext
}

func (j *OptimizeJob) UpdateJobData(jd *core.JobData) {
	j.jobData = jd
}

func (j *OptimizeJob) Clone() core.Job {
	cloned := &OptimizeJob{
		setting:    j.setting,
		jobData:    j.jobData.Clone(),
		jobContext: j.jobContext,
	}
	return cloned
}
