package sim

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/circuit"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/core"
)

const BackendName = "statevector"

// SVEvaluator runs scheduled circuits on the in-process statevector backend
// and samples measurement counts from the exact distribution.
type SVEvaluator struct {
	maxQubits int
	maxShots  int
	seed      int64
	rng       *rand.Rand
}

func (e *SVEvaluator) Setup(conf *core.Conf) error {
	e.maxQubits = conf.MaxQubits
	e.maxShots = conf.MaxShots
	e.seed = conf.Seed
	if e.seed == 0 {
		e.seed = time.Now().UnixNano()
	}
	e.rng = rand.New(rand.NewSource(e.seed))
	zap.L().Info(fmt.Sprintf("statevector evaluator is ready/maxQubits:%d/maxShots:%d/seed:%d",
		e.maxQubits, e.maxShots, e.seed))
	return nil
}

func (e *SVEvaluator) GetEngineInfo() *core.EngineInfo {
	return &core.EngineInfo{
		BackendName: BackendName,
		MaxQubits:   e.maxQubits,
		MaxShots:    e.maxShots,
		Seed:        e.seed,
	}
}

func (e *SVEvaluator) Sample(sched *circuit.Schedule, shots int) (core.Counts, error) {
	sv, err := e.Run(sched)
	if err != nil {
		return nil, err
	}
	return e.sampleCounts(sv, shots)
}

// Run executes the schedule and returns the final state.
func (e *SVEvaluator) Run(sched *circuit.Schedule) (*Statevector, error) {
	if sched == nil {
		return nil, errors.Wrap(core.ErrBackend, "schedule is nil")
	}
	if sched.N > e.maxQubits {
		return nil, errors.Wrapf(core.ErrBackend,
			"%d qubits is over the backend limit(%d)", sched.N, e.maxQubits)
	}
	sv, err := NewStatevector(sched.Prep)
	if err != nil {
		return nil, errors.Wrap(core.ErrBackend, err.Error())
	}
	for _, round := range sched.Rounds {
		if err := sv.ApplyLayer(round.Cost); err != nil {
			return nil, errors.Wrap(core.ErrBackend, err.Error())
		}
		for _, sub := range round.Mixer {
			if err := sv.ApplyLayer(sub); err != nil {
				return nil, errors.Wrap(core.ErrBackend, err.Error())
			}
		}
	}
	return sv, nil
}

func (e *SVEvaluator) sampleCounts(sv *Statevector, shots int) (core.Counts, error) {
	if shots <= 0 {
		return nil, errors.Wrapf(core.ErrBackend, "shots(%d) must be greater than 0", shots)
	}
	if shots > e.maxShots {
		return nil, errors.Wrapf(core.ErrBackend,
			"shots(%d) is over the backend limit(%d)", shots, e.maxShots)
	}
	probs := sv.Probabilities()
	keys := sv.SortedStates()

	cum := make([]float64, len(keys))
	total := 0.0
	for i, k := range keys {
		total += probs[k]
		cum[i] = total
	}
	counts := make(core.Counts)
	for s := 0; s < shots; s++ {
		r := e.rng.Float64() * total
		idx := sort.SearchFloat64s(cum, r)
		if idx >= len(keys) {
			idx = len(keys) - 1
		}
		counts[keys[idx]]++
	}
	return counts, nil
}
