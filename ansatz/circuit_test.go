//go:build unit
// +build unit

package ansatz

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/circuit"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/mixer"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/qubo"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/state"
)

func ringSetup(t *testing.T, n, b int) (*qubo.IsingModel, *mixer.Spec, circuit.StatePrep) {
	q := make([][]float64, n)
	for i := range q {
		q[i] = make([]float64, n)
		for j := range q[i] {
			if i != j {
				q[i][j] = 0.5
			} else {
				q[i][j] = -1.0
			}
		}
	}
	p, err := qubo.NewProblem(q, nil, 0, b)
	assert.Nil(t, err)
	spec, err := mixer.Build(n, mixer.KindXY, mixer.RingEdges(n))
	assert.Nil(t, err)
	prep, err := state.Select(n, b, mixer.KindXY, state.VariantFixed)
	assert.Nil(t, err)
	return p.ToIsing(), spec, prep
}

func TestBuildRingSchedule(t *testing.T) {
	ising, spec, prep := ringSetup(t, 4, 2)
	sched, err := Build(ising, spec, prep, Params{{Gamma: 0.3, Beta: 0.7}})
	assert.Nil(t, err)
	assert.Equal(t, 4, sched.N)
	assert.Equal(t, circuit.PrepBasis, sched.Prep.Kind)
	assert.Equal(t, 1, len(sched.Rounds))
	r := sched.Rounds[0]
	// even ring partitions into exactly two mixer sublayers
	assert.Equal(t, 2, len(r.Mixer))
	for _, l := range r.Mixer {
		for _, op := range l {
			assert.InDelta(t, 2.0*0.7, op.Angle, 1e-12)
		}
	}
	assert.NotEmpty(t, r.Cost)
	for _, op := range r.Cost {
		assert.Contains(t, []circuit.Gate{circuit.GateRZ, circuit.GateRZZ}, op.Gate)
	}
}

func TestBuildSkipsNearZeroCoefficients(t *testing.T) {
	n := 3
	q := [][]float64{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	}
	p, err := qubo.NewProblem(q, nil, 0, 1)
	assert.Nil(t, err)
	spec, err := mixer.Build(n, mixer.KindXY, mixer.RingEdges(n))
	assert.Nil(t, err)
	prep, err := state.Select(n, 1, mixer.KindXY, state.VariantFixed)
	assert.Nil(t, err)
	sched, err := Build(p.ToIsing(), spec, prep, Params{{Gamma: 1, Beta: 1}})
	assert.Nil(t, err)
	assert.Empty(t, sched.Rounds[0].Cost)
}

func TestBuildValidation(t *testing.T) {
	ising, spec, prep := ringSetup(t, 4, 2)

	_, err := Build(ising, spec, prep, Params{})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	smaller, otherSpec, otherPrep := ringSetup(t, 3, 1)
	_, err = Build(smaller, spec, prep, Params{{}})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	_, err = Build(ising, otherSpec, prep, Params{{}})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	_, err = Build(ising, spec, otherPrep, Params{{}})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestParamsRoundTrip(t *testing.T) {
	params := Params{{Gamma: 0.1, Beta: 0.2}, {Gamma: 0.3, Beta: 0.4}}
	flat := params.Flatten()
	assert.Equal(t, []float64{0.1, 0.3, 0.2, 0.4}, flat)
	assert.Equal(t, params, FromFlat(flat))
}

func TestScheduleDepth(t *testing.T) {
	ising, spec, prep := ringSetup(t, 4, 2)
	sched, err := Build(ising, spec, prep, Params{{Gamma: 0.3, Beta: 0.7}, {Gamma: 0.1, Beta: 0.2}})
	assert.Nil(t, err)
	// per round: one cost layer plus two mixer sublayers
	assert.Equal(t, 6, sched.Depth())
}
