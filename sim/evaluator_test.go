//go:build unit
// +build unit

package sim

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/ansatz"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/circuit"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/common"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/core"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/mixer"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/qubo"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/state"
)

func testEvaluator(t *testing.T) *SVEvaluator {
	t.Helper()
	e := &SVEvaluator{}
	err := e.Setup(&core.Conf{MaxQubits: 10, MaxShots: 100000, Seed: 42})
	assert.Nil(t, err)
	return e
}

func ringSchedule(t *testing.T, n, b int) *circuit.Schedule {
	t.Helper()
	q := make([][]float64, n)
	for i := range q {
		q[i] = make([]float64, n)
		q[i][i] = float64(i + 1)
	}
	problem, err := qubo.NewProblem(q, nil, 0, b)
	assert.Nil(t, err)
	spec, err := mixer.Build(n, mixer.KindXY, mixer.RingEdges(n))
	assert.Nil(t, err)
	prep, err := state.Select(n, b, mixer.KindXY, state.VariantDicke)
	assert.Nil(t, err)
	sched, err := ansatz.Build(problem.ToIsing(), spec, prep,
		ansatz.Params{{Gamma: 0.4, Beta: 0.7}})
	assert.Nil(t, err)
	return sched
}

func TestSampleConservesCardinality(t *testing.T) {
	e := testEvaluator(t)
	sched := ringSchedule(t, 4, 2)

	counts, err := e.Sample(sched, 2000)
	assert.Nil(t, err)
	assert.Equal(t, uint32(2000), counts.TotalShots())
	for bitstring := range counts {
		assert.Equal(t, 2, common.HammingWeight(bitstring),
			"sampled %s outside the cardinality sector", bitstring)
	}
}

func TestSampleIsDeterministicForFixedSeed(t *testing.T) {
	sched := ringSchedule(t, 4, 2)

	e1 := testEvaluator(t)
	c1, err := e1.Sample(sched, 500)
	assert.Nil(t, err)
	e2 := testEvaluator(t)
	c2, err := e2.Sample(sched, 500)
	assert.Nil(t, err)
	assert.Equal(t, c1, c2)
}

func TestSampleErrors(t *testing.T) {
	e := testEvaluator(t)
	sched := ringSchedule(t, 4, 2)

	tests := []struct {
		name  string
		sched *circuit.Schedule
		shots int
	}{
		{name: "nil schedule", sched: nil, shots: 100},
		{name: "zero shots", sched: sched, shots: 0},
		{name: "over max shots", sched: sched, shots: 100001},
		{name: "over max qubits", sched: ringSchedule(t, 4, 2), shots: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.sched
			if tt.name == "over max qubits" {
				s.N = 99
			}
			_, err := e.Sample(s, tt.shots)
			assert.NotNil(t, err)
			assert.True(t, errors.Is(err, core.ErrBackend))
		})
	}
}

func TestGetEngineInfo(t *testing.T) {
	e := testEvaluator(t)
	info := e.GetEngineInfo()
	assert.Equal(t, BackendName, info.BackendName)
	assert.Equal(t, 10, info.MaxQubits)
	assert.Equal(t, 100000, info.MaxShots)
	assert.Equal(t, int64(42), info.Seed)
}
