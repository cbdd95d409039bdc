//go:build unit
// +build unit

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/circuit"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/qubo"
)

func TestExpectation(t *testing.T) {
	problem, err := qubo.NewProblem([][]float64{{0, 1}, {1, 0}}, nil, 0, 1)
	assert.Nil(t, err)
	sv, err := NewStatevector(circuit.StatePrep{Kind: circuit.PrepUniform, N: 2})
	assert.Nil(t, err)

	tests := []struct {
		name   string
		weight int
		want   float64
	}{
		{
			name:   "all states",
			weight: -1,
			want:   0.5, // only |11> costs 2, at probability 1/4
		},
		{
			name:   "restricted to weight one",
			weight: 1,
			want:   0.0,
		},
		{
			name:   "restricted to weight two",
			weight: 2,
			want:   2.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sv.Expectation(problem, tt.weight)
			assert.Nil(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestExpectationErrors(t *testing.T) {
	problem, err := qubo.NewProblem([][]float64{{0, 1}, {1, 0}}, nil, 0, 1)
	assert.Nil(t, err)

	sv, err := NewStatevector(circuit.StatePrep{Kind: circuit.PrepBasis, N: 2, Bits: []int{0, 0}})
	assert.Nil(t, err)
	_, err = sv.Expectation(problem, 1)
	assert.Error(t, err) // |00> has no weight-1 mass

	big, err := NewStatevector(circuit.StatePrep{Kind: circuit.PrepUniform, N: 3})
	assert.Nil(t, err)
	_, err = big.Expectation(problem, -1)
	assert.Error(t, err)
}
