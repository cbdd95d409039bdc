//go:build unit
// +build unit

package qubo

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewProblemValidation(t *testing.T) {
	tests := []struct {
		name    string
		q       [][]float64
		linear  []float64
		wantErr bool
	}{
		{
			name:    "valid 2x2",
			q:       [][]float64{{1, 2}, {2, 3}},
			linear:  []float64{0.5, -0.5},
			wantErr: false,
		},
		{
			name:    "empty matrix",
			q:       [][]float64{},
			wantErr: true,
		},
		{
			name:    "ragged matrix",
			q:       [][]float64{{1, 2}, {2}},
			wantErr: true,
		},
		{
			name:    "linear length mismatch",
			q:       [][]float64{{1, 2}, {2, 3}},
			linear:  []float64{1},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProblem(tt.q, tt.linear, 0, 1)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidProblem))
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestSymmetrization(t *testing.T) {
	p, err := NewProblem([][]float64{{0, 4}, {0, 0}}, nil, 0, 1)
	assert.Nil(t, err)
	assert.Equal(t, 2.0, p.Q[0][1])
	assert.Equal(t, 2.0, p.Q[1][0])
}

func TestEvaluate(t *testing.T) {
	p, err := NewProblem(
		[][]float64{{1, 2}, {2, 3}},
		[]float64{0.5, -0.5},
		1.0,
		1,
	)
	assert.Nil(t, err)

	tests := []struct {
		name string
		bits []int
		want float64
	}{
		{name: "all zero", bits: []int{0, 0}, want: 1.0},
		{name: "first selected", bits: []int{1, 0}, want: 1 + 0.5 + 1.0},
		{name: "both selected", bits: []int{1, 1}, want: 1 + 2 + 2 + 3 + 0.5 - 0.5 + 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Evaluate(tt.bits)
			assert.Nil(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestParseBitstring(t *testing.T) {
	bits, err := ParseBitstring("1100", 4)
	assert.Nil(t, err)
	assert.Equal(t, []int{1, 1, 0, 0}, bits)

	_, err = ParseBitstring("12a0", 4)
	assert.True(t, errors.Is(err, ErrInvalidProblem))
	_, err = ParseBitstring("110", 4)
	assert.True(t, errors.Is(err, ErrInvalidProblem))
}

// isingEval computes the Ising energy for a binary assignment under
// z_i = 1 - 2*x_i.
func isingEval(m *IsingModel, bits []int) float64 {
	z := make([]float64, m.N)
	for i, b := range bits {
		z[i] = 1.0 - 2.0*float64(b)
	}
	v := m.Const
	for i := 0; i < m.N; i++ {
		v += m.H[i] * z[i]
		for j := i + 1; j < m.N; j++ {
			v += m.J[i][j] * z[i] * z[j]
		}
	}
	return v
}

func TestIsingMatchesQUBOOnEveryAssignment(t *testing.T) {
	p, err := NewProblem(
		[][]float64{
			{0.3, 1.2, -0.7},
			{1.2, -0.4, 0.9},
			{-0.7, 0.9, 0.1},
		},
		[]float64{0.25, -1.5, 0.75},
		2.5,
		2,
	)
	assert.Nil(t, err)
	m := p.ToIsing()
	for k := 0; k < 1<<p.N; k++ {
		bits := make([]int, p.N)
		for i := 0; i < p.N; i++ {
			if k&(1<<i) != 0 {
				bits[i] = 1
			}
		}
		want, err := p.Evaluate(bits)
		assert.Nil(t, err)
		assert.InDelta(t, want, isingEval(m, bits), 1e-9)
	}
}

func TestNewPortfolioProblem(t *testing.T) {
	mu := []float64{0.001, 0.002}
	sigma := [][]float64{{0.04, 0.01}, {0.01, 0.09}}
	p, err := NewPortfolioProblem(mu, sigma, 5.0, 1)
	assert.Nil(t, err)
	assert.Equal(t, 5.0*0.04, p.Q[0][0])
	assert.Equal(t, -0.001, p.Linear[0])

	_, err = NewPortfolioProblem(mu, sigma, -1, 1)
	assert.True(t, errors.Is(err, ErrInvalidProblem))
	_, err = NewPortfolioProblem(mu, sigma, 5.0, 3)
	assert.True(t, errors.Is(err, ErrInvalidProblem))
}
