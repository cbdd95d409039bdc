//go:build unit
// +build unit

package optimizer

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
)

func quadratic(center []float64) Objective {
	return func(theta []float64) (float64, error) {
		sum := 0.0
		for i, t := range theta {
			d := t - center[i]
			sum += d * d
		}
		return sum, nil
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		obj  Objective
		opts Options
	}{
		{name: "nil objective", obj: nil, opts: Options{Dim: 2, Restarts: 1, MaxIter: 10, Tolerance: 1e-6}},
		{name: "zero dim", obj: quadratic([]float64{0}), opts: Options{Restarts: 1, MaxIter: 10, Tolerance: 1e-6}},
		{name: "zero restarts", obj: quadratic([]float64{0}), opts: Options{Dim: 1, MaxIter: 10, Tolerance: 1e-6}},
		{name: "zero max iter", obj: quadratic([]float64{0}), opts: Options{Dim: 1, Restarts: 1, Tolerance: 1e-6}},
		{name: "zero tolerance", obj: quadratic([]float64{0}), opts: Options{Dim: 1, Restarts: 1, MaxIter: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.obj, tt.opts)
			assert.Nil(t, l)
			assert.True(t, errors.Is(err, ErrInvalidOptions))
		})
	}
}

func TestRunConvergesOnQuadratic(t *testing.T) {
	center := []float64{1.2, 3.4}
	l, err := New(quadratic(center), Options{
		Dim:       2,
		Restarts:  3,
		MaxIter:   500,
		Tolerance: 1e-10,
		Seed:      7,
	})
	assert.Nil(t, err)
	assert.Equal(t, Initialized, l.State())

	out, err := l.Run()
	assert.Nil(t, err)
	assert.True(t, out.Converged)
	assert.Equal(t, Converged, l.State())
	assert.True(t, l.State().Terminal())
	assert.InDelta(t, 0.0, out.BestValue, 1e-6)
	for i := range center {
		assert.InDelta(t, center[i], out.BestTheta[i], 1e-3)
	}
	assert.Equal(t, out.Iterations, len(out.Trace))
}

func TestRunHitsIterationBudget(t *testing.T) {
	l, err := New(quadratic([]float64{0, 0}), Options{
		Dim:       2,
		Restarts:  1,
		MaxIter:   5,
		Tolerance: 1e-300,
		Seed:      7,
	})
	assert.Nil(t, err)

	out, err := l.Run()
	assert.Nil(t, err)
	assert.False(t, out.Converged)
	assert.Equal(t, MaxIterExceeded, l.State())
	assert.True(t, math.IsInf(out.BestValue, 1) == false)
}

func TestRunFailsOnObjectiveError(t *testing.T) {
	calls := 0
	obj := func(theta []float64) (float64, error) {
		calls++
		if calls > 2 {
			return 0, fmt.Errorf("sampling failed")
		}
		return 1.0, nil
	}
	l, err := New(obj, Options{Dim: 2, Restarts: 2, MaxIter: 100, Tolerance: 1e-8, Seed: 1})
	assert.Nil(t, err)

	out, err := l.Run()
	assert.Nil(t, out)
	assert.EqualError(t, err, "sampling failed")
	assert.Equal(t, Failed, l.State())
	// no retry: exactly one evaluation past the failure point
	assert.Equal(t, 3, calls)
}

func TestTraceRecordsEveryEvaluation(t *testing.T) {
	l, err := New(quadratic([]float64{0.5}), Options{
		Dim:       1,
		Restarts:  2,
		MaxIter:   30,
		Tolerance: 1e-9,
		Seed:      3,
	})
	assert.Nil(t, err)
	out, err := l.Run()
	assert.Nil(t, err)
	assert.Equal(t, out.Iterations, len(out.Trace))
	assert.True(t, out.Iterations > 0)
}
