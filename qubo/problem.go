package qubo

import (
	"fmt"
	"math"

	"github.com/go-faster/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrInvalidProblem is returned when the QUBO matrices are malformed.
var ErrInvalidProblem = errors.New("invalid qubo problem")

// Problem is a cardinality-constrained QUBO instance: minimize
// x^T Q x + q^T x over binary x with exactly B ones.
type Problem struct {
	N           int
	B           int
	Q           [][]float64
	Linear      []float64
	ConstOffset float64
}

// NewProblem validates and builds a problem instance. Q must be square of
// size n, Linear of length n. A non-symmetric Q is symmetrized the way the
// objective is insensitive to: (Q + Q^T)/2.
func NewProblem(q [][]float64, linear []float64, constOffset float64, b int) (*Problem, error) {
	var verr error
	n := len(q)
	if n == 0 {
		verr = multierr.Append(verr, errors.Wrap(ErrInvalidProblem, "Q matrix is empty"))
	}
	for i, row := range q {
		if len(row) != n {
			verr = multierr.Append(verr, errors.Wrap(ErrInvalidProblem,
				fmt.Sprintf("Q row %d has length %d, want %d", i, len(row), n)))
		}
	}
	if linear != nil && len(linear) != n {
		verr = multierr.Append(verr, errors.Wrap(ErrInvalidProblem,
			fmt.Sprintf("linear vector has length %d, want %d", len(linear), n)))
	}
	if verr != nil {
		return nil, verr
	}
	if linear == nil {
		linear = make([]float64, n)
	}
	qs := q
	if !isSymmetric(q) {
		zap.L().Warn("QUBO matrix is not symmetric, symmetrizing")
		qs = symmetrize(q)
	}
	return &Problem{
		N:           n,
		B:           b,
		Q:           qs,
		Linear:      linear,
		ConstOffset: constOffset,
	}, nil
}

// NewPortfolioProblem builds the Markowitz selection QUBO from daily mean
// returns mu and covariance sigma: Q = lambda*B^2*Sigma, q = -mu/B.
func NewPortfolioProblem(mu []float64, sigma [][]float64, lambda float64, b int) (*Problem, error) {
	n := len(mu)
	if n == 0 {
		return nil, errors.Wrap(ErrInvalidProblem, "mean return vector is empty")
	}
	if len(sigma) != n {
		return nil, errors.Wrap(ErrInvalidProblem,
			fmt.Sprintf("covariance has %d rows, want %d", len(sigma), n))
	}
	if lambda <= 0 {
		return nil, errors.Wrap(ErrInvalidProblem,
			fmt.Sprintf("risk aversion must be positive, got %g", lambda))
	}
	if b <= 0 || b > n {
		return nil, errors.Wrap(ErrInvalidProblem,
			fmt.Sprintf("cardinality %d is outside [1, %d]", b, n))
	}
	scale := lambda * float64(b) * float64(b)
	q := make([][]float64, n)
	linear := make([]float64, n)
	for i := 0; i < n; i++ {
		if len(sigma[i]) != n {
			return nil, errors.Wrap(ErrInvalidProblem,
				fmt.Sprintf("covariance row %d has length %d, want %d", i, len(sigma[i]), n))
		}
		q[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			q[i][j] = scale * sigma[i][j]
		}
		linear[i] = -mu[i] / float64(b)
	}
	return NewProblem(q, linear, 0, b)
}

// Evaluate computes x^T Q x + q^T x + const for a binary assignment.
func (p *Problem) Evaluate(bits []int) (float64, error) {
	if len(bits) != p.N {
		return 0, errors.Wrap(ErrInvalidProblem,
			fmt.Sprintf("assignment has %d bits, want %d", len(bits), p.N))
	}
	v := p.ConstOffset
	for i := 0; i < p.N; i++ {
		if bits[i] == 0 {
			continue
		}
		v += p.Linear[i]
		for j := 0; j < p.N; j++ {
			if bits[j] != 0 {
				v += p.Q[i][j]
			}
		}
	}
	return v, nil
}

// EvaluateBitstring evaluates a textual assignment, qubit 0 leftmost.
func (p *Problem) EvaluateBitstring(s string) (float64, error) {
	bits, err := ParseBitstring(s, p.N)
	if err != nil {
		return 0, err
	}
	return p.Evaluate(bits)
}

// ParseBitstring converts "0110..." into a bit slice, qubit 0 leftmost.
func ParseBitstring(s string, n int) ([]int, error) {
	if len(s) != n {
		return nil, errors.Wrap(ErrInvalidProblem,
			fmt.Sprintf("bitstring %q has length %d, want %d", s, len(s), n))
	}
	bits := make([]int, n)
	for i, c := range s {
		switch c {
		case '0':
		case '1':
			bits[i] = 1
		default:
			return nil, errors.Wrap(ErrInvalidProblem,
				fmt.Sprintf("bitstring %q has a non-binary character", s))
		}
	}
	return bits, nil
}

func isSymmetric(q [][]float64) bool {
	for i := range q {
		for j := i + 1; j < len(q); j++ {
			if math.Abs(q[i][j]-q[j][i]) > 1e-9 {
				return false
			}
		}
	}
	return true
}

func symmetrize(q [][]float64) [][]float64 {
	n := len(q)
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = (q[i][j] + q[j][i]) / 2.0
		}
	}
	return out
}
