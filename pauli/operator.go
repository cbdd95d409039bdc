package pauli

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-faster/errors"
)

// ErrInvalidOperator is returned when a term references a qubit index
// outside [0, n).
var ErrInvalidOperator = errors.New("invalid operator")

type Basis int

const (
	I Basis = iota
	X
	Y
	Z
)

func (b Basis) String() string {
	switch b {
	case I:
		return "I"
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "?"
	}
}

// Factor is a single-qubit Pauli attached to one qubit index.
type Factor struct {
	Qubit int
	Basis Basis
}

// Term is an ordered product of Pauli factors over distinct qubit indices,
// scaled by a complex coefficient.
type Term struct {
	Coeff   complex128
	Factors []Factor // sorted by qubit, no I factors stored
}

// Hamiltonian is a sum of Pauli terms.
type Hamiltonian struct {
	Qubits int
	Terms  []Term
}

const zeroTol = 1e-12

// NewTerm builds a term from factors, dropping identities and validating
// qubit indices against n. Factors on the same qubit are multiplied out
// with the single-qubit Pauli table.
func NewTerm(n int, coeff complex128, factors ...Factor) (Term, error) {
	onQubit := make(map[int]Basis)
	c := coeff
	for _, f := range factors {
		if f.Qubit < 0 || f.Qubit >= n {
			return Term{}, errors.Wrap(ErrInvalidOperator,
				fmt.Sprintf("qubit index %d is outside [0, %d)", f.Qubit, n))
		}
		cur, ok := onQubit[f.Qubit]
		if !ok {
			if f.Basis != I {
				onQubit[f.Qubit] = f.Basis
			}
			continue
		}
		prod, phase := mulBasis(cur, f.Basis)
		c *= phase
		if prod == I {
			delete(onQubit, f.Qubit)
		} else {
			onQubit[f.Qubit] = prod
		}
	}
	fs := make([]Factor, 0, len(onQubit))
	for q, b := range onQubit {
		fs = append(fs, Factor{Qubit: q, Basis: b})
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i].Qubit < fs[j].Qubit })
	return Term{Coeff: c, Factors: fs}, nil
}

// mulBasis returns the product of two single-qubit Paulis on the same
// qubit as (basis, phase): XY=iZ, YZ=iX, ZX=iY and cyclic/anticyclic.
func mulBasis(a, b Basis) (Basis, complex128) {
	if a == I {
		return b, 1
	}
	if b == I {
		return a, 1
	}
	if a == b {
		return I, 1
	}
	type pair struct{ a, b Basis }
	table := map[pair]struct {
		out   Basis
		phase complex128
	}{
		{X, Y}: {Z, 1i},
		{Y, X}: {Z, -1i},
		{Y, Z}: {X, 1i},
		{Z, Y}: {X, -1i},
		{Z, X}: {Y, 1i},
		{X, Z}: {Y, -1i},
	}
	r := table[pair{a, b}]
	return r.out, r.phase
}

func (t Term) key() string {
	parts := make([]string, 0, len(t.Factors))
	for _, f := range t.Factors {
		parts = append(parts, fmt.Sprintf("%s%d", f.Basis, f.Qubit))
	}
	return strings.Join(parts, "*")
}

func (t Term) String() string {
	if len(t.Factors) == 0 {
		return fmt.Sprintf("%v*I", t.Coeff)
	}
	return fmt.Sprintf("%v*%s", t.Coeff, t.key())
}

// NewHamiltonian builds a Hamiltonian over n qubits from the given terms.
func NewHamiltonian(n int, terms ...Term) (*Hamiltonian, error) {
	h := &Hamiltonian{Qubits: n}
	for _, t := range terms {
		for _, f := range t.Factors {
			if f.Qubit < 0 || f.Qubit >= n {
				return nil, errors.Wrap(ErrInvalidOperator,
					fmt.Sprintf("qubit index %d is outside [0, %d)", f.Qubit, n))
			}
		}
		h.Terms = append(h.Terms, t)
	}
	h.simplify()
	return h, nil
}

func (h *Hamiltonian) simplify() {
	byKey := make(map[string]complex128)
	order := []string{}
	for _, t := range h.Terms {
		k := t.key()
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		byKey[k] += t.Coeff
	}
	factorsByKey := make(map[string][]Factor)
	for _, t := range h.Terms {
		factorsByKey[t.key()] = t.Factors
	}
	simplified := make([]Term, 0, len(order))
	for _, k := range order {
		c := byKey[k]
		if math.Abs(real(c)) < zeroTol && math.Abs(imag(c)) < zeroTol {
			continue
		}
		simplified = append(simplified, Term{Coeff: c, Factors: factorsByKey[k]})
	}
	h.Terms = simplified
}

// IsZero reports whether every term cancelled out.
func (h *Hamiltonian) IsZero() bool {
	return len(h.Terms) == 0
}

// Add returns the sum of two Hamiltonians on the same qubit count.
func (h *Hamiltonian) Add(o *Hamiltonian) (*Hamiltonian, error) {
	if h.Qubits != o.Qubits {
		return nil, errors.Wrap(ErrInvalidOperator,
			fmt.Sprintf("qubit counts disagree: %d vs %d", h.Qubits, o.Qubits))
	}
	terms := append(append([]Term{}, h.Terms...), o.Terms...)
	return NewHamiltonian(h.Qubits, terms...)
}

// Mul returns the operator product h*o, expanded term by term. Factors on
// disjoint qubits commute; factors on a shared qubit multiply through the
// single-qubit table.
func (h *Hamiltonian) Mul(o *Hamiltonian) (*Hamiltonian, error) {
	if h.Qubits != o.Qubits {
		return nil, errors.Wrap(ErrInvalidOperator,
			fmt.Sprintf("qubit counts disagree: %d vs %d", h.Qubits, o.Qubits))
	}
	terms := []Term{}
	for _, a := range h.Terms {
		for _, b := range o.Terms {
			fs := append(append([]Factor{}, a.Factors...), b.Factors...)
			t, err := NewTerm(h.Qubits, a.Coeff*b.Coeff, fs...)
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
		}
	}
	return NewHamiltonian(h.Qubits, terms...)
}

// Scale returns c*h.
func (h *Hamiltonian) Scale(c complex128) *Hamiltonian {
	terms := make([]Term, len(h.Terms))
	for i, t := range h.Terms {
		terms[i] = Term{Coeff: c * t.Coeff, Factors: t.Factors}
	}
	out, _ := NewHamiltonian(h.Qubits, terms...)
	return out
}

// Commutator returns [h, o] = h*o - o*h, possibly the zero Hamiltonian.
func Commutator(h, o *Hamiltonian) (*Hamiltonian, error) {
	ho, err := h.Mul(o)
	if err != nil {
		return nil, err
	}
	oh, err := o.Mul(h)
	if err != nil {
		return nil, err
	}
	return ho.Add(oh.Scale(-1))
}

// HammingWeight returns the Hamming-weight operator over n qubits,
// N = sum_i (1 - Z_i)/2.
func HammingWeight(n int) (*Hamiltonian, error) {
	if n < 1 {
		return nil, errors.Wrap(ErrInvalidOperator, "qubit count must be at least 1")
	}
	terms := []Term{{Coeff: complex(float64(n)/2.0, 0)}}
	for i := 0; i < n; i++ {
		terms = append(terms, Term{
			Coeff:   complex(-0.5, 0),
			Factors: []Factor{{Qubit: i, Basis: Z}},
		})
	}
	return NewHamiltonian(n, terms...)
}
