package mixer

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/circuit"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/pauli"
)

// ErrInvalidTopology is returned for malformed edge sets or an unknown
// mixer kind.
var ErrInvalidTopology = errors.New("invalid mixer topology")

type Kind int

const (
	KindX Kind = iota
	KindXY
)

func (k Kind) String() string {
	switch k {
	case KindX:
		return "x"
	case KindXY:
		return "xy"
	default:
		return "unknown"
	}
}

// ToKind parses a mixer kind name as it appears in settings files.
func ToKind(s string) (Kind, error) {
	switch s {
	case "x":
		return KindX, nil
	case "xy":
		return KindXY, nil
	default:
		return 0, errors.Wrap(ErrInvalidTopology, fmt.Sprintf("unknown mixer kind: %s", s))
	}
}

// Edge is an unordered qubit pair.
type Edge struct {
	I int
	J int
}

// RingEdges returns the cycle connectivity {(k, (k+1) mod n)} as a set of
// unordered pairs. The two-qubit ring degenerates to the single edge (0,1)
// and rings below two qubits have no edges.
func RingEdges(n int) []Edge {
	if n < 2 {
		return nil
	}
	if n == 2 {
		return []Edge{{I: 0, J: 1}}
	}
	edges := make([]Edge, 0, n)
	for k := 0; k < n; k++ {
		edges = append(edges, Edge{I: k, J: (k + 1) % n})
	}
	return edges
}

// CompleteEdges returns all unordered pairs.
func CompleteEdges(n int) []Edge {
	edges := []Edge{}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, Edge{I: i, J: j})
		}
	}
	return edges
}

// Spec is an immutable mixer description. Ops carry the angle multiplier
// of beta (2 for every rotation), to be scaled by the round angle at
// schedule-build time.
type Spec struct {
	Kind                 Kind
	N                    int
	Edges                []Edge
	PreservesCardinality bool
	Ops                  []circuit.Op
}

// BetaScale is the fixed multiplier applied to beta for every mixer
// rotation: exp(-i b (XX+YY)) = RXX(2b) RYY(2b), and the X mixer uses
// RX(2b) to match.
const BetaScale = 2.0

// Build constructs a mixer over n qubits. For KindX, edges must be empty
// and the result is n independent RX rotations. For KindXY, each edge
// contributes an RXX rotation followed by an RYY rotation on the pair;
// the two factors commute, so the pair implements exp(-i b (XX+YY))
// exactly, with no Trotter error.
func Build(n int, kind Kind, edges []Edge) (*Spec, error) {
	if n < 1 {
		return nil, errors.Wrap(ErrInvalidTopology,
			fmt.Sprintf("qubit count must be at least 1, got %d", n))
	}
	switch kind {
	case KindX:
		if len(edges) != 0 {
			return nil, errors.Wrap(ErrInvalidTopology,
				"the x mixer takes no edges")
		}
		ops := make([]circuit.Op, 0, n)
		for i := 0; i < n; i++ {
			ops = append(ops, circuit.Op{Gate: circuit.GateRX, Q0: i, Q1: -1, Angle: BetaScale})
		}
		return &Spec{
			Kind:                 KindX,
			N:                    n,
			PreservesCardinality: false,
			Ops:                  ops,
		}, nil
	case KindXY:
		if err := validateEdges(n, edges); err != nil {
			return nil, err
		}
		ops := make([]circuit.Op, 0, 2*len(edges))
		for _, e := range edges {
			ops = append(ops,
				circuit.Op{Gate: circuit.GateRXX, Q0: e.I, Q1: e.J, Angle: BetaScale},
				circuit.Op{Gate: circuit.GateRYY, Q0: e.I, Q1: e.J, Angle: BetaScale},
			)
		}
		return &Spec{
			Kind:                 KindXY,
			N:                    n,
			Edges:                append([]Edge{}, edges...),
			PreservesCardinality: true,
			Ops:                  ops,
		}, nil
	default:
		return nil, errors.Wrap(ErrInvalidTopology,
			fmt.Sprintf("unknown mixer kind: %d", kind))
	}
}

func validateEdges(n int, edges []Edge) error {
	if len(edges) == 0 {
		return errors.Wrap(ErrInvalidTopology, "the xy mixer requires edges")
	}
	seen := make(map[Edge]struct{}, len(edges))
	for _, e := range edges {
		if e.I < 0 || e.I >= n || e.J < 0 || e.J >= n {
			return errors.Wrap(ErrInvalidTopology,
				fmt.Sprintf("edge (%d,%d) references a qubit outside [0, %d)", e.I, e.J, n))
		}
		if e.I == e.J {
			return errors.Wrap(ErrInvalidTopology,
				fmt.Sprintf("edge (%d,%d) is a self-loop", e.I, e.J))
		}
		k := e
		if k.I > k.J {
			k.I, k.J = k.J, k.I
		}
		if _, ok := seen[k]; ok {
			return errors.Wrap(ErrInvalidTopology,
				fmt.Sprintf("edge (%d,%d) appears more than once", e.I, e.J))
		}
		seen[k] = struct{}{}
	}
	return nil
}

// Hamiltonian returns the mixer Hamiltonian as a Pauli sum: sum_i X_i for
// the X mixer, sum_(i,j) X_iX_j + Y_iY_j for the XY mixer. Used for
// conservation checks, not for circuit construction.
func (s *Spec) Hamiltonian() (*pauli.Hamiltonian, error) {
	terms := []pauli.Term{}
	switch s.Kind {
	case KindX:
		for i := 0; i < s.N; i++ {
			t, err := pauli.NewTerm(s.N, 1, pauli.Factor{Qubit: i, Basis: pauli.X})
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
		}
	case KindXY:
		for _, e := range s.Edges {
			xx, err := pauli.NewTerm(s.N, 1,
				pauli.Factor{Qubit: e.I, Basis: pauli.X},
				pauli.Factor{Qubit: e.J, Basis: pauli.X})
			if err != nil {
				return nil, err
			}
			yy, err := pauli.NewTerm(s.N, 1,
				pauli.Factor{Qubit: e.I, Basis: pauli.Y},
				pauli.Factor{Qubit: e.J, Basis: pauli.Y})
			if err != nil {
				return nil, err
			}
			terms = append(terms, xx, yy)
		}
	}
	return pauli.NewHamiltonian(s.N, terms...)
}

// VerifyConservation checks [H_M, N] against PreservesCardinality:
// the commutator vanishes for the xy mixer and not for the x mixer.
func (s *Spec) VerifyConservation() (bool, error) {
	hm, err := s.Hamiltonian()
	if err != nil {
		return false, err
	}
	nw, err := pauli.HammingWeight(s.N)
	if err != nil {
		return false, err
	}
	c, err := pauli.Commutator(hm, nw)
	if err != nil {
		return false, err
	}
	return c.IsZero() == s.PreservesCardinality, nil
}
