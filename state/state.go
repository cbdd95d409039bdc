package state

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/circuit"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/mixer"
)

// ErrInvalidCardinality is returned when the target cardinality B lies
// outside [0, n].
var ErrInvalidCardinality = errors.New("invalid cardinality")

// Variant selects the feasible starting state used with the xy mixer.
type Variant int

const (
	// VariantFixed is a single basis state with B ones in the first B
	// positions, cheap to prepare but breaking permutation symmetry.
	VariantFixed Variant = iota
	// VariantDicke is the equal superposition over all C(n,B) basis
	// states of Hamming weight B.
	VariantDicke
)

func (v Variant) String() string {
	switch v {
	case VariantFixed:
		return "fixed"
	case VariantDicke:
		return "dicke"
	default:
		return "unknown"
	}
}

// ToVariant parses a variant name as it appears in settings files.
func ToVariant(s string) (Variant, error) {
	switch s {
	case "", "fixed":
		return VariantFixed, nil
	case "dicke":
		return VariantDicke, nil
	default:
		return 0, errors.Wrap(ErrInvalidCardinality,
			fmt.Sprintf("unknown initial state variant: %s", s))
	}
}

// Select chooses the starting state for the given mixer kind. The x mixer
// gets the uniform superposition over all 2^n basis states; B and variant
// are ignored. The xy mixer gets a state confined to Hamming weight
// exactly B, either the fixed basis state or the Dicke superposition.
func Select(n, b int, kind mixer.Kind, variant Variant) (circuit.StatePrep, error) {
	if n < 1 {
		return circuit.StatePrep{}, errors.Wrap(ErrInvalidCardinality,
			fmt.Sprintf("qubit count must be at least 1, got %d", n))
	}
	if kind == mixer.KindX {
		return circuit.StatePrep{Kind: circuit.PrepUniform, N: n}, nil
	}
	if b < 0 || b > n {
		return circuit.StatePrep{}, errors.Wrap(ErrInvalidCardinality,
			fmt.Sprintf("cardinality %d is outside [0, %d]", b, n))
	}
	switch variant {
	case VariantFixed:
		bits := make([]int, n)
		for i := 0; i < b; i++ {
			bits[i] = 1
		}
		return circuit.StatePrep{Kind: circuit.PrepBasis, N: n, Weight: b, Bits: bits}, nil
	case VariantDicke:
		return circuit.StatePrep{Kind: circuit.PrepDicke, N: n, Weight: b}, nil
	default:
		return circuit.StatePrep{}, errors.Wrap(ErrInvalidCardinality,
			fmt.Sprintf("unknown initial state variant: %d", variant))
	}
}

// Bitstring renders a PrepBasis state with qubit 0 leftmost.
func Bitstring(p circuit.StatePrep) string {
	var sb strings.Builder
	for _, b := range p.Bits {
		if b == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
