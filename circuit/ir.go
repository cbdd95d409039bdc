package circuit

import (
	"fmt"
)

// Gate is the closed set of elementary operations a schedule may contain.
type Gate int

const (
	GateH Gate = iota
	GateX
	GateRX
	GateRZ
	GateRZZ
	GateRXX
	GateRYY
)

func (g Gate) String() string {
	switch g {
	case GateH:
		return "h"
	case GateX:
		return "x"
	case GateRX:
		return "rx"
	case GateRZ:
		return "rz"
	case GateRZZ:
		return "rzz"
	case GateRXX:
		return "rxx"
	case GateRYY:
		return "ryy"
	default:
		return "unknown"
	}
}

// TwoQubit reports whether the gate acts on a qubit pair.
func (g Gate) TwoQubit() bool {
	switch g {
	case GateRZZ, GateRXX, GateRYY:
		return true
	default:
		return false
	}
}

// Op is one elementary rotation. Q1 is -1 for single-qubit gates.
type Op struct {
	Gate  Gate
	Q0    int
	Q1    int
	Angle float64
}

func (o Op) String() string {
	if o.Gate.TwoQubit() {
		return fmt.Sprintf("%s(%g)[%d,%d]", o.Gate, o.Angle, o.Q0, o.Q1)
	}
	return fmt.Sprintf("%s(%g)[%d]", o.Gate, o.Angle, o.Q0)
}

// Qubits returns the qubit indices the op touches.
func (o Op) Qubits() []int {
	if o.Gate.TwoQubit() {
		return []int{o.Q0, o.Q1}
	}
	return []int{o.Q0}
}

// Layer is a set of ops on pairwise disjoint qubits; order within a layer
// is not significant and the ops may be applied concurrently.
type Layer []Op

// PrepKind selects how the initial state is prepared.
type PrepKind int

const (
	PrepUniform PrepKind = iota // H on every qubit
	PrepBasis                   // a single computational basis state
	PrepDicke                   // equal superposition at fixed Hamming weight
)

func (p PrepKind) String() string {
	switch p {
	case PrepUniform:
		return "uniform"
	case PrepBasis:
		return "basis"
	case PrepDicke:
		return "dicke"
	default:
		return "unknown"
	}
}

// StatePrep describes the initial-state phase of a schedule. For PrepBasis,
// Bits holds the basis state with qubit 0 first. For PrepDicke, Weight is
// the Hamming weight of the superposed subspace.
type StatePrep struct {
	Kind   PrepKind
	N      int
	Weight int
	Bits   []int
}

// Round is one QAOA repetition: a diagonal cost layer followed by the
// mixer sublayers, with the round's variational angles attached.
type Round struct {
	Gamma float64
	Beta  float64
	Cost  Layer
	Mixer []Layer
}

// Schedule is an ordered execution plan: state preparation, then each
// round's layers in sequence. Layers must be applied in order; ops within
// a layer are unordered.
type Schedule struct {
	N      int
	Prep   StatePrep
	Rounds []Round
}

// Depth returns the number of layers after state preparation.
func (s *Schedule) Depth() int {
	d := 0
	for _, r := range s.Rounds {
		if len(r.Cost) > 0 {
			d++
		}
		d += len(r.Mixer)
	}
	return d
}
