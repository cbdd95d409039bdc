package sim

import (
	"math"
	"math/bits"
	"math/cmplx"
	"sort"

	"github.com/go-faster/errors"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/circuit"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/core"
)

var ErrInvalidState = errors.New("invalid state")

// Statevector is a dense amplitude vector over n qubits. Qubit 0 is the
// leftmost character of a rendered bitstring, so its bit sits at the highest
// position of the state index.
type Statevector struct {
	n    int
	amps []complex128
}

func NewStatevector(prep circuit.StatePrep) (*Statevector, error) {
	if prep.N <= 0 {
		return nil, errors.Wrap(ErrInvalidState, "qubit count must be positive")
	}
	dim := 1 << prep.N
	sv := &Statevector{
		n:    prep.N,
		amps: make([]complex128, dim),
	}
	switch prep.Kind {
	case circuit.PrepUniform:
		a := complex(1.0/math.Sqrt(float64(dim)), 0)
		for i := range sv.amps {
			sv.amps[i] = a
		}
	case circuit.PrepBasis:
		if len(prep.Bits) != prep.N {
			return nil, errors.Wrapf(ErrInvalidState,
				"basis state %v does not match %d qubits", prep.Bits, prep.N)
		}
		idx := 0
		for q, b := range prep.Bits {
			switch b {
			case 1:
				idx |= sv.mask(q)
			case 0:
			default:
				return nil, errors.Wrapf(ErrInvalidState, "basis state %v is not binary", prep.Bits)
			}
		}
		sv.amps[idx] = 1
	case circuit.PrepDicke:
		if prep.Weight < 0 || prep.Weight > prep.N {
			return nil, errors.Wrapf(ErrInvalidState,
				"dicke weight %d out of range for %d qubits", prep.Weight, prep.N)
		}
		count := 0
		for i := range sv.amps {
			if bits.OnesCount(uint(i)) == prep.Weight {
				count++
			}
		}
		a := complex(1.0/math.Sqrt(float64(count)), 0)
		for i := range sv.amps {
			if bits.OnesCount(uint(i)) == prep.Weight {
				sv.amps[i] = a
			}
		}
	default:
		return nil, errors.Wrapf(ErrInvalidState, "unknown state preparation kind %d", prep.Kind)
	}
	return sv, nil
}

func (sv *Statevector) Qubits() int {
	return sv.n
}

// mask maps a qubit index to its bit position in the state index.
func (sv *Statevector) mask(q int) int {
	return 1 << (sv.n - 1 - q)
}

// Apply runs a single gate in place.
func (sv *Statevector) Apply(op circuit.Op) error {
	if op.Q0 < 0 || op.Q0 >= sv.n {
		return errors.Wrapf(ErrInvalidState, "qubit %d out of range", op.Q0)
	}
	if op.Gate.TwoQubit() {
		if op.Q1 < 0 || op.Q1 >= sv.n || op.Q1 == op.Q0 {
			return errors.Wrapf(ErrInvalidState, "qubit pair (%d,%d) out of range", op.Q0, op.Q1)
		}
	}
	switch op.Gate {
	case circuit.GateH:
		sv.applyH(op.Q0)
	case circuit.GateX:
		sv.applyX(op.Q0)
	case circuit.GateRX:
		sv.applyRX(op.Q0, op.Angle)
	case circuit.GateRZ:
		sv.applyRZ(op.Q0, op.Angle)
	case circuit.GateRZZ:
		sv.applyRZZ(op.Q0, op.Q1, op.Angle)
	case circuit.GateRXX:
		sv.applyRXX(op.Q0, op.Q1, op.Angle)
	case circuit.GateRYY:
		sv.applyRYY(op.Q0, op.Q1, op.Angle)
	default:
		return errors.Wrapf(ErrInvalidState, "unknown gate %s", op.Gate)
	}
	return nil
}

// ApplyLayer applies each operation of a layer in order.
func (sv *Statevector) ApplyLayer(layer circuit.Layer) error {
	for _, op := range layer {
		if err := sv.Apply(op); err != nil {
			return err
		}
	}
	return nil
}

func (sv *Statevector) applyH(q int) {
	m := sv.mask(q)
	inv := complex(1/math.Sqrt2, 0)
	for i := range sv.amps {
		if i&m == 0 {
			a0 := sv.amps[i]
			a1 := sv.amps[i|m]
			sv.amps[i] = inv * (a0 + a1)
			sv.amps[i|m] = inv * (a0 - a1)
		}
	}
}

func (sv *Statevector) applyX(q int) {
	m := sv.mask(q)
	for i := range sv.amps {
		if i&m == 0 {
			sv.amps[i], sv.amps[i|m] = sv.amps[i|m], sv.amps[i]
		}
	}
}

func (sv *Statevector) applyRX(q int, theta float64) {
	m := sv.mask(q)
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	for i := range sv.amps {
		if i&m == 0 {
			a0 := sv.amps[i]
			a1 := sv.amps[i|m]
			sv.amps[i] = c*a0 + s*a1
			sv.amps[i|m] = c*a1 + s*a0
		}
	}
}

func (sv *Statevector) applyRZ(q int, theta float64) {
	m := sv.mask(q)
	p0 := cmplx.Exp(complex(0, -theta/2))
	p1 := cmplx.Exp(complex(0, theta/2))
	for i := range sv.amps {
		if i&m == 0 {
			sv.amps[i] *= p0
		} else {
			sv.amps[i] *= p1
		}
	}
}

func (sv *Statevector) applyRZZ(q0, q1 int, theta float64) {
	m0 := sv.mask(q0)
	m1 := sv.mask(q1)
	even := cmplx.Exp(complex(0, -theta/2))
	odd := cmplx.Exp(complex(0, theta/2))
	for i := range sv.amps {
		if (i&m0 == 0) == (i&m1 == 0) {
			sv.amps[i] *= even
		} else {
			sv.amps[i] *= odd
		}
	}
}

func (sv *Statevector) applyRXX(q0, q1 int, theta float64) {
	m0 := sv.mask(q0)
	m1 := sv.mask(q1)
	c := complex(math.Cos(theta/2), 0)
	s := complex(0, -math.Sin(theta/2))
	for i := range sv.amps {
		// visit each pair once, from its lower index
		if i&m0 == 0 && i&m1 == 0 {
			j := i | m0 | m1
			a0, a1 := sv.amps[i], sv.amps[j]
			sv.amps[i] = c*a0 + s*a1
			sv.amps[j] = c*a1 + s*a0
		} else if i&m0 == 0 && i&m1 != 0 {
			j := (i | m0) &^ m1
			a0, a1 := sv.amps[i], sv.amps[j]
			sv.amps[i] = c*a0 + s*a1
			sv.amps[j] = c*a1 + s*a0
		}
	}
}

func (sv *Statevector) applyRYY(q0, q1 int, theta float64) {
	m0 := sv.mask(q0)
	m1 := sv.mask(q1)
	c := complex(math.Cos(theta/2), 0)
	sp := complex(0, math.Sin(theta/2))
	sm := complex(0, -math.Sin(theta/2))
	for i := range sv.amps {
		if i&m0 == 0 && i&m1 == 0 {
			// Y⊗Y flips the sign on the aligned pair
			j := i | m0 | m1
			a0, a1 := sv.amps[i], sv.amps[j]
			sv.amps[i] = c*a0 + sp*a1
			sv.amps[j] = c*a1 + sp*a0
		} else if i&m0 == 0 && i&m1 != 0 {
			j := (i | m0) &^ m1
			a0, a1 := sv.amps[i], sv.amps[j]
			sv.amps[i] = c*a0 + sm*a1
			sv.amps[j] = c*a1 + sm*a0
		}
	}
}

const probEps = 1e-16

// Probabilities returns the measurement distribution over bitstrings,
// dropping entries below numerical noise.
func (sv *Statevector) Probabilities() core.Distribution {
	probs := make(core.Distribution)
	for i, a := range sv.amps {
		p := real(a)*real(a) + imag(a)*imag(a)
		if p < probEps {
			continue
		}
		probs[sv.bitstring(i)] = p
	}
	return probs
}

func (sv *Statevector) bitstring(idx int) string {
	b := make([]byte, sv.n)
	for q := 0; q < sv.n; q++ {
		if idx&sv.mask(q) != 0 {
			b[q] = '1'
		} else {
			b[q] = '0'
		}
	}
	return string(b)
}

// SortedStates returns the indices with non-negligible probability as
// bitstrings in lexicographic order. Used for deterministic sampling.
func (sv *Statevector) SortedStates() []string {
	probs := sv.Probabilities()
	keys := make([]string, 0, len(probs))
	for k := range probs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
