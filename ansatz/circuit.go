package ansatz

import (
	"fmt"
	"math"

	"github.com/go-faster/errors"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/circuit"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/mixer"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/qubo"
)

// ErrDimensionMismatch is returned when qubit counts disagree or the
// parameter sequence is empty.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// coefficients below this magnitude produce no rotation
const coeffTol = 1e-15

// Build produces the ordered execution plan for one evaluation: state
// preparation, then for each round k a cost layer at gamma_k followed by
// the mixer sublayers at beta_k. The cost layer applies RZ(2*gamma*h_i)
// per site and RZZ(2*gamma*J_ij) per coupling; near-zero coefficients
// are skipped. All validation happens here, before anything is sampled.
func Build(ising *qubo.IsingModel, spec *mixer.Spec, prep circuit.StatePrep, params Params) (*circuit.Schedule, error) {
	if ising == nil || spec == nil {
		return nil, errors.Wrap(ErrDimensionMismatch, "cost model and mixer spec are required")
	}
	if ising.N != spec.N {
		return nil, errors.Wrap(ErrDimensionMismatch,
			fmt.Sprintf("cost hamiltonian has %d qubits, mixer has %d", ising.N, spec.N))
	}
	if prep.N != spec.N {
		return nil, errors.Wrap(ErrDimensionMismatch,
			fmt.Sprintf("initial state has %d qubits, mixer has %d", prep.N, spec.N))
	}
	if len(params) == 0 {
		return nil, errors.Wrap(ErrDimensionMismatch, "parameter sequence is empty")
	}

	sublayers := spec.Sublayers()
	rounds := make([]circuit.Round, 0, len(params))
	for _, a := range params {
		r := circuit.Round{
			Gamma: a.Gamma,
			Beta:  a.Beta,
			Cost:  costLayer(ising, a.Gamma),
			Mixer: scaleSublayers(sublayers, a.Beta),
		}
		rounds = append(rounds, r)
	}
	return &circuit.Schedule{
		N:      spec.N,
		Prep:   prep,
		Rounds: rounds,
	}, nil
}

// costLayer emits the diagonal phase rotations for one round. All ops are
// diagonal in the computational basis and commute, so a single layer is a
// valid parallel grouping even though rzz pairs may share qubits.
func costLayer(ising *qubo.IsingModel, gamma float64) circuit.Layer {
	layer := circuit.Layer{}
	for i := 0; i < ising.N; i++ {
		if math.Abs(ising.H[i]) <= coeffTol {
			continue
		}
		layer = append(layer, circuit.Op{
			Gate:  circuit.GateRZ,
			Q0:    i,
			Q1:    -1,
			Angle: 2.0 * gamma * ising.H[i],
		})
	}
	for i := 0; i < ising.N; i++ {
		for j := i + 1; j < ising.N; j++ {
			if math.Abs(ising.J[i][j]) <= coeffTol {
				continue
			}
			layer = append(layer, circuit.Op{
				Gate:  circuit.GateRZZ,
				Q0:    i,
				Q1:    j,
				Angle: 2.0 * gamma * ising.J[i][j],
			})
		}
	}
	return layer
}

func scaleSublayers(sublayers []circuit.Layer, beta float64) []circuit.Layer {
	out := make([]circuit.Layer, len(sublayers))
	for li, l := range sublayers {
		scaled := make(circuit.Layer, len(l))
		for oi, op := range l {
			op.Angle *= beta
			scaled[oi] = op
		}
		out[li] = scaled
	}
	return out
}
