package sim

import (
	"github.com/go-faster/errors"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/common"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/qubo"
)

// Expectation returns the exact objective expectation of the state. A
// non-negative weight restricts the probability mass to bitstrings of that
// Hamming weight and renormalizes, which is what sampling followed by
// discard post-selection converges to.
func (sv *Statevector) Expectation(p *qubo.Problem, weight int) (float64, error) {
	if p.N != sv.Qubits() {
		return 0, errors.Errorf("problem size(%d) does not match state size(%d)", p.N, sv.Qubits())
	}
	sum := 0.0
	mass := 0.0
	for bitstring, prob := range sv.Probabilities() {
		if weight >= 0 && common.HammingWeight(bitstring) != weight {
			continue
		}
		v, err := p.EvaluateBitstring(bitstring)
		if err != nil {
			return 0, err
		}
		sum += v * prob
		mass += prob
	}
	if mass == 0 {
		return 0, errors.Errorf("no probability mass at weight %d", weight)
	}
	return sum / mass, nil
}
