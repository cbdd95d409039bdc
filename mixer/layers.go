package mixer

import (
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/circuit"
)

// Sublayers partitions the mixer operations into the minimum practical
// number of layers such that no two ops in a layer share a qubit.
//
// For the x mixer every op acts on a distinct qubit, so the result is a
// single layer of n rotations. For the xy mixer the edge set is greedily
// edge-colored: edges are processed in input order and each edge takes
// the lowest-numbered sublayer not already occupied on either endpoint.
// Both rotations of an edge (RXX then RYY) stay in the same sublayer in
// their given order, which is safe because they commute and touch the
// same pair. A ring with even n yields exactly 2 sublayers.
func (s *Spec) Sublayers() []circuit.Layer {
	if s.Kind == KindX {
		return []circuit.Layer{append(circuit.Layer{}, s.Ops...)}
	}
	layers := []circuit.Layer{}
	occupied := []map[int]struct{}{}
	for _, e := range s.Edges {
		idx := -1
		for li, occ := range occupied {
			if _, ok := occ[e.I]; ok {
				continue
			}
			if _, ok := occ[e.J]; ok {
				continue
			}
			idx = li
			break
		}
		if idx < 0 {
			layers = append(layers, circuit.Layer{})
			occupied = append(occupied, map[int]struct{}{})
			idx = len(layers) - 1
		}
		layers[idx] = append(layers[idx],
			circuit.Op{Gate: circuit.GateRXX, Q0: e.I, Q1: e.J, Angle: BetaScale},
			circuit.Op{Gate: circuit.GateRYY, Q0: e.I, Q1: e.J, Angle: BetaScale},
		)
		occupied[idx][e.I] = struct{}{}
		occupied[idx][e.J] = struct{}{}
	}
	return layers
}
