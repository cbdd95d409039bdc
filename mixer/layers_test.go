//go:build unit
// +build unit

package mixer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/circuit"
)

func layerEdges(l circuit.Layer) [][2]int {
	edges := [][2]int{}
	for i := 0; i < len(l); i += 2 {
		edges = append(edges, [2]int{l[i].Q0, l[i].Q1})
	}
	return edges
}

func TestSublayersEvenRing(t *testing.T) {
	s, err := Build(4, KindXY, RingEdges(4))
	assert.Nil(t, err)
	layers := s.Sublayers()
	assert.Equal(t, 2, len(layers))
	assert.Equal(t, [][2]int{{0, 1}, {2, 3}}, layerEdges(layers[0]))
	assert.Equal(t, [][2]int{{1, 2}, {3, 0}}, layerEdges(layers[1]))
}

func TestSublayersOddRing(t *testing.T) {
	s, err := Build(5, KindXY, RingEdges(5))
	assert.Nil(t, err)
	layers := s.Sublayers()
	// an odd cycle is not 2-edge-colorable
	assert.Equal(t, 3, len(layers))
	assertDisjointQubits(t, layers)
	assert.Equal(t, 10, totalOps(layers))
}

func TestSublayersComplete(t *testing.T) {
	s, err := Build(4, KindXY, CompleteEdges(4))
	assert.Nil(t, err)
	layers := s.Sublayers()
	assertDisjointQubits(t, layers)
	assert.Equal(t, 12, totalOps(layers))
}

func TestSublayersXMixer(t *testing.T) {
	s, err := Build(6, KindX, nil)
	assert.Nil(t, err)
	layers := s.Sublayers()
	assert.Equal(t, 1, len(layers))
	assert.Equal(t, 6, len(layers[0]))
	assertDisjointQubits(t, layers)
}

func assertDisjointQubits(t *testing.T, layers []circuit.Layer) {
	for li, l := range layers {
		seen := map[int]int{}
		for _, op := range l {
			for _, q := range op.Qubits() {
				seen[q]++
			}
		}
		for q, c := range seen {
			// an xy edge contributes its pair twice (rxx and ryy)
			assert.LessOrEqual(t, c, 2, "layer %d qubit %d used %d times", li, q, c)
		}
	}
}

func totalOps(layers []circuit.Layer) int {
	n := 0
	for _, l := range layers {
		n += len(l)
	}
	return n
}
