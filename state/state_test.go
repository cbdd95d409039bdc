//go:build unit
// +build unit

package state

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"

	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/circuit"
	"github.com/chanakyaVBSL/quantum-portfolio-qaoa/mixer"
)

func TestSelectUniformForXMixer(t *testing.T) {
	p, err := Select(4, 0, mixer.KindX, VariantFixed)
	assert.Nil(t, err)
	assert.Equal(t, circuit.PrepUniform, p.Kind)
	assert.Equal(t, 4, p.N)
}

func TestSelectFixedBasisState(t *testing.T) {
	p, err := Select(4, 2, mixer.KindXY, VariantFixed)
	assert.Nil(t, err)
	assert.Equal(t, circuit.PrepBasis, p.Kind)
	assert.Equal(t, 2, p.Weight)
	assert.Equal(t, "1100", Bitstring(p))
}

func TestSelectDicke(t *testing.T) {
	p, err := Select(4, 2, mixer.KindXY, VariantDicke)
	assert.Nil(t, err)
	assert.Equal(t, circuit.PrepDicke, p.Kind)
	assert.Equal(t, 2, p.Weight)
}

func TestSelectCardinalityBounds(t *testing.T) {
	tests := []struct {
		name string
		b    int
	}{
		{name: "negative", b: -1},
		{name: "over n", b: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Select(4, tt.b, mixer.KindXY, VariantFixed)
			assert.True(t, errors.Is(err, ErrInvalidCardinality))
		})
	}
}

func TestToVariant(t *testing.T) {
	v, err := ToVariant("dicke")
	assert.Nil(t, err)
	assert.Equal(t, VariantDicke, v)
	v, err = ToVariant("")
	assert.Nil(t, err)
	assert.Equal(t, VariantFixed, v)
	_, err = ToVariant("ghz")
	assert.NotNil(t, err)
}
