//go:build unit
// +build unit

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystemComponentsSetup(t *testing.T) {
	s := SCWithUnimplementedContainer()
	defer s.TearDown()

	assert.Equal(t, s, GetSystemComponents())
	assert.Nil(t, s.Channels.Check())

	info := s.GetEngineInfo()
	assert.Equal(t, MockMaxQubits, info.MaxQubits)
	assert.Equal(t, MockMaxShots, info.MaxShots)

	assert.Equal(t, 0, s.GetCurrentQueueSize())
	assert.False(t, s.IsQueueOverRefillThreshold())
}
