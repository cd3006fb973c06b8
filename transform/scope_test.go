package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopes_EnterExit(t *testing.T) {
	s := &scopes{}
	assert.True(t, s.empty())
	assert.Nil(t, s.active())

	outer := s.enter("Outer")
	s.active().depth = 2
	inner := s.enter("Inner")
	assert.Equal(t, "Inner", s.active().name)
	assert.Equal(t, 0, s.active().depth)

	s.exit(inner)
	assert.Equal(t, "Outer", s.active().name)
	assert.Equal(t, 2, s.active().depth)
	s.exit(outer)
	assert.True(t, s.empty())
}

func TestScopes_UnbalancedExit(t *testing.T) {
	s := &scopes{}
	outer := s.enter("Outer")
	s.enter("Inner")
	assert.Panics(t, func() { s.exit(outer) })
}

func TestScopes_DepthRestore(t *testing.T) {
	s := &scopes{}
	assert.NotPanics(t, func() { s.descend()() })

	s.enter("Card")
	restoreOuter := s.descend()
	restoreInner := s.descend()
	assert.Equal(t, 2, s.active().depth)
	restoreInner()
	assert.Equal(t, 1, s.active().depth)

	restoreReset := s.reset()
	assert.Equal(t, 0, s.active().depth)
	restoreReset()
	assert.Equal(t, 1, s.active().depth)
	restoreOuter()
	assert.Equal(t, 0, s.active().depth)
}

func TestScopes_Gate(t *testing.T) {
	s := &scopes{}
	s.fire()
	assert.False(t, s.blocked())

	s.enter("Tabs")
	s.fire()
	assert.False(t, s.blocked(), "fire outside a fragment")

	s.active().depth = 3
	restoreOuter := s.arm()
	assert.Equal(t, 0, s.active().depth)
	assert.Equal(t, gateArmed, s.active().gate)

	restoreInner := s.arm()
	s.fire()
	assert.True(t, s.blocked())
	restoreInner()
	assert.False(t, s.blocked(), "outer gate is still armed")

	s.fire()
	assert.True(t, s.blocked())
	restoreOuter()
	assert.Equal(t, gateIdle, s.active().gate)
	assert.Equal(t, 3, s.active().depth)

	handle := s.enter("Nested")
	assert.Equal(t, gateIdle, s.active().gate, "fresh scopes start without a gate")
	s.exit(handle)
}

func TestIsComponentName(t *testing.T) {
	tests := []struct {
		name   string
		expect bool
	}{
		{"GoodButton", true},
		{"Ärger", true},
		{"button", false},
		{"_Private", false},
		{"$Dollar", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, isComponentName(tt.name), tt.name)
	}
}
