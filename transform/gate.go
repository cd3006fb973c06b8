package transform

// gate is the per-fragment first-match state: a fragment has no host node, so only
// its first eligible root child is tagged
type gate uint8

const (
	gateIdle  gate = iota // not inside a fragment of the active scope
	gateArmed             // inside a fragment, nothing tagged yet
	gateFired             // inside a fragment, first child satisfied
)

// arm captures the active frame's depth and gate, resets depth to 0 and arms a
// fresh gate; the returned func restores both
func (s *scopes) arm() func() {
	current := s.active()
	if current == nil {
		return func() {}
	}
	handle := len(s.frames) - 1
	prevGate := current.gate
	restoreDepth := s.reset()
	current.gate = gateArmed
	return func() {
		restoreDepth()
		s.frames[handle].gate = prevGate
	}
}

// blocked reports whether the active fragment gate already fired
func (s *scopes) blocked() bool {
	current := s.active()
	return current != nil && current.gate == gateFired
}

// fire disarms an armed gate; outside a fragment it is a no-op
func (s *scopes) fire() {
	if current := s.active(); current != nil && current.gate == gateArmed {
		current.gate = gateFired
	}
}
