package transform

import "fmt"

// frame is one open component scope
type frame struct {
	name  string
	depth int  // markup nesting below the scope's root level
	gate  gate // fragment gate armed within this scope
}

// scopeHandle identifies the frame pushed by enter
type scopeHandle int

// scopes tracks open component scopes; the top frame is active
type scopes struct {
	frames []frame
}

// enter pushes a frame at depth 0 with no gate
func (s *scopes) enter(name string) scopeHandle {
	s.frames = append(s.frames, frame{name: name})
	return scopeHandle(len(s.frames) - 1)
}

// exit pops the frame pushed by the matching enter
func (s *scopes) exit(handle scopeHandle) {
	if int(handle) != len(s.frames)-1 {
		panic(fmt.Sprintf("unbalanced scope exit: handle %d, depth %d", handle, len(s.frames)))
	}
	s.frames = s.frames[:handle]
}

// active returns the top frame or nil outside any component
func (s *scopes) active() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

func (s *scopes) empty() bool {
	return len(s.frames) == 0
}

// descend increments the active frame's depth and returns a func restoring the
// pre-increment value
func (s *scopes) descend() func() {
	current := s.active()
	if current == nil {
		return func() {}
	}
	handle := len(s.frames) - 1
	depth := current.depth
	current.depth++
	return func() {
		s.frames[handle].depth = depth
	}
}

// reset sets the active frame's depth to 0 and returns a restore func
func (s *scopes) reset() func() {
	current := s.active()
	if current == nil {
		return func() {}
	}
	handle := len(s.frames) - 1
	depth := current.depth
	current.depth = 0
	return func() {
		s.frames[handle].depth = depth
	}
}
