package domain

import "slices"

// Frame is the IDE state right after one action. Step 0 is the
// initial state and carries no action.
type Frame struct {
	Step     int            `json:"step"`
	Action   *Action        `json:"action,omitempty"`
	Snapshot CourseSnapshot `json:"snapshot"`
}

// StepFailure records an action that was rejected during a recording.
// The failed action left no trace in the following frames.
type StepFailure struct {
	Index  int    `json:"index"`
	Action Action `json:"action"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

// Recording is the frame sequence produced by replaying a script.
type Recording struct {
	ID       string        `json:"id"`
	Actions  []Action      `json:"actions"`
	Frames   []Frame       `json:"frames"`
	Failures []StepFailure `json:"failures,omitempty"`

	// Sealed holds an encrypted copy of the recording written by store
	// middleware. Plain recordings leave it empty.
	Sealed []byte `json:"sealed,omitempty"`
}

// Final returns the last frame, or false for an empty recording.
func (r *Recording) Final() (Frame, bool) {
	if len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// Frame returns the frame for a step.
func (r *Recording) Frame(step int) (Frame, bool) {
	for _, f := range r.Frames {
		if f.Step == step {
			return f, true
		}
	}
	return Frame{}, false
}

// Clone returns a deep copy of the recording.
func (r *Recording) Clone() *Recording {
	if r == nil {
		return nil
	}
	c := *r
	c.Actions = slices.Clone(r.Actions)
	c.Failures = slices.Clone(r.Failures)
	if r.Frames != nil {
		c.Frames = make([]Frame, len(r.Frames))
		for i, f := range r.Frames {
			c.Frames[i] = f
			if f.Action != nil {
				a := *f.Action
				c.Frames[i].Action = &a
			}
			c.Frames[i].Snapshot = f.Snapshot.Clone()
		}
	}
	return &c
}
