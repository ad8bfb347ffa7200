package domain

// MouseEventType describes the last pointer event.
type MouseEventType string

const (
	MouseEventMove    MouseEventType = "move"
	MouseEventClick   MouseEventType = "click"
	MouseEventScroll  MouseEventType = "scroll"
	MouseEventPress   MouseEventType = "press"
	MouseEventRelease MouseEventType = "release"
)

// MouseButton names a pointer button.
type MouseButton string

const (
	ButtonLeft   MouseButton = "left"
	ButtonRight  MouseButton = "right"
	ButtonMiddle MouseButton = "middle"
)

// ButtonStates holds which buttons are held down.
type ButtonStates struct {
	Left   bool `json:"left"`
	Right  bool `json:"right"`
	Middle bool `json:"middle"`
}

// Mouse is the pointer state. Timestamp is a logical counter that
// advances by one per mouse action; it never reads the wall clock.
type Mouse struct {
	X              float64        `json:"x"`
	Y              float64        `json:"y"`
	Timestamp      int64          `json:"timestamp"`
	Type           MouseEventType `json:"type"`
	ButtonStates   ButtonStates   `json:"buttonStates"`
	ScrollPosition Point          `json:"scrollPosition"`
}

// NewMouse returns the pointer at the origin with no buttons pressed.
func NewMouse() Mouse {
	return Mouse{Type: MouseEventMove}
}

// Position returns the pointer coordinates.
func (m *Mouse) Position() Point {
	return Point{X: m.X, Y: m.Y}
}

// MoveTo places the pointer at p.
func (m *Mouse) MoveTo(p Point) {
	m.X, m.Y = p.X, p.Y
	m.tick(MouseEventMove)
}

// Click records a press-and-release at the current position.
// Every button is up afterwards.
func (m *Mouse) Click() {
	m.ButtonStates = ButtonStates{}
	m.tick(MouseEventClick)
}

// Scroll offsets the scroll position by delta.
func (m *Mouse) Scroll(delta Point) {
	m.ScrollPosition.X += delta.X
	m.ScrollPosition.Y += delta.Y
	m.tick(MouseEventScroll)
}

// Press holds b down.
func (m *Mouse) Press(b MouseButton) {
	m.setButton(b, true)
	m.tick(MouseEventPress)
}

// Release lets b go.
func (m *Mouse) Release(b MouseButton) {
	m.setButton(b, false)
	m.tick(MouseEventRelease)
}

func (m *Mouse) setButton(b MouseButton, down bool) {
	switch b {
	case ButtonLeft:
		m.ButtonStates.Left = down
	case ButtonRight:
		m.ButtonStates.Right = down
	case ButtonMiddle:
		m.ButtonStates.Middle = down
	}
}

func (m *Mouse) tick(t MouseEventType) {
	m.Type = t
	m.Timestamp++
}
