// Package input defines backend-independent input events.
package input

// EventType identifies what an Event carries.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Button is a mouse button number (1 = left, 2 = middle, 3 = right).
type Button uint8

const (
	ButtonLeft   Button = 1
	ButtonMiddle Button = 2
	ButtonRight  Button = 3
)

// ButtonMask is the set of buttons held during a motion event.
type ButtonMask uint32

// MaskOf returns the mask bit for b.
func MaskOf(b Button) ButtonMask {
	return 1 << (b - 1)
}

// Has reports whether b is held.
func (m ButtonMask) Has(b Button) bool {
	return m&MaskOf(b) != 0
}

// Key is a keyboard key the viewer reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyR
	KeyF
	KeyW
	KeyP
)

// Event represents a processed input event.
type Event struct {
	Type    EventType
	Key     Key
	Width   int
	Height  int
	MouseX  int
	MouseY  int
	RelX    int // motion since the previous move event
	RelY    int
	WheelY  int // positive = away from the user
	Button  Button
	Buttons ButtonMask
}

// Queue collects the events of one frame.
type Queue struct {
	events []Event
}

// NewQueue creates an empty event queue.
func NewQueue() *Queue {
	return &Queue{
		events: make([]Event, 0, 16),
	}
}

// Reset drops the previous frame's events.
func (q *Queue) Reset() {
	q.events = q.events[:0]
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Events returns the events pushed since the last Reset.
func (q *Queue) Events() []Event {
	return q.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (q *Queue) IsKeyPressed(k Key) bool {
	for _, e := range q.events {
		if e.Type == EventKeyDown && e.Key == k {
			return true
		}
	}
	return false
}

// QuitRequested reports whether the window was asked to close.
func (q *Queue) QuitRequested() bool {
	for _, e := range q.events {
		if e.Type == EventQuit {
			return true
		}
	}
	return false
}
