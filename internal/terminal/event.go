package terminal

// EventKind identifies which input hook raised an event.
type EventKind int

const (
	KeyPress EventKind = iota
	PointerDown
	PointerUp
)

// Key is a navigation or editing key understood by the surface and control.
type Key int

const (
	KeyOther Key = iota
	KeyRunes
	KeyEnter
	KeyHome
	KeyEnd
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
	KeyBackspace
	KeyDelete
)

func (k Key) String() string {
	switch k {
	case KeyRunes:
		return "runes"
	case KeyEnter:
		return "enter"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyLeft:
		return "left"
	case KeyUp:
		return "up"
	case KeyRight:
		return "right"
	case KeyDown:
		return "down"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	default:
		return "other"
	}
}

// Event is delivered to handlers registered on a Control. Handlers may
// suppress the control's default action with PreventDefault.
type Event struct {
	Kind  EventKind
	Key   Key
	Runes []rune

	// Offset is the buffer offset under the pointer for pointer events.
	Offset int

	prevented bool
}

// PreventDefault suppresses the control's default action for this event.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// Handler reacts to a single input event.
type Handler func(ev *Event)

// Control is the editable text surface the widget binds to. Offsets are in
// runes.
type Control interface {
	Value() string
	SetValue(v string)
	Selection() (start, end int)
	SetSelection(start, end int)
	ScrollTop() int
	SetScrollTop(top int)
	ScrollHeight() int
	SetStyle(name, value string)
	On(kind EventKind, h Handler)
}
