// Package terminal implements a prompt-driven command surface on top of an
// editable text control.
package terminal

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"unicode/utf8"
)

// DefaultPrompt is used when no prompt is configured.
const DefaultPrompt = "terminal: "

// CommandField is the payload key carrying the submitted command line.
const CommandField = "cmd"

// ScrollStep is how far Up/Down scroll the display.
const ScrollStep = 10

var (
	// ErrNoControl is returned when New is called without a control.
	ErrNoControl = errors.New("terminal: a text control is required")

	// ErrNoExecutor is reported as command output when no executor is set.
	ErrNoExecutor = errors.New("terminal: no command executor configured")
)

// Cause tags the input that triggered a cursor check.
type Cause int

const (
	CauseMouse Cause = iota
	CauseArrow
	CauseHome
)

// Executor runs a command payload against the remote endpoint and returns
// its textual output.
type Executor interface {
	Execute(ctx context.Context, payload map[string]string) (string, error)
}

// Result is the single terminal outcome of a submitted command.
type Result struct {
	Data  string
	Error bool
}

// Task performs one command round-trip.
type Task func(ctx context.Context) Result

// Options configures a Surface. All fields are optional.
type Options struct {
	Prompt   string
	Style    map[string]string
	Tokens   map[string]string
	Executor Executor

	// Schedule runs a task off the event loop and must eventually hand the
	// result to Finish on the loop. Nil runs tasks inline.
	Schedule func(t Task)
}

// Surface binds a prompt and command dispatch to a Control.
type Surface struct {
	control  Control
	prompt   string
	style    map[string]string
	tokens   map[string]string
	executor Executor
	schedule func(t Task)

	savedCursor int
}

// DefaultStyle returns the style attributes applied when the caller supplies
// none. Sizes are in terminal cells.
func DefaultStyle() map[string]string {
	return map[string]string{
		"background": "#1A1A1A",
		"color":      "#1AFF1A",
		"minWidth":   "60",
		"maxWidth":   "120",
		"minHeight":  "16",
		"border":     "solid lightgray",
		"margin":     "0 1",
		"padding":    "0 1",
		"fontSize":   "13pt",
		"lineHeight": "150%",
		"fontFamily": "monospace",
	}
}

// New binds a Surface to control, styles it and writes the first prompt.
func New(control Control, opts Options) (*Surface, error) {
	if control == nil {
		return nil, ErrNoControl
	}

	s := &Surface{
		control:  control,
		prompt:   opts.Prompt,
		style:    DefaultStyle(),
		tokens:   opts.Tokens,
		executor: opts.Executor,
		schedule: opts.Schedule,
	}
	if s.prompt == "" {
		s.prompt = DefaultPrompt
	}
	if s.schedule == nil {
		s.schedule = s.runInline
	}

	maps.Copy(s.style, opts.Style)
	for _, name := range slices.Sorted(maps.Keys(s.style)) {
		control.SetStyle(name, s.style[name])
	}

	control.SetValue(s.prompt)

	control.On(KeyPress, s.onKeyPress)
	control.On(PointerDown, s.onPointerDown)
	control.On(PointerUp, s.onPointerUp)
	return s, nil
}

// Prompt returns the prompt text.
func (s *Surface) Prompt() string {
	return s.prompt
}

// Style returns a copy of the merged style configuration.
func (s *Surface) Style() map[string]string {
	return maps.Clone(s.style)
}

// SavedCursor returns the cursor recorded at the last key or pointer press.
func (s *Surface) SavedCursor() int {
	return s.savedCursor
}

// Cursor returns the selection start.
func (s *Surface) Cursor() int {
	start, _ := s.control.Selection()
	return start
}

// SetCursor selects [start, end]. Without end the selection collapses to
// start.
func (s *Surface) SetCursor(start int, end ...int) {
	e := start
	if len(end) > 0 {
		e = end[0]
	}
	s.control.SetSelection(start, e)
}

// LastPromptEnd returns the offset just past the last prompt in the buffer.
// When the prompt is missing it falls back to len(prompt)-1.
func (s *Surface) LastPromptEnd() int {
	v := s.control.Value()
	n := utf8.RuneCountInString(s.prompt)
	idx := strings.LastIndex(v, s.prompt)
	if idx < 0 {
		return n - 1
	}
	return utf8.RuneCountInString(v[:idx]) + n
}

// CheckCursor keeps cursor placement out of the committed part of the
// buffer.
func (s *Surface) CheckCursor(cause Cause, ev *Event) {
	guard := s.LastPromptEnd()
	start, end := s.control.Selection()

	switch cause {
	case CauseMouse:
		if start < guard && start == end {
			s.SetCursor(guard)
		}
	case CauseArrow:
		switch ev.Key {
		case KeyLeft:
			if start == guard {
				ev.PreventDefault()
			}
		case KeyUp:
			ev.PreventDefault()
			s.control.SetScrollTop(s.control.ScrollTop() - ScrollStep)
		case KeyDown:
			ev.PreventDefault()
			s.control.SetScrollTop(s.control.ScrollTop() + ScrollStep)
		}
	case CauseHome:
		ev.PreventDefault()
		s.SetCursor(guard)
	}
}

// PendingCommand returns the text typed after the last prompt.
func (s *Surface) PendingCommand() string {
	runes := []rune(s.control.Value())
	from := min(max(s.LastPromptEnd(), 0), len(runes))
	return string(runes[from:])
}

// Submit sends command to the executor. The result is rendered by Finish.
func (s *Surface) Submit(command string) {
	payload := BuildPayload(command, s.tokens)
	exec := s.executor
	s.schedule(func(ctx context.Context) Result {
		if exec == nil {
			return Result{Data: ErrNoExecutor.Error(), Error: true}
		}
		out, err := exec.Execute(ctx, payload)
		if err != nil {
			return Result{Data: errorOutput(err), Error: true}
		}
		return Result{Data: out}
	})
}

// Finish appends a command's output and a fresh prompt, then scrolls to the
// bottom.
func (s *Surface) Finish(r Result) {
	s.control.SetValue(s.control.Value() + "\n" + r.Data + "\n" + s.prompt)
	s.control.SetScrollTop(s.control.ScrollHeight())
}

// BuildPayload merges tokens with the command. The command field always
// wins over a token of the same name.
func BuildPayload(command string, tokens map[string]string) map[string]string {
	payload := make(map[string]string, len(tokens)+1)
	maps.Copy(payload, tokens)
	payload[CommandField] = command
	return payload
}

func (s *Surface) onKeyPress(ev *Event) {
	s.savedCursor = s.Cursor()
	switch ev.Key {
	case KeyEnter:
		s.onEnter(ev)
	case KeyHome:
		s.CheckCursor(CauseHome, ev)
	case KeyLeft, KeyUp, KeyRight, KeyDown:
		s.CheckCursor(CauseArrow, ev)
	}
}

func (s *Surface) onPointerDown(*Event) {
	s.savedCursor = s.Cursor()
}

func (s *Surface) onPointerUp(ev *Event) {
	s.CheckCursor(CauseMouse, ev)
}

func (s *Surface) onEnter(ev *Event) {
	ev.PreventDefault()
	if cmd := s.PendingCommand(); len(cmd) > 0 {
		s.Submit(cmd)
	}
}

func (s *Surface) runInline(t Task) {
	s.Finish(t(context.Background()))
}

// errorOutput prefers the response payload carried by the error.
func errorOutput(err error) string {
	var p interface{ Payload() string }
	if errors.As(err, &p) {
		return p.Payload()
	}
	return err.Error()
}
