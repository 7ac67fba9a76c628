package textarea

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/private-landing/termsurface/internal/terminal"
)

func newWithValue(v string) *Model {
	m := New()
	m.SetValue(v)
	return m
}

func TestSetValueCollapsesSelectionToEnd(t *testing.T) {
	m := newWithValue("héllo")
	start, end := m.Selection()
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
}

func TestSetSelectionClampsAndOrders(t *testing.T) {
	m := newWithValue("abc")

	m.SetSelection(10, -3)
	start, end := m.Selection()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)
}

func TestTypingInsertsAtCaret(t *testing.T) {
	m := newWithValue("ac")
	m.SetSelection(1, 1)

	m.KeyPress(terminal.KeyRunes, []rune("b"))
	assert.Equal(t, "abc", m.Value())

	start, end := m.Selection()
	assert.Equal(t, 2, start)
	assert.Equal(t, 2, end)
}

func TestTypingReplacesSelection(t *testing.T) {
	m := newWithValue("hello world")
	m.SetSelection(6, 11)

	m.KeyPress(terminal.KeyRunes, []rune("there"))
	assert.Equal(t, "hello there", m.Value())
}

func TestEnterInsertsNewlineByDefault(t *testing.T) {
	m := newWithValue("ab")
	m.KeyPress(terminal.KeyEnter, nil)
	assert.Equal(t, "ab\n", m.Value())
}

func TestBackspaceAndDelete(t *testing.T) {
	m := newWithValue("abcd")
	m.SetSelection(2, 2)

	m.KeyPress(terminal.KeyBackspace, nil)
	assert.Equal(t, "acd", m.Value())

	m.KeyPress(terminal.KeyDelete, nil)
	assert.Equal(t, "ad", m.Value())

	m.SetSelection(0, 0)
	m.KeyPress(terminal.KeyBackspace, nil)
	assert.Equal(t, "ad", m.Value())
}

func TestArrowKeysMoveCaret(t *testing.T) {
	m := newWithValue("one\ntwo\nthree")
	m.SetSelection(6, 6)

	m.KeyPress(terminal.KeyLeft, nil)
	start, _ := m.Selection()
	assert.Equal(t, 5, start)

	m.KeyPress(terminal.KeyUp, nil)
	start, _ = m.Selection()
	assert.Equal(t, 1, start)

	m.KeyPress(terminal.KeyDown, nil)
	m.KeyPress(terminal.KeyDown, nil)
	start, _ = m.Selection()
	assert.Equal(t, 9, start)

	m.KeyPress(terminal.KeyEnd, nil)
	start, _ = m.Selection()
	assert.Equal(t, 13, start)

	m.KeyPress(terminal.KeyHome, nil)
	start, _ = m.Selection()
	assert.Equal(t, 8, start)
}

func TestPreventDefaultSuppressesAction(t *testing.T) {
	m := newWithValue("ab")
	m.On(terminal.KeyPress, func(ev *terminal.Event) {
		if ev.Key == terminal.KeyEnter {
			ev.PreventDefault()
		}
	})

	m.KeyPress(terminal.KeyEnter, nil)
	assert.Equal(t, "ab", m.Value())

	m.KeyPress(terminal.KeyRunes, []rune("c"))
	assert.Equal(t, "abc", m.Value())
}

func TestHandlersRunInRegistrationOrder(t *testing.T) {
	m := New()
	var calls []string
	m.On(terminal.KeyPress, func(*terminal.Event) { calls = append(calls, "first") })
	m.On(terminal.KeyPress, func(*terminal.Event) { calls = append(calls, "second") })

	m.KeyPress(terminal.KeyOther, nil)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestScrollTopIsClamped(t *testing.T) {
	m := New()
	m.SetSize(80, 3)
	m.SetValue(strings.Repeat("line\n", 9) + "last")
	require.Equal(t, 10, m.ScrollHeight())

	m.SetScrollTop(-4)
	assert.Equal(t, 0, m.ScrollTop())

	m.SetScrollTop(m.ScrollHeight())
	assert.Equal(t, 7, m.ScrollTop())

	m.Scroll(-2)
	assert.Equal(t, 5, m.ScrollTop())
}

func TestOffsetAtMapsCells(t *testing.T) {
	m := newWithValue("ab\n世界x")

	assert.Equal(t, 0, m.OffsetAt(0, 0))
	assert.Equal(t, 2, m.OffsetAt(9, 0))
	assert.Equal(t, 3, m.OffsetAt(0, 1))
	assert.Equal(t, 3, m.OffsetAt(1, 1))
	assert.Equal(t, 4, m.OffsetAt(2, 1))
	assert.Equal(t, 5, m.OffsetAt(4, 1))
	assert.Equal(t, 6, m.OffsetAt(40, 7))
}

func TestPointerHandlersSeeOrderedState(t *testing.T) {
	m := newWithValue("hello")

	var downCaret, upCaret int
	m.On(terminal.PointerDown, func(*terminal.Event) { downCaret, _ = m.Selection() })
	m.On(terminal.PointerUp, func(*terminal.Event) { upCaret, _ = m.Selection() })

	m.PointerDown(1, 0)
	m.PointerUp(1, 0)

	assert.Equal(t, 5, downCaret, "pointer-down handlers observe the previous caret")
	assert.Equal(t, 1, upCaret, "pointer-up handlers observe the new caret")
}

func TestPointerDragSelects(t *testing.T) {
	m := newWithValue("hello world")

	m.PointerDown(8, 0)
	m.PointerMove(2, 0)
	m.PointerUp(3, 0)

	start, end := m.Selection()
	assert.Equal(t, 3, start)
	assert.Equal(t, 8, end)
}

func TestSetSizeHonoursStyleBounds(t *testing.T) {
	m := New()
	m.SetStyle("minWidth", "60")
	m.SetStyle("maxWidth", "100")
	m.SetStyle("minHeight", "10")
	m.SetStyle("border", "solid")

	m.SetSize(40, 5)
	w, h := m.Size()
	assert.Equal(t, 60, w)
	assert.Equal(t, 10, h)

	m.SetSize(200, 50)
	w, h = m.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 48, h)

	x, y := m.Origin()
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)
}

func TestViewShowsVisibleLines(t *testing.T) {
	m := New()
	m.SetSize(20, 2)
	m.SetValue("first\nsecond\nthird")
	m.SetScrollTop(m.ScrollHeight())

	out := m.View()
	assert.NotContains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.Contains(t, out, "third")
}

func TestLongLinesWrapIntoView(t *testing.T) {
	m := New()
	m.SetSize(70, 20)
	m.SetValue("terminal: x\n" + strings.Repeat("a", 70) + "TAILMARKER\nterminal: ")

	assert.Equal(t, 4, m.ScrollHeight())
	assert.Contains(t, m.View(), "TAILMARKER")
}

func TestTypingPastWidthStaysVisible(t *testing.T) {
	m := newWithValue("terminal: ")
	m.SetSize(70, 20)

	m.KeyPress(terminal.KeyRunes, []rune(strings.Repeat("b", 70)))
	m.KeyPress(terminal.KeyRunes, []rune("TYPEDEND"))

	start, end := m.Selection()
	assert.Equal(t, 88, start)
	assert.Equal(t, 88, end)
	assert.Equal(t, 2, m.ScrollHeight())
	assert.Contains(t, m.View(), "TYPEDEND")
}

func TestWrappedRowsScrollToCaret(t *testing.T) {
	m := New()
	m.SetSize(10, 2)
	m.SetValue(strings.Repeat("x", 45))
	require.Equal(t, 5, m.ScrollHeight())

	m.KeyPress(terminal.KeyRunes, []rune("END"))
	assert.Equal(t, 3, m.ScrollTop())
	assert.Contains(t, m.View(), "xxxxxEND")
}

func TestFullRowLeavesRoomForCaret(t *testing.T) {
	m := New()
	m.SetSize(10, 5)
	m.SetValue(strings.Repeat("x", 10))
	assert.Equal(t, 2, m.ScrollHeight())

	m.SetValue(strings.Repeat("x", 9))
	assert.Equal(t, 1, m.ScrollHeight())
}

func TestArrowKeysFollowWrappedRows(t *testing.T) {
	m := newWithValue(strings.Repeat("a", 25))
	m.SetSize(10, 5)

	m.KeyPress(terminal.KeyUp, nil)
	start, _ := m.Selection()
	assert.Equal(t, 15, start)

	m.KeyPress(terminal.KeyUp, nil)
	start, _ = m.Selection()
	assert.Equal(t, 5, start)

	m.KeyPress(terminal.KeyDown, nil)
	start, _ = m.Selection()
	assert.Equal(t, 15, start)

	m.KeyPress(terminal.KeyHome, nil)
	start, _ = m.Selection()
	assert.Equal(t, 0, start, "home goes to the start of the logical line")

	m.KeyPress(terminal.KeyEnd, nil)
	start, _ = m.Selection()
	assert.Equal(t, 25, start)
}

func TestOffsetAtMapsWrappedRows(t *testing.T) {
	m := newWithValue(strings.Repeat("a", 25))
	m.SetSize(10, 5)

	assert.Equal(t, 9, m.OffsetAt(15, 0))
	assert.Equal(t, 13, m.OffsetAt(3, 1))
	assert.Equal(t, 25, m.OffsetAt(15, 2))
}
