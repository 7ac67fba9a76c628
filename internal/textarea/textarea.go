// Package textarea provides an in-memory editable text control with
// browser-textarea semantics: a value, a selection, a scroll position, a
// style bag and input hooks whose default actions handlers may suppress.
package textarea

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/private-landing/termsurface/internal/terminal"
	"github.com/private-landing/termsurface/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is a multi-line text control. Offsets are rune indexes into the
// value. Lines longer than the content width soft-wrap, and scroll positions
// count the wrapped rows.
type Model struct {
	runes      []rune
	start, end int

	anchor   int
	dragging bool

	scrollTop     int
	width, height int

	style    map[string]string
	handlers map[terminal.EventKind][]terminal.Handler
}

var _ terminal.Control = (*Model)(nil)

// New returns an empty control with an 80x24 content area.
func New() *Model {
	return &Model{
		width:    defaultWidth,
		height:   defaultHeight,
		style:    map[string]string{},
		handlers: map[terminal.EventKind][]terminal.Handler{},
	}
}

// Value returns the full text.
func (m *Model) Value() string {
	return string(m.runes)
}

// SetValue replaces the text and collapses the selection to its end.
func (m *Model) SetValue(v string) {
	m.runes = []rune(v)
	m.start, m.end = len(m.runes), len(m.runes)
	m.dragging = false
	m.SetScrollTop(m.scrollTop)
}

// Selection returns the selection range.
func (m *Model) Selection() (start, end int) {
	return m.start, m.end
}

// SetSelection clamps and orders the range before applying it.
func (m *Model) SetSelection(start, end int) {
	start, end = m.clamp(start), m.clamp(end)
	if end < start {
		start, end = end, start
	}
	m.start, m.end = start, end
}

// ScrollTop returns the first visible row.
func (m *Model) ScrollTop() int {
	return m.scrollTop
}

// SetScrollTop scrolls so top is the first visible row, within bounds.
func (m *Model) SetScrollTop(top int) {
	m.scrollTop = max(0, min(top, m.ScrollHeight()-m.height))
}

// ScrollHeight returns the number of rows the value takes once wrapped.
func (m *Model) ScrollHeight() int {
	return len(m.layout())
}

// SetStyle sets one style attribute.
func (m *Model) SetStyle(name, value string) {
	m.style[name] = value
}

// Style returns a copy of the style attributes.
func (m *Model) Style() map[string]string {
	return maps.Clone(m.style)
}

// On registers h for events of the given kind. Handlers run in registration
// order.
func (m *Model) On(kind terminal.EventKind, h terminal.Handler) {
	m.handlers[kind] = append(m.handlers[kind], h)
}

// Size returns the content area in cells.
func (m *Model) Size() (width, height int) {
	return m.width, m.height
}

// SetSize fits the content area into an outer area of w x h cells, honouring
// the minWidth, maxWidth and minHeight attributes.
func (m *Model) SetSize(w, h int) {
	frame := m.frame()
	width := w - frame.GetHorizontalFrameSize()
	if maxW := ui.IntAttr(m.style, "maxWidth", 0); maxW > 0 {
		width = min(width, maxW)
	}
	m.width = max(width, ui.IntAttr(m.style, "minWidth", 1), 1)
	m.height = max(h-frame.GetVerticalFrameSize(), ui.IntAttr(m.style, "minHeight", 1), 1)
	m.SetScrollTop(m.scrollTop)
}

// Origin returns where the content area starts relative to the rendered
// frame's top-left corner.
func (m *Model) Origin() (x, y int) {
	f := m.frame()
	x = f.GetMarginLeft() + f.GetBorderLeftSize() + f.GetPaddingLeft()
	y = f.GetMarginTop() + f.GetBorderTopSize() + f.GetPaddingTop()
	return x, y
}

// KeyPress dispatches a key to handlers and then applies the default action
// unless a handler prevented it.
func (m *Model) KeyPress(key terminal.Key, runes []rune) {
	ev := &terminal.Event{Kind: terminal.KeyPress, Key: key, Runes: runes}
	m.fire(ev)
	if ev.DefaultPrevented() {
		return
	}

	switch key {
	case terminal.KeyRunes:
		m.insert(runes)
	case terminal.KeyEnter:
		m.insert([]rune{'\n'})
	case terminal.KeyBackspace:
		if m.start == m.end {
			m.remove(m.start-1, m.start)
		} else {
			m.remove(m.start, m.end)
		}
	case terminal.KeyDelete:
		if m.start == m.end {
			m.remove(m.start, m.start+1)
		} else {
			m.remove(m.start, m.end)
		}
	case terminal.KeyLeft:
		if m.start == m.end {
			m.SetSelection(m.start-1, m.start-1)
		} else {
			m.SetSelection(m.start, m.start)
		}
	case terminal.KeyRight:
		if m.start == m.end {
			m.SetSelection(m.end+1, m.end+1)
		} else {
			m.SetSelection(m.end, m.end)
		}
	case terminal.KeyHome:
		off := m.lineStart(m.start)
		m.SetSelection(off, off)
	case terminal.KeyEnd:
		off := m.lineEndFrom(m.end)
		m.SetSelection(off, off)
	case terminal.KeyUp, terminal.KeyDown:
		rows := m.layout()
		row := rowOf(rows, m.start)
		x := m.cellX(rows[row], m.start)
		if key == terminal.KeyUp {
			row--
		} else {
			row++
		}
		if row >= 0 && row < len(rows) {
			off := m.column(rows, row, x)
			m.SetSelection(off, off)
		}
	default:
		return
	}
	m.scrollToCaret()
}

// PointerDown places the caret under (x, y) and starts a drag selection.
// Handlers run before the caret moves.
func (m *Model) PointerDown(x, y int) {
	off := m.OffsetAt(x, y)
	ev := &terminal.Event{Kind: terminal.PointerDown, Offset: off}
	m.fire(ev)
	if ev.DefaultPrevented() {
		return
	}
	m.anchor = off
	m.dragging = true
	m.SetSelection(off, off)
}

// PointerMove extends an active drag selection.
func (m *Model) PointerMove(x, y int) {
	if !m.dragging {
		return
	}
	m.SetSelection(m.anchor, m.OffsetAt(x, y))
}

// PointerUp ends a drag selection and then runs handlers.
func (m *Model) PointerUp(x, y int) {
	off := m.OffsetAt(x, y)
	if m.dragging {
		m.SetSelection(m.anchor, off)
		m.dragging = false
	}
	m.fire(&terminal.Event{Kind: terminal.PointerUp, Offset: off})
}

// Scroll moves the viewport by delta rows.
func (m *Model) Scroll(delta int) {
	m.SetScrollTop(m.scrollTop + delta)
}

// OffsetAt maps a content-area cell to a buffer offset. Cells past the end
// of a row map to the row's last offset.
func (m *Model) OffsetAt(x, y int) int {
	rows := m.layout()
	row := max(0, min(m.scrollTop+y, len(rows)-1))
	return m.column(rows, row, x)
}

// View renders the visible rows inside the styled frame.
func (m *Model) View() string {
	rows := m.layout()
	lines := make([]string, 0, m.height)
	for i := m.scrollTop; i < m.scrollTop+m.height && i < len(rows); i++ {
		lines = append(lines, m.renderRow(rows, i))
	}

	frame := m.frame()
	return frame.
		Width(m.width + frame.GetHorizontalPadding()).
		Height(m.height + frame.GetVerticalPadding()).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderRow(rows []span, i int) string {
	var b strings.Builder
	r := rows[i]
	for off := r.start; off < r.end; off++ {
		selected := off >= m.start && off < m.end
		caret := m.start == m.end && off == m.start
		if selected || caret {
			b.WriteString(ui.CaretStyle.Render(string(m.runes[off])))
		} else {
			b.WriteRune(m.runes[off])
		}
	}
	if m.start == m.end && rowOf(rows, m.start) == i && m.start == r.end {
		b.WriteString(ui.CaretStyle.Render(" "))
	}
	return b.String()
}

func (m *Model) frame() lipgloss.Style {
	return ui.StyleFromAttributes(m.style)
}

func (m *Model) fire(ev *terminal.Event) {
	for _, h := range m.handlers[ev.Kind] {
		h(ev)
	}
}

func (m *Model) insert(text []rune) {
	m.runes = slices.Concat(m.runes[:m.start], text, m.runes[m.end:])
	off := m.start + len(text)
	m.start, m.end = off, off
}

func (m *Model) remove(from, to int) {
	from, to = m.clamp(from), m.clamp(to)
	if from >= to {
		return
	}
	m.runes = slices.Delete(m.runes, from, to)
	m.start, m.end = from, from
}

func (m *Model) clamp(off int) int {
	return max(0, min(off, len(m.runes)))
}

// lineStart returns the offset where the logical line holding off begins.
func (m *Model) lineStart(off int) int {
	off = m.clamp(off)
	for off > 0 && m.runes[off-1] != '\n' {
		off--
	}
	return off
}

func (m *Model) lineEndFrom(start int) int {
	if i := slices.Index(m.runes[start:], '\n'); i >= 0 {
		return start + i
	}
	return len(m.runes)
}

// span is one visual row: the offsets [start, end) of a logical line that
// fit in the content width.
type span struct {
	start, end int
}

// layout splits the value into visual rows.
func (m *Model) layout() []span {
	var rows []span
	start := 0
	for {
		end := m.lineEndFrom(start)
		rows = m.wrap(rows, start, end)
		if end == len(m.runes) {
			return rows
		}
		start = end + 1
	}
}

// wrap appends the rows of the logical line [start, end). A rune wider than
// the row still gets a row of its own. A line that fills its last row gets
// an empty row after it so the caret has a cell at the line end.
func (m *Model) wrap(rows []span, start, end int) []span {
	w := 0
	for i := start; i < end; i++ {
		rw := runeWidth(m.runes[i])
		if w+rw > m.width && i > start {
			rows = append(rows, span{start, i})
			start, w = i, 0
		}
		w += rw
	}
	rows = append(rows, span{start, end})
	if w >= m.width {
		rows = append(rows, span{end, end})
	}
	return rows
}

// rowOf returns the row holding off. An offset on a wrap point belongs to
// the row that starts there.
func rowOf(rows []span, off int) int {
	for i, r := range rows {
		if off < r.end {
			return i
		}
		if off == r.end && (i == len(rows)-1 || rows[i+1].start > off) {
			return i
		}
	}
	return len(rows) - 1
}

// column maps cell x on row i to an offset. Past the end of a wrapped row
// it stops on the row's last rune.
func (m *Model) column(rows []span, i, x int) int {
	r := rows[i]
	w := 0
	for off := r.start; off < r.end; off++ {
		rw := runeWidth(m.runes[off])
		if x < w+rw {
			return off
		}
		w += rw
	}
	if r.end > r.start && i+1 < len(rows) && rows[i+1].start == r.end {
		return r.end - 1
	}
	return r.end
}

// cellX returns the cell column of off within row r.
func (m *Model) cellX(r span, off int) int {
	w := 0
	for i := r.start; i < off && i < r.end; i++ {
		w += runeWidth(m.runes[i])
	}
	return w
}

func (m *Model) scrollToCaret() {
	row := rowOf(m.layout(), m.end)
	switch {
	case row < m.scrollTop:
		m.scrollTop = row
	case row >= m.scrollTop+m.height:
		m.scrollTop = row - m.height + 1
	}
}

func runeWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}
