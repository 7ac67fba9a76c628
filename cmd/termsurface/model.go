package main

import (
	"context"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/private-landing/termsurface/internal/config"
	"github.com/private-landing/termsurface/internal/terminal"
	"github.com/private-landing/termsurface/internal/textarea"
	"github.com/private-landing/termsurface/internal/ui"
)

// Lines taken by the title above the widget and the hint below it.
const (
	headerLines = 2
	footerLines = 1
	wheelStep   = 3
)

// messages
type commandFinishedMsg struct {
	result terminal.Result
}

// taskQueue collects tasks scheduled by the surface during one Update so
// they can be returned as commands.
type taskQueue struct {
	tasks []terminal.Task
}

func (q *taskQueue) push(t terminal.Task) {
	q.tasks = append(q.tasks, t)
}

func (q *taskQueue) drain() tea.Cmd {
	if len(q.tasks) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(q.tasks))
	for _, t := range q.tasks {
		cmds = append(cmds, func() tea.Msg {
			return commandFinishedMsg{result: t(context.Background())}
		})
	}
	q.tasks = nil
	return tea.Batch(cmds...)
}

// loggingExecutor logs every round-trip to the command endpoint.
type loggingExecutor struct {
	next terminal.Executor
}

func (e loggingExecutor) Execute(ctx context.Context, payload map[string]string) (string, error) {
	start := time.Now()
	out, err := e.next.Execute(ctx, payload)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		log.Printf("command %q failed after %s: %v", payload[terminal.CommandField], elapsed, err)
		return out, err
	}
	log.Printf("command %q finished in %s (%d bytes)", payload[terminal.CommandField], elapsed, len(out))
	return out, nil
}

type model struct {
	area     *textarea.Model
	surface  *terminal.Surface
	queue    *taskQueue
	endpoint string
	quitting bool
}

func newModel(cfg config.Settings, exec terminal.Executor) (model, error) {
	area := textarea.New()
	queue := &taskQueue{}

	opts := terminal.Options{
		Prompt:   cfg.Prompt,
		Style:    cfg.Style,
		Tokens:   cfg.Tokens,
		Schedule: queue.push,
	}
	if exec != nil {
		opts.Executor = loggingExecutor{next: exec}
	}

	surface, err := terminal.New(area, opts)
	if err != nil {
		return model{}, err
	}

	return model{
		area:     area,
		surface:  surface,
		queue:    queue,
		endpoint: cfg.APIURL,
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.area.SetSize(msg.Width, msg.Height-headerLines-footerLines)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case commandFinishedMsg:
		m.surface.Finish(msg.result)
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "ctrl+d":
		m.quitting = true
		return m, tea.Quit
	}

	key, runes := translateKey(msg)
	m.area.KeyPress(key, runes)
	return m, m.queue.drain()
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ox, oy := m.area.Origin()
	x, y := msg.X-ox, msg.Y-headerLines-oy

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.area.Scroll(-wheelStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.area.Scroll(wheelStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.area.PointerDown(x, y)
	case msg.Action == tea.MouseActionMotion:
		m.area.PointerMove(x, y)
	case msg.Action == tea.MouseActionRelease:
		m.area.PointerUp(x, y)
	}
	return m, m.queue.drain()
}

func translateKey(msg tea.KeyMsg) (terminal.Key, []rune) {
	switch msg.Type {
	case tea.KeyRunes:
		return terminal.KeyRunes, msg.Runes
	case tea.KeySpace:
		return terminal.KeyRunes, []rune{' '}
	case tea.KeyEnter:
		return terminal.KeyEnter, nil
	case tea.KeyHome:
		return terminal.KeyHome, nil
	case tea.KeyEnd:
		return terminal.KeyEnd, nil
	case tea.KeyLeft:
		return terminal.KeyLeft, nil
	case tea.KeyRight:
		return terminal.KeyRight, nil
	case tea.KeyUp:
		return terminal.KeyUp, nil
	case tea.KeyDown:
		return terminal.KeyDown, nil
	case tea.KeyBackspace:
		return terminal.KeyBackspace, nil
	case tea.KeyDelete:
		return terminal.KeyDelete, nil
	}
	return terminal.KeyOther, nil
}

// --- Views ---

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(ui.TitleStyle.Render("termsurface"))
	b.WriteString(ui.DimStyle.Render(" " + m.endpoint))
	b.WriteString("\n\n")
	b.WriteString(m.area.View())
	b.WriteString("\n")
	b.WriteString(ui.DimStyle.Render("enter run • ↑/↓ scroll • home start of command • ctrl+c quit"))
	return b.String()
}
