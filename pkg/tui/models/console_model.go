package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/scopegrab/pkg/tui"
	"github.com/go-go-golems/scopegrab/pkg/tui/styles"
	"github.com/go-go-golems/scopegrab/pkg/tui/widgets"
)

// ConsoleModel shows the grabber's output stream and the event log, newest at
// the bottom. Capture lines are ephemeral UI state: only the on-screen ring
// is kept, the capture layer retains nothing beyond its failure tail.
type ConsoleModel struct {
	max     int
	entries []tui.EventLogEntry

	width  int
	height int

	searching bool
	search    textinput.Model
	filter    string

	vp viewport.Model
}

func NewConsoleModel() ConsoleModel {
	search := textinput.New()
	search.Placeholder = "filter…"
	search.Prompt = "/ "
	search.CharLimit = 200

	m := ConsoleModel{max: 500, search: search}
	m.vp = viewport.New(0, 0)
	return m
}

func (m ConsoleModel) WithSize(width, height int) ConsoleModel {
	m.width, m.height = width, height
	return m.resizeViewport()
}

func (m ConsoleModel) Update(msg tea.Msg) (ConsoleModel, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			switch v.String() {
			case "esc":
				m.searching = false
				m.search.Blur()
				return m, nil
			case "enter":
				m.filter = strings.TrimSpace(m.search.Value())
				m.searching = false
				m.search.Blur()
				return m.refreshContent(true), nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(v)
			return m, cmd
		}

		switch v.String() {
		case "/":
			m.searching = true
			m.search.SetValue(m.filter)
			m.search.CursorEnd()
			m.search.Focus()
			return m, nil
		case "ctrl+l":
			m.filter = ""
			m.search.SetValue("")
			return m.refreshContent(true), nil
		case "c":
			m.entries = nil
			return m.refreshContent(true), nil
		}

		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(v)
		return m, cmd
	case tui.CaptureLineMsg:
		return m.append(tui.EventLogEntry{At: v.Event.At, Source: "grabber", Text: v.Event.Line}), nil
	case tui.EventLogAppendMsg:
		return m.append(v.Entry), nil
	}
	return m, nil
}

func (m ConsoleModel) append(e tui.EventLogEntry) ConsoleModel {
	m.entries = append(m.entries, e)
	if m.max > 0 && len(m.entries) > m.max {
		m.entries = append([]tui.EventLogEntry{}, m.entries[len(m.entries)-m.max:]...)
	}
	return m.refreshContent(true)
}

func (m ConsoleModel) View() string {
	theme := styles.DefaultTheme()

	titleRight := "[/] filter  [c] clear  [↑/↓] scroll"
	if m.filter != "" {
		titleRight = fmt.Sprintf("filter=%q  %s", m.filter, titleRight)
	}

	var sections []string
	if m.searching {
		sections = append(sections, m.search.View())
	}

	content := m.vp.View()
	if len(m.entries) == 0 {
		content = theme.TitleMuted.Render("(no output yet)")
	}
	sections = append(sections, widgets.NewBox(fmt.Sprintf("Console (%d)", len(m.entries))).
		WithTitleRight(titleRight).
		WithContent(content).
		WithWidth(m.width).
		Render())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ConsoleModel) resizeViewport() ConsoleModel {
	usable := m.height - 4
	if usable < 3 {
		usable = 3
	}
	if m.width > 0 {
		m.vp.Width = m.width
	}
	m.vp.Height = usable
	return m.refreshContent(false)
}

func (m ConsoleModel) refreshContent(gotoBottom bool) ConsoleModel {
	theme := styles.DefaultTheme()

	if len(m.entries) == 0 {
		m.vp.SetContent("")
		return m
	}

	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if m.filter != "" && !strings.Contains(e.Text, m.filter) {
			continue
		}
		ts := e.At
		if ts.IsZero() {
			ts = time.Now()
		}
		source := e.Source
		if source == "" {
			source = "system"
		}

		style := theme.TitleMuted
		switch e.Level {
		case tui.LogLevelError:
			style = theme.StatusErr
		case tui.LogLevelWarn:
			style = lipgloss.NewStyle().Foreground(theme.Warning)
		}

		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			theme.TitleMuted.Render(ts.Format("15:04:05")),
			" ",
			theme.TitleMuted.Render(fmt.Sprintf("[%s]", source)),
			" ",
			style.Render(e.Text),
		))
	}
	m.vp.SetContent(strings.Join(lines, "\n") + "\n")
	if gotoBottom {
		m.vp.GotoBottom()
	}
	return m
}
