package models

import (
	"strings"

	"github.com/ThreeDotsLabs/watermill/message"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-go-golems/scopegrab/pkg/tui"
	"github.com/go-go-golems/scopegrab/pkg/tui/styles"
)

type ViewID string

const (
	ViewViewer  ViewID = "gallery"
	ViewConsole ViewID = "console"
)

type RootModel struct {
	width  int
	height int

	active ViewID
	pub    message.Publisher

	viewer  ViewerModel
	console ConsoleModel
}

func NewRootModel(pub message.Publisher) RootModel {
	return RootModel{
		active:  ViewViewer,
		pub:     pub,
		viewer:  NewViewerModel(),
		console: NewConsoleModel(),
	}
}

func (m RootModel) Init() tea.Cmd { return nil }

func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = v.Width, v.Height
		m.viewer = m.viewer.WithSize(v.Width, v.Height/2)
		m.console = m.console.WithSize(v.Width, v.Height/2)
		return m, nil
	case tea.KeyMsg:
		switch v.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			if m.active == ViewViewer {
				m.active = ViewConsole
			} else {
				m.active = ViewViewer
			}
			return m, nil
		case "c":
			if m.active == ViewViewer {
				pub := m.pub
				return m, func() tea.Msg {
					_ = tui.PublishCaptureRequest(pub)
					return nil
				}
			}
		}
		return m.route(msg)
	case DeleteRequestMsg:
		pub := m.pub
		path := v.Path
		return m, func() tea.Msg {
			_ = tui.PublishDeleteRequest(pub, path)
			return nil
		}
	case tui.CaptureStartedMsg, tui.CaptureFinishedMsg, tui.GallerySnapshotMsg, tui.ArtifactDeletedMsg,
		tui.CaptureLineMsg, tui.EventLogAppendMsg:
		// state msgs fan out to both panes
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.viewer, cmd = m.viewer.Update(msg)
		cmds = append(cmds, cmd)
		m.console, cmd = m.console.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	default:
		return m.route(msg)
	}
}

// route sends the message to the active pane only (keys, spinner ticks).
func (m RootModel) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.active {
	case ViewConsole:
		m.console, cmd = m.console.Update(msg)
	default:
		m.viewer, cmd = m.viewer.Update(msg)
	}
	return m, cmd
}

func (m RootModel) View() string {
	theme := styles.DefaultTheme()

	var b strings.Builder
	header := theme.Title.Render("scopegrab") + theme.TitleMuted.Render("  — "+string(m.active)+"  (tab switch, q quit)")
	b.WriteString(header + "\n\n")
	b.WriteString(m.viewer.View())
	b.WriteString("\n")
	b.WriteString(m.console.View())
	return b.String()
}
