package models

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/scopegrab/pkg/gallery"
	"github.com/go-go-golems/scopegrab/pkg/tui"
	"github.com/go-go-golems/scopegrab/pkg/tui/styles"
	"github.com/go-go-golems/scopegrab/pkg/tui/widgets"
)

// ViewerModel is the gallery pane: it tracks the latest directory snapshot
// and a cursor into it. The cursor is treated as possibly stale on every
// render; the snapshot is the only source of truth.
type ViewerModel struct {
	width  int
	height int

	snapshot tui.GallerySnapshot
	cursor   *gallery.Artifact

	capturing   bool
	lastOutcome string
	lastOK      bool
	deleteArmed bool

	spin spinner.Model
}

func NewViewerModel() ViewerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return ViewerModel{spin: sp, lastOK: true}
}

func (m ViewerModel) WithSize(width, height int) ViewerModel {
	m.width, m.height = width, height
	return m
}

// Navigate moves the cursor against the latest snapshot. It returns the
// updated model; a move with no target on that side is a no-op.
func (m ViewerModel) Navigate(dir gallery.Direction) ViewerModel {
	target, ok := gallery.Adjacent(m.snapshot.Entries, m.cursor, dir)
	if !ok {
		return m
	}
	m.cursor = &target
	return m
}

func (m ViewerModel) Update(msg tea.Msg) (ViewerModel, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		if m.deleteArmed {
			if v.String() == "y" {
				path := ""
				if m.cursor != nil {
					path = m.cursor.Path
				}
				m.deleteArmed = false
				return m, deleteCmd(path)
			}
			m.deleteArmed = false
			return m, nil
		}
		switch v.String() {
		case "left", "h":
			return m.Navigate(gallery.Prev), nil
		case "right", "l":
			return m.Navigate(gallery.Next), nil
		case "esc":
			m.cursor = nil
			return m, nil
		case "x":
			if m.cursor != nil {
				m.deleteArmed = true
			}
			return m, nil
		}
	case tui.GallerySnapshotMsg:
		m.snapshot = v.Snapshot
		return m, nil
	case tui.CaptureStartedMsg:
		m.capturing = true
		m.lastOutcome = ""
		return m, m.spin.Tick
	case tui.CaptureFinishedMsg:
		m.capturing = false
		out := v.Event.Outcome
		m.lastOK = out.OK
		if out.OK {
			m.lastOutcome = "saved " + out.ArtifactPath
			m.cursor = cursorFor(out.ArtifactPath, v.Event)
		} else {
			m.lastOutcome = out.Reason
		}
		return m, nil
	case tui.ArtifactDeletedMsg:
		if v.Event.Error == "" && m.cursor != nil && m.cursor.Path == v.Event.Path {
			m.cursor = nil
			m.deleteArmed = false
		}
		return m, nil
	case spinner.TickMsg:
		if !m.capturing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(v)
		return m, cmd
	}
	return m, nil
}

// cursorFor records the new artifact as the current one, remembering its
// mtime so later queries can survive the file being deleted or renamed.
func cursorFor(path string, ev tui.CaptureFinished) *gallery.Artifact {
	a := gallery.Artifact{Path: path, ModTime: ev.At}
	if info, err := os.Stat(path); err == nil {
		a.ModTime = info.ModTime()
	}
	return &a
}

func (m ViewerModel) View() string {
	theme := styles.DefaultTheme()
	nav := gallery.State(m.snapshot.Entries, m.cursor)

	var lines []string

	if m.cursor != nil {
		lines = append(lines, theme.Title.Render(filepath.Base(m.cursor.Path)))
		lines = append(lines, theme.TitleMuted.Render(m.cursor.Path))
		lines = append(lines, theme.TitleMuted.Render("modified "+m.cursor.ModTime.Format("2006-01-02 15:04:05")))
	} else if nav.Total > 0 {
		lines = append(lines, theme.TitleMuted.Render("(no image selected)"))
	} else {
		lines = append(lines, theme.TitleMuted.Render("(no captures yet — press c to capture)"))
	}

	if nav.PositionLabel != "" {
		lines = append(lines, "", theme.Title.Render(nav.PositionLabel))
	}
	lines = append(lines, navHints(theme, nav))

	switch {
	case m.capturing:
		lines = append(lines, "", theme.StatusBusy.Render(m.spin.View()+" capturing…"))
	case m.deleteArmed && m.cursor != nil:
		lines = append(lines, "", theme.StatusErr.Render("delete "+filepath.Base(m.cursor.Path)+"? press y to confirm"))
	case m.lastOutcome != "":
		style := theme.StatusOK
		icon := styles.IconSuccess
		if !m.lastOK {
			style = theme.StatusErr
			icon = styles.IconError
		}
		lines = append(lines, "", style.Render(icon+" "+m.lastOutcome))
	}

	if m.snapshot.Error != "" {
		lines = append(lines, "", theme.StatusErr.Render(styles.IconWarning+" "+m.snapshot.Error))
	}

	return widgets.NewBox("Gallery").
		WithTitleRight("[←/→] navigate  [c] capture  [x] delete  [esc] clear").
		WithContent(strings.Join(lines, "\n")).
		WithWidth(m.width).
		Render()
}

func navHints(theme styles.Theme, nav gallery.NavState) string {
	prev := theme.TitleMuted.Render("← prev")
	if nav.PrevAvailable {
		prev = theme.KeybindKey.Render("← prev")
	}
	next := theme.TitleMuted.Render("next →")
	if nav.NextAvailable {
		next = theme.KeybindKey.Render("next →")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, prev, "   ", next)
}

// deleteCmd is resolved by the root model, which owns the publisher.
func deleteCmd(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		return DeleteRequestMsg{Path: path}
	}
}

// DeleteRequestMsg bubbles a delete request up to the root model.
type DeleteRequestMsg struct {
	Path string
}

func (m ViewerModel) CursorPath() string {
	if m.cursor == nil {
		return ""
	}
	return m.cursor.Path
}
