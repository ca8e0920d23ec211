package widgets

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/go-go-golems/scopegrab/pkg/tui/styles"
)

// Box renders a bordered container with a title line and an optional
// right-aligned hint (typically keybindings).
type Box struct {
	Title      string
	TitleRight string
	Content    string
	Width      int

	theme styles.Theme
}

func NewBox(title string) Box {
	return Box{Title: title, theme: styles.DefaultTheme()}
}

func (b Box) WithContent(content string) Box {
	b.Content = content
	return b
}

func (b Box) WithTitleRight(text string) Box {
	b.TitleRight = text
	return b
}

func (b Box) WithWidth(width int) Box {
	b.Width = width
	return b
}

func (b Box) Render() string {
	contentWidth := b.Width - 2
	if contentWidth < 0 {
		contentWidth = 0
	}

	header := ""
	left := ""
	if b.Title != "" {
		left = b.theme.Title.Render(b.Title)
	}
	right := ""
	if b.TitleRight != "" {
		right = b.theme.TitleMuted.Render(b.TitleRight)
	}
	if left != "" || right != "" {
		spacing := contentWidth - lipgloss.Width(left) - lipgloss.Width(right)
		if spacing < 1 {
			spacing = 1
		}
		spacer := lipgloss.NewStyle().Width(spacing).Render("")
		header = lipgloss.JoinHorizontal(lipgloss.Top, left, spacer, right)
	}

	body := b.Content
	if header != "" {
		body = header + "\n" + b.Content
	}

	style := b.theme.Border
	if b.Width > 0 {
		style = style.Width(contentWidth)
	}
	return style.Render(body)
}
