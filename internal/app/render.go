package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wrap"
)

// Lines taken by an entry in the list viewport.
const (
	entryHeight       = 3 // name, byline, spacer
	hiddenEntryHeight = 1
)

func entryLines(e *Entry) int {
	if !e.Displayed() {
		return hiddenEntryHeight
	}
	return entryHeight
}

// entryTops returns the first viewport line of each entry.
func entryTops(visible []*Entry) []int {
	tops := make([]int, len(visible))
	line := 0
	for i, e := range visible {
		tops[i] = line
		line += entryLines(e)
	}
	return tops
}

// renderEntries draws the viewport content for the visible entries.
func (l *WorksheetList) renderEntries() string {
	visible := l.visibleEntries()
	width := max(l.viewport.Width, 10)

	if len(visible) == 0 {
		if !l.loaded && len(l.worksheets) == 0 && l.banner == "" {
			return lipgloss.NewStyle().Foreground(l.thm.MutedFg).Render("Loading worksheets…")
		}
		return lipgloss.NewStyle().Foreground(l.thm.MutedFg).Italic(true).Render(noMatchesText)
	}

	focus := l.EffectiveFocus()
	markerStyle := lipgloss.NewStyle().Foreground(l.thm.Accent).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(l.thm.TextFg)
	focusedNameStyle := lipgloss.NewStyle().Foreground(l.thm.Accent).Bold(true)
	bylineStyle := lipgloss.NewStyle().Foreground(l.thm.MutedFg)
	readOnlyStyle := lipgloss.NewStyle().Foreground(l.thm.WarnFg)

	lines := make([]string, 0, len(visible)*entryHeight)
	for i, e := range visible {
		if !e.Displayed() {
			lines = append(lines, "")
			continue
		}

		marker := "  "
		style := nameStyle
		if i == focus {
			marker = markerStyle.Render("▌ ")
			style = focusedNameStyle
		}

		name := e.Worksheet.Name
		if name == "" {
			name = e.Worksheet.UUID
		}
		name = ansi.Truncate(name, width-4, "…")

		byline := e.Worksheet.Byline()
		if e.Worksheet.ReadOnly() && byline != "" {
			base := strings.TrimSuffix(byline, " (read-only)")
			byline = bylineStyle.Render(ansi.Truncate(base, width-16, "…")) + readOnlyStyle.Render(" (read-only)")
		} else {
			byline = bylineStyle.Render(ansi.Truncate(byline, width-4, "…"))
		}

		lines = append(lines, marker+style.Render(name), "  "+byline, "")
	}
	return strings.Join(lines, "\n")
}

// View renders the list viewport.
func (l *WorksheetList) View() string {
	l.syncViewport()
	return l.viewport.View()
}

func (m *Model) renderHeader() string {
	thm := m.theme
	width := max(m.view.WindowWidth, 20)

	title := lipgloss.NewStyle().Foreground(thm.Accent).Bold(true).Render("Worksheets")
	counter := fmt.Sprintf(" %d", len(m.list.Worksheets()))
	if m.list.Filtering() {
		counter = fmt.Sprintf(" %d/%d", len(m.list.Visible()), len(m.list.Worksheets()))
	}
	count := lipgloss.NewStyle().Foreground(thm.MutedFg).Render(counter)

	left := title + count
	right := ""
	if m.list.Identity().CanFilterMine() {
		box := "[ ]"
		if m.list.MineOnly() {
			box = "[x]"
		}
		right = lipgloss.NewStyle().Foreground(thm.TextFg).Render(box + " Show my worksheets only (m)")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + "\n" + right
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderBanner() string {
	text, detail := m.list.Banner()
	if text == "" {
		return ""
	}
	width := max(m.view.WindowWidth-4, 20)
	msg := text
	if detail != "" {
		msg += " (" + detail + ")"
	}
	return lipgloss.NewStyle().
		Foreground(m.theme.ErrorFg).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(m.theme.ErrorFg).
		PaddingLeft(1).
		Render(wrap.String(msg, width))
}

func (m *Model) renderFooter() string {
	thm := m.theme
	keyStyle := lipgloss.NewStyle().Foreground(thm.SuccessFg).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(thm.MutedFg)

	hints := []struct{ key, desc string }{
		{"j/k", "move"},
		{"enter", "open"},
		{"/", "search"},
		{"d", "delete"},
		{"y", "copy url"},
		{"r", "refresh"},
		{"?", "help"},
		{"q", "quit"},
	}
	if m.search.Focused() {
		hints = []struct{ key, desc string }{
			{"esc/enter/tab", "leave search"},
			{"ctrl+c", "quit"},
		}
	}

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.key)+" "+descStyle.Render(h.desc))
	}
	footer := strings.Join(parts, descStyle.Render(" • "))

	if m.list.Pending() > 0 {
		footer = m.spinner.View() + " " + footer
	}
	if m.status != "" {
		footer += "  " + lipgloss.NewStyle().Foreground(thm.Accent).Render(m.status)
	}
	return ansi.Truncate(footer, max(m.view.WindowWidth, 20), "…")
}

// layoutHeights returns the lines used above and below the list viewport.
func (m *Model) layoutHeights() (top, bottom int) {
	top = lipgloss.Height(m.renderHeader()) + 1 // search field
	if banner := m.renderBanner(); banner != "" {
		top += lipgloss.Height(banner)
	}
	top++ // separator
	bottom = 1
	return top, bottom
}

// View renders the full screen, with any modal centred on top.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	m.search.SetWidth(m.view.WindowWidth)
	top, bottom := m.layoutHeights()
	m.list.SetSize(m.view.WindowWidth, m.view.WindowHeight-top-bottom)

	sections := []string{m.renderHeader(), m.search.View(m.theme)}
	if banner := m.renderBanner(); banner != "" {
		sections = append(sections, banner)
	}
	sep := lipgloss.NewStyle().Foreground(m.theme.BorderDim).Render(strings.Repeat("─", max(m.view.WindowWidth, 1)))
	sections = append(sections, sep, m.list.View(), m.renderFooter())
	base := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if current := m.screens.Current(); current != nil && m.view.WindowWidth > 0 && m.view.WindowHeight > 0 {
		return lipgloss.Place(m.view.WindowWidth, m.view.WindowHeight, lipgloss.Center, lipgloss.Center, current.View())
	} else if current != nil {
		return current.View()
	}
	return base
}
