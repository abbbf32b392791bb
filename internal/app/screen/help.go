package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codalab/lazyworksheets/internal/theme"
)

const helpText = `**Navigation**
- j / Down: Focus next worksheet
- k / Up: Focus previous worksheet
- Enter / x: Open focused worksheet in the browser
- /: Jump to the search field (from anywhere)
- q: Quit
- ?: Show this help

**Search Field**
- Type: Narrow the list by name (case-sensitive substring)
- Esc / Enter / Tab: Leave the search field, the filter stays applied

**Worksheet Actions**
- d / Delete: Delete focused worksheet (asks for confirmation)
- y: Copy focused worksheet URL to the clipboard
- r: Reload the list from the server
{{MINE}}

**Help Navigation**
- /: Search help (Enter to apply, Esc to clear)
- q / Esc: Close help
- j / k: Scroll up / down
- Ctrl+D / Ctrl+U: Scroll half page down / up

**Configuration**
Settings are read from ~/.config/lazyworksheets/config.yaml.
Override single keys with: lazyworksheets --config=lw.key=value
Example: lazyworksheets --config=lw.theme=nord --config=lw.scroll_margin=1`

// HelpScreen renders searchable documentation for the app controls.
type HelpScreen struct {
	Viewport    viewport.Model
	Width       int
	Height      int
	FullText    []string
	SearchInput textinput.Model
	Searching   bool
	SearchQuery string
	Thm         *theme.Theme
}

// NewHelpScreen initializes help content with the available screen size.
// The "my worksheets" binding is only listed when it can be used.
func NewHelpScreen(maxWidth, maxHeight int, canFilterMine bool, thm *theme.Theme) *HelpScreen {
	mine := ""
	if canFilterMine {
		mine = "- m: Toggle \"my worksheets only\"\n"
	}
	text := strings.Replace(helpText, "{{MINE}}\n", mine, 1)

	ti := textinput.New()
	ti.Placeholder = "Search help (/ to start, Enter to apply, Esc to clear)"
	ti.CharLimit = 64
	ti.Prompt = "/ "
	ti.Blur()

	hs := &HelpScreen{
		FullText:    strings.Split(text, "\n"),
		SearchInput: ti,
		Thm:         thm,
	}
	hs.SetSize(maxWidth, maxHeight)
	hs.SearchInput.Width = maxInt(20, hs.Width-6)
	hs.refreshContent()
	return hs
}

// Type returns TypeHelp to identify this screen.
func (s *HelpScreen) Type() Type {
	return TypeHelp
}

// Update handles scrolling and search input for the help screen.
func (s *HelpScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	switch key {
	case "/":
		if !s.Searching {
			s.Searching = true
			s.SearchInput.Focus()
			return s, textinput.Blink
		}
	case keyEnter:
		if s.Searching {
			s.SearchQuery = strings.TrimSpace(s.SearchInput.Value())
			s.Searching = false
			s.SearchInput.Blur()
			s.refreshContent()
			return s, nil
		}
	case keyEsc, keyEscRaw, keyCtrlC:
		if s.Searching || s.SearchQuery != "" {
			s.Searching = false
			s.SearchInput.SetValue("")
			s.SearchQuery = ""
			s.SearchInput.Blur()
			s.refreshContent()
			return s, nil
		}
		return nil, nil
	case keyQ, "?":
		if !s.Searching {
			return nil, nil
		}
	}

	if s.Searching {
		s.SearchInput, cmd = s.SearchInput.Update(msg)
		newQuery := strings.TrimSpace(s.SearchInput.Value())
		if newQuery != s.SearchQuery {
			s.SearchQuery = newQuery
			s.refreshContent()
		}
		return s, cmd
	}

	switch key {
	case "ctrl+d", " ":
		s.Viewport.HalfViewDown()
		return s, nil
	case "ctrl+u":
		s.Viewport.HalfViewUp()
		return s, nil
	case "j", "down":
		s.Viewport.LineDown(1)
		return s, nil
	case "k", "up":
		s.Viewport.LineUp(1)
		return s, nil
	}

	s.Viewport, cmd = s.Viewport.Update(msg)
	return s, cmd
}

func (s *HelpScreen) refreshContent() {
	s.Viewport.SetContent(s.renderContent())
	s.Viewport.GotoTop()
}

// SetSize updates the help screen dimensions (useful on terminal resize).
func (s *HelpScreen) SetSize(maxWidth, maxHeight int) {
	width := 70
	height := 24
	if maxWidth > 0 {
		width = minInt(90, maxInt(50, int(float64(maxWidth)*0.75)))
	}
	if maxHeight > 0 {
		height = minInt(36, maxInt(14, int(float64(maxHeight)*0.7)))
	}
	s.Width = width
	s.Height = height

	// height - 4 for borders/header/footer
	if s.Viewport.Width == 0 {
		s.Viewport = viewport.New(s.Width-2, maxInt(5, s.Height-4))
	}
	s.Viewport.Width = s.Width - 2
	s.Viewport.Height = maxInt(5, s.Height-4)
}

// renderContent applies styling and search filtering to help text.
func (s *HelpScreen) renderContent() string {
	titleStyle := lipgloss.NewStyle().Foreground(s.Thm.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(s.Thm.SuccessFg).Bold(true)

	styledLines := make([]string, 0, len(s.FullText))
	for _, line := range s.FullText {
		if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") {
			header := strings.TrimPrefix(strings.TrimSuffix(line, "**"), "**")
			styledLines = append(styledLines, titleStyle.Render("▼ "+header))
			continue
		}

		// Split on ": " so keys containing ":" survive.
		if strings.HasPrefix(line, "- ") {
			parts := strings.SplitN(line, ": ", 2)
			if len(parts) == 2 {
				keys := strings.TrimPrefix(parts[0], "- ")
				styledLines = append(styledLines, "  "+keyStyle.Render(keys)+": "+parts[1])
				continue
			}
		}

		styledLines = append(styledLines, line)
	}

	if query := strings.TrimSpace(s.SearchQuery); query != "" {
		highlightStyle := lipgloss.NewStyle().Foreground(s.Thm.AccentFg).Background(s.Thm.Accent).Bold(true)
		filtered := []string{}
		for _, line := range styledLines {
			if containsFold(line, query) {
				filtered = append(filtered, highlightMatches(line, query, highlightStyle))
			}
		}
		if len(filtered) == 0 {
			return fmt.Sprintf("No help entries match %q", s.SearchQuery)
		}
		return strings.Join(filtered, "\n")
	}

	return strings.Join(styledLines, "\n")
}

// View renders the help content and search input inside the viewport.
func (s *HelpScreen) View() string {
	s.Viewport.Width = s.Width - 2
	s.Viewport.Height = maxInt(5, s.Height-4)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width).
		Padding(0)

	title := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.Width-2).
		Padding(0, 1).
		Render("Help")

	searchView := ""
	if s.Searching || s.SearchQuery != "" {
		searchView = lipgloss.NewStyle().
			Width(s.Width-2).
			Padding(0, 1).
			Render(s.SearchInput.View())
	}

	footer := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Width(s.Width - 2).
		PaddingTop(1).
		Render("j/k: scroll • Ctrl+d/u: page • /: search • esc: close")

	body := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2).
		Render(s.Viewport.View())

	parts := []string{title}
	if searchView != "" {
		parts = append(parts, searchView)
	}
	parts = append(parts, body, footer)

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetTheme updates the theme for this screen.
func (s *HelpScreen) SetTheme(thm *theme.Theme) {
	s.Thm = thm
	s.refreshContent()
}
