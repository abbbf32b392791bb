// Package app implements the worksheet browser TUI.
package app

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codalab/lazyworksheets/internal/api"
	"github.com/codalab/lazyworksheets/internal/app/keybus"
	"github.com/codalab/lazyworksheets/internal/app/screen"
	"github.com/codalab/lazyworksheets/internal/app/services"
	"github.com/codalab/lazyworksheets/internal/app/state"
	"github.com/codalab/lazyworksheets/internal/config"
	"github.com/codalab/lazyworksheets/internal/log"
	"github.com/codalab/lazyworksheets/internal/models"
	"github.com/codalab/lazyworksheets/internal/theme"
)

// Model is the root Bubble Tea model. It owns the navigation coordinator,
// the worksheet list and the search field, and routes every key press.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	config   *config.AppConfig
	identity models.Identity
	theme    *theme.Theme
	service  api.Service

	bus         *keybus.Bus
	coordinator *Coordinator
	list        *WorksheetList
	search      *Search
	screens     *screen.Manager
	spinner     spinner.Model
	spinning    bool

	cache services.ListingCache
	watch *services.ConfigWatchService

	commandRunner  CommandRunner
	startCommand   func(*exec.Cmd) error
	clipboardWrite func(string) error

	status   string
	statusID int

	view               state.ViewState
	autoRefreshStarted bool
	quitting           bool
	now                func() time.Time
}

var (
	_ tea.Model = (*Model)(nil)
	_ ListHost  = (*Model)(nil)
)

// NewModel builds the browser. A nil service talks to cfg.ServerURL.
func NewModel(cfg *config.AppConfig, service api.Service, identity models.Identity) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if service == nil {
		service = api.NewClient(cfg)
	}
	ctx, cancel := context.WithCancel(context.Background())

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:            ctx,
		cancel:         cancel,
		config:         cfg,
		identity:       identity,
		theme:          theme.GetTheme(cfg.Theme),
		service:        service,
		bus:            keybus.New(),
		screens:        screen.NewManager(),
		spinner:        sp,
		cache:          services.NoopListingCache{},
		commandRunner:  exec.CommandContext,
		startCommand:   defaultStartCommand,
		clipboardWrite: defaultClipboardWrite,
		now:            time.Now,
	}
	m.spinner.Style = lipgloss.NewStyle().Foreground(m.theme.Accent)
	if cfg.Cache {
		m.cache = services.NewDiskListingCache(cfg.ResolvedCacheDir(), log.Printf)
	}

	m.list = NewWorksheetList(ListOptions{
		Service:   service,
		Host:      m,
		Identity:  identity,
		MineOnly:  cfg.MineOnly,
		DetailURL: cfg.DetailURL,
		Timeout:   cfg.Timeout(),
		Scroller:  NewScroller(cfg.ScrollMargin, cfg.ScrollDuration()),
		Theme:     m.theme,
	})
	m.search = NewSearch(m.list.SetFilterText, func(source state.Target, kind state.FocusKind) {
		m.coordinator.OnFocusChange(source, kind)
	})
	m.coordinator = NewCoordinator(m.list, m.search.Focus, m.list.ScrollToTop)

	m.coordinator.Mount(m.bus)
	m.list.Mount(ctx)
	return m
}

// Init loads the cached listing, starts the first fetch and the background
// refresh sources.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.loadCache(),
		m.fetch(),
		m.startAutoRefresh(),
		m.startConfigWatcher(),
	}
	if m.config.SearchAutoSelect {
		cmds = append(cmds, m.search.Focus())
	}
	cmds = append(cmds, m.ensureSpinner())
	return tea.Batch(cmds...)
}

// Update handles messages and routes keys.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.quitting {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.ensureSpinner())
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.view.WindowWidth = msg.Width
		m.view.WindowHeight = msg.Height
		if hs, ok := m.screens.Current().(*screen.HelpScreen); ok {
			hs.SetSize(msg.Width, msg.Height)
		}
		return nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case worksheetsLoadedMsg:
		if m.list.ApplyFetch(msg) {
			m.cache.SaveListing(m.config.ServerURL, msg.worksheets)
		}
		return nil

	case cachedWorksheetsMsg:
		m.list.ApplyCached(msg.worksheets)
		return nil

	case worksheetDeletedMsg:
		cmd := m.list.ApplyDelete(msg)
		if msg.err == nil {
			name := msg.name
			if name == "" {
				name = msg.uuid
			}
			return tea.Batch(cmd, m.setStatus("Deleted "+name))
		}
		return cmd

	case errMsg:
		if msg.err == nil {
			return nil
		}
		title := msg.title
		if title == "" {
			title = "Error"
		}
		m.screens.Push(screen.NewErrorScreen(title, msg.err, m.theme))
		return nil

	case statusMsg:
		return m.setStatus(msg.text)

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
		}
		return nil

	case scrollTickMsg:
		return m.list.StepScroll(msg)

	case spinner.TickMsg:
		if m.list.Pending() == 0 {
			m.spinning = false
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case autoRefreshTickMsg:
		return m.handleAutoRefreshTick()

	case configChangedMsg:
		return m.handleConfigChanged()

	case configReloadedMsg:
		return m.applyReloadedConfig(msg)
	}
	return nil
}

// handleKey routes a key press: modal first, then the global listeners,
// then the focused search field, then the app-level bindings.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.screens.IsActive() {
		return m.screens.Update(msg)
	}

	keyStr := msg.String()
	if keyStr == keyCtrlC {
		return m.quit()
	}

	if consumed, cmd := m.bus.Dispatch(msg); consumed {
		return cmd
	}
	if m.search.Focused() {
		return m.search.Update(msg)
	}

	switch keyStr {
	case keyQ:
		return m.quit()
	case keyQuestion:
		m.screens.Push(screen.NewHelpScreen(m.view.WindowWidth, m.view.WindowHeight, m.identity.CanFilterMine(), m.theme))
		return nil
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.Close()
	return tea.Quit
}

// Close detaches the key listener and cancels outstanding requests.
// Responses that arrive afterwards are dropped.
func (m *Model) Close() {
	m.coordinator.Unmount()
	m.list.Unmount()
	m.stopConfigWatcher()
	m.cancel()
}

// Confirm shows a confirmation modal with Cancel preselected.
func (m *Model) Confirm(title, message string, onConfirm func() tea.Cmd) tea.Cmd {
	cs := screen.NewConfirmScreenWithDefault(message, screen.ButtonCancel, m.theme)
	cs.Title = title
	cs.OnConfirm = onConfirm
	cs.OnCancel = func() tea.Cmd {
		log.Printf("confirm: %q declined", title)
		return m.setStatus("Cancelled")
	}
	m.screens.Push(cs)
	return nil
}

func (m *Model) fetch() tea.Cmd {
	return m.list.Fetch()
}

func (m *Model) loadCache() tea.Cmd {
	store := m.cache
	server := m.config.ServerURL
	return func() tea.Msg {
		worksheets, ok := store.LoadListing(server)
		if !ok {
			return nil
		}
		return cachedWorksheetsMsg{worksheets: worksheets}
	}
}

func (m *Model) ensureSpinner() tea.Cmd {
	if m.spinning || m.list.Pending() == 0 {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) setStatus(text string) tea.Cmd {
	m.statusID++
	m.status = text
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m *Model) applyTheme(name string) {
	m.theme = theme.GetTheme(name)
	m.list.SetTheme(m.theme)
	m.spinner.Style = lipgloss.NewStyle().Foreground(m.theme.Accent)
	if themed, ok := m.screens.Current().(interface{ SetTheme(*theme.Theme) }); ok {
		themed.SetTheme(m.theme)
	}
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(cfg *config.AppConfig, service api.Service, identity models.Identity, opts ...tea.ProgramOption) error {
	m := NewModel(cfg, service, identity)
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
