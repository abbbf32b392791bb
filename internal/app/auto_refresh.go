package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codalab/lazyworksheets/internal/app/services"
	"github.com/codalab/lazyworksheets/internal/config"
	"github.com/codalab/lazyworksheets/internal/log"
)

func (m *Model) startAutoRefresh() tea.Cmd {
	if m.autoRefreshStarted {
		return nil
	}
	if m.autoRefreshInterval() <= 0 {
		return nil
	}
	m.autoRefreshStarted = true
	return m.autoRefreshTick()
}

func (m *Model) autoRefreshInterval() time.Duration {
	if m.config == nil {
		return 0
	}
	interval := m.config.RefreshEvery()
	if interval <= 0 {
		return 0
	}
	if interval < time.Second {
		log.Printf("auto refresh interval too small (%s), clamping to 1s", interval)
		return time.Second
	}
	return interval
}

func (m *Model) autoRefreshTick() tea.Cmd {
	interval := m.autoRefreshInterval()
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return autoRefreshTickMsg{}
	})
}

// handleAutoRefreshTick refetches unless a request is already in flight or
// a modal is open, then schedules the next tick.
func (m *Model) handleAutoRefreshTick() tea.Cmd {
	if m.autoRefreshInterval() <= 0 {
		m.autoRefreshStarted = false
		return nil
	}
	var fetch tea.Cmd
	if m.list.Pending() == 0 && !m.screens.IsActive() {
		fetch = m.fetch()
	}
	return tea.Batch(fetch, m.autoRefreshTick())
}

func (m *Model) startConfigWatcher() tea.Cmd {
	if m.config == nil || !m.config.WatchConfig || m.config.Path == "" {
		return nil
	}
	if m.watch != nil && m.watch.Started {
		return nil
	}
	if m.watch == nil {
		m.watch = services.NewConfigWatchService(m.config.Path, log.Printf)
	}
	started, err := m.watch.Start()
	if err != nil {
		return func() tea.Msg {
			return errMsg{title: "Config watch failed", err: err}
		}
	}
	if !started {
		return nil
	}
	return m.waitForConfigEvent()
}

func (m *Model) stopConfigWatcher() {
	if m.watch == nil || !m.watch.Started {
		return
	}
	m.watch.Stop()
}

func (m *Model) waitForConfigEvent() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	events := m.watch.NextEvent()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-events
		if !ok {
			return nil
		}
		return configChangedMsg{}
	}
}

func (m *Model) handleConfigChanged() tea.Cmd {
	if m.watch != nil {
		m.watch.ResetWaiting()
	}
	wait := m.waitForConfigEvent()
	if m.watch == nil || !m.watch.ShouldRefresh(m.now()) {
		return wait
	}
	path := m.config.Path
	return tea.Batch(wait, func() tea.Msg {
		cfg, err := config.LoadConfig(path)
		return configReloadedMsg{cfg: cfg, err: err}
	})
}

// applyReloadedConfig takes display and refresh settings from a reloaded
// file. The server, credentials and identity stay as started, and the
// --theme and --config flags still win over the file.
func (m *Model) applyReloadedConfig(msg configReloadedMsg) tea.Cmd {
	if msg.err != nil {
		log.Errorf("reload config: %v", msg.err)
		return m.setStatus("Config reload failed: " + msg.err.Error())
	}
	if msg.cfg == nil {
		return nil
	}
	next := msg.cfg
	if err := m.config.CarryOverrides(next); err != nil {
		log.Errorf("reload config: %v", err)
		return m.setStatus("Config reload failed: " + err.Error())
	}

	if next.Theme != m.config.Theme {
		m.config.Theme = next.Theme
		m.applyTheme(next.Theme)
	}
	m.config.ScrollMargin = next.ScrollMargin
	m.config.ScrollDurationMs = next.ScrollDurationMs
	m.list.scroller.Margin = next.ScrollMargin
	m.list.scroller.Duration = next.ScrollDuration()
	m.config.SearchAutoSelect = next.SearchAutoSelect

	m.config.AutoRefresh = next.AutoRefresh
	m.config.RefreshInterval = next.RefreshInterval

	log.Printf("config: reloaded %s", m.config.Path)
	return tea.Batch(m.setStatus("Config reloaded"), m.startAutoRefresh())
}
