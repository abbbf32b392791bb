package app

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codalab/lazyworksheets/internal/utils"
)

// CommandRunner builds the exec.Cmd used to launch external programs.
type CommandRunner func(ctx context.Context, name string, args ...string) *exec.Cmd

func defaultStartCommand(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// OpenURL opens a worksheet page in the default browser.
func (m *Model) OpenURL(urlStr string) tea.Cmd {
	if urlStr == "" {
		return nil
	}
	return m.openURLInBrowser(urlStr)
}

func (m *Model) openURLInBrowser(urlStr string) tea.Cmd {
	return func() tea.Msg {
		name, args := utils.BrowserCommand(runtime.GOOS, urlStr)
		// #nosec G204 -- the URL is passed as a single argument
		cmd := m.commandRunner(m.ctx, name, args...)
		if err := m.startCommand(cmd); err != nil {
			return errMsg{title: "Open failed", err: fmt.Errorf("open %s: %w", urlStr, err)}
		}
		return statusMsg{text: "Opened " + urlStr}
	}
}

// CopyURL puts a worksheet page on the system clipboard.
func (m *Model) CopyURL(urlStr string) tea.Cmd {
	if urlStr == "" {
		return nil
	}
	write := m.clipboardWrite
	return func() tea.Msg {
		if write == nil {
			return errMsg{title: "Copy failed", err: errors.New("no clipboard available")}
		}
		if err := write(urlStr); err != nil {
			return errMsg{title: "Copy failed", err: err}
		}
		return statusMsg{text: "Copied " + urlStr}
	}
}

func defaultClipboardWrite(text string) error {
	return clipboard.WriteAll(text)
}
