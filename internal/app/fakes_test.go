package app

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codalab/lazyworksheets/internal/config"
	"github.com/codalab/lazyworksheets/internal/models"
)

type fakeService struct {
	mu         sync.Mutex
	worksheets []models.Worksheet
	listErr    error
	deleteErr  error
	listCalls  int
	deleted    []string
	// removeOnDelete drops deleted worksheets from the next listing.
	removeOnDelete bool
}

func (f *fakeService) ListWorksheets(context.Context) ([]models.Worksheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Worksheet(nil), f.worksheets...), nil
}

func (f *fakeService) DeleteWorksheet(_ context.Context, uuid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, uuid)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if f.removeOnDelete {
		kept := f.worksheets[:0]
		for _, ws := range f.worksheets {
			if ws.UUID != uuid {
				kept = append(kept, ws)
			}
		}
		f.worksheets = kept
	}
	return nil
}

func (f *fakeService) calls() (int, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, append([]string(nil), f.deleted...)
}

// fakeHost records side effects and holds the pending confirmation until
// the test accepts or rejects it.
type fakeHost struct {
	confirmTitle   string
	confirmMessage string
	onConfirm      func() tea.Cmd
	opened         []string
	copied         []string
}

func (h *fakeHost) Confirm(title, message string, onConfirm func() tea.Cmd) tea.Cmd {
	h.confirmTitle = title
	h.confirmMessage = message
	h.onConfirm = onConfirm
	return nil
}

func (h *fakeHost) accept() tea.Cmd {
	if h.onConfirm == nil {
		return nil
	}
	fn := h.onConfirm
	h.onConfirm = nil
	return fn()
}

func (h *fakeHost) reject() {
	h.onConfirm = nil
}

func (h *fakeHost) OpenURL(url string) tea.Cmd {
	h.opened = append(h.opened, url)
	return nil
}

func (h *fakeHost) CopyURL(url string) tea.Cmd {
	h.copied = append(h.copied, url)
	return nil
}

func sampleWorksheets() []models.Worksheet {
	return []models.Worksheet{
		{UUID: "0x1", Name: "Alpha", OwnerID: "7", OwnerName: "ann", Permission: models.PermissionWrite},
		{UUID: "0x2", Name: "Beta", OwnerID: "8", OwnerName: "bob", Permission: models.PermissionRead},
		{UUID: "0x3", Name: "Gamma", OwnerID: "7", OwnerName: "ann", Permission: models.PermissionWrite},
	}
}

func newTestList(t *testing.T, svc *fakeService, host *fakeHost, identity models.Identity) *WorksheetList {
	t.Helper()
	opts := ListOptions{
		Identity:  identity,
		DetailURL: func(uuid string) string { return "http://localhost:8000/worksheets/" + uuid + "/" },
		Scroller:  NewScroller(3, 0),
	}
	if svc != nil {
		opts.Service = svc
	}
	if host != nil {
		opts.Host = host
	}
	l := NewWorksheetList(opts)
	l.Mount(context.Background())
	return l
}

// runFetch performs a fetch synchronously and applies the result.
func runFetch(t *testing.T, l *WorksheetList) bool {
	t.Helper()
	cmd := l.Fetch()
	if cmd == nil {
		t.Fatal("expected fetch command")
	}
	msg, ok := cmd().(worksheetsLoadedMsg)
	if !ok {
		t.Fatalf("expected worksheetsLoadedMsg")
	}
	return l.ApplyFetch(msg)
}

func visibleNames(l *WorksheetList) []string {
	var names []string
	for _, ws := range l.Visible() {
		names = append(names, ws.Name)
	}
	return names
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collectMsgs runs cmd and flattens any batch it produces.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collectMsgs(c)...)
	}
	return out
}

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Cache = false
	cfg.WatchConfig = false
	cfg.Theme = "dracula"
	cfg.ScrollDurationMs = 0
	return cfg
}
