package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codalab/lazyworksheets/internal/api"
	"github.com/codalab/lazyworksheets/internal/app/services"
	"github.com/codalab/lazyworksheets/internal/log"
	"github.com/codalab/lazyworksheets/internal/models"
	"github.com/codalab/lazyworksheets/internal/theme"
)

const (
	fetchErrorBanner = "Couldn't retrieve worksheets. Press r to retry."
	noMatchesText    = "No worksheets matched your criteria"
)

// ListHost provides the side effects the list cannot perform itself.
type ListHost interface {
	Confirmer
	OpenURL(url string) tea.Cmd
	CopyURL(url string) tea.Cmd
}

// ListOptions configures a WorksheetList.
type ListOptions struct {
	Service   api.Service
	Host      ListHost
	Identity  models.Identity
	MineOnly  bool
	DetailURL func(uuid string) string
	Timeout   time.Duration
	Scroller  *Scroller
	Theme     *theme.Theme
}

// WorksheetList owns the fetched worksheets, the focus index and the
// "my worksheets only" flag. The visible set is derived on demand.
type WorksheetList struct {
	service   api.Service
	host      ListHost
	identity  models.Identity
	filter    *services.FilterService
	detailURL func(uuid string) string
	timeout   time.Duration

	ctx     context.Context
	mounted bool
	loaded  bool
	pending int

	worksheets []models.Worksheet
	entries    []*Entry
	focusIndex int

	banner       string
	bannerDetail string

	viewport viewport.Model
	scroller *Scroller
	thm      *theme.Theme
}

// NewWorksheetList creates an unmounted list.
func NewWorksheetList(opts ListOptions) *WorksheetList {
	detailURL := opts.DetailURL
	if detailURL == nil {
		detailURL = func(uuid string) string { return "/worksheets/" + uuid + "/" }
	}
	scroller := opts.Scroller
	if scroller == nil {
		scroller = NewScroller(3, 250*time.Millisecond)
	}
	thm := opts.Theme
	if thm == nil {
		thm = theme.Dracula()
	}
	return &WorksheetList{
		service:   opts.Service,
		host:      opts.Host,
		identity:  opts.Identity,
		filter:    services.NewFilterService("", opts.MineOnly && opts.Identity.CanFilterMine()),
		detailURL: detailURL,
		timeout:   opts.Timeout,
		ctx:       context.Background(),
		viewport:  viewport.New(80, 20),
		scroller:  scroller,
		thm:       thm,
	}
}

// Mount marks the list live. Results arriving while unmounted are dropped.
func (l *WorksheetList) Mount(ctx context.Context) {
	if ctx != nil {
		l.ctx = ctx
	}
	l.mounted = true
}

// Unmount stops the list from applying late responses.
func (l *WorksheetList) Unmount() {
	l.mounted = false
}

// Mounted reports whether responses are applied.
func (l *WorksheetList) Mounted() bool { return l.mounted }

// Pending returns the number of outstanding requests.
func (l *WorksheetList) Pending() int { return l.pending }

// Worksheets returns the last fetched worksheets.
func (l *WorksheetList) Worksheets() []models.Worksheet { return l.worksheets }

// FocusIndex returns the stored focus index.
func (l *WorksheetList) FocusIndex() int { return l.focusIndex }

// MineOnly reports the "my worksheets only" flag.
func (l *WorksheetList) MineOnly() bool { return l.filter.MineOnly }

// FilterText returns the search text applied to the list.
func (l *WorksheetList) FilterText() string { return l.filter.Query }

// Filtering reports whether the search text or "mine only" narrows the list.
func (l *WorksheetList) Filtering() bool { return l.filter.HasActiveFilter() }

// Banner returns the error banner text, empty when there is none.
func (l *WorksheetList) Banner() (text, detail string) { return l.banner, l.bannerDetail }

// Identity returns the identity used for ownership filtering.
func (l *WorksheetList) Identity() models.Identity { return l.identity }

// SetFilterText replaces the search text. The stored focus is kept;
// EffectiveFocus pins it into the new visible set.
func (l *WorksheetList) SetFilterText(text string) {
	l.filter.Query = text
}

// SetTheme changes the entry colours.
func (l *WorksheetList) SetTheme(thm *theme.Theme) {
	l.thm = thm
}

// ComputeVisible narrows the fetched worksheets by owner, then by name.
func (l *WorksheetList) ComputeVisible(filterText string, mineOnly bool, userID models.ID) []models.Worksheet {
	return services.FilterWorksheets(l.worksheets, filterText, mineOnly, userID)
}

// Visible returns the visible worksheets under the current options.
func (l *WorksheetList) Visible() []models.Worksheet {
	return l.ComputeVisible(l.filter.Query, l.filter.MineOnly, l.identity.UserID)
}

func (l *WorksheetList) visibleEntries() []*Entry {
	visible := make([]*Entry, 0, len(l.entries))
	for _, e := range l.entries {
		if l.filter.Matches(e.Worksheet, l.identity.UserID) {
			visible = append(visible, e)
		}
	}
	return visible
}

// EffectiveFocus is the index drawn as focused: 0 while at most one entry
// is visible, otherwise the stored index clamped into range.
func (l *WorksheetList) EffectiveFocus() int {
	n := len(l.visibleEntries())
	if n <= 1 {
		return 0
	}
	return min(max(l.focusIndex, 0), n-1)
}

// Focused returns the focused entry, nil when nothing is visible.
func (l *WorksheetList) Focused() *Entry {
	visible := l.visibleEntries()
	if len(visible) == 0 {
		return nil
	}
	return visible[l.EffectiveFocus()]
}

func (l *WorksheetList) clampFocus() {
	n := len(l.visibleEntries())
	if l.focusIndex > n-1 {
		l.focusIndex = n - 1
	}
	if l.focusIndex < 0 {
		l.focusIndex = 0
	}
}

func (l *WorksheetList) rebuildEntries() {
	l.entries = make([]*Entry, 0, len(l.worksheets))
	for _, ws := range l.worksheets {
		l.entries = append(l.entries, newEntry(ws, l, l.detailURL(ws.UUID)))
	}
}

// ToggleMine flips "my worksheets only". Focus is not reset.
func (l *WorksheetList) ToggleMine() {
	enabled := l.filter.ToggleMine()
	log.Printf("list: mine only %t", enabled)
}

// HandleKey implements KeyHandler for the list.
func (l *WorksheetList) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case keyUp, keyUpAlt:
		l.focusIndex = max(l.EffectiveFocus()-1, 0)
		return true, l.ScrollToFocus()
	case keyDown, keyDownAlt:
		n := len(l.visibleEntries())
		l.focusIndex = min(l.EffectiveFocus()+1, max(n-1, 0))
		return true, l.ScrollToFocus()
	case keyEnter, keyOpenAlt:
		e := l.Focused()
		if e == nil || !e.Displayed() || l.host == nil {
			return true, nil
		}
		return true, l.host.OpenURL(e.URL())
	case keyMine:
		if !l.identity.CanFilterMine() {
			return false, nil
		}
		l.ToggleMine()
		return true, nil
	case keyDeleteD, keyDelete:
		e := l.Focused()
		if e == nil || !e.Displayed() || l.host == nil {
			return true, nil
		}
		return true, e.HandleDelete(l.host)
	case keyRefresh:
		return true, l.Fetch()
	case keyCopyLink:
		e := l.Focused()
		if e == nil || !e.Displayed() || l.host == nil {
			return true, nil
		}
		return true, l.host.CopyURL(e.URL())
	}
	return false, nil
}

// Fetch requests the listing. The UI stays interactive meanwhile.
func (l *WorksheetList) Fetch() tea.Cmd {
	if l.service == nil {
		return nil
	}
	l.pending++
	service, ctx, timeout := l.service, l.ctx, l.timeout
	return func() tea.Msg {
		reqCtx, cancel := api.WithTimeout(ctx, timeout)
		defer cancel()
		worksheets, err := service.ListWorksheets(reqCtx)
		return worksheetsLoadedMsg{worksheets: worksheets, err: err}
	}
}

func (l *WorksheetList) settle() {
	if l.pending > 0 {
		l.pending--
	}
}

// ApplyFetch installs a listing result. The latest response always wins.
func (l *WorksheetList) ApplyFetch(msg worksheetsLoadedMsg) bool {
	l.settle()
	if !l.mounted {
		return false
	}
	if msg.err != nil {
		log.Errorf("fetch worksheets: %v", msg.err)
		l.banner = fetchErrorBanner
		l.bannerDetail = api.StatusText(msg.err)
		return false
	}

	l.worksheets = msg.worksheets
	l.loaded = true
	l.banner = ""
	l.bannerDetail = ""
	l.rebuildEntries()
	l.clampFocus()
	log.Printf("list: loaded %d worksheets, %d visible", len(l.worksheets), len(l.visibleEntries()))
	return true
}

// ApplyCached shows a cached listing until the first live response lands.
func (l *WorksheetList) ApplyCached(worksheets []models.Worksheet) {
	if !l.mounted || l.loaded {
		return
	}
	l.worksheets = worksheets
	l.rebuildEntries()
	l.clampFocus()
}

// RequestDelete moves focus off the entry if it is the focused last visible
// one, then sends the delete. The list is refetched once the server replies.
func (l *WorksheetList) RequestDelete(e *Entry) tea.Cmd {
	visible := l.visibleEntries()
	idx := -1
	for i, v := range visible {
		if v == e {
			idx = i
			break
		}
	}
	if idx >= 0 && idx == l.EffectiveFocus() && idx == len(visible)-1 {
		l.focusIndex = max(len(visible)-2, 0)
	}

	if l.service == nil {
		return nil
	}
	l.pending++
	service, ctx, timeout := l.service, l.ctx, l.timeout
	uuid, name := e.Worksheet.UUID, e.Worksheet.Name
	log.Printf("list: deleting worksheet %s", uuid)
	return func() tea.Msg {
		reqCtx, cancel := api.WithTimeout(ctx, timeout)
		defer cancel()
		err := service.DeleteWorksheet(reqCtx, uuid)
		return worksheetDeletedMsg{uuid: uuid, name: name, err: err}
	}
}

// ApplyDelete reconciles with the server after a delete. A failed delete
// shows the entry again and reports the error; either way the list is
// refetched.
func (l *WorksheetList) ApplyDelete(msg worksheetDeletedMsg) tea.Cmd {
	l.settle()
	if !l.mounted {
		return nil
	}
	if msg.err == nil {
		log.Printf("list: deleted worksheet %s", msg.uuid)
		return l.Fetch()
	}

	log.Errorf("delete worksheet %s: %v", msg.uuid, msg.err)
	for _, e := range l.entries {
		if e.Worksheet.UUID == msg.uuid {
			e.displayed = true
		}
	}
	err := fmt.Errorf("couldn't delete %q: %s", msg.name, api.StatusText(msg.err))
	return tea.Batch(l.Fetch(), func() tea.Msg {
		return errMsg{title: "Delete failed", err: err}
	})
}

// SetSize sizes the list viewport.
func (l *WorksheetList) SetSize(width, height int) {
	l.viewport.Width = max(width, 1)
	l.viewport.Height = max(height, 1)
}

// ScrollToFocus animates the viewport to the focused entry.
func (l *WorksheetList) ScrollToFocus() tea.Cmd {
	visible := l.visibleEntries()
	if len(visible) == 0 {
		return nil
	}
	l.syncViewport()
	tops := entryTops(visible)
	return l.scroller.AnimateTo(&l.viewport, l.scroller.TargetForLine(tops[l.EffectiveFocus()]))
}

// ScrollToTop animates the viewport back to the first line.
func (l *WorksheetList) ScrollToTop() tea.Cmd {
	l.syncViewport()
	return l.scroller.AnimateTo(&l.viewport, 0)
}

// StepScroll advances the scroll animation.
func (l *WorksheetList) StepScroll(msg scrollTickMsg) tea.Cmd {
	return l.scroller.Step(&l.viewport, msg)
}

// YOffset returns the viewport offset.
func (l *WorksheetList) YOffset() int {
	return l.viewport.YOffset
}

func (l *WorksheetList) syncViewport() {
	l.viewport.SetContent(l.renderEntries())
}
