package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/codalab/lazyworksheets/internal/models"
)

const deletePrompt = "Are you sure you want to permanently delete this worksheet?"

// Navigable items can be opened in a browser.
type Navigable interface {
	URL() string
}

// Checkable items carry a selection mark.
type Checkable interface {
	Checked() bool
	SetChecked(checked bool)
}

// Confirmer asks the user before a destructive action. onConfirm only runs
// when the user accepts.
type Confirmer interface {
	Confirm(title, message string, onConfirm func() tea.Cmd) tea.Cmd
}

// deleteRequester is the list that owns an entry.
type deleteRequester interface {
	RequestDelete(e *Entry) tea.Cmd
}

// Entry is one worksheet row. It stays in the list until the next
// successful fetch rebuilds the entries, even after it is hidden.
type Entry struct {
	Worksheet models.Worksheet

	owner     deleteRequester
	detailURL string
	displayed bool
	checked   bool
}

var (
	_ Navigable = (*Entry)(nil)
	_ Checkable = (*Entry)(nil)
)

func newEntry(ws models.Worksheet, owner deleteRequester, detailURL string) *Entry {
	return &Entry{
		Worksheet: ws,
		owner:     owner,
		detailURL: detailURL,
		displayed: true,
	}
}

// URL returns the worksheet detail page.
func (e *Entry) URL() string { return e.detailURL }

// Checked reports the selection mark.
func (e *Entry) Checked() bool { return e.checked }

// SetChecked sets the selection mark.
func (e *Entry) SetChecked(checked bool) { e.checked = checked }

// Displayed reports whether the entry is drawn or kept as a blank slot.
func (e *Entry) Displayed() bool { return e.displayed }

// HandleDelete asks for confirmation, then hides the entry and forwards the
// delete to the owning list. A declined confirmation changes nothing.
func (e *Entry) HandleDelete(c Confirmer) tea.Cmd {
	title := "Delete worksheet"
	if e.Worksheet.Name != "" {
		title = "Delete " + e.Worksheet.Name
	}
	return c.Confirm(title, deletePrompt, func() tea.Cmd {
		e.displayed = false
		if e.owner == nil {
			return nil
		}
		return e.owner.RequestDelete(e)
	})
}
