package services

import (
	"strings"

	"github.com/codalab/lazyworksheets/internal/models"
)

// FilterService stores the list narrowing options.
type FilterService struct {
	Query    string
	MineOnly bool
}

// NewFilterService creates a new FilterService with an optional initial query.
func NewFilterService(initialQuery string, mineOnly bool) *FilterService {
	return &FilterService{Query: initialQuery, MineOnly: mineOnly}
}

// ToggleMine flips the "my worksheets only" flag and returns the new value.
func (f *FilterService) ToggleMine() bool {
	f.MineOnly = !f.MineOnly
	return f.MineOnly
}

// HasActiveFilter reports whether any narrowing applies.
func (f *FilterService) HasActiveFilter() bool {
	return f.MineOnly || f.Query != ""
}

// FilterWorksheets returns the worksheets owned by userID when mineOnly is
// set, then those whose name contains query. The match is a case-sensitive
// literal substring and the input order is kept.
func FilterWorksheets(worksheets []models.Worksheet, query string, mineOnly bool, userID models.ID) []models.Worksheet {
	visible := make([]models.Worksheet, 0, len(worksheets))
	for _, ws := range worksheets {
		if MatchesWorksheet(ws, query, mineOnly, userID) {
			visible = append(visible, ws)
		}
	}
	return visible
}

// MatchesWorksheet is the predicate behind FilterWorksheets.
func MatchesWorksheet(ws models.Worksheet, query string, mineOnly bool, userID models.ID) bool {
	if mineOnly && !ws.OwnedBy(userID) {
		return false
	}
	return query == "" || strings.Contains(ws.Name, query)
}

// Matches applies the stored options to one worksheet.
func (f *FilterService) Matches(ws models.Worksheet, userID models.ID) bool {
	return MatchesWorksheet(ws, f.Query, f.MineOnly, userID)
}
