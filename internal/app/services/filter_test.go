package services

import (
	"testing"

	"github.com/codalab/lazyworksheets/internal/models"
	"github.com/stretchr/testify/assert"
)

func names(worksheets []models.Worksheet) []string {
	out := make([]string, 0, len(worksheets))
	for _, ws := range worksheets {
		out = append(out, ws.Name)
	}
	return out
}

func sample() []models.Worksheet {
	return []models.Worksheet{
		{UUID: "1", Name: "Alpha", OwnerID: "1"},
		{UUID: "2", Name: "Beta", OwnerID: "2"},
		{UUID: "3", Name: "Gamma", OwnerID: "1"},
		{UUID: "4", Name: "delta", OwnerID: "2"},
	}
}

func TestFilterWorksheets(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		mineOnly bool
		userID   models.ID
		expected []string
	}{
		{name: "no narrowing", expected: []string{"Alpha", "Beta", "Gamma", "delta"}},
		{name: "substring keeps order", query: "a", expected: []string{"Alpha", "Beta", "Gamma", "delta"}},
		{name: "prefix", query: "Al", expected: []string{"Alpha"}},
		{name: "case sensitive", query: "D", expected: []string{}},
		{name: "literal match", query: ".*", expected: []string{}},
		{name: "mine only", mineOnly: true, userID: "1", expected: []string{"Alpha", "Gamma"}},
		{name: "mine and query", query: "mm", mineOnly: true, userID: "1", expected: []string{"Gamma"}},
		{name: "mine without user", mineOnly: true, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterWorksheets(sample(), tt.query, tt.mineOnly, tt.userID)
			assert.Equal(t, tt.expected, names(got))
		})
	}
}

func TestFilterWorksheetsIsSubsequence(t *testing.T) {
	all := sample()
	for _, query := range []string{"", "a", "e", "ta", "zzz"} {
		for _, mine := range []bool{false, true} {
			got := FilterWorksheets(all, query, mine, "2")
			idx := 0
			for _, ws := range got {
				for idx < len(all) && all[idx].UUID != ws.UUID {
					idx++
				}
				assert.Less(t, idx, len(all), "query %q mine %v", query, mine)
				idx++
			}
		}
	}
}

func TestFilterService(t *testing.T) {
	f := NewFilterService("", false)
	assert.False(t, f.HasActiveFilter())

	assert.True(t, f.ToggleMine())
	assert.True(t, f.HasActiveFilter())
	assert.Equal(t, []string{"Beta", "delta"}, names(FilterWorksheets(sample(), f.Query, f.MineOnly, "2")))

	f.Query = "B"
	assert.Equal(t, []string{"Beta"}, names(FilterWorksheets(sample(), f.Query, f.MineOnly, "2")))
	assert.True(t, f.Matches(sample()[1], "2"))
	assert.False(t, f.ToggleMine())
}
