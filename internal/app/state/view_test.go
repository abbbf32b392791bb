package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigationStateDefaultsToList(t *testing.T) {
	var nav NavigationState
	assert.Equal(t, TargetList, nav.Active)
	assert.Equal(t, "list", nav.Active.String())
	assert.Equal(t, "search", TargetSearch.String())
}
