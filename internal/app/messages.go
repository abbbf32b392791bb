package app

import (
	"time"

	"github.com/codalab/lazyworksheets/internal/config"
	"github.com/codalab/lazyworksheets/internal/models"
)

// Message types for the Bubble Tea app
type (
	errMsg struct {
		title string
		err   error
	}
	worksheetsLoadedMsg struct {
		worksheets []models.Worksheet
		err        error
	}
	cachedWorksheetsMsg struct {
		worksheets []models.Worksheet
	}
	worksheetDeletedMsg struct {
		uuid string
		name string
		err  error
	}
	statusMsg struct {
		text string
	}
	clearStatusMsg struct {
		id int
	}
	autoRefreshTickMsg struct{}
	configChangedMsg   struct{}
	configReloadedMsg  struct {
		cfg *config.AppConfig
		err error
	}
)

const statusTimeout = 3 * time.Second
