package services

import (
	"github.com/codalab/lazyworksheets/internal/cache"
	"github.com/codalab/lazyworksheets/internal/models"
)

// ListingCache persists the last successful listing of a server.
type ListingCache interface {
	LoadListing(server string) ([]models.Worksheet, bool)
	SaveListing(server string, worksheets []models.Worksheet)
}

// DiskListingCache stores listings in a diskv-backed cache.Store.
type DiskListingCache struct {
	store *cache.Store
	logf  func(string, ...any)
}

// NewDiskListingCache returns a cache rooted at dir.
func NewDiskListingCache(dir string, logf func(string, ...any)) *DiskListingCache {
	return &DiskListingCache{store: cache.Open(dir), logf: logf}
}

// LoadListing returns the cached listing, ok=false when none is usable.
func (c *DiskListingCache) LoadListing(server string) ([]models.Worksheet, bool) {
	snap, ok, err := c.store.Load(server)
	if err != nil {
		c.debugf("cache: load %s: %v", server, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	c.debugf("cache: loaded %d worksheets saved at %s", len(snap.Worksheets), snap.SavedAt.Format("2006-01-02 15:04:05"))
	return snap.Worksheets, true
}

// SaveListing replaces the cached listing. Failures are logged only.
func (c *DiskListingCache) SaveListing(server string, worksheets []models.Worksheet) {
	if err := c.store.Save(server, worksheets); err != nil {
		c.debugf("cache: save %s: %v", server, err)
	}
}

func (c *DiskListingCache) debugf(format string, args ...any) {
	if c.logf != nil {
		c.logf(format, args...)
	}
}

// NoopListingCache is used when caching is disabled.
type NoopListingCache struct{}

// LoadListing never finds anything.
func (NoopListingCache) LoadListing(string) ([]models.Worksheet, bool) { return nil, false }

// SaveListing discards the listing.
func (NoopListingCache) SaveListing(string, []models.Worksheet) {}
