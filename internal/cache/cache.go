// Package cache keeps the last successful worksheet listing per server on
// disk so the browser has something to show before the first fetch lands.
package cache

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/codalab/lazyworksheets/internal/models"
)

// Snapshot is one cached listing.
type Snapshot struct {
	Server     string             `json:"server"`
	SavedAt    time.Time          `json:"saved_at"`
	Worksheets []models.Worksheet `json:"worksheets"`
}

// Store reads and writes snapshots.
type Store struct {
	d        *diskv.Diskv
	basePath string
	now      func() time.Time
}

// Open returns a Store rooted at basePath. Directories are created lazily on
// the first write.
func Open(basePath string) *Store {
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		now:      time.Now,
	}
}

// BasePath returns the cache root directory.
func (s *Store) BasePath() string {
	return s.basePath
}

// Load returns the cached listing for server. A missing entry is reported
// with ok=false and no error.
func (s *Store) Load(server string) (Snapshot, bool, error) {
	server = normalizeServer(server)
	val, err := s.d.Read(keyFor(server))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, fmt.Errorf("read cache: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(val, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode cache: %w", err)
	}
	if snap.Server != server {
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save replaces the cached listing for server.
func (s *Store) Save(server string, worksheets []models.Worksheet) error {
	server = normalizeServer(server)
	if worksheets == nil {
		worksheets = []models.Worksheet{}
	}
	data, err := json.Marshal(Snapshot{Server: server, SavedAt: s.now().UTC(), Worksheets: worksheets})
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := s.d.Write(keyFor(server), data); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// Clear removes the cached listing for server, if any.
func (s *Store) Clear(server string) error {
	key := keyFor(server)
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}

// keyFor makes `worksheets-<digest>`; the digest keeps URLs out of file names.
func keyFor(server string) string {
	sum := md5.Sum([]byte(normalizeServer(server))) // #nosec G401 -- not used for security
	return fmt.Sprintf("%s-%x", models.CacheKeyPrefix, sum[:8])
}

func normalizeServer(server string) string {
	return strings.TrimRight(strings.TrimSpace(server), "/")
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + ".json",
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), strings.TrimSuffix(pathKey.FileName, ".json"))
}
