// Package config loads the worksheet browser configuration from YAML.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/codalab/lazyworksheets/internal/models"
	"github.com/codalab/lazyworksheets/internal/theme"
	"github.com/codalab/lazyworksheets/internal/utils"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted after the config file.
const (
	EnvServer = "LAZYWORKSHEETS_SERVER"
	EnvToken  = "LAZYWORKSHEETS_TOKEN"
)

// overridePrefix namespaces --config overrides (lw.key=value).
const overridePrefix = "lw."

// AppConfig defines the global lazyworksheets configuration options.
type AppConfig struct {
	ServerURL        string
	ListPath         string // Listing endpoint, relative to ServerURL
	DeletePath       string // Delete endpoint, relative to ServerURL
	DetailPath       string // Detail page pattern; {uuid} is substituted
	APIToken         string
	SessionCookie    string
	UserID           models.ID
	Authenticated    bool
	MineOnly         bool // Start with "my worksheets only" enabled
	SearchAutoSelect bool // Start with the search field focused
	Theme            string
	DebugLog         string
	RequestTimeout   int // Seconds
	ScrollMargin     int // Lines kept above the focused entry
	ScrollDurationMs int
	AutoRefresh      bool
	RefreshInterval  int // Seconds
	Cache            bool
	CacheDir         string
	WatchConfig      bool

	// Path is the file the configuration was read from, empty for defaults.
	Path string `yaml:"-"`

	// Command line settings that outrank the file. Reloads apply them again.
	ThemeFlag    string   `yaml:"-"`
	CLIOverrides []string `yaml:"-"`
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		ServerURL:        "http://localhost:8000",
		ListPath:         "/api/worksheets/",
		DeletePath:       "/api/worksheets/delete/",
		DetailPath:       "/worksheets/{uuid}/",
		RequestTimeout:   15,
		ScrollMargin:     3,
		ScrollDurationMs: 250,
		RefreshInterval:  30,
		Cache:            true,
		WatchConfig:      true,
	}
}

// Identity returns the ambient identity configured for the session.
func (c *AppConfig) Identity() models.Identity {
	return models.Identity{UserID: c.UserID, Authenticated: c.Authenticated}
}

// Timeout returns the HTTP request timeout.
func (c *AppConfig) Timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 0
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

// ScrollDuration returns the scroll animation length.
func (c *AppConfig) ScrollDuration() time.Duration {
	return time.Duration(c.ScrollDurationMs) * time.Millisecond
}

// RefreshEvery returns the auto refresh period, zero when disabled.
func (c *AppConfig) RefreshEvery() time.Duration {
	if !c.AutoRefresh || c.RefreshInterval <= 0 {
		return 0
	}
	return time.Duration(c.RefreshInterval) * time.Second
}

// DetailURL returns the absolute detail page URL of a worksheet.
func (c *AppConfig) DetailURL(uuid string) string {
	path := strings.ReplaceAll(c.DetailPath, "{uuid}", url.PathEscape(uuid))
	return strings.TrimRight(c.ServerURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// ResolvedCacheDir returns the directory holding cached listings.
func (c *AppConfig) ResolvedCacheDir() string {
	if c.CacheDir != "" {
		if expanded, err := utils.ExpandPath(c.CacheDir); err == nil {
			return expanded
		}
		return c.CacheDir
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "lazyworksheets")
	}
	return filepath.Join(os.TempDir(), "lazyworksheets")
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case float64:
		return int(v)
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

func coerceString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), true
	case int:
		return strconv.Itoa(v), true
	}
	return "", false
}

func setString(data map[string]any, key string, target *string) {
	if s, ok := coerceString(data[key]); ok && s != "" {
		*target = s
	}
}

// applyConfigData merges parsed YAML (or CLI override) values onto cfg.
func applyConfigData(cfg *AppConfig, data map[string]any) {
	setString(data, "server_url", &cfg.ServerURL)
	setString(data, "list_path", &cfg.ListPath)
	setString(data, "delete_path", &cfg.DeletePath)
	setString(data, "detail_path", &cfg.DetailPath)
	setString(data, "api_token", &cfg.APIToken)
	setString(data, "session_cookie", &cfg.SessionCookie)
	setString(data, "debug_log", &cfg.DebugLog)
	setString(data, "cache_dir", &cfg.CacheDir)

	if userID, ok := coerceString(data["user_id"]); ok {
		cfg.UserID = models.ID(userID)
	}

	cfg.Authenticated = coerceBool(data["authenticated"], cfg.Authenticated)
	cfg.MineOnly = coerceBool(data["mine_only"], cfg.MineOnly)
	cfg.SearchAutoSelect = coerceBool(data["search_auto_select"], cfg.SearchAutoSelect)
	cfg.AutoRefresh = coerceBool(data["auto_refresh"], cfg.AutoRefresh)
	cfg.Cache = coerceBool(data["cache"], cfg.Cache)
	cfg.WatchConfig = coerceBool(data["watch_config"], cfg.WatchConfig)

	cfg.RequestTimeout = coerceInt(data["request_timeout"], cfg.RequestTimeout)
	cfg.ScrollMargin = coerceInt(data["scroll_margin"], cfg.ScrollMargin)
	cfg.ScrollDurationMs = coerceInt(data["scroll_duration_ms"], cfg.ScrollDurationMs)
	cfg.RefreshInterval = coerceInt(data["refresh_interval"], cfg.RefreshInterval)

	if themeName, ok := data["theme"].(string); ok {
		if normalized := NormalizeThemeName(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}

	if cfg.ScrollMargin < 0 {
		cfg.ScrollMargin = 0
	}
	if cfg.ScrollDurationMs < 0 {
		cfg.ScrollDurationMs = 0
	}
	if cfg.RequestTimeout < 0 {
		cfg.RequestTimeout = 0
	}
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	applyConfigData(cfg, data)
	return cfg
}

// Validate checks the settings the API client depends on.
func (c *AppConfig) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server_url %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server_url %q: scheme must be http or https", c.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server_url %q: missing host", c.ServerURL)
	}
	if !strings.Contains(c.DetailPath, "{uuid}") {
		return fmt.Errorf("detail_path %q must contain {uuid}", c.DetailPath)
	}
	return nil
}

// ApplyCLIOverrides applies repeated --config=lw.key=value overrides.
func (c *AppConfig) ApplyCLIOverrides(overrides []string) error {
	data := make(map[string]any, len(overrides))
	for _, raw := range overrides {
		key, value, ok := strings.Cut(raw, "=")
		if !ok {
			return fmt.Errorf("invalid override %q: expected lw.key=value", raw)
		}
		key = strings.TrimSpace(key)
		if !strings.HasPrefix(key, overridePrefix) {
			return fmt.Errorf("invalid override %q: key must start with %q", raw, overridePrefix)
		}
		key = strings.TrimPrefix(key, overridePrefix)
		if !isKnownKey(key) {
			return fmt.Errorf("unknown config key %q", key)
		}
		data[key] = value
	}
	applyConfigData(c, data)
	return nil
}

// CarryOverrides copies the command line settings of c onto next, a
// configuration freshly read from disk, and applies them there.
func (c *AppConfig) CarryOverrides(next *AppConfig) error {
	next.ThemeFlag = c.ThemeFlag
	next.CLIOverrides = c.CLIOverrides
	if c.ThemeFlag != "" {
		next.Theme = c.ThemeFlag
	}
	if len(c.CLIOverrides) == 0 {
		return nil
	}
	return next.ApplyCLIOverrides(c.CLIOverrides)
}

// ApplyEnv applies environment overrides.
func (c *AppConfig) ApplyEnv(getenv func(string) string) {
	if server := strings.TrimSpace(getenv(EnvServer)); server != "" {
		c.ServerURL = server
	}
	if token := strings.TrimSpace(getenv(EnvToken)); token != "" {
		c.APIToken = token
	}
}

// KnownKeys lists the keys accepted in the config file and --config.
func KnownKeys() []string {
	return []string{
		"server_url", "list_path", "delete_path", "detail_path", "api_token",
		"session_cookie", "user_id", "authenticated", "mine_only",
		"search_auto_select", "theme", "debug_log", "request_timeout",
		"scroll_margin", "scroll_duration_ms", "auto_refresh",
		"refresh_interval", "cache", "cache_dir", "watch_config",
	}
}

func isKnownKey(key string) bool {
	for _, known := range KnownKeys() {
		if known == key {
			return true
		}
	}
	return false
}

// ConfigDir returns the directory configuration files must live in.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Clean(filepath.Join(base, "lazyworksheets"))
}

// ResolvePath returns the configuration file that LoadConfig would read.
// An empty result means no file exists and defaults apply.
func ResolvePath(configPath string) (string, error) {
	configBase := ConfigDir()

	if configPath != "" {
		expanded, err := utils.ExpandPath(configPath)
		if err != nil {
			return "", err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return "", err
		}
		if !utils.IsPathWithin(configBase, absPath) {
			return "", fmt.Errorf("config path must reside inside %s", configBase)
		}
		return absPath, nil
	}

	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(configBase, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// LoadConfig reads the application configuration from a YAML file.
func LoadConfig(configPath string) (*AppConfig, error) {
	path, err := ResolvePath(configPath)
	if err != nil {
		return DefaultConfig(), err
	}

	cfg := DefaultConfig()
	if path != "" {
		// #nosec G304 -- path is constrained to the config directory
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var yamlData map[string]any
			if err := yaml.Unmarshal(data, &yamlData); err != nil {
				return DefaultConfig(), fmt.Errorf("failed to parse %s: %w", path, err)
			}
			cfg = parseConfig(yamlData)
			cfg.Path = path
		case os.IsNotExist(err):
		default:
			return DefaultConfig(), fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.Getenv)
	if cfg.Theme == "" {
		cfg.Theme = theme.Detect()
	}
	return cfg, nil
}

// NormalizeThemeName returns the canonical theme name if it is supported.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, known := range theme.AvailableThemes() {
		if name == known {
			return name
		}
	}
	return ""
}
