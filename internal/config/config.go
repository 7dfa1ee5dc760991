package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DirName is the name of the global and per-repo configuration directory.
const DirName = ".portfolio"

// Default provider endpoints.
const (
	DefaultGitHubAPIBase     = "https://github-contributions-api.jogruber.de"
	DefaultLeetCodeAPIBase   = "https://leetcode.com"
	DefaultCodeforcesAPIBase = "https://codeforces.com"
)

// Environment variables that override provider handles.
const (
	EnvGitHubUser       = "PORTFOLIO_GITHUB_USER"
	EnvLeetCodeUser     = "PORTFOLIO_LEETCODE_USER"
	EnvCodeforcesHandle = "PORTFOLIO_CODEFORCES_HANDLE"
)

// Config holds application configuration.
type Config struct {
	// GitHubUser, LeetCodeUser and CodeforcesHandle select whose activity is shown.
	// An empty handle disables that provider (its series stays empty).
	GitHubUser       string `json:"github_user,omitempty"`
	LeetCodeUser     string `json:"leetcode_user,omitempty"`
	CodeforcesHandle string `json:"codeforces_handle,omitempty"`

	// Provider API base URLs. Overridable for self-hosted mirrors and tests.
	GitHubAPIBase     string `json:"github_api_base,omitempty"`
	LeetCodeAPIBase   string `json:"leetcode_api_base,omitempty"`
	CodeforcesAPIBase string `json:"codeforces_api_base,omitempty"`

	// FetchTimeoutSeconds bounds each provider fetch.
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds"`

	// CacheTTLMinutes is how old a stored snapshot may get before the
	// activity view refetches it.
	CacheTTLMinutes int `json:"cache_ttl_minutes"`

	// SnapshotKeep is how many snapshots per provider survive pruning.
	SnapshotKeep int `json:"snapshot_keep"`

	// CatalogPath points at a YAML catalog. Empty uses the built-in catalog.
	CatalogPath string `json:"catalog_path,omitempty"`

	// Bind and Port select the web server address.
	Bind string `json:"bind,omitempty"`
	Port int    `json:"port,omitempty"`

	// AllowedOrigins lists origins allowed to call the JSON API cross-origin.
	AllowedOrigins []string `json:"allowed_origins,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// Debug switches to a development logger.
	Debug bool `json:"debug,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		GitHubAPIBase:       DefaultGitHubAPIBase,
		LeetCodeAPIBase:     DefaultLeetCodeAPIBase,
		CodeforcesAPIBase:   DefaultCodeforcesAPIBase,
		FetchTimeoutSeconds: 10,
		CacheTTLMinutes:     60,
		SnapshotKeep:        5,
		Bind:                "127.0.0.1",
		Port:                8080,
	}
}

// FetchTimeout returns FetchTimeoutSeconds as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// CacheTTL returns CacheTTLMinutes as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.portfolio.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.portfolio) and repo (.portfolio) directories.
// Repo config is found by walking upward from startDir to find the nearest .portfolio/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Environment handle overrides are applied last.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	cfg := Merge(Merge(DefaultConfig(), global), repo)
	ApplyEnv(cfg, os.Getenv)
	return cfg, nil
}

// FindRepoConfig walks upward from startDir to find the nearest .portfolio/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	if startDir == "" {
		return ""
	}
	dir := startDir
	for {
		configPath := filepath.Join(dir, DirName, "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// ApplyEnv overrides provider handles from the environment.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvGitHubUser)); v != "" {
		cfg.GitHubUser = v
	}
	if v := strings.TrimSpace(getenv(EnvLeetCodeUser)); v != "" {
		cfg.LeetCodeUser = v
	}
	if v := strings.TrimSpace(getenv(EnvCodeforcesHandle)); v != "" {
		cfg.CodeforcesHandle = v
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the path is empty or the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	return &Config{
		GitHubUser:       pickString(overlay.GitHubUser, base.GitHubUser),
		LeetCodeUser:     pickString(overlay.LeetCodeUser, base.LeetCodeUser),
		CodeforcesHandle: pickString(overlay.CodeforcesHandle, base.CodeforcesHandle),

		GitHubAPIBase:     pickString(overlay.GitHubAPIBase, base.GitHubAPIBase),
		LeetCodeAPIBase:   pickString(overlay.LeetCodeAPIBase, base.LeetCodeAPIBase),
		CodeforcesAPIBase: pickString(overlay.CodeforcesAPIBase, base.CodeforcesAPIBase),

		FetchTimeoutSeconds: pickInt(overlay.FetchTimeoutSeconds, base.FetchTimeoutSeconds),
		CacheTTLMinutes:     pickInt(overlay.CacheTTLMinutes, base.CacheTTLMinutes),
		SnapshotKeep:        pickInt(overlay.SnapshotKeep, base.SnapshotKeep),
		CatalogPath:         pickString(overlay.CatalogPath, base.CatalogPath),
		Bind:                pickString(overlay.Bind, base.Bind),
		Port:                pickInt(overlay.Port, base.Port),
		DBMaxOpenConns:      pickInt(overlay.DBMaxOpenConns, base.DBMaxOpenConns),
		DBMaxIdleConns:      pickInt(overlay.DBMaxIdleConns, base.DBMaxIdleConns),

		// Booleans: overlay wins if true, else base
		Debug: base.Debug || overlay.Debug,

		AllowedOrigins: mergeStringSlice(base.AllowedOrigins, overlay.AllowedOrigins),
		DisabledTools:  mergeStringSlice(base.DisabledTools, overlay.DisabledTools),
	}
}

func pickString(overlay, base string) string {
	if overlay != "" {
		return overlay
	}
	return base
}

func pickInt(overlay, base int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
