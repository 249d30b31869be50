package domain

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string       `toml:"-"`
	Store    StoreConfig    `toml:"store"`
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Stats    StatsConfig    `toml:"stats"`
	Calendar CalendarConfig `toml:"calendar"`
}

// Store types.
const (
	StoreJSON     = "json"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// StoreConfig holds settings for the document store from [store] section.
type StoreConfig struct {
	Type string `toml:"type,omitempty"` // "json" (default), "postgres" or "sqlite"
	Path string `toml:"path,omitempty"` // File path for json/sqlite; relative to the data dir
	URL  string `toml:"url,omitempty"`  // Connection URL for postgres
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// ServerConfig holds HTTP settings from [server] section.
type ServerConfig struct {
	Addr string `toml:"addr,omitempty"`
}

// StatsConfig holds aggregation settings from [stats] section.
type StatsConfig struct {
	Membership string `toml:"membership,omitempty"` // "boundary" (default) or "overlap"
}

// CalendarConfig holds calendar settings from [calendar] section.
type CalendarConfig struct {
	WeekStart string `toml:"week_start,omitempty"` // "monday" (default) or "sunday"
}

// Default configuration values.
const (
	DefaultLogLevel   = "info"
	DefaultServerAddr = ":8080"
	DefaultStoreType  = StoreJSON
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Store:    StoreConfig{Type: DefaultStoreType},
		Log:      LogConfig{Level: DefaultLogLevel},
		Server:   ServerConfig{Addr: DefaultServerAddr},
		Stats:    StatsConfig{Membership: string(MembershipBoundary)},
		Calendar: CalendarConfig{WeekStart: "monday"},
	}
}

// StatsOptions converts the [stats] section. Invalid values fall back to boundary membership.
func (c *Config) StatsOptions() StatsOptions {
	m, _ := ParseMonthMembership(c.Stats.Membership)
	return StatsOptions{Membership: m}
}

// RenderConfigTemplate renders the commented config file written by 'editflow config init'.
func RenderConfigTemplate(cfg *Config) string {
	tmpl := template.Must(template.New("config").Parse(configTemplateContent))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return configTemplateContent
	}
	return buf.String()
}

// Directory and file names for editflow.
const (
	DataDirName     = ".editflow"            // Default data directory, relative to the working directory
	GlobalDirName   = "editflow"             // Directory under XDG_CONFIG_HOME
	ConfigFileName  = "config.toml"          // Config file name
	StoreFileName   = "schedule.json"        // JSON store file name
	SQLiteFileName  = "schedule.db"          // SQLite store file name
	LogsDirName     = "logs"                 // Log directory name
	LogFileName     = "editflow.log"         // Log file name
	DataDirEnvVar   = "EDITFLOW_DIR"         // Overrides the data directory
	TestPGURLEnvVar = "EDITFLOW_TEST_PG_URL" // Enables Postgres integration tests
	ChangeChannel   = "editflow_changes"     // Postgres NOTIFY channel
)

// ResolveDataDir returns the data directory: the flag value, then $EDITFLOW_DIR, then ./.editflow.
func ResolveDataDir(flagValue, cwd string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(DataDirEnvVar); env != "" {
		return env
	}
	return filepath.Join(cwd, DataDirName)
}

// DataConfigPath returns the config path inside the data directory.
func DataConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFileName)
}

// GlobalDir returns the global editflow directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalDir(configHome string) string {
	return filepath.Join(configHome, GlobalDirName)
}

// LogPath returns the log file path inside the data directory.
func LogPath(dataDir string) string {
	return filepath.Join(dataDir, LogsDirName, LogFileName)
}

// StorePath resolves the store file for file-based backends.
func StorePath(dataDir string, cfg StoreConfig) string {
	if cfg.Path != "" {
		if filepath.IsAbs(cfg.Path) {
			return cfg.Path
		}
		return filepath.Join(dataDir, cfg.Path)
	}
	if cfg.Type == StoreSQLite {
		return filepath.Join(dataDir, SQLiteFileName)
	}
	return filepath.Join(dataDir, StoreFileName)
}
