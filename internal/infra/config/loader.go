// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/editflow/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the data directory (e.g., ./.editflow)
	globalConfDir string // Path to global config directory (e.g., ~/.config/editflow)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalDir(configHome)
}

// Load returns the merged configuration.
// Data directory config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.loadFile(domain.DataConfigPath(l.dataDir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- data dir (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}

	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// stringKeys reads the string values of one section into the given targets
// and reports unknown keys and non-string values.
func stringKeys(section string, m map[string]any, targets map[string]*string) []string {
	var warnings []string
	for k, v := range m {
		dst, ok := targets[k]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, k))
			continue
		}
		s, ok := v.(string)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("[%s].%s must be a string", section, k))
			continue
		}
		*dst = s
	}
	return warnings
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "store":
			warnings = append(warnings, stringKeys(section, m, map[string]*string{
				"type": &res.Store.Type,
				"path": &res.Store.Path,
				"url":  &res.Store.URL,
			})...)
		case "log":
			warnings = append(warnings, stringKeys(section, m, map[string]*string{
				"level": &res.Log.Level,
			})...)
		case "server":
			warnings = append(warnings, stringKeys(section, m, map[string]*string{
				"addr": &res.Server.Addr,
			})...)
		case "stats":
			warnings = append(warnings, stringKeys(section, m, map[string]*string{
				"membership": &res.Stats.Membership,
			})...)
			if _, err := domain.ParseMonthMembership(res.Stats.Membership); err != nil {
				warnings = append(warnings, err.Error())
				res.Stats.Membership = ""
			}
		case "calendar":
			warnings = append(warnings, stringKeys(section, m, map[string]*string{
				"week_start": &res.Calendar.WeekStart,
			})...)
			if _, err := domain.ParseWeekStart(res.Calendar.WeekStart); err != nil {
				warnings = append(warnings, err.Error())
				res.Calendar.WeekStart = ""
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := *base
	result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)

	if override.Store.Type != "" {
		result.Store.Type = override.Store.Type
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Store.URL != "" {
		result.Store.URL = override.Store.URL
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Stats.Membership != "" {
		result.Stats.Membership = override.Stats.Membership
	}
	if override.Calendar.WeekStart != "" {
		result.Calendar.WeekStart = override.Calendar.WeekStart
	}

	return &result
}
