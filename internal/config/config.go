package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentx-labs/xctgen/internal/branding"
	"github.com/agentx-labs/xctgen/internal/descriptor"
	"github.com/agentx-labs/xctgen/internal/pack"
	"github.com/agentx-labs/xctgen/internal/scan"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by Get, Set and Defaults.
const (
	KeyExtensions        = "extensions"
	KeyIgnoreDirSuffixes = "ignore_dir_suffixes"
	KeyForceDirSuffixes  = "force_dir_suffixes"
	KeyGroupIndex        = "group_index"
	KeyKind              = "kind"
	KeyOutput            = "output"
	KeyConcrete          = "concrete"
)

// Keys lists every supported configuration key.
var Keys = []string{
	KeyExtensions,
	KeyIgnoreDirSuffixes,
	KeyForceDirSuffixes,
	KeyGroupIndex,
	KeyKind,
	KeyOutput,
	KeyConcrete,
}

// Defaults holds the resolved user defaults for a generate run.
type Defaults struct {
	Extensions        []string
	IgnoreDirSuffixes []string
	ForceDirSuffixes  []string
	GroupIndex        int
	Kind              string
	Output            string
	Concrete          string
}

// Dir returns the path to the config directory (~/.xctgen/). XCTGEN_HOME
// overrides it.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.xctgen/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load resets Viper and reads the config file and environment. A missing
// config file is not an error; a malformed one is.
func Load() error {
	viper.Reset()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyExtensions, scan.DefaultAllowedExtensions)
	viper.SetDefault(KeyIgnoreDirSuffixes, scan.DefaultIgnoreDirSuffixes)
	viper.SetDefault(KeyForceDirSuffixes, scan.DefaultForceDescendSuffixes)
	viper.SetDefault(KeyGroupIndex, 1)
	viper.SetDefault(KeyKind, descriptor.DefaultKind)
	viper.SetDefault(KeyOutput, pack.DefaultOutput)
	viper.SetDefault(KeyConcrete, "yes")

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(FilePath()); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Current returns the defaults resolved from file, environment and built-in
// values. Load must be called first.
func Current() Defaults {
	return Defaults{
		Extensions:        viper.GetStringSlice(KeyExtensions),
		IgnoreDirSuffixes: viper.GetStringSlice(KeyIgnoreDirSuffixes),
		ForceDirSuffixes:  viper.GetStringSlice(KeyForceDirSuffixes),
		GroupIndex:        viper.GetInt(KeyGroupIndex),
		Kind:              viper.GetString(KeyKind),
		Output:            viper.GetString(KeyOutput),
		Concrete:          viper.GetString(KeyConcrete),
	}
}

// IsKey reports whether key is a supported configuration key.
func IsKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns a config value by key, with list values space-separated.
func Get(key string) string {
	switch key {
	case KeyExtensions, KeyIgnoreDirSuffixes, KeyForceDirSuffixes:
		return strings.Join(viper.GetStringSlice(key), " ")
	}
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, parsed)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// parseValue converts a command-line value to the type stored for key.
func parseValue(key, value string) (any, error) {
	switch key {
	case KeyGroupIndex:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
		}
		return n, nil
	case KeyConcrete:
		if _, ok := descriptor.ParseConcrete(value); !ok {
			return nil, fmt.Errorf("%s must be yes or no, got %q", key, value)
		}
		return strings.ToLower(strings.TrimSpace(value)), nil
	case KeyExtensions, KeyIgnoreDirSuffixes, KeyForceDirSuffixes:
		return strings.Fields(value), nil
	case KeyKind, KeyOutput:
		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%s must not be empty", key)
		}
	}
	return value, nil
}
