// Package config loads blockpad's TOML settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/iw2rmb/blockpad/internal/logging"
	"github.com/iw2rmb/blockpad/internal/store"
	"github.com/iw2rmb/blockpad/shortcut"
)

type Config struct {
	Storage  StorageConfig   `toml:"storage"`
	Logging  LoggingConfig   `toml:"logging"`
	Editor   EditorConfig    `toml:"editor"`
	Triggers []TriggerConfig `toml:"triggers"`
}

type StorageConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
	Slot    string `toml:"slot"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

type EditorConfig struct {
	ShowStyleTags *bool `toml:"show_style_tags"`
}

// TriggerConfig adds a shortcut: typing Prefix as the whole block followed
// by a space applies Style. Configured triggers take precedence over the
// built-in ones.
type TriggerConfig struct {
	Prefix string `toml:"prefix"`
	Style  string `toml:"style"`
}

func Default() Config {
	show := true
	return Config{
		Storage: StorageConfig{
			Backend: string(store.BackendFile),
			Slot:    store.DefaultSlot,
		},
		Logging: LoggingConfig{Level: "info"},
		Editor:  EditorConfig{ShowStyleTags: &show},
	}
}

// Load reads the config at path, or at ConfigPath when path is empty. A
// missing or blank file yields Default. The result is validated.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		p, err := ConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	path, err := expandHome(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

// Validate checks every enumerated value so bad settings fail at startup.
func (c Config) Validate() error {
	var errs []error
	if _, err := store.ParseBackend(c.StorageBackendName()); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.TriggerTable(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c Config) StorageBackendName() string {
	backend := strings.TrimSpace(c.Storage.Backend)
	if backend == "" {
		return string(store.BackendFile)
	}
	return backend
}

func (c Config) StorageBackend() (store.Backend, error) {
	return store.ParseBackend(c.StorageBackendName())
}

// StoragePath returns the configured path or the backend's default location
// under DataDir.
func (c Config) StoragePath() (string, error) {
	if path := strings.TrimSpace(c.Storage.Path); path != "" {
		return expandHome(path)
	}
	backend, err := c.StorageBackend()
	if err != nil {
		return "", err
	}
	switch backend {
	case store.BackendBbolt:
		return dataPath("blockpad.db")
	case store.BackendFile:
		return dataPath("documents")
	default:
		return "", nil
	}
}

func (c Config) Slot() string {
	slot := strings.TrimSpace(c.Storage.Slot)
	if slot == "" {
		return store.DefaultSlot
	}
	return slot
}

func (c Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.Info
	}
	return level
}

func (c Config) LogPath() (string, error) {
	if path := strings.TrimSpace(c.Logging.Path); path != "" {
		return expandHome(path)
	}
	return dataPath("blockpad.log")
}

func (c Config) ShowStyleTags() bool {
	if c.Editor.ShowStyleTags == nil {
		return true
	}
	return *c.Editor.ShowStyleTags
}

// TriggerTable returns the built-in shortcut table extended with the
// configured triggers.
func (c Config) TriggerTable() (shortcut.Table, error) {
	bindings := make([]shortcut.Binding, 0, len(c.Triggers))
	for _, tc := range c.Triggers {
		bindings = append(bindings, shortcut.Binding{Prefix: tc.Prefix, Style: tc.Style})
	}
	rules, err := shortcut.ParseRules(bindings)
	if err != nil {
		return shortcut.Table{}, err
	}
	return shortcut.DefaultTable().With(rules...), nil
}
