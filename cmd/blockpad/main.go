package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/blockpad"
	"github.com/iw2rmb/blockpad/editor"
	"github.com/iw2rmb/blockpad/internal/app"
	"github.com/iw2rmb/blockpad/internal/config"
	"github.com/iw2rmb/blockpad/internal/logging"
	"github.com/iw2rmb/blockpad/internal/store"
)

type flags struct {
	configPath string
	slot       string
	backend    string
	path       string
	version    bool
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("blockpad", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "config file (default ~/.blockpad/config.toml)")
	fs.StringVar(&f.slot, "slot", "", "storage slot name")
	fs.StringVar(&f.backend, "backend", "", "storage backend: file, bbolt or memory")
	fs.StringVar(&f.path, "path", "", "storage directory (file) or database (bbolt)")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	if fs.NArg() > 0 {
		return flags{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return f, nil
}

// loadConfig applies flag overrides on top of the config file.
func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.backend != "" {
		cfg.Storage.Backend = f.backend
	}
	if f.path != "" {
		cfg.Storage.Path = f.path
	}
	if f.slot != "" {
		cfg.Storage.Slot = f.slot
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func openStore(cfg config.Config, logger logging.Logger) (*store.DocumentStore, error) {
	backend, err := cfg.StorageBackend()
	if err != nil {
		return nil, err
	}
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, err
	}
	kv, err := store.Open(backend, path)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", backend, err)
	}
	logger.Info("store opened", logging.F("backend", string(backend)), logging.F("path", path))
	docs, err := store.NewDocumentStore(kv, cfg.Slot(), logger)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return docs, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if f.version {
		fmt.Fprintln(stdout, "blockpad", blockpad.VersionTag())
		return nil
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	triggers, err := cfg.TriggerTable()
	if err != nil {
		return err
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	logger, logFile, err := logging.Open(logPath, cfg.LogLevel())
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger.Info("starting", logging.F("version", blockpad.Version()))

	docs, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("store open failed", logging.Err(err))
		return err
	}
	defer docs.Close()

	m, err := app.New(context.Background(), app.Options{
		Store:  docs,
		Logger: logger,
		Editor: editor.Config{
			Triggers:      triggers,
			ShowStyleTags: cfg.ShowStyleTags(),
			Style:         editor.DefaultStyle(),
		},
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", logging.Err(err))
		return err
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "blockpad:", err)
		os.Exit(1)
	}
}
