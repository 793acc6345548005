package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gradix/internal/config"
	"github.com/alexisbeaulieu97/gradix/internal/logger"
	"github.com/alexisbeaulieu97/gradix/internal/store"
	"github.com/alexisbeaulieu97/gradix/internal/store/kv"
	"github.com/alexisbeaulieu97/gradix/internal/studio"
)

// AppContext bundles the services a command needs.
type AppContext struct {
	Config *config.Config
	Log    *logger.Logger
	Store  store.Store
	close  func() error
}

// Close releases the store backend.
func (a *AppContext) Close() error {
	if a == nil || a.close == nil {
		return nil
	}
	return a.close()
}

// Service builds a studio service over the configured store.
func (a *AppContext) Service(opts ...studio.Option) *studio.Service {
	base := []studio.Option{studio.WithNotifier(studio.LogNotifier{Log: a.Log})}
	return studio.NewService(a.Store, append(base, opts...)...)
}

func loadAppContext(cmd *cobra.Command, flags *rootFlags) (*AppContext, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if flags.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: cfg.Log.HumanReadable,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	st, closeFn, err := openStore(cfg.Store, log)
	if err != nil {
		return nil, err
	}

	return &AppContext{Config: cfg, Log: log, Store: st, close: closeFn}, nil
}

func loadConfig(flags *rootFlags) (*config.Config, error) {
	if path := config.ResolvePath(flags.configPath); path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

func openStore(cfg config.StoreConfig, log *logger.Logger) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemory(), noop, nil
	case config.BackendFile:
		backend, err := kv.NewFileBackend(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		st, err := store.NewPersistent(backend, log)
		if err != nil {
			return nil, nil, err
		}
		return st, noop, nil
	case config.BackendSQLite:
		backend, err := kv.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		st, err := store.NewPersistent(backend, log)
		if err != nil {
			_ = backend.Close()
			return nil, nil, err
		}
		return st, backend.Close, nil
	default:
		return nil, nil, errors.New("unknown store backend " + cfg.Backend)
	}
}

func withAppContext(cmd *cobra.Command, flags *rootFlags, operation string, fn func(*AppContext) error) error {
	app, err := loadAppContext(cmd, flags)
	if err != nil {
		return newCommandError(operation, "loading configuration", err, "Check the file named by --config or $GRADIX_CONFIG.")
	}
	defer func() { _ = app.Close() }()

	return fn(app)
}
