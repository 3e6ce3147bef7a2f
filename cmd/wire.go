package cmd

import (
	"context"
	"errors"
	"fmt"

	kvmemory "github.com/bnema/dear-my-friend/internal/adapters/kv/memory"
	kvsqlite "github.com/bnema/dear-my-friend/internal/adapters/kv/sqlite"
	kvtoml "github.com/bnema/dear-my-friend/internal/adapters/kv/toml"
	"github.com/bnema/dear-my-friend/internal/application"
	"github.com/bnema/dear-my-friend/internal/config"
	"github.com/bnema/dear-my-friend/internal/countdown"
	"github.com/bnema/dear-my-friend/internal/eventloop"
	"github.com/bnema/dear-my-friend/internal/logging"
	"github.com/bnema/dear-my-friend/internal/ports"
	"github.com/bnema/dear-my-friend/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// wiring carries what the commands share: resolved config, the logger and,
// once opened, the composed application.
type wiring struct {
	v       *viper.Viper
	cfg     config.Config
	logger  *zap.Logger
	verbose bool
	bindErr error

	clock     ports.Clock
	loop      *eventloop.Loop
	countdown *countdown.Engine
	app       *application.App
	closers   []func() error
}

func newWiring() *wiring {
	return &wiring{
		v:      config.New(),
		logger: zap.NewNop(),
		clock:  ports.SystemClock{},
	}
}

func (w *wiring) bindFlag(flag *pflag.Flag, key string) {
	if err := w.v.BindPFlag(key, flag); err != nil {
		w.bindErr = errors.Join(w.bindErr, fmt.Errorf("bind flag %s: %w", flag.Name, err))
	}
}

// setup resolves configuration and the stderr logger. It runs before every command.
func (w *wiring) setup(cmd *cobra.Command) error {
	if w.bindErr != nil {
		return w.bindErr
	}
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return err
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	cfg, err := config.Load(w.v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	w.cfg = cfg

	level, err := logging.ParseLevel(cfg.Log.Level, w.verbose)
	if err != nil {
		return err
	}
	w.logger = logging.New(level, cmd.ErrOrStderr())
	w.logger.Debug("configuration loaded",
		zap.String("data_dir", cfg.DataDir),
		zap.String("backend", string(cfg.Storage.Backend)),
		zap.String("config_file", cfg.ConfigFile),
	)
	return nil
}

// useFileLogger sends logs to the configured file, for screens that own the terminal.
func (w *wiring) useFileLogger() error {
	level, err := logging.ParseLevel(w.cfg.Log.Level, w.verbose)
	if err != nil {
		return err
	}
	logger, closeFn, err := logging.NewFile(level, w.cfg.Log.File)
	if err != nil {
		return err
	}
	w.logger = logger
	w.closers = append(w.closers, closeFn)
	return nil
}

type openOptions struct {
	autoStartTutorial bool
}

// open wires storage, the event loop and the stores, then loads persisted state.
func (w *wiring) open(ctx context.Context, opts openOptions) (*application.App, error) {
	if w.app != nil {
		return w.app, nil
	}

	kv, closeFn, err := openStore(w.cfg)
	if err != nil {
		return nil, err
	}
	if closeFn != nil {
		w.closers = append(w.closers, closeFn)
	}

	w.loop = eventloop.New(w.clock, w.logger.Named("loop"))
	w.countdown = countdown.New(w.loop,
		countdown.WithDefaultDuration(w.cfg.Countdown.Duration),
		countdown.WithTickInterval(w.cfg.Countdown.Tick),
		countdown.WithLogger(w.logger.Named("countdown")),
	)

	app := application.NewApp(application.Deps{
		Loop:      w.loop,
		Storage:   storage.NewAdapter(kv, w.logger.Named("storage")),
		Countdown: w.countdown,
		IDs:       ports.UUIDGenerator{},
		Logger:    w.logger,
	}, application.Options{
		Locale:            w.cfg.Locale,
		CountdownDuration: w.cfg.Countdown.Duration,
		StepDuration:      w.cfg.Tutorial.StepDuration,
		OverlayDelay:      w.cfg.Tutorial.OverlayDelay,
		ReturnDelay:       w.cfg.Tutorial.ReturnDelay,
		MentorDemoDelay:   w.cfg.Tutorial.MentorDemoDelay,
		AutoStartTutorial: opts.autoStartTutorial,
	})
	app.Initialize(ctx)
	w.loop.RunPending()

	w.app = app
	return app, nil
}

// settle runs the work queued by the last operation, persisting it.
func (w *wiring) settle() {
	if w.loop != nil {
		w.loop.RunPending()
	}
}

func (w *wiring) close() error {
	w.settle()
	var errs []error
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	w.closers = nil
	_ = w.logger.Sync()
	return errors.Join(errs...)
}

func openStore(cfg config.Config) (ports.KeyValueStore, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return kvmemory.NewStore(), nil, nil
	case config.BackendSQLite:
		store, err := kvsqlite.NewStore(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("wire sqlite store: %w", err)
		}
		return store, store.Close, nil
	default:
		store, err := kvtoml.NewStore(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("wire toml store: %w", err)
		}
		return store, nil, nil
	}
}
