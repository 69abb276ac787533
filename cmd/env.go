// Package cmd implements the apptrial subcommands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"grimm.is/apptrial/internal/audit"
	"grimm.is/apptrial/internal/brand"
	"grimm.is/apptrial/internal/clock"
	"grimm.is/apptrial/internal/config"
	"grimm.is/apptrial/internal/events"
	"grimm.is/apptrial/internal/i18n"
	"grimm.is/apptrial/internal/logging"
	"grimm.is/apptrial/internal/metrics"
	"grimm.is/apptrial/internal/settings"
	"grimm.is/apptrial/internal/trial"
)

// Printer is the localized printer used for all command output.
var Printer = i18n.NewPrinter(i18n.SystemLanguage())

// Env bundles everything a subcommand needs: the loaded config and the
// settings store, trial controller, metrics and history built from it.
type Env struct {
	Config  *config.Config
	Logger  *logging.Logger
	Clock   clock.Clock
	Lang    language.Tag
	Store   *settings.Store
	Metrics *metrics.Registry
	Events  *events.Hub
	Trial   *trial.Controller

	// History is nil when disabled or when the database could not be opened.
	History  *audit.Store
	recorder *audit.Recorder

	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer
}

// Open loads the config at configPath and builds an Env on the system clock.
func Open(configPath string) (*Env, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	return NewEnv(cfg, clock.System, logging.Default()), nil
}

// OpenStore loads the config at configPath and returns only its settings
// store. Unlike Open it does not build a controller, so the settings file is
// left exactly as it is on disk.
func OpenStore(configPath string) (*settings.Store, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	store := NewStore(cfg, clock.System)
	logging.WithComponent("settings").Debug("opened settings store", "path", store.Path())
	return store, nil
}

func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.SetDefault(newLogger(cfg.Logging))
	return cfg, nil
}

// newLogger builds the CLI logger. APPTRIAL_LOG_LEVEL overrides the
// configured level.
func newLogger(cfg *config.LoggingConfig) *logging.Logger {
	level, _ := logging.ParseLevel(cfg.Level)
	logger := logging.New(logging.Config{
		Level:  level,
		Output: os.Stderr,
		JSON:   cfg.JSON,
	})

	if override := os.Getenv(brand.ConfigEnvPrefix + "_LOG_LEVEL"); override != "" {
		l, err := logging.ParseLevel(override)
		if err != nil {
			logger.Warn("ignoring log level override", "value", override, "error", err)
		} else {
			logger.SetLevel(l)
		}
	}
	return logger
}

// NewStore builds the settings store described by cfg.
func NewStore(cfg *config.Config, clk clock.Clock) *settings.Store {
	cfg.ApplyDefaults()

	dir := cfg.SettingsDir
	if dir == "" {
		dir = brand.GetSettingsDir()
	}
	return settings.New(dir, clk,
		settings.WithDefaultPeriod(cfg.TrialDays),
		settings.WithIndent(),
	)
}

// NewEnv wires the store, metrics and controller for cfg. The controller
// reads (and on first run creates) the settings file immediately.
func NewEnv(cfg *config.Config, clk clock.Clock, logger *logging.Logger) *Env {
	if logger == nil {
		logger = logging.Default()
	}
	cfg.ApplyDefaults()

	lang := i18n.SystemLanguage()
	if cfg.Language != "" {
		lang = i18n.Parse(cfg.Language)
	}

	env := &Env{
		Config:  cfg,
		Logger:  logger,
		Clock:   clk,
		Lang:    lang,
		Metrics: metrics.New(),
		Events:  events.NewHub(),
		Out:     os.Stdout,
	}

	env.Store = NewStore(cfg, clk)

	// The recorder must be listening before the controller publishes its
	// first-run event.
	if cfg.History.IsEnabled() {
		env.openHistory(env.Store.Dir())
	}

	env.Trial = trial.New(env.Store, clk,
		trial.WithLogger(logger),
		trial.WithLanguage(lang),
		trial.WithObserver(env.Metrics),
		trial.WithEvents(env.Events),
		trial.WithDefaultPeriod(cfg.TrialDays),
	)
	if err := env.Metrics.WatchTrial(env.Trial); err != nil {
		logger.Warn("failed to register trial metrics", "error", err)
	}
	if err := env.Metrics.WatchEvents(env.Events); err != nil {
		logger.Warn("failed to register event metrics", "error", err)
	}

	return env
}

func (e *Env) openHistory(settingsDir string) {
	path := filepath.Join(settingsDir, config.HistoryFileName)
	retention := 0
	if h := e.Config.History; h != nil {
		if h.Path != "" {
			path = h.Path
		}
		retention = h.RetentionDays
	}

	store, err := audit.NewStore(path, retention)
	if err != nil {
		e.Logger.Warn("history disabled", "path", path, "error", err)
		return
	}
	if n, err := store.Prune(e.Clock.Now()); err != nil {
		e.Logger.Warn("failed to prune history", "error", err)
	} else if n > 0 {
		e.Logger.Debug("pruned history", "records", n)
	}

	e.History = store
	e.recorder = audit.NewRecorder(store, e.Events, e.Logger)
}

// Close flushes the history and releases the database.
func (e *Env) Close() error {
	if e.recorder != nil {
		e.recorder.Close()
		e.recorder = nil
	}
	if e.History != nil {
		err := e.History.Close()
		e.History = nil
		return err
	}
	return nil
}

// FlushHistory writes every event published so far and keeps recording.
func (e *Env) FlushHistory() {
	if e.recorder != nil {
		e.recorder.Flush()
	}
}

func (e *Env) out() io.Writer {
	if e.Out == nil {
		return os.Stdout
	}
	return e.Out
}

// printer returns a printer in the trial's language.
func (e *Env) printer() *message.Printer {
	return i18n.NewPrinter(e.Lang)
}
