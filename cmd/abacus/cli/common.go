package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/abacus/internal/calc"
	"github.com/felixgeelhaar/abacus/internal/config"
	"github.com/felixgeelhaar/abacus/internal/observe"
	"github.com/felixgeelhaar/abacus/internal/store"
	"github.com/spf13/cobra"
)

// app is everything one command invocation needs.
type app struct {
	cfg      *config.Config
	obs      *observe.Observer
	session  *calc.Session
	journal  store.Journal
	recorder *store.Recorder
	closers  []func() error
}

// setup loads configuration, applies flag overrides and wires the session
// to logging and, when enabled, the journal. The interactive TUI owns the
// terminal, so it only logs when a log file is set.
func setup(cmd *cobra.Command, interactive bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Log.Verbose = verbose
	}
	if flags.Changed("json") {
		cfg.Log.JSON = jsonLogs
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if flags.Changed("journal") {
		cfg.Journal.Path = journalPath
	}

	res := cfg.Validate()
	if !res.Valid {
		return nil, fmt.Errorf("invalid config: %s", strings.Join(res.Errors, "; "))
	}

	a := &app{cfg: cfg}

	var out io.Writer = cmd.ErrOrStderr()
	switch {
	case cfg.Log.File != "":
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		a.closers = append(a.closers, f.Close)
		out = f
	case interactive:
		out = io.Discard
	}
	if cfg.Log.JSON {
		a.obs = observe.NewJSON(out, cfg.Log.Verbose)
	} else {
		a.obs = observe.New(out, cfg.Log.Verbose)
	}
	for _, w := range res.Warnings {
		a.obs.Log().Warn().Str("config", configPath).Msg(w)
	}

	bus := calc.NewEventBus()
	a.obs.Watch(bus)
	a.session = calc.NewSession(append(cfg.SessionOptions(), calc.WithEventBus(bus))...)

	if cfg.Journal.Path != "" {
		j, err := store.OpenSQLite(cfg.Journal.Path)
		if err != nil {
			a.close()
			return nil, err
		}
		a.journal = j
		rec, err := store.StartRecording(j, bus, func(err error) {
			a.obs.Log().Warn().Err(err).Msg("failed to record history entry")
		})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to start journal session: %w", err)
		}
		a.recorder = rec
		a.obs.Log().Debug().Str("session", rec.SessionID()).Str("journal", cfg.Journal.Path).Msg("recording history")
	}
	return a, nil
}

// openJournal opens the configured journal without starting a session.
func openJournal(cmd *cobra.Command) (*config.Config, store.Journal, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("journal") {
		cfg.Journal.Path = journalPath
	}
	if cfg.Journal.Path == "" {
		return nil, nil, fmt.Errorf("no journal configured (set journal.path or pass --journal)")
	}
	j, err := store.OpenSQLite(cfg.Journal.Path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, j, nil
}

func (a *app) close() {
	if a.recorder != nil {
		if err := a.recorder.Stop(); err != nil {
			a.obs.Log().Warn().Err(err).Msg("failed to end journal session")
		}
	}
	if a.journal != nil {
		_ = a.journal.Close()
	}
	if a.obs != nil {
		_ = a.obs.Close()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}
