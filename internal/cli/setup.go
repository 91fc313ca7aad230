package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/thruflo/loanops/internal/backend"
	"github.com/thruflo/loanops/internal/config"
	"github.com/thruflo/loanops/internal/logging"
)

// app bundles what a command needs to talk to the orchestrator.
type app struct {
	cfg    *config.Config
	client *backend.Client
	log    *logging.Logger
	close  func()
}

// setup loads configuration, applies flag overrides, and configures the
// default logger. quietLogs discards log output unless log.file is set, for
// commands that own the terminal.
func setup(quietLogs bool) (*app, error) {
	basePath := dirFlag
	if basePath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		basePath = cwd
	}

	cfg, err := config.LoadConfig(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if serverFlag != "" {
		cfg.Server.URL = serverFlag
	}
	if logLevelFlag != "" {
		cfg.Log.Level = logLevelFlag
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = func() {
			_ = logging.Sync()
			f.Close()
		}
	case quietLogs:
		out = io.Discard
	}

	logging.SetLevel(level)
	logging.SetOutput(out)

	client := backend.NewClient(cfg.Server.URL, backend.WithTimeout(cfg.Server.Timeout.Std()))

	return &app{
		cfg:    cfg,
		client: client,
		log:    logging.With("server", cfg.Server.URL),
		close:  closeFn,
	}, nil
}
