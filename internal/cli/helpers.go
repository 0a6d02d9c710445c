// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared setup for commands: config, logger and API client.

package cli

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jeranaias/stockpulse/internal/config"
	"github.com/jeranaias/stockpulse/internal/logging"
	"github.com/jeranaias/stockpulse/internal/predict"
)

// Env is what a command handler needs besides its Args.
type Env struct {
	Config *config.Config
	Logger *zap.Logger
	Out    io.Writer
	Err    io.Writer

	// ConfigPath is the file Config was loaded from, or "" for defaults.
	ConfigPath string
}

// NewEnv returns an Env writing to the process's stdout and stderr.
func NewEnv(cfg *config.Config, logger *zap.Logger, configPath string) *Env {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Env{
		Config:     cfg,
		Logger:     logger,
		Out:        os.Stdout,
		Err:        os.Stderr,
		ConfigPath: configPath,
	}
}

// LoadConfig loads the config for args: the --config file if given,
// otherwise the usual search. --api and --verbose are applied on top.
// It returns the path the config came from ("" when only defaults were used).
func LoadConfig(args Args) (*config.Config, string, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if args.ConfigPath != "" {
		path = args.ConfigPath
		cfg, err = config.LoadFromPath(path)
	} else {
		path = config.ActivePath()
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, path, err
	}

	if args.APIURL != "" {
		cfg.API.BaseURL = args.APIURL
		cfg.SetDefaults()
		if err := cfg.Validate(); err != nil {
			return nil, path, err
		}
	}
	if args.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, path, nil
}

// NewLogger opens the log file named by cfg. The returned func flushes and
// closes it.
func NewLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	path, err := cfg.LogPath()
	if err != nil {
		return nil, nil, err
	}
	return logging.New(logging.Options{Level: cfg.Log.Level, Path: path})
}

// FallbackLogger is used when the log file cannot be opened. One-shot
// commands log warnings to stderr; the interactive screen owns the terminal
// and gets a no-op logger.
func FallbackLogger(cmd Command) *zap.Logger {
	if cmd == CmdTUI {
		return zap.NewNop()
	}
	logger, err := logging.Console("warn")
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// ReloadedConfig applies the live settings of next, freshly read from the
// config file, over a copy of base. Only the chips change while running;
// command-line overrides such as --api stay as base has them.
func ReloadedConfig(base, next *config.Config) *config.Config {
	live := base.Clone()
	live.UI.Chips = append([]string(nil), next.UI.Chips...)
	return live
}

// NewPredictClient builds the API client described by cfg.API.
func NewPredictClient(cfg *config.Config, logger *zap.Logger) *predict.Client {
	client := predict.NewClientWithConfig(&predict.ClientConfig{
		BaseURL:           cfg.API.BaseURL,
		PredictPath:       cfg.API.PredictPath,
		PricePath:         cfg.API.PricePath,
		Timeout:           time.Duration(cfg.API.TimeoutSecs) * time.Second,
		RequestsPerMinute: cfg.API.MaxRequestsPerMinute,
	})
	if logger != nil {
		client.SetLogger(logger)
	}
	return client
}
