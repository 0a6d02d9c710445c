// stockpulse - stock predictions in the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/stockpulse/internal/cli"
	"github.com/jeranaias/stockpulse/internal/config"
	"github.com/jeranaias/stockpulse/internal/controller"
	"github.com/jeranaias/stockpulse/internal/ui/forecast"
	"github.com/jeranaias/stockpulse/internal/view"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run())
}

// run dispatches the command and returns the exit code.
func run() int {
	cmd, args := cli.Parse()

	// Commands that need neither config nor network.
	switch cmd {
	case cli.CmdHelp:
		cli.HandleHelp(os.Stdout)
		return cli.ExitSuccess
	case cli.CmdVersion:
		return report(cmd, args, cli.HandleVersion(args, os.Stdout))
	case cli.CmdUnknown:
		err := cli.HandleUnknown(args)
		if !args.JSON {
			defer cli.PrintUsage(os.Stderr)
		}
		return report(cmd, args, err)
	}

	cfg, path, err := cli.LoadConfig(args)
	if err != nil {
		return report(cmd, args, err)
	}
	config.SetGlobal(cfg)

	logger, closeLog, err := cli.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: log file disabled: %v\n", err)
		logger, closeLog = cli.FallbackLogger(cmd), func() {}
	}
	defer closeLog()
	logger.Debug("starting", zap.String("command", cmd.String()), zap.String("config", path))

	env := cli.NewEnv(cfg, logger, path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd {
	case cli.CmdPredict:
		err = cli.HandlePredict(ctx, args, env)
	case cli.CmdPrice:
		err = cli.HandlePrice(ctx, args, env)
	case cli.CmdWatch:
		err = cli.HandleWatch(ctx, args, env)
	case cli.CmdConfig:
		err = cli.HandleConfig(args, env)
	default:
		err = runTUI(ctx, env)
	}

	if err != nil {
		logger.Warn("command failed", zap.String("command", cmd.String()), zap.Error(err))
	}
	return report(cmd, args, err)
}

// report prints err for the user and maps it to an exit code.
func report(cmd cli.Command, args cli.Args, err error) int {
	if err == nil {
		return cli.ExitSuccess
	}
	if args.JSON {
		cli.DisplayError(os.Stdout, cmd.String(), err, true)
	} else {
		cli.DisplayError(os.Stderr, cmd.String(), err, false)
	}
	return cli.GetExitCode(err)
}

// runTUI starts the interactive screen and keeps its chips in sync with the
// config file.
func runTUI(ctx context.Context, env *cli.Env) error {
	if err := cli.RequiresTTY("start the interactive screen"); err != nil {
		return err
	}

	cfg := env.Config
	logger := env.Logger

	client := cli.NewPredictClient(cfg, logger)
	ctrl := controller.New(client, view.NewForm(),
		controller.WithLogger(logger),
		controller.WithContext(ctx),
	)
	defer ctrl.Close()

	m := forecast.New(ctrl, forecast.Options{
		Chips:     cfg.UI.Chips,
		APIURL:    client.BaseURL(),
		Logger:    logger,
		Spinner:   cfg.UI.Spinner,
		HideTimer: !cfg.UI.ShowTimer,
	})

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if env.ConfigPath != "" {
		w, err := config.NewWatcher(env.ConfigPath,
			func(next *config.Config) {
				live := cli.ReloadedConfig(cfg, next)
				config.SetGlobal(live)
				p.Send(forecast.ChipsChangedMsg{Chips: live.UI.Chips})
				logger.Info("config reloaded", zap.Strings("chips", live.UI.Chips))
			},
			func(err error) {
				logger.Warn("config reload failed", zap.Error(err))
			},
		)
		if err != nil {
			logger.Warn("config watcher disabled", zap.Error(err))
		} else {
			w.Start()
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("error running stockpulse: %w", err)
	}
	return nil
}
