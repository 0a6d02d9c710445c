// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the one-shot commands of
// stockpulse.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//   - Env: Config, logger and output streams handed to every handler
//   - JSONResponse: The --json envelope
//
// # Usage
//
//	cmd, args := cli.Parse()
//	cfg, path, err := cli.LoadConfig(args)
//	...
//	env := cli.NewEnv(cfg, logger, path)
//	switch cmd {
//	case cli.CmdPredict:
//	    err = cli.HandlePredict(ctx, args, env)
//	// ... other commands
//	}
//	os.Exit(cli.GetExitCode(err))
//
// # Commands Overview
//
//   - tui: Interactive screen (default)
//   - predict: One prediction, printed as the results card
//   - price: Latest quote
//   - watch: Scheduled predictions for a watchlist
//   - config: Configuration management
//   - version, help
//
// All commands support --json.
package cli
