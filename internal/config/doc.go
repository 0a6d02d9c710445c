// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for stockpulse.
//
// Supports TOML, YAML and JSON configuration files, with defaults,
// .env and environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: Where the prediction service lives and how long to wait
//   - UIConfig: Quick-select chips and spinner of the interactive screen
//   - WatchConfig: Watchlist and cron schedule of the watch command
//   - Watcher: Reloads the config file when it changes
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (STOCKPULSE_*), including a .env file
//   - ~/.stockpulse/config.toml
//   - ~/.stockpulse/config.yaml
//   - ~/.stockpulse/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.API.BaseURL)
package config
