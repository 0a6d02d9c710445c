// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for stockpulse.
//
// Command: config [subcommand]
// Short:   View and modify configuration
//
// Subcommands:
//   show (default)      Display the effective configuration
//   path                Show the configuration file path
//   keys                List every settable key
//   get <key>           Print one value
//   set <key> <value>   Set a value and save the file
//   reset               Write the defaults to the file
//
// Examples:
//   stockpulse config
//   stockpulse config show --json
//   stockpulse config set api.base_url http://10.0.0.5:5001
//   stockpulse config set ui.chips AAPL,NVDA,AMD
//   stockpulse config set watch.schedule "@every 1m"
//
// Settings written by "set" and "reset" never include .env or STOCKPULSE_*
// overrides; those stay in the environment.

package cli

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/stockpulse/internal/config"
	"github.com/jeranaias/stockpulse/internal/ui/styles"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args, env *Env) error {
	switch args.Subcommand {
	case "", "show":
		return showConfig(args, env)
	case "path":
		return showConfigPath(args, env)
	case "keys":
		return listConfigKeys(args, env)
	case "get":
		return getConfigValue(args, env)
	case "set":
		return setConfigValue(args, env)
	case "reset":
		return resetConfig(args, env)
	default:
		return &ValidationError{
			Field:   "config subcommand",
			Value:   args.Subcommand,
			Reason:  "unknown subcommand",
			Example: "stockpulse config [show|path|keys|get|set|reset]",
		}
	}
}

// writablePath is the file that set and reset write to.
func writablePath(env *Env) (string, error) {
	if env.ConfigPath != "" {
		return env.ConfigPath, nil
	}
	if path := config.ActivePath(); path != "" {
		return path, nil
	}
	return config.ConfigPathTOML()
}

func showConfig(args Args, env *Env) error {
	if args.JSON {
		return NewJSONResponse("config", ConfigData{
			Path:   env.ConfigPath,
			Config: env.Config,
		}).Print(env.Out)
	}

	source := env.ConfigPath
	if source == "" {
		source = "(defaults)"
	}
	fmt.Fprintln(env.Out, TitleStyle.Render("stockpulse configuration"))
	fmt.Fprintf(env.Out, "%s%s\n", RenderLabel("file"), DimStyle.Render(source))
	fmt.Fprintln(env.Out, RenderSeparator())

	for _, key := range config.GetAllKeys() {
		val, err := env.Config.Get(key)
		if err != nil {
			continue
		}
		fmt.Fprintf(env.Out, "%s%s\n", RenderLabel(key), ValueStyle.Render(formatValue(val)))
	}
	return nil
}

func showConfigPath(args Args, env *Env) error {
	path, err := writablePath(env)
	if err != nil {
		return NewCommandError("config", "path", "cannot resolve config directory", err)
	}
	if args.JSON {
		return NewJSONResponse("config", ConfigData{Path: path}).Print(env.Out)
	}
	fmt.Fprintln(env.Out, path)
	return nil
}

func listConfigKeys(args Args, env *Env) error {
	keys := config.GetAllKeys()
	if args.JSON {
		return NewJSONResponse("config", ConfigData{Keys: keys}).Print(env.Out)
	}
	for _, key := range keys {
		fmt.Fprintln(env.Out, key)
	}
	return nil
}

func getConfigValue(args Args, env *Env) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", "stockpulse config get api.base_url")
	}
	val, err := env.Config.Get(args.ConfigKey)
	if err != nil {
		return &ValidationError{Field: "key", Value: args.ConfigKey, Reason: err.Error(), Example: "stockpulse config keys"}
	}
	if args.JSON {
		return NewJSONResponse("config", ConfigData{Key: args.ConfigKey, Value: val}).Print(env.Out)
	}
	fmt.Fprintln(env.Out, formatValue(val))
	return nil
}

func setConfigValue(args Args, env *Env) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return ErrMissingArgument("key and value", "stockpulse config set api.timeout_secs 10")
	}

	path, err := writablePath(env)
	if err != nil {
		return NewCommandError("config", "set", "cannot resolve config directory", err)
	}
	cfg, err := config.ReadFile(path)
	if err != nil {
		return NewCommandError("config", "set", "cannot read "+path, err)
	}

	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return &ValidationError{Field: "key", Value: args.ConfigKey, Reason: err.Error(), Example: "stockpulse config keys"}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.EnsureConfigDir(); err != nil {
		return NewCommandError("config", "set", "cannot create config directory", err)
	}
	if err := config.SaveToPath(cfg, path); err != nil {
		return NewCommandError("config", "set", "cannot save", err)
	}

	val, _ := cfg.Get(args.ConfigKey)
	env.Logger.Info("config value set", zap.String("key", args.ConfigKey), zap.String("path", path))

	if args.JSON {
		return NewJSONResponse("config", ConfigData{Path: path, Key: args.ConfigKey, Value: val}).Print(env.Out)
	}
	fmt.Fprintln(env.Out, styles.RenderSuccess(args.ConfigKey+" = "+formatValue(val)))
	return nil
}

func resetConfig(args Args, env *Env) error {
	path, err := writablePath(env)
	if err != nil {
		return NewCommandError("config", "reset", "cannot resolve config directory", err)
	}
	if err := config.EnsureConfigDir(); err != nil {
		return NewCommandError("config", "reset", "cannot create config directory", err)
	}
	if err := config.SaveToPath(config.Default(), path); err != nil {
		return NewCommandError("config", "reset", "cannot save", err)
	}
	env.Logger.Info("config reset", zap.String("path", path))

	if args.JSON {
		return NewJSONResponse("config", ConfigData{Path: path}).Print(env.Out)
	}
	fmt.Fprintln(env.Out, styles.RenderSuccess("defaults written to "+path))
	return nil
}

func formatValue(val interface{}) string {
	switch v := val.(type) {
	case []string:
		return strings.Join(v, ",")
	case string:
		if v == "" {
			return `""`
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}
