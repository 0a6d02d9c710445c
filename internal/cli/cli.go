// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and the small command handlers for stockpulse.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdPredict
	CmdPrice
	CmdWatch
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

// String returns the command name used in JSON output and logs.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdPredict:
		return "predict"
	case CmdPrice:
		return "price"
	case CmdWatch:
		return "watch"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Verbose    bool
	JSON       bool   // Output in JSON format
	APIURL     string // --api, overrides api.base_url
	ConfigPath string // --config, load this file instead of ~/.stockpulse

	// Command-specific
	Tickers    []string
	Schedule   string // watch --schedule
	Once       bool   // watch --once
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// EmptyFlag names a value flag given without a value.
	EmptyFlag string

	// Unknown is the unrecognized command word, if any.
	Unknown string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `stockpulse - stock predictions in your terminal

Usage:
  stockpulse                        Start the interactive screen (default)
  stockpulse tui                    Same as above
  stockpulse predict <TICKER>       Predict the next move for one ticker
  stockpulse price <TICKER>         Show the latest quote
  stockpulse watch [TICKER...]      Re-predict a watchlist on a schedule
      --schedule SPEC               Cron spec with seconds (default from config)
      --once                        Run one round and exit
  stockpulse config [show|path|keys|get KEY|set KEY VALUE|reset]
  stockpulse version                Show version information
  stockpulse help                   Show this help

Global flags:
  --api URL        Prediction API base URL (default http://127.0.0.1:5001)
  --config PATH    Config file (.toml, .yaml or .json)
  -v, --verbose    Debug logging
  --json           Machine-readable output

Examples:
  stockpulse predict AAPL
  stockpulse price tsla --json
  stockpulse watch AAPL MSFT --schedule "0 */1 * * * *"
  stockpulse config set ui.chips AAPL,NVDA,AMD

Version: %s
`

// PrintUsage writes the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "stockpulse version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name) and returns the command
// and its args.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "predict", "p":
		parsedArgs.Tickers = NewArgParser(remaining).PositionalFrom(0)
		return CmdPredict, parsedArgs

	case "price", "quote":
		parsedArgs.Tickers = NewArgParser(remaining).PositionalFrom(0)
		return CmdPrice, parsedArgs

	case "watch", "w":
		parseWatchArgs(&parsedArgs, remaining)
		return CmdWatch, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		parsedArgs.Unknown = cmd
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
// Global flags may appear anywhere on the command line.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--api":
			if i+1 < len(args) {
				i++
				parsedArgs.APIURL = args[i]
			}
		case "--config":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigPath = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--api="):
				parsedArgs.APIURL = strings.TrimPrefix(arg, "--api=")
			case strings.HasPrefix(arg, "--config="):
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			default:
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs
}

// parseWatchArgs parses watch command specific arguments.
func parseWatchArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining, "once")
	args.Tickers = p.PositionalFrom(0)
	args.Schedule = p.Flag("schedule")
	args.Once = p.BoolFlag("once")
	if args.Schedule == "" && p.HasFlag("schedule") {
		args.EmptyFlag = "schedule"
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Subcommand = strings.ToLower(p.Positional(0))
	args.ConfigKey = p.Positional(1)
	if p.PositionalCount() > 2 {
		args.ConfigVal = strings.Join(p.PositionalFrom(2), " ")
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// NOTE: HandlePredict is implemented in predict.go
// NOTE: HandlePrice is implemented in price.go
// NOTE: HandleWatch is implemented in watch.go
// NOTE: HandleConfig is implemented in config.go

// HandleVersion handles the "version" command with JSON output support.
func HandleVersion(args Args, w io.Writer) error {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
			Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		}
		return NewJSONResponse("version", data).Print(w)
	}
	PrintVersion(w)
	return nil
}

// HandleHelp handles the "help" command.
func HandleHelp(w io.Writer) {
	PrintUsage(w)
}

// HandleUnknown reports an unrecognized command.
func HandleUnknown(args Args) error {
	return &ValidationError{
		Field:   "command",
		Value:   args.Unknown,
		Reason:  "unknown command",
		Example: "stockpulse help",
	}
}
