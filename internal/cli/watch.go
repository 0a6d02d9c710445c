// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// watch.go - Scheduled watchlist command.
//
// Command: watch [TICKER...] [--schedule SPEC] [--once]
// Short:   Re-predict a watchlist on a cron schedule
// Aliases: w
//
// Tickers default to watch.tickers and the schedule to watch.schedule.
// Schedules take a leading seconds field or a descriptor.
//
// Examples:
//   stockpulse watch
//   stockpulse watch AAPL NVDA --schedule "*/30 * * * * *"
//   stockpulse watch --schedule "@every 2m" --json
//   stockpulse watch TSLA --once

package cli

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jeranaias/stockpulse/internal/controller"
	"github.com/jeranaias/stockpulse/internal/ui/styles"
	"github.com/jeranaias/stockpulse/internal/watch"
)

// HandleWatch handles the "watch" command. It runs until ctx is canceled.
func HandleWatch(ctx context.Context, args Args, env *Env) error {
	return runWatch(ctx, NewPredictClient(env.Config, env.Logger), args, env)
}

func runWatch(ctx context.Context, p controller.Predictor, args Args, env *Env) error {
	if args.EmptyFlag != "" {
		return ErrMissingArgument("--"+args.EmptyFlag+" value", `stockpulse watch --schedule "@every 1m"`)
	}
	tickers := args.Tickers
	if len(tickers) == 0 {
		tickers = env.Config.Watch.Tickers
	}
	schedule := args.Schedule
	if schedule == "" {
		schedule = env.Config.Watch.Schedule
	}

	job := watch.NewJob(p, tickers, env.Out,
		watch.WithJSON(args.JSON),
		watch.WithFormatter(ColoredLine),
		watch.WithLogger(env.Logger),
	)
	if len(job.Tickers()) == 0 {
		return ErrMissingArgument("ticker", "stockpulse watch AAPL MSFT")
	}

	if args.Once {
		return roundError(job.RunOnce(ctx))
	}

	sched, err := watch.NewScheduler(ctx, job, schedule, env.Logger)
	if err != nil {
		return &ValidationError{
			Field:   "schedule",
			Value:   schedule,
			Reason:  err.Error(),
			Example: `"0 */5 * * * *" or "@every 5m"`,
		}
	}

	if !args.JSON {
		fmt.Fprintf(env.Err, "%s %s every %q (ctrl+c to stop)\n",
			TitleStyle.Render("Watching"), strings.Join(job.Tickers(), ", "), schedule)
	}
	sched.RunNow()
	sched.Start()
	env.Logger.Info("watch started",
		zap.Strings("tickers", job.Tickers()),
		zap.String("schedule", schedule),
	)
	sched.Wait(ctx)
	return nil
}

// roundError reports failed tickers of a single round. An interrupted round
// reports the cancellation itself.
func roundError(results []watch.Result) error {
	for _, r := range results {
		if r.Interrupted {
			return r.Err
		}
	}

	var failed []string
	var first error
	for _, r := range results {
		if r.OK() {
			continue
		}
		failed = append(failed, r.Ticker)
		if first == nil {
			first = r.Err
		}
	}
	if first == nil {
		return nil
	}
	return NewCommandError("watch", "round",
		fmt.Sprintf("%d of %d tickers failed (%s)", len(failed), len(results), strings.Join(failed, ", ")),
		first)
}

// ColoredLine is watch.FormatLine with the prediction and errors colored.
func ColoredLine(r watch.Result) string {
	ts := DimStyle.Render(r.Time.Format("15:04:05"))
	ticker := fmt.Sprintf("%-6s", r.Ticker)
	if !r.OK() {
		return fmt.Sprintf("%s  %s  %s", ts, ticker, styles.RenderError(r.Error))
	}
	return fmt.Sprintf("%s  %s  %s  conf %-6s  %s", ts, ticker,
		RenderTone(r.Tone, fmt.Sprintf("%-4s", r.Prediction)), r.Confidence, r.Price)
}
