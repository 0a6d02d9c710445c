// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// predict.go - One-shot prediction command.
//
// Command: predict <TICKER> [TICKER...]
// Short:   Predict the next move and print the results card
// Aliases: p
//
// Examples:
//   stockpulse predict AAPL
//   stockpulse predict aapl msft --json
//
// The ticker goes through the same controller as the interactive screen, so
// normalization, validation and error messages are identical.

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/stockpulse/internal/controller"
	"github.com/jeranaias/stockpulse/internal/ui/components"
	"github.com/jeranaias/stockpulse/internal/ui/styles"
	"github.com/jeranaias/stockpulse/internal/view"
)

const maxCardWidth = 80

// HandlePredict handles the "predict" command.
func HandlePredict(ctx context.Context, args Args, env *Env) error {
	return runPredict(ctx, NewPredictClient(env.Config, env.Logger), args, env)
}

func runPredict(ctx context.Context, p controller.Predictor, args Args, env *Env) error {
	if len(args.Tickers) == 0 {
		return ErrMissingArgument("ticker", "stockpulse predict AAPL")
	}

	ctrl := controller.New(p, view.NewForm(), controller.WithLogger(env.Logger))
	defer ctrl.Close()

	card := components.NewResultsCard(styles.NewTheme())
	card.Width = min(GetTerminalWidth(), maxCardWidth)

	var collected []PredictData
	for _, raw := range args.Tickers {
		if err := ctrl.Run(ctx, raw); err != nil {
			return err
		}
		results := ctrl.Form().Results

		if args.JSON {
			collected = append(collected, NewPredictData(results))
			continue
		}
		fmt.Fprintln(env.Out, card.View(results))
	}

	if args.JSON {
		return NewJSONResponse("predict", collected).Print(env.Out)
	}
	return nil
}
