// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// price.go - Latest quote command.
//
// Command: price <TICKER> [TICKER...]
// Short:   Show the latest price and change
// Aliases: quote
//
// Examples:
//   stockpulse price AAPL
//   stockpulse price tsla --json

package cli

import (
	"context"
	"fmt"

	"github.com/jeranaias/stockpulse/internal/controller"
	"github.com/jeranaias/stockpulse/internal/predict"
	"github.com/jeranaias/stockpulse/internal/util"
	"github.com/jeranaias/stockpulse/internal/view"
)

// Quoter fetches a quote. *predict.Client satisfies it.
type Quoter interface {
	Price(ctx context.Context, ticker string) (*predict.PriceQuote, error)
}

// HandlePrice handles the "price" command.
func HandlePrice(ctx context.Context, args Args, env *Env) error {
	return runPrice(ctx, NewPredictClient(env.Config, env.Logger), args, env)
}

func runPrice(ctx context.Context, q Quoter, args Args, env *Env) error {
	if len(args.Tickers) == 0 {
		return ErrMissingArgument("ticker", "stockpulse price AAPL")
	}

	var collected []PriceData
	for _, raw := range args.Tickers {
		ticker := util.NormalizeSymbol(raw)
		if ticker == "" {
			return controller.ErrEmptyTicker
		}

		quote, err := q.Price(ctx, ticker)
		if err != nil {
			return err
		}
		// The service may echo a different spelling; show what was asked.
		line := view.FormatQuote(ticker, quote.Price, quote.Change, quote.PercentChange)

		if args.JSON {
			collected = append(collected, PriceData{
				Ticker:        ticker,
				Price:         quote.Price,
				Change:        quote.Change,
				PercentChange: quote.PercentChange,
				Display:       line,
			})
			continue
		}
		fmt.Fprintln(env.Out, RenderTone(view.ChangeTone(quote.Change), line))
	}

	if args.JSON {
		return NewJSONResponse("price", collected).Print(env.Out)
	}
	return nil
}
