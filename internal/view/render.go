// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/jeranaias/stockpulse/internal/predict"
)

// Tone is a semantic color token resolved by the styles package.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
)

// Gradient names the fill used by the RSI bar.
type Gradient string

const (
	GradientNeutral    Gradient = "neutral"
	GradientOversold   Gradient = "oversold"
	GradientOverbought Gradient = "overbought"
)

// RSI zone limits. Values equal to a limit are neutral.
const (
	RSIOversold   = 30.0
	RSIOverbought = 70.0
)

// Volume bar heights are drawn from [VolumeBarMin, VolumeBarMax).
const (
	VolumeBarMin = 40.0
	VolumeBarMax = 100.0
)

// Bar is a horizontal bar; Width is a percentage.
type Bar struct {
	Width    float64
	Gradient Gradient
}

// VolumeBar is the vertical volume bar; Height is a percentage.
// Decorative is set because the height does not encode the volume.
type VolumeBar struct {
	Height     float64
	Decorative bool
}

// Results are the named output elements of the results card.
type Results struct {
	Ticker string

	PriceLine  string
	PriceColor Tone

	BadgeText  string
	BadgeClass string

	PredictionValue string
	Confidence      string
	Precision       string
	Change          string
	ChangeColor     Tone

	SMA10    string
	SMA10Bar Bar
	SMA50    string
	SMA50Bar Bar

	RSI    string
	RSIBar Bar

	Volume    string
	VolumeBar VolumeBar
}

// Rand is the random source for the decorative volume bar.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Render computes the results card for data.
func Render(data *predict.PredictionResponse, rnd Rand) Results {
	sign, tone := changeSign(data.PriceChange)

	return Results{
		Ticker:     data.Ticker,
		PriceLine:  PriceLine(data.CurrentPrice, data.PriceChange, data.PercentChange),
		PriceColor: tone,

		BadgeText:  data.Prediction,
		BadgeClass: strings.ToLower(data.Prediction),

		PredictionValue: data.Prediction,
		Confidence:      Percent(data.Confidence),
		Precision:       Percent(data.Precision),
		Change:          sign + toFixed(data.PercentChange, 2) + "%",
		ChangeColor:     tone,

		SMA10:    Currency(data.Indicators.SMA10),
		SMA10Bar: Bar{Width: PriceBarWidth(data.Indicators.SMA10, data.CurrentPrice), Gradient: GradientNeutral},
		SMA50:    Currency(data.Indicators.SMA50),
		SMA50Bar: Bar{Width: PriceBarWidth(data.Indicators.SMA50, data.CurrentPrice), Gradient: GradientNeutral},

		RSI:    toFixed(data.Indicators.RSI, 2),
		RSIBar: Bar{Width: data.Indicators.RSI, Gradient: RSIGradient(data.Indicators.RSI)},

		Volume:    FormatVolume(data.Indicators.Volume),
		VolumeBar: VolumeBar{Height: VolumeBarHeight(rnd), Decorative: true},
	}
}

// PriceLine formats "$<price> (<sign><change> / <sign><percent>%)". The sign
// follows change for both figures; negatives keep their own minus.
func PriceLine(price, change, percent float64) string {
	sign, _ := changeSign(change)
	return fmt.Sprintf("$%s (%s%s / %s%s%%)", toFixed(price, 2), sign, toFixed(change, 2), sign, toFixed(percent, 2))
}

// ChangeTone returns ToneSuccess for change >= 0, else ToneDanger.
func ChangeTone(change float64) Tone {
	_, tone := changeSign(change)
	return tone
}

func changeSign(change float64) (string, Tone) {
	if change >= 0 {
		return "+", ToneSuccess
	}
	return "", ToneDanger
}

// Percent formats a 0-1 fraction as a percentage with one decimal.
func Percent(fraction float64) string {
	return toFixed(fraction*100, 1) + "%"
}

// Currency formats v as dollars with two decimals.
func Currency(v float64) string {
	return "$" + toFixed(v, 2)
}

// PriceBarWidth is value as a percentage of price, capped at 100.
func PriceBarWidth(value, price float64) float64 {
	return math.Min(value/price*100, 100)
}

// RSIGradient picks the RSI bar fill. The zone limits are exclusive.
func RSIGradient(rsi float64) Gradient {
	switch {
	case rsi < RSIOversold:
		return GradientOversold
	case rsi > RSIOverbought:
		return GradientOverbought
	default:
		return GradientNeutral
	}
}

// VolumeBarHeight draws a decorative height in [VolumeBarMin, VolumeBarMax).
func VolumeBarHeight(rnd Rand) float64 {
	return rnd.Float64()*(VolumeBarMax-VolumeBarMin) + VolumeBarMin
}
