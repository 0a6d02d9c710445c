// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package view

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// FormatVolume renders n with a B, M or K suffix and two decimals. Values
// below a thousand are printed in their shortest plain form ("999", "12.5").
func FormatVolume(n float64) string {
	switch {
	case n >= 1e9:
		return toFixed(n/1e9, 2) + "B"
	case n >= 1e6:
		return toFixed(n/1e6, 2) + "M"
	case n >= 1e3:
		return toFixed(n/1e3, 2) + "K"
	}
	if n == 0 {
		return "0"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FormatQuote renders a price quote the way the price command prints it:
// "AAPL Price: $189.50 (-1.25 / -0.66%)". Both figures carry an explicit sign.
func FormatQuote(ticker string, price, change, percent float64) string {
	return fmt.Sprintf("%s Price: $%.2f (%+.2f / %+.2f%%)", ticker, price, change, percent)
}

// toFixed formats v with the given number of decimals. The exact binary
// value is rounded to nearest with ties going away from zero, so 100.125
// gives "100.13" where %.2f gives "100.12". Negative zero prints unsigned.
func toFixed(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', digits, 64)
	}

	r := new(big.Rat).SetFloat64(math.Abs(v))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))

	// floor(x + 1/2) as (2*num + den) / (2*den)
	num := new(big.Int).Lsh(r.Num(), 1)
	num.Add(num, r.Denom())
	den := new(big.Int).Lsh(r.Denom(), 1)
	s := num.Quo(num, den).String()

	if digits > 0 {
		if len(s) <= digits {
			s = strings.Repeat("0", digits-len(s)+1) + s
		}
		s = s[:len(s)-digits] + "." + s[len(s)-digits:]
	}
	if v < 0 {
		s = "-" + s
	}
	return s
}
