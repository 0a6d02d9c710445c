// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// isTrimSpace reports whether r is stripped from the ends of ticker input.
// The set is Unicode White_Space plus the byte order mark, without NEL.
func isTrimSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

// NormalizeSymbol turns raw ticker input into the form sent to the API:
// surrounding whitespace removed, then uppercased with full case mapping.
// Characters are otherwise sent as typed.
func NormalizeSymbol(raw string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Upper(language.Und).String(strings.TrimFunc(raw, isTrimSpace))
}

// SplitList splits a comma separated list, normalizing every entry as a
// symbol and dropping empty ones. Order is kept, duplicates are removed.
// Entries are NFKC-folded first, so a fullwidth "ａａｐｌ" in a config file
// becomes "AAPL".
func SplitList(s string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(norm.NFKC.String(s), ",") {
		sym := NormalizeSymbol(part)
		if sym == "" || seen[sym] {
			continue
		}
		seen[sym] = true
		out = append(out, sym)
	}
	return out
}

// TruncateRunes truncates s to maxRunes characters, appending "..." when it
// cuts.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}
