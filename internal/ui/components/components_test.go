// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/stockpulse/internal/predict"
	"github.com/jeranaias/stockpulse/internal/ui/styles"
	"github.com/jeranaias/stockpulse/internal/view"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func sampleResults() *view.Results {
	r := view.Render(&predict.PredictionResponse{
		Ticker:        "ABC",
		CurrentPrice:  100,
		PriceChange:   5,
		PercentChange: 5,
		Prediction:    "UP",
		Confidence:    0.8,
		Precision:     0.7,
		Indicators:    predict.Indicators{SMA10: 95, SMA50: 90, RSI: 25, Volume: 1500000},
	}, fixedRand(0.5))
	return &r
}

// =============================================================================
// CHIP BAR TESTS
// =============================================================================

func TestChipBar_Navigation(t *testing.T) {
	c := NewChipBar(styles.NewTheme(), []string{"AAPL", "MSFT", "TSLA"})

	if c.HasFocus() {
		t.Fatal("new chip bar should not have focus")
	}
	if _, ok := c.Focused(); ok {
		t.Fatal("Focused() should be empty")
	}

	if !c.Next() {
		t.Fatal("Next() from input should focus the first chip")
	}
	if got, _ := c.Focused(); got != "AAPL" {
		t.Errorf("Focused() = %q, want AAPL", got)
	}

	c.Next()
	c.Next()
	if got, _ := c.Focused(); got != "TSLA" {
		t.Errorf("Focused() = %q, want TSLA", got)
	}
	if c.Next() {
		t.Error("Next() past the last chip should return focus to input")
	}
	if c.HasFocus() {
		t.Error("focus should be back on the input")
	}

	if !c.Prev() {
		t.Fatal("Prev() from input should wrap to the last chip")
	}
	if got, _ := c.Focused(); got != "TSLA" {
		t.Errorf("Focused() = %q, want TSLA", got)
	}
	c.Blur()
	if c.HasFocus() {
		t.Error("Blur() should drop focus")
	}
}

func TestChipBar_At(t *testing.T) {
	c := NewChipBar(styles.NewTheme(), []string{"AAPL", "MSFT"})

	tests := []struct {
		n    int
		want string
		ok   bool
	}{
		{0, "", false},
		{1, "AAPL", true},
		{2, "MSFT", true},
		{3, "", false},
	}
	for _, tc := range tests {
		got, ok := c.At(tc.n)
		if got != tc.want || ok != tc.ok {
			t.Errorf("At(%d) = %q, %v; want %q, %v", tc.n, got, ok, tc.want, tc.ok)
		}
	}
}

func TestChipBar_View(t *testing.T) {
	c := NewChipBar(styles.NewTheme(), []string{"AAPL", "MSFT"})
	out := c.View()
	for _, want := range []string{"1 AAPL", "2 MSFT"} {
		if !strings.Contains(out, want) {
			t.Errorf("View() missing %q:\n%s", want, out)
		}
	}

	c.Next()
	if got := c.Plain(); got != "[1:AAPL] 2:MSFT" {
		t.Errorf("Plain() = %q, want %q", got, "[1:AAPL] 2:MSFT")
	}

	empty := NewChipBar(styles.NewTheme(), nil)
	if empty.Plain() != "" {
		t.Error("empty chip bar should render no plain text")
	}
	if empty.View() != "" {
		t.Error("empty chip bar should render nothing")
	}
	if empty.Next() || empty.Prev() {
		t.Error("empty chip bar cannot take focus")
	}
}

// =============================================================================
// INPUT TESTS
// =============================================================================

func TestTickerInput(t *testing.T) {
	in := NewTickerInput(styles.NewTheme())
	in.SetValue("aapl")
	if in.Value() != "aapl" {
		t.Errorf("Value() = %q, want aapl", in.Value())
	}

	if out := in.View(true); !strings.Contains(out, "Predict") {
		t.Errorf("enabled View() should show Predict:\n%s", out)
	}
	if out := in.View(false); !strings.Contains(out, "Analyzing") {
		t.Errorf("disabled View() should show Analyzing:\n%s", out)
	}
}

// =============================================================================
// INDICATOR TESTS
// =============================================================================

func TestBarFraction(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-5, 0},
		{0, 0},
		{25, 0.25},
		{95, 0.95},
		{100, 1},
		{150, 1},
	}
	for _, tc := range tests {
		if got := BarFraction(tc.in); got != tc.want {
			t.Errorf("BarFraction(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIndicatorBar_Width(t *testing.T) {
	out := IndicatorBar(view.Bar{Width: 50, Gradient: view.GradientNeutral}, 20)
	plain := stripANSI(out)
	if len(plain) != 20 {
		t.Errorf("bar length = %d, want 20: %q", len(plain), plain)
	}
	if got := strings.Count(plain, "#"); got != 10 {
		t.Errorf("filled cells = %d, want 10: %q", got, plain)
	}
	if IndicatorBar(view.Bar{Width: 50}, 0) != "" {
		t.Error("zero width bar should render nothing")
	}
}

func TestFilledRows(t *testing.T) {
	tests := []struct {
		height float64
		rows   int
		want   int
	}{
		{40, 4, 2},
		{99.9, 4, 4},
		{70, 4, 3},
		{1, 4, 1},
		{0, 4, 0},
	}
	for _, tc := range tests {
		if got := FilledRows(tc.height, tc.rows); got != tc.want {
			t.Errorf("FilledRows(%v, %d) = %d, want %d", tc.height, tc.rows, got, tc.want)
		}
	}
}

func TestVolumeColumn(t *testing.T) {
	out := stripANSI(VolumeColumn(view.VolumeBar{Height: 50, Decorative: true}, 4))
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("rows = %d, want 4", len(lines))
	}
	if lines[0] != ".." || lines[3] != "##" {
		t.Errorf("column = %q, want empty top and filled bottom", lines)
	}
}

// =============================================================================
// REGION TESTS
// =============================================================================

func TestResultsCard_View(t *testing.T) {
	card := NewResultsCard(styles.NewTheme())
	out := stripANSI(card.View(sampleResults()))

	for _, want := range []string{
		"ABC", "UP", "$100.00 (+5.00 / +5.00%)",
		"80.0%", "70.0%", "+5.00%",
		"$95.00", "$90.00", "25.00", "oversold", "1.50M",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("results card missing %q:\n%s", want, out)
		}
	}

	if card.View(nil) != "" {
		t.Error("nil results should render nothing")
	}
}

func TestResultsCard_Narrow(t *testing.T) {
	card := NewResultsCard(styles.NewTheme())
	card.Width = 30
	out := stripANSI(card.View(sampleResults()))
	if !strings.Contains(out, "Confidence") || !strings.Contains(out, "Change") {
		t.Errorf("narrow card lost stats:\n%s", out)
	}
}

func TestErrorBox_View(t *testing.T) {
	box := NewErrorBox(styles.NewTheme())
	if box.View() != "" {
		t.Error("empty error box should render nothing")
	}

	box.Message = "Ticker not found"
	out := stripANSI(box.View())
	if !strings.Contains(out, "Ticker not found") {
		t.Errorf("error box missing message:\n%s", out)
	}
	if !strings.Contains(out, "[X] Error") {
		t.Errorf("error box missing title:\n%s", out)
	}

	box.Message = strings.Repeat("x", maxErrorRunes+50)
	out = stripANSI(box.View())
	if got := strings.Count(out, "x"); got != maxErrorRunes-3 {
		t.Errorf("long message shows %d runes, want %d", got, maxErrorRunes-3)
	}
	if got := strings.Count(out, "."); got != 3 {
		t.Errorf("long message has %d dots, want a 3-dot ellipsis", got)
	}
}

func TestSpinner_Lifecycle(t *testing.T) {
	s := NewSpinner(styles.NewTheme())
	if s.IsActive() || s.View() != "" {
		t.Fatal("new spinner should be inactive and empty")
	}

	s.SetMessage("Analyzing AAPL")
	if cmd := s.Start(); cmd == nil {
		t.Error("Start() should return a tick command")
	}
	if !strings.Contains(s.View(), "Analyzing AAPL...") {
		t.Errorf("View() = %q", s.View())
	}

	s.Stop()
	if s.View() != "" {
		t.Error("stopped spinner should render nothing")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{4 * time.Second, "4s"},
		{65 * time.Second, "1m 5s"},
	}
	for _, tc := range tests {
		if got := formatElapsed(tc.d); got != tc.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestStatusBar_View(t *testing.T) {
	sb := NewStatusBar(styles.NewTheme())
	sb.Width = 100
	sb.State = view.StateLoading
	sb.Shortcuts = []Shortcut{{"enter", "predict"}, {"^C", "quit"}}
	sb.LastLatency = 1234 * time.Millisecond

	out := stripANSI(sb.View())
	for _, want := range []string{"[LOADING]", "last 1.234s", "enter predict", "^C quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("status bar missing %q:\n%s", want, out)
		}
	}

	sb.Width = 20
	if out := stripANSI(sb.View()); strings.Contains(out, "predict") {
		t.Errorf("narrow status bar should drop shortcuts:\n%s", out)
	}
}

func TestHeader_View(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	h.APIURL = "http://127.0.0.1:5001"
	out := stripANSI(h.View())
	if !strings.Contains(out, "stockpulse") || !strings.Contains(out, "127.0.0.1:5001") {
		t.Errorf("header = \n%s", out)
	}
	if !strings.Contains(h.ViewCompact(), "stockpulse") {
		t.Error("compact header missing title")
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == 0x1b:
			inEsc = true
		case inEsc && (c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'):
			inEsc = false
		case !inEsc:
			b.WriteByte(c)
		}
	}
	return b.String()
}
