package render

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Number rounds n and groups thousands, e.g. 1234.6 -> "1,235".
func Number[N int | int64 | float64](n N) string {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	return printer.Sprintf("%d", int64(math.Round(f)))
}

// Signed is Number with an explicit "+" for non-negative values.
func Signed(n int) string {
	if n >= 0 {
		return "+" + Number(n)
	}
	return Number(n)
}

// Percent formats with one decimal, e.g. 12.345 -> "12.3%".
func Percent(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", f)
}

// SignedPercent is Percent with an explicit "+" when change is non-negative.
func SignedPercent(change int, pct float64) string {
	if change >= 0 {
		return "+" + Percent(pct)
	}
	return Percent(pct)
}

// Date formats a calendar day as "Jan 2, 2006"; the zero time renders "N/A".
func Date(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format("Jan 2, 2006")
}

// Truncate shortens s to max runes, ending in "..." when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
