package ingest

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const dayLayout = "2006-01-02"

var (
	isoDayPrefix = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	isoDayOnly   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// DayUTC floors t to midnight UTC of its UTC calendar day.
func DayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate turns an export date cell into a UTC-midnight calendar day.
// Accepted forms are "YYYY-MM-DD HH:MM:SS", "YYYY-MM-DD" and anything
// dateparse understands. Time of day is discarded; ok is false when the
// cell holds no usable date.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if strings.Contains(s, " ") && isoDayPrefix.MatchString(s) {
		day, _, _ := strings.Cut(s, " ")
		return parseDay(day)
	}
	if isoDayOnly.MatchString(s) {
		return parseDay(s)
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	// keep the calendar day as written, whatever offset the string carried
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
}

func parseDay(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(dayLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseNumber coerces a loosely typed cell to a float. Empty, nil and
// unparseable values become 0; "1,234" and "12.5%" are accepted.
func ParseNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case int32:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return finite(f)
	case string:
		return parseNumberString(n)
	case *string:
		if n == nil {
			return 0
		}
		return parseNumberString(*n)
	}
	return 0
}

func parseNumberString(s string) float64 {
	s = strings.NewReplacer(",", "", "%", "").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseCount is ParseNumber rounded to the nearest integer, saturating at
// the int range.
func ParseCount(v any) int {
	f := math.Round(ParseNumber(v))
	switch {
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	}
	return int(f)
}
