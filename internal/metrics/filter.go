package metrics

import (
	"time"

	"github.com/AngelCh415/socialreport/internal/ingest"
)

// Dated is any record carrying a calendar day.
type Dated interface {
	RecordDate() time.Time
}

// FilterByPeriod keeps records whose day lies in [start, end]. All three are
// compared at UTC-midnight granularity. The result is a new slice.
func FilterByPeriod[T Dated](records []T, start, end time.Time) []T {
	lo, hi := ingest.DayUTC(start), ingest.DayUTC(end)
	out := make([]T, 0, len(records))
	for _, r := range records {
		d := r.RecordDate()
		if d.IsZero() {
			continue
		}
		d = ingest.DayUTC(d)
		if !d.Before(lo) && !d.After(hi) {
			out = append(out, r)
		}
	}
	return out
}
