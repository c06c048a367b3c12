package metrics

import (
	"time"

	"github.com/AngelCh415/socialreport/internal/models"
)

// Aggregate sums the per-platform daily post and impression columns of the
// account metrics export over [start, end]. The cumulative TotalPosts and
// TotalImpressions columns are running totals and are never read here.
func Aggregate(days []models.AccountMetricDay, start, end time.Time) models.AggregateMetrics {
	var a models.AggregateMetrics
	if len(days) == 0 {
		return a
	}
	a.Available = true
	for _, d := range FilterByPeriod(days, start, end) {
		a.XPosts += d.XPosts
		a.IGPosts += d.IGPosts
		a.FBPosts += d.FBPosts
		a.ThreadsPosts += d.ThreadsPosts
		a.XImpressions += d.XImpressions
		a.IGImpressions += d.IGImpressions
		a.FBImpressions += d.FBImpressions
		a.ThreadsImpressions += d.ThreadsImpressions
	}
	a.TotalPosts = a.XPosts + a.IGPosts + a.FBPosts + a.ThreadsPosts
	a.TotalImpressions = a.XImpressions + a.IGImpressions + a.FBImpressions + a.ThreadsImpressions
	return a
}
