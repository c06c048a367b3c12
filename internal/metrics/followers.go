package metrics

import (
	"slices"
	"time"

	"github.com/AngelCh415/socialreport/internal/models"
)

// FollowerGrowth returns the absolute and percent change from start to end.
// Percent change is 0 when start is 0.
func FollowerGrowth(start, end int) models.Growth {
	change := end - start
	g := models.Growth{Change: change}
	if start > 0 {
		g.PercentChange = float64(change) / float64(start) * 100
	}
	return g
}

// Followers scans account metrics inside [start, end] in date order. For each
// platform the start value is the first nonzero count and the end value the
// last nonzero count, which rides over days a platform reported 0 while its
// sync lagged.
func Followers(days []models.AccountMetricDay, start, end time.Time) models.FollowerMetrics {
	in := FilterByPeriod(days, start, end)
	slices.SortStableFunc(in, func(a, b models.AccountMetricDay) int { return a.Date.Compare(b.Date) })

	return models.FollowerMetrics{
		X:         followerMetric(in, func(d models.AccountMetricDay) int { return d.XFollowers }),
		Instagram: followerMetric(in, func(d models.AccountMetricDay) int { return d.IGFollowers }),
		Facebook:  followerMetric(in, func(d models.AccountMetricDay) int { return d.FBFollowers }),
		Threads:   followerMetric(in, func(d models.AccountMetricDay) int { return d.ThreadsFollowers }),
	}
}

func followerMetric(days []models.AccountMetricDay, count func(models.AccountMetricDay) int) models.FollowerMetric {
	var first, last int
	for _, d := range days {
		if v := count(d); v > 0 {
			first = v
			break
		}
	}
	for i := len(days) - 1; i >= 0; i-- {
		if v := count(days[i]); v > 0 {
			last = v
			break
		}
	}
	return models.FollowerMetric{Start: first, End: last, Growth: FollowerGrowth(first, last)}
}
