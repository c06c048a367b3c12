package metrics

import (
	"time"

	"github.com/AngelCh415/socialreport/internal/ingest"
	"github.com/AngelCh415/socialreport/internal/models"
)

// MonthlyBreakdown walks calendar months from the month of start through the
// month of end. Each entry covers its whole month, 1st through last day, even
// where the window starts or ends mid-month.
func MonthlyBreakdown(ds models.Dataset, start, end time.Time) []models.MonthBreakdown {
	start, end = ingest.DayUTC(start), ingest.DayUTC(end)
	months := []models.MonthBreakdown{}

	for cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC); !cur.After(end); cur = cur.AddDate(0, 1, 0) {
		from, to := cur, cur.AddDate(0, 1, -1)

		tw := TwitterStats(FilterByPeriod(ds.TwitterPosts, from, to))
		ig := InstagramStats(FilterByPeriod(ds.InstagramPosts, from, to))
		fb := FacebookStats(FilterByPeriod(ds.FacebookPosts, from, to))
		fol := Followers(ds.AccountMetrics, from, to)

		months = append(months, models.MonthBreakdown{
			Month:     cur.Format("Jan 2006"),
			MonthDate: cur,
			Twitter: models.MonthTwitter{
				Posts:       tw.PostsCount,
				Impressions: tw.TotalImpressions,
				Engagements: tw.TotalEngagements,
				Followers:   fol.X.End,
			},
			Instagram: models.MonthInstagram{
				Posts:       ig.PostsCount,
				Views:       ig.TotalViews,
				Engagements: ig.TotalEngagement,
				Followers:   fol.Instagram.End,
			},
			Facebook: models.MonthFacebook{
				Posts:       fb.PostsCount,
				Engagements: fb.TotalEngagement,
				Followers:   fol.Facebook.End,
			},
			// Instagram reports views rather than impressions, so views stand in
			Total: models.MonthTotal{
				Posts:       tw.PostsCount + ig.PostsCount + fb.PostsCount,
				Impressions: tw.TotalImpressions + ig.TotalViews,
				Engagements: tw.TotalEngagements + ig.TotalEngagement + fb.TotalEngagement,
			},
		})
	}
	return months
}
