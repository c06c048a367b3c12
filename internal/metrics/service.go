package metrics

import (
	"errors"
	"log/slog"
	"time"

	"github.com/AngelCh415/socialreport/internal/insights"
	"github.com/AngelCh415/socialreport/internal/models"
	"github.com/AngelCh415/socialreport/internal/telemetry"
)

// Generate computes the report for [start, end] over ds. It is a pure
// function: ds is only read and the report shares no slices with it.
// Insights are left empty; see Service.Report.
func Generate(ds models.Dataset, start, end time.Time) models.Report {
	twPosts := FilterByPeriod(ds.TwitterPosts, start, end)
	igPosts := FilterByPeriod(ds.InstagramPosts, start, end)
	fbPosts := FilterByPeriod(ds.FacebookPosts, start, end)

	tw := TwitterStats(twPosts)
	ig := InstagramStats(igPosts)
	fb := FacebookStats(fbPosts)
	agg := Aggregate(ds.AccountMetrics, start, end)
	fol := Followers(ds.AccountMetrics, start, end)

	// dashboard-matching totals win when the account export provides them
	totalPosts := agg.TotalPosts
	if totalPosts == 0 {
		totalPosts = tw.PostsCount + ig.PostsCount + fb.PostsCount
	}
	totalImpressions := agg.TotalImpressions
	if totalImpressions == 0 {
		totalImpressions = tw.TotalImpressions + ig.TotalViews
	}

	return models.Report{
		PeriodStart: start,
		PeriodEnd:   end,
		ExecutiveSummary: models.ExecutiveSummary{
			TotalPosts:        totalPosts,
			TotalImpressions:  totalImpressions,
			TotalEngagements:  tw.TotalEngagements + ig.TotalEngagement + fb.TotalEngagement,
			AvgEngagementRate: tw.AvgEngagementRate,
			// Threads is tracked per platform but not part of the net figure
			NetFollowerGrowth: fol.X.Growth.Change + fol.Instagram.Growth.Change + fol.Facebook.Growth.Change,
		},
		Aggregate: agg,
		Followers: fol,
		Twitter:   tw,
		Instagram: ig,
		Facebook:  fb,

		TopTwitterPosts:   TopPosts(twPosts, byEngagements, TopLimit),
		TopInstagramPosts: TopPosts(igPosts, byLikes, TopLimit),
		TopFacebookPosts:  TopPosts(fbPosts, byReactions, TopLimit),
		ExportedTopPosts: models.TopPostExports{
			Twitter:   TopPosts(FilterByPeriod(ds.TwitterTopPosts, start, end), byEngagements, TopLimit),
			Instagram: TopPosts(FilterByPeriod(ds.InstagramTopPosts, start, end), byLikes, TopLimit),
			Facebook:  TopPosts(FilterByPeriod(ds.FacebookTopPosts, start, end), byReactions, TopLimit),
		},

		MonthlyBreakdown: MonthlyBreakdown(ds, start, end),
		Insights:         []string{},
	}
}

// Service resolves the window, generates the report and attaches insights.
type Service struct {
	log *slog.Logger
	tel *telemetry.Collectors
	now func() time.Time
}

func NewService(log *slog.Logger, tel *telemetry.Collectors) *Service {
	return &Service{log: log, tel: tel, now: time.Now}
}

// Report builds the report for a window of the given months ending on the
// last data day. The lower bound is the coverage-adjusted start, never a day
// before data exists.
func (s *Service) Report(ds models.Dataset, months int) (models.Report, error) {
	began := s.now()

	p, err := Resolve(ds, months)
	if err == nil && !ds.HasPosts() {
		err = ErrNoPostData
	}
	if err != nil {
		s.tel.ObserveReport(outcome(err), 0)
		return models.Report{}, err
	}

	r := Generate(ds, p.Coverage.ActualStart, p.Window.PeriodEnd)
	r.DataRange = p.Range
	r.Coverage = p.Coverage
	r.Insights = insights.Generate(r)

	took := s.now().Sub(began)
	s.tel.ObserveReport("ok", took)
	s.log.Info("report generated",
		slog.Int("months", months),
		slog.String("start", r.PeriodStart.Format("2006-01-02")),
		slog.String("end", r.PeriodEnd.Format("2006-01-02")),
		slog.Bool("full_coverage", p.Coverage.FullCoverage),
		slog.Duration("took", took))
	return r, nil
}

func outcome(err error) string {
	switch {
	case errors.Is(err, ErrInvalidWindow):
		return "invalid_window"
	case errors.Is(err, ErrNoDateRange):
		return "no_date_range"
	case errors.Is(err, ErrNoPostData):
		return "no_post_data"
	}
	return "error"
}
