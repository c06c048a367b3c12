package metrics

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/socialreport/internal/models"
	"github.com/AngelCh415/socialreport/internal/telemetry"
)

func TestFollowerGrowthZeroStart(t *testing.T) {
	g := FollowerGrowth(0, 500)
	assert.Equal(t, 500, g.Change)
	assert.Equal(t, 0.0, g.PercentChange)

	g = FollowerGrowth(1000, 900)
	assert.Equal(t, -100, g.Change)
	assert.InDelta(t, -10.0, g.PercentChange, 1e-9)
}

func TestFollowersSkipZeroDays(t *testing.T) {
	days := []models.AccountMetricDay{
		{Date: day(2025, 1, 3), XFollowers: 0, IGFollowers: 510},
		{Date: day(2025, 1, 1), XFollowers: 0, IGFollowers: 500},
		{Date: day(2025, 1, 2), XFollowers: 100},
		{Date: day(2025, 1, 4), XFollowers: 120, ThreadsFollowers: 7},
		{Date: day(2025, 1, 5), XFollowers: 0},
		{Date: day(2025, 2, 1), XFollowers: 999},
	}
	f := Followers(days, day(2025, 1, 1), day(2025, 1, 31))
	assert.Equal(t, models.FollowerMetric{Start: 100, End: 120, Growth: models.Growth{Change: 20, PercentChange: 20}}, f.X)
	assert.Equal(t, 500, f.Instagram.Start)
	assert.Equal(t, 510, f.Instagram.End)
	assert.Equal(t, models.FollowerMetric{}, f.Facebook)
	assert.Equal(t, 7, f.Threads.Start)
	assert.Equal(t, 7, f.Threads.End)
}

func TestAggregateUsesDailyColumns(t *testing.T) {
	days := []models.AccountMetricDay{
		{Date: day(2025, 1, 1), XPosts: 2, TotalPosts: 100, XImpressions: 10, ThreadsPosts: 1, TotalImpressions: 5000},
		{Date: day(2025, 1, 2), XPosts: 3, TotalPosts: 103, XImpressions: 20, TotalImpressions: 5030},
		{Date: day(2025, 3, 1), XPosts: 50},
	}
	a := Aggregate(days, day(2025, 1, 1), day(2025, 1, 31))
	assert.True(t, a.Available)
	assert.Equal(t, 5, a.XPosts)
	assert.Equal(t, 6, a.TotalPosts)
	assert.Equal(t, 30, a.TotalImpressions)
	assert.Equal(t, 1, a.ThreadsPosts)

	assert.False(t, Aggregate(nil, day(2025, 1, 1), day(2025, 1, 31)).Available)
}

func TestTopPostsStableAndCapped(t *testing.T) {
	var posts []models.TwitterPost
	for i, e := range []int{5, 9, 5, 1, 9, 5, 3} {
		posts = append(posts, models.TwitterPost{PostBase: models.PostBase{Body: string(rune('a' + i))}, Engagements: e})
	}
	top := TopPosts(posts, byEngagements, TopLimit)
	require.Len(t, top, 5)
	var order string
	for _, p := range top {
		order += p.Body
	}
	assert.Equal(t, "beacf", order)
	assert.Equal(t, "a", posts[0].Body, "input not reordered")

	assert.Empty(t, TopPosts(posts, byEngagements, 0))
	assert.Empty(t, TopPosts([]models.TwitterPost(nil), byEngagements, 5))
}

func TestPlatformStats(t *testing.T) {
	tw := TwitterStats([]models.TwitterPost{
		{Impressions: 100, Engagements: 10, EngagementRate: 4},
		{Impressions: 50, Engagements: 5, EngagementRate: 0},
		{Impressions: 10, Engagements: 1, EngagementRate: 2},
	})
	assert.Equal(t, 3, tw.PostsCount)
	assert.Equal(t, 160, tw.TotalImpressions)
	assert.Equal(t, 3.0, tw.AvgEngagementRate, "zero rates excluded")
	assert.Equal(t, 0.0, TwitterStats(nil).AvgEngagementRate)

	ig := InstagramStats([]models.InstagramPost{
		{PostType: "Reel", Likes: 10, Comments: 2, Views: 300},
		{PostType: "", Likes: 1},
	})
	assert.Equal(t, 13, ig.TotalEngagement)
	assert.Equal(t, map[string]int{"Reel": 1, "Unknown": 1}, ig.PostsByType)

	fb := FacebookStats([]models.FacebookPost{{PostType: "Link", Reactions: 3, Comments: 2, Shares: 1}})
	assert.Equal(t, 6, fb.TotalEngagement)
	assert.Equal(t, map[string]int{"Link": 1}, fb.PostsByType)
}

func TestMonthlyBreakdownCoversWholeMonths(t *testing.T) {
	ds := models.Dataset{
		TwitterPosts: []models.TwitterPost{
			{PostBase: models.PostBase{Date: day(2025, 3, 5)}, Impressions: 100, Engagements: 100},
			{PostBase: models.PostBase{Date: day(2025, 3, 20)}, Impressions: 10, Engagements: 1},
			{PostBase: models.PostBase{Date: day(2025, 6, 2)}, Impressions: 100, Engagements: 10},
		},
		InstagramPosts: []models.InstagramPost{
			{PostBase: models.PostBase{Date: day(2025, 6, 6)}, Likes: 4, Comments: 1, Views: 40},
		},
	}
	months := MonthlyBreakdown(ds, day(2025, 3, 16), day(2025, 6, 15))
	require.Len(t, months, 4)
	assert.Equal(t, "Mar 2025", months[0].Month)
	assert.Equal(t, day(2025, 3, 1), months[0].MonthDate)
	assert.Equal(t, 2, months[0].Twitter.Posts, "Mar 5 counts though the window starts Mar 16")
	assert.Equal(t, 101, months[0].Total.Engagements)
	assert.Equal(t, 0, months[1].Total.Posts)
	assert.Equal(t, 2, months[3].Total.Posts)
	assert.Equal(t, 140, months[3].Total.Impressions)
	assert.Equal(t, 15, months[3].Total.Engagements)
}

func TestHighestMonthUsesWholeFirstMonth(t *testing.T) {
	ds := scenarioFrom(day(2024, 7, 1), day(2025, 6, 15))
	ds.TwitterPosts = []models.TwitterPost{
		{PostBase: models.PostBase{Date: day(2025, 3, 5)}, Engagements: 100},
		{PostBase: models.PostBase{Date: day(2025, 3, 20)}, Engagements: 1},
		{PostBase: models.PostBase{Date: day(2025, 5, 1)}, Engagements: 50},
	}
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	r, err := svc.Report(ds, 3)
	require.NoError(t, err)
	assert.Equal(t, day(2025, 3, 16), r.PeriodStart)
	require.NotEmpty(t, r.MonthlyBreakdown)
	first := r.MonthlyBreakdown[0]
	assert.Equal(t, "Mar 2025", first.Month)
	assert.Equal(t, 2, first.Total.Posts)
	assert.Equal(t, 101, first.Total.Engagements)
	assert.Equal(t, "Highest engagement month was Mar 2025 with 101 total engagements.", r.Insights[0])
}

// End-to-end: three months of account metrics and ten posts in February.
func scenario() models.Dataset {
	ds := scenarioFrom(day(2025, 1, 1), day(2025, 3, 31))
	for i := 0; i < 10; i++ {
		ds.TwitterPosts = append(ds.TwitterPosts, models.TwitterPost{
			PostBase:    models.PostBase{Date: day(2025, 2, 1+i)},
			Impressions: 100 * (i + 1),
			Engagements: 10,
		})
	}
	return ds
}

// scenarioFrom builds daily account metrics over [start, end] with X followers
// rising linearly from 1000 to 1200, and no posts.
func scenarioFrom(start, end time.Time) models.Dataset {
	ds := models.Dataset{
		TwitterPosts:      []models.TwitterPost{},
		InstagramPosts:    []models.InstagramPost{},
		FacebookPosts:     []models.FacebookPost{},
		TwitterTopPosts:   []models.TwitterPost{},
		InstagramTopPosts: []models.InstagramPost{},
		FacebookTopPosts:  []models.FacebookPost{},
	}
	total := int(end.Sub(start).Hours()/24) + 1
	for i := 0; i < total; i++ {
		d := start.AddDate(0, 0, i)
		ds.AccountMetrics = append(ds.AccountMetrics, models.AccountMetricDay{
			Date:       d,
			XFollowers: 1000 + i*200/(total-1),
		})
	}
	return ds
}

func TestServiceReportScenario(t *testing.T) {
	tel := telemetry.New(prometheus.NewRegistry())
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), tel)

	r, err := svc.Report(scenario(), 3)
	require.NoError(t, err)

	assert.True(t, r.Coverage.FullCoverage)
	assert.Equal(t, day(2025, 1, 1), r.PeriodStart)
	assert.Equal(t, day(2025, 3, 31), r.PeriodEnd)
	assert.Equal(t, models.FollowerMetric{Start: 1000, End: 1200, Growth: models.Growth{Change: 200, PercentChange: 20}}, r.Followers.X)

	require.Len(t, r.MonthlyBreakdown, 3)
	assert.Equal(t, []int{0, 10, 0}, []int{
		r.MonthlyBreakdown[0].Total.Posts,
		r.MonthlyBreakdown[1].Total.Posts,
		r.MonthlyBreakdown[2].Total.Posts,
	})

	// no daily post columns, so totals fall back to the post arrays
	assert.Equal(t, 10, r.ExecutiveSummary.TotalPosts)
	assert.Equal(t, 5500, r.ExecutiveSummary.TotalImpressions)
	assert.Equal(t, 200, r.ExecutiveSummary.NetFollowerGrowth)

	require.Len(t, r.TopTwitterPosts, TopLimit)
	assert.Equal(t, day(2025, 2, 1), r.TopTwitterPosts[0].Date, "ties keep input order")

	assert.NotEmpty(t, r.Insights)
	assert.LessOrEqual(t, len(r.Insights), 5)
	assert.Equal(t, 1.0, testutil.ToFloat64(tel.Reports.WithLabelValues("ok")))
}

func TestServiceReportRequiresPosts(t *testing.T) {
	tel := telemetry.New(prometheus.NewRegistry())
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), tel)

	ds := models.Dataset{AccountMetrics: []models.AccountMetricDay{{Date: day(2025, 1, 1), XFollowers: 5}}}
	_, err := svc.Report(ds, 3)
	assert.ErrorIs(t, err, ErrNoPostData)

	_, err = svc.Report(scenario(), 5)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	assert.Equal(t, 1.0, testutil.ToFloat64(tel.Reports.WithLabelValues("no_post_data")))
	assert.Equal(t, 1.0, testutil.ToFloat64(tel.Reports.WithLabelValues("invalid_window")))
}

func TestGenerateExcludesThreadsFromNetGrowth(t *testing.T) {
	ds := scenario()
	for i := range ds.AccountMetrics {
		ds.AccountMetrics[i].ThreadsFollowers = 10 + i
	}
	r := Generate(ds, day(2025, 1, 1), day(2025, 3, 31))
	assert.Positive(t, r.Followers.Threads.Growth.Change)
	assert.Equal(t, 200, r.ExecutiveSummary.NetFollowerGrowth)
}

func TestGenerateRanksOnlyRegularPosts(t *testing.T) {
	ds := scenario()
	ds.TwitterPosts = nil
	ds.FacebookTopPosts = []models.FacebookPost{
		{PostBase: models.PostBase{Date: day(2025, 3, 1), Body: "in"}, Reactions: 5},
		{PostBase: models.PostBase{Date: day(2024, 3, 1), Body: "old"}, Reactions: 50},
	}
	ds.TwitterTopPosts = []models.TwitterPost{{PostBase: models.PostBase{Date: day(2025, 3, 1)}, Impressions: 777, Engagements: 9999}}

	r := Generate(ds, day(2025, 1, 1), day(2025, 3, 31))
	assert.Empty(t, r.TopTwitterPosts)
	assert.Empty(t, r.TopFacebookPosts)
	assert.Equal(t, 0, r.Facebook.PostsCount, "exports are not counted")
	assert.Equal(t, 0, r.Twitter.TotalImpressions)

	require.Len(t, r.ExportedTopPosts.Facebook, 1)
	assert.Equal(t, "in", r.ExportedTopPosts.Facebook[0].Body)
	require.Len(t, r.ExportedTopPosts.Twitter, 1)
	assert.Equal(t, 777, r.ExportedTopPosts.Twitter[0].Impressions)
}
