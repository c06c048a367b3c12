package models

import "time"

type Growth struct {
	Change        int     `json:"change"`
	PercentChange float64 `json:"percent_change"`
}

type FollowerMetric struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Growth Growth `json:"growth"`
}

type FollowerMetrics struct {
	X         FollowerMetric `json:"x"`
	Instagram FollowerMetric `json:"instagram"`
	Facebook  FollowerMetric `json:"facebook"`
	Threads   FollowerMetric `json:"threads"`
}

type TwitterMetrics struct {
	PostsCount        int     `json:"posts_count"`
	TotalImpressions  int     `json:"total_impressions"`
	TotalEngagements  int     `json:"total_engagements"`
	TotalLikes        int     `json:"total_likes"`
	TotalRetweets     int     `json:"total_retweets"`
	TotalQuoteTweets  int     `json:"total_quote_tweets"`
	TotalReplies      int     `json:"total_replies"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
}

type InstagramMetrics struct {
	PostsCount      int            `json:"posts_count"`
	TotalLikes      int            `json:"total_likes"`
	TotalComments   int            `json:"total_comments"`
	TotalReach      int            `json:"total_reach"`
	TotalViews      int            `json:"total_views"`
	TotalEngagement int            `json:"total_engagement"`
	PostsByType     map[string]int `json:"posts_by_type"`
}

type FacebookMetrics struct {
	PostsCount      int            `json:"posts_count"`
	TotalReactions  int            `json:"total_reactions"`
	TotalComments   int            `json:"total_comments"`
	TotalShares     int            `json:"total_shares"`
	TotalEngagement int            `json:"total_engagement"`
	PostsByType     map[string]int `json:"posts_by_type"`
}

// AggregateMetrics are dashboard-matching totals summed from the daily
// per-platform columns of the account metrics export.
type AggregateMetrics struct {
	Available          bool `json:"available"`
	TotalPosts         int  `json:"total_posts"`
	TotalImpressions   int  `json:"total_impressions"`
	XPosts             int  `json:"x_posts"`
	IGPosts            int  `json:"ig_posts"`
	FBPosts            int  `json:"fb_posts"`
	ThreadsPosts       int  `json:"threads_posts"`
	XImpressions       int  `json:"x_impressions"`
	IGImpressions      int  `json:"ig_impressions"`
	FBImpressions      int  `json:"fb_impressions"`
	ThreadsImpressions int  `json:"threads_impressions"`
}

type ExecutiveSummary struct {
	TotalPosts        int     `json:"total_posts"`
	TotalImpressions  int     `json:"total_impressions"`
	TotalEngagements  int     `json:"total_engagements"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	NetFollowerGrowth int     `json:"net_follower_growth"`
}

type MonthTwitter struct {
	Posts       int `json:"posts"`
	Impressions int `json:"impressions"`
	Engagements int `json:"engagements"`
	Followers   int `json:"followers"`
}

type MonthInstagram struct {
	Posts       int `json:"posts"`
	Views       int `json:"views"`
	Engagements int `json:"engagements"`
	Followers   int `json:"followers"`
}

type MonthFacebook struct {
	Posts       int `json:"posts"`
	Engagements int `json:"engagements"`
	Followers   int `json:"followers"`
}

type MonthTotal struct {
	Posts       int `json:"posts"`
	Impressions int `json:"impressions"`
	Engagements int `json:"engagements"`
}

type MonthBreakdown struct {
	Month     string         `json:"month"`
	MonthDate time.Time      `json:"month_date"`
	Twitter   MonthTwitter   `json:"twitter"`
	Instagram MonthInstagram `json:"instagram"`
	Facebook  MonthFacebook  `json:"facebook"`
	Total     MonthTotal     `json:"total"`
}

// TopPostExports holds the window's rows from the top-post exports, ranked
// like the regular top lists. They are kept apart from every computed metric.
type TopPostExports struct {
	Twitter   []TwitterPost   `json:"twitter"`
	Instagram []InstagramPost `json:"instagram"`
	Facebook  []FacebookPost  `json:"facebook"`
}

// Report is produced once per (dataset, window) and never mutated afterwards,
// except for Insights which the insight generator fills in.
type Report struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	DataRange   DateRange `json:"data_range"`
	Coverage    Coverage  `json:"coverage"`

	ExecutiveSummary ExecutiveSummary `json:"executive_summary"`
	Aggregate        AggregateMetrics `json:"aggregate_metrics"`
	Followers        FollowerMetrics  `json:"follower_metrics"`
	Twitter          TwitterMetrics   `json:"twitter_metrics"`
	Instagram        InstagramMetrics `json:"instagram_metrics"`
	Facebook         FacebookMetrics  `json:"facebook_metrics"`

	TopTwitterPosts   []TwitterPost   `json:"top_twitter_posts"`
	TopInstagramPosts []InstagramPost `json:"top_instagram_posts"`
	TopFacebookPosts  []FacebookPost  `json:"top_facebook_posts"`
	ExportedTopPosts  TopPostExports  `json:"exported_top_posts"`

	MonthlyBreakdown []MonthBreakdown `json:"monthly_breakdown"`
	Insights         []string         `json:"insights"`
}
