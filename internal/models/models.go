package models

import "time"

// RecordKind classifies an uploaded table. The zero value is KindUnknown.
type RecordKind string

const (
	KindUnknown          RecordKind = ""
	KindAccountMetrics   RecordKind = "account_metrics"
	KindTwitterPost      RecordKind = "twitter_posts"
	KindInstagramPost    RecordKind = "instagram_posts"
	KindFacebookPost     RecordKind = "facebook_posts"
	KindTwitterTopPost   RecordKind = "twitter_top_posts"
	KindInstagramTopPost RecordKind = "instagram_top_posts"
	KindFacebookTopPost  RecordKind = "facebook_top_posts"
)

// Kinds lists every known kind in classifier order.
var Kinds = []RecordKind{
	KindAccountMetrics,
	KindTwitterPost,
	KindInstagramPost,
	KindFacebookPost,
	KindTwitterTopPost,
	KindInstagramTopPost,
	KindFacebookTopPost,
}

func (k RecordKind) Known() bool { return k != KindUnknown }

func (k RecordKind) String() string {
	if k == KindUnknown {
		return "unknown"
	}
	return string(k)
}

// RawTable is a decoded tabular export: ordered headers plus rows keyed by header.
type RawTable struct {
	Headers []string
	Rows    []map[string]string
}

type AccountMetricDay struct {
	Date time.Time `json:"date"`

	XFollowers       int `json:"x_followers"`
	IGFollowers      int `json:"ig_followers"`
	FBFollowers      int `json:"fb_followers"`
	ThreadsFollowers int `json:"threads_followers"`

	XImpressions       int `json:"x_impressions"`
	IGImpressions      int `json:"ig_impressions"`
	FBImpressions      int `json:"fb_impressions"`
	ThreadsImpressions int `json:"threads_impressions"`

	XPosts       int `json:"x_posts"`
	IGPosts      int `json:"ig_posts"`
	FBPosts      int `json:"fb_posts"`
	ThreadsPosts int `json:"threads_posts"`

	// running dashboard totals, never summed across days
	TotalPosts       int `json:"total_posts"`
	TotalImpressions int `json:"total_impressions"`
}

func (d AccountMetricDay) RecordDate() time.Time { return d.Date }

type PostBase struct {
	Date      time.Time `json:"date"`
	Body      string    `json:"body"`
	Permalink string    `json:"permalink,omitempty"`
	Tags      string    `json:"tags,omitempty"`
	Campaign  string    `json:"campaign,omitempty"`
}

func (p PostBase) RecordDate() time.Time { return p.Date }

type TwitterPost struct {
	PostBase
	Impressions    int     `json:"impressions"`
	Engagements    int     `json:"engagements"`
	Likes          int     `json:"likes"`
	Retweets       int     `json:"retweets"`
	QuoteTweets    int     `json:"quote_tweets"`
	Replies        int     `json:"replies"`
	EngagementRate float64 `json:"engagement_rate"`
}

type InstagramPost struct {
	PostBase
	PostType   string `json:"post_type"`
	Likes      int    `json:"likes"`
	Comments   int    `json:"comments"`
	Reach      int    `json:"reach"`
	Views      int    `json:"views"`
	Engagement int    `json:"engagement"`
}

type FacebookPost struct {
	PostBase
	PostType  string `json:"post_type"`
	Title     string `json:"title"`
	Reactions int    `json:"reactions"`
	Comments  int    `json:"comments"`
	Shares    int    `json:"shares"`
}

// Dataset is the merged, normalized view over every uploaded table.
// AccountMetrics is nil when no account export was uploaded.
type Dataset struct {
	AccountMetrics    []AccountMetricDay `json:"account_metrics"`
	TwitterPosts      []TwitterPost      `json:"twitter_posts"`
	InstagramPosts    []InstagramPost    `json:"instagram_posts"`
	FacebookPosts     []FacebookPost     `json:"facebook_posts"`
	TwitterTopPosts   []TwitterPost      `json:"twitter_top_posts"`
	InstagramTopPosts []InstagramPost    `json:"instagram_top_posts"`
	FacebookTopPosts  []FacebookPost     `json:"facebook_top_posts"`
}

// HasPosts reports whether any regular (non-top) post array is non-empty.
func (d Dataset) HasPosts() bool {
	return len(d.TwitterPosts) > 0 || len(d.InstagramPosts) > 0 || len(d.FacebookPosts) > 0
}

// Counts returns the number of records held per kind.
func (d Dataset) Counts() map[RecordKind]int {
	return map[RecordKind]int{
		KindAccountMetrics:   len(d.AccountMetrics),
		KindTwitterPost:      len(d.TwitterPosts),
		KindInstagramPost:    len(d.InstagramPosts),
		KindFacebookPost:     len(d.FacebookPosts),
		KindTwitterTopPost:   len(d.TwitterTopPosts),
		KindInstagramTopPost: len(d.InstagramTopPosts),
		KindFacebookTopPost:  len(d.FacebookTopPosts),
	}
}

type DateRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type PeriodWindow struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

type Coverage struct {
	FullCoverage bool      `json:"full_coverage"`
	ActualStart  time.Time `json:"actual_start"`
	ActualEnd    time.Time `json:"actual_end"`
	Note         string    `json:"note,omitempty"`
}

// FileResult is the per-file outcome reported back to the uploader.
type FileResult struct {
	FileName string     `json:"file_name"`
	Success  bool       `json:"success"`
	Kind     RecordKind `json:"kind,omitempty"`
	RowCount int        `json:"row_count,omitempty"`
	Error    string     `json:"error,omitempty"`
	Headers  []string   `json:"headers,omitempty"`
}
