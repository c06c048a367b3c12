package ingest

import (
	"time"

	"github.com/AngelCh415/socialreport/internal/models"
)

// Table is one classified upload after normalization. Only the slice matching
// Kind is populated.
type Table struct {
	Source    string
	Kind      models.RecordKind
	Accounts  []models.AccountMetricDay
	Twitter   []models.TwitterPost
	Instagram []models.InstagramPost
	Facebook  []models.FacebookPost
	// Dropped counts rows excluded for lacking a usable date.
	Dropped int
}

func (t Table) Len() int {
	return len(t.Accounts) + len(t.Twitter) + len(t.Instagram) + len(t.Facebook)
}

// Normalize converts raw rows into typed records for kind. Rows whose date
// cannot be parsed are dropped; every other field falls back to its zero value.
func Normalize(kind models.RecordKind, raw models.RawTable) Table {
	t := Table{Kind: kind}
	s := schemaFor(kind)
	if s == nil {
		return t
	}
	cols := resolveColumns(raw.Headers, s)

	switch kind {
	case models.KindAccountMetrics:
		t.Accounts = make([]models.AccountMetricDay, 0, len(raw.Rows))
	case models.KindTwitterPost, models.KindTwitterTopPost:
		t.Twitter = make([]models.TwitterPost, 0, len(raw.Rows))
	case models.KindInstagramPost, models.KindInstagramTopPost:
		t.Instagram = make([]models.InstagramPost, 0, len(raw.Rows))
	case models.KindFacebookPost, models.KindFacebookTopPost:
		t.Facebook = make([]models.FacebookPost, 0, len(raw.Rows))
	}

	for _, row := range raw.Rows {
		d, ok := ParseDate(cols.str(row, colDate))
		if !ok {
			t.Dropped++
			continue
		}
		switch kind {
		case models.KindAccountMetrics:
			t.Accounts = append(t.Accounts, accountDay(cols, row, d))
		case models.KindTwitterPost, models.KindTwitterTopPost:
			t.Twitter = append(t.Twitter, twitterPost(cols, row, d))
		case models.KindInstagramPost, models.KindInstagramTopPost:
			t.Instagram = append(t.Instagram, instagramPost(cols, row, d))
		case models.KindFacebookPost, models.KindFacebookTopPost:
			t.Facebook = append(t.Facebook, facebookPost(cols, row, d))
		}
	}
	return t
}

func accountDay(c columns, row map[string]string, d time.Time) models.AccountMetricDay {
	return models.AccountMetricDay{
		Date: d,

		XFollowers:       max0(c.count(row, colXFollowers)),
		IGFollowers:      max0(c.count(row, colIGFollowers)),
		FBFollowers:      max0(c.count(row, colFBFollowers)),
		ThreadsFollowers: max0(c.count(row, colThreadsFollowers)),

		XImpressions:       c.count(row, colXImpressions),
		IGImpressions:      c.count(row, colIGImpressions),
		FBImpressions:      c.count(row, colFBImpressions),
		ThreadsImpressions: c.count(row, colThreadsImpressions),

		XPosts:       c.count(row, colXPosts),
		IGPosts:      c.count(row, colIGPosts),
		FBPosts:      c.count(row, colFBPosts),
		ThreadsPosts: c.count(row, colThreadsPosts),

		TotalPosts:       c.count(row, colTotalPosts),
		TotalImpressions: c.count(row, colTotalImpressions),
	}
}

func postBase(c columns, row map[string]string, d time.Time) models.PostBase {
	return models.PostBase{
		Date:      d,
		Body:      c.str(row, colBody),
		Permalink: c.str(row, colPermalink),
		Tags:      c.str(row, colTags),
		Campaign:  c.str(row, colCampaign),
	}
}

func twitterPost(c columns, row map[string]string, d time.Time) models.TwitterPost {
	return models.TwitterPost{
		PostBase:       postBase(c, row, d),
		Impressions:    c.count(row, colImpressions),
		Engagements:    c.count(row, colEngagements),
		Likes:          c.count(row, colLikes),
		Retweets:       c.count(row, colRetweets),
		QuoteTweets:    c.count(row, colQuoteTweets),
		Replies:        c.count(row, colReplies),
		EngagementRate: c.number(row, colEngagementRate),
	}
}

func instagramPost(c columns, row map[string]string, d time.Time) models.InstagramPost {
	return models.InstagramPost{
		PostBase:   postBase(c, row, d),
		PostType:   c.str(row, colPostType),
		Likes:      c.count(row, colLikes),
		Comments:   c.count(row, colComments),
		Reach:      c.count(row, colReach),
		Views:      c.count(row, colViews),
		Engagement: c.count(row, colEngagement),
	}
}

func facebookPost(c columns, row map[string]string, d time.Time) models.FacebookPost {
	return models.FacebookPost{
		PostBase:  postBase(c, row, d),
		PostType:  c.str(row, colPostType),
		Title:     c.str(row, colTitle),
		Reactions: c.count(row, colReactions),
		Comments:  c.count(row, colComments),
		Shares:    c.count(row, colShares),
	}
}

func max0(i int) int {
	if i < 0 {
		return 0
	}
	return i
}
