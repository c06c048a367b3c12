package ingest

import (
	"strings"

	"github.com/AngelCh415/socialreport/internal/models"
)

// Logical fields of the normalized records.
const (
	colDate = "date"

	colXFollowers       = "x_followers"
	colIGFollowers      = "ig_followers"
	colFBFollowers      = "fb_followers"
	colThreadsFollowers = "threads_followers"

	colXImpressions       = "x_impressions"
	colIGImpressions      = "ig_impressions"
	colFBImpressions      = "fb_impressions"
	colThreadsImpressions = "threads_impressions"

	colXPosts       = "x_posts"
	colIGPosts      = "ig_posts"
	colFBPosts      = "fb_posts"
	colThreadsPosts = "threads_posts"

	colTotalPosts       = "total_posts"
	colTotalImpressions = "total_impressions"

	colBody           = "body"
	colTitle          = "title"
	colPermalink      = "permalink"
	colPostType       = "post_type"
	colTags           = "tags"
	colCampaign       = "campaign"
	colImpressions    = "impressions"
	colEngagements    = "engagements"
	colEngagement     = "engagement"
	colEngagementRate = "engagement_rate"
	colLikes          = "likes"
	colRetweets       = "retweets"
	colQuoteTweets    = "quote_tweets"
	colReplies        = "replies"
	colComments       = "comments"
	colReach          = "reach"
	colViews          = "views"
	colReactions      = "reactions"
	colShares         = "shares"
)

// schema maps a logical field to the header spellings seen across export
// versions, most specific first. Supporting a new export variant means adding
// a spelling here.
type schema map[string][]string

var dateSpellings = []string{"Date (GMT)", "Date (UTC)", "Date"}

var accountSchema = schema{
	colDate: dateSpellings,

	colXFollowers: {
		"Followers > Social network - X",
		"Followers (Daily aggregated values for Social Networks: @",
	},
	colIGFollowers:      {"Followers > Social network - Instagram"},
	colFBFollowers:      {"Followers > Social network - Facebook"},
	colThreadsFollowers: {"Followers > Social network - Threads"},

	colXImpressions: {"Post impressions > Social network - X"},
	colIGImpressions: {
		"Post impressions > Social network - Instagram",
		"Reach > Social network - Instagram",
	},
	colFBImpressions: {
		"Post impressions > Social network - Facebook",
		"Reach > Social network - Facebook",
	},
	colThreadsImpressions: {"Post impressions > Social network - Threads"},

	colXPosts:       {"Posts > Social network - X"},
	colIGPosts:      {"Posts > Social network - Instagram"},
	colFBPosts:      {"Posts > Social network - Facebook"},
	colThreadsPosts: {"Posts > Social network - Threads"},

	colTotalPosts:       {"Posts (This column"},
	colTotalImpressions: {"Post impressions (This column"},
}

var twitterSchema = schema{
	colDate:           dateSpellings,
	colBody:           {"Tweet Text", "Post Message"},
	colPermalink:      {"Tweet Permalink", "Post Permalink"},
	colImpressions:    {"Impressions"},
	colEngagements:    {"Engagements"},
	colLikes:          {"Likes"},
	colRetweets:       {"Retweets", "Reposts"},
	colQuoteTweets:    {"Quote Tweets", "Quotes"},
	colReplies:        {"Replies"},
	colEngagementRate: {"Engagement Rate"},
	colTags:           {"Tweet Tags", "Post Tags"},
	colCampaign:       {"Tweet Campaign", "Post Campaign"},
}

var instagramSchema = schema{
	colDate:       dateSpellings,
	colPostType:   {"Post Type"},
	colBody:       {"Post Message", "Caption"},
	colPermalink:  {"Post Permalink"},
	colLikes:      {"Likes"},
	colComments:   {"Comments"},
	colReach:      {"Reach"},
	colViews:      {"Views", "Video Views"},
	colEngagement: {"Engagement"},
	colTags:       {"Post Tags"},
	colCampaign:   {"Post Campaign"},
}

var facebookSchema = schema{
	colDate:      dateSpellings,
	colPostType:  {"Post Type"},
	colTitle:     {"Post Title", "Title"},
	colBody:      {"Post Message"},
	colPermalink: {"Post Permalink"},
	colReactions: {"Reactions"},
	colComments:  {"Comments"},
	colShares:    {"Shares"},
	colTags:      {"Post Tags"},
	colCampaign:  {"Post Campaign"},
}

func schemaFor(kind models.RecordKind) schema {
	switch kind {
	case models.KindAccountMetrics:
		return accountSchema
	case models.KindTwitterPost, models.KindTwitterTopPost:
		return twitterSchema
	case models.KindInstagramPost, models.KindInstagramTopPost:
		return instagramSchema
	case models.KindFacebookPost, models.KindFacebookTopPost:
		return facebookSchema
	}
	return nil
}

// columns holds, per logical field, the header actually present in a table.
type columns map[string]string

// resolveColumns picks a header for every field of s. For each spelling in
// order an exact case-insensitive match is preferred over a substring match;
// the first spelling that matches anything wins.
func resolveColumns(headers []string, s schema) columns {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}

	out := make(columns, len(s))
	for field, spellings := range s {
		if h, ok := findHeader(headers, lower, spellings); ok {
			out[field] = h
		}
	}
	return out
}

func findHeader(headers, lower, spellings []string) (string, bool) {
	for _, sp := range spellings {
		want := strings.ToLower(sp)
		for i, h := range lower {
			if h == want {
				return headers[i], true
			}
		}
		for i, h := range lower {
			if strings.Contains(h, want) {
				return headers[i], true
			}
		}
	}
	return "", false
}

func (c columns) str(row map[string]string, field string) string {
	h, ok := c[field]
	if !ok {
		return ""
	}
	return strings.TrimSpace(row[h])
}

func (c columns) count(row map[string]string, field string) int {
	h, ok := c[field]
	if !ok {
		return 0
	}
	return ParseCount(row[h])
}

func (c columns) number(row map[string]string, field string) float64 {
	h, ok := c[field]
	if !ok {
		return 0
	}
	return ParseNumber(row[h])
}
