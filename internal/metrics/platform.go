package metrics

import "github.com/AngelCh415/socialreport/internal/models"

const unknownPostType = "Unknown"

func TwitterStats(posts []models.TwitterPost) models.TwitterMetrics {
	m := models.TwitterMetrics{PostsCount: len(posts)}
	var (
		rateSum float64
		rated   int
	)
	for _, p := range posts {
		m.TotalImpressions += p.Impressions
		m.TotalEngagements += p.Engagements
		m.TotalLikes += p.Likes
		m.TotalRetweets += p.Retweets
		m.TotalQuoteTweets += p.QuoteTweets
		m.TotalReplies += p.Replies
		// posts without a reported rate must not drag the mean toward zero
		if p.EngagementRate > 0 {
			rateSum += p.EngagementRate
			rated++
		}
	}
	m.AvgEngagementRate = safeDivF(rateSum, float64(rated))
	return m
}

func InstagramStats(posts []models.InstagramPost) models.InstagramMetrics {
	m := models.InstagramMetrics{PostsCount: len(posts), PostsByType: map[string]int{}}
	for _, p := range posts {
		m.TotalLikes += p.Likes
		m.TotalComments += p.Comments
		m.TotalReach += p.Reach
		m.TotalViews += p.Views
		m.TotalEngagement += p.Likes + p.Comments
		m.PostsByType[postType(p.PostType)]++
	}
	return m
}

func FacebookStats(posts []models.FacebookPost) models.FacebookMetrics {
	m := models.FacebookMetrics{PostsCount: len(posts), PostsByType: map[string]int{}}
	for _, p := range posts {
		m.TotalReactions += p.Reactions
		m.TotalComments += p.Comments
		m.TotalShares += p.Shares
		m.TotalEngagement += p.Reactions + p.Comments + p.Shares
		m.PostsByType[postType(p.PostType)]++
	}
	return m
}

func postType(t string) string {
	if t == "" {
		return unknownPostType
	}
	return t
}

func safeDivF(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
