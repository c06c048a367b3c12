// Package insights derives short narrative observations from a finished
// report. Every heuristic reads only the report.
package insights

import (
	"fmt"
	"slices"

	"github.com/AngelCh415/socialreport/internal/models"
	"github.com/AngelCh415/socialreport/internal/render"
)

const MaxInsights = 5

const significantGrowthPct = 50

// Heuristic returns zero or more insights for a report.
type Heuristic func(r models.Report) []string

// Heuristics in priority order.
var Heuristics = []Heuristic{
	HighestEngagementMonth,
	FollowerGrowthLeader,
	SignificantGrowth,
	TopTwitterPost,
	InstagramContentMix,
	TotalPosts,
}

// Generate runs every heuristic in order and keeps the first MaxInsights
// results.
func Generate(r models.Report) []string {
	out := []string{}
	for _, h := range Heuristics {
		out = append(out, h(r)...)
	}
	if len(out) > MaxInsights {
		out = out[:MaxInsights]
	}
	return out
}

// HighestEngagementMonth names the month with the most total engagements;
// on a tie the earliest month wins.
func HighestEngagementMonth(r models.Report) []string {
	if len(r.MonthlyBreakdown) == 0 {
		return nil
	}
	best := r.MonthlyBreakdown[0]
	for _, m := range r.MonthlyBreakdown[1:] {
		if m.Total.Engagements > best.Total.Engagements {
			best = m
		}
	}
	return []string{fmt.Sprintf("Highest engagement month was %s with %s total engagements.",
		best.Month, render.Number(best.Total.Engagements))}
}

type platformGrowth struct {
	name string
	pct  float64
}

// growingPlatforms lists X, Instagram and Facebook with a nonzero percent
// change. With two or more they are ordered by growth, highest first.
func growingPlatforms(f models.FollowerMetrics) []platformGrowth {
	all := []platformGrowth{
		{"X/Twitter", f.X.Growth.PercentChange},
		{"Instagram", f.Instagram.Growth.PercentChange},
		{"Facebook", f.Facebook.Growth.PercentChange},
	}
	out := make([]platformGrowth, 0, len(all))
	for _, p := range all {
		if p.pct != 0 {
			out = append(out, p)
		}
	}
	if len(out) >= 2 {
		slices.SortStableFunc(out, func(a, b platformGrowth) int {
			switch {
			case a.pct > b.pct:
				return -1
			case a.pct < b.pct:
				return 1
			}
			return 0
		})
	}
	return out
}

func FollowerGrowthLeader(r models.Report) []string {
	ps := growingPlatforms(r.Followers)
	if len(ps) < 2 || ps[0].pct <= ps[1].pct {
		return nil
	}
	return []string{fmt.Sprintf("%s follower growth of %.1f%% outpaced %s (%.1f%%).",
		ps[0].name, ps[0].pct, ps[1].name, ps[1].pct)}
}

func SignificantGrowth(r models.Report) []string {
	var out []string
	for _, p := range growingPlatforms(r.Followers) {
		if p.pct > significantGrowthPct {
			out = append(out, fmt.Sprintf("%s showed significant growth with a %.1f%% increase in followers.", p.name, p.pct))
		}
	}
	return out
}

func TopTwitterPost(r models.Report) []string {
	if len(r.TopTwitterPosts) == 0 {
		return nil
	}
	p := r.TopTwitterPosts[0]
	return []string{fmt.Sprintf("Top performing X/Twitter post reached %s impressions on %s.",
		render.Number(p.Impressions), render.Date(p.Date))}
}

func InstagramContentMix(r models.Report) []string {
	reels, photos := r.Instagram.PostsByType["Reel"], r.Instagram.PostsByType["Photo"]
	if reels == 0 || photos == 0 {
		return nil
	}
	return []string{fmt.Sprintf("Instagram content mix included %d Reels and %d Photos during this period.", reels, photos)}
}

func TotalPosts(r models.Report) []string {
	n := r.Twitter.PostsCount + r.Instagram.PostsCount + r.Facebook.PostsCount
	if n <= 0 {
		return nil
	}
	return []string{fmt.Sprintf("A total of %s posts were published across all platforms during this period.", render.Number(n))}
}
