package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/AngelCh415/socialreport/internal/models"
)

const (
	heavyRule = "═══════════════════════════════════════════════════════════════"
	lightRule = "───────────────────────────────────────────────────────────────"
	bodyWidth = 100
)

// PlainText renders r as a fixed-width text report suitable for pasting into
// email or chat.
func PlainText(r models.Report, generated time.Time) string {
	var b strings.Builder
	WriteText(&b, r, generated)
	return b.String()
}

// WriteText writes the PlainText rendering of r to w.
func WriteText(w io.Writer, r models.Report, generated time.Time) {
	p := func(format string, a ...any) { fmt.Fprintf(w, format, a...) }
	section := func(title string) { p("%s\n%s\n%s\n\n", lightRule, title, lightRule) }

	p("%s\nSOCIAL MEDIA PERFORMANCE REPORT\n%s\n\n", heavyRule, heavyRule)
	p("REPORT PERIOD: %s – %s\n", Date(r.PeriodStart), Date(r.PeriodEnd))
	p("DATA SOURCE RANGE: %s – %s\n", Date(r.DataRange.StartDate), Date(r.DataRange.EndDate))
	if r.Coverage.Note != "" {
		p("%s\n", r.Coverage.Note)
	}
	p("GENERATED: %s\n\n", Date(generated))

	es := r.ExecutiveSummary
	section("EXECUTIVE SUMMARY")
	p("Total Posts Published:        %s\n", Number(es.TotalPosts))
	p("Total Impressions:            %s\n", Number(es.TotalImpressions))
	p("Total Engagements:            %s\n", Number(es.TotalEngagements))
	p("Average Engagement Rate:      %s\n", Percent(es.AvgEngagementRate))
	p("Net Follower Growth:          %s (all platforms combined)\n\n", Signed(es.NetFollowerGrowth))

	f := r.Followers
	section("PLATFORM PERFORMANCE")
	p("%-22s %12s %12s %12s\n", "", "X/TWITTER", "INSTAGRAM", "FACEBOOK")
	row := func(label, x, ig, fb string) { p("%-22s %12s %12s %12s\n", label, x, ig, fb) }
	row("Posts Published", Number(r.Twitter.PostsCount), Number(r.Instagram.PostsCount), Number(r.Facebook.PostsCount))
	row("Followers (Start)", Number(f.X.Start), Number(f.Instagram.Start), Number(f.Facebook.Start))
	row("Followers (End)", Number(f.X.End), Number(f.Instagram.End), Number(f.Facebook.End))
	row("Follower Growth", Signed(f.X.Growth.Change), Signed(f.Instagram.Growth.Change), Signed(f.Facebook.Growth.Change))
	row("", "("+growthPct(f.X)+")", "("+growthPct(f.Instagram)+")", "("+growthPct(f.Facebook)+")")
	row("Total Impressions", Number(r.Twitter.TotalImpressions), Number(r.Instagram.TotalViews), "N/A")
	row("Total Engagements", Number(r.Twitter.TotalEngagements), Number(r.Instagram.TotalEngagement), Number(r.Facebook.TotalEngagement))
	row("Avg Engagement Rate", Percent(r.Twitter.AvgEngagementRate), "N/A", "N/A")
	if f.Threads.Start > 0 || f.Threads.End > 0 {
		p("Threads followers: %s -> %s (%s, %s)\n", Number(f.Threads.Start), Number(f.Threads.End),
			Signed(f.Threads.Growth.Change), growthPct(f.Threads))
	}
	p("\n")

	section("ENGAGEMENT BREAKDOWN")
	p("X/TWITTER:\n")
	p("  Total Likes:        %s\n", Number(r.Twitter.TotalLikes))
	p("  Total Retweets:     %s\n", Number(r.Twitter.TotalRetweets))
	p("  Total Quote Tweets: %s\n", Number(r.Twitter.TotalQuoteTweets))
	p("  Total Replies:      %s\n\n", Number(r.Twitter.TotalReplies))
	p("INSTAGRAM:\n")
	p("  Total Likes:        %s\n", Number(r.Instagram.TotalLikes))
	p("  Total Comments:     %s\n", Number(r.Instagram.TotalComments))
	p("  Total Reach:        %s\n", Number(r.Instagram.TotalReach))
	p("  Posts by Type:      %s\n\n", byType(r.Instagram.PostsByType))
	p("FACEBOOK:\n")
	p("  Total Reactions:    %s\n", Number(r.Facebook.TotalReactions))
	p("  Total Comments:     %s\n", Number(r.Facebook.TotalComments))
	p("  Total Shares:       %s\n", Number(r.Facebook.TotalShares))
	p("  Posts by Type:      %s\n\n", byType(r.Facebook.PostsByType))

	section("TOP PERFORMING POSTS - X/TWITTER")
	for i, post := range r.TopTwitterPosts {
		p("%d. %s | %s engagements | %s impressions\n", i+1, Date(post.Date), Number(post.Engagements), Number(post.Impressions))
		p("   \"%s\"\n   %s\n\n", Truncate(post.Body, bodyWidth), post.Permalink)
	}
	section("TOP PERFORMING POSTS - INSTAGRAM")
	for i, post := range r.TopInstagramPosts {
		p("%d. %s | %s likes | %s views\n", i+1, Date(post.Date), Number(post.Likes), Number(post.Views))
		p("   \"%s\"\n   %s\n\n", Truncate(post.Body, bodyWidth), post.Permalink)
	}
	section("TOP PERFORMING POSTS - FACEBOOK")
	for i, post := range r.TopFacebookPosts {
		p("%d. %s | %s reactions | %s shares\n", i+1, Date(post.Date), Number(post.Reactions), Number(post.Shares))
		p("   \"%s\"\n   %s\n\n", Truncate(post.Body, bodyWidth), post.Permalink)
	}

	section("MONTHLY BREAKDOWN")
	p("%-12s %8s %14s %14s\n", "Month", "Posts", "Impressions", "Engagements")
	p("%s %s %s %s\n", strings.Repeat("─", 12), strings.Repeat("─", 8), strings.Repeat("─", 14), strings.Repeat("─", 14))
	for _, m := range r.MonthlyBreakdown {
		p("%-12s %8s %14s %14s\n", m.Month, Number(m.Total.Posts), Number(m.Total.Impressions), Number(m.Total.Engagements))
	}
	p("\n")

	section("KEY INSIGHTS")
	for _, in := range r.Insights {
		p("• %s\n\n", in)
	}

	p("%s\n%s\n%s\n", heavyRule, "                         END OF REPORT", heavyRule)
}

func growthPct(m models.FollowerMetric) string {
	return SignedPercent(m.Growth.Change, m.Growth.PercentChange)
}

// byType lists post type counts sorted by type name.
func byType(m map[string]int) string {
	if len(m) == 0 {
		return "N/A"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, m[k]))
	}
	return strings.Join(parts, ", ")
}
