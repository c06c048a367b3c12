package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AngelCh415/socialreport/internal/models"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		headers []string
		want    models.RecordKind
	}{
		{"account metrics", []string{"Date (GMT)", "Followers > Social network - X", "Post impressions > Social network - X"}, models.KindAccountMetrics},
		{"account rule wins over tweet text", []string{"Date", "Followers > Social network - X", "Tweet text", "Impressions", "Engagements"}, models.KindAccountMetrics},
		{"tweet id blocks account rule", []string{"Tweet ID", "Followers", "Social network"}, models.KindTwitterTopPost},
		{"post permalink blocks account rule", []string{"Followers > Social network - X", "Post Permalink"}, models.KindUnknown},
		{"twitter posts", []string{"Date", "Tweet ID", "Tweet text", "Impressions", "Engagements"}, models.KindTwitterPost},
		{"twitter top posts", []string{"Date", "Tweet text", "Likes"}, models.KindTwitterTopPost},
		{"instagram posts", []string{"Date", "Instagram Post ID", "Reach", "Views"}, models.KindInstagramPost},
		{"instagram top posts", []string{"Date", "Instagram Post ID", "Likes"}, models.KindInstagramTopPost},
		{"facebook posts", []string{"Date", "Facebook Post ID", "Reactions", "Shares"}, models.KindFacebookPost},
		{"facebook top posts", []string{"Date", "Facebook Post ID", "Reactions"}, models.KindFacebookTopPost},
		{"case insensitive", []string{"TWEET TEXT", "IMPRESSIONS", "ENGAGEMENTS"}, models.KindTwitterPost},
		{"unknown", []string{"campaign", "spend"}, models.KindUnknown},
		{"no headers", nil, models.KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.headers))
		})
	}
}
