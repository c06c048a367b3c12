package ingest

import (
	"strings"

	"github.com/AngelCh415/socialreport/internal/models"
)

// Classify assigns a record kind from a table's headers. Rules are checked in
// order and the first match wins: account exports carry a "Social network"
// column next to follower data, so they must be recognized before any post
// rule gets a chance to match.
func Classify(headers []string) models.RecordKind {
	h := strings.ToLower(strings.Join(headers, " "))
	has := func(s string) bool { return strings.Contains(h, s) }

	switch {
	case has("followers") && has("social network") &&
		!has("post id") && !has("tweet id") && !has("post permalink"):
		return models.KindAccountMetrics

	case has("tweet text") || has("tweet id"):
		if has("impressions") && has("engagements") {
			return models.KindTwitterPost
		}
		return models.KindTwitterTopPost

	case has("instagram post id"):
		if has("reach") && has("views") {
			return models.KindInstagramPost
		}
		return models.KindInstagramTopPost

	case has("facebook post id"):
		if has("shares") {
			return models.KindFacebookPost
		}
		return models.KindFacebookTopPost
	}
	return models.KindUnknown
}
