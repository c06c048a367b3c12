package metrics

import (
	"slices"

	"github.com/AngelCh415/socialreport/internal/models"
)

const TopLimit = 5

// TopPosts returns up to limit posts ordered by key, highest first. Ties keep
// their input order. The input slice is not reordered.
func TopPosts[T any](posts []T, key func(T) float64, limit int) []T {
	if limit <= 0 || len(posts) == 0 {
		return []T{}
	}
	sorted := slices.Clone(posts)
	slices.SortStableFunc(sorted, func(a, b T) int {
		ka, kb := key(a), key(b)
		switch {
		case ka > kb:
			return -1
		case ka < kb:
			return 1
		}
		return 0
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// Fixed ranking keys per platform.
func byEngagements(p models.TwitterPost) float64 { return float64(p.Engagements) }
func byLikes(p models.InstagramPost) float64     { return float64(p.Likes) }
func byReactions(p models.FacebookPost) float64  { return float64(p.Reactions) }
