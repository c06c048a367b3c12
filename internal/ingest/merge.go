package ingest

import (
	"slices"

	"github.com/AngelCh415/socialreport/internal/models"
)

// Merge folds normalized tables, in upload order, into one dataset. The last
// account metrics table replaces any earlier one; post tables are
// concatenated as-is, so uploading the same export twice duplicates its posts.
// The returned dataset shares no backing arrays with the input tables.
func Merge(tables []Table) models.Dataset {
	ds := models.Dataset{
		TwitterPosts:      []models.TwitterPost{},
		InstagramPosts:    []models.InstagramPost{},
		FacebookPosts:     []models.FacebookPost{},
		TwitterTopPosts:   []models.TwitterPost{},
		InstagramTopPosts: []models.InstagramPost{},
		FacebookTopPosts:  []models.FacebookPost{},
	}

	for _, t := range tables {
		switch t.Kind {
		case models.KindAccountMetrics:
			ds.AccountMetrics = append(make([]models.AccountMetricDay, 0, len(t.Accounts)), t.Accounts...)
		case models.KindTwitterPost:
			ds.TwitterPosts = append(ds.TwitterPosts, t.Twitter...)
		case models.KindInstagramPost:
			ds.InstagramPosts = append(ds.InstagramPosts, t.Instagram...)
		case models.KindFacebookPost:
			ds.FacebookPosts = append(ds.FacebookPosts, t.Facebook...)
		case models.KindTwitterTopPost:
			ds.TwitterTopPosts = append(ds.TwitterTopPosts, t.Twitter...)
		case models.KindInstagramTopPost:
			ds.InstagramTopPosts = append(ds.InstagramTopPosts, t.Instagram...)
		case models.KindFacebookTopPost:
			ds.FacebookTopPosts = append(ds.FacebookTopPosts, t.Facebook...)
		}
	}

	slices.SortStableFunc(ds.AccountMetrics, func(a, b models.AccountMetricDay) int {
		return a.Date.Compare(b.Date)
	})
	return ds
}
