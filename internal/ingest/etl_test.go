package ingest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/socialreport/internal/models"
	"github.com/AngelCh415/socialreport/internal/telemetry"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

const accountCSV = "Date,Followers > Social network - X,Posts > Social network - X\n" +
	"2025-01-01,1000,1\n" +
	"2025-01-02,1010,2\n" +
	"garbage,1020,3\n"

func TestETLRun(t *testing.T) {
	tel := telemetry.New(prometheus.NewRegistry())
	etl := NewETL(discardLogger(), tel, 2, 0)

	archive := zipBytes(t, map[string]string{"account.csv": accountCSV}, []string{"account.csv"})
	uploads := []Upload{
		{Name: "tweets.csv", Data: []byte(twitterCSV)},
		{Name: "mystery.csv", Data: []byte("foo,bar\n1,2\n")},
		{Name: "deck.pdf", Data: []byte("%PDF")},
		{Name: "bundle.zip", Data: archive},
	}

	b, err := etl.Run(context.Background(), uploads)
	require.NoError(t, err)
	require.Len(t, b.Files, 4)

	assert.Equal(t, models.FileResult{FileName: "tweets.csv", Success: true, Kind: models.KindTwitterPost, RowCount: 2}, b.Files[0])

	assert.False(t, b.Files[1].Success)
	assert.Equal(t, errUnclassified, b.Files[1].Error)
	assert.Equal(t, []string{"foo", "bar"}, b.Files[1].Headers)

	assert.False(t, b.Files[2].Success)
	assert.Equal(t, ErrUnsupportedFile.Error(), b.Files[2].Error)

	assert.Equal(t, "account.csv", b.Files[3].FileName)
	assert.Equal(t, models.KindAccountMetrics, b.Files[3].Kind)
	assert.Equal(t, 3, b.Files[3].RowCount)

	require.Len(t, b.Tables, 2)
	assert.Equal(t, "tweets.csv", b.Tables[0].Source)
	assert.Equal(t, 1, b.Tables[1].Dropped)

	ds := b.Dataset()
	assert.Len(t, ds.TwitterPosts, 2)
	assert.Len(t, ds.AccountMetrics, 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(tel.FilesIngested.WithLabelValues("twitter_posts", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(tel.RowsDropped.WithLabelValues("account_metrics")))
}

func TestETLRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewETL(discardLogger(), nil, 0, 0).Run(ctx, []Upload{{Name: "a.csv", Data: []byte(twitterCSV)}})
	assert.ErrorIs(t, err, context.Canceled)
}
