package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorsCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.IncFile("twitter_posts", "ok")
	c.IncFile("twitter_posts", "ok")
	c.IncFile("unknown", "unclassified")
	c.AddDropped("twitter_posts", 3)
	c.AddDropped("twitter_posts", 0)
	c.ObserveReport("ok", 5*time.Millisecond)
	c.ObserveReport("no_post_data", 0)
	c.IncFetch("retry")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.FilesIngested.WithLabelValues("twitter_posts", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.FilesIngested.WithLabelValues("unknown", "unclassified")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.RowsDropped.WithLabelValues("twitter_posts")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Reports.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Reports.WithLabelValues("no_post_data")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Fetches.WithLabelValues("retry")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.ReportDuration))
}

func TestNilCollectorsAreSafe(t *testing.T) {
	var c *Collectors
	assert.NotPanics(t, func() {
		c.IncFile("k", "ok")
		c.AddDropped("k", 1)
		c.ObserveReport("ok", time.Second)
		c.IncFetch("ok")
	})
}
