package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"

	"github.com/AngelCh415/socialreport/internal/telemetry"
	"github.com/AngelCh415/socialreport/internal/utils"
)

var ErrTooLarge = errors.New("remote export exceeds size limit")

// Fetcher downloads an export from a URL so it can go through the same
// pipeline as an upload.
type Fetcher struct {
	c        HTTPClient
	backoff  utils.Backoff
	maxBytes int64
	tel      *telemetry.Collectors
}

func NewFetcher(c HTTPClient, b utils.Backoff, maxBytes int64, tel *telemetry.Collectors) *Fetcher {
	return &Fetcher{c: c, backoff: b, maxBytes: maxBytes, tel: tel}
}

// Fetch GETs rawURL, retrying transport errors and 5xx responses. 4xx
// responses fail immediately.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Upload, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return Upload{}, fmt.Errorf("bad url %q", rawURL)
	}

	var out Upload
	err = f.backoff.Do(ctx, func(i int) error {
		up, err := f.get(ctx, u)
		switch {
		case err == nil:
			f.tel.IncFetch("ok")
			out = up
		case errors.Is(err, ErrTooLarge), errors.Is(err, ErrBlockedAddress):
			f.tel.IncFetch("error")
			return utils.Permanent(err)
		default:
			f.tel.IncFetch("error")
		}
		return err
	})
	if err != nil {
		return Upload{}, fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	return out, nil
}

func (f *Fetcher) get(ctx context.Context, u *url.URL) (Upload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Upload{}, utils.Permanent(err)
	}
	resp, err := f.c.Do(req)
	if err != nil {
		return Upload{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err := fmt.Errorf("non-2xx: %d body=%s", resp.StatusCode, string(b))
		if resp.StatusCode < 500 {
			return Upload{}, utils.Permanent(err)
		}
		return Upload{}, err
	}

	limit := f.maxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return Upload{}, err
	}
	if int64(len(b)) > limit {
		return Upload{}, ErrTooLarge
	}
	return Upload{Name: fileName(u, resp.Header), Data: b}, nil
}

// fileName prefers the Content-Disposition filename, then the last URL path
// segment. The extension decides how the body gets decoded.
func fileName(u *url.URL, h http.Header) string {
	if cd := h.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil && params["filename"] != "" {
			return path.Base(params["filename"])
		}
	}
	if base := path.Base(u.Path); base != "." && base != "/" {
		return base
	}
	return u.Host
}
