package sink

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/AngelCh415/socialreport/internal/ingest"
	"github.com/AngelCh415/socialreport/internal/models"
)

var (
	ErrNotConfigured = errors.New("sink not configured")
	ErrRejected      = errors.New("export sink non-2xx")
)

// Sink delivers finished reports to an external endpoint. The body is signed
// with HMAC-SHA256 over the raw JSON and sent hex-encoded in X-Signature.
type Sink struct {
	c      ingest.HTTPClient
	url    string
	secret string
}

func New(c ingest.HTTPClient, url, secret string) *Sink {
	return &Sink{c: c, url: url, secret: secret}
}

func (s *Sink) Configured() bool { return s != nil && s.url != "" && s.secret != "" }

func (s *Sink) Deliver(ctx context.Context, datasetID string, r models.Report) error {
	if !s.Configured() {
		return ErrNotConfigured
	}
	b, err := json.Marshal(struct {
		DatasetID string        `json:"dataset_id"`
		Report    models.Report `json:"report"`
	}{datasetID, r})
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", Sign(s.secret, b))

	resp, err := s.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrRejected, resp.StatusCode)
	}
	return nil
}

func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
