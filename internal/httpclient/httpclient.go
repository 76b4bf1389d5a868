// Package httpclient builds the retrying HTTP client used by every
// network-facing package (manifest fetch, download, loader metadata,
// OptiFine scraping). Grounded in the teacher's internal/download.Manager
// and internal/java.Downloader, which each separately constructed a
// retryablehttp.Client with identical retry/timeout settings; this package
// centralizes that construction so every caller gets the same settings.
// Each New call builds its own transport, so connection pools are per
// client, not process-wide.
package httpclient

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

const UserAgent = "mc-installer/1.0 (+https://github.com/quasar/mc-installer)"

// New returns a retryablehttp.Client tuned the way the teacher tuned its
// download manager: three retries, 1-10s backoff, a pooled transport with
// generous idle-connection reuse for the many small asset/library requests
// a single install performs. Every request attempt carries UserAgent.
func New() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.RetryWaitMin = 1 * time.Second
	c.RetryWaitMax = 10 * time.Second
	c.Logger = nil
	c.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, _ int) {
		req.Header.Set("User-Agent", UserAgent)
	}

	transport := cleanhttp.DefaultPooledTransport()
	transport.MaxIdleConns = 100
	transport.MaxIdleConnsPerHost = 10
	transport.IdleConnTimeout = 90 * time.Second
	c.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   5 * time.Minute,
	}
	return c
}

// Standard returns a plain *http.Client view of New(), for callers (like
// the HTML scraper) that only accept the stdlib interface.
func Standard() *http.Client {
	return New().StandardClient()
}
