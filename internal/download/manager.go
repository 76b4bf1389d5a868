package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/quasar/mc-installer/internal/events"
	"github.com/quasar/mc-installer/internal/httpclient"
)

// Item is one file to fetch as part of a batch, grounded in the teacher's
// download.Item with a Compressed flag added for JVM runtime LZMA payloads.
type Item struct {
	URL        string
	Path       string
	SHA1       string
	Size       int64
	Compressed bool
}

// Manager fans a batch of Items out across a bounded worker pool, the same
// pattern as the teacher's internal/download.Manager, generalized to drive
// the File primitive and report through an events.Sink.
type Manager struct {
	client      *retryablehttp.Client
	workerCount int

	mu              sync.Mutex
	downloadedBytes int64
	totalBytes      int64
}

// NewManager builds a Manager with workerCount concurrent downloaders
// (defaulting to 8, matching the teacher's default).
func NewManager(workerCount int) *Manager {
	if workerCount <= 0 {
		workerCount = 8
	}
	return &Manager{client: httpclient.New(), workerCount: workerCount}
}

// Client exposes the Manager's shared HTTP client for callers that need to
// issue a one-off request (e.g. fetching an asset index) outside the
// worker pool.
func (m *Manager) Client() *retryablehttp.Client {
	return m.client
}

// Result summarizes a completed batch.
type Result struct {
	Completed int
	Failed    int
	Errors    []error
}

// Download fetches every item, honoring ctx cancellation, and reports
// events.Progress/events.Status through sink as it goes.
func (m *Manager) Download(ctx context.Context, items []Item, sink events.Sink) (*Result, error) {
	if sink == nil {
		sink = events.Discard
	}
	if len(items) == 0 {
		return &Result{}, nil
	}

	var total int64
	for _, it := range items {
		total += it.Size
	}
	m.mu.Lock()
	m.totalBytes = total
	m.downloadedBytes = 0
	m.mu.Unlock()

	work := make(chan Item, len(items))
	for _, it := range items {
		work <- it
	}
	close(work)

	var (
		completed int64
		failed    int64
		errMu     sync.Mutex
		errs      []error
	)

	done := make(chan struct{})
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				cur := atomic.LoadInt64(&completed)
				sink.Emit(events.Progress(int(cur), len(items)))
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < m.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range work {
				select {
				case <-ctx.Done():
					return
				default:
				}

				// An existing file whose hash already matches is kept as-is.
				if item.SHA1 != "" {
					if sum, err := hashFile(item.Path); err == nil && sum == item.SHA1 {
						sink.Emit(events.Download(events.StateExists, item.URL))
						atomic.AddInt64(&completed, 1)
						atomic.AddInt64(&m.downloadedBytes, item.Size)
						continue
					}
				}

				sink.Emit(events.Status("downloading " + filepath.Base(item.Path)))
				state, err := File(ctx, m.client, sink, item.URL, item.Path, item.SHA1, item.Compressed)
				if err == nil && item.SHA1 != "" && state != events.StateDownloadChecked {
					err = fmt.Errorf("sha1 mismatch")
				}
				if err != nil {
					atomic.AddInt64(&failed, 1)
					errMu.Lock()
					errs = append(errs, fmt.Errorf("%s: %w", item.URL, err))
					errMu.Unlock()
					continue
				}
				atomic.AddInt64(&completed, 1)
				atomic.AddInt64(&m.downloadedBytes, item.Size)
			}
		}()
	}

	wg.Wait()
	close(done)
	<-progressDone
	sink.Emit(events.Progress(len(items), len(items)))

	return &Result{
		Completed: int(completed),
		Failed:    int(failed),
		Errors:    errs,
	}, nil
}

// FormatSpeed renders a bytes-per-second rate for human-readable logging.
func FormatSpeed(bytesPerSec float64) string {
	return humanize.Bytes(uint64(bytesPerSec)) + "/s"
}
