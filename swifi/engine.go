package swifi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// ProgressSink receives one notification per transferred chunk during a
// measurement. Implementations must be cheap and safe to invoke repeatedly;
// a notification carries no data and implies no ordering.
type ProgressSink interface {
	Notify()
}

// ProgressFunc adapts an ordinary function to a ProgressSink.
type ProgressFunc func()

func (f ProgressFunc) Notify() { f() }

// Engine performs one transfer against a server and reports the raw
// throughput in bits per second.
type Engine interface {
	Download(ctx context.Context, server *Server, sink ProgressSink) (float64, error)
	Upload(ctx context.Context, server *Server, sink ProgressSink) (float64, error)
}

var (
	dlSizes = [...]int{350, 500, 750, 1000, 1500, 2000, 2500, 3000, 3500, 4000}
	ulSizes = [...]int{100, 300, 500, 800, 1000, 1500, 2500, 3000, 3500, 4000} // kB
)

// HTTPEngine measures throughput with sequential HTTP transfers against a
// speedtest.net-protocol server, walking a fixed ladder of payload sizes.
type HTTPEngine struct {
	doer    *http.Client
	dlSizes []int
	ulSizes []int
}

// NewHTTPEngine creates an engine that issues its requests with doer.
func NewHTTPEngine(doer *http.Client) *HTTPEngine {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &HTTPEngine{
		doer:    doer,
		dlSizes: dlSizes[:],
		ulSizes: ulSizes[:],
	}
}

// Download fetches generated images of increasing size from the server and
// reports the achieved rate in bits per second.
func (e *HTTPEngine) Download(ctx context.Context, server *Server, sink ProgressSink) (float64, error) {
	var totalBytes int64
	var totalTime time.Duration

	for _, size := range e.dlSizes {
		dlURL, err := downloadURL(server.URL, size)
		if err != nil {
			return 0, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, dlURL, nil)
		if err != nil {
			return 0, err
		}

		start := time.Now()
		resp, err := e.doer.Do(req)
		if err != nil {
			return 0, err
		}
		n, err := io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if err != nil {
			return 0, err
		}
		if resp.StatusCode != http.StatusOK {
			return 0, fmt.Errorf("unexpected status %s", resp.Status)
		}

		totalTime += time.Since(start)
		totalBytes += n
		notify(sink)
	}

	return bitsPerSecond(totalBytes, totalTime), nil
}

// Upload posts form-encoded payloads of increasing size to the server and
// reports the achieved rate in bits per second.
func (e *HTTPEngine) Upload(ctx context.Context, server *Server, sink ProgressSink) (float64, error) {
	var totalBytes int64
	var totalTime time.Duration

	for _, size := range e.ulSizes {
		v := url.Values{}
		v.Add("content", strings.Repeat("0", size*1000-160))
		payload := v.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, server.URL, strings.NewReader(payload))
		if err != nil {
			return 0, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		start := time.Now()
		resp, err := e.doer.Do(req)
		if err != nil {
			return 0, err
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return 0, fmt.Errorf("unexpected status %s", resp.Status)
		}

		totalTime += time.Since(start)
		totalBytes += int64(len(payload))
		notify(sink)
	}

	return bitsPerSecond(totalBytes, totalTime), nil
}

// downloadURL replaces the upload endpoint path with the generated image for
// the given size, e.g. .../speedtest/random350x350.jpg.
func downloadURL(serverURL string, size int) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", err
	}
	u.Path = path.Dir(u.Path)
	return u.JoinPath(fmt.Sprintf("random%dx%d.jpg", size, size)).String(), nil
}

func bitsPerSecond(totalBytes int64, totalTime time.Duration) float64 {
	seconds := totalTime.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(totalBytes) * 8 / seconds
}

func notify(sink ProgressSink) {
	if sink != nil {
		sink.Notify()
	}
}
