package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var defaultHTTPClient = &http.Client{Timeout: 60 * time.Second}

// Open returns a reader for the feed at source, which is either an http(s)
// URL or a local file path. The caller closes it.
func Open(ctx context.Context, source string, timeout time.Duration) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open feed %s: %w", source, err)
		}
		return f, nil
	}

	client := defaultHTTPClient
	if timeout > 0 && timeout != client.Timeout {
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", source, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/xml, text/xml")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", source, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("feed status %d for %s", resp.StatusCode, source)
	}

	return resp.Body, nil
}
