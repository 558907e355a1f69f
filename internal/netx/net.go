// Package netx holds small HTTP helpers that sit outside the API client.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Download fetches url with a plain GET and streams the body into w.
// Document file paths returned by the vault API are directly downloadable,
// so no session header is attached: the URL may point at a third-party host.
func Download(ctx context.Context, client *http.Client, url string, w io.Writer) (int64, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	return io.Copy(w, resp.Body)
}
