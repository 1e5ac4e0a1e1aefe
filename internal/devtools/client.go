// Package devtools is a thin client for the HTTP side of a browser's
// remote debugging endpoint. It deliberately avoids opening a CDP
// WebSocket session: listing and closing tabs only needs the /json
// family of endpoints.
package devtools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chromedp/cdproto/target"
)

// Tab describes one entry from the /json target list. The endpoint
// returns more fields (websocket URLs, favicon, etc.); only the ones
// the janitor acts on are decoded, and absent fields stay zero.
type Tab struct {
	ID    target.ID `json:"id"`
	Type  string    `json:"type"`
	Title string    `json:"title"`
	URL   string    `json:"url"`
}

// Version describes the browser build behind the endpoint, from /json/version.
type Version struct {
	Browser         string `json:"Browser"`
	ProtocolVersion string `json:"Protocol-Version"`
	UserAgent       string `json:"User-Agent"`
}

// Client issues requests against a remote debugging HTTP endpoint.
type Client struct {
	httpBase string // e.g. "http://127.0.0.1:9222"
	client   *http.Client
}

// NewClient creates a client for the given endpoint base URL. All
// requests share one timeout.
func NewClient(httpBase string, timeout time.Duration) *Client {
	return &Client{
		httpBase: strings.TrimRight(httpBase, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

// ListTabs fetches the open tab list from /json.
func (c *Client) ListTabs(ctx context.Context) ([]Tab, error) {
	body, err := c.get(ctx, "/json")
	if err != nil {
		return nil, err
	}

	var tabs []Tab
	if err := json.Unmarshal(body, &tabs); err != nil {
		return nil, fmt.Errorf("devtools: decode /json: %w", err)
	}
	return tabs, nil
}

// CloseTab asks the browser to close one target via /json/close/{id}.
// Anything other than HTTP 200 is an error.
func (c *Client) CloseTab(ctx context.Context, id target.ID) error {
	if id == "" {
		return fmt.Errorf("devtools: close: empty target id")
	}
	_, err := c.get(ctx, "/json/close/"+string(id))
	return err
}

// BrowserVersion fetches build information from /json/version.
func (c *Client) BrowserVersion(ctx context.Context) (Version, error) {
	body, err := c.get(ctx, "/json/version")
	if err != nil {
		return Version{}, err
	}

	var v Version
	if err := json.Unmarshal(body, &v); err != nil {
		return Version{}, fmt.Errorf("devtools: decode /json/version: %w", err)
	}
	return v, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.httpBase+path, nil)
	if err != nil {
		return nil, fmt.Errorf("devtools: %s: %w", path, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("devtools: %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("devtools: %s: read body: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("devtools: %s: HTTP %d", path, resp.StatusCode)
	}
	return body, nil
}
