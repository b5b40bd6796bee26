package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/config"
)

// Client talks to the hotel REST backend that owns all published roster and
// attendance data. Paths follow the backend's convention of
// /staff/hotel/{hotelSlug}/attendance/... and /staff/{hotelSlug}/...
type Client struct {
	baseURL  string
	apiToken string
	http     *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.Upstream.BaseURL, "/"),
		apiToken: cfg.Upstream.APIToken,
		http: &http.Client{
			Timeout: time.Duration(cfg.Upstream.RequestTimeout) * time.Second,
		},
	}
}

// Error is a non-2xx reply from the backend. Body keeps the raw response so
// validation detail can be surfaced to the caller unchanged.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Token "+c.apiToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &Error{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func attendancePath(hotel, suffix string) string {
	return fmt.Sprintf("/staff/hotel/%s/attendance%s", hotel, suffix)
}
