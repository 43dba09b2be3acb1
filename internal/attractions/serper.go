// README: Serper (Google search) client; GET with X-API-KEY and q, organic results only.
package attractions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// ErrUpstreamStatus wraps every non-2xx answer from the search endpoint.
var ErrUpstreamStatus = errors.New("search endpoint returned an error status")

// StatusError carries the HTTP status of a failed search call.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrUpstreamStatus.Error(), e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *StatusError) Unwrap() error { return ErrUpstreamStatus }

// Organic items are decoded field by field so one odd value degrades to its fallback
// instead of failing the whole lookup.
type serperResponse struct {
	Organic []map[string]json.RawMessage `json:"organic"`
}

// SerperClient queries a Serper-compatible search endpoint.
type SerperClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewSerperClient builds a client. A nil httpClient uses http.DefaultClient.
func NewSerperClient(endpoint, apiKey string, httpClient *http.Client) *SerperClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SerperClient{endpoint: endpoint, apiKey: apiKey, http: httpClient}
}

// Search issues one GET and returns the organic results as sent.
func (c *SerperClient) Search(ctx context.Context, query string) ([]Attraction, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("serper: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("serper: build request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serper: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	var sr serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("serper: decode response: %w", err)
	}
	out := make([]Attraction, 0, len(sr.Organic))
	for _, item := range sr.Organic {
		out = append(out, Attraction{
			Title:   fieldText(item["title"]),
			Link:    fieldText(item["link"]),
			Snippet: fieldText(item["snippet"]),
		})
	}
	return out, nil
}

// fieldText returns strings unquoted, absent or null as "", and any other value as its
// compact JSON text.
func fieldText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
