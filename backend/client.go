// Package backend talks to the trip planning API that generates itineraries.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PlanRequest is the structured planning form.
type PlanRequest struct {
	Origin             string  `json:"origin"`
	Destination        string  `json:"destination"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	PartySize          int     `json:"party_size"`
	Budget             float64 `json:"budget"`
	PreferredStyleText string  `json:"preferred_style_text,omitempty"`
}

// StatusError is returned for non-2xx backend answers.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Body)
}

// Client calls the planning backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL. A nil httpClient gets a 60s timeout,
// plan generation is slow.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Plan asks the backend for a new trip plan. The response shape is owned by
// the backend and returned undecoded into types.
func (c *Client) Plan(ctx context.Context, req PlanRequest) (map[string]any, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode plan request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/trip/plan", "", bytes.NewReader(body))
}

// Saved fetches a trip saved on the backend.
func (c *Client) Saved(ctx context.Context, token, id string) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, "/api/trip/saved/"+url.PathEscape(id), token, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+strings.TrimPrefix(token, "Bearer "))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}
