package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// RemoteStore talks to a server's /api/v1/leaderboard endpoints.
type RemoteStore struct {
	baseURL    string
	adminName  string
	adminToken string
	httpClient *http.Client
}

func NewRemoteStore(baseURL string, timeout time.Duration) *RemoteStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RemoteStore{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// WithAdmin sets the credentials Clear sends.
func (r *RemoteStore) WithAdmin(name, token string) *RemoteStore {
	r.adminName = name
	r.adminToken = token
	return r
}

type submitRequest struct {
	Player    string `json:"player,omitempty"`
	Level     int    `json:"level"`
	ShotsUsed int    `json:"shots_used"`
}

type topResponse struct {
	Scores []Score `json:"scores"`
}

func (r *RemoteStore) Save(ctx context.Context, s Score) error {
	body, err := json.Marshal(submitRequest{Player: s.Player, Level: s.Level, ShotsUsed: s.ShotsUsed})
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/v1/leaderboard", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return r.do(req, nil)
}

func (r *RemoteStore) Top(ctx context.Context, n int) ([]Score, error) {
	q := url.Values{"limit": {strconv.Itoa(n)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/v1/leaderboard?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	var resp topResponse
	if err := r.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Scores, nil
}

func (r *RemoteStore) Clear(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, r.baseURL+"/api/v1/leaderboard", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if r.adminName != "" {
		req.Header.Set("X-Admin-Name", r.adminName)
	}
	req.Header.Set("X-Admin-Token", r.adminToken)
	return r.do(req, nil)
}

func (r *RemoteStore) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("leaderboard %s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
