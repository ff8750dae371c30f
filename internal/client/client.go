package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/serroba/scoreboard/internal/leaderboard"
	"github.com/serroba/scoreboard/internal/live"
)

var ErrEmptyBaseURL = errors.New("baseURL is required")

// Option configures the Client.
type Option func(*Client)

// Client talks to the scoreboard HTTP API and keeps a local board for the times it cannot.
type Client struct {
	baseURL    string
	wsURL      string
	httpClient *http.Client
	headers    http.Header
	local      *leaderboard.LocalBoard
	sanitizer  *leaderboard.Sanitizer
}

// NewClient constructs a client for the server at baseURL, e.g. http://localhost:3000.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrEmptyBaseURL
	}

	baseURL = strings.TrimSuffix(baseURL, "/")

	c := &Client{
		baseURL:    baseURL,
		wsURL:      deriveWSURL(baseURL),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		headers:    make(http.Header),
		local:      leaderboard.NewLocalBoard(),
		sanitizer:  leaderboard.NewSanitizer(uuid.NewString, nil),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithHeader sets a header sent with every request.
func WithHeader(k, v string) Option {
	return func(c *Client) {
		if k != "" {
			c.headers.Set(k, v)
		}
	}
}

// WithLocalBoard replaces the fallback board, e.g. to share it between clients.
func WithLocalBoard(b *leaderboard.LocalBoard) Option {
	return func(c *Client) {
		if b != nil {
			c.local = b
		}
	}
}

// Local returns the fallback board.
func (c *Client) Local() *leaderboard.LocalBoard {
	return c.local
}

// Submit posts s. If the server is unreachable or fails with a 5xx, the entry is kept on
// the local board instead and the result is marked Local. Refusals (4xx) are returned
// as *APIError and nothing is kept.
func (c *Client) Submit(ctx context.Context, s Submission) (SubmitResult, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return SubmitResult{}, err
	}

	var res SubmitResult

	serverErr := c.do(ctx, http.MethodPost, "/api/scores", bytes.NewReader(body), &res)
	if serverErr == nil {
		return res, nil
	}

	var apiErr *APIError
	if (errors.As(serverErr, &apiErr) && apiErr.Status < http.StatusInternalServerError) || ctx.Err() != nil {
		return SubmitResult{}, serverErr
	}

	entry, err := c.sanitizer.Sanitize(leaderboard.ScoreSubmission{Name: s.Name, Score: s.Score, Level: s.Level})
	if err != nil {
		return SubmitResult{}, errors.Join(serverErr, err)
	}

	rank := c.local.Add(entry)

	return SubmitResult{
		Entry:       entry,
		Position:    rank,
		Ranked:      rank > 0,
		TotalScores: len(c.local.Entries()),
		Message:     "Score saved locally",
		Local:       true,
		Fallback:    serverErr,
	}, nil
}

// Top returns the best limit entries. When the server cannot be reached the local board
// is served instead; a server that answers with an error is reported as such.
func (c *Client) Top(ctx context.Context, limit int) (TopResult, error) {
	var res TopResult

	err := c.do(ctx, http.MethodGet, "/api/scores/top/"+strconv.Itoa(limit), nil, &res)
	if err == nil {
		return res, nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) || ctx.Err() != nil {
		return TopResult{}, err
	}

	if limit == 0 {
		limit = leaderboard.DefaultTopLimit
	}

	limit = leaderboard.ClampLimit(limit)
	scores := leaderboard.Top(c.local.Entries(), limit)

	return TopResult{Limit: limit, Count: len(scores), Scores: scores, Local: true}, nil
}

// Player fetches a player's best entries.
func (c *Client) Player(ctx context.Context, name string) (PlayerScores, error) {
	if strings.TrimSpace(name) == "" {
		return PlayerScores{}, leaderboard.ErrEmptyName
	}

	var res PlayerScores
	if err := c.do(ctx, http.MethodGet, "/api/scores/player/"+url.PathEscape(name), nil, &res); err != nil {
		return PlayerScores{}, err
	}

	return res, nil
}

// Stats fetches the aggregate statistics.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var res Stats
	if err := c.do(ctx, http.MethodGet, "/api/scores/stats", nil, &res); err != nil {
		return Stats{}, err
	}

	return res, nil
}

// Health probes /health.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var res HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &res); err != nil {
		return HealthStatus{}, err
	}

	return res, nil
}

// Live connects to the live feed and emits every stored score.
// The returned channel closes when ctx is done or the connection drops.
func (c *Client) Live(ctx context.Context) (<-chan live.Update, error) {
	if c.wsURL == "" {
		return nil, fmt.Errorf("cannot derive a websocket url from %q", c.baseURL)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}

	conn, resp, err := dialer.DialContext(ctx, c.wsURL, c.headers)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	if err != nil {
		return nil, err
	}

	out := make(chan live.Update, 32)
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	go func() {
		defer close(out)
		defer close(done)
		defer conn.Close()

		for {
			var u live.Update
			if err := conn.ReadJSON(&u); err != nil {
				return
			}

			select {
			case out <- u:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("Accept", "application/json")
	c.applyHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeJSON(resp, out)
}

func (c *Client) applyHeaders(r *http.Request) {
	for k, vals := range c.headers {
		for _, v := range vals {
			r.Header.Add(k, v)
		}
	}
}

func decodeJSON(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeProblem(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func decodeProblem(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}

	var p problem
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return apiErr
	}

	if p.Title != "" {
		apiErr.Title = p.Title
	}

	apiErr.Detail = p.Detail

	if len(p.Errors) > 0 {
		if kind, ok := p.Errors[0].Value.(string); ok {
			apiErr.Kind = leaderboard.Kind(kind)
		}
	}

	return apiErr
}

func deriveWSURL(httpBase string) string {
	u, err := url.Parse(httpBase)
	if err != nil {
		return ""
	}

	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	default:
		return ""
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + live.Path

	return u.String()
}
