// Package report talks to the remote stats service: it submits finished
// games and fetches the player's per-mode records.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/04pril/minesweeper-miniapp/internal/game"
)

const defaultTimeout = 10 * time.Second

var (
	ErrNoUser       = errors.New("no user identity")
	ErrModeMismatch = errors.New("grid does not match game mode")
)

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Code, e.Body)
}

// RejectedError is returned when the service refuses a result, for example
// an invalid initData signature or an implausible time.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	return "result rejected: " + e.Reason
}

// Payload is the body of POST /api/game/result.
type Payload struct {
	InitData  string `json:"initData"`
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
	Score     int    `json:"score"`
	IsWin     bool   `json:"is_win"`
	GameMode  string `json:"game_mode"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	Mines     int    `json:"mines"`
}

// ModeStats is the player's record for one mode. BestTime is nil until the
// first win.
type ModeStats struct {
	BestTime *int `json:"best_time"`
	Wins     int  `json:"wins"`
}

// Stats is the body of GET /api/stats/{user_id}.
type Stats struct {
	UserID        int64                `json:"user_id"`
	TotalGames    int                  `json:"total_games"`
	CurrentStreak int                  `json:"current_streak"`
	BestStreak    int                  `json:"best_streak"`
	Modes         map[string]ModeStats `json:"modes"`
	Error         string               `json:"error,omitempty"`
}

// LeaderboardEntry is one player's best winning time in a mode.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	BestTime int    `json:"best_time"`
}

// Leaderboard is the body of GET /api/leaderboard/{mode}.
type Leaderboard struct {
	Mode    string             `json:"mode"`
	Entries []LeaderboardEntry `json:"leaderboard"`
	Error   string             `json:"error,omitempty"`
}

// Client is an HTTP client for the stats service.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient returns a client for the service rooted at baseURL. A nil
// httpClient gets a default with a 10 second timeout.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{base: u, http: httpClient}, nil
}

func (c *Client) endpoint(parts ...string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.Join(parts, "/")
	return u.String()
}

// SubmitResult posts one finished game.
func (c *Client) SubmitResult(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("api", "game", "result"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build result request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit result: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return statusError("submit result", resp)
	}

	// the service answers 200 and reports rejections in the body
	var ack struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err == nil && ack.Status == "error" {
		return &RejectedError{Reason: ack.Message}
	}
	return nil
}

// FetchStats returns the player's records.
func (c *Client) FetchStats(ctx context.Context, userID int64) (*Stats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("api", "stats", strconv.FormatInt(userID, 10)), nil)
	if err != nil {
		return nil, fmt.Errorf("build stats request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, statusError("fetch stats", resp)
	}

	var st Stats
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	// the service reports unknown users in-band
	if st.Error != "" {
		return nil, fmt.Errorf("fetch stats: %s", st.Error)
	}
	if st.Modes == nil {
		st.Modes = map[string]ModeStats{}
	}
	return &st, nil
}

// FetchLeaderboard returns the fastest winners of mode, fastest first and
// ranked from 1.
func (c *Client) FetchLeaderboard(ctx context.Context, mode string) (*Leaderboard, error) {
	if _, ok := game.ModeByName(mode); !ok {
		return nil, fmt.Errorf("leaderboard: unknown mode %q", mode)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("api", "leaderboard", mode), nil)
	if err != nil {
		return nil, fmt.Errorf("build leaderboard request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, statusError("fetch leaderboard", resp)
	}

	var lb Leaderboard
	if err := json.NewDecoder(resp.Body).Decode(&lb); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	if lb.Error != "" {
		return nil, fmt.Errorf("fetch leaderboard: %s", lb.Error)
	}
	if lb.Mode == "" {
		lb.Mode = mode
	}

	// the service does not promise an order
	sort.SliceStable(lb.Entries, func(i, j int) bool {
		return lb.Entries[i].BestTime < lb.Entries[j].BestTime
	})
	for i := range lb.Entries {
		lb.Entries[i].Rank = i + 1
	}
	return &lb, nil
}

func statusError(op string, resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &StatusError{Op: op, Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}
