// Package hsreplay fetches the archetype directory and the ranked ladder deck
// lists published by HSReplay.
package hsreplay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL = "https://hsreplay.net"

	archetypesPath = "/api/v1/archetypes/"
	decksPath      = "/analytics/query/list_decks_by_win_rate_v2/"
)

// Game types accepted by the ladder endpoint.
const (
	GameTypeRankedStandard = "RANKED_STANDARD"
	GameTypeRankedWild     = "RANKED_WILD"
)

// Archetype is an entry of the archetype directory.
type Archetype struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	PlayerClass int    `json:"player_class"`
	URL         string `json:"url"`
}

// DeckSummary is one ladder deck as returned by the win rate query.
type DeckSummary struct {
	ArchetypeID int     `json:"archetype_id"`
	DeckList    string  `json:"deck_list"`
	TotalGames  int     `json:"total_games"`
	WinRate     float64 `json:"win_rate"`
}

// DecksResponse is the envelope of the win rate query. Data is keyed by the
// upper-case class name.
type DecksResponse struct {
	Series struct {
		Data map[string][]DeckSummary `json:"data"`
	} `json:"series"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("hsreplay: unexpected status %d from %s", e.StatusCode, e.URL)
}

// Client talks to the HSReplay API.
type Client struct {
	http *resty.Client
}

// Options tune the underlying HTTP client. Zero values fall back to defaults.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// NewClient creates a client for the given options.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "application/json")
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Client{http: client}
}

// Archetypes fetches the archetype directory keyed by archetype id.
func (c *Client) Archetypes(ctx context.Context) (map[int]Archetype, error) {
	var list []Archetype
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&list).
		Get(archetypesPath)
	if err != nil {
		return nil, fmt.Errorf("fetch archetypes: %w", err)
	}
	if res.IsError() {
		return nil, &StatusError{StatusCode: res.StatusCode(), URL: res.Request.URL}
	}

	archetypes := make(map[int]Archetype, len(list))
	for _, a := range list {
		archetypes[a.ID] = a
	}
	return archetypes, nil
}

// Decks fetches the ladder decks for a game type.
func (c *Client) Decks(ctx context.Context, gameType string) (map[string][]DeckSummary, error) {
	var payload DecksResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("GameType", gameType).
		SetResult(&payload).
		Get(decksPath)
	if err != nil {
		return nil, fmt.Errorf("fetch %s decks: %w", gameType, err)
	}
	if res.IsError() {
		return nil, &StatusError{StatusCode: res.StatusCode(), URL: res.Request.URL}
	}
	if payload.Series.Data == nil {
		return nil, fmt.Errorf("fetch %s decks: response has no series data", gameType)
	}

	return payload.Series.Data, nil
}
