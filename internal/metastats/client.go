// Package metastats scrapes the per-class deck listings of metastats.net.
//
// The site is navigated in three steps: the deck index links one listing
// page per class, each listing page holds one block per deck, and each deck
// detail page describes its list through x-hearthstone meta tags.
package metastats

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/mrlokans/advisor/internal/deckstring"
)

const (
	DefaultBaseURL = "http://metastats.net"

	indexPath = "/decks/"
)

var (
	// ErrNoDeckID is returned when a listing link carries no numeric deck id.
	ErrNoDeckID = errors.New("metastats: link has no deck id")
	// ErrNoDeckMetadata is returned when a detail page lacks a usable deck code.
	ErrNoDeckMetadata = errors.New("metastats: page has no deck metadata")
)

var deckIDPattern = regexp.MustCompile(`/deck/([0-9]+)/`)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("metastats: unexpected status %d from %s", e.StatusCode, e.URL)
}

// Listing is one deck block of a class listing page.
type Listing struct {
	Href  string
	Stats string
}

// DeckID extracts the numeric deck id from the listing link.
func (l Listing) DeckID() (int, error) {
	return ParseDeckID(l.Href)
}

// DeckPage is the metadata of a deck detail page.
type DeckPage struct {
	Name       string
	HeroCardID string
	Deck       *deckstring.Deck
}

// Client fetches and parses metastats pages.
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
		SetTimeout(opts.Timeout)
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Client{http: client}
}

// ClassPaths returns the listing path of every class linked from the deck index.
func (c *Client) ClassPaths(ctx context.Context) ([]string, error) {
	doc, err := c.document(ctx, indexPath)
	if err != nil {
		return nil, err
	}

	var paths []string
	doc.Find("div#meta-nav ul li a").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href != "" {
			paths = append(paths, href)
		}
	})

	return paths, nil
}

// ClassListings returns the deck blocks of a class listing page. A page
// without deck blocks yields an empty slice.
func (c *Client) ClassListings(ctx context.Context, classPath string) ([]Listing, error) {
	doc, err := c.document(ctx, classPath)
	if err != nil {
		return nil, err
	}

	var listings []Listing
	doc.Find("div.decklist").Each(func(_ int, block *goquery.Selection) {
		listings = append(listings, Listing{
			Href:  strings.TrimSpace(block.ChildrenFiltered("h4").Find("a").First().AttrOr("href", "")),
			Stats: joinStats(block.ChildrenFiltered("div").First().Text()),
		})
	})

	return listings, nil
}

// Deck fetches a deck detail page and decodes its meta tags.
func (c *Client) Deck(ctx context.Context, deckPath string) (*DeckPage, error) {
	doc, err := c.document(ctx, deckPath)
	if err != nil {
		return nil, err
	}
	return ParseDeckPage(doc)
}

// ParseDeckPage reads the x-hearthstone meta tags of a detail page.
func ParseDeckPage(doc *goquery.Document) (*DeckPage, error) {
	code := metaProperty(doc, "x-hearthstone:deck:deckstring")
	if code == "" {
		return nil, ErrNoDeckMetadata
	}

	deck, err := deckstring.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDeckMetadata, err)
	}
	if len(deck.Cards) == 0 {
		return nil, fmt.Errorf("%w: deck code has no cards", ErrNoDeckMetadata)
	}

	return &DeckPage{
		Name:       metaProperty(doc, "x-hearthstone:deck"),
		HeroCardID: metaProperty(doc, "x-hearthstone:deck:hero"),
		Deck:       deck,
	}, nil
}

// ParseDeckID extracts the numeric id from a link like /deck/12345/.
func ParseDeckID(href string) (int, error) {
	m := deckIDPattern.FindStringSubmatch(href)
	if m == nil {
		return 0, ErrNoDeckID
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoDeckID, err)
	}
	return id, nil
}

func (c *Client) document(ctx context.Context, path string) (*goquery.Document, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	if res.IsError() {
		return nil, &StatusError{StatusCode: res.StatusCode(), URL: res.Request.URL}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func metaProperty(doc *goquery.Document, property string) string {
	var value string
	doc.Find("meta").EachWithBreak(func(_ int, m *goquery.Selection) bool {
		if m.AttrOr("property", "") == property {
			value = strings.TrimSpace(m.AttrOr("content", ""))
			return false
		}
		return true
	})
	return value
}

// joinStats flattens the multi-line stats blob into "a, b, c".
func joinStats(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, ", ")
}

// URL returns the absolute URL of a site path.
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.http.BaseURL + "/" + strings.TrimLeft(path, "/")
}
