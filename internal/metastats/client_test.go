package metastats

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/advisor/internal/deckstring"
)

const indexHTML = `<html><body>
<div id="meta-nav"><ul>
	<li><a href="/decks/warrior/">Warrior</a></li>
	<li><a href="/decks/mage/">Mage</a></li>
</ul></div>
</body></html>`

const warriorHTML = `<html><body>
<div class="decklist">
	<h4><a href="/deck/1234/control-warrior/">Control Warrior</a></h4>
	<div>
		Games: 1200
		Win rate: 54%
	</div>
</div>
<div class="decklist">
	<h4><a href="/guides/warrior/">Guide</a></h4>
	<div>n/a</div>
</div>
</body></html>`

func deckHTML(name, hero, code string) string {
	return fmt.Sprintf(`<html><head>
<meta property="x-hearthstone:deck" content="%s">
<meta property="x-hearthstone:deck:hero" content="%s">
<meta property="x-hearthstone:deck:deckstring" content="%s">
</head><body></body></html>`, name, hero, code)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	code := deckstring.Encode(&deckstring.Deck{
		Format: deckstring.FormatStandard,
		Heroes: []int{7},
		Cards:  []deckstring.Card{{DbfID: 100, Count: 2}, {DbfID: 200, Count: 1}},
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/decks/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(indexHTML))
	})
	mux.HandleFunc("/decks/warrior/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(warriorHTML))
	})
	mux.HandleFunc("/decks/mage/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	})
	mux.HandleFunc("/deck/1234/control-warrior/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(deckHTML("Control Warrior - MetaStats ", "HERO_01", code)))
	})
	mux.HandleFunc("/deck/404/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClient_ClassPaths(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(Options{BaseURL: server.URL + "/"})

	paths, err := client.ClassPaths(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"/decks/warrior/", "/decks/mage/"}, paths)
}

func TestClient_ClassListings(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(Options{BaseURL: server.URL})

	listings, err := client.ClassListings(context.Background(), "/decks/warrior/")

	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "/deck/1234/control-warrior/", listings[0].Href)
	assert.Equal(t, "Games: 1200, Win rate: 54%", listings[0].Stats)

	id, err := listings[0].DeckID()
	require.NoError(t, err)
	assert.Equal(t, 1234, id)

	_, err = listings[1].DeckID()
	assert.ErrorIs(t, err, ErrNoDeckID)
}

func TestClient_ClassListings_Empty(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(Options{BaseURL: server.URL})

	listings, err := client.ClassListings(context.Background(), "/decks/mage/")

	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestClient_Deck(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(Options{BaseURL: server.URL})

	page, err := client.Deck(context.Background(), "/deck/1234/control-warrior/")

	require.NoError(t, err)
	assert.Equal(t, "Control Warrior - MetaStats", page.Name)
	assert.Equal(t, "HERO_01", page.HeroCardID)
	assert.Equal(t, []deckstring.Card{{DbfID: 100, Count: 2}, {DbfID: 200, Count: 1}}, page.Deck.Cards)
}

func TestClient_Deck_NotFound(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(Options{BaseURL: server.URL})

	_, err := client.Deck(context.Background(), "/deck/404/")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestParseDeckPage_MissingMetadata(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><head><meta property="x-hearthstone:deck" content="x"></head></html>`))
	require.NoError(t, err)

	_, err = ParseDeckPage(doc)
	assert.ErrorIs(t, err, ErrNoDeckMetadata)

	doc, err = goquery.NewDocumentFromReader(strings.NewReader(deckHTML("x", "HERO_01", "not-a-code")))
	require.NoError(t, err)

	_, err = ParseDeckPage(doc)
	assert.ErrorIs(t, err, ErrNoDeckMetadata)
}

func TestParseDeckID(t *testing.T) {
	id, err := ParseDeckID("http://metastats.net/deck/98765/some-deck/")
	require.NoError(t, err)
	assert.Equal(t, 98765, id)

	_, err = ParseDeckID("/deck/abc/")
	assert.ErrorIs(t, err, ErrNoDeckID)
}
