package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBadge(t *testing.T) {
	b, err := parseBadge("Lap | Finish a lap | 🏁")
	require.NoError(t, err)
	assert.Equal(t, Badge{Name: "Lap", Description: "Finish a lap", Icon: "🏁"}, b)

	_, err = parseBadge("Lap|missing icon")
	assert.Error(t, err)
}

func TestCoins(t *testing.T) {
	assert.Equal(t, "1 coin", coins(1))
	assert.Equal(t, "100 coins", coins(100))
	assert.Equal(t, "1,000,000,000 coins", coins(1_000_000_000))
	assert.Equal(t, "-120 coins", coins(-120))
}

func TestOutputTextUser(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput("text", &buf, &buf, true)

	o.Print(Session{User: &User{Username: "admin", Currency: 1_000_000_000, IsAdmin: true}})

	assert.Equal(t, "User: admin [admin]\nBalance: 1,000,000,000 coins\nItems: none\n", buf.String())
}

func TestOutputTextLoggedOut(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf, &buf, true).Print(Session{})

	assert.Equal(t, "Not logged in\n", buf.String())
}

func TestOutputTextGame(t *testing.T) {
	var buf bytes.Buffer
	o := NewOutput("text", &buf, &buf, true)

	o.Print(Game{
		ID:        "1704110400000",
		Name:      "Kart",
		Creator:   "bob",
		CreatedAt: time.Now().Add(-3 * time.Hour),
		Likes:     2,
		MyVote:    "like",
		Badges:    []Badge{{ID: "b1", Name: "Lap", Description: "Finish a lap", Icon: "🏁"}},
	})

	text := buf.String()
	assert.Contains(t, text, "Kart (1704110400000)")
	assert.Contains(t, text, "By bob, published 3 hours ago")
	assert.Contains(t, text, "👍 2  👎 0  (you voted like)")
	assert.Contains(t, text, "🏁 Lap - Finish a lap [b1]")
}

func TestOutputTextItems(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("text", &buf, &buf, true).Print(ItemList{Items: []Item{
		{ID: "teapot", Name: "Teapot", Price: 10, Icon: "🫖", Owned: true},
	}})

	assert.Equal(t, "🫖 Teapot - 10 coins [teapot] owned\n", buf.String())
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	NewOutput("json", &buf, &buf, true).Print(HealthResult{Status: "ok"})

	assert.JSONEq(t, `{"status":"ok"}`, buf.String())
}

func TestOutputErrorJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	NewOutput("json", &stdout, &stderr, true).PrintError(assert.AnError)

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `"message"`)
}

func TestClientDecodesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":"INSUFFICIENT_FUNDS","message":"Not enough coins"}}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Post(context.Background(), "/api/v1/market/items/teapot/purchase", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "Not enough coins (INSUFFICIENT_FUNDS)", err.Error())
}

func TestClientNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL+"/").Get(context.Background(), "/api/v1/health", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestClientVerboseLogsRequestID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-ID", "req-1")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	var log bytes.Buffer
	c := NewClient(srv.URL)
	c.SetVerbose(&log)

	var result HealthResult
	require.NoError(t, c.Get(context.Background(), "/api/v1/health", &result))
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "GET /api/v1/health -> 200 (request req-1)\n", log.String())
}
