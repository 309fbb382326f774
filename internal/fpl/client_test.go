package fpl

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.URL, server.URL, 2*time.Second, 100, nil)
	return client, server
}

func TestFetchEntryDecodesPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entry/42/", r.URL.Path)
		w.Write([]byte(`{
			"id": 42,
			"player_first_name": "Jurgen",
			"player_last_name": "Klopp",
			"name": "Heavy Metal FC",
			"summary_overall_points": 1200,
			"summary_overall_rank": 54321
		}`))
	}))

	entry, err := client.FetchEntry(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, entry.ID)
	assert.Equal(t, "Jurgen", entry.FirstName)
	assert.Equal(t, "Heavy Metal FC", entry.TeamName)
	assert.Equal(t, 1200, entry.OverallPoints)
	assert.Equal(t, 54321, entry.OverallRank)
}

func TestFetchPicksDecodesChipAndSquad(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entry/7/event/3/picks/", r.URL.Path)
		w.Write([]byte(`{
			"active_chip": "bboost",
			"picks": [
				{"element": 100, "position": 1, "is_captain": false},
				{"element": 200, "position": 12, "is_captain": true}
			]
		}`))
	}))

	picks, err := client.FetchPicks(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Equal(t, "bboost", picks.ActiveChip)
	require.Len(t, picks.Picks, 2)
	assert.Equal(t, 200, picks.Picks[1].Element)
	assert.True(t, picks.Picks[1].IsCaptain)
}

func TestNon2xxReturnsUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	_, err := client.FetchEntry(context.Background(), 1)
	require.Error(t, err)

	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "entry", ue.Endpoint)
	assert.Equal(t, http.StatusNotFound, ue.Status)
}

func TestMalformedJSONReturnsUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"events": [`))
	}))

	_, err := client.FetchBootstrap(context.Background())
	require.Error(t, err)

	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "bootstrap-static", ue.Endpoint)
}

func TestGetRawRelaysVerbatim(t *testing.T) {
	payload := `{"anything": ["upstream", "sends"]}`
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bootstrap-static/", r.URL.Path)
		w.Write([]byte(payload))
	}))

	body, err := client.GetRaw(context.Background(), "bootstrap-static", "/bootstrap-static/")
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))
}

func TestCircuitBreakerOpensAfterSustainedFailures(t *testing.T) {
	var hits atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "boom", http.StatusBadGateway)
	}))

	for i := 0; i < 5; i++ {
		_, err := client.FetchEntry(context.Background(), 1)
		require.Error(t, err)
	}
	// Once the breaker opens, calls fail without reaching upstream.
	assert.Less(t, hits.Load(), int64(5))
}

func TestFetchPlayerImage(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/p1234.png" {
			w.Header().Set("Content-Type", "image/png")
			w.Write(png)
			return
		}
		http.NotFound(w, r)
	}))

	data, contentType, err := client.FetchPlayerImage(context.Background(), 1234)
	require.NoError(t, err)
	assert.Equal(t, png, data)
	assert.Equal(t, "image/png", contentType)

	_, _, err = client.FetchPlayerImage(context.Background(), 9999)
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusNotFound, ue.Status)
}

func TestContextCancellationAbandonsCall(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.FetchEntry(ctx, 1)
	require.Error(t, err)
}
