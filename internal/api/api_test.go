package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fplhub/fpl-analytics/internal/analysis"
	"github.com/fplhub/fpl-analytics/internal/api"
	"github.com/fplhub/fpl-analytics/internal/api/handler"
	"github.com/fplhub/fpl-analytics/internal/config"
	"github.com/fplhub/fpl-analytics/internal/fpl"
)

// stubUpstream is a minimal fake FPL API: one manager (id 7), two players,
// one gameweek.
func stubUpstream(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()

	writeJSON := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/bootstrap-static/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"events": [{"id": 1, "is_current": true}],
			"teams": [{"id": 1, "name": "Arsenal", "short_name": "ARS"}],
			"elements": [
				{"id": 10, "code": 1010, "web_name": "Saka", "team": 1, "element_type": 3, "total_points": 40},
				{"id": 11, "code": 1011, "web_name": "Raya", "team": 1, "element_type": 1, "total_points": 20}
			]
		}`)
	})
	mux.HandleFunc("/entry/7/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"id": 7,
			"player_first_name": "Mikel",
			"player_last_name": "Arteta",
			"name": "Process FC",
			"summary_overall_points": 8,
			"summary_overall_rank": 1000
		}`)
	})
	mux.HandleFunc("/entry/7/history/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"current": [{"event": 1, "overall_rank": 1000}],
			"past": [{"season_name": "2024/25", "rank": 5000}],
			"chips": []
		}`)
	})
	mux.HandleFunc("/entry/7/event/1/picks/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"active_chip": null,
			"picks": [
				{"element": 10, "position": 1, "is_captain": true},
				{"element": 11, "position": 12, "is_captain": false}
			]
		}`)
	})
	mux.HandleFunc("/element-summary/10/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"history": [{"round": 1, "total_points": 4}], "fixtures": []}`)
	})
	mux.HandleFunc("/element-summary/11/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"history": [{"round": 1, "total_points": 3}], "fixtures": []}`)
	})
	mux.HandleFunc("/leagues-classic/314/standings/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"league": {"id": 314, "name": "Overall"},
			"standings": {"results": [{"entry": 1, "rank": 1, "total": 50}]}
		}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestRouter(t *testing.T, hits *atomic.Int64) http.Handler {
	t.Helper()
	upstream := stubUpstream(t, hits)

	cfg := &config.Config{
		FPLBaseURL:       upstream.URL,
		ImageBaseURL:     upstream.URL,
		UpstreamTimeout:  2 * time.Second,
		UpstreamRPS:      100,
		LeagueID:         314,
		FetchBatchSize:   5,
		BootstrapTTL:     time.Hour,
		CORSAllowOrigins: []string{"*"},
	}
	client := fpl.NewClient(cfg.FPLBaseURL, cfg.ImageBaseURL, cfg.UpstreamTimeout, cfg.UpstreamRPS, nil)
	cache := fpl.NewBootstrapCache(client, cfg.BootstrapTTL, nil)
	analyzer := analysis.New(client, cache, cfg.LeagueID, cfg.FetchBatchSize, nil)
	h := handler.New(client, cache, analyzer, cfg, nil)
	return api.NewRouter(h, cfg)
}

func TestHealthEndpoint(t *testing.T) {
	var hits atomic.Int64
	router := newTestRouter(t, &hits)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestAnalyzeManagerRejectsMalformedID(t *testing.T) {
	var hits atomic.Int64
	router := newTestRouter(t, &hits)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze-manager/abc", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid manager ID format", body["error"])
	assert.Equal(t, int64(0), hits.Load(), "validation must happen before any upstream call")
}

func TestAnalyzeManagerEndToEnd(t *testing.T) {
	var hits atomic.Int64
	router := newTestRouter(t, &hits)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze-manager/7", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report analysis.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	// Captain scores 4 doubled; the bench player's 3 points are lost.
	assert.Equal(t, []int{8}, report.WeeklyPoints)
	assert.Equal(t, []int{1000}, report.WeeklyRanks)
	assert.Equal(t, 3, report.ManagerInfo.TotalPointsLostOnBench)
	assert.Equal(t, 8, report.ManagerInfo.TotalCaptaincyPoints)
	assert.Equal(t, "Mikel Arteta", report.ManagerInfo.Name)
	assert.Equal(t, 8-50, report.ManagerInfo.PointDifference)
	assert.Equal(t, "5000", report.ManagerInfo.LastSeasonRank)
	assert.Equal(t, "Didn't Play", report.ManagerInfo.SeasonBeforeLastRank)
	require.Len(t, report.PlayerStats, 2)
	assert.Equal(t, "Saka", report.PlayerStats[0].Name)
}

func TestPlayerStatsFiltersByPosition(t *testing.T) {
	var hits atomic.Int64
	router := newTestRouter(t, &hits)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/player-stats/mid", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var players []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &players))
	require.Len(t, players, 1)
	assert.Equal(t, "Saka", players[0]["webName"])
}

func TestPlayerStatsUnknownPositionYieldsEmptyList(t *testing.T) {
	var hits atomic.Int64
	router := newTestRouter(t, &hits)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/player-stats/striker", nil))

	require.Equal(t, http.StatusOK, rec.Code, "unknown position is not an error")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestBootstrapPassthroughRelaysRawPayload(t *testing.T) {
	var hits atomic.Int64
	router := newTestRouter(t, &hits)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bootstrap-static", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "events")
	assert.Contains(t, body, "elements")
}

func TestPlayerImageFallsBackToPlaceholder(t *testing.T) {
	var hits atomic.Int64
	router := newTestRouter(t, &hits)

	// Player 10 exists but the stub serves no /p1010.png, so the proxy must
	// fall back to the placeholder with a 404.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/player-image/10", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestCORSHeadersPresent(t *testing.T) {
	var hits atomic.Int64
	router := newTestRouter(t, &hits)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUpstreamFailureYields500WithErrorBody(t *testing.T) {
	var hits atomic.Int64
	router := newTestRouter(t, &hits)

	// Manager 999 has no stub routes, so the upfront fetches 404.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyze-manager/999", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to analyze manager", body["error"])
	assert.NotEmpty(t, body["details"])
}
