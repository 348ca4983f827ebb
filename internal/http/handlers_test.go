package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klarskov/matchpint/internal/assignment"
	"github.com/klarskov/matchpint/internal/database"
	"github.com/klarskov/matchpint/internal/livescore"
	"github.com/klarskov/matchpint/internal/metrics"
	"github.com/klarskov/matchpint/internal/notifier"
	"github.com/klarskov/matchpint/internal/processor"
	"github.com/klarskov/matchpint/internal/pubsub"
	"github.com/klarskov/matchpint/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/klarskov/matchpint/internal/config"
)

// identityShuffle keeps slices in input order so tests are deterministic.
func identityShuffle(n int, swap func(i, j int)) {}

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, scoresClient livescore.LiveScoreClient, notif notifier.Notifier) (*Server, func()) {
	t.Helper()

	// For handlers that use the store, we need a real db connection for now.
	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := session.New(db)
	cfg := config.Config{}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	ps := pubsub.NewMock()
	proc := processor.New(store, scoresClient, notif, metricsSvc, ps, assignment.NewWithShuffle(identityShuffle))
	server := NewServer(store, metricsSvc, metricsHandler, cfg, scoresClient, notif, proc, ps)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, teardown
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	// Use the server's router to serve the request, which is more robust.
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestPlayersHandler(t *testing.T) {
	server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
	defer teardown()

	t.Run("adds a player", func(t *testing.T) {
		body := bytes.NewBufferString(`{"name": "Alice"}`)
		req, err := http.NewRequest("POST", "/players", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), "Alice")
	})

	t.Run("rejects a player without a name", func(t *testing.T) {
		body := bytes.NewBufferString(`{}`)
		req, err := http.NewRequest("POST", "/players", body)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("lists players", func(t *testing.T) {
		require.NoError(t, server.Store.AddPlayer("p2", "Bob"))

		req, err := http.NewRequest("GET", "/players", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Alice")
		assert.Contains(t, rr.Body.String(), "Bob")
	})

	t.Run("removes a player", func(t *testing.T) {
		req, err := http.NewRequest("DELETE", "/players?playerID=p2", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		players, err := server.Store.GetAllPlayers()
		require.NoError(t, err)
		for _, player := range players {
			assert.NotEqual(t, "p2", player.ID)
		}
	})

	t.Run("removing an unknown player is not found", func(t *testing.T) {
		req, err := http.NewRequest("DELETE", "/players?playerID=ghost", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestMatchesHandler(t *testing.T) {
	server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
	defer teardown()

	t.Run("saves posted fixtures", func(t *testing.T) {
		fixtures := []*session.Match{
			{ID: "m1", HomeTeam: "Arsenal", AwayTeam: "Spurs", Kickoff: time.Now().Unix()},
			{ID: "m2", HomeTeam: "Leeds", AwayTeam: "Wolves", Kickoff: time.Now().Unix()},
		}
		payload, err := json.Marshal(fixtures)
		require.NoError(t, err)

		req, err := http.NewRequest("POST", "/matches", bytes.NewBuffer(payload))
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		matches, err := server.Store.GetAllMatches()
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, session.StatusNew, matches[0].ProcessingStatus)
	})

	t.Run("rejects a fixture without an id", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/matches", bytes.NewBufferString(`[{"home_team": "Arsenal"}]`))
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("lists matches", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/matches", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Arsenal")
		assert.Contains(t, rr.Body.String(), "m2")
	})

	t.Run("dry run does not save", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/matches?dry_run=true", bytes.NewBufferString(`[{"id": "m99"}]`))
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		match, err := server.Store.GetMatch("m99")
		require.NoError(t, err)
		assert.Nil(t, match)
	})
}

func TestAssignHandler(t *testing.T) {
	seed := func(t *testing.T, server *Server) {
		t.Helper()
		require.NoError(t, server.Store.AddPlayer("p1", "Alice"))
		require.NoError(t, server.Store.AddPlayer("p2", "Bob"))
		require.NoError(t, server.Store.UpsertMatches([]*session.Match{
			{ID: "m1", HomeTeam: "Arsenal", AwayTeam: "Spurs"},
		}))
	}

	t.Run("accepted deal returns the assignment", func(t *testing.T) {
		server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
		defer teardown()
		seed(t, server)

		req, err := http.NewRequest("POST", "/assign?target_count=1&mode=PAIRWISE", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var asg assignment.Assignment
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &asg))
		assert.True(t, asg["p1"]["m1"])
		assert.True(t, asg["p2"]["m1"])

		saved, err := server.Store.GetAssignment()
		require.NoError(t, err)
		assert.True(t, saved["p1"]["m1"])

		settings, err := server.Store.GetSettings()
		require.NoError(t, err)
		require.NotNil(t, settings)
		assert.Equal(t, assignment.ModePairwise, settings.Mode)
		assert.Equal(t, 1, settings.TargetCount)
	})

	t.Run("rejected deal returns 422 with a reason", func(t *testing.T) {
		server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
		defer teardown()
		seed(t, server)
		require.NoError(t, server.Store.AddPlayer("p3", "Carol"))

		req, err := http.NewRequest("POST", "/assign?target_count=2&mode=PAIRWISE", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, rr.Body.String(), "need 3, have 1")
	})

	t.Run("invalid mode is a bad request", func(t *testing.T) {
		server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
		defer teardown()

		req, err := http.NewRequest("POST", "/assign?target_count=1&mode=BINGO", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid target_count is a bad request", func(t *testing.T) {
		server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
		defer teardown()

		req, err := http.NewRequest("POST", "/assign?target_count=lots&mode=PAIRWISE", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing settings is a server error", func(t *testing.T) {
		server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
		defer teardown()
		seed(t, server)

		req, err := http.NewRequest("POST", "/assign", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestListAssignmentsHandler(t *testing.T) {
	server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
	defer teardown()

	require.NoError(t, server.Store.AddPlayer("p1", "Alice"))
	require.NoError(t, server.Store.UpsertMatches([]*session.Match{{ID: "m1"}}))
	asg := assignment.Assignment{"p1": {"m1": true}}
	require.NoError(t, server.Store.SaveAssignment(asg))

	req, err := http.NewRequest("GET", "/assignments", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got assignment.Assignment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got["p1"]["m1"])
}

func TestPollHandler(t *testing.T) {
	mockScores := livescore.NewMockClient()
	mockScores.GetScoresFunc = func(matchIDs []string) ([]livescore.MatchScore, error) {
		return []livescore.MatchScore{{MatchID: "m1", HomeScore: 1, AwayScore: 0, Status: livescore.StatusLive}}, nil
	}
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, mockScores, mockNotifier)
	defer teardown()

	require.NoError(t, server.Store.AddPlayer("p1", "Alice"))
	require.NoError(t, server.Store.UpsertMatches([]*session.Match{
		{ID: "m1", HomeTeam: "Arsenal", AwayTeam: "Spurs", Status: session.MatchLive},
	}))
	require.NoError(t, server.Store.SaveAssignment(assignment.Assignment{"p1": {"m1": true}}))

	req, err := http.NewRequest("GET", "/poll", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	match, err := server.Store.GetMatch("m1")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 1, match.HomeScore)

	leaderboard, err := server.Store.GetSipLeaderboard()
	require.NoError(t, err)
	require.Len(t, leaderboard, 1)
	assert.Equal(t, 1, leaderboard[0].Sips)
	require.Len(t, mockNotifier.GoalNotificationCalls, 1)
}

func TestProcessMatchesHandler(t *testing.T) {
	server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
	defer teardown()

	require.NoError(t, server.Store.UpsertMatches([]*session.Match{
		{ID: "m1", Kickoff: time.Now().Add(-time.Hour).Unix(), Status: session.MatchLive},
	}))

	req, err := http.NewRequest("GET", "/process", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	match, err := server.Store.GetMatch("m1")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, session.StatusKickoffNotified, match.ProcessingStatus)
}

func TestLeaderboardHandler(t *testing.T) {
	server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
	defer teardown()

	require.NoError(t, server.Store.AddPlayer("p1", "Alice"))
	require.NoError(t, server.Store.AddPlayer("p2", "Bob"))
	require.NoError(t, server.Store.AddSips([]string{"p1"}, 3))

	req, err := http.NewRequest("GET", "/leaderboard", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var players []session.PlayerInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &players))
	require.Len(t, players, 2)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, 3, players[0].Sips)
}

func TestNotifyLeaderboardHandler(t *testing.T) {
	server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
	defer teardown()

	require.NoError(t, server.Store.AddPlayer("p1", "Alice"))

	payload, err := msgpack.Marshal(pubsub.GoalEvent{MatchID: "m1", HomeTeam: "Arsenal", AwayTeam: "Spurs"})
	require.NoError(t, err)
	wrapper := fmt.Sprintf(`{"subscription": "s1", "message": {"data": %q}}`, base64.StdEncoding.EncodeToString(payload))

	req, err := http.NewRequest("POST", "/notify-leaderboard", bytes.NewBufferString(wrapper))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	mockNotifier := server.Notifier.(*notifier.Mock)
	require.Len(t, mockNotifier.SipLeaderboardCalls, 1)
}

func TestClearStoreHandler(t *testing.T) {
	server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
	defer teardown()

	require.NoError(t, server.Store.AddPlayer("p1", "Alice"))
	require.NoError(t, server.Store.UpsertMatches([]*session.Match{{ID: "m1"}, {ID: "m2"}}))

	t.Run("clears a single match", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/clear?matchID=m1", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		match, err := server.Store.GetMatch("m1")
		require.NoError(t, err)
		assert.Nil(t, match)
		match, err = server.Store.GetMatch("m2")
		require.NoError(t, err)
		assert.NotNil(t, match)
	})

	t.Run("clears everything", func(t *testing.T) {
		req, err := http.NewRequest("GET", "/clear", nil)
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		players, err := server.Store.GetAllPlayers()
		require.NoError(t, err)
		assert.Len(t, players, 0)
		matches, err := server.Store.GetAllMatches()
		require.NoError(t, err)
		assert.Len(t, matches, 0)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	server, teardown := setupTestServer(t, livescore.NewMockClient(), notifier.NewMock())
	defer teardown()

	server.Metrics.IncPollerRuns()

	req, err := http.NewRequest("GET", "/metrics", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "matchpint_poller_runs_total")
}
