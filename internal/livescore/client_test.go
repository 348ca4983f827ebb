package livescore

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetScore(t *testing.T) {
	mockJSONResponse := `{
		"id": 497438,
		"utcDate": "2026-08-29T16:00:00Z",
		"status": "IN_PLAY",
		"homeTeam": { "name": "FC København" },
		"awayTeam": { "name": "Brøndby IF" },
		"score": {
			"fullTime": { "home": 2, "away": 1 }
		}
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/matches/497438", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("X-Auth-Token"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, mockJSONResponse)
	}))
	defer server.Close()

	client := APIClient{
		httpClient: server.Client(),
		BaseURL:    server.URL,
		authToken:  "test-token",
	}

	score, err := client.GetScore("497438")
	require.NoError(t, err)

	assert.Equal(t, "497438", score.MatchID)
	assert.Equal(t, "FC København", score.HomeTeam)
	assert.Equal(t, "Brøndby IF", score.AwayTeam)
	assert.Equal(t, StatusLive, score.Status)
	assert.Equal(t, 2, score.HomeScore)
	assert.Equal(t, 1, score.AwayScore)

	kickoff, err := time.Parse(time.RFC3339, "2026-08-29T16:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, kickoff.Unix(), score.Kickoff)
}

func TestGetScoreHandlesNullScores(t *testing.T) {
	// Matches that have not kicked off report null full-time scores.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{
			"id": 1,
			"status": "TIMED",
			"homeTeam": { "name": "A" },
			"awayTeam": { "name": "B" },
			"score": { "fullTime": { "home": null, "away": null } }
		}`)
	}))
	defer server.Close()

	client := APIClient{httpClient: server.Client(), BaseURL: server.URL}

	score, err := client.GetScore("1")
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, score.Status)
	assert.Equal(t, 0, score.HomeScore)
	assert.Equal(t, 0, score.AwayScore)
}

func TestGetScoreNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	client := APIClient{httpClient: server.Client(), BaseURL: server.URL}

	_, err := client.GetScore("1")
	assert.Error(t, err)
}

func TestGetScoresSkipsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v4/matches/bad" {
			http.Error(w, "nope", http.StatusNotFound)
			return
		}
		fmt.Fprintln(w, `{"id": 1, "status": "FINISHED", "homeTeam": {"name": "A"}, "awayTeam": {"name": "B"}, "score": {"fullTime": {"home": 0, "away": 3}}}`)
	}))
	defer server.Close()

	client := APIClient{httpClient: server.Client(), BaseURL: server.URL}

	scores, err := client.GetScores([]string{"good", "bad", "also-good"})
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, StatusFinished, scores[0].Status)
	assert.Equal(t, 3, scores[0].AwayScore)
}

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]Status{
		"IN_PLAY":   StatusLive,
		"PAUSED":    StatusPaused,
		"FINISHED":  StatusFinished,
		"POSTPONED": StatusPostponed,
		"SUSPENDED": StatusPostponed,
		"CANCELLED": StatusPostponed,
		"TIMED":     StatusScheduled,
		"SCHEDULED": StatusScheduled,
		"WHATEVER":  StatusScheduled,
	}
	for wire, want := range cases {
		assert.Equal(t, want, normalizeStatus(wire), wire)
	}
}
