package session_test

import (
	"database/sql"
	"testing"

	"github.com/klarskov/matchpint/internal/assignment"
	"github.com/klarskov/matchpint/internal/database"
	"github.com/klarskov/matchpint/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (session.SessionStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := session.New(db)
	return store, db, dbTeardown
}

func TestAddAndGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddPlayer("player1", "Player One"))
	require.NoError(t, store.AddPlayer("player2", "Player Two"))

	assert.True(t, store.IsKnownPlayer("player1"))
	assert.False(t, store.IsKnownPlayer("player3"))

	allPlayers, err := store.GetAllPlayers()
	require.NoError(t, err)
	assert.Len(t, allPlayers, 2)
}

func TestAddPlayerRefreshesName(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddPlayer("p1", "Old Name"))
	require.NoError(t, store.AddPlayer("p1", "New Name"))

	players, err := store.GetPlayers([]string{"p1"})
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "New Name", players[0].Name)
}

func TestRemovePlayer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddPlayer("p1", "Player One"))
	require.NoError(t, store.RemovePlayer("p1"))
	assert.False(t, store.IsKnownPlayer("p1"))

	err := store.RemovePlayer("p1")
	assert.Error(t, err, "removing an unknown player should fail")
}

func TestGetPlayers(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	_, err := db.Exec(`INSERT INTO players (id, name, sips) VALUES
		('p1', 'Player One', 1),
		('p2', 'Player Two', 2),
		('p3', 'Player Three', 3)`)
	require.NoError(t, err)

	t.Run("gets multiple players", func(t *testing.T) {
		players, err := store.GetPlayers([]string{"p1", "p3"})
		require.NoError(t, err)
		require.Len(t, players, 2)

		playerMap := make(map[string]session.PlayerInfo)
		for _, p := range players {
			playerMap[p.ID] = p
		}
		assert.Contains(t, playerMap, "p1")
		assert.Contains(t, playerMap, "p3")
		assert.Equal(t, 3, playerMap["p3"].Sips)
	})

	t.Run("returns empty slice for no matches", func(t *testing.T) {
		players, err := store.GetPlayers([]string{"p4"})
		require.NoError(t, err)
		assert.Len(t, players, 0)
	})

	t.Run("returns empty slice for empty id slice", func(t *testing.T) {
		players, err := store.GetPlayers([]string{})
		require.NoError(t, err)
		assert.Len(t, players, 0)
	})
}

func TestUpsertMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	match := &session.Match{ID: "m1", HomeTeam: "FCK", AwayTeam: "Brøndby"}
	require.NoError(t, store.UpsertMatch(match))

	matches, err := store.GetMatchesForProcessing()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "m1", matches[0].ID)
	assert.Equal(t, session.StatusNew, matches[0].ProcessingStatus)
	assert.Equal(t, session.MatchScheduled, matches[0].Status)

	// Upserting again must not reset processing status.
	require.NoError(t, store.UpdateProcessingStatus("m1", session.StatusKickoffNotified))
	match.HomeScore = 1
	match.Status = session.MatchLive
	require.NoError(t, store.UpsertMatch(match))

	got, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.HomeScore)
	assert.Equal(t, session.MatchLive, got.Status)
	assert.Equal(t, session.StatusKickoffNotified, got.ProcessingStatus)
}

func TestGetMatchesForProcessingSkipsCompleted(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertMatches([]*session.Match{
		{ID: "m1", HomeTeam: "A", AwayTeam: "B"},
		{ID: "m2", HomeTeam: "C", AwayTeam: "D"},
	}))
	require.NoError(t, store.UpdateProcessingStatus("m2", session.StatusCompleted))

	matches, err := store.GetMatchesForProcessing()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "m1", matches[0].ID)
}

func TestUpdateScore(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertMatch(&session.Match{ID: "m1", HomeTeam: "A", AwayTeam: "B"}))
	require.NoError(t, store.UpdateScore("m1", 2, 1, session.MatchLive))

	match, err := store.GetMatch("m1")
	require.NoError(t, err)
	assert.Equal(t, 2, match.HomeScore)
	assert.Equal(t, 1, match.AwayScore)
	assert.Equal(t, session.MatchLive, match.Status)
	assert.Equal(t, 3, match.Goals())
}

func TestUpdateNotificationTimestamp(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertMatch(&session.Match{ID: "m1", HomeTeam: "A", AwayTeam: "B"}))

	require.NoError(t, store.UpdateNotificationTimestamp("m1", "kickoff"))
	var kickoffTS sql.NullInt64
	err := db.QueryRow("SELECT kickoff_notified_ts FROM matches WHERE id = 'm1'").Scan(&kickoffTS)
	require.NoError(t, err)
	assert.True(t, kickoffTS.Valid)
	assert.NotZero(t, kickoffTS.Int64)

	require.NoError(t, store.UpdateNotificationTimestamp("m1", "result"))
	var resultTS sql.NullInt64
	err = db.QueryRow("SELECT result_notified_ts FROM matches WHERE id = 'm1'").Scan(&resultTS)
	require.NoError(t, err)
	assert.True(t, resultTS.Valid)

	assert.Error(t, store.UpdateNotificationTimestamp("m1", "unknown"))
}

func TestSaveAndGetSettings(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.GetSettings()
	assert.Error(t, err, "settings should be missing on a fresh store")

	require.NoError(t, store.UpsertMatch(&session.Match{ID: "m1", HomeTeam: "A", AwayTeam: "B"}))
	require.NoError(t, store.SaveSettings(session.Settings{
		Mode:          assignment.ModeCommon,
		TargetCount:   3,
		CommonMatchID: "m1",
	}))

	settings, err := store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, assignment.ModeCommon, settings.Mode)
	assert.Equal(t, 3, settings.TargetCount)
	assert.Equal(t, "m1", settings.CommonMatchID)

	// Saving again replaces the single row.
	require.NoError(t, store.SaveSettings(session.Settings{
		Mode:        assignment.ModePairwise,
		TargetCount: 2,
	}))
	settings, err = store.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, assignment.ModePairwise, settings.Mode)
	assert.Empty(t, settings.CommonMatchID)
}

func TestSaveAssignmentReplacesPrevious(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddPlayer("p1", "Player One"))
	require.NoError(t, store.AddPlayer("p2", "Player Two"))
	require.NoError(t, store.UpsertMatches([]*session.Match{
		{ID: "m1", HomeTeam: "A", AwayTeam: "B"},
		{ID: "m2", HomeTeam: "C", AwayTeam: "D"},
	}))

	first := assignment.Assignment{
		"p1": {"m1": true},
		"p2": {"m1": true},
	}
	require.NoError(t, store.SaveAssignment(first))

	second := assignment.Assignment{
		"p1": {"m2": true},
		"p2": {"m2": true},
	}
	require.NoError(t, store.SaveAssignment(second))

	got, err := store.GetAssignment()
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestPlayersForMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddPlayer("p1", "Anna"))
	require.NoError(t, store.AddPlayer("p2", "Bo"))
	require.NoError(t, store.AddPlayer("p3", "Clara"))
	require.NoError(t, store.UpsertMatches([]*session.Match{
		{ID: "m1", HomeTeam: "A", AwayTeam: "B"},
		{ID: "m2", HomeTeam: "C", AwayTeam: "D"},
	}))
	require.NoError(t, store.SaveAssignment(assignment.Assignment{
		"p1": {"m1": true, "m2": true},
		"p2": {"m1": true},
		"p3": {"m2": true},
	}))

	players, err := store.PlayersForMatch("m1")
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Anna", players[0].Name)
	assert.Equal(t, "Bo", players[1].Name)
}

func TestAddSipsAndLeaderboard(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddPlayer("p1", "Anna"))
	require.NoError(t, store.AddPlayer("p2", "Bo"))

	require.NoError(t, store.AddSips([]string{"p1", "p2"}, 1))
	require.NoError(t, store.AddSips([]string{"p2"}, 2))
	require.NoError(t, store.AddSips(nil, 5))

	leaderboard, err := store.GetSipLeaderboard()
	require.NoError(t, err)
	require.Len(t, leaderboard, 2)
	assert.Equal(t, "Bo", leaderboard[0].Name)
	assert.Equal(t, 3, leaderboard[0].Sips)
	assert.Equal(t, "Anna", leaderboard[1].Name)
	assert.Equal(t, 1, leaderboard[1].Sips)
}

func TestClear(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.AddPlayer("p1", "Player One"))
	require.NoError(t, store.UpsertMatch(&session.Match{ID: "m1", HomeTeam: "A", AwayTeam: "B"}))

	store.Clear()

	allPlayers, err := store.GetAllPlayers()
	require.NoError(t, err)
	assert.Len(t, allPlayers, 0)

	matches, err := store.GetAllMatches()
	require.NoError(t, err)
	assert.Len(t, matches, 0)
}

func TestClearMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertMatches([]*session.Match{
		{ID: "m1", HomeTeam: "A", AwayTeam: "B"},
		{ID: "m2", HomeTeam: "C", AwayTeam: "D"},
	}))

	store.ClearMatch("m1")

	matches, err := store.GetAllMatches()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "m2", matches[0].ID)
}
