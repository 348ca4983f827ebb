package session

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klarskov/matchpint/internal/assignment"
)

// New creates a new SessionStore.
func New(db *sql.DB) SessionStore {
	return &store{
		db: db,
	}
}

// AddPlayer inserts a player, or refreshes the name if the id is known.
func (s *store) AddPlayer(playerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO players (id, name)
		VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, playerID, name)
	if err != nil {
		return fmt.Errorf("failed to add player %s: %w", playerID, err)
	}
	log.Info("Added player", "playerID", playerID, "name", name)
	return nil
}

// RemovePlayer deletes a player and, via cascade, their assignment rows.
func (s *store) RemovePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`DELETE FROM players WHERE id = ?`, playerID)
	if err != nil {
		return fmt.Errorf("failed to remove player %s: %w", playerID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("player not found: %s", playerID)
	}
	log.Info("Removed player", "playerID", playerID)
	return nil
}

func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, sips FROM players ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

func (s *store) GetPlayers(playerIDs []string) ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(playerIDs) == 0 {
		return []PlayerInfo{}, nil
	}

	placeholders := strings.Repeat("?,", len(playerIDs)-1) + "?"
	args := make([]any, len(playerIDs))
	for i, id := range playerIDs {
		args[i] = id
	}

	rows, err := s.db.Query(`SELECT id, name, sips FROM players WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists int
	err := s.db.QueryRow(`SELECT 1 FROM players WHERE id = ?`, playerID).Scan(&exists)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Error("Failed to check player existence", "playerID", playerID, "error", err)
		}
		return false
	}
	return true
}

func scanPlayers(rows *sql.Rows) ([]PlayerInfo, error) {
	players := []PlayerInfo{}
	for rows.Next() {
		var p PlayerInfo
		if err := rows.Scan(&p.ID, &p.Name, &p.Sips); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// UpsertMatch inserts a new match or updates an existing one. It is "dumb"
// and does not change the processing status of an existing match.
func (s *store) UpsertMatch(match *Match) error {
	return s.UpsertMatches([]*Match{match})
}

func (s *store) UpsertMatches(matches []*Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO matches (id, home_team, away_team, kickoff, status, home_score, away_score, processing_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			home_team = excluded.home_team,
			away_team = excluded.away_team,
			kickoff = excluded.kickoff,
			status = excluded.status,
			home_score = excluded.home_score,
			away_score = excluded.away_score
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert statement: %w", err)
	}
	defer stmt.Close()

	for _, match := range matches {
		if match.Status == "" {
			match.Status = MatchScheduled
		}
		if match.ProcessingStatus == "" {
			match.ProcessingStatus = StatusNew
		}
		if _, err := stmt.Exec(
			match.ID,
			match.HomeTeam,
			match.AwayTeam,
			match.Kickoff,
			string(match.Status),
			match.HomeScore,
			match.AwayScore,
			string(match.ProcessingStatus),
		); err != nil {
			return fmt.Errorf("failed to upsert match %s: %w", match.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match upsert: %w", err)
	}
	log.Info("Upserted matches", "count", len(matches))
	return nil
}

const matchColumns = `id, home_team, away_team, kickoff, status, home_score, away_score, processing_status, kickoff_notified_ts, result_notified_ts`

func (s *store) GetAllMatches() ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT ` + matchColumns + ` FROM matches ORDER BY kickoff ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

func (s *store) GetMatch(matchID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE id = ?`, matchID)
	match, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("match not found: %s", matchID)
		}
		return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
	}
	return match, nil
}

// GetMatchesForProcessing returns every match the processor still has work
// to do on.
func (s *store) GetMatchesForProcessing() ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT `+matchColumns+`
		FROM matches
		WHERE processing_status != ?
		ORDER BY kickoff ASC
	`, string(StatusCompleted))
	if err != nil {
		return nil, fmt.Errorf("failed to query matches for processing: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*Match, error) {
	var m Match
	var status, processingStatus string
	err := row.Scan(
		&m.ID,
		&m.HomeTeam,
		&m.AwayTeam,
		&m.Kickoff,
		&status,
		&m.HomeScore,
		&m.AwayScore,
		&processingStatus,
		&m.KickoffNotifiedTs,
		&m.ResultNotifiedTs,
	)
	if err != nil {
		return nil, err
	}
	m.Status = MatchStatus(status)
	m.ProcessingStatus = ProcessingStatus(processingStatus)
	return &m, nil
}

func scanMatches(rows *sql.Rows) ([]*Match, error) {
	var matches []*Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (s *store) UpdateScore(matchID string, homeScore, awayScore int, status MatchStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		UPDATE matches SET home_score = ?, away_score = ?, status = ? WHERE id = ?
	`, homeScore, awayScore, string(status), matchID)
	if err != nil {
		return fmt.Errorf("failed to update score for match %s: %w", matchID, err)
	}
	log.Info("Updated score", "matchID", matchID, "home", homeScore, "away", awayScore, "status", status)
	return nil
}

func (s *store) UpdateProcessingStatus(matchID string, status ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE matches SET processing_status = ? WHERE id = ?`, string(status), matchID)
	if err != nil {
		return fmt.Errorf("failed to update processing status: %w", err)
	}
	log.Info("Updated processing status", "matchID", matchID, "status", status)
	return nil
}

// UpdateNotificationTimestamp stamps the time a notification was sent for
// the match. notificationType is "kickoff" or "result".
func (s *store) UpdateNotificationTimestamp(matchID string, notificationType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var column string
	switch notificationType {
	case "kickoff":
		column = "kickoff_notified_ts"
	case "result":
		column = "result_notified_ts"
	default:
		return fmt.Errorf("unknown notification type: %s", notificationType)
	}

	_, err := s.db.Exec(`UPDATE matches SET `+column+` = strftime('%s','now') WHERE id = ?`, matchID)
	if err != nil {
		return fmt.Errorf("failed to update notification timestamp: %w", err)
	}
	return nil
}

// SaveSettings stores the single session-wide configuration row.
func (s *store) SaveSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var commonMatchID any
	if settings.CommonMatchID != "" {
		commonMatchID = settings.CommonMatchID
	}

	_, err := s.db.Exec(`
		INSERT INTO settings (id, mode, target_count, common_match_id)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode = excluded.mode,
			target_count = excluded.target_count,
			common_match_id = excluded.common_match_id
	`, string(settings.Mode), settings.TargetCount, commonMatchID)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Info("Saved settings", "mode", settings.Mode, "targetCount", settings.TargetCount, "commonMatchID", settings.CommonMatchID)
	return nil
}

func (s *store) GetSettings() (*Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var settings Settings
	var mode string
	var commonMatchID sql.NullString
	err := s.db.QueryRow(`SELECT mode, target_count, common_match_id FROM settings WHERE id = 1`).
		Scan(&mode, &settings.TargetCount, &commonMatchID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no session settings configured")
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	settings.Mode = assignment.Mode(mode)
	if commonMatchID.Valid {
		settings.CommonMatchID = commonMatchID.String
	}
	return &settings, nil
}

// SaveAssignment atomically replaces the persisted assignment. Only a
// complete, verified assignment ever reaches this method; rerolls overwrite
// the previous one wholesale.
func (s *store) SaveAssignment(asg assignment.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM assignments`); err != nil {
		return fmt.Errorf("failed to clear previous assignment: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO assignments (player_id, match_id) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare assignment insert: %w", err)
	}
	defer stmt.Close()

	for playerID, matchIDs := range asg {
		for matchID := range matchIDs {
			if _, err := stmt.Exec(playerID, matchID); err != nil {
				return fmt.Errorf("failed to insert assignment %s/%s: %w", playerID, matchID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignment: %w", err)
	}
	log.Info("Saved assignment", "players", len(asg))
	return nil
}

func (s *store) GetAssignment() (assignment.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT player_id, match_id FROM assignments`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment: %w", err)
	}
	defer rows.Close()

	asg := assignment.Assignment{}
	for rows.Next() {
		var playerID, matchID string
		if err := rows.Scan(&playerID, &matchID); err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		if asg[playerID] == nil {
			asg[playerID] = make(map[string]bool)
		}
		asg[playerID][matchID] = true
	}
	return asg, rows.Err()
}

// PlayersForMatch returns every player whose assignment contains the match,
// including everyone when the match is the common one.
func (s *store) PlayersForMatch(matchID string) ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT p.id, p.name, p.sips
		FROM players p
		JOIN assignments a ON a.player_id = p.id
		WHERE a.match_id = ?
		ORDER BY p.name ASC
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players for match %s: %w", matchID, err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// AddSips credits sips to the given players' tallies.
func (s *store) AddSips(playerIDs []string, sips int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(playerIDs) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`UPDATE players SET sips = sips + ? WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare sip update: %w", err)
	}
	defer stmt.Close()

	for _, playerID := range playerIDs {
		if _, err := stmt.Exec(sips, playerID); err != nil {
			return fmt.Errorf("failed to add sips for player %s: %w", playerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sip update: %w", err)
	}
	log.Info("Added sips", "players", len(playerIDs), "sips", sips)
	return nil
}

func (s *store) GetSipLeaderboard() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, sips FROM players ORDER BY sips DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// Clear wipes the whole session.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"assignments", "settings", "matches", "players"} {
		if _, err := s.db.Exec(`DELETE FROM ` + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
		}
	}
	log.Info("Session store cleared")
}

// ClearMatch removes a single match and its assignment rows.
func (s *store) ClearMatch(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM matches WHERE id = ?`, matchID); err != nil {
		log.Error("Failed to clear match", "matchID", matchID, "error", err)
	}
}
