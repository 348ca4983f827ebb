package livescore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// APIClient fetches live scores from a football-data style REST API.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	authToken  string
}

// NewClient creates a new live-score client.
func NewClient(baseURL, authToken string) LiveScoreClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
		authToken:  authToken,
	}
}

// Ensure APIClient implements the LiveScoreClient interface.
var _ LiveScoreClient = (*APIClient)(nil)

// GetScore fetches the current score of a single match.
func (c *APIClient) GetScore(matchID string) (MatchScore, error) {
	url := fmt.Sprintf("%s/v4/matches/%s", c.BaseURL, matchID)

	req, err := http.NewRequestWithContext(context.Background(), "GET", url, nil)
	if err != nil {
		return MatchScore{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("X-Auth-Token", c.authToken)
	}

	log.Debug("Requesting match score", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return MatchScore{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from scores API", "status", resp.StatusCode, "body", string(body))
		return MatchScore{}, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var payload scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return MatchScore{}, fmt.Errorf("failed to decode response: %w", err)
	}

	score := MatchScore{
		MatchID:  matchID,
		HomeTeam: payload.HomeTeam.Name,
		AwayTeam: payload.AwayTeam.Name,
		Status:   normalizeStatus(payload.Status),
	}
	if payload.Score.FullTime.Home != nil {
		score.HomeScore = *payload.Score.FullTime.Home
	}
	if payload.Score.FullTime.Away != nil {
		score.AwayScore = *payload.Score.FullTime.Away
	}
	if payload.UTCDate != "" {
		kickoff, err := time.Parse(time.RFC3339, payload.UTCDate)
		if err != nil {
			log.Warn("Failed to parse kickoff time", "matchID", matchID, "utcDate", payload.UTCDate)
		} else {
			score.Kickoff = kickoff.Unix()
		}
	}
	if payload.ID != 0 && score.MatchID == "" {
		score.MatchID = strconv.FormatInt(payload.ID, 10)
	}

	return score, nil
}

// GetScores fetches scores for all given matches. A failed fetch for one
// match is logged and skipped so a flaky API does not stall the whole poll.
func (c *APIClient) GetScores(matchIDs []string) ([]MatchScore, error) {
	scores := make([]MatchScore, 0, len(matchIDs))
	for _, matchID := range matchIDs {
		score, err := c.GetScore(matchID)
		if err != nil {
			log.Error("Failed to fetch score", "matchID", matchID, "error", err)
			continue
		}
		scores = append(scores, score)
	}
	log.Info("Fetched scores", "requested", len(matchIDs), "received", len(scores))
	return scores, nil
}
