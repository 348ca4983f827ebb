package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/klarskov/matchpint/internal/assignment"
	"github.com/klarskov/matchpint/internal/processor"
	"github.com/klarskov/matchpint/internal/pubsub"
	"github.com/klarskov/matchpint/internal/session"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			s.Store.ClearMatch(matchID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
			log.Info("Successfully cleared match from store", "matchID", matchID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
			log.Info("Store cleared successfully")
		}
	}
}

// PlayersHandler lists, adds and removes players depending on the method.
func (s *Server) PlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			players, err := s.Store.GetAllPlayers()
			if err != nil {
				http.Error(w, "Failed to get players", http.StatusInternalServerError)
				log.Error("Failed to get players from store", "error", err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(players); err != nil {
				log.Error("Failed to write response", "error", err)
			}

		case http.MethodPost:
			var body struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			if body.Name == "" {
				http.Error(w, "Player name is required", http.StatusBadRequest)
				return
			}
			if body.ID == "" {
				body.ID = uuid.NewString()
			}
			if err := s.Store.AddPlayer(body.ID, body.Name); err != nil {
				http.Error(w, "Failed to add player", http.StatusInternalServerError)
				log.Error("Failed to add player", "error", err, "name", body.Name)
				return
			}
			log.Info("Player added", "playerID", body.ID, "name", body.Name)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			if err := json.NewEncoder(w).Encode(session.PlayerInfo{ID: body.ID, Name: body.Name}); err != nil {
				log.Error("Failed to write response", "error", err)
			}

		case http.MethodDelete:
			playerID := r.URL.Query().Get("playerID")
			if playerID == "" {
				http.Error(w, "playerID is required", http.StatusBadRequest)
				return
			}
			if err := s.Store.RemovePlayer(playerID); err != nil {
				http.Error(w, "Failed to remove player", http.StatusNotFound)
				log.Error("Failed to remove player", "error", err, "playerID", playerID)
				return
			}
			log.Info("Player removed", "playerID", playerID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Player removed!")

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// MatchesHandler lists tracked matches and accepts new fixtures.
func (s *Server) MatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			matches, err := s.Store.GetAllMatches()
			if err != nil {
				http.Error(w, "Failed to get matches", http.StatusInternalServerError)
				log.Error("Failed to get matches from store", "error", err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(matches); err != nil {
				log.Error("Failed to encode matches to JSON", "error", err)
			}

		case http.MethodPost:
			var matches []*session.Match
			if err := json.NewDecoder(r.Body).Decode(&matches); err != nil {
				http.Error(w, "Invalid JSON", http.StatusBadRequest)
				return
			}
			for _, match := range matches {
				if match.ID == "" {
					http.Error(w, "Every match needs an id", http.StatusBadRequest)
					return
				}
			}
			isDryRun := isDryRunFromContext(r)
			if isDryRun {
				log.Info("[Dry Run] Would have upserted matches", "count", len(matches))
			} else {
				if err := s.Store.UpsertMatches(matches); err != nil {
					http.Error(w, "Failed to save matches", http.StatusInternalServerError)
					log.Error("Failed to bulk upsert matches", "error", err)
					return
				}
				log.Info("Upserted matches", "count", len(matches))
			}
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "Matches saved.")

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// AssignHandler saves the requested settings and runs the engine. A reroll
// is just another call to this endpoint.
func (s *Server) AssignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		targetStr := r.URL.Query().Get("target_count")
		modeStr := r.URL.Query().Get("mode")
		if targetStr != "" || modeStr != "" {
			targetCount, err := strconv.Atoi(targetStr)
			if err != nil || targetCount < 0 {
				http.Error(w, "Invalid 'target_count' parameter", http.StatusBadRequest)
				return
			}
			mode := assignment.Mode(modeStr)
			if mode != assignment.ModePairwise && mode != assignment.ModeCommon {
				http.Error(w, "Invalid 'mode' parameter", http.StatusBadRequest)
				return
			}
			settings := session.Settings{
				Mode:          mode,
				TargetCount:   targetCount,
				CommonMatchID: r.URL.Query().Get("common_match_id"),
			}
			// Settings are saved even on a dry run so the run reflects them.
			if err := s.Store.SaveSettings(settings); err != nil {
				http.Error(w, "Failed to save settings", http.StatusInternalServerError)
				log.Error("Failed to save settings", "error", err)
				return
			}
		}

		asg, err := s.Processor.RunAssignment(isDryRun)
		if err != nil {
			if processor.IsRejection(err) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnprocessableEntity)
				if encErr := json.NewEncoder(w).Encode(map[string]string{"error": processor.RejectionReason(err)}); encErr != nil {
					log.Error("Failed to write response", "error", encErr)
				}
				return
			}
			http.Error(w, "Failed to run assignment", http.StatusInternalServerError)
			log.Error("Failed to run assignment", "error", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(asg); err != nil {
			log.Error("Failed to encode assignment to JSON", "error", err)
		}
	}
}

func (s *Server) ListAssignmentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asg, err := s.Store.GetAssignment()
		if err != nil {
			http.Error(w, "Failed to get assignment", http.StatusInternalServerError)
			log.Error("Failed to get assignment from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(asg); err != nil {
			log.Error("Failed to encode assignment to JSON", "error", err)
		}
	}
}

func (s *Server) PollHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		s.Processor.Poll(isDryRun)

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Score poll completed.")
	}
}

func (s *Server) ProcessMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting match processing...")
		isDryRun := isDryRunFromContext(r)

		s.Processor.ProcessMatches(isDryRun)

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Match processing completed.")
		log.Info("Match processing finished.")
	}
}

// LeaderboardHandler returns a handler that serves the sip leaderboard.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetSipLeaderboard()
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard from store", "error", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(players); err != nil {
			log.Error("Failed to encode leaderboard to JSON", "error", err)
		}
	}
}

// NotifyLeaderboardHandler receives the match-finished event from the
// pub/sub push subscription and posts the current sip tally to the channel.
func (s *Server) NotifyLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received match finished message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		event := pubsub.GoalEvent{}
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode match finished event", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		log.Info("Match finished, posting sip leaderboard", "matchID", event.MatchID)

		players, err := s.Store.GetSipLeaderboard()
		if err != nil {
			log.Error("Failed to get leaderboard from store", "error", err)
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			return
		}
		if err := s.Notifier.SendSipLeaderboard(players, isDryRun); err != nil {
			log.Error("Failed to send sip leaderboard", "error", err)
			http.Error(w, "Failed to send leaderboard", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
