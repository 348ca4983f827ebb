package processor

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/klarskov/matchpint/internal/assignment"
	"github.com/klarskov/matchpint/internal/livescore"
	"github.com/klarskov/matchpint/internal/metrics"
	"github.com/klarskov/matchpint/internal/pubsub"
	"github.com/klarskov/matchpint/internal/session"
)

// New creates a new Processor.
func New(store Store, scores livescore.LiveScoreClient, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient, engine *assignment.Engine) *Processor {
	return &Processor{
		store:    store,
		scores:   scores,
		notifier: notifier,
		metrics:  metrics,
		pubsub:   pubsub,
		engine:   engine,
	}
}

// Poll fetches fresh scores for every match still in play, credits sips for
// new goals and notifies the drinkers.
func (p *Processor) Poll(dryRun bool) {
	log.Info("Starting score poll...")
	p.metrics.IncPollerRuns()

	matches, err := p.store.GetMatchesForProcessing()
	if err != nil {
		log.Error("Failed to get matches for polling", "error", err)
		return
	}
	if len(matches) == 0 {
		log.Info("No matches to poll.")
		return
	}

	byID := make(map[string]*session.Match, len(matches))
	matchIDs := make([]string, 0, len(matches))
	for _, match := range matches {
		byID[match.ID] = match
		matchIDs = append(matchIDs, match.ID)
	}

	scores, err := p.scores.GetScores(matchIDs)
	if err != nil {
		log.Error("Failed to fetch scores", "error", err)
		return
	}

	for _, score := range scores {
		match, ok := byID[score.MatchID]
		if !ok {
			continue
		}
		p.applyScore(match, score, dryRun)
	}
	log.Info("Score poll finished.")
}

// applyScore folds one fetched score into the stored match and handles any
// goals scored since the last poll.
func (p *Processor) applyScore(match *session.Match, score livescore.MatchScore, dryRun bool) {
	newGoals := score.HomeScore + score.AwayScore - match.Goals()
	statusChanged := session.MatchStatus(score.Status) != match.Status

	if newGoals <= 0 && !statusChanged {
		log.Debug("No change for match", "matchID", match.ID, "status", match.Status)
		return
	}

	if dryRun {
		log.Info("[Dry Run] Would update score", "matchID", match.ID, "home", score.HomeScore, "away", score.AwayScore, "status", score.Status)
	} else {
		if err := p.store.UpdateScore(match.ID, score.HomeScore, score.AwayScore, session.MatchStatus(score.Status)); err != nil {
			log.Error("Failed to update score", "error", err, "matchID", match.ID)
			return
		}
	}
	match.HomeScore = score.HomeScore
	match.AwayScore = score.AwayScore
	match.Status = session.MatchStatus(score.Status)

	if newGoals <= 0 {
		return
	}
	log.Info("Goal(s) detected", "matchID", match.ID, "new_goals", newGoals, "home", match.HomeScore, "away", match.AwayScore)
	for i := 0; i < newGoals; i++ {
		p.metrics.IncGoalsDetected()
	}

	drinkers, err := p.store.PlayersForMatch(match.ID)
	if err != nil {
		log.Error("Failed to look up drinkers for match", "error", err, "matchID", match.ID)
		return
	}
	if len(drinkers) == 0 {
		log.Debug("No players assigned to match", "matchID", match.ID)
		return
	}

	playerIDs := make([]string, 0, len(drinkers))
	for _, player := range drinkers {
		playerIDs = append(playerIDs, player.ID)
	}

	if dryRun {
		log.Info("[Dry Run] Would add sips", "matchID", match.ID, "players", len(playerIDs), "sips", newGoals)
	} else {
		if err := p.store.AddSips(playerIDs, newGoals); err != nil {
			log.Error("Failed to add sips", "error", err, "matchID", match.ID)
		}
		if err := p.pubsub.SendMessage(string(pubsub.EventGoalScored), pubsub.GoalEvent{
			MatchID:   match.ID,
			HomeTeam:  match.HomeTeam,
			AwayTeam:  match.AwayTeam,
			HomeScore: match.HomeScore,
			AwayScore: match.AwayScore,
			PlayerIDs: playerIDs,
		}); err != nil {
			log.Error("Failed to publish goal event", "error", err, "matchID", match.ID)
		}
	}
	if err := p.notifier.SendGoalNotification(match, drinkers, dryRun); err != nil {
		log.Error("Failed to send goal notification", "error", err, "matchID", match.ID)
	}
}

// ProcessMatches fetches matches that need processing and advances them
// through the state machine.
func (p *Processor) ProcessMatches(dryRun bool) {
	log.Info("Starting match processing...")
	matches, err := p.store.GetMatchesForProcessing()
	if err != nil {
		log.Error("Failed to get matches for processing", "error", err)
		return
	}

	if len(matches) == 0 {
		log.Info("No matches to process.")
		return
	}

	log.Info("Found matches to process", "count", len(matches))
	for _, match := range matches {
		p.processMatch(match, dryRun)
	}
	log.Info("Match processing finished.")
}

func (p *Processor) processMatch(match *session.Match, dryRun bool) {
	log.Info("Processing match", "matchID", match.ID, "initial_status", match.ProcessingStatus, "match_status", match.Status)
	for {
		currentState := match.ProcessingStatus
		log.Debug("Evaluating match state", "matchID", match.ID, "status", currentState)

		switch currentState {
		case session.StatusNew:
			if match.Status == session.MatchPostponed {
				log.Info("Match is postponed. Setting match to completed.", "matchID", match.ID)
				p.updateStatus(match, session.StatusCompleted, dryRun)
				break
			}
			if match.Status == session.MatchScheduled && time.Now().Unix() < match.Kickoff {
				// Not kicked off yet. Leave it alone until the poller says otherwise.
				break
			}
			log.Info("Match has kicked off. Publishing kickoff event.", "matchID", match.ID)
			if !dryRun {
				if err := p.pubsub.SendMessage(string(pubsub.EventKickoff), pubsub.KickoffEvent{
					MatchID:  match.ID,
					HomeTeam: match.HomeTeam,
					AwayTeam: match.AwayTeam,
					Kickoff:  match.Kickoff,
				}); err != nil {
					log.Error("Failed to publish kickoff event", "error", err, "matchID", match.ID)
				}
				if err := p.store.UpdateNotificationTimestamp(match.ID, "kickoff"); err != nil {
					log.Error("Failed to record kickoff timestamp", "error", err, "matchID", match.ID)
				}
			}
			p.updateStatus(match, session.StatusKickoffNotified, dryRun)

		case session.StatusKickoffNotified:
			if match.Status != session.MatchFinished {
				break
			}
			log.Info("Match has finished. Sending result notification.", "matchID", match.ID)
			// Matches older than a day are backfills; skip the notification.
			timeSinceKickoff := time.Since(time.Unix(match.Kickoff, 0))
			if timeSinceKickoff < 24*time.Hour {
				if err := p.notifier.SendResultNotification(match, dryRun); err != nil {
					log.Error("Failed to send result notification", "error", err, "matchID", match.ID)
				}
			}
			if !dryRun {
				if err := p.pubsub.SendMessage(string(pubsub.EventMatchFinished), pubsub.GoalEvent{
					MatchID:   match.ID,
					HomeTeam:  match.HomeTeam,
					AwayTeam:  match.AwayTeam,
					HomeScore: match.HomeScore,
					AwayScore: match.AwayScore,
				}); err != nil {
					log.Error("Failed to publish match finished event", "error", err, "matchID", match.ID)
				}
				if err := p.store.UpdateNotificationTimestamp(match.ID, "result"); err != nil {
					log.Error("Failed to record result timestamp", "error", err, "matchID", match.ID)
				}
			}
			p.updateStatus(match, session.StatusResultNotified, dryRun)

		case session.StatusResultNotified:
			log.Info("Match result has been notified. Marking match as complete.", "matchID", match.ID)
			p.updateStatus(match, session.StatusCompleted, dryRun)

		case session.StatusCompleted:
			log.Debug("Match is complete. No further processing needed.", "matchID", match.ID)
			return // End of the line for this match

		default:
			log.Warn("Unknown processing status", "status", currentState, "matchID", match.ID)
			return // Exit if status is unknown
		}

		// If the status hasn't changed, we're done with this match for now.
		if match.ProcessingStatus == currentState {
			log.Debug("Match state did not change. Finished processing for now.", "matchID", match.ID, "status", currentState)
			break
		}
	}
	log.Info("Finished processing match", "matchID", match.ID, "final_status", match.ProcessingStatus)
}

func (p *Processor) updateStatus(match *session.Match, newStatus session.ProcessingStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update match status", "matchID", match.ID, "from", match.ProcessingStatus, "to", newStatus)
		match.ProcessingStatus = newStatus // Update in-memory for the loop
		return
	}

	err := p.store.UpdateProcessingStatus(match.ID, newStatus)
	if err != nil {
		log.Error("Failed to update processing status", "error", err, "matchID", match.ID)
	} else {
		log.Debug("Successfully updated status", "matchID", match.ID, "from", match.ProcessingStatus, "to", newStatus)
		match.ProcessingStatus = newStatus // Keep the in-memory object in sync
	}
}
