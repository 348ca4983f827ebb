package processor

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klarskov/matchpint/internal/assignment"
	"github.com/klarskov/matchpint/internal/pubsub"
)

// RunAssignment loads the current players, matches and settings, asks the
// engine for a fresh deal and persists it on success. On rejection the
// typed engine error is translated into a message the channel can act on.
// A reroll is simply another call.
func (p *Processor) RunAssignment(dryRun bool) (assignment.Assignment, error) {
	startTime := time.Now()
	p.metrics.IncAssignmentRuns()
	defer func() {
		p.metrics.ObserveAssignmentDuration(time.Since(startTime).Seconds())
	}()

	settings, err := p.store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil {
		return nil, fmt.Errorf("no session settings configured")
	}

	playerInfos, err := p.store.GetAllPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}
	matches, err := p.store.GetAllMatches()
	if err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}

	players := make([]assignment.Player, 0, len(playerInfos))
	for _, player := range playerInfos {
		players = append(players, assignment.Player{ID: player.ID, Name: player.Name})
	}
	resources := make([]assignment.Resource, 0, len(matches))
	for _, match := range matches {
		resources = append(resources, assignment.Resource{ID: match.ID})
	}

	log.Info("Running assignment", "players", len(players), "matches", len(resources), "mode", settings.Mode, "target", settings.TargetCount)
	asg, err := p.engine.Assign(players, resources, settings.CommonMatchID, settings.TargetCount, settings.Mode)
	if err != nil {
		p.metrics.IncAssignmentFailures()
		reason := RejectionReason(err)
		log.Warn("Assignment rejected", "reason", reason)
		if notifyErr := p.notifier.SendAssignmentFailed(reason, dryRun); notifyErr != nil {
			log.Error("Failed to send assignment failure notification", "error", notifyErr)
		}
		return nil, err
	}

	if dryRun {
		log.Info("[Dry Run] Would save assignment", "players", len(asg))
	} else {
		if err := p.store.SaveAssignment(asg); err != nil {
			return nil, fmt.Errorf("failed to save assignment: %w", err)
		}
		if err := p.pubsub.SendMessage(string(pubsub.EventAssignmentCreated), pubsub.AssignmentEvent{
			Mode:        string(settings.Mode),
			TargetCount: settings.TargetCount,
			PlayerCount: len(players),
		}); err != nil {
			log.Error("Failed to publish assignment event", "error", err)
		}
	}
	if err := p.notifier.SendAssignmentNotification(playerInfos, matches, asg, dryRun); err != nil {
		log.Error("Failed to send assignment notification", "error", err)
	}
	log.Info("Assignment accepted", "players", len(asg))
	return asg, nil
}

// IsRejection reports whether err is one of the engine's typed rejections,
// as opposed to a configuration or storage failure.
func IsRejection(err error) bool {
	var pairsErr *assignment.InsufficientResourcesForPairsError
	var targetErr *assignment.TargetTooLowError
	var totalErr *assignment.InsufficientResourcesTotalError
	var pairAsgErr *assignment.PairAssignmentExhaustedError
	var fillErr *assignment.DeficitFillExhaustedError
	var invariantErr *assignment.AssignmentInvariantViolatedError
	return errors.As(err, &pairsErr) ||
		errors.As(err, &targetErr) ||
		errors.As(err, &totalErr) ||
		errors.As(err, &pairAsgErr) ||
		errors.As(err, &fillErr) ||
		errors.As(err, &invariantErr)
}

// RejectionReason turns a typed engine error into a message a non-engineer
// in the channel can act on.
func RejectionReason(err error) string {
	var pairsErr *assignment.InsufficientResourcesForPairsError
	if errors.As(err, &pairsErr) {
		return fmt.Sprintf("Not enough matches for every pair to share one: need %d, have %d. Add matches or drop players.", pairsErr.Required, pairsErr.Available)
	}
	var targetErr *assignment.TargetTooLowError
	if errors.As(err, &targetErr) {
		return fmt.Sprintf("Target of %d matches per player is too low for this group; it must be at least %d.", targetErr.Given, targetErr.MinimumRequired)
	}
	var totalErr *assignment.InsufficientResourcesTotalError
	if errors.As(err, &totalErr) {
		return fmt.Sprintf("Not enough matches to reach the target: need %d in total, have %d.", totalErr.Required, totalErr.Available)
	}
	var pairAsgErr *assignment.PairAssignmentExhaustedError
	if errors.As(err, &pairAsgErr) {
		return fmt.Sprintf("Could not find a match for %d pair(s). Reroll or add matches.", pairAsgErr.UnsatisfiedPairs)
	}
	var fillErr *assignment.DeficitFillExhaustedError
	if errors.As(err, &fillErr) {
		return fmt.Sprintf("Could not top up every player to the target: one player ended %d match(es) short. Reroll or add matches.", fillErr.ShortBy)
	}
	var invariantErr *assignment.AssignmentInvariantViolatedError
	if errors.As(err, &invariantErr) {
		return "The deal failed an internal consistency check. Reroll."
	}
	return err.Error()
}
