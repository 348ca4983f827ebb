package slack

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/klarskov/matchpint/internal/assignment"
	"github.com/klarskov/matchpint/internal/session"
	"github.com/slack-go/slack"
)

// formatAssignmentNotification creates the Slack message for a freshly
// accepted assignment using Block Kit.
func (s *Notifier) formatAssignmentNotification(players []session.PlayerInfo, matches []*session.Match, asg assignment.Assignment) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "🍺 Matches have been dealt! 🍺", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	matchNames := make(map[string]string, len(matches))
	for _, match := range matches {
		matchNames[match.ID] = fmt.Sprintf("%s – %s", match.HomeTeam, match.AwayTeam)
	}

	// One section per player, matches listed in a stable order.
	for _, player := range players {
		matchIDs := make([]string, 0, len(asg[player.ID]))
		for matchID := range asg[player.ID] {
			matchIDs = append(matchIDs, matchID)
		}
		sort.Slice(matchIDs, func(i, j int) bool {
			return matchNames[matchIDs[i]] < matchNames[matchIDs[j]]
		})

		lines := make([]string, 0, len(matchIDs))
		for _, matchID := range matchIDs {
			name := matchNames[matchID]
			if name == "" {
				name = matchID
			}
			lines = append(lines, fmt.Sprintf("• %s", name))
		}
		playerText := fmt.Sprintf("%s:\n%s", player.Name, strings.Join(lines, "\n"))
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	contextText := slack.NewTextBlockObject("plain_text", "A goal in your match means you drink. Skål!", true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}

// formatAssignmentFailed creates the Slack message for a rejected
// assignment run.
func (s *Notifier) formatAssignmentFailed(reason string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🚫 Could not deal matches", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", reason, true, false), nil, nil))

	contextText := slack.NewTextBlockObject("plain_text", "Add matches, drop players or lower the target, then reroll.", true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}

// formatGoalNotification creates the Slack message for a detected goal.
func (s *Notifier) formatGoalNotification(match *session.Match, drinkers []session.PlayerInfo) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⚽ GOOOAL! ⚽", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	scoreText := fmt.Sprintf("%s %d – %d %s", match.HomeTeam, match.HomeScore, match.AwayScore, match.AwayTeam)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scoreText, true, false), nil, nil))

	if len(drinkers) > 0 {
		names := make([]string, 0, len(drinkers))
		for _, player := range drinkers {
			names = append(names, fmt.Sprintf("• %s", player.Name))
		}
		drinkersText := "Drink up:\n" + strings.Join(names, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", drinkersText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatResultNotification creates the Slack message for a finished match.
func (s *Notifier) formatResultNotification(match *session.Match) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏁 Full time! 🏁", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s %d – %d %s\nKickoff was %s",
		match.HomeTeam, match.HomeScore, match.AwayScore, match.AwayTeam,
		time.Unix(match.Kickoff, 0).Format("Monday 02 Jan, 15:04"))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatSipLeaderboard creates the Slack message for the sip tally.
func (s *Notifier) formatSipLeaderboard(players []session.PlayerInfo) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Sip leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(players) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "Nobody has had to drink yet. Boring match day.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	medals := []string{"🥇", "🥈", "🥉"}
	lines := make([]string, 0, len(players))
	for i, player := range players {
		rank := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		lines = append(lines, fmt.Sprintf("%s %s – %d sips", rank, player.Name, player.Sips))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
