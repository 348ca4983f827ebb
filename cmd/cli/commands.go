package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	targetCount   int
	mode          string
	commonMatchID string
	dryRun        bool
	playerName    string
)

func init() {
	assignCmd.Flags().IntVar(&targetCount, "target", 0, "Matches per player from the pool")
	assignCmd.Flags().StringVar(&mode, "mode", "PAIRWISE", "Assignment mode (PAIRWISE or COMMON_PAIRWISE)")
	assignCmd.Flags().StringVar(&commonMatchID, "common", "", "Common match ID (COMMON_PAIRWISE only)")
	assignCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the engine without saving the result")
	addPlayerCmd.Flags().StringVar(&playerName, "name", "", "Name of the player to add")
	addPlayerCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(assignCmd)
	rootCmd.AddCommand(assignmentsCmd)
	rootCmd.AddCommand(pollCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player",
	Short: "Add a player to the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := fmt.Sprintf(`{"name": %q}`, playerName)
		return performPostRequest("/players", payload)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the tracked matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Deal matches to players",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{}
		params.Set("target_count", fmt.Sprint(targetCount))
		params.Set("mode", mode)
		if commonMatchID != "" {
			params.Set("common_match_id", commonMatchID)
		}
		if dryRun {
			params.Set("dry_run", "true")
		}
		return performPostRequest("/assign?"+params.Encode(), "")
	},
}

var assignmentsCmd = &cobra.Command{
	Use:   "assignments",
	Short: "Show the current assignment",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/assignments")
	},
}

var pollCmd = &cobra.Command{
	Use:   "poll",
	Short: "Trigger a score poll",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/poll")
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Advance tracked matches through the state machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/process")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the sip leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard")
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the session store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/clear")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint, payload string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(payload))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
