package main

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"DB_NAME"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	// Optional remote database credentials.
	config["TURSO_PRIMARY_URL"] = os.Getenv("TURSO_PRIMARY_URL")
	config["TURSO_AUTH_TOKEN"] = os.Getenv("TURSO_AUTH_TOKEN")
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the database, remote when configured.
	dbURL := "file:" + cfg["DB_NAME"]
	if cfg["TURSO_PRIMARY_URL"] != "" {
		dbURL = fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	}
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to database: %s", err)
	}

	log.Info("Successfully connected to the database.")

	demoPlayers := []string{"Seeder Player A", "Seeder Player B", "Seeder Player C", "Seeder Player D"}
	for _, name := range demoPlayers {
		_, err := db.Exec("INSERT OR IGNORE INTO players (id, name, sips) VALUES (?, ?, 0)", uuid.NewString(), name)
		if err != nil {
			log.Fatalf("Failed to insert demo player %s: %s", name, err)
		}
	}
	log.Info("Ensured demo players exist.")

	type fixture struct {
		id       string
		home     string
		away     string
		kickoff  time.Time
		status   string
	}
	now := time.Now()
	fixtures := []fixture{
		{"524001", "Arsenal", "Spurs", now.Add(30 * time.Minute), "SCHEDULED"},
		{"524002", "Leeds", "Wolves", now.Add(30 * time.Minute), "SCHEDULED"},
		{"524003", "Everton", "Brentford", now.Add(2 * time.Hour), "SCHEDULED"},
		{"524004", "Fulham", "Brighton", now.Add(2 * time.Hour), "SCHEDULED"},
		{"524005", "Newcastle", "Burnley", now.Add(2 * time.Hour), "SCHEDULED"},
		{"524006", "Chelsea", "Villa", now.Add(-45 * time.Minute), "LIVE"},
	}

	startTime := time.Now()
	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	for _, f := range fixtures {
		_, err := tx.Exec(`
			INSERT OR IGNORE INTO matches (id, home_team, away_team, kickoff, status, home_score, away_score, processing_status)
			VALUES (?, ?, ?, ?, ?, 0, 0, 'NEW');`,
			f.id, f.home, f.away, f.kickoff.Unix(), f.status)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert fixture %s: %s", f.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted demo fixtures.", "count", len(fixtures), "duration", duration)
}
