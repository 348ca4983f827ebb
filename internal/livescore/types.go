package livescore

// MatchScore is the engine-facing view of a live match as reported by the
// scores API.
type MatchScore struct {
	MatchID   string
	HomeTeam  string
	AwayTeam  string
	Kickoff   int64
	Status    Status
	HomeScore int
	AwayScore int
}

// Status is the lifecycle state reported by the scores API, normalized
// from its wire values.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusLive      Status = "LIVE"
	StatusPaused    Status = "PAUSED"
	StatusFinished  Status = "FINISHED"
	StatusPostponed Status = "POSTPONED"
)

// scoreResponse mirrors the relevant part of the API's match payload.
type scoreResponse struct {
	ID      int64  `json:"id"`
	UTCDate string `json:"utcDate"`
	Status  string `json:"status"`
	HomeTeam struct {
		Name string `json:"name"`
	} `json:"homeTeam"`
	AwayTeam struct {
		Name string `json:"name"`
	} `json:"awayTeam"`
	Score struct {
		FullTime struct {
			Home *int `json:"home"`
			Away *int `json:"away"`
		} `json:"fullTime"`
	} `json:"score"`
}

// normalizeStatus folds the API's wire statuses into the engine-facing set.
func normalizeStatus(wire string) Status {
	switch wire {
	case "IN_PLAY":
		return StatusLive
	case "PAUSED":
		return StatusPaused
	case "FINISHED":
		return StatusFinished
	case "POSTPONED", "SUSPENDED", "CANCELLED":
		return StatusPostponed
	default:
		// TIMED, SCHEDULED and anything unknown count as not yet started.
		return StatusScheduled
	}
}
