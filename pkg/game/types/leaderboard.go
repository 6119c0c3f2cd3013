package types

// LeaderboardEntry is a single high score.
type LeaderboardEntry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	// CreatedAt is the unix time in milliseconds at which the score was recorded
	CreatedAt int64 `json:"createdAt,omitempty"`
}
