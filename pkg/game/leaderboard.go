package game

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/cbodonnell/woodblock/pkg/game/constants"
	"github.com/cbodonnell/woodblock/pkg/game/types"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// QualifiesForLeaderboard reports whether score earns a place on a
// leaderboard currently holding entries (sorted by score, descending).
// A score qualifies when the board is not full or when it beats the lowest entry.
func QualifiesForLeaderboard(entries []types.LeaderboardEntry, score int) bool {
	if len(entries) < constants.LeaderboardSize {
		return true
	}
	lowest := entries[0].Score
	for _, e := range entries {
		if e.Score < lowest {
			lowest = e.Score
		}
	}
	return score > lowest
}

// InsertLeaderboardEntry returns a new leaderboard with entry added, sorted
// by score descending and truncated to constants.LeaderboardSize entries.
// Among equal scores, earlier entries stay ahead.
func InsertLeaderboardEntry(entries []types.LeaderboardEntry, entry types.LeaderboardEntry) []types.LeaderboardEntry {
	out := make([]types.LeaderboardEntry, 0, len(entries)+1)
	out = append(out, entries...)
	out = append(out, entry)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > constants.LeaderboardSize {
		out = out[:constants.LeaderboardSize]
	}
	return out
}

// ValidatePlayerName trims name and checks that it is usable on the leaderboard.
func ValidatePlayerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < 1 || len(name) > constants.LeaderboardNameMaxLength {
		return "", fmt.Errorf("name must be between 1 and %d characters", constants.LeaderboardNameMaxLength)
	}
	if !nameRegex.MatchString(name) {
		return "", fmt.Errorf("name cannot contain special characters")
	}
	return name, nil
}
