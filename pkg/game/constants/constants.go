package constants

const (
	// GridSize is the default width and height of the board
	GridSize int = 10
	// ActivePieceCount is the default number of pieces offered at once
	ActivePieceCount int = 3
	// PointsPerLine is awarded for every completed row and every completed column
	PointsPerLine int = 100

	// LeaderboardSize is the number of entries kept on the leaderboard
	LeaderboardSize int = 5
	// LeaderboardNameMaxLength is the longest accepted player name
	LeaderboardNameMaxLength int = 16

	// EventQueueSize is the capacity of a session's event queue
	EventQueueSize int = 256
)
