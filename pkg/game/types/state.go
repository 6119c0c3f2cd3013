package types

import "fmt"

// SessionState is the state of a game session.
type SessionState uint8

const (
	StatePlaying SessionState = iota
	StateGameOver
)

func (s SessionState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ParseSessionState parses the string form of a SessionState.
func ParseSessionState(s string) (SessionState, error) {
	switch s {
	case "playing":
		return StatePlaying, nil
	case "game_over":
		return StateGameOver, nil
	default:
		return StatePlaying, fmt.Errorf("unknown session state: %s", s)
	}
}

func (s SessionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SessionState) UnmarshalText(b []byte) error {
	parsed, err := ParseSessionState(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
