// Package actor defines the characters that author events in the log.
package actor

// Character is anyone whose actions are recorded in the event log. Characters
// are compared by identity, so the log can be filtered per actor.
type Character interface {
	ID() string
	Description() string
}

type player struct{}

func (player) ID() string          { return "player" }
func (player) Description() string { return "A player" }

// Player is the single player identity.
var Player Character = player{}

// IsPlayer reports whether c is the player.
func IsPlayer(c Character) bool {
	return c == Player
}
