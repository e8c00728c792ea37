package command

type Command string

const (
	GoNorth Command = "go_north"
	GoEast  Command = "go_east"
	GoSouth Command = "go_south"
	GoWest  Command = "go_west"

	// NPC is the command non-player characters act under when they wander.
	NPC Command = "npc"

	None Command = "" // No command, used for fallback
)

// Input is what a guard or handler sees of the player's turn.
type Input struct {
	Command Command `json:"command"`
	Raw     string  `json:"raw,omitempty"` // text as typed, if any
}

// New returns an Input for cmd with no raw text attached.
func New(cmd Command) Input {
	return Input{Command: cmd}
}

// NPCInput is the Input used when evaluating guards on behalf of an NPC.
func NPCInput() Input {
	return Input{Command: NPC}
}

// Directions lists the four compass commands in a stable order.
func Directions() []Command {
	return []Command{GoNorth, GoEast, GoSouth, GoWest}
}
