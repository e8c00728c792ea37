package actor

// NPC is the identity of a non-player character. Two NPCs are the same
// character only if they are the same pointer, even when their fields match.
type NPC struct {
	Key     string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"` // e.g. "an old man"
}

var _ Character = (*NPC)(nil)

// NewNPC creates an NPC identity.
func NewNPC(id, name, summary string) *NPC {
	return &NPC{Key: id, Name: name, Summary: summary}
}

func (n *NPC) ID() string { return n.Key }

// Description returns the NPC's summary, falling back to its name.
func (n *NPC) Description() string {
	if n.Summary != "" {
		return n.Summary
	}
	return n.Name
}
