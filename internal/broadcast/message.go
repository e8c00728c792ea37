package broadcast

import (
	"fmt"

	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// Message is the wire form of one appended event.
type Message struct {
	GameID    string     `json:"game_id"`
	ID        string     `json:"id"`
	Seq       int        `json:"seq"`
	Kind      state.Kind `json:"kind"`
	Character string     `json:"character"`
	Room      string     `json:"room,omitempty"`
	State     string     `json:"state,omitempty"`
	Item      string     `json:"item,omitempty"`
	Tag       string     `json:"tag,omitempty"`
	Text      string     `json:"text,omitempty"`
}

// NewMessage flattens ev, replacing world objects with their ids.
func NewMessage(gameID string, ev state.Event) Message {
	m := Message{
		GameID: gameID,
		ID:     ev.ID.String(),
		Seq:    ev.Seq,
		Kind:   ev.Kind,
		Tag:    ev.Tag,
		Text:   ev.Text,
	}
	if ev.Character != nil {
		m.Character = ev.Character.ID()
	}
	if ev.Room != nil {
		m.Room = ev.Room.ID
	}
	if ev.State != nil {
		m.State = ev.State.ID
	}
	if ev.Item != nil {
		m.Item = ev.Item.ID
	}
	return m
}

// String renders m as one transcript line for spectators.
func (m Message) String() string {
	s := fmt.Sprintf("#%d %s %s", m.Seq, m.Character, m.Kind)
	if m.Room != "" {
		s += " @" + m.Room
	}
	if m.Item != "" {
		s += " [" + m.Item + "]"
	}
	if m.Tag != "" {
		s += " <" + m.Tag + ">"
	}
	if m.Text != "" {
		s += ": " + m.Text
	}
	return s
}
