package game

import (
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/action"
	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

// Render formats a player event for display. Entering or looking around
// shows the room description and the items lying there; staying put shows
// the items; everything else is just the event text.
func (g *Game) Render(ev state.Event) (string, error) {
	switch ev.Kind {
	case state.KindNewRoom, state.KindLookAround:
		desc := ""
		if ev.State != nil {
			desc = ev.State.Description
		}
		return g.withItems(joinLines(ev.Text, desc))
	case state.KindSameRoom:
		return g.withItems(ev.Text)
	default:
		return ev.Text, nil
	}
}

func (g *Game) withItems(text string) (string, error) {
	room, err := g.log.CurrentRoom(actor.Player)
	if err != nil {
		return "", err
	}
	items, err := state.ItemsIn(room, g.log)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return text, nil
	}
	list, err := action.DescribeItems(items, g.log)
	if err != nil {
		return "", err
	}
	return joinLines(text, g.def.seeItemsText()+" "+list), nil
}

func joinLines(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimRight(p, "\n"); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
