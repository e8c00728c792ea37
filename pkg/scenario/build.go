package scenario

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/jwebster45206/adventure-engine/pkg/action"
	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/jwebster45206/adventure-engine/pkg/conditionals"
	"github.com/jwebster45206/adventure-engine/pkg/game"
	"github.com/jwebster45206/adventure-engine/pkg/state"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// builder turns a validated Scenario into world objects. Rooms, states and
// items are created first so that guards compiled afterwards can refer to
// any of them.
type builder struct {
	rooms  map[string]*world.Room
	states map[string]*world.RoomState
	items  map[string]*world.Item
	conns  world.Connections
	errs   []error
}

func (b *builder) Room(id string) (*world.Room, bool) {
	r, ok := b.rooms[id]
	return r, ok
}

func (b *builder) State(id string) (*world.RoomState, bool) {
	s, ok := b.states[id]
	return s, ok
}

func (b *builder) Item(id string) (*world.Item, bool) {
	it, ok := b.items[id]
	return it, ok
}

func (b *builder) guard(w conditionals.When, where string) world.Guard {
	g, err := conditionals.Compile(w, b)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", where, err))
		return world.Never
	}
	return g
}

// Build creates the game definition described by s. s should have passed
// Validate; Build still reports anything it cannot resolve.
func Build(s *Scenario, rng *rand.Rand) (*game.Definition, error) {
	b := &builder{
		rooms:  make(map[string]*world.Room),
		states: make(map[string]*world.RoomState),
		items:  make(map[string]*world.Item),
		conns:  make(world.Connections),
	}

	for _, r := range s.Rooms {
		room := world.NewRoom(r.ID)
		if r.Name != "" {
			room.Name = r.Name
		}
		b.rooms[r.ID] = room
		for _, st := range r.States {
			b.states[st.ID] = world.NewState(st.ID, st.Description)
		}
	}
	for _, it := range s.Items {
		if len(it.States) == 0 {
			b.items[it.ID] = world.NewItem(it.ID, it.Description)
		} else {
			b.items[it.ID] = world.NewMultistateItem(it.ID)
		}
	}

	for _, r := range s.Rooms {
		room := b.rooms[r.ID]
		for _, st := range r.States {
			g := b.guard(st.When, fmt.Sprintf("room %s state %s", r.ID, st.ID))
			room.States = append(room.States, world.When(g, b.states[st.ID]))
		}
	}
	for _, it := range s.Items {
		item := b.items[it.ID]
		for i, st := range it.States {
			g := b.guard(st.When, fmt.Sprintf("item %s state %d", it.ID, i))
			item.States = append(item.States, world.ItemWhen(g, &world.ItemState{Description: st.Description}))
		}
	}
	for _, c := range s.Connections {
		from := b.rooms[c.From]
		exits := make([]world.Connection, 0, len(c.Exits))
		for _, e := range c.Exits {
			g := b.guard(e.When, fmt.Sprintf("exit %s -> %s", c.From, e.To))
			exits = append(exits, world.Exit(g, b.rooms[e.To]))
		}
		b.conns[from] = exits
	}

	def := &game.Definition{
		Title:        s.Title,
		Intro:        s.Intro,
		SeeItemsText: s.SeeItems,
		Start:        b.place(s.Start),
		Connections:  b.conns,
		Actions:      make(action.Table, len(s.Actions)),
		Fallback:     command.Command(s.Fallback),
	}

	for _, p := range s.Placements {
		item := b.items[p.Item]
		if p.Carried {
			def.Placements = append(def.Placements, world.Carried(item))
		} else {
			def.Placements = append(def.Placements, world.InRoom(item, b.rooms[p.Room]))
		}
	}
	for _, p := range s.Commands {
		pat, err := command.Compile(p.Pattern, command.Command(p.Command))
		if err != nil {
			b.errs = append(b.errs, err)
			continue
		}
		def.Commands = append(def.Commands, pat)
	}
	for id, a := range s.Actions {
		def.Actions[command.Command(id)] = b.action(id, a)
	}

	adj := b.conns.Adjacency()
	for _, n := range s.NPCs {
		w := game.NewWanderer(actor.NewNPC(n.ID, n.Name, n.Description), adj, rng)
		if n.MinTurns > 0 {
			w.MinTurns = n.MinTurns
		}
		w.EnterText = n.EnterText
		w.StayText = n.StayText
		w.ArriveText = n.ArriveText
		w.LingerText = n.LingerText
		def.NPCs = append(def.NPCs, game.NPCStart{NPC: w, Start: b.place(n.Start)})
	}

	if len(b.errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, errors.Join(b.errs...))
	}
	return def, nil
}

func (b *builder) place(loc Location) state.Place {
	return state.Place{Room: b.rooms[loc.Room], State: b.states[loc.State]}
}

func (b *builder) action(id string, a Action) action.Handler {
	if len(a.Branches) > 0 {
		branches := make([]action.Branch, 0, len(a.Branches))
		for i, br := range a.Branches {
			g := world.Always
			if br.When != nil {
				g = b.guard(*br.When, fmt.Sprintf("action %s branch %d", id, i))
			}
			inner := br
			inner.When = nil
			branches = append(branches, action.When(g, b.action(fmt.Sprintf("%s branch %d", id, i), inner)))
		}
		return action.Choose(branches...)
	}

	var opts []action.Option
	if a.Success != "" {
		opts = append(opts, action.WithSuccess(a.Success))
	}
	if a.Failure != "" {
		opts = append(opts, action.WithFailure(a.Failure))
	}
	if a.NoExit != "" {
		opts = append(opts, action.WithNoExitText(a.NoExit))
	}

	switch a.Do {
	case DoGo:
		return action.Go(b.conns, opts...)
	case DoPickUp:
		return action.PickUp(b.items[a.Item], opts...)
	case DoDrop:
		return action.Drop(b.items[a.Item], opts...)
	case DoExamine:
		return action.Examine(b.items[a.Item], opts...)
	case DoInventory:
		return action.Inventory(opts...)
	case DoLook:
		return action.LookAround(a.Text)
	case DoSay:
		return action.Say(a.Text)
	case DoStay:
		return action.Stay(a.Text)
	case DoTrigger:
		var to *world.RoomState
		if a.State != "" {
			to = b.states[a.State]
		}
		return action.Trigger(a.Text, to, a.Tag)
	case DoEnd:
		return action.End(a.Text)
	default:
		b.errs = append(b.errs, fmt.Errorf("action %s: unknown do %q", id, a.Do))
		return action.Say(a.Text)
	}
}
