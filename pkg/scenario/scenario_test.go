package scenario

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/conditionals"
	"github.com/jwebster45206/adventure-engine/pkg/game"
	"github.com/jwebster45206/adventure-engine/pkg/state"
)

func minimal() *Scenario {
	return &Scenario{
		Title:    "Hall",
		Start:    Location{Room: "hall", State: "hall_day"},
		Fallback: "huh",
		Rooms: []Room{
			{ID: "hall", States: []RoomState{{ID: "hall_day", Description: "A hall."}}},
			{ID: "yard", States: []RoomState{{ID: "yard_day", Description: "A yard."}}},
		},
		Connections: []Connection{
			{From: "hall", Exits: []Exit{{To: "yard", When: conditionals.When{Command: []string{"go_north"}}}}},
		},
		Items:      []Item{{ID: "lamp", Description: "a lamp"}},
		Placements: []Placement{{Item: "lamp", Room: "yard"}},
		Commands: []Pattern{
			{Pattern: "n(orth)?", Command: "go_north"},
			{Pattern: "take lamp", Command: "take_lamp"},
		},
		Actions: map[string]Action{
			"go_north":  {Do: DoGo},
			"take_lamp": {Do: DoPickUp, Item: "lamp"},
			"huh":       {Do: DoSay, Text: "Huh?"},
		},
	}
}

func TestValidate_Minimal(t *testing.T) {
	warnings, err := Validate(minimal())
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *Scenario)
		want   string
	}{
		{"no rooms", func(s *Scenario) { s.Rooms = nil }, "scenario has no rooms"},
		{"bad room id", func(s *Scenario) { s.Rooms[1].ID = "Yard" }, "room ID 'Yard' should be lowercase snake_case"},
		{"duplicate room", func(s *Scenario) { s.Rooms[1].ID = "hall" }, "room ID 'hall' is used twice"},
		{"duplicate state", func(s *Scenario) { s.Rooms[1].States[0].ID = "hall_day" }, "state ID 'hall_day' is used in rooms hall and yard"},
		{"room without states", func(s *Scenario) { s.Rooms[1].States = nil }, "room yard has no states"},
		{"start state elsewhere", func(s *Scenario) { s.Start.State = "yard_day" }, "start state 'yard_day' belongs to room yard, not hall"},
		{"unknown start room", func(s *Scenario) { s.Start.Room = "attic" }, "start room 'attic' does not exist"},
		{"exit to nowhere", func(s *Scenario) { s.Connections[0].Exits[0].To = "attic" }, "exit from hall leads to unknown room 'attic'"},
		{"exits listed twice", func(s *Scenario) { s.Connections = append(s.Connections, s.Connections[0]) }, "connections from hall are listed twice"},
		{"item with both", func(s *Scenario) {
			s.Items[0].States = []ItemState{{Description: "a lit lamp"}}
		}, "item lamp has both a description and states"},
		{"item with neither", func(s *Scenario) { s.Items[0].Description = "" }, "item lamp needs a description or states"},
		{"placement in unknown room", func(s *Scenario) { s.Placements[0].Room = "attic" }, "item lamp is placed in unknown room 'attic'"},
		{"placement carried and in room", func(s *Scenario) { s.Placements[0].Carried = true }, "item lamp is both carried and in room yard"},
		{"placed twice", func(s *Scenario) { s.Placements = append(s.Placements, Placement{Item: "lamp", Carried: true}) }, "item lamp is placed twice"},
		{"bad pattern", func(s *Scenario) { s.Commands[0].Pattern = "(" }, "pattern 0: failed to compile"},
		{"command without action", func(s *Scenario) {
			s.Commands = append(s.Commands, Pattern{Pattern: "dance", Command: "dance"})
		}, "command 'dance' has no action"},
		{"no fallback", func(s *Scenario) { s.Fallback = "" }, "fallback command is required"},
		{"fallback without action", func(s *Scenario) { s.Fallback = "what" }, "fallback command 'what' has no action"},
		{"unknown do", func(s *Scenario) { s.Actions["huh"] = Action{Do: "teleport"} }, "action huh has unknown do 'teleport'"},
		{"missing do", func(s *Scenario) { s.Actions["huh"] = Action{} }, "action huh has no 'do'"},
		{"unknown item", func(s *Scenario) { s.Actions["take_lamp"] = Action{Do: DoPickUp, Item: "torch"} }, "action take_lamp refers to unknown item 'torch'"},
		{"empty trigger", func(s *Scenario) { s.Actions["huh"] = Action{Do: DoTrigger} }, "action huh triggers neither a tag nor a state"},
		{"trigger unknown state", func(s *Scenario) {
			s.Actions["huh"] = Action{Do: DoTrigger, State: "night"}
		}, "action huh triggers unknown state 'night'"},
		{"branches and do", func(s *Scenario) {
			s.Actions["huh"] = Action{Do: DoSay, Branches: []Action{{Do: DoSay}}}
		}, "action huh has both branches and do 'say'"},
		{"bad branch", func(s *Scenario) {
			s.Actions["huh"] = Action{Branches: []Action{{Do: "fly"}}}
		}, "action huh branch 0 has unknown do 'fly'"},
		{"unknown reference in when", func(s *Scenario) {
			s.Connections[0].Exits[0].When = conditionals.When{From: "attic"}
		}, `when clause: unknown reference: room "attic"`},
		{"unknown item in branch when", func(s *Scenario) {
			s.Actions["huh"] = Action{Branches: []Action{{When: &conditionals.When{Carrying: []string{"torch"}}, Do: DoSay}}}
		}, `unknown reference: item "torch"`},
		{"duplicate npc", func(s *Scenario) {
			n := NPC{ID: "cat", Name: "Cat", Start: Location{Room: "yard", State: "yard_day"}}
			s.NPCs = []NPC{n, n}
		}, "NPC ID 'cat' is used twice"},
		{"npc in unknown room", func(s *Scenario) {
			s.NPCs = []NPC{{ID: "cat", Start: Location{Room: "attic"}}}
		}, "NPC cat start room 'attic' does not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := minimal()
			tt.modify(s)
			_, err := Validate(s)
			require.ErrorIs(t, err, ErrInvalidScenario)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	s := minimal()
	s.Rooms[1].States[0].When = conditionals.When{Tagged: []string{"gate_open"}}
	s.Actions["dance"] = Action{Do: DoSay, Text: "You dance."}
	s.Actions["huh"] = Action{Branches: []Action{{When: &conditionals.When{Never: true}, Do: DoSay}}}

	warnings, err := Validate(s)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"room yard has no catch-all state; entering it can fail",
		"action 'dance' is not reachable from any command pattern",
		"action huh has no catch-all branch",
	}, warnings)
}

func TestBuild_Minimal(t *testing.T) {
	def, err := Build(minimal(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Hall", def.Title)

	g, err := game.New(def)
	require.NoError(t, err)

	res, err := g.Turn("north")
	require.NoError(t, err)
	assert.Equal(t, state.KindNewRoom, res.Event.Kind)
	assert.Equal(t, "A yard.\nYou see a lamp", res.Text)

	res, err = g.Turn("take lamp")
	require.NoError(t, err)
	assert.Equal(t, "Picked up a lamp.", res.Text)

	res, err = g.Turn("sing")
	require.NoError(t, err)
	assert.Equal(t, "Huh?", res.Text)
}

func TestBuild_ItemStateHere(t *testing.T) {
	s := minimal()
	s.Items[0] = Item{ID: "lamp", States: []ItemState{
		{Description: "a lamp glowing at your feet", When: conditionals.When{Here: []string{"lamp"}}},
		{Description: "a lamp"},
	}}
	s.Commands = append(s.Commands, Pattern{Pattern: "i(nventory)?", Command: "inventory"})
	s.Actions["inventory"] = Action{Do: DoInventory}
	_, err := Validate(s)
	require.NoError(t, err)

	def, err := Build(s, nil)
	require.NoError(t, err)
	g, err := game.New(def)
	require.NoError(t, err)

	steps := []struct {
		input    string
		expected string
	}{
		{"north", "A yard.\nYou see a lamp glowing at your feet"},
		{"take lamp", "Picked up a lamp glowing at your feet."},
		{"inventory", "You carry a lamp"},
	}
	for _, step := range steps {
		res, err := g.Turn(step.input)
		require.NoError(t, err, step.input)
		assert.Equal(t, step.expected, res.Text, step.input)
	}
}

func TestBuild_GoNoExitText(t *testing.T) {
	s := minimal()
	s.Commands = append(s.Commands, Pattern{Pattern: "s(outh)?", Command: "go_south"})
	s.Actions["go_south"] = Action{Do: DoGo, NoExit: "No path leads south."}

	def, err := Build(s, nil)
	require.NoError(t, err)
	g, err := game.New(def)
	require.NoError(t, err)

	res, err := g.Turn("south")
	require.NoError(t, err)
	assert.Equal(t, state.KindSameRoom, res.Event.Kind)
	assert.Equal(t, "No path leads south.", res.Event.Text)
}

func TestParse(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		data := `{
			"start": {"room": "hall", "state": "hall_day"},
			"fallback": "huh",
			"rooms": [{"id": "hall", "states": [{"id": "hall_day", "description": "A hall.", "when": "always"}]}],
			"actions": {"huh": {"do": "say", "text": "Huh?"}}
		}`
		s, err := Parse([]byte(data), "tiny_hall.json")
		require.NoError(t, err)
		assert.Equal(t, "Tiny Hall", s.Title)
		assert.True(t, s.Rooms[0].States[0].When.IsEmpty())
		_, err = Validate(s)
		assert.NoError(t, err)
	})

	t.Run("json unknown field", func(t *testing.T) {
		_, err := Parse([]byte(`{"rooms": [], "weather": "rain"}`), "x.json")
		require.ErrorIs(t, err, ErrInvalidScenario)
		assert.Contains(t, err.Error(), "strict JSON")
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := Parse([]byte(`{"rooms": [`), "x.json")
		require.ErrorIs(t, err, ErrInvalidScenario)
		assert.Contains(t, err.Error(), "invalid JSON")
	})

	t.Run("yaml unknown field", func(t *testing.T) {
		_, err := Parse([]byte("rooms: []\nweather: rain\n"), "x.yaml")
		require.ErrorIs(t, err, ErrInvalidScenario)
		assert.Contains(t, err.Error(), "strict YAML")
	})
}

func TestTitleFromName(t *testing.T) {
	assert.Equal(t, "Old Garden", TitleFromName("old_garden.yaml"))
	assert.Equal(t, "Garden", TitleFromName("/tmp/garden.json"))
}

func TestBuiltin(t *testing.T) {
	assert.Contains(t, BuiltinNames(), "garden")

	data, err := Builtin("garden")
	require.NoError(t, err)
	s, err := Parse(data, "garden.yaml")
	require.NoError(t, err)
	assert.Equal(t, "The Garden", s.Title)

	warnings, err := Validate(s)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"room inside has no catch-all state; entering it can fail",
		"room common_land has no catch-all state; entering it can fail",
	}, warnings)

	_, err = Builtin("castle")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	def, err := Open("garden", nil)
	require.NoError(t, err)
	assert.Equal(t, "The Garden", def.Title)

	dir := t.TempDir()
	path := filepath.Join(dir, "garden_copy.yaml")
	data, err := Builtin("garden")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	def, err = Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "The Garden", def.Title)

	_, err = Open("no_such_world", nil)
	assert.Error(t, err)
}

func newGarden(t *testing.T) *game.Game {
	t.Helper()
	def, err := Open("garden", rand.New(rand.NewPCG(3, 5)))
	require.NoError(t, err)
	g, err := game.New(def)
	require.NoError(t, err)
	return g
}

type step struct {
	input    string
	wantKind state.Kind
	wantText string
}

func play(t *testing.T, g *game.Game, steps []step) {
	t.Helper()
	for _, s := range steps {
		res, err := g.Turn(s.input)
		require.NoError(t, err, s.input)
		assert.Equal(t, s.wantKind, res.Event.Kind, s.input)
		if s.wantText != "" {
			assert.Equal(t, s.wantText, res.Text, s.input)
		}
	}
}

func TestGarden_Opening(t *testing.T) {
	g := newGarden(t)
	text, err := g.Opening()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Welcome!\nYou are standing on a lawn"), text)
	assert.True(t, strings.HasSuffix(text, "You see a key"), text)
	assert.Equal(t, "An old man wanders slowly past.", g.StatusText())
}

func TestGarden_Win(t *testing.T) {
	g := newGarden(t)
	play(t, g, []step{
		{"take key", state.KindPickedUpItem, "You pick up a key."},
		{"open door", state.KindGeneric, "You can't use a key here."},
		{"s", state.KindNewRoom, ""},
		{"go in", state.KindSameRoom, "You can't go that way."},
		{"look in", state.KindSameRoom, "Duh! There is a closed door in the way!"},
		{"unlock the door", state.KindSameRoom, "You unlock and open the door."},
		{"unlock the door", state.KindGeneric, "You have already unlocked the door."},
		{"examine key", state.KindGeneric, "An ordinary key."},
		{"i", state.KindInventory, "You carry a receipt, a well-used key"},
		{"go in", state.KindNewRoom, ""},
		{"switch off the light", state.KindSameRoom, ""},
		{"turn on the lamp", state.KindSameRoom, "Let there be light!\nYou see a chainsaw"},
		{"turn on the lamp", state.KindSameRoom, "It's already on, silly!\nYou see a chainsaw"},
		{"take lamp", state.KindGeneric, ""},
		{"take chainsaw", state.KindPickedUpItem, "You pick up a chainsaw."},
		{"n", state.KindNewRoom, ""},
		{"n", state.KindNewRoom, ""},
		{"saw down the hedge", state.KindSameRoom, "Vroooom! You saw down the hedge like the best of gardeners!"},
		{"saw hedge", state.KindSameRoom, "For some mysterious reason the remaining hedges cannot be sawn down."},
		{"n", state.KindNewRoom, ""},
		{"dance like nobody is watching", state.KindGeneric, "Dance, dance, dance!"},
		{"xyzzy", state.KindGeneric, "Hmm, I didn't understand that!"},
		{"bye", state.KindEnd, "Game over!\nThat's enough for today, thanks for playing!"},
	})
	assert.True(t, g.Ended())

	room, err := g.Log().CurrentRoom(actor.Player)
	require.NoError(t, err)
	assert.Equal(t, "common_land", room.ID)
	assert.Equal(t, 1, g.Log().CountTagged("hedge_sawn"))
}

func TestGarden_ChainsawInTheDark(t *testing.T) {
	g := newGarden(t)
	play(t, g, []step{
		{"take key", state.KindPickedUpItem, ""},
		{"s", state.KindNewRoom, ""},
		{"open", state.KindSameRoom, ""},
		{"enter", state.KindNewRoom, ""},
		{"take chainsaw", state.KindEnd, ""},
	})
	assert.True(t, g.Ended())
	last, ok := g.Log().Last()
	require.True(t, ok)
	assert.Contains(t, last.Text, "heap of blood")
}

func TestGarden_EnterRendersRoom(t *testing.T) {
	g := newGarden(t)
	play(t, g, []step{
		{"take key", state.KindPickedUpItem, ""},
		{"s", state.KindNewRoom, "You are standing on a wooden deck in front of a house.\nA closed door leads into the house."},
		{"drop key", state.KindDroppedItem, "You drop a key."},
		{"look", state.KindLookAround, "You look around.\nYou are standing on a wooden deck in front of a house.\nA closed door leads into the house.\nYou see a key"},
		{"drop key", state.KindNoSuchItemToDrop, "You don't have one to drop!"},
		{"take receipt", state.KindNoSuchItemHere, "You can't pick that up here!"},
	})
}
