package world

import (
	"errors"
	"testing"

	"github.com/jwebster45206/adventure-engine/pkg/actor"
	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHistory is a hand-filled History for guard tests.
type fakeHistory struct {
	tags    map[string]int
	carried map[*Item]bool
	lying   map[*Item]*Room
	turns   int
	at      *Room
}

func (h fakeHistory) LastTagged(tag string) int {
	if pos, ok := h.tags[tag]; ok {
		return pos
	}
	return -1
}

func (h fakeHistory) IsCarried(item *Item) bool             { return h.carried[item] }
func (h fakeHistory) IsIn(item *Item, room *Room) bool {
	r, ok := h.lying[item]
	return ok && r == room
}
func (h fakeHistory) TurnsSinceRoomEntry(actor.Character) int { return h.turns }
func (h fakeHistory) PlayerContext() GuardContext {
	return GuardContext{From: h.at, Character: actor.Player, History: h}
}

// countingGuard records how often it was evaluated.
type countingGuard struct {
	result bool
	calls  *int
}

func (g countingGuard) Evaluate(command.Input, GuardContext) bool {
	*g.calls++
	return g.result
}

func TestComposition_EvaluatesBothOperands(t *testing.T) {
	tests := []struct {
		name    string
		combine func(a, b Guard) Guard
		left    bool
		want    bool
	}{
		{"and with failing left", And, false, false},
		{"or with passing left", Or, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var leftCalls, rightCalls int
			g := tt.combine(countingGuard{tt.left, &leftCalls}, countingGuard{true, &rightCalls})

			assert.Equal(t, tt.want, g.Evaluate(command.Input{}, GuardContext{}))
			assert.Equal(t, 1, leftCalls)
			assert.Equal(t, 1, rightCalls, "right operand must be evaluated too")
		})
	}
}

func TestComposition_CommutativeAndAssociative(t *testing.T) {
	h := fakeHistory{tags: map[string]int{"key_used": 3}}
	a := North
	b := Tagged("key_used")
	c := Not(South)

	for _, cmd := range command.Directions() {
		in := command.New(cmd)
		ctx := GuardContext{History: h}

		assert.Equal(t, Or(a, b).Evaluate(in, ctx), Or(b, a).Evaluate(in, ctx), "or commutes for %s", cmd)
		assert.Equal(t, And(a, b).Evaluate(in, ctx), And(b, a).Evaluate(in, ctx), "and commutes for %s", cmd)
		assert.Equal(t, Or(Or(a, b), c).Evaluate(in, ctx), Or(a, Or(b, c)).Evaluate(in, ctx), "or associates for %s", cmd)
		assert.Equal(t, And(And(a, b), c).Evaluate(in, ctx), And(a, And(b, c)).Evaluate(in, ctx), "and associates for %s", cmd)
	}
}

func TestAllOfAnyOf(t *testing.T) {
	in := command.New(command.GoNorth)

	assert.True(t, AllOf().Evaluate(in, GuardContext{}))
	assert.False(t, AnyOf().Evaluate(in, GuardContext{}))
	assert.True(t, AllOf(North, Always).Evaluate(in, GuardContext{}))
	assert.False(t, AllOf(North, South).Evaluate(in, GuardContext{}))
	assert.True(t, AnyOf(South, North).Evaluate(in, GuardContext{}))
}

func TestHistoryGuards(t *testing.T) {
	key := NewItem("key", "a key")
	saw := NewItem("chainsaw", "a chainsaw")
	inside := NewRoom("inside", When(Always, NewState("dark", "It is dark.")))
	h := fakeHistory{
		tags:    map[string]int{"light:on": 4, "light:off": 7, "key_used": 2},
		carried: map[*Item]bool{key: true},
		lying:   map[*Item]*Room{saw: inside},
		turns:   2,
	}
	ctx := GuardContext{From: inside, History: h, Character: actor.Player}

	tests := []struct {
		name  string
		guard Guard
		want  bool
	}{
		{"tagged", Tagged("key_used"), true},
		{"not tagged", Tagged("hedge_sawn"), false},
		{"toggle off after on", Toggled("light:on", "light:off"), false},
		{"toggle on after off", Toggled("light:off", "light:on"), true},
		{"carrying", Carrying(key), true},
		{"not carrying", Carrying(NewItem("key", "a key")), false},
		{"item here", ItemHere(saw), true},
		{"carried item is not here", ItemHere(key), false},
		{"stayed long enough", StayedAtLeast(2), true},
		{"not stayed long enough", StayedAtLeast(3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.guard.Evaluate(command.Input{}, ctx))
		})
	}
}

func TestHistoryGuards_NoHistory(t *testing.T) {
	for _, g := range []Guard{Tagged("x"), Toggled("on", "off"), Carrying(NewItem("k", "k")), ItemHere(NewItem("k", "k")), StayedAtLeast(0)} {
		assert.False(t, g.Evaluate(command.Input{}, GuardContext{}))
	}
}

func TestRoom_ResolveState(t *testing.T) {
	dark := NewState("dark", "It is dark.")
	lit := NewState("lit", "A lamp glows.")
	fallback := NewState("plain", "A room.")
	h := fakeHistory{tags: map[string]int{"light:on": 1}}

	room := NewRoom("inside",
		When(Not(Toggled("light:on", "light:off")), dark),
		When(Toggled("light:on", "light:off"), lit),
		When(Always, fallback),
	)

	state, ok := room.ResolveState(command.Input{}, GuardContext{History: h})
	require.True(t, ok)
	assert.Same(t, lit, state)
	assert.True(t, room.HasCatchAll())

	state, ok = room.ResolveState(command.Input{}, GuardContext{History: fakeHistory{}})
	require.True(t, ok)
	assert.Same(t, dark, state, "first matching guard wins")
}

func TestRoom_ResolveState_NoMatch(t *testing.T) {
	room := NewRoom("locked", When(Never, NewState("never", "unreachable")))

	_, ok := room.ResolveState(command.Input{}, GuardContext{})
	assert.False(t, ok)
	assert.False(t, room.HasCatchAll())
}

func TestRoom_HasCatchAll_AnyPosition(t *testing.T) {
	room := NewRoom("cave",
		When(Always, NewState("cave_dark", "It is dark.")),
		When(Tagged("torch:on"), NewState("cave_lit", "Torchlight flickers.")),
	)
	assert.True(t, room.HasCatchAll())
}

func TestRoom_StateByID(t *testing.T) {
	open := NewState("open", "The door is open.")
	room := NewRoom("porch", When(Always, open))

	got, ok := room.StateByID("open")
	assert.True(t, ok)
	assert.Same(t, open, got)

	_, ok = room.StateByID("closed")
	assert.False(t, ok)
}

func TestConnections_Match(t *testing.T) {
	a := NewRoom("a", When(Always, NewState("a", "A")))
	b := NewRoom("b", When(Always, NewState("b", "B")))
	isolated := NewRoom("isolated")

	conns := Connections{
		a: {Exit(South, b), Exit(Or(South, North), a)},
		b: {Exit(North, a)},
	}

	to, defined := conns.Match(a, command.New(command.GoSouth), GuardContext{From: a})
	assert.True(t, defined)
	assert.Same(t, b, to, "first exit wins")

	to, defined = conns.Match(a, command.New(command.GoEast), GuardContext{From: a})
	assert.True(t, defined)
	assert.Nil(t, to)

	_, defined = conns.Match(isolated, command.New(command.GoEast), GuardContext{From: isolated})
	assert.False(t, defined)

	assert.ElementsMatch(t, []*Room{a, b}, conns.Rooms())
}

func TestConnections_Adjacency(t *testing.T) {
	a := NewRoom("a")
	b := NewRoom("b")
	c := NewRoom("c")

	conns := Connections{
		a: {Exit(South, b), Exit(OnCommand("enter"), b), Exit(North, c)},
		b: {Exit(North, a)},
	}

	adj := conns.Adjacency()
	assert.Equal(t, []*Room{b, c}, adj[a])
	assert.Equal(t, []*Room{a}, adj[b])
	assert.NotContains(t, adj, c)
}

func TestItem_State(t *testing.T) {
	unused := &ItemState{Description: "a key"}
	used := &ItemState{Description: "a well used key"}
	key := NewMultistateItem("key",
		ItemWhen(Not(Tagged("key_used")), unused),
		ItemWhen(Tagged("key_used"), used),
	)

	desc, err := key.Description(fakeHistory{})
	require.NoError(t, err)
	assert.Equal(t, "a key", desc)

	desc, err = key.Description(fakeHistory{tags: map[string]int{"key_used": 9}})
	require.NoError(t, err)
	assert.Equal(t, "a well used key", desc)
}

func TestItem_State_PlayerPlace(t *testing.T) {
	hall := NewRoom("hall")
	cellar := NewRoom("cellar")
	lamp := &Item{ID: "lamp"}
	lamp.States = []ItemStateOption{
		ItemWhen(ItemHere(lamp), &ItemState{Description: "a lamp lying here"}),
		ItemWhen(StayedAtLeast(2), &ItemState{Description: "a lamp you keep thinking of"}),
		ItemWhen(Always, &ItemState{Description: "a lamp"}),
	}

	tests := []struct {
		name     string
		history  fakeHistory
		expected string
	}{
		{"lying where the player stands", fakeHistory{at: hall, lying: map[*Item]*Room{lamp: hall}, turns: 1}, "a lamp lying here"},
		{"lying elsewhere", fakeHistory{at: cellar, lying: map[*Item]*Room{lamp: hall}, turns: 1}, "a lamp"},
		{"player lingered", fakeHistory{at: cellar, lying: map[*Item]*Room{lamp: hall}, turns: 2}, "a lamp you keep thinking of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := lamp.Description(tt.history)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, desc)
		})
	}
}

func TestItem_State_NoMatch(t *testing.T) {
	item := NewMultistateItem("ghost", ItemWhen(Never, &ItemState{Description: "boo"}))

	_, err := item.State(fakeHistory{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoMatchingItemState))
	assert.Contains(t, err.Error(), "ghost")
}

func TestItem_Fixed(t *testing.T) {
	sword := NewItem("sword", "a sword")
	desc, err := sword.Description(nil)
	require.NoError(t, err)
	assert.Equal(t, "a sword", desc)
}

func TestPlacement(t *testing.T) {
	sword := NewItem("sword", "a sword")
	room := NewRoom("a")

	assert.True(t, Carried(sword).IsCarried())
	assert.False(t, InRoom(sword, room).IsCarried())
	assert.Same(t, room, InRoom(sword, room).Room)
}

func TestIsCatchAll(t *testing.T) {
	assert.True(t, IsCatchAll(Always))
	assert.False(t, IsCatchAll(Never))
	assert.False(t, IsCatchAll(North))
}
