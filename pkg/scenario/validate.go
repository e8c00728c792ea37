package scenario

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/jwebster45206/adventure-engine/pkg/command"
	"github.com/jwebster45206/adventure-engine/pkg/conditionals"
	"github.com/jwebster45206/adventure-engine/pkg/world"
)

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

// IsValidID reports whether id is lowercase snake_case.
func IsValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

// Validator collects every problem in a scenario instead of stopping at the
// first.
type Validator struct {
	errors   []string
	warnings []string

	rooms     map[string]bool
	states    map[string]string // state id -> room id
	items     map[string]bool
	commands  map[string]bool
	actionIDs map[string]bool
}

// Validate checks s and returns its warnings. The error, if any, wraps
// ErrInvalidScenario and lists every problem found.
func Validate(s *Scenario) ([]string, error) {
	v := &Validator{
		rooms:     make(map[string]bool),
		states:    make(map[string]string),
		items:     make(map[string]bool),
		commands:  make(map[string]bool),
		actionIDs: make(map[string]bool),
	}
	v.validate(s)
	if len(v.errors) > 0 {
		return v.warnings, fmt.Errorf("%w:\n%s", ErrInvalidScenario, strings.Join(v.errors, "\n"))
	}
	return v.warnings, nil
}

func (v *Validator) validate(s *Scenario) {
	if len(s.Rooms) == 0 {
		v.addError("scenario has no rooms")
	}
	for _, r := range s.Rooms {
		v.validateRoom(r)
	}
	v.validateLocation("start", s.Start)

	v.validateConnections(s.Connections)

	for _, it := range s.Items {
		v.validateItem(it)
	}
	v.validatePlacements(s.Placements)

	for id := range s.Actions {
		v.actionIDs[id] = true
	}
	for i, p := range s.Commands {
		v.validateIDFormat("command", p.Command)
		if _, err := command.Compile(p.Pattern, command.Command(p.Command)); err != nil {
			v.addError(fmt.Sprintf("pattern %d: %v", i, err))
		}
		if !v.actionIDs[p.Command] {
			v.addError(fmt.Sprintf("command '%s' has no action", p.Command))
		}
		v.commands[p.Command] = true
	}
	if s.Fallback == "" {
		v.addError("fallback command is required")
	} else if !v.actionIDs[s.Fallback] {
		v.addError(fmt.Sprintf("fallback command '%s' has no action", s.Fallback))
	}
	v.commands[s.Fallback] = true

	for _, id := range slices.Sorted(maps.Keys(s.Actions)) {
		v.validateIDFormat("action", id)
		v.validateAction(id, s.Actions[id])
		if !v.commands[id] && !isDirection(id) {
			v.addWarning(fmt.Sprintf("action '%s' is not reachable from any command pattern", id))
		}
	}

	npcIDs := make(map[string]bool)
	for _, n := range s.NPCs {
		v.validateIDFormat("NPC ID", n.ID)
		if npcIDs[n.ID] {
			v.addError(fmt.Sprintf("NPC ID '%s' is used twice", n.ID))
		}
		npcIDs[n.ID] = true
		v.validateLocation(fmt.Sprintf("NPC %s start", n.ID), n.Start)
		if n.MinTurns < 0 {
			v.addError(fmt.Sprintf("NPC %s has negative min_turns", n.ID))
		}
	}

	for _, w := range whenClauses(s) {
		if _, err := conditionals.Compile(w, idResolver{v}); err != nil {
			for _, line := range strings.Split(err.Error(), "\n") {
				v.addError("when clause: " + line)
			}
		}
	}
}

// idResolver answers reference lookups from the ids collected so far.
type idResolver struct{ v *Validator }

func (r idResolver) Room(id string) (*world.Room, bool) {
	return &world.Room{ID: id}, r.v.rooms[id]
}

func (r idResolver) State(id string) (*world.RoomState, bool) {
	_, ok := r.v.states[id]
	return &world.RoomState{ID: id}, ok
}

func (r idResolver) Item(id string) (*world.Item, bool) {
	return &world.Item{ID: id}, r.v.items[id]
}

func isDirection(id string) bool {
	return slices.Contains(command.Directions(), command.Command(id))
}

func (v *Validator) validateRoom(r Room) {
	v.validateIDFormat("room ID", r.ID)
	if v.rooms[r.ID] {
		v.addError(fmt.Sprintf("room ID '%s' is used twice", r.ID))
	}
	v.rooms[r.ID] = true

	if len(r.States) == 0 {
		v.addError(fmt.Sprintf("room %s has no states", r.ID))
		return
	}
	catchAll := false
	for _, st := range r.States {
		v.validateIDFormat("state ID", st.ID)
		if owner, dup := v.states[st.ID]; dup {
			v.addError(fmt.Sprintf("state ID '%s' is used in rooms %s and %s", st.ID, owner, r.ID))
		}
		v.states[st.ID] = r.ID
		catchAll = catchAll || st.When.IsEmpty()
	}
	if !catchAll {
		v.addWarning(fmt.Sprintf("room %s has no catch-all state; entering it can fail", r.ID))
	}
}

func (v *Validator) validateLocation(context string, loc Location) {
	if !v.rooms[loc.Room] {
		v.addError(fmt.Sprintf("%s room '%s' does not exist", context, loc.Room))
		return
	}
	owner, ok := v.states[loc.State]
	if !ok {
		v.addError(fmt.Sprintf("%s state '%s' does not exist", context, loc.State))
		return
	}
	if owner != loc.Room {
		v.addError(fmt.Sprintf("%s state '%s' belongs to room %s, not %s", context, loc.State, owner, loc.Room))
	}
}

func (v *Validator) validateConnections(conns []Connection) {
	seen := make(map[string]bool)
	for _, c := range conns {
		if !v.rooms[c.From] {
			v.addError(fmt.Sprintf("connection from unknown room '%s'", c.From))
		}
		if seen[c.From] {
			v.addError(fmt.Sprintf("connections from %s are listed twice", c.From))
		}
		seen[c.From] = true
		for _, e := range c.Exits {
			if !v.rooms[e.To] {
				v.addError(fmt.Sprintf("exit from %s leads to unknown room '%s'", c.From, e.To))
			}
		}
	}
}

func (v *Validator) validateItem(it Item) {
	v.validateIDFormat("item ID", it.ID)
	if v.items[it.ID] {
		v.addError(fmt.Sprintf("item ID '%s' is used twice", it.ID))
	}
	v.items[it.ID] = true

	switch {
	case it.Description != "" && len(it.States) > 0:
		v.addError(fmt.Sprintf("item %s has both a description and states", it.ID))
	case it.Description == "" && len(it.States) == 0:
		v.addError(fmt.Sprintf("item %s needs a description or states", it.ID))
	case len(it.States) > 0 && !slices.ContainsFunc(it.States, func(s ItemState) bool { return s.When.IsEmpty() }):
		v.addWarning(fmt.Sprintf("item %s has no catch-all state", it.ID))
	}
}

func (v *Validator) validatePlacements(placements []Placement) {
	placed := make(map[string]bool)
	for _, p := range placements {
		if !v.items[p.Item] {
			v.addError(fmt.Sprintf("placement of unknown item '%s'", p.Item))
		}
		if placed[p.Item] {
			v.addError(fmt.Sprintf("item %s is placed twice", p.Item))
		}
		placed[p.Item] = true
		switch {
		case p.Carried && p.Room != "":
			v.addError(fmt.Sprintf("item %s is both carried and in room %s", p.Item, p.Room))
		case !p.Carried && !v.rooms[p.Room]:
			v.addError(fmt.Sprintf("item %s is placed in unknown room '%s'", p.Item, p.Room))
		}
	}
}

var doesItem = map[string]bool{DoPickUp: true, DoDrop: true, DoExamine: true}

func (v *Validator) validateAction(id string, a Action) {
	if len(a.Branches) > 0 {
		if a.Do != "" {
			v.addError(fmt.Sprintf("action %s has both branches and do '%s'", id, a.Do))
		}
		for i, b := range a.Branches {
			v.validateAction(fmt.Sprintf("%s branch %d", id, i), b)
		}
		last := a.Branches[len(a.Branches)-1]
		if last.When != nil && !last.When.IsEmpty() {
			v.addWarning(fmt.Sprintf("action %s has no catch-all branch", id))
		}
		return
	}

	switch a.Do {
	case DoGo, DoInventory, DoLook, DoSay, DoStay, DoEnd:
	case DoPickUp, DoDrop, DoExamine:
	case DoTrigger:
		if a.Tag == "" && a.State == "" {
			v.addError(fmt.Sprintf("action %s triggers neither a tag nor a state", id))
		}
		if a.State != "" {
			if _, ok := v.states[a.State]; !ok {
				v.addError(fmt.Sprintf("action %s triggers unknown state '%s'", id, a.State))
			}
		}
	case "":
		v.addError(fmt.Sprintf("action %s has no 'do'", id))
	default:
		v.addError(fmt.Sprintf("action %s has unknown do '%s'", id, a.Do))
	}

	if doesItem[a.Do] && !v.items[a.Item] {
		v.addError(fmt.Sprintf("action %s refers to unknown item '%s'", id, a.Item))
	}
}

func (v *Validator) validateIDFormat(fieldName, id string) {
	if !IsValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *Validator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func (v *Validator) addWarning(msg string) {
	v.warnings = append(v.warnings, msg)
}

// whenClauses returns every when clause in s.
func whenClauses(s *Scenario) []conditionals.When {
	var out []conditionals.When
	for _, r := range s.Rooms {
		for _, st := range r.States {
			out = append(out, st.When)
		}
	}
	for _, c := range s.Connections {
		for _, e := range c.Exits {
			out = append(out, e.When)
		}
	}
	for _, it := range s.Items {
		for _, st := range it.States {
			out = append(out, st.When)
		}
	}
	var walk func(a Action)
	walk = func(a Action) {
		if a.When != nil {
			out = append(out, *a.When)
		}
		for _, b := range a.Branches {
			walk(b)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(s.Actions)) {
		walk(s.Actions[id])
	}
	return out
}
