package world

import "github.com/jwebster45206/adventure-engine/pkg/command"

// Connection is one guarded edge out of a room.
type Connection struct {
	Guard Guard
	To    *Room
}

// Exit builds a Connection.
func Exit(g Guard, to *Room) Connection {
	return Connection{Guard: g, To: to}
}

// Connections maps each room to its ordered list of exits.
type Connections map[*Room][]Connection

// Match returns the destination of the first exit from `from` whose guard
// passes. defined is false when the room has no exits at all.
func (c Connections) Match(from *Room, in command.Input, ctx GuardContext) (to *Room, defined bool) {
	exits, ok := c[from]
	if !ok {
		return nil, false
	}
	for _, exit := range exits {
		if exit.Guard.Evaluate(in, ctx) {
			return exit.To, true
		}
	}
	return nil, true
}

// Rooms returns every room that appears in the graph, in no particular order.
func (c Connections) Rooms() []*Room {
	seen := make(map[*Room]bool)
	var rooms []*Room
	add := func(r *Room) {
		if r != nil && !seen[r] {
			seen[r] = true
			rooms = append(rooms, r)
		}
	}
	for from, exits := range c {
		add(from)
		for _, exit := range exits {
			add(exit.To)
		}
	}
	return rooms
}

// Adjacency is an unguarded room graph, used by wandering NPCs.
type Adjacency map[*Room][]*Room

// Adjacency drops the exit guards and lists each room's distinct neighbours
// in exit order.
func (c Connections) Adjacency() Adjacency {
	adj := make(Adjacency, len(c))
	for from, exits := range c {
		seen := make(map[*Room]bool)
		for _, exit := range exits {
			if exit.To == nil || seen[exit.To] {
				continue
			}
			seen[exit.To] = true
			adj[from] = append(adj[from], exit.To)
		}
	}
	return adj
}
