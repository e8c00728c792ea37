package world

// Placement says where an item starts. Placements are consumed once, when a
// game is built, and turned into events.
type Placement struct {
	Item *Item
	Room *Room // nil means the player carries the item
}

// Carried places item in the player's hands.
func Carried(item *Item) Placement {
	return Placement{Item: item}
}

// InRoom places item in room.
func InRoom(item *Item, room *Room) Placement {
	return Placement{Item: item, Room: room}
}

func (p Placement) IsCarried() bool {
	return p.Room == nil
}
