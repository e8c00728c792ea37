package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jwebster45206/adventure-engine/pkg/world"
)

// ErrInconsistentItemState means the pick-up and drop events for an item do
// not add up to "held" or "not held" at some point in the log.
var ErrInconsistentItemState = errors.New("inconsistent item state")

// Ledger is where every item is, folded from the pick-up and drop events of a
// log. Each pick-up counts +1 and each drop -1 towards an item's net count;
// placement drops position an item without counting.
type Ledger struct {
	carried []*world.Item
	rooms   map[*world.Room][]*world.Item
	where   map[*world.Item]*world.Room
	net     map[*world.Item]int
	errs    []error
	broken  map[*world.Item]bool
}

// Replay folds events into a Ledger. The ledger is returned even when the
// fold finds an inconsistency, alongside an error wrapping
// ErrInconsistentItemState.
func Replay(events []Event) (*Ledger, error) {
	l := &Ledger{
		rooms:  make(map[*world.Room][]*world.Item),
		where:  make(map[*world.Item]*world.Room),
		net:    make(map[*world.Item]int),
		broken: make(map[*world.Item]bool),
	}
	for _, ev := range events {
		if ev.Item == nil {
			continue
		}
		switch ev.Kind {
		case KindPickedUpItem:
			l.count(ev, +1)
			l.unplace(ev.Item)
			if !slices.Contains(l.carried, ev.Item) {
				l.carried = append(l.carried, ev.Item)
			}
		case KindDroppedItem:
			if ev.Tag != TagPlacement {
				l.count(ev, -1)
			}
			l.carried = slices.DeleteFunc(l.carried, func(it *world.Item) bool { return it == ev.Item })
			l.unplace(ev.Item)
			l.where[ev.Item] = ev.Room
			l.rooms[ev.Room] = append(l.rooms[ev.Room], ev.Item)
		}
	}
	return l, errors.Join(l.errs...)
}

// count applies delta to the item's net count. Each item is reported at most
// once, at the first event that takes it outside {0, 1}.
func (l *Ledger) count(ev Event, delta int) {
	n := l.net[ev.Item] + delta
	l.net[ev.Item] = n
	if (n == 0 || n == 1) || l.broken[ev.Item] {
		return
	}
	l.broken[ev.Item] = true
	l.errs = append(l.errs, fmt.Errorf("%w: item %s has net count %d after event %d",
		ErrInconsistentItemState, ev.Item, n, ev.Seq))
}

func (l *Ledger) unplace(it *world.Item) {
	room, ok := l.where[it]
	if !ok {
		return
	}
	delete(l.where, it)
	l.rooms[room] = slices.DeleteFunc(l.rooms[room], func(x *world.Item) bool { return x == it })
}

// Carried returns the items the player holds, in pick-up order.
func (l *Ledger) Carried() []*world.Item {
	return slices.Clone(l.carried)
}

// In returns the items lying in room, in drop order.
func (l *Ledger) In(room *world.Room) []*world.Item {
	return slices.Clone(l.rooms[room])
}

func (l *Ledger) IsCarried(item *world.Item) bool {
	return slices.Contains(l.carried, item)
}

// Where returns the room item lies in. ok is false for carried or unknown
// items.
func (l *Ledger) Where(item *world.Item) (room *world.Room, ok bool) {
	room, ok = l.where[item]
	return room, ok
}

// CarriedItems returns the items the player holds according to log.
func CarriedItems(log *Log) ([]*world.Item, error) {
	l, err := log.Ledger()
	if err != nil {
		return nil, err
	}
	return l.Carried(), nil
}

// ItemsIn returns the items lying in room according to log.
func ItemsIn(room *world.Room, log *Log) ([]*world.Item, error) {
	l, err := log.Ledger()
	if err != nil {
		return nil, err
	}
	return l.In(room), nil
}
