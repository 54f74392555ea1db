// Package spatial maintains furniture placement inside a bounded 2-D room.
//
// The engine is the authoritative mapping from furniture identity to
// position. It exposes three operations that together implement the
// canvas drag protocol:
//
//  1. [HitTest] converts pointer coordinates into room coordinates and
//     selects the item under the pointer.
//  2. [ProposeMove] checks a candidate position against the room
//     boundary. It is pure: no state changes on either outcome.
//  3. [CommitMove] applies a validated position, returning a new Room
//     value with only the one item's position replaced.
//
// A drag gesture begins with HitTest, calls ProposeMove then conditionally
// CommitMove for each move event, and releases by clearing the active
// selection with no further mutation.
//
// Boundary checking is deliberately simple: footprints are axis-aligned
// (rotation ignored) and items may overlap each other; item-to-item
// collision detection is out of scope.
package spatial

import "github.com/studiolane/roomcraft/pkg/design"

// HitTest returns the item under the pointer, converting pointer
// coordinates to room coordinates via pixelsPerUnit (pixels per foot).
//
// When several item footprints contain the point, the first item in the
// room's item order wins. This is a documented tie-break, not a "best"
// match: callers relying on z-order must order the room's items
// accordingly. The second return is false when no item contains the point
// or pixelsPerUnit is not positive.
func HitTest(room design.Room, pointerX, pointerY, pixelsPerUnit float64) (design.FurnitureItem, bool) {
	if pixelsPerUnit <= 0 {
		return design.FurnitureItem{}, false
	}

	roomX := pointerX / pixelsPerUnit
	roomY := pointerY / pixelsPerUnit

	for _, item := range room.Items {
		if FootprintOf(item).Contains(roomX, roomY) {
			return item, true
		}
	}
	return design.FurnitureItem{}, false
}

// ProposeMove reports whether moving the item to (newX, newY) keeps its
// footprint entirely within the room. True at the exact boundary
// (newX + width == room width). No state is updated on either outcome;
// an unknown itemID proposes nothing and returns false.
func ProposeMove(room design.Room, itemID string, newX, newY float64) bool {
	idx := room.ItemIndex(itemID)
	if idx < 0 {
		return false
	}

	item := room.Items[idx]
	candidate := Footprint{
		X:      newX,
		Y:      newY,
		Width:  item.Dimensions.Width,
		Length: item.Dimensions.Length,
	}
	return candidate.Within(room.Dimensions.Width, room.Dimensions.Length)
}

// CommitMove applies the position unconditionally and returns a new Room
// with only the targeted item's X/Y replaced; Z, rotation, every other
// item, the dimensions, and the walls are untouched. Callers must have
// validated the position with ProposeMove first.
//
// When itemID is unknown the room is returned unchanged (as a copy), so
// the result is always safe to adopt as the new authoritative value.
func CommitMove(room design.Room, itemID string, newX, newY float64) design.Room {
	out := room.Clone()
	idx := out.ItemIndex(itemID)
	if idx < 0 {
		return out
	}
	out.Items[idx].Position.X = newX
	out.Items[idx].Position.Y = newY
	return out
}
