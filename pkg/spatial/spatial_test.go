package spatial

import (
	"testing"

	"github.com/studiolane/roomcraft/pkg/design"
)

func testRoom() design.Room {
	return design.Room{
		ID:         "r1",
		Name:       "Living Room",
		Dimensions: design.Dimensions{Width: 20, Length: 15, Height: 10},
		Items: []design.FurnitureItem{
			{
				ID:         "sofa",
				Name:       "Sofa",
				Dimensions: design.Dimensions{Width: 3, Length: 2, Height: 1},
				Position:   design.Position{X: 18, Y: 0, Z: 0, Rotation: 90},
				Price:      1200,
			},
			{
				ID:         "table",
				Name:       "Coffee Table",
				Dimensions: design.Dimensions{Width: 2, Length: 2, Height: 1},
				Position:   design.Position{X: 5, Y: 5},
				Price:      300,
			},
		},
		Walls: []design.Wall{{ID: "north", Color: "#FFFFFF"}},
	}
}

func TestProposeMove(t *testing.T) {
	room := testRoom()

	tests := []struct {
		name   string
		itemID string
		x, y   float64
		want   bool
	}{
		// Room is 20x15; sofa is 3x2.
		{"current position", "sofa", 18, 0, false}, // 18+3=21 > 20
		{"one step right of limit", "sofa", 19, 0, false},
		{"exact boundary", "sofa", 17, 0, true}, // 17+3 == 20
		{"origin", "sofa", 0, 0, true},
		{"negative x", "sofa", -0.1, 0, false},
		{"negative y", "sofa", 0, -0.1, false},
		{"y exact boundary", "sofa", 0, 13, true}, // 13+2 == 15
		{"y overflow", "sofa", 0, 13.5, false},
		{"interior", "table", 9, 7, true},
		{"unknown item", "ghost", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProposeMove(room, tt.itemID, tt.x, tt.y); got != tt.want {
				t.Errorf("ProposeMove(%s, %g, %g) = %v, want %v", tt.itemID, tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestProposeMoveDoesNotMutate(t *testing.T) {
	room := testRoom()
	_ = ProposeMove(room, "sofa", 5, 5)

	if room.Items[0].Position.X != 18 {
		t.Errorf("ProposeMove mutated position: X = %v", room.Items[0].Position.X)
	}
}

func TestCommitMove(t *testing.T) {
	room := testRoom()
	updated := CommitMove(room, "sofa", 10, 4)

	// Targeted item moved, X/Y only.
	sofa := updated.Items[0]
	if sofa.Position.X != 10 || sofa.Position.Y != 4 {
		t.Errorf("sofa position = (%g, %g), want (10, 4)", sofa.Position.X, sofa.Position.Y)
	}
	if sofa.Position.Z != 0 || sofa.Position.Rotation != 90 {
		t.Errorf("sofa Z/rotation changed: Z=%g rotation=%g", sofa.Position.Z, sofa.Position.Rotation)
	}

	// No other item touched.
	if updated.Items[1] != room.Items[1] {
		t.Errorf("untargeted item changed: %+v", updated.Items[1])
	}

	// Dimensions and walls untouched.
	if updated.Dimensions != room.Dimensions {
		t.Errorf("room dimensions changed: %+v", updated.Dimensions)
	}
	if len(updated.Walls) != 1 || updated.Walls[0].ID != "north" {
		t.Errorf("walls changed: %+v", updated.Walls)
	}

	// Copy-on-write: the input room is unchanged.
	if room.Items[0].Position.X != 18 {
		t.Errorf("CommitMove mutated input room: X = %v", room.Items[0].Position.X)
	}
}

func TestCommitMoveUnknownItem(t *testing.T) {
	room := testRoom()
	updated := CommitMove(room, "ghost", 1, 1)

	for i := range room.Items {
		if updated.Items[i] != room.Items[i] {
			t.Errorf("item %d changed on unknown-item commit", i)
		}
	}
}

func TestHitTest(t *testing.T) {
	room := testRoom()
	const ppu = 30.0 // pixels per foot

	tests := []struct {
		name     string
		px, py   float64
		wantID   string
		wantShot bool
	}{
		{"inside sofa", 19 * ppu, 1 * ppu, "sofa", true},
		{"sofa top-left corner", 18 * ppu, 0, "sofa", true},
		{"inside table", 6 * ppu, 6 * ppu, "table", true},
		{"empty floor", 1 * ppu, 10 * ppu, "", false},
		{"outside room", 25 * ppu, 25 * ppu, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := HitTest(room, tt.px, tt.py, ppu)
			if ok != tt.wantShot {
				t.Fatalf("HitTest(%g, %g) ok = %v, want %v", tt.px, tt.py, ok, tt.wantShot)
			}
			if ok && item.ID != tt.wantID {
				t.Errorf("HitTest(%g, %g) = %q, want %q", tt.px, tt.py, item.ID, tt.wantID)
			}
		})
	}
}

func TestHitTestFirstItemWins(t *testing.T) {
	// Two overlapping items: the first in room order must win.
	room := design.Room{
		Dimensions: design.Dimensions{Width: 10, Length: 10, Height: 8},
		Items: []design.FurnitureItem{
			{ID: "rug", Dimensions: design.Dimensions{Width: 6, Length: 6, Height: 1}, Position: design.Position{X: 0, Y: 0}},
			{ID: "chair", Dimensions: design.Dimensions{Width: 2, Length: 2, Height: 1}, Position: design.Position{X: 1, Y: 1}},
		},
	}

	item, ok := HitTest(room, 2, 2, 1)
	if !ok {
		t.Fatal("HitTest missed overlapping items")
	}
	if item.ID != "rug" {
		t.Errorf("HitTest = %q, want first item %q", item.ID, "rug")
	}
}

func TestHitTestInvalidScale(t *testing.T) {
	room := testRoom()
	if _, ok := HitTest(room, 10, 10, 0); ok {
		t.Error("HitTest with zero scale should miss")
	}
	if _, ok := HitTest(room, 10, 10, -1); ok {
		t.Error("HitTest with negative scale should miss")
	}
}
