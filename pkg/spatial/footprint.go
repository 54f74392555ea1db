package spatial

import "github.com/studiolane/roomcraft/pkg/design"

// Footprint is the axis-aligned rectangle an item occupies in room-plane
// coordinates, ignoring rotation. All coordinates are in the room's
// physical unit (feet).
type Footprint struct {
	X, Y          float64
	Width, Length float64
}

// FootprintOf returns the item's current footprint.
func FootprintOf(item design.FurnitureItem) Footprint {
	return Footprint{
		X:      item.Position.X,
		Y:      item.Position.Y,
		Width:  item.Dimensions.Width,
		Length: item.Dimensions.Length,
	}
}

// Right returns the x coordinate of the footprint's right edge.
func (f Footprint) Right() float64 { return f.X + f.Width }

// Bottom returns the y coordinate of the footprint's bottom edge.
func (f Footprint) Bottom() float64 { return f.Y + f.Length }

// Contains reports whether the point (x, y) lies inside the footprint,
// edges included.
func (f Footprint) Contains(x, y float64) bool {
	return x >= f.X && x <= f.Right() && y >= f.Y && y <= f.Bottom()
}

// Within reports whether the footprint lies entirely inside the rectangle
// [0, width] x [0, length]. Touching an edge counts as inside.
func (f Footprint) Within(width, length float64) bool {
	return f.X >= 0 && f.Y >= 0 && f.Right() <= width && f.Bottom() <= length
}
