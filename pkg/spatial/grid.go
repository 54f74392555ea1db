package spatial

import "github.com/studiolane/roomcraft/pkg/design"

// DefaultGridSpacing is the default gridline interval in feet.
const DefaultGridSpacing = 2.0

// Line is a single gridline in room coordinates.
type Line struct {
	X1, Y1 float64
	X2, Y2 float64
}

// GridLines returns the interior gridlines for the room at the given
// spacing. Lines on the room boundary itself are omitted; the result is a
// pure derived view carrying no state. Non-positive spacing yields nil.
func GridLines(room design.Room, spacing float64) []Line {
	if spacing <= 0 {
		return nil
	}

	w := room.Dimensions.Width
	l := room.Dimensions.Length

	var lines []Line
	for x := spacing; x < w; x += spacing {
		lines = append(lines, Line{X1: x, Y1: 0, X2: x, Y2: l})
	}
	for y := spacing; y < l; y += spacing {
		lines = append(lines, Line{X1: 0, Y1: y, X2: w, Y2: y})
	}
	return lines
}
