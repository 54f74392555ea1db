// Package render produces floor plan artifacts from room state.
//
// The renderer is deterministic: the same room and options always produce
// the same bytes, which makes plan artifacts safe to cache keyed on a hash
// of the room.
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/studiolane/roomcraft/pkg/design"
	"github.com/studiolane/roomcraft/pkg/spatial"
)

// DefaultPixelsPerUnit is the default plan scale, in pixels per foot.
const DefaultPixelsPerUnit = 20.0

const planCSS = `
    .room { fill: #FAFAFA; stroke: #333333; stroke-width: 2; }
    .grid { stroke: #E0E0E0; stroke-width: 1; }
    .item { fill: #B0C4DE; stroke: #36454F; stroke-width: 1.5; }
    .item-label { font-family: sans-serif; font-size: 11px; fill: #333333; text-anchor: middle; }`

// SVGOption configures the plan renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	pixelsPerUnit float64
	gridSpacing   float64
	showGrid      bool
	showLabels    bool
}

// WithScale sets the plan scale in pixels per unit. Non-positive values
// keep the default.
func WithScale(pixelsPerUnit float64) SVGOption {
	return func(r *svgRenderer) {
		if pixelsPerUnit > 0 {
			r.pixelsPerUnit = pixelsPerUnit
		}
	}
}

// WithGrid draws interior grid lines at the given spacing. Non-positive
// spacing takes the default.
func WithGrid(spacing float64) SVGOption {
	return func(r *svgRenderer) {
		r.showGrid = true
		if spacing > 0 {
			r.gridSpacing = spacing
		}
	}
}

// WithLabels draws item names centered on their footprints.
func WithLabels() SVGOption {
	return func(r *svgRenderer) { r.showLabels = true }
}

// PlanSVG renders the room as a top-down SVG floor plan.
func PlanSVG(room design.Room, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	w := room.Dimensions.Width * r.pixelsPerUnit
	l := room.Dimensions.Length * r.pixelsPerUnit

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, l, w, l)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", planCSS)

	fmt.Fprintf(&buf, `  <rect class="room" x="0" y="0" width="%.1f" height="%.1f"/>`+"\n", w, l)

	if r.showGrid {
		renderGrid(&buf, room, r)
	}

	for _, item := range room.Items {
		renderItem(&buf, item, r)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		pixelsPerUnit: DefaultPixelsPerUnit,
		gridSpacing:   spatial.DefaultGridSpacing,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderGrid(buf *bytes.Buffer, room design.Room, r svgRenderer) {
	for _, line := range spatial.GridLines(room, r.gridSpacing) {
		fmt.Fprintf(buf, `  <line class="grid" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			line.X1*r.pixelsPerUnit, line.Y1*r.pixelsPerUnit,
			line.X2*r.pixelsPerUnit, line.Y2*r.pixelsPerUnit)
	}
}

func renderItem(buf *bytes.Buffer, item design.FurnitureItem, r svgRenderer) {
	fp := spatial.FootprintOf(item)
	x := fp.X * r.pixelsPerUnit
	y := fp.Y * r.pixelsPerUnit
	w := fp.Width * r.pixelsPerUnit
	l := fp.Length * r.pixelsPerUnit

	fmt.Fprintf(buf, `  <rect class="item" id="item-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
		html.EscapeString(item.ID), x, y, w, l)

	if r.showLabels && item.Name != "" {
		fmt.Fprintf(buf, `  <text class="item-label" x="%.1f" y="%.1f">%s</text>`+"\n",
			x+w/2, y+l/2, html.EscapeString(item.Name))
	}
}
