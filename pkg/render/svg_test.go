package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/studiolane/roomcraft/pkg/design"
)

func planRoom() design.Room {
	return design.Room{
		ID:         "r1",
		Name:       "Living Room",
		Dimensions: design.Dimensions{Width: 20, Length: 15, Height: 10},
		Items: []design.FurnitureItem{
			{
				ID:         "sofa-1",
				Name:       "Sofa",
				Dimensions: design.Dimensions{Width: 6, Length: 3, Height: 2.5},
				Position:   design.Position{X: 2, Y: 4},
			},
		},
	}
}

func TestPlanSVG(t *testing.T) {
	svg := string(PlanSVG(planRoom()))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("output should start with an svg element")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output should end with a closing svg tag")
	}

	// 20x15 ft at 20 px/ft
	if !strings.Contains(svg, `viewBox="0 0 400.0 300.0"`) {
		t.Errorf("unexpected viewBox in %q", svg[:120])
	}
	if !strings.Contains(svg, `class="room"`) {
		t.Error("room outline missing")
	}

	// Item footprint: x=2*20, y=4*20, w=6*20, h=3*20
	if !strings.Contains(svg, `id="item-sofa-1" x="40.0" y="80.0" width="120.0" height="60.0"`) {
		t.Error("item rectangle missing or misplaced")
	}

	// No grid or labels unless asked
	if strings.Contains(svg, `class="grid"`) {
		t.Error("grid should be off by default")
	}
	if strings.Contains(svg, `class="item-label"`) {
		t.Error("labels should be off by default")
	}
}

func TestPlanSVGGridAndLabels(t *testing.T) {
	svg := string(PlanSVG(planRoom(), WithGrid(0), WithLabels()))

	// 20x15 room at default 2 ft spacing: 9 vertical + 7 horizontal lines.
	if got := strings.Count(svg, `class="grid"`); got != 16 {
		t.Errorf("grid lines = %d, want 16", got)
	}
	if !strings.Contains(svg, ">Sofa</text>") {
		t.Error("item label missing")
	}
}

func TestPlanSVGScale(t *testing.T) {
	svg := string(PlanSVG(planRoom(), WithScale(10)))
	if !strings.Contains(svg, `viewBox="0 0 200.0 150.0"`) {
		t.Error("WithScale should change the plan dimensions")
	}

	// Non-positive scale keeps the default.
	svg = string(PlanSVG(planRoom(), WithScale(-5)))
	if !strings.Contains(svg, `viewBox="0 0 400.0 300.0"`) {
		t.Error("non-positive scale should keep the default")
	}
}

func TestPlanSVGDeterministic(t *testing.T) {
	a := PlanSVG(planRoom(), WithGrid(2), WithLabels())
	b := PlanSVG(planRoom(), WithGrid(2), WithLabels())
	if !bytes.Equal(a, b) {
		t.Error("identical inputs should render identical bytes")
	}
}

func TestPlanSVGEscapesNames(t *testing.T) {
	room := planRoom()
	room.Items[0].Name = `Sofa <&> "Deluxe"`
	svg := string(PlanSVG(room, WithLabels()))
	if strings.Contains(svg, "<&>") {
		t.Error("item names must be escaped")
	}
	if !strings.Contains(svg, "Sofa &lt;&amp;&gt;") {
		t.Error("escaped name missing")
	}
}
