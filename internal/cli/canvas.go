package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/studiolane/roomcraft/pkg/design"
	"github.com/studiolane/roomcraft/pkg/observability"
	"github.com/studiolane/roomcraft/pkg/render"
	"github.com/studiolane/roomcraft/pkg/spatial"
)

// Canvas styles
var (
	canvasSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	canvasNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	canvasDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	canvasBlockedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// canvasStep is how far one arrow keypress moves an item, in feet.
const canvasStep = 1.0

// canvasCommand creates the canvas command for interactive placement.
func (c *CLI) canvasCommand() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "canvas",
		Short: "Arrange furniture interactively",
		Long: `Arrange furniture interactively.

Tab cycles through items, enter grabs the item under the cursor, and
the arrow keys move it one foot per press. A move that would push the
item outside the room is rejected and the item stays put. Esc drops
the item where it is, s saves the project, q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCanvas(cmd.Context(), projectPath)
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "project file (defaults to the saved session)")

	return cmd
}

// runCanvas opens the project and hands the room to the canvas model.
func (c *CLI) runCanvas(ctx context.Context, projectPath string) error {
	sess, source, err := c.openProject(ctx, projectPath)
	if err != nil {
		return err
	}
	if len(sess.Project.Room.Items) == 0 {
		printWarning("Room %q has no placed items; nothing to arrange", sess.Project.Room.Name)
		printDetail("Run 'roomcraft suggest --furniture --save' to add furniture picks")
		return nil
	}

	model := NewCanvasModel(sess.Project.Room)
	prog := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("canvas: %w", err)
	}

	m, ok := final.(CanvasModel)
	if !ok || !m.Save {
		if ok && m.Dirty {
			printWarning("Changes discarded")
		}
		return nil
	}

	sess.Project.Room = m.Room
	if err := source.save(ctx, sess); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	printSuccess("Saved %d item positions", len(m.Room.Items))
	return nil
}

// =============================================================================
// CanvasModel - Interactive furniture arrangement
// =============================================================================

// CanvasModel is the bubbletea model for the placement canvas. The room
// value it holds is authoritative: moves replace it wholesale via
// CommitMove, so a quit at any point leaves a consistent layout.
type CanvasModel struct {
	Room    design.Room
	Cursor  int
	Grabbed string
	Blocked bool
	Dirty   bool
	Save    bool
}

// NewCanvasModel creates a canvas model over the room.
func NewCanvasModel(room design.Room) CanvasModel {
	return CanvasModel{Room: room}
}

func (m CanvasModel) Init() tea.Cmd {
	return nil
}

func (m CanvasModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.Blocked = false

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "s":
		m.Save = true
		return m, tea.Quit
	case "esc":
		m.Grabbed = ""
	case "tab":
		if m.Grabbed == "" {
			m.Cursor = (m.Cursor + 1) % len(m.Room.Items)
		}
	case "shift+tab":
		if m.Grabbed == "" {
			m.Cursor = (m.Cursor + len(m.Room.Items) - 1) % len(m.Room.Items)
		}
	case "enter":
		if m.Grabbed == "" {
			m = m.grab()
		}
	case "up":
		m = m.move(0, -canvasStep)
	case "down":
		m = m.move(0, canvasStep)
	case "left":
		m = m.move(-canvasStep, 0)
	case "right":
		m = m.move(canvasStep, 0)
	}
	return m, nil
}

// grab selects the item under the cursor by hit-testing the center of
// its footprint, the same lookup a pointer click resolves to.
func (m CanvasModel) grab() CanvasModel {
	item := m.Room.Items[m.Cursor]
	fp := spatial.FootprintOf(item)
	px := (fp.X + fp.Width/2) * render.DefaultPixelsPerUnit
	py := (fp.Y + fp.Length/2) * render.DefaultPixelsPerUnit

	hit, ok := spatial.HitTest(m.Room, px, py, render.DefaultPixelsPerUnit)
	if !ok {
		return m
	}
	m.Grabbed = hit.ID
	return m
}

// move proposes a one-step displacement for the grabbed item and
// commits it only when it stays inside the room.
func (m CanvasModel) move(dx, dy float64) CanvasModel {
	if m.Grabbed == "" {
		return m
	}
	idx := m.Room.ItemIndex(m.Grabbed)
	if idx < 0 {
		m.Grabbed = ""
		return m
	}

	item := m.Room.Items[idx]
	newX := item.Position.X + dx
	newY := item.Position.Y + dy

	if !spatial.ProposeMove(m.Room, m.Grabbed, newX, newY) {
		observability.Engine().OnMove(context.Background(), m.Grabbed, false)
		m.Blocked = true
		return m
	}
	m.Room = spatial.CommitMove(m.Room, m.Grabbed, newX, newY)
	observability.Engine().OnMove(context.Background(), m.Grabbed, true)
	m.Dirty = true
	return m
}

func (m CanvasModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s · %.0fx%.0f ft", m.Room.Name,
		m.Room.Dimensions.Width, m.Room.Dimensions.Length)))
	b.WriteString("\n")
	b.WriteString(canvasDimStyle.Render("tab cycle  ⏎ grab  ↑↓←→ move  esc drop  s save  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.viewFloor())
	b.WriteString("\n")

	for i, item := range m.Room.Items {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-20s (%.0f, %.0f)  %.0fx%.0f",
			cursor, item.Name, item.Position.X, item.Position.Y,
			item.Dimensions.Width, item.Dimensions.Length)

		switch {
		case item.ID == m.Grabbed:
			b.WriteString(canvasSelectedStyle.Render(line + "  [grabbed]"))
		case i == m.Cursor:
			b.WriteString(canvasNormalStyle.Render(line))
		default:
			b.WriteString(canvasDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.Blocked {
		b.WriteString("\n")
		b.WriteString(canvasBlockedStyle.Render("  ✗ move blocked by room boundary"))
		b.WriteString("\n")
	}

	return b.String()
}

// viewFloor draws the room as a character grid, one cell per foot.
func (m CanvasModel) viewFloor() string {
	width := int(m.Room.Dimensions.Width)
	length := int(m.Room.Dimensions.Length)
	if width <= 0 || length <= 0 {
		return ""
	}

	grid := make([][]rune, length)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = '·'
		}
	}

	grabbedCells := map[[2]int]bool{}
	for _, item := range m.Room.Items {
		fp := spatial.FootprintOf(item)
		mark := markFor(item)
		for y := int(fp.Y); y < int(fp.Bottom()) && y < length; y++ {
			for x := int(fp.X); x < int(fp.Right()) && x < width; x++ {
				if y < 0 || x < 0 {
					continue
				}
				grid[y][x] = mark
				if item.ID == m.Grabbed {
					grabbedCells[[2]int{y, x}] = true
				}
			}
		}
	}

	var b strings.Builder
	b.WriteString(canvasDimStyle.Render("┌" + strings.Repeat("─", width) + "┐"))
	b.WriteString("\n")
	for y := 0; y < length; y++ {
		b.WriteString(canvasDimStyle.Render("│"))
		for x := 0; x < width; x++ {
			cell := string(grid[y][x])
			switch {
			case grabbedCells[[2]int{y, x}]:
				b.WriteString(canvasSelectedStyle.Render(cell))
			case grid[y][x] == '·':
				b.WriteString(canvasDimStyle.Render(cell))
			default:
				b.WriteString(canvasNormalStyle.Render(cell))
			}
		}
		b.WriteString(canvasDimStyle.Render("│"))
		b.WriteString("\n")
	}
	b.WriteString(canvasDimStyle.Render("└" + strings.Repeat("─", width) + "┘"))
	b.WriteString("\n")
	return b.String()
}

// markFor picks the display rune for an item.
func markFor(item design.FurnitureItem) rune {
	for _, r := range item.Name {
		return r
	}
	return '#'
}
