package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studiolane/roomcraft/pkg/render"
	"github.com/studiolane/roomcraft/pkg/spatial"
)

// planCommand creates the plan command for rendering the floor plan.
func (c *CLI) planCommand() *cobra.Command {
	var (
		projectPath string
		output      string
		scale       float64
		gridSpacing float64
		showGrid    bool
		showLabels  bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Render the room floor plan to SVG",
		Long: `Render the room floor plan to SVG.

The plan shows the room outline and every placed furniture item as a
top-down rectangle. Output is deterministic: the same room always
produces byte-identical SVG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []render.SVGOption{render.WithScale(scale)}
			if showGrid {
				opts = append(opts, render.WithGrid(gridSpacing))
			}
			if showLabels {
				opts = append(opts, render.WithLabels())
			}
			return c.runPlan(cmd.Context(), projectPath, output, opts)
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "project file (defaults to the saved session)")
	cmd.Flags().StringVarP(&output, "output", "o", "plan.svg", "output file")
	cmd.Flags().Float64Var(&scale, "scale", render.DefaultPixelsPerUnit, "pixels per foot")
	cmd.Flags().Float64Var(&gridSpacing, "grid-spacing", spatial.DefaultGridSpacing, "gridline interval in feet")
	cmd.Flags().BoolVar(&showGrid, "grid", false, "draw gridlines")
	cmd.Flags().BoolVar(&showLabels, "labels", false, "label items with their names")

	return cmd
}

// runPlan renders the project room and writes the SVG file.
func (c *CLI) runPlan(ctx context.Context, projectPath, output string, opts []render.SVGOption) error {
	sess, _, err := c.openProject(ctx, projectPath)
	if err != nil {
		return err
	}
	room := sess.Project.Room

	if len(room.Items) == 0 {
		printWarning("Room %q has no placed items; rendering the outline only", room.Name)
	}

	svg := render.PlanSVG(room, opts...)
	if err := os.WriteFile(output, svg, 0644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}

	printSuccess("Rendered %s (%.0fx%.0f ft, %d items)",
		room.Name, room.Dimensions.Width, room.Dimensions.Length, len(room.Items))
	printFile(output)
	return nil
}
