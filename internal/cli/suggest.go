package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studiolane/roomcraft/pkg/design"
	"github.com/studiolane/roomcraft/pkg/pipeline"
)

// suggestCommand creates the suggest command for composing recommendations.
func (c *CLI) suggestCommand() *cobra.Command {
	var (
		projectPath string
		noCache     bool
		refresh     bool
		furniture   bool
		skipBudget  bool
		save        bool
	)

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Compose design recommendations for the working project",
		Long: `Compose design recommendations for the working project.

The suggest command matches your style preferences against the catalog and
composes a ranked recommendation list: a color palette, an optional layout,
and material suggestions per matched style. Furniture picks priced above
the per-item budget ceiling are dropped.

Results are cached locally for faster subsequent runs; use --refresh to
force recomputation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSuggest(cmd.Context(), suggestParams{
				projectPath: projectPath,
				noCache:     noCache,
				refresh:     refresh,
				furniture:   furniture,
				skipBudget:  skipBudget,
				save:        save,
			})
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "project file (defaults to the saved session)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache and recompute")
	cmd.Flags().BoolVar(&furniture, "furniture", false, "include furniture picks for the best-matched style")
	cmd.Flags().BoolVar(&skipBudget, "no-budget-pass", false, "skip the budget ceiling pass")
	cmd.Flags().BoolVar(&save, "save", false, "commit the recommendations to the project")

	return cmd
}

type suggestParams struct {
	projectPath string
	noCache     bool
	refresh     bool
	furniture   bool
	skipBudget  bool
	save        bool
}

// runSuggest loads the project, runs the pipeline, and prints the result.
func (c *CLI) runSuggest(ctx context.Context, params suggestParams) error {
	sess, source, err := c.openProject(ctx, params.projectPath)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(params.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		Preferences:      sess.Project.Preferences,
		Room:             sess.Project.Room,
		Budget:           sess.Project.Budget,
		SuggestFurniture: params.furniture,
		SkipBudgetPass:   params.skipBudget,
		Refresh:          params.refresh,
		Logger:           c.Logger,
	}

	prog := newProgress(c.Logger)
	result, err := runner.Recompute(ctx, opts)
	if err != nil {
		return fmt.Errorf("suggest: %w", err)
	}
	prog.done(fmt.Sprintf("Composed %d recommendations", result.Stats.RecommendationCount))

	printRecommendations(sess.Project.Room.Name, result)

	if params.save {
		sess.Project.Recommendations = result.Recommendations
		if err := source.save(ctx, sess); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		printSuccess("Saved recommendations to the project")
	}

	return nil
}

// printRecommendations renders the result to stdout.
func printRecommendations(roomName string, result *pipeline.Result) {
	printNewline()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Recommendations for %s", roomName)))
	printStats(result.Stats.RecommendationCount, result.Stats.ItemsDropped, result.CacheInfo.ComposeHit)
	printNewline()

	for _, rec := range result.Recommendations {
		fmt.Println(StyleHighlight.Render(rec.Description) +
			StyleDim.Render(fmt.Sprintf("  (%s, confidence %.2f)", rec.Kind, rec.Confidence)))
		printDetail("%s", rec.Reason)

		switch rec.Kind {
		case design.KindColor:
			printDetail("palette: %s", strings.Join(rec.Colors, " "))
		case design.KindFurniture, design.KindLayout:
			for _, item := range rec.Items {
				line := item.Name
				if item.Price > 0 {
					line += fmt.Sprintf(" · %.0f", item.Price)
				}
				printDetail("%s %s", iconArrow, line)
			}
			if rec.EstimatedCost > 0 {
				printDetail("estimated cost: %.0f", rec.EstimatedCost)
			}
		}
		printNewline()
	}

	printKeyValue("budget", renderStatus(result.Status))
}
