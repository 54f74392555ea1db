package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studiolane/roomcraft/pkg/budget"
	"github.com/studiolane/roomcraft/pkg/design"
	"github.com/studiolane/roomcraft/pkg/errors"
)

// budgetCommand creates the budget command with its subcommands.
func (c *CLI) budgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Show and reallocate the project budget",
	}

	cmd.AddCommand(c.budgetStatusCommand())
	cmd.AddCommand(c.budgetReallocateCommand())

	return cmd
}

// budgetStatusCommand creates the budget show command.
func (c *CLI) budgetStatusCommand() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the budget allocation and status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, _, err := c.openProject(cmd.Context(), projectPath)
			if err != nil {
				return err
			}
			printBudget(sess.Project.Budget)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "project file (defaults to the saved session)")

	return cmd
}

// budgetReallocateCommand creates the budget move command.
func (c *CLI) budgetReallocateCommand() *cobra.Command {
	var (
		projectPath string
		from        string
		to          string
		amount      float64
	)

	cmd := &cobra.Command{
		Use:   "reallocate",
		Short: "Move funds between budget categories",
		Long: `Move funds between budget categories.

The move is atomic: it either fully succeeds or leaves the budget
untouched. Moving more than the source category holds fails with
INSUFFICIENT_FUNDS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBudgetReallocate(cmd.Context(), projectPath,
				design.Category(from), design.Category(to), amount)
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "project file (defaults to the saved session)")
	cmd.Flags().StringVar(&from, "from", "", "source category")
	cmd.Flags().StringVar(&to, "to", "", "destination category")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to move")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// runBudgetReallocate reallocates funds and saves the project.
func (c *CLI) runBudgetReallocate(ctx context.Context, projectPath string, from, to design.Category, amount float64) error {
	sess, source, err := c.openProject(ctx, projectPath)
	if err != nil {
		return err
	}

	moved, err := budget.Reallocate(sess.Project.Budget, from, to, amount)
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}
	sess.Project.Budget = moved

	if err := source.save(ctx, sess); err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	printSuccess("Moved %.0f from %s to %s", amount, from, to)
	printNewline()
	printBudget(moved)
	return nil
}

// printBudget renders the budget breakdown.
func printBudget(b design.Budget) {
	policy := budget.DefaultPolicy()

	fmt.Println(StyleTitle.Render(fmt.Sprintf("Budget · %.0f %s", b.Total, b.Currency)))
	printNewline()

	for _, cat := range design.Categories {
		printKeyValue(string(cat), fmt.Sprintf("%10.0f  %5.1f%%",
			b.Allocated[cat], budget.PercentSpent(b, cat)))
	}

	printNewline()
	printKeyValue("remaining", fmt.Sprintf("%.0f", budget.Remaining(b)))
	printKeyValue("status", renderStatus(budget.StatusOf(b, policy)))
}
