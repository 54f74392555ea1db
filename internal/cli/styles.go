package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studiolane/roomcraft/pkg/catalog"
	"github.com/studiolane/roomcraft/pkg/design"
	"github.com/studiolane/roomcraft/pkg/match"
)

// stylesCommand creates the styles command for inspecting the catalog.
func (c *CLI) stylesCommand() *cobra.Command {
	var (
		catalogPath string
		projectPath string
		ranked      bool
	)

	cmd := &cobra.Command{
		Use:   "styles [name]",
		Short: "Inspect the style catalog",
		Long: `Inspect the style catalog.

Without arguments, lists all catalog styles. With a style name, shows its
characteristics, recommended colors and materials, and typical furniture.

Use --catalog to merge styles from a TOML file over the stock catalog, and
--ranked to order the list by how well each style matches the working
project's preferences.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			styles, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				return c.showStyle(styles, args[0])
			}

			if ranked {
				sess, _, err := c.openProject(cmd.Context(), projectPath)
				if err != nil {
					return err
				}
				return c.listRanked(styles, sess.Project.Preferences)
			}
			return c.listStyles(styles)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "TOML catalog file merged over the stock catalog")
	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "project file (defaults to the saved session)")
	cmd.Flags().BoolVar(&ranked, "ranked", false, "rank styles by preference match")

	return cmd
}

// loadCatalog returns the stock catalog, optionally merged with a file.
func loadCatalog(path string) ([]design.DesignStyle, error) {
	stock := catalog.Stock()
	if path == "" {
		return stock, nil
	}
	extra, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	return catalog.Merge(stock, extra)
}

// listStyles prints a one-line summary per style.
func (c *CLI) listStyles(styles []design.DesignStyle) error {
	fmt.Println(StyleTitle.Render("Style Catalog"))
	printNewline()
	for _, s := range styles {
		fmt.Println(StyleHighlight.Render(s.Name) +
			StyleDim.Render("  "+strings.Join(s.Characteristics, ", ")))
	}
	printNewline()
	printDetail("%d styles · roomcraft styles <name> for details", len(styles))
	return nil
}

// listRanked prints styles ordered by preference match score.
func (c *CLI) listRanked(styles []design.DesignStyle, prefs design.StylePreferences) error {
	matched := match.Match(prefs, styles)
	if len(matched) == 0 {
		printWarning("no catalog style matches the project's style list: %s",
			strings.Join(prefs.DesignStyle, ", "))
		return nil
	}

	fmt.Println(StyleTitle.Render("Matched Styles"))
	printNewline()
	for i, s := range matched {
		score := match.Score(s, prefs)
		fmt.Printf("%s %s %s\n",
			StyleDim.Render(fmt.Sprintf("%d.", i+1)),
			StyleHighlight.Render(s.Name),
			StyleDim.Render(fmt.Sprintf("score %d", score)))
	}
	return nil
}

// showStyle prints the full detail of one style.
func (c *CLI) showStyle(styles []design.DesignStyle, name string) error {
	s, ok := catalog.Find(styles, name)
	if !ok {
		printError("style %q is not in the catalog", name)
		return fmt.Errorf("unknown style: %s", name)
	}

	fmt.Println(StyleTitle.Render(s.Name))
	printNewline()
	printKeyValue("traits", strings.Join(s.Characteristics, ", "))
	printKeyValue("colors", strings.Join(s.RecommendedColors, " "))
	printKeyValue("materials", strings.Join(s.RecommendedMaterials, ", "))
	printKeyValue("furniture", strings.Join(s.TypicalFurniture, ", "))
	return nil
}
