package catalog

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/studiolane/roomcraft/pkg/design"
	"github.com/studiolane/roomcraft/pkg/errors"
)

// catalogFile is the TOML schema for catalog files.
//
// Example:
//
//	[[style]]
//	name = "Coastal"
//	characteristics = ["airy", "relaxed"]
//	colors = ["#FFFFFF", "#ADD8E6"]
//	materials = ["rattan", "linen"]
//	furniture = ["slipcover sofa", "driftwood table"]
type catalogFile struct {
	Styles []catalogStyle `toml:"style"`
}

type catalogStyle struct {
	Name            string   `toml:"name"`
	Characteristics []string `toml:"characteristics"`
	Colors          []string `toml:"colors"`
	Materials       []string `toml:"materials"`
	Furniture       []string `toml:"furniture"`
}

// Load reads styles from a TOML catalog file. The returned styles are
// validated for name uniqueness within the file; merging against another
// catalog is the caller's responsibility via Merge.
func Load(path string) ([]design.DesignStyle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read catalog %s", path)
	}

	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "parse catalog %s", path)
	}

	styles := make([]design.DesignStyle, len(file.Styles))
	for i, s := range file.Styles {
		styles[i] = design.DesignStyle{
			Name:                 s.Name,
			Characteristics:      s.Characteristics,
			RecommendedColors:    s.Colors,
			RecommendedMaterials: s.Materials,
			TypicalFurniture:     s.Furniture,
		}
	}

	if err := Validate(styles); err != nil {
		return nil, err
	}
	return styles, nil
}
