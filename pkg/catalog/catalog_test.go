package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/studiolane/roomcraft/pkg/design"
	"github.com/studiolane/roomcraft/pkg/errors"
)

func TestStockIsUnique(t *testing.T) {
	if err := Validate(Stock()); err != nil {
		t.Fatalf("stock catalog failed validation: %v", err)
	}
}

func TestStockIsACopy(t *testing.T) {
	a := Stock()
	a[0].Name = "Mutated"

	b := Stock()
	if b[0].Name != "Modern" {
		t.Errorf("Stock() shares storage across calls: got %q", b[0].Name)
	}
}

func TestFind(t *testing.T) {
	styles := Stock()

	tests := []struct {
		name      string
		query     string
		wantFound bool
		wantName  string
	}{
		{"exact", "Modern", true, "Modern"},
		{"lowercase", "modern", true, "Modern"},
		{"uppercase", "SCANDINAVIAN", true, "Scandinavian"},
		{"unknown", "Baroque", false, ""},
		{"empty", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Find(styles, tt.query)
			if found != tt.wantFound {
				t.Fatalf("Find(%q) found = %v, want %v", tt.query, found, tt.wantFound)
			}
			if found && got.Name != tt.wantName {
				t.Errorf("Find(%q) = %q, want %q", tt.query, got.Name, tt.wantName)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		styles   []design.DesignStyle
		wantErr  bool
		wantCode errors.Code
	}{
		{
			name:    "empty catalog",
			styles:  nil,
			wantErr: false,
		},
		{
			name:    "unique names",
			styles:  []design.DesignStyle{{Name: "A"}, {Name: "B"}},
			wantErr: false,
		},
		{
			name:     "duplicate names",
			styles:   []design.DesignStyle{{Name: "A"}, {Name: "A"}},
			wantErr:  true,
			wantCode: errors.ErrCodeDuplicateStyle,
		},
		{
			name:     "duplicate case-insensitive",
			styles:   []design.DesignStyle{{Name: "Modern"}, {Name: "modern"}},
			wantErr:  true,
			wantCode: errors.ErrCodeDuplicateStyle,
		},
		{
			name:     "empty name",
			styles:   []design.DesignStyle{{Name: ""}},
			wantErr:  true,
			wantCode: errors.ErrCodeInvalidCatalog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.styles)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	extra := []design.DesignStyle{{Name: "Coastal"}}

	merged, err := Merge(Stock(), extra)
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if len(merged) != len(Stock())+1 {
		t.Errorf("merged length = %d, want %d", len(merged), len(Stock())+1)
	}
	if merged[len(merged)-1].Name != "Coastal" {
		t.Errorf("extra style not appended last: got %q", merged[len(merged)-1].Name)
	}

	// Conflicting merge is rejected
	if _, err := Merge(Stock(), []design.DesignStyle{{Name: "modern"}}); err == nil {
		t.Error("Merge with conflicting name should fail")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.toml")
	content := `
[[style]]
name = "Coastal"
characteristics = ["airy", "relaxed"]
colors = ["#FFFFFF", "#ADD8E6"]
materials = ["rattan", "linen"]
furniture = ["slipcover sofa"]

[[style]]
name = "Japandi"
colors = ["#F5F5DC"]
materials = ["light wood"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	styles, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(styles) != 2 {
		t.Fatalf("loaded %d styles, want 2", len(styles))
	}
	if styles[0].Name != "Coastal" {
		t.Errorf("styles[0].Name = %q, want Coastal", styles[0].Name)
	}
	if len(styles[0].RecommendedColors) != 2 {
		t.Errorf("Coastal colors = %v, want 2 entries", styles[0].RecommendedColors)
	}
	if styles[1].RecommendedMaterials[0] != "light wood" {
		t.Errorf("Japandi materials = %v", styles[1].RecommendedMaterials)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("expected FILE_NOT_FOUND, got %v", err)
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("[[style"), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if !errors.Is(err, errors.ErrCodeInvalidCatalog) {
			t.Errorf("expected INVALID_CATALOG, got %v", err)
		}
	})

	t.Run("duplicate in file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dup.toml")
		content := "[[style]]\nname = \"A\"\n[[style]]\nname = \"a\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := Load(path)
		if !errors.Is(err, errors.ErrCodeDuplicateStyle) {
			t.Errorf("expected DUPLICATE_STYLE, got %v", err)
		}
	})
}
