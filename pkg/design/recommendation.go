package design

// Recommendation kinds. Each kind carries a different payload: color
// recommendations carry Colors, furniture and layout recommendations carry
// Items, material recommendations name a style in the description.
const (
	KindFurniture = "furniture"
	KindColor     = "color"
	KindLayout    = "layout"
	KindMaterial  = "material"
)

// Recommendation is a single ranked design suggestion.
//
// Recommendations are produced fresh on every recompute and never patched
// in place: a newer list supersedes the old one wholesale. Confidence is a
// relative suggestion strength in [0, 1], not a probability.
type Recommendation struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	Description   string          `json:"description"`
	Reason        string          `json:"reason"`
	Confidence    float64         `json:"confidence"`
	Items         []FurnitureItem `json:"items,omitempty"`
	Colors        []string        `json:"colors,omitempty"`
	EstimatedCost float64         `json:"estimated_cost,omitempty"`
}

// NewColorRecommendation builds a color-kind recommendation.
func NewColorRecommendation(description, reason string, confidence float64, colors []string) Recommendation {
	return Recommendation{
		ID:          NewID(),
		Kind:        KindColor,
		Description: description,
		Reason:      reason,
		Confidence:  confidence,
		Colors:      colors,
	}
}

// NewLayoutRecommendation builds a layout-kind recommendation carrying a
// suggested furniture arrangement.
func NewLayoutRecommendation(description, reason string, confidence float64, items []FurnitureItem) Recommendation {
	return Recommendation{
		ID:          NewID(),
		Kind:        KindLayout,
		Description: description,
		Reason:      reason,
		Confidence:  confidence,
		Items:       items,
	}
}

// NewMaterialRecommendation builds a material-kind recommendation for a
// matched style.
func NewMaterialRecommendation(description, reason string, confidence float64) Recommendation {
	return Recommendation{
		ID:          NewID(),
		Kind:        KindMaterial,
		Description: description,
		Reason:      reason,
		Confidence:  confidence,
	}
}

// NewFurnitureRecommendation builds a furniture-kind recommendation with
// concrete items and their combined estimated cost.
func NewFurnitureRecommendation(description, reason string, confidence float64, items []FurnitureItem) Recommendation {
	var cost float64
	for _, it := range items {
		cost += it.Price
	}
	return Recommendation{
		ID:            NewID(),
		Kind:          KindFurniture,
		Description:   description,
		Reason:        reason,
		Confidence:    confidence,
		Items:         items,
		EstimatedCost: cost,
	}
}

// Clone returns a copy of the recommendation with its own item and color
// slices.
func (r Recommendation) Clone() Recommendation {
	out := r
	if r.Items != nil {
		out.Items = make([]FurnitureItem, len(r.Items))
		copy(out.Items, r.Items)
	}
	if r.Colors != nil {
		out.Colors = make([]string, len(r.Colors))
		copy(out.Colors, r.Colors)
	}
	return out
}
