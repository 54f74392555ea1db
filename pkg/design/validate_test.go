package design

import (
	"testing"

	"github.com/studiolane/roomcraft/pkg/errors"
)

func validRoom() Room {
	return Room{
		ID:         "r1",
		Dimensions: Dimensions{Width: 20, Length: 15, Height: 10},
		Items: []FurnitureItem{
			{ID: "sofa", Dimensions: Dimensions{Width: 3, Length: 2, Height: 1}, Position: Position{X: 1, Y: 1}, Price: 500},
		},
	}
}

func TestValidateRoom(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Room)
		wantCode errors.Code
	}{
		{
			name:   "valid room",
			mutate: func(r *Room) {},
		},
		{
			name:     "zero width",
			mutate:   func(r *Room) { r.Dimensions.Width = 0 },
			wantCode: errors.ErrCodeInvalidDimensions,
		},
		{
			name:     "negative length",
			mutate:   func(r *Room) { r.Dimensions.Length = -5 },
			wantCode: errors.ErrCodeInvalidDimensions,
		},
		{
			name:     "item with zero height",
			mutate:   func(r *Room) { r.Items[0].Dimensions.Height = 0 },
			wantCode: errors.ErrCodeInvalidDimensions,
		},
		{
			name:     "item with negative price",
			mutate:   func(r *Room) { r.Items[0].Price = -1 },
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "item outside room",
			mutate:   func(r *Room) { r.Items[0].Position.X = 19 },
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:   "item at exact boundary",
			mutate: func(r *Room) { r.Items[0].Position.X = 17 }, // 17 + 3 == 20
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := validRoom()
			tt.mutate(&room)

			err := ValidateRoom(room)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateRoom() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("ValidateRoom() = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestValidateBudget(t *testing.T) {
	tests := []struct {
		name     string
		budget   Budget
		wantCode errors.Code
	}{
		{
			name: "valid budget",
			budget: Budget{Total: 1000, Allocated: map[Category]float64{
				CategoryFurniture: 400, CategoryDecor: 200,
			}},
		},
		{
			name: "over-allocated is still valid",
			budget: Budget{Total: 1000, Allocated: map[Category]float64{
				CategoryFurniture: 2000,
			}},
		},
		{
			name:     "negative total",
			budget:   Budget{Total: -1},
			wantCode: errors.ErrCodeInvalidBudget,
		},
		{
			name: "negative allocation",
			budget: Budget{Total: 1000, Allocated: map[Category]float64{
				CategoryDecor: -5,
			}},
			wantCode: errors.ErrCodeInvalidBudget,
		},
		{
			name: "unknown category",
			budget: Budget{Total: 1000, Allocated: map[Category]float64{
				Category("travel"): 100,
			}},
			wantCode: errors.ErrCodeInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBudget(tt.budget)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateBudget() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("ValidateBudget() = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}
