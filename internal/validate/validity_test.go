package validate

import (
	"strings"
	"testing"

	"github.com/ppiankov/pickwise/internal/model"
)

func TestScore(t *testing.T) {
	s := NewScorer(model.DefaultPolicy())

	tests := []struct {
		name        string
		product     string
		context     string
		productType string
		wantScore   int
		wantValid   bool
	}{
		{
			name:        "brand model with ownership",
			product:     "Dyson V15 Detect",
			context:     "I bought the Dyson V15 Detect and love it",
			productType: "vacuum cleaner",
			wantScore:   8,
			wantValid:   true,
		},
		{
			name:        "current nvidia card in gaming category",
			product:     "RTX 4090",
			productType: "gaming pc",
			wantScore:   4,
			wantValid:   true,
		},
		{
			name:        "prebuilt system with recommendation",
			product:     "Alienware Aurora R16",
			context:     "I would recommend the Alienware Aurora R16",
			productType: "gaming pc",
			wantScore:   6,
			wantValid:   true,
		},
		{
			name:        "future nvidia card",
			product:     "RTX 5090",
			productType: "graphics card",
			wantScore:   -1,
		},
		{
			name:        "short lowercase word",
			product:     "ok",
			productType: "headphones",
			wantScore:   -5,
		},
		{
			name:        "bare gpu in desktop category",
			product:     "RTX 4070",
			productType: "desktop",
			wantScore:   -1,
		},
		{
			name:        "prebuilt desktop",
			product:     "HP Omen 45L Desktop",
			productType: "desktop",
			wantScore:   10,
			wantValid:   true,
		},
		{
			name:        "intel arc a-series whitelist",
			product:     "Intel Arc A770 16GB",
			productType: "gpu",
			wantScore:   8,
			wantValid:   true,
		},
		{
			name:        "future amd card",
			product:     "Radeon RX 8900",
			productType: "graphics card",
			wantScore:   1,
		},
		{
			name:        "current amd card",
			product:     "Radeon RX 7900 XTX",
			productType: "graphics card",
			wantScore:   6,
			wantValid:   true,
		},
		{
			name:        "intel arc without series letter",
			product:     "Intel Arc 770",
			productType: "gpu",
			wantScore:   4,
			wantValid:   true,
		},
		{
			name:        "gpu in gaming laptop category uses graphics rules",
			product:     "RTX 4090",
			productType: "gaming laptop",
			wantScore:   4,
			wantValid:   true,
		},
		{
			name:        "cpu brand in desktop category counts as component",
			product:     "AMD 7950X3D",
			productType: "desktop",
			wantScore:   3,
			wantValid:   true,
		},
		{
			name:        "intel arc unknown series",
			product:     "Intel Arc B580",
			productType: "gpu",
			wantScore:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.product, tt.context, tt.productType)
			if got.Score != tt.wantScore {
				t.Errorf("Score(%q) = %d, want %d (reasons: %s)", tt.product, got.Score, tt.wantScore, strings.Join(got.Reasons, "; "))
			}
			if got.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v", got.IsValid, tt.wantValid)
			}
			if len(got.Reasons) == 0 {
				t.Error("expected at least one reason")
			}
		})
	}
}

func TestScoreOwnershipWindow(t *testing.T) {
	s := NewScorer(model.DefaultPolicy())

	near := s.Score("Sony WH-1000XM5", "Honestly I use the Sony WH-1000XM5 daily", "headphones")
	far := s.Score("Sony WH-1000XM5", "I use many things. "+strings.Repeat("filler ", 10)+"Sony WH-1000XM5", "headphones")

	if near.Score-far.Score != 3 {
		t.Errorf("ownership bonus = %d, want 3", near.Score-far.Score)
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := NewScorer(model.DefaultPolicy())
	a := s.Score("Galaxy S24 Ultra", "best phone I have owned", "phone")
	b := s.Score("Galaxy S24 Ultra", "best phone I have owned", "phone")
	if a.Score != b.Score || strings.Join(a.Reasons, "|") != strings.Join(b.Reasons, "|") {
		t.Errorf("non-deterministic result: %+v vs %+v", a, b)
	}
}

func TestScoreCustomThreshold(t *testing.T) {
	p := model.DefaultPolicy()
	p.ValidThreshold = 10
	s := NewScorer(p)

	got := s.Score("Dyson V15 Detect", "I bought the Dyson V15 Detect", "vacuum")
	if got.IsValid {
		t.Errorf("score %d should not be valid with threshold 10", got.Score)
	}
}

func TestScore_GPUReasons(t *testing.T) {
	s := NewScorer(model.DefaultPolicy())
	tests := []struct {
		product     string
		productType string
		reason      string
	}{
		{"Radeon RX 8900", "graphics card", "Likely future/non-existent AMD GPU model: 8900"},
		{"Radeon RX 7900 XTX", "graphics card", "Valid AMD GPU model number range"},
		{"Intel Arc 770", "gpu", "Missing Intel Arc series letter (should be A-series)"},
		{"RTX 4090", "gaming laptop", "Valid NVIDIA GPU model number range"},
	}
	for _, tt := range tests {
		got := s.Score(tt.product, "", tt.productType)
		found := false
		for _, r := range got.Reasons {
			if r == tt.reason {
				found = true
			}
		}
		if !found {
			t.Errorf("Score(%q, %q) reasons %v missing %q", tt.product, tt.productType, got.Reasons, tt.reason)
		}
	}
}
