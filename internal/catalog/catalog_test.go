package catalog

import "testing"

func TestPatternsFor_CategoryOrder(t *testing.T) {
	tests := []struct {
		productType string
		text        string
		want        string
	}{
		{"vacuum cleaner", "I bought the Dyson V15 Detect and love it", "Dyson V15 Detect"},
		{"smartphone", "Upgraded to the iPhone 15 Pro last week", "iPhone 15 Pro"},
		{"headphones", "The Sony WH-1000XM5 are comfy", "Sony WH-1000XM5"},
		{"laptop", "My Dell XPS 13 is great", "Dell XPS 13"},
		{"monitor", "Get the BenQ EX2780Q", "BenQ EX2780Q"},
	}

	for _, tt := range tests {
		t.Run(tt.productType, func(t *testing.T) {
			var got string
			for _, re := range PatternsFor(tt.productType) {
				if m := re.FindString(tt.text); m != "" {
					got = m
					break
				}
			}
			if got != tt.want {
				t.Errorf("PatternsFor(%q) on %q = %q, want %q", tt.productType, tt.text, got, tt.want)
			}
		})
	}
}

func TestPatternsFor_HeadphonesDoNotUsePhonePatterns(t *testing.T) {
	patterns := PatternsFor("wireless headphones")
	for _, re := range patterns {
		if re.MatchString("iPhone 15") {
			t.Fatalf("headphone patterns should not match phone names, matched by %s", re)
		}
	}
}

func TestPatternsFor_GenericFallback(t *testing.T) {
	patterns := PatternsFor("blender")
	if len(patterns) != 1 || patterns[0] != genericPattern {
		t.Fatalf("expected generic pattern for unknown category, got %d patterns", len(patterns))
	}
	if m := patterns[0].FindString("the Vitamix A3500 is loud"); m != "Vitamix A3500" {
		t.Errorf("generic pattern matched %q", m)
	}
}

func TestRuleFor(t *testing.T) {
	tests := []struct {
		productType string
		want        Rule
	}{
		{"graphics card", RuleGPU},
		{"gaming pc", RuleGPU},
		{"gaming laptop", RuleGPU},
		{"Gaming Desktop", RuleGPU},
		{"notebook", RuleSystem},
		{"desktop computer", RuleSystem},
		{"laptop", RuleSystem},
		{"vacuum cleaner", RuleNone},
	}
	for _, tt := range tests {
		if got := RuleFor(tt.productType); got != tt.want {
			t.Errorf("RuleFor(%q) = %s, want %s", tt.productType, got, tt.want)
		}
	}
}

func TestIsSystemCategory(t *testing.T) {
	for _, pt := range []string{"gaming pc", "Desktop", "laptop", "computer"} {
		if !IsSystemCategory(pt) {
			t.Errorf("expected %q to be a system category", pt)
		}
	}
	for _, pt := range []string{"vacuum cleaner", "headphones", "graphics card"} {
		if IsSystemCategory(pt) {
			t.Errorf("expected %q not to be a system category", pt)
		}
	}
}

func TestIsComponent(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"RTX 4090", true},
		{"Radeon RX 7900", true},
		{"Ryzen 7 7800X3D", false}, // 15 chars, at the length bar
		{"Ryzen 7 7800X", true},
		{"Alienware Aurora R16", false},
		{"MSI RTX 4070", false}, // prebuilt brand overrides
		{"RTX 4090 Gaming Desktop", false},
		{"Dyson V15 Detect", false},
	}
	for _, tt := range tests {
		if got := IsComponent(tt.name); got != tt.want {
			t.Errorf("IsComponent(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHasKnownBrand(t *testing.T) {
	if !HasKnownBrand("DYSON V8") {
		t.Error("brand match should be case-insensitive")
	}
	if HasKnownBrand("Roborock Q7") {
		t.Error("Roborock is not in the brand list")
	}
}
