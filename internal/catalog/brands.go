package catalog

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var brands = []string{
	"samsung", "apple", "sony", "lg", "microsoft", "dell", "hp",
	"lenovo", "asus", "acer", "alienware", "msi", "gigabyte", "dyson",
	"intel", "amd", "nvidia", "corsair", "logitech", "razer", "bose",
	"jbl", "shure", "shark", "bosch", "miele", "canon", "nikon",
}

var prebuiltBrands = []string{
	"alienware", "hp omen", "dell xps", "lenovo legion", "asus rog",
	"corsair", "msi", "acer predator", "ibuypower", "cyberpower",
}

var systemTerms = []string{"system", "desktop", "tower", "pc", "computer", "gaming pc", "laptop"}

var componentTerms = []string{
	"ryzen", "core i", "intel", "amd", "processor", "cpu", "gpu", "card", "ram", "memory",
}

var bareGPUPattern = regexp.MustCompile(`(?:rtx|gtx|radeon rx|radeon|\barc)\s*[a-z]?\d{3,4}`)

const (
	bareGPUMaxLen       = 20 // GPU model names shorter than this are the card itself
	bareComponentMaxLen = 15
)

// HasKnownBrand reports a case-insensitive match against the brand list
func HasKnownBrand(name string) bool {
	return containsAny(strings.ToLower(name), brands)
}

// HasPrebuiltBrand reports a known prebuilt-system brand or product line
func HasPrebuiltBrand(name string) bool {
	return containsAny(strings.ToLower(name), prebuiltBrands)
}

// HasSystemTerm reports a system-level keyword such as "desktop" or "tower"
func HasSystemTerm(name string) bool {
	return containsAny(strings.ToLower(name), systemTerms)
}

// ComponentSignals describes why a name looks like a bare part
type ComponentSignals struct {
	BareGPU       bool // GPU model without system words and a short name
	BareComponent bool // CPU/RAM/etc. keyword without system words and a short name
}

// Any reports whether either signal fired
func (c ComponentSignals) Any() bool {
	return c.BareGPU || c.BareComponent
}

// Components inspects a candidate name for bare-part signals
func Components(name string) ComponentSignals {
	lower := strings.ToLower(name)
	if HasSystemTerm(lower) {
		return ComponentSignals{}
	}
	n := utf8.RuneCountInString(name)
	return ComponentSignals{
		BareGPU:       bareGPUPattern.MatchString(lower) && n < bareGPUMaxLen,
		BareComponent: containsAny(lower, componentTerms) && n < bareComponentMaxLen,
	}
}

// IsComponent reports whether a name is a bare part rather than a complete system.
// Known prebuilt brands always count as systems.
func IsComponent(name string) bool {
	if HasPrebuiltBrand(name) {
		return false
	}
	return Components(name).Any()
}
