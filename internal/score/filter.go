package score

import (
	"sort"

	"github.com/ppiankov/pickwise/internal/catalog"
	"github.com/ppiankov/pickwise/internal/model"
)

// CategoryFilter narrows ranked mentions to the ones worth recommending.
// System categories prefer complete systems over bare components.
type CategoryFilter struct {
	policy model.Policy
}

// NewCategoryFilter creates a filter with the given policy
func NewCategoryFilter(policy model.Policy) *CategoryFilter {
	return &CategoryFilter{policy: policy}
}

// Partition splits mentions into complete systems and bare components
func Partition(mentions []model.Mention) (systems, components []model.Mention) {
	for _, m := range mentions {
		if catalog.IsComponent(m.Product) {
			components = append(components, m)
		} else {
			systems = append(systems, m)
		}
	}
	return systems, components
}

// Apply selects the preferred subset of ranked mentions for productType
func (f *CategoryFilter) Apply(mentions []model.Mention, productType string) []model.Mention {
	if len(mentions) == 0 {
		return nil
	}

	pool := mentions
	if catalog.IsSystemCategory(productType) {
		systems, components := Partition(mentions)
		if len(systems) > 0 {
			pool = systems
		} else {
			pool = components
		}
	}

	selected := f.preferValid(pool)
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].RankScore > selected[j].RankScore
	})
	return selected
}

// preferValid keeps mentions at or above the validity bar, or all of them if none qualify
func (f *CategoryFilter) preferValid(mentions []model.Mention) []model.Mention {
	var valid []model.Mention
	for _, m := range mentions {
		if m.ValidityScore >= f.policy.ValidThreshold {
			valid = append(valid, m)
		}
	}
	if len(valid) > 0 {
		return valid
	}

	all := make([]model.Mention, len(mentions))
	copy(all, mentions)
	return all
}
