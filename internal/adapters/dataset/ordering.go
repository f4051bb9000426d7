package dataset

import (
	"strings"

	"github.com/okian/lectio/internal/config"
)

// unknownRank sorts categories and responses absent from the
// configuration after every known one.
const unknownRank = 999

// OrderingSpec is the configuration-derived sort key generator for
// categories and responses. It is built once per loader and never
// mutated afterwards.
type OrderingSpec struct {
	categories map[string]int            // category -> rank, case-sensitive as configured
	responses  map[string]map[string]int // lowercased category -> response -> rank
}

// NewOrderingSpec derives the ordering from the protocol configuration:
// the category list as configured, and per-category response order from
// the button label lists.
func NewOrderingSpec(cfg *config.Config) *OrderingSpec {
	spec := &OrderingSpec{
		categories: make(map[string]int, len(cfg.CategoryOrder)),
		responses:  make(map[string]map[string]int),
	}
	for i, cat := range cfg.CategoryOrder {
		spec.categories[cat] = i
	}
	spec.responses["student"] = labelRanks(cfg.StudentActions)
	spec.responses["instructor"] = labelRanks(cfg.InstructorActions)
	spec.responses["engagement"] = labelRanks(cfg.EngagementImages)
	return spec
}

func labelRanks(actions []config.Action) map[string]int {
	ranks := make(map[string]int, len(actions))
	for i, a := range actions {
		ranks[a.Label] = i
	}
	return ranks
}

// CategoryRank returns the sort rank of a category. Unknown categories
// rank after all known ones.
func (s *OrderingSpec) CategoryRank(category string) int {
	if rank, ok := s.categories[category]; ok {
		return rank
	}
	return unknownRank
}

// ResponseRank returns the sort rank of a response within its category.
// The category match is case-insensitive; unknown responses rank after
// all known ones.
func (s *OrderingSpec) ResponseRank(category, response string) int {
	ranks, ok := s.responses[strings.ToLower(category)]
	if !ok {
		return unknownRank
	}
	if rank, ok := ranks[response]; ok {
		return rank
	}
	return unknownRank
}
