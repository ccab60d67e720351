package core

import "tankmate/pkg/domain"

// InteractionRule names a species pair known to do poorly together regardless
// of what their catalog compatibility lists claim.
type InteractionRule struct {
	Name   string
	A      string
	B      string
	Reason string
}

// Matches reports whether both species of the rule are present in ids.
func (r InteractionRule) Matches(ids map[string]struct{}) bool {
	_, a := ids[r.A]
	_, b := ids[r.B]
	return a && b
}

// DefaultInteractionRules is the built-in table of problematic pairs.
var DefaultInteractionRules = []InteractionRule{
	{Name: "angelfish_neon", A: "angelfish", B: "neon_tetra", Reason: "Adult angelfish prey on neon tetras."},
	{Name: "oscar_neon", A: "oscar", B: "neon_tetra", Reason: "Oscars will eat small tetras."},
	{Name: "betta_guppy", A: "betta", B: "guppy", Reason: "Bettas nip the long fins of guppies."},
	{Name: "tiger_barb_betta", A: "tiger_barb", B: "betta", Reason: "Tiger barbs nip betta fins."},
	{Name: "goldfish_betta", A: "goldfish", B: "betta", Reason: "Goldfish and bettas need different temperatures."},
}

// MatchingInteractions returns the rules whose pair is fully present among species.
func MatchingInteractions(rules []InteractionRule, species []*domain.Species) []InteractionRule {
	ids := make(map[string]struct{}, len(species))
	for _, sp := range species {
		ids[sp.ID] = struct{}{}
	}
	var out []InteractionRule
	for _, rule := range rules {
		if rule.Matches(ids) {
			out = append(out, rule)
		}
	}
	return out
}
