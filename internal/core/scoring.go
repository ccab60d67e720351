package core

import (
	"fmt"
	"math"

	"tankmate/pkg/domain"
)

// Scoring strategy names reported in StockingReport.ScoreStrategy.
const (
	StrategyOverlapRatio = "overlap_ratio"
	StrategyPenalty      = "penalty"
)

// ScoreInput carries everything a scoring strategy may consult.
type ScoreInput struct {
	Selection domain.Selection
	Matrix    domain.CompatibilityMatrix
	Overlaps  domain.Overlaps
	Profile   *domain.TankProfile
}

// Score is a strategy result.
type Score struct {
	Value       int
	Suggestions []string
}

// Scorer turns an evaluation into a 0-100 score.
type Scorer interface {
	Name() string
	Score(in ScoreInput) Score
}

// SelectScorer picks the penalty strategy when a tank profile is supplied and
// the overlap ratio otherwise.
func SelectScorer(profile *domain.TankProfile, interactions []InteractionRule) Scorer {
	if profile != nil {
		return PenaltyScorer{Interactions: interactions}
	}
	return OverlapRatioScorer{}
}

// OverlapRatioScorer rates the share of compatible pairs, counting
// semi-compatible pairs as half.
type OverlapRatioScorer struct{}

// Name implements Scorer.
func (OverlapRatioScorer) Name() string { return StrategyOverlapRatio }

// Score implements Scorer. A selection with fewer than two rows scores 100.
func (OverlapRatioScorer) Score(in ScoreInput) Score {
	n := in.Matrix.Size()
	if n < 2 {
		return Score{Value: 100}
	}
	totalPairs := n * (n - 1) / 2
	compatible, semi := pairCounts(in.Matrix)
	ratio := (float64(compatible) + 0.5*float64(semi)) / float64(totalPairs)
	return Score{Value: int(math.Round(100 * ratio))}
}

// Penalty weights.
const (
	maxLoadPenalty          = 40.0
	loadPenaltyPerUnit      = 0.5
	temperaturePenalty      = 8
	phPenalty               = 8
	minVolumePenalty        = 6
	aggressivePeacefulCost  = 25
	semiAggressiveCost      = 10
	interactionPenalty      = 10
	speciesOnlyMixedPenalty = 10
	communityAggressiveCost = 10
)

// PenaltyScorer starts at 100 and subtracts for each problem found against
// the tank profile. The score is clamped to [0, 100] once at the end.
type PenaltyScorer struct {
	Interactions []InteractionRule
}

// Name implements Scorer.
func (PenaltyScorer) Name() string { return StrategyPenalty }

// Score implements Scorer. Without a profile it scores 100.
func (s PenaltyScorer) Score(in ScoreInput) Score {
	profile := in.Profile
	if profile == nil {
		return Score{Value: 100}
	}
	score := 100.0
	var suggestions suggestionList
	distinct := in.Selection.DistinctSpecies()

	for _, row := range in.Selection.Rows {
		if row.Species.Schooling && row.Count < row.Species.MinGroupSize {
			suggestions.add(fmt.Sprintf("Keep %s in groups of %d+.", row.Species.Name, row.Species.MinGroupSize))
		}
	}

	load := 0.0
	for _, sp := range in.Selection.Individuals {
		load += sp.EffectiveAdultSize()
	}
	if excess := load - profile.Volume; excess > 0 {
		score -= math.Min(maxLoadPenalty, excess*loadPenaltyPerUnit)
		suggestions.add("Reduce the number of fish or choose a larger tank.")
	}

	for _, sp := range distinct {
		if !sp.Temperature.Contains(profile.Temperature) {
			score -= temperaturePenalty
			suggestions.add(fmt.Sprintf("%s prefers %g-%g °C.", sp.Name, sp.Temperature.Low, sp.Temperature.High))
		}
	}
	for _, sp := range distinct {
		if !sp.PH.Contains(profile.PH) {
			score -= phPenalty
			suggestions.add(fmt.Sprintf("%s prefers pH %g-%g.", sp.Name, sp.PH.Low, sp.PH.High))
		}
	}
	for _, sp := range distinct {
		if size, ok := sp.DeclaredMinTankSize(); ok && size > profile.Volume {
			score -= minVolumePenalty
			suggestions.add(fmt.Sprintf("%s needs at least %g L.", sp.Name, size))
		}
	}

	if anyWithOtherPeaceful(distinct, (*domain.Species).IsAggressive) {
		score -= aggressivePeacefulCost
		suggestions.add("Avoid mixing aggressive and peaceful species.")
	}
	if anyWithOtherPeaceful(distinct, (*domain.Species).IsSemiAggressive) {
		score -= semiAggressiveCost
		suggestions.add("Watch semi-aggressive species around peaceful tankmates.")
	}

	for _, rule := range MatchingInteractions(s.Interactions, distinct) {
		score -= interactionPenalty
		if rule.Reason != "" {
			suggestions.add(rule.Reason)
		}
	}

	switch profile.Type {
	case domain.TankSpeciesOnly:
		if len(distinct) > 1 {
			score -= speciesOnlyMixedPenalty
			suggestions.add("Species-only tanks should hold a single species.")
		}
	case domain.TankCommunity:
		for _, sp := range distinct {
			if sp.IsAggressive() {
				score -= communityAggressiveCost
				suggestions.add("Aggressive species are not suited to community tanks.")
				break
			}
		}
	}

	return Score{Value: clampScore(score), Suggestions: suggestions.items()}
}

// anyWithOtherPeaceful reports whether some species matches pred while a
// different species is peaceful.
func anyWithOtherPeaceful(species []*domain.Species, pred func(*domain.Species) bool) bool {
	for _, sp := range species {
		if !pred(sp) {
			continue
		}
		for _, other := range species {
			if other.ID != sp.ID && other.IsPeaceful() {
				return true
			}
		}
	}
	return false
}

func clampScore(v float64) int {
	v = math.Round(v)
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return int(v)
}

// suggestionList keeps unique suggestions in first-seen order.
type suggestionList struct {
	seen  map[string]struct{}
	order []string
}

func (l *suggestionList) add(text string) {
	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}
	if _, ok := l.seen[text]; ok {
		return
	}
	l.seen[text] = struct{}{}
	l.order = append(l.order, text)
}

func (l *suggestionList) items() []string {
	return append([]string{}, l.order...)
}
