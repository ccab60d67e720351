package core

import (
	"context"
	"sort"
	"strings"

	"tankmate/pkg/domain"
)

// NewIncompatiblePairsRule reports every incompatible species pair in one warning.
func NewIncompatiblePairsRule() Rule {
	return incompatiblePairsRule{}
}

type incompatiblePairsRule struct{}

func (incompatiblePairsRule) Name() string { return "incompatible_pairs" }

// Evaluate scans the upper triangle. Pairs are keyed by alphabetized names so
// duplicate rows of one species never repeat a pair.
func (r incompatiblePairsRule) Evaluate(_ context.Context, view EvaluationView) (domain.Result, error) {
	seen := make(map[[2]string]struct{})
	var pairs [][2]string
	for i := range view.Matrix {
		for j := i + 1; j < len(view.Matrix); j++ {
			if view.Matrix[i][j] != domain.CompatibilityIncompatible {
				continue
			}
			a, b := view.Rows[i].Species.Name, view.Rows[j].Species.Name
			if b < a {
				a, b = b, a
			}
			key := [2]string{a, b}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			pairs = append(pairs, key)
		}
	}
	res := domain.Result{}
	if len(pairs) == 0 {
		return res, nil
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	formatted := make([]string, 0, len(pairs))
	for _, p := range pairs {
		formatted = append(formatted, p[0]+" × "+p[1])
	}
	res.Add(r.Name(), "Incompatible pairs: "+strings.Join(formatted, "; "))
	return res, nil
}
