package core

import (
	"context"
	"strings"

	"tankmate/pkg/domain"
)

// NewAggressiveMixRule flags selections holding more than one aggressive species.
func NewAggressiveMixRule() Rule {
	return aggressiveMixRule{}
}

type aggressiveMixRule struct{}

func (aggressiveMixRule) Name() string { return "aggressive_mix" }

func (r aggressiveMixRule) Evaluate(_ context.Context, view EvaluationView) (domain.Result, error) {
	var names []string
	for _, sp := range domain.DistinctSpecies(view.Rows) {
		if sp.IsAggressive() {
			names = append(names, sp.Name)
		}
	}
	res := domain.Result{}
	if len(names) > 1 {
		res.Add(r.Name(), "Multiple aggressive/territorial species selected: "+strings.Join(names, ", "))
	}
	return res, nil
}
