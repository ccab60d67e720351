package core

import (
	"context"

	"tankmate/pkg/domain"
)

var overlapMessages = map[domain.Parameter]string{
	domain.ParameterTemperature: "Selected fishes do not share a common temperature range.",
	domain.ParameterPH:          "Selected fishes do not share a common pH range.",
	domain.ParameterHardness:    "Selected fishes do not share a common hardness (dGH) range.",
}

// NewParameterOverlapRule flags each water parameter with no common range.
func NewParameterOverlapRule() Rule {
	return parameterOverlapRule{}
}

type parameterOverlapRule struct{}

func (parameterOverlapRule) Name() string { return "parameter_overlap" }

func (r parameterOverlapRule) Evaluate(_ context.Context, view EvaluationView) (domain.Result, error) {
	res := domain.Result{}
	for _, p := range domain.Parameters {
		if !view.Overlaps.For(p).Feasible {
			res.Add(r.Name(), overlapMessages[p])
		}
	}
	return res, nil
}
