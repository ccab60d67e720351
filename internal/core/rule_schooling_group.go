package core

import (
	"context"
	"fmt"

	"tankmate/pkg/domain"
)

// NewSchoolingGroupRule flags schooling rows selected below their minimum group size.
func NewSchoolingGroupRule() Rule {
	return schoolingGroupRule{}
}

type schoolingGroupRule struct{}

func (schoolingGroupRule) Name() string { return "schooling_group" }

func (r schoolingGroupRule) Evaluate(_ context.Context, view EvaluationView) (domain.Result, error) {
	res := domain.Result{}
	for _, row := range view.Rows {
		sp := row.Species
		if !sp.Schooling || row.Count >= sp.MinGroupSize {
			continue
		}
		res.Add(r.Name(), fmt.Sprintf("%s typically needs a group of %d. You selected %d.", sp.Name, sp.MinGroupSize, row.Count))
	}
	return res, nil
}
