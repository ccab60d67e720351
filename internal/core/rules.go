package core

import (
	"context"

	"tankmate/pkg/domain"
)

// EvaluationView is the read-only input handed to each warning rule.
type EvaluationView struct {
	Rows     []domain.SpeciesSelection
	Matrix   domain.CompatibilityMatrix
	Overlaps domain.Overlaps
}

// Rule inspects an evaluation and reports warnings.
type Rule interface {
	Name() string
	Evaluate(ctx context.Context, view EvaluationView) (domain.Result, error)
}

// RulesEngine runs registered rules in registration order.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an engine instance.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// NewDefaultRulesEngine builds a rules engine with the built-in warning set,
// in the order warnings are reported.
func NewDefaultRulesEngine() *RulesEngine {
	engine := NewRulesEngine()
	engine.Register(NewSchoolingGroupRule())
	engine.Register(NewParameterOverlapRule())
	engine.Register(NewIncompatiblePairsRule())
	engine.Register(NewAggressiveMixRule())
	return engine
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Rules returns the registered rule names in evaluation order.
func (e *RulesEngine) Rules() []string {
	names := make([]string, 0, len(e.rules))
	for _, rule := range e.rules {
		names = append(names, rule.Name())
	}
	return names
}

// Evaluate executes all registered rules and aggregates their results.
func (e *RulesEngine) Evaluate(ctx context.Context, view EvaluationView) (domain.Result, error) {
	var combined domain.Result
	for _, rule := range e.rules {
		res, err := rule.Evaluate(ctx, view)
		if err != nil {
			return domain.Result{}, err
		}
		combined.Merge(res)
	}
	return combined, nil
}
