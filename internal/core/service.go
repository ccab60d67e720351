package core

import (
	"context"
	"errors"
	"time"

	"tankmate/pkg/domain"
)

// OperationEvaluate is the operation name reported to loggers, metrics, and tracers.
const OperationEvaluate = "evaluate"

// Request is one stocking evaluation request.
type Request struct {
	Entries []domain.SelectionEntry
	// Profile switches scoring to the penalty strategy when set.
	Profile *domain.TankProfile
}

// Service evaluates selections against a catalog snapshot. It holds only
// configuration, so one Service may serve concurrent requests.
type Service struct {
	rules          *RulesEngine
	interactions   []InteractionRule
	selectionLimit int
	clock          Clock
	logger         Logger
	metrics        MetricsRecorder
	tracer         Tracer
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the report timestamp source.
func WithClock(clock Clock) ServiceOption {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(recorder MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer Tracer) ServiceOption {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithRulesEngine replaces the default warning rules.
func WithRulesEngine(engine *RulesEngine) ServiceOption {
	return func(s *Service) {
		if engine != nil {
			s.rules = engine
		}
	}
}

// WithInteractionRules replaces DefaultInteractionRules. An empty slice
// disables named-pair penalties.
func WithInteractionRules(rules []InteractionRule) ServiceOption {
	return func(s *Service) {
		s.interactions = append([]InteractionRule(nil), rules...)
	}
}

// WithSelectionLimit keeps only the first n recognized entries. n <= 0 disables the cap.
func WithSelectionLimit(n int) ServiceOption {
	return func(s *Service) {
		s.selectionLimit = n
	}
}

// NewService constructs a service with the default rules and interaction table.
func NewService(opts ...ServiceOption) *Service {
	s := &Service{
		rules:        NewDefaultRulesEngine(),
		interactions: append([]InteractionRule(nil), DefaultInteractionRules...),
		clock:        utcClock(),
		logger:       noopLogger{},
		metrics:      noopMetrics{},
		tracer:       noopTracer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate resolves req against lookup and builds the stocking report.
// It fails only with ErrNoRecognizedSpecies or a rule error.
func (s *Service) Evaluate(ctx context.Context, lookup SpeciesLookup, req Request) (domain.StockingReport, error) {
	var report domain.StockingReport
	err := s.run(ctx, OperationEvaluate, func(ctx context.Context) error {
		var err error
		report, err = s.evaluate(ctx, lookup, req)
		return err
	})
	return report, err
}

func (s *Service) evaluate(ctx context.Context, lookup SpeciesLookup, req Request) (domain.StockingReport, error) {
	s.logger.Debug("evaluating selection", "entries", len(req.Entries), "profile", req.Profile != nil)
	sel, err := ResolveSelection(lookup, req.Entries, s.selectionLimit)
	if err != nil {
		if errors.Is(err, ErrNoRecognizedSpecies) {
			s.logger.Warn("selection rejected", "entries", len(req.Entries), "error", err)
		}
		return domain.StockingReport{}, err
	}

	matrix := BuildCompatibilityMatrix(sel.Rows)
	overlaps, err := ComputeOverlaps(sel.Rows)
	if err != nil {
		return domain.StockingReport{}, err
	}
	volume := EstimateVolume(sel.Individuals)

	findings, err := s.rules.Evaluate(ctx, EvaluationView{Rows: sel.Rows, Matrix: matrix, Overlaps: overlaps})
	if err != nil {
		return domain.StockingReport{}, err
	}

	scorer := SelectScorer(req.Profile, s.interactions)
	score := scorer.Score(ScoreInput{Selection: sel, Matrix: matrix, Overlaps: overlaps, Profile: req.Profile})

	report := domain.StockingReport{
		Species:           summarize(sel.Rows),
		Matrix:            matrix,
		Overlaps:          overlaps,
		RecommendedVolume: volume,
		Warnings:          findings.Messages(),
		Score:             score.Value,
		ScoreStrategy:     scorer.Name(),
		Suggestions:       score.Suggestions,
		GeneratedAt:       s.clock.Now().UTC(),
	}
	s.logger.Info("selection evaluated",
		"rows", len(sel.Rows),
		"individuals", len(sel.Individuals),
		"warnings", len(report.Warnings),
		"score", report.Score,
		"strategy", report.ScoreStrategy,
	)
	return report, nil
}

func (s *Service) run(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, op)
	started := time.Now()
	err := fn(ctx)
	s.metrics.Observe(ctx, op, err == nil, time.Since(started))
	span.End(err)
	if err != nil && !errors.Is(err, ErrNoRecognizedSpecies) {
		s.logger.Error("operation failed", "operation", op, "error", err)
	}
	return err
}

func summarize(rows []domain.SpeciesSelection) []domain.SpeciesSummary {
	out := make([]domain.SpeciesSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.SpeciesSummary{ID: row.Species.ID, Name: row.Species.Name, Count: row.Count})
	}
	return out
}
