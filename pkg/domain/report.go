package domain

import "time"

// TankType labels the intended use of a tank.
type TankType string

// Known tank types. Other labels are accepted and only skip type-specific checks.
const (
	TankCommunity   TankType = "community"
	TankSpeciesOnly TankType = "species-only"
)

// TankProfile describes an existing tank the selection is scored against.
type TankProfile struct {
	Temperature float64  `json:"temperature"`
	PH          float64  `json:"ph"`
	Volume      float64  `json:"volume_l"`
	Type        TankType `json:"type"`
}

// Volume is a tank volume recommendation in both units.
type Volume struct {
	Litres  int     `json:"litres"`
	Gallons float64 `json:"gallons"`
}

// SpeciesSummary is the per-row identity carried in a report.
type SpeciesSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StockingReport is the complete result of one evaluation. It is recomputed
// on every call and never cached by the engine.
type StockingReport struct {
	Species           []SpeciesSummary    `json:"species"`
	Matrix            CompatibilityMatrix `json:"matrix"`
	Overlaps          Overlaps            `json:"overlaps"`
	RecommendedVolume Volume              `json:"recommended_volume"`
	Warnings          []string            `json:"warnings"`
	Score             int                 `json:"score"`
	ScoreStrategy     string              `json:"score_strategy"`
	Suggestions       []string            `json:"suggestions,omitempty"`
	GeneratedAt       time.Time           `json:"generated_at"`
}
