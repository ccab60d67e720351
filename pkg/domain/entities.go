// Package domain defines the species, selection, and report value types
// shared by the catalog normalizer and the stocking engine.
package domain

import "strings"

// Parameter identifies an environmental water parameter tracked per species.
type Parameter string

// Supported water parameters, in the order warnings and overlaps are reported.
const (
	ParameterTemperature Parameter = "temperature"
	ParameterPH          Parameter = "ph"
	ParameterHardness    Parameter = "hardness"
)

// Parameters lists every tracked water parameter in reporting order.
var Parameters = []Parameter{ParameterTemperature, ParameterPH, ParameterHardness}

// Temperament vocabulary matched case-insensitively as substrings of Species.Temperament.
const (
	TemperamentAggressive     = "aggressive"
	TemperamentSemiAggressive = "semi-aggressive"
	TemperamentPeaceful       = "peaceful"
)

// Defaults applied by the catalog normalizer when a record omits a field.
const (
	DefaultAdultSize          = 5.0
	DefaultTemperament        = "Unknown"
	DefaultDiet               = "Omnivore"
	DefaultImage              = "/static/fish/placeholder.jpg"
	DefaultSchoolingGroupSize = 6
	DefaultGroupSize          = 1
)

// Range is a closed numeric interval. Low <= High is not enforced.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Contains reports whether v lies within the closed interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// Fallback ranges used when a catalog record does not declare a parameter.
var (
	DefaultTemperatureRange = Range{Low: 22, High: 26}
	DefaultPHRange          = Range{Low: 6.5, High: 7.5}
	DefaultHardnessRange    = Range{Low: 1, High: 12}
)

// DefaultRange returns the fallback range for a parameter.
func DefaultRange(p Parameter) Range {
	switch p {
	case ParameterPH:
		return DefaultPHRange
	case ParameterHardness:
		return DefaultHardnessRange
	default:
		return DefaultTemperatureRange
	}
}

// Species is the canonical catalog entry for one aquarium species.
type Species struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Compatibility []string `json:"compatibility"`
	MinTankSize   *float64 `json:"min_tank_size"`
	AdultSize     *float64 `json:"adult_size"`
	Temperature   Range    `json:"temperature"`
	PH            Range    `json:"ph"`
	Hardness      Range    `json:"hardness"`
	Temperament   string   `json:"temperament"`
	Diet          string   `json:"diet"`
	Schooling     bool     `json:"schooling"`
	MinGroupSize  int      `json:"min_group_size"`
	Image         string   `json:"image"`
}

// Tolerates reports whether the species lists id in its compatibility claims.
// Claims are directional: A tolerating B says nothing about B.
func (s *Species) Tolerates(id string) bool {
	for _, other := range s.Compatibility {
		if other == id {
			return true
		}
	}
	return false
}

// EffectiveAdultSize returns the declared adult size or DefaultAdultSize.
func (s *Species) EffectiveAdultSize() float64 {
	if s.AdultSize == nil || *s.AdultSize <= 0 {
		return DefaultAdultSize
	}
	return *s.AdultSize
}

// DeclaredMinTankSize returns the minimum tank volume when one is declared.
func (s *Species) DeclaredMinTankSize() (float64, bool) {
	if s.MinTankSize == nil || *s.MinTankSize <= 0 {
		return 0, false
	}
	return *s.MinTankSize, true
}

// HasTemperament reports whether the temperament text contains term, ignoring case.
func (s *Species) HasTemperament(term string) bool {
	return strings.Contains(strings.ToLower(s.Temperament), strings.ToLower(term))
}

// IsAggressive reports whether the temperament mentions "aggressive".
// Semi-aggressive species match too.
func (s *Species) IsAggressive() bool { return s.HasTemperament(TemperamentAggressive) }

// IsSemiAggressive reports whether the temperament mentions "semi-aggressive".
func (s *Species) IsSemiAggressive() bool { return s.HasTemperament(TemperamentSemiAggressive) }

// IsPeaceful reports whether the temperament mentions "peaceful".
func (s *Species) IsPeaceful() bool { return s.HasTemperament(TemperamentPeaceful) }

// RangeFor returns the species' viable range for the parameter.
func (s *Species) RangeFor(p Parameter) Range {
	switch p {
	case ParameterPH:
		return s.PH
	case ParameterHardness:
		return s.Hardness
	default:
		return s.Temperature
	}
}
