package domain

// Compatibility classifies the relationship between two selection rows.
type Compatibility string

// Matrix cell classifications.
const (
	CompatibilitySelf         Compatibility = "self"
	CompatibilityCompatible   Compatibility = "compatible"
	CompatibilitySemi         Compatibility = "semi-compatible"
	CompatibilityIncompatible Compatibility = "incompatible"
)

// CompatibilityMatrix is an n×n table indexed by selection row order.
type CompatibilityMatrix [][]Compatibility

// Size returns the number of rows in the matrix.
func (m CompatibilityMatrix) Size() int { return len(m) }

// RangeOverlap is the intersection of one parameter's ranges across a selection.
type RangeOverlap struct {
	Low      float64 `json:"low"`
	High     float64 `json:"high"`
	Feasible bool    `json:"feasible"`
}

// Overlaps groups the per-parameter intersections.
type Overlaps struct {
	Temperature RangeOverlap `json:"temperature"`
	PH          RangeOverlap `json:"ph"`
	Hardness    RangeOverlap `json:"hardness"`
}

// For returns the overlap computed for the parameter.
func (o Overlaps) For(p Parameter) RangeOverlap {
	switch p {
	case ParameterPH:
		return o.PH
	case ParameterHardness:
		return o.Hardness
	default:
		return o.Temperature
	}
}
