package core

import "tankmate/pkg/domain"

// ComputeRangeOverlap intersects ranges: the highest low against the lowest
// high. The result is infeasible when they cross. Input order does not matter.
func ComputeRangeOverlap(ranges []domain.Range) (domain.RangeOverlap, error) {
	if len(ranges) == 0 {
		return domain.RangeOverlap{}, ErrEmptyRanges
	}
	low, high := ranges[0].Low, ranges[0].High
	for _, r := range ranges[1:] {
		if r.Low > low {
			low = r.Low
		}
		if r.High < high {
			high = r.High
		}
	}
	return domain.RangeOverlap{Low: low, High: high, Feasible: low <= high}, nil
}

// ComputeOverlaps intersects temperature, pH, and hardness across rows.
func ComputeOverlaps(rows []domain.SpeciesSelection) (domain.Overlaps, error) {
	var out domain.Overlaps
	for _, p := range domain.Parameters {
		ranges := make([]domain.Range, 0, len(rows))
		for _, row := range rows {
			ranges = append(ranges, row.Species.RangeFor(p))
		}
		ov, err := ComputeRangeOverlap(ranges)
		if err != nil {
			return domain.Overlaps{}, err
		}
		switch p {
		case domain.ParameterTemperature:
			out.Temperature = ov
		case domain.ParameterPH:
			out.PH = ov
		case domain.ParameterHardness:
			out.Hardness = ov
		}
	}
	return out, nil
}
