package core

import "tankmate/pkg/domain"

// BuildCompatibilityMatrix classifies every pair of rows. Mutual claims are
// compatible, one-sided claims semi-compatible, and no claims incompatible.
// The result is symmetric with self on the diagonal.
func BuildCompatibilityMatrix(rows []domain.SpeciesSelection) domain.CompatibilityMatrix {
	n := len(rows)
	matrix := make(domain.CompatibilityMatrix, n)
	for i := range matrix {
		matrix[i] = make([]domain.Compatibility, n)
	}
	for i := 0; i < n; i++ {
		matrix[i][i] = domain.CompatibilitySelf
		for j := i + 1; j < n; j++ {
			a, b := rows[i].Species, rows[j].Species
			c := classify(a.Tolerates(b.ID), b.Tolerates(a.ID))
			matrix[i][j] = c
			matrix[j][i] = c
		}
	}
	return matrix
}

func classify(ab, ba bool) domain.Compatibility {
	switch {
	case ab && ba:
		return domain.CompatibilityCompatible
	case ab || ba:
		return domain.CompatibilitySemi
	default:
		return domain.CompatibilityIncompatible
	}
}

// pairCounts tallies compatible and semi-compatible cells above the diagonal.
func pairCounts(matrix domain.CompatibilityMatrix) (compatible, semi int) {
	for i := range matrix {
		for j := i + 1; j < len(matrix); j++ {
			switch matrix[i][j] {
			case domain.CompatibilityCompatible:
				compatible++
			case domain.CompatibilitySemi:
				semi++
			}
		}
	}
	return compatible, semi
}
