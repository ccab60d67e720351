package core

import (
	"math"
	"strings"

	"tankmate/pkg/domain"
)

const (
	// BaseVolumeLitres is the smallest base volume. It applies when no selected
	// species declares a larger minimum tank size.
	BaseVolumeLitres = 10.0
	// GallonsPerLitre converts litres to US gallons.
	GallonsPerLitre = 0.264172

	litresPerSizeUnit   = 0.5
	aggressiveWaste     = 0.25
	heavyWaste          = 0.6
	baseVolumeAllowance = 0.15
	volumeStep          = 5.0
)

// HeavyWasteMarkers are name fragments of species with a high bioload.
var HeavyWasteMarkers = []string{"goldfish", "oscar", "koi", "pleco"}

// WasteFactor returns the bioload multiplier for one individual.
func WasteFactor(sp *domain.Species) float64 {
	factor := 1.0
	if sp.IsAggressive() {
		factor += aggressiveWaste
	}
	name := strings.ToLower(sp.Name)
	for _, marker := range HeavyWasteMarkers {
		if strings.Contains(name, marker) {
			factor += heavyWaste
			break
		}
	}
	return factor
}

// EstimateVolume recommends a tank volume for the expanded individuals.
// The base is the largest declared minimum tank size, never below
// BaseVolumeLitres, so adding an individual never lowers the result. The
// result is max(base, load + 15% of base) rounded up to a multiple of 5 litres.
func EstimateVolume(individuals []*domain.Species) domain.Volume {
	base := BaseVolumeLitres
	load := 0.0
	for _, sp := range individuals {
		if size, ok := sp.DeclaredMinTankSize(); ok && size > base {
			base = size
		}
		load += litresPerSizeUnit * sp.EffectiveAdultSize() * WasteFactor(sp)
	}
	recommended := math.Max(base, load+baseVolumeAllowance*base)
	litres := int(math.Ceil(recommended/volumeStep) * volumeStep)
	return domain.Volume{
		Litres:  litres,
		Gallons: math.Round(float64(litres)*GallonsPerLitre*10) / 10,
	}
}
