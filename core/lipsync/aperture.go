package lipsync

const apertureCeiling = 50.0

// Aperture maps frequency bins to a mouth opening in [0, 1]: the mean bin
// value capped at 50, divided by 50. No bins means a closed mouth.
func Aperture(bins []uint8) float64 {
	if len(bins) == 0 {
		return 0
	}

	total := 0.0
	for _, b := range bins {
		total += float64(b)
	}
	mean := total / float64(len(bins))
	return min(mean, apertureCeiling) / apertureCeiling
}
