package statistics

// MeanRate averages per-trial rates into one scalar per power level.
func MeanRate(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rates {
		sum += r
	}
	return sum / float64(len(rates))
}

// OutageFraction counts the trials whose rate falls strictly below the
// threshold and returns count/trials exactly. A rate equal to the threshold
// is NOT an outage.
func OutageFraction(rates []float64, threshold float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	count := 0
	for _, r := range rates {
		if r < threshold {
			count++
		}
	}
	return float64(count) / float64(len(rates))
}

// JointOutageFraction marks a trial as outage when ANY decoding stage misses
// its threshold, modeling imperfect successive interference cancellation:
// every stage has to succeed. Stage rate slices must be trial-aligned.
func JointOutageFraction(stageRates [][]float64, thresholds []float64) float64 {
	if len(stageRates) == 0 || len(stageRates[0]) == 0 {
		return 0
	}
	trials := len(stageRates[0])
	count := 0
	for n := 0; n < trials; n++ {
		for s := range stageRates {
			if stageRates[s][n] < thresholds[s] {
				count++
				break
			}
		}
	}
	return float64(count) / float64(trials)
}
