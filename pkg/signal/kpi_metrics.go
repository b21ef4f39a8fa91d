package signal

import (
	"math"
	"sync"

	"github.com/nfvri/ris-simulator/pkg/model"
	"github.com/nfvri/ris-simulator/pkg/statistics"
	"github.com/nfvri/ris-simulator/pkg/utils"
	log "github.com/sirupsen/logrus"
)

// GainSquared returns the elementwise |g|^2 of an effective channel gain.
func GainSquared(gain []complex128) []float64 {
	gainSq := make([]float64, len(gain))
	for i, g := range gain {
		gainSq[i] = real(g)*real(g) + imag(g)*imag(g)
	}
	return gainSq
}

// Sinr returns the per-trial SINR for one linear transmit power in mW.
// sigFrac and interfFrac split the transmit power between the wanted signal
// and a superimposed interfering signal on the same channel; pass
// interfFrac 0 for single-user links.
func Sinr(txMw float64, gainSq []float64, sigFrac, interfFrac, noiseMw float64) []float64 {
	sinr := make([]float64, len(gainSq))
	for n, g := range gainSq {
		sinr[n] = txMw * sigFrac * g / (txMw*interfFrac*g + noiseMw)
	}
	return sinr
}

// Rate maps per-trial SINR to Shannon spectral efficiency in bps/Hz.
func Rate(sinr []float64) []float64 {
	rate := make([]float64, len(sinr))
	for n, s := range sinr {
		rate[n] = math.Log2(1 + s)
	}
	return rate
}

// DecodingStage is one decoding step at a receiver. Successive interference
// cancellation chains several stages; every stage must reach its threshold
// for the trial to count as a success.
type DecodingStage struct {
	SignalFrac       float64
	InterferenceFrac float64
	ThresholdBps     float64
}

// SweepMetrics are the per-power-level reductions over the trial axis.
type SweepMetrics struct {
	PowersDbm []float64
	MeanRate  []float64
	Outage    []float64
}

// EvaluateSweep reduces a channel-gain-magnitude-squared array into mean-rate
// and outage curves over the transmit-power sweep, decoding the given stages
// at each power level. MeanRate tracks the last stage (the receiver's own
// signal); outage is the joint outage across all stages. Power levels are
// independent, so the sweep fans out across goroutines; determinism is
// unaffected since the channel arrays are fixed inputs.
func EvaluateSweep(powersDbm []float64, gainSq []float64, stages []DecodingStage, noiseMw float64) (SweepMetrics, error) {
	if len(stages) == 0 {
		return SweepMetrics{}, model.NewInvalidParameter("at least one decoding stage is required")
	}
	metrics := SweepMetrics{
		PowersDbm: powersDbm,
		MeanRate:  make([]float64, len(powersDbm)),
		Outage:    make([]float64, len(powersDbm)),
	}

	var wg sync.WaitGroup
	for i := range powersDbm {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			txMw := utils.DbmToMw(powersDbm[i])
			stageRates := make([][]float64, len(stages))
			thresholds := make([]float64, len(stages))
			for s, stage := range stages {
				stageRates[s] = Rate(Sinr(txMw, gainSq, stage.SignalFrac, stage.InterferenceFrac, noiseMw))
				thresholds[s] = stage.ThresholdBps
			}
			metrics.MeanRate[i] = statistics.MeanRate(stageRates[len(stages)-1])
			metrics.Outage[i] = statistics.JointOutageFraction(stageRates, thresholds)
		}(i)
	}
	wg.Wait()

	log.Debugf("sweep evaluated: %d power levels, %d trials, %d stages",
		len(powersDbm), len(gainSq), len(stages))
	return metrics, nil
}

// SingleUserStage is the trivial decoding chain of an interference-free link.
func SingleUserStage(thresholdBps float64) []DecodingStage {
	return []DecodingStage{{SignalFrac: 1, InterferenceFrac: 0, ThresholdBps: thresholdBps}}
}
