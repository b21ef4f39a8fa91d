package signal

import (
	"testing"

	"github.com/nfvri/ris-simulator/pkg/model"
	"github.com/nfvri/ris-simulator/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSinrAndRate(t *testing.T) {
	gainSq := []float64{1e-7, 2e-7}
	sinr := Sinr(100, gainSq, 1, 0, 1e-8)
	assert.InDelta(t, 1000.0, sinr[0], 1e-9)
	assert.InDelta(t, 2000.0, sinr[1], 1e-9)

	rate := Rate([]float64{0, 1, 3})
	assert.InDelta(t, 0.0, rate[0], 1e-12)
	assert.InDelta(t, 1.0, rate[1], 1e-12)
	assert.InDelta(t, 2.0, rate[2], 1e-12)
}

func TestSinrWithInterference(t *testing.T) {
	gainSq := []float64{1e-6}
	// interference dominates noise: SINR tends to sigFrac/interfFrac
	sinr := Sinr(1e6, gainSq, 0.8, 0.2, 1e-12)
	assert.InDelta(t, 4.0, sinr[0], 1e-3)
}

func TestGainSquared(t *testing.T) {
	gainSq := GainSquared([]complex128{3 + 4i, 1i})
	assert.InDelta(t, 25.0, gainSq[0], 1e-12)
	assert.InDelta(t, 1.0, gainSq[1], 1e-12)
}

// The reference scenario: (1,1,100000) Rayleigh direct link, sigma 0.5,
// exponent 3.5 at 282.99 m, 20 dBm reference at 2.4 GHz, -10..30 dBm sweep
// over 80 points, 300 K noise over 1 MHz, 1 bps/Hz threshold.
func TestReferenceScenarioCurves(t *testing.T) {
	bs := &model.Node{Name: "bs", Position: model.Position{X: 0, Y: 0, Z: 0}, Antennas: 1}
	ue := &model.Node{Name: "ue", Position: model.Position{X: 282.99, Y: 0, Z: 0}, Antennas: 1}

	shape := Shape{Elements: 1, Antennas: 1, Trials: 100000}
	link, err := NewLink(bs, ue, testFading, testPathloss, shape, LinkSeed(bs, ue))
	require.NoError(t, err)

	powersDbm := model.PowerSweep{StartDbm: -10, StopDbm: 30, Points: 80}.Values()
	noiseMw := utils.DbmToMw(utils.GetNoisePower(300, 1e6))
	gainSq := GainSquared(link.Complex())

	metrics, err := EvaluateSweep(powersDbm, gainSq, SingleUserStage(1.0), noiseMw)
	require.NoError(t, err)
	require.Equal(t, 80, len(metrics.MeanRate))

	for i := 1; i < len(powersDbm); i++ {
		assert.Greater(t, metrics.MeanRate[i], metrics.MeanRate[i-1],
			"mean rate must increase with power")
		assert.LessOrEqual(t, metrics.Outage[i], metrics.Outage[i-1],
			"outage must not increase with power")
	}
	assert.Less(t, metrics.Outage[len(metrics.Outage)-1], 0.01)
	for _, o := range metrics.Outage {
		assert.GreaterOrEqual(t, o, 0.0)
		assert.LessOrEqual(t, o, 1.0)
	}
}

func TestEvaluateSweepRequiresStages(t *testing.T) {
	_, err := EvaluateSweep([]float64{0}, []float64{1}, nil, 1e-11)
	assert.Error(t, err)
}
