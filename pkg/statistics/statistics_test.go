package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanRate(t *testing.T) {
	assert.Equal(t, 0.0, MeanRate(nil))
	assert.InDelta(t, 2.0, MeanRate([]float64{1, 2, 3}), 1e-12)
}

func TestOutageFractionIsExact(t *testing.T) {
	rates := []float64{0.5, 1.0, 1.5, 0.9}
	// rate == threshold is a success, strict inequality marks the outage
	assert.Equal(t, 0.5, OutageFraction(rates, 1.0))
	assert.Equal(t, 0.0, OutageFraction(rates, 0.5))
	assert.Equal(t, 1.0, OutageFraction(rates, 2.0))
	assert.Equal(t, 0.0, OutageFraction(nil, 1.0))
}

func TestJointOutageFraction(t *testing.T) {
	// stage 1 fails trial 0, stage 2 fails trial 2; trial 1 passes both
	stageRates := [][]float64{
		{0.4, 1.2, 2.0},
		{3.0, 2.5, 0.1},
	}
	thresholds := []float64{1.0, 1.0}
	assert.InDelta(t, 2.0/3.0, JointOutageFraction(stageRates, thresholds), 1e-12)

	// single stage degenerates to the plain fraction
	assert.Equal(t,
		OutageFraction(stageRates[0], 1.0),
		JointOutageFraction(stageRates[:1], thresholds[:1]))

	assert.Equal(t, 0.0, JointOutageFraction(nil, nil))
}

func TestJointOutageCountsTrialOnce(t *testing.T) {
	// both stages fail the same trial; it must count once
	stageRates := [][]float64{
		{0.1, 5.0},
		{0.2, 5.0},
	}
	assert.Equal(t, 0.5, JointOutageFraction(stageRates, []float64{1, 1}))
}
