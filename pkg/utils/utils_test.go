package utils

import (
	"testing"

	"github.com/nfvri/ris-simulator/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestPowerConversions(t *testing.T) {
	assert.InDelta(t, 100.0, DbmToMw(20), 1e-9)
	assert.InDelta(t, 1.0, DbmToMw(0), 1e-12)
	assert.InDelta(t, 30.0, MwToDbm(1000), 1e-9)
	assert.InDelta(t, -10.0, MwToDbm(DbmToMw(-10)), 1e-9)
	assert.InDelta(t, 2.0, DbToLinear(LinearToDb(2.0)), 1e-12)
}

func TestGetDistance(t *testing.T) {
	a := model.Position{X: 0, Y: 0, Z: 0}
	b := model.Position{X: 3, Y: 4, Z: 0}
	assert.InDelta(t, 5.0, GetDistance(a, b), 1e-12)

	c := model.Position{X: 200, Y: 200, Z: 10}
	assert.InDelta(t, GetDistance(a, c), GetDistance(c, a), 1e-12)
	assert.Equal(t, 0.0, GetDistance(c, c))
}

func TestGenerateSeed(t *testing.T) {
	s1 := GenerateSeed("bs->ue")
	s2 := GenerateSeed("bs->ue")
	s3 := GenerateSeed("bs->ris")
	assert.Equal(t, s1, s2)
	assert.NotEqual(t, s1, s3)
}

func TestGetNoisePower(t *testing.T) {
	// kTB at 300 K over 1 MHz is about -113.8 dBm
	noise := GetNoisePower(300, 1e6)
	assert.InDelta(t, -113.8, noise, 0.1)

	// 3 dB per bandwidth doubling
	assert.InDelta(t, 3.0, GetNoisePower(300, 2e6)-noise, 1e-9)
}
