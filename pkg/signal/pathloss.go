package signal

import (
	"math"

	"github.com/nfvri/ris-simulator/pkg/model"
	"github.com/nfvri/ris-simulator/pkg/utils"
)

// GetPathloss calculates the linear large-scale attenuation factor over the
// given distance with the reference-distance power-law model
// pl = p0 * (d / 1m)^(-alpha), referenced to the power p0 at 1 m for the
// configured carrier frequency.
func GetPathloss(spec model.PathlossSpec, distance float64) (float64, error) {
	if err := spec.Validate(); err != nil {
		return 0, err
	}
	if distance <= 0 {
		return 0, model.NewInvalidParameter("distance must be positive, got %v m", distance)
	}
	p0 := utils.DbmToMw(spec.RefPowerDbm)
	return p0 * math.Pow(distance, -spec.Exponent), nil
}
