package solver

import (
	"math"

	"github.com/davidkleiven/gononlin/nonlin"
	"github.com/nfvri/ris-simulator/pkg/model"
)

// outage probabilities below this floor are clamped before taking logs
const outageFloor = 1e-12

// TxPowerForOutage inverts a monotone outage curve: it returns the transmit
// power in dBm at which the curve crosses the target outage probability. The
// curve is interpolated linearly in log10(outage) over the dBm axis, the
// shape outage curves take under Rayleigh-type fading, and the crossing is
// located with a Newton-Krylov root finder seeded inside the bracketing
// segment.
func TxPowerForOutage(powersDbm, outage []float64, target float64) (float64, error) {
	if len(powersDbm) != len(outage) || len(powersDbm) < 2 {
		return 0, model.NewShapeMismatch("outage curve needs matching sweep and outage arrays, got %d and %d",
			len(powersDbm), len(outage))
	}
	if target <= 0 || target >= 1 {
		return 0, model.NewInvalidParameter("target outage must be in (0,1), got %v", target)
	}

	logTarget := math.Log10(target)
	logOutage := make([]float64, len(outage))
	for i, o := range outage {
		logOutage[i] = math.Log10(math.Max(o, outageFloor))
	}

	// bracket the crossing; the curve is non-increasing in power
	lo := -1
	for i := 0; i < len(logOutage)-1; i++ {
		if (logOutage[i]-logTarget)*(logOutage[i+1]-logTarget) <= 0 {
			lo = i
			break
		}
	}
	if lo < 0 {
		return 0, model.NewInvalidParameter("target outage %v not reached within sweep [%v, %v] dBm",
			target, powersDbm[0], powersDbm[len(powersDbm)-1])
	}

	interp := func(x float64) float64 {
		i := lo
		// walk to the segment containing x so the solver can move freely
		for i > 0 && x < powersDbm[i] {
			i--
		}
		for i < len(powersDbm)-2 && x > powersDbm[i+1] {
			i++
		}
		t := (x - powersDbm[i]) / (powersDbm[i+1] - powersDbm[i])
		return logOutage[i] + t*(logOutage[i+1]-logOutage[i])
	}

	problem := nonlin.Problem{
		F: func(out, x []float64) {
			out[0] = interp(x[0]) - logTarget
		},
	}
	nk := nonlin.NewtonKrylov{
		Maxiter:  1000,
		StepSize: 1e-2,
		Tol:      1e-7,
	}
	res, _ := nk.Solve(problem, []float64{(powersDbm[lo] + powersDbm[lo+1]) / 2})
	if !res.Converged {
		return 0, model.NewInvalidParameter("root finding did not converge for target outage %v", target)
	}
	return res.X[0], nil
}
