package signal

import (
	"math"
	"math/cmplx"

	"github.com/nfvri/ris-simulator/pkg/model"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// ricianNuSigma derives the specular amplitude nu and the per-component
// scattered deviation sigma from the linear K-factor, assuming total power 1.
func ricianNuSigma(K float64) (float64, float64) {
	sigma := math.Sqrt(1 / (2 * (K + 1)))
	nu := math.Sqrt(K / (K + 1))
	return nu, sigma
}

// SampleFading draws a complex fading array of the given shape. The magnitude
// follows the configured distribution and the phase is uniform on [0, 2pi),
// except for the deterministic Rician specular component. The draw is fully
// determined by the seed.
func SampleFading(spec model.FadingSpec, shape Shape, seed uint64) ([]complex128, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	src := rand.NewSource(seed)
	samples := make([]complex128, shape.Len())

	switch spec.Model {
	case model.Rayleigh:
		// complex Gaussian with per-component variance sigma
		normal := distuv.Normal{Mu: 0, Sigma: math.Sqrt(spec.Sigma), Src: src}
		for i := range samples {
			samples[i] = complex(normal.Rand(), normal.Rand())
		}
	case model.Nakagami:
		// magnitude-squared of a Nakagami-m envelope is Gamma(m, omega/m)
		gamma := distuv.Gamma{Alpha: spec.M, Beta: spec.M / spec.Omega, Src: src}
		uniform := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src}
		for i := range samples {
			samples[i] = cmplx.Rect(math.Sqrt(gamma.Rand()), uniform.Rand())
		}
	case model.Rician:
		nu, sigma := ricianNuSigma(spec.K)
		switch spec.Order {
		case model.LOSPre:
			// specular term joins the scattered draw before the composite
			// is scaled down to unit power
			normal := distuv.Normal{Mu: 0, Sigma: math.Sqrt(0.5), Src: src}
			scale := math.Sqrt(1 / (spec.K + 1))
			los := math.Sqrt(spec.K)
			for i := range samples {
				samples[i] = complex(scale*(los+normal.Rand()), scale*normal.Rand())
			}
		case model.LOSPost:
			// scattered part normalized on its own, specular superimposed after
			normal := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}
			for i := range samples {
				samples[i] = complex(nu+normal.Rand(), normal.Rand())
			}
		}
	}
	return samples, nil
}
