package signal

import (
	"math"

	"github.com/nfvri/ris-simulator/pkg/model"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// OptimizePhases computes the per-element phase shifts that make the cascade
// path phase-coherent with the direct path under full channel knowledge:
// phi_k = theta_d - theta_tR,k - theta_Rr,k. This is the closed-form optimum;
// no search is involved. The result has the cascade shape, one phase per
// element, antenna and trial, wrapped into [0, 2pi).
func OptimizePhases(direct, bsRIS, risUE *Link) ([]float64, error) {
	if bsRIS.Shape != risUE.Shape {
		return nil, model.NewShapeMismatch("cascade legs disagree: %v vs %v", bsRIS.Shape, risUE.Shape)
	}
	if direct.Shape.Elements != 1 {
		return nil, model.NewShapeMismatch("direct link must have a single element axis, got %v", direct.Shape)
	}
	if direct.Shape.Antennas != bsRIS.Shape.Antennas || direct.Shape.Trials != bsRIS.Shape.Trials {
		return nil, model.NewShapeMismatch("direct %v incompatible with cascade %v", direct.Shape, bsRIS.Shape)
	}

	thetaD := direct.Phase()
	thetaTR := bsRIS.Phase()
	thetaRR := risUE.Phase()

	shape := bsRIS.Shape
	phases := make([]float64, shape.Len())
	for k := 0; k < shape.Elements; k++ {
		for m := 0; m < shape.Antennas; m++ {
			for n := 0; n < shape.Trials; n++ {
				i := shape.Index(k, m, n)
				phi := thetaD[direct.Shape.Index(0, m, n)] - thetaTR[i] - thetaRR[i]
				phases[i] = wrapPhase(phi)
			}
		}
	}
	return phases, nil
}

// ApplyOptimalReflection resolves the coherent phase configuration and stores
// it as the reflecting node's per-element state. Amplitude 1 models an ideal
// reflector; values below 1 model lossy elements and do not affect the phase
// computation.
func ApplyOptimalReflection(ris *model.Node, direct, bsRIS, risUE *Link, amplitude float64) error {
	if ris.Elements != bsRIS.Shape.Elements {
		return model.NewShapeMismatch("node %s has %d elements, cascade shape is %v", ris.Name, ris.Elements, bsRIS.Shape)
	}
	phases, err := OptimizePhases(direct, bsRIS, risUE)
	if err != nil {
		return err
	}
	return ris.SetReflection(amplitude, phases)
}

// ApplyRandomReflection stores a seeded uniformly random per-element phase
// configuration, the usual non-tuned baseline.
func ApplyRandomReflection(ris *model.Node, amplitude float64, seed uint64) error {
	uniform := distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: rand.NewSource(seed)}
	phases := make([]float64, ris.Elements)
	for k := range phases {
		phases[k] = uniform.Rand()
	}
	return ris.SetReflection(amplitude, phases)
}

func wrapPhase(phi float64) float64 {
	phi = math.Mod(phi, 2*math.Pi)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	// adding 2pi to a tiny negative value rounds to exactly 2pi; fold the
	// boundary back so the result stays inside [0, 2pi)
	if phi >= 2*math.Pi {
		phi = 0
	}
	return phi
}
