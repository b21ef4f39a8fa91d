package signal

import (
	"math/cmplx"

	"github.com/nfvri/ris-simulator/pkg/model"
)

// CombineSum is the only combination style currently specified: the effective
// channel is the direct path plus the element-summed reflected cascade.
const CombineSum = "sum"

// EffectiveChannelGain combines a direct link and a two-leg cascade through a
// reflecting node into one effective complex gain array of the direct link's
// shape: effective = direct + sum_k Gamma_k * h_tR,k * h_Rr,k, with
// Gamma_k = amplitude_k * exp(i*phase_k) the reflection coefficient of element
// k. Pure function; nothing is cached on any node.
func EffectiveChannelGain(direct, bsRIS, risUE *Link, style string) ([]complex128, error) {
	if style != CombineSum {
		return nil, model.NewInvalidParameter("unknown combination style %q", style)
	}
	if bsRIS.B != risUE.A {
		return nil, model.NewInvalidParameter("cascade legs do not share the reflecting node: %s vs %s",
			bsRIS.B.Name, risUE.A.Name)
	}
	ris := bsRIS.B
	if ris.Reflection == nil {
		return nil, model.NewInvalidParameter("reflecting node %s has no reflection state", ris.Name)
	}
	if bsRIS.Shape != risUE.Shape {
		return nil, model.NewShapeMismatch("cascade legs disagree: %v vs %v", bsRIS.Shape, risUE.Shape)
	}
	shape := bsRIS.Shape
	if len(ris.Reflection.Amplitudes) != shape.Elements {
		return nil, model.NewShapeMismatch("%d reflection amplitudes for %d elements",
			len(ris.Reflection.Amplitudes), shape.Elements)
	}
	if direct.Shape.Elements != 1 || direct.Shape.Antennas != shape.Antennas || direct.Shape.Trials != shape.Trials {
		return nil, model.NewShapeMismatch("direct shape %v incompatible with cascade shape %v",
			direct.Shape, shape)
	}
	// per-element phases broadcast over antennas and trials; a full-length
	// array carries a per-trial configuration
	perElement := len(ris.Reflection.Phases) == shape.Elements
	if !perElement && len(ris.Reflection.Phases) != shape.Len() {
		return nil, model.NewShapeMismatch("%d reflection phases for cascade shape %v",
			len(ris.Reflection.Phases), shape)
	}

	effective := make([]complex128, direct.Shape.Len())
	copy(effective, direct.Complex())

	tR := bsRIS.Complex()
	rU := risUE.Complex()
	for k := 0; k < shape.Elements; k++ {
		amp := ris.Reflection.Amplitudes[k]
		for m := 0; m < shape.Antennas; m++ {
			for n := 0; n < shape.Trials; n++ {
				i := shape.Index(k, m, n)
				phase := ris.Reflection.Phases[k]
				if !perElement {
					phase = ris.Reflection.Phases[i]
				}
				effective[direct.Shape.Index(0, m, n)] += cmplx.Rect(amp, phase) * tR[i] * rU[i]
			}
		}
	}
	return effective, nil
}
