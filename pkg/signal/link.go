package signal

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/nfvri/ris-simulator/pkg/model"
	"github.com/nfvri/ris-simulator/pkg/utils"
	log "github.com/sirupsen/logrus"
)

// Link holds the sampled complex channel coefficients between two nodes over
// the Monte-Carlo trials. The backing array is written once at construction;
// the only mutation path afterwards is SetPhase, which recomposes the array
// from the fixed magnitude envelope and the new phases.
type Link struct {
	A        *model.Node
	B        *model.Node
	Fading   model.FadingSpec
	Pathloss model.PathlossSpec
	Shape    Shape
	Seed     uint64

	pathlossLin float64
	coeffs      []complex128
}

// LinkSeed derives the deterministic seed for a node pair from its identity
// string, so repeated runs reproduce identical channel arrays.
func LinkSeed(a, b *model.Node) uint64 {
	return utils.GenerateSeed(fmt.Sprintf("%s->%s", a.Name, b.Name))
}

// NewLink samples a channel between the two nodes: small-scale fading drawn
// per the fading spec, scaled by sqrt of the linear pathloss over the
// Euclidean distance between the node positions.
func NewLink(a, b *model.Node, fading model.FadingSpec, pathloss model.PathlossSpec, shape Shape, seed uint64) (*Link, error) {
	distance := utils.GetDistance(a.Position, b.Position)
	pl, err := GetPathloss(pathloss, distance)
	if err != nil {
		return nil, err
	}
	coeffs, err := SampleFading(fading, shape, seed)
	if err != nil {
		return nil, err
	}
	// pathloss is a power ratio, the coefficients live in the amplitude domain
	amp := complex(math.Sqrt(pl), 0)
	for i := range coeffs {
		coeffs[i] *= amp
	}
	log.Debugf("link %s->%s: d=%.2fm pl=%.3e shape=%v seed=%d", a.Name, b.Name, distance, pl, shape, seed)
	return &Link{
		A:           a,
		B:           b,
		Fading:      fading,
		Pathloss:    pathloss,
		Shape:       shape,
		Seed:        seed,
		pathlossLin: pl,
		coeffs:      coeffs,
	}, nil
}

// Complex returns the backing coefficient array. Callers must treat it as
// read-only; phase updates go through SetPhase.
func (l *Link) Complex() []complex128 {
	return l.coeffs
}

// Magnitude returns the elementwise modulus of the channel coefficients.
func (l *Link) Magnitude() []float64 {
	mag := make([]float64, len(l.coeffs))
	for i, c := range l.coeffs {
		mag[i] = cmplx.Abs(c)
	}
	return mag
}

// Phase returns the elementwise angle of the channel coefficients.
func (l *Link) Phase() []float64 {
	phase := make([]float64, len(l.coeffs))
	for i, c := range l.coeffs {
		phase[i] = cmplx.Phase(c)
	}
	return phase
}

// PathlossLinear returns the scalar linear pathloss applied at construction.
func (l *Link) PathlossLinear() float64 {
	return l.pathlossLin
}

// SetPhase overwrites the phase of every coefficient while keeping the
// sampled magnitude envelope, recomposing the array as mag*exp(i*phase) so
// the complex, magnitude and phase views stay mutually consistent.
func (l *Link) SetPhase(phase []float64) error {
	if len(phase) != len(l.coeffs) {
		return model.NewShapeMismatch("phase array length %d does not match link shape %v", len(phase), l.Shape)
	}
	for i := range l.coeffs {
		l.coeffs[i] = cmplx.Rect(cmplx.Abs(l.coeffs[i]), phase[i])
	}
	return nil
}
