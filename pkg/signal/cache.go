package signal

import (
	"context"
	"fmt"

	"github.com/nfvri/ris-simulator/pkg/model"
	redisLib "github.com/nfvri/ris-simulator/pkg/store/redis"
	"github.com/nfvri/ris-simulator/pkg/utils"
	log "github.com/sirupsen/logrus"
)

// LoadOrBuildLink returns the link for the given node pair, reusing a cached
// realization when the store holds a snapshot with matching seed and shape.
// A nil store, a miss or a stale snapshot all fall back to sampling; the
// fresh realization is then written back.
func LoadOrBuildLink(ctx context.Context, store redisLib.Store, scenario string,
	a, b *model.Node, fading model.FadingSpec, pathloss model.PathlossSpec, shape Shape, seed uint64) (*Link, error) {

	if store == nil {
		return NewLink(a, b, fading, pathloss, shape, seed)
	}

	key := fmt.Sprintf("%s-%s->%s-%d-%s", scenario, a.Name, b.Name, seed, shape)
	snapshot, err := store.GetLink(ctx, key)
	if err == nil && snapshotMatches(snapshot, shape, seed) {
		log.Debugf("link %s restored from cache", key)
		return restoreLink(a, b, fading, pathloss, shape, seed, snapshot)
	}

	link, err := NewLink(a, b, fading, pathloss, shape, seed)
	if err != nil {
		return nil, err
	}
	if err := store.AddLink(ctx, key, snapshotLink(link)); err != nil {
		log.Warnf("failed to cache link %s: %v", key, err)
	}
	return link, nil
}

func snapshotMatches(s *redisLib.LinkSnapshot, shape Shape, seed uint64) bool {
	return s.Seed == seed &&
		s.Elements == shape.Elements && s.Antennas == shape.Antennas && s.Trials == shape.Trials &&
		len(s.Re) == shape.Len() && len(s.Im) == shape.Len()
}

func snapshotLink(l *Link) *redisLib.LinkSnapshot {
	re := make([]float64, len(l.coeffs))
	im := make([]float64, len(l.coeffs))
	for i, c := range l.coeffs {
		re[i] = real(c)
		im[i] = imag(c)
	}
	return &redisLib.LinkSnapshot{
		Seed:     l.Seed,
		Elements: l.Shape.Elements,
		Antennas: l.Shape.Antennas,
		Trials:   l.Shape.Trials,
		Re:       re,
		Im:       im,
	}
}

func restoreLink(a, b *model.Node, fading model.FadingSpec, pathloss model.PathlossSpec,
	shape Shape, seed uint64, snapshot *redisLib.LinkSnapshot) (*Link, error) {

	distance := utils.GetDistance(a.Position, b.Position)
	pl, err := GetPathloss(pathloss, distance)
	if err != nil {
		return nil, err
	}
	coeffs := make([]complex128, shape.Len())
	for i := range coeffs {
		coeffs[i] = complex(snapshot.Re[i], snapshot.Im[i])
	}
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
