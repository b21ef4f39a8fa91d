package signal

import (
	"context"
	"os"
	"testing"

	"github.com/nfvri/ris-simulator/pkg/model"
	redisLib "github.com/nfvri/ris-simulator/pkg/store/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func loadScenario(t *testing.T) *model.Scenario {
	scenario := &model.Scenario{}
	bytes, err := os.ReadFile("../model/test.yaml")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal(bytes, scenario))
	require.NoError(t, scenario.Validate())
	return scenario
}

func TestLoadOrBuildLinkCachesRealizations(t *testing.T) {
	ctx := context.Background()
	cache := &redisLib.MockedRedisStore{}
	bs, ue := testNodes()
	shape := Shape{Elements: 2, Antennas: 1, Trials: 300}
	seed := LinkSeed(bs, ue)

	built, err := LoadOrBuildLink(ctx, cache, "test", bs, ue, testFading, testPathloss, shape, seed)
	require.NoError(t, err)

	restored, err := LoadOrBuildLink(ctx, cache, "test", bs, ue, testFading, testPathloss, shape, seed)
	require.NoError(t, err)
	assert.Equal(t, built.Complex(), restored.Complex())
	assert.Equal(t, built.PathlossLinear(), restored.PathlossLinear())

	// different seed misses the cache and produces a fresh draw
	fresh, err := LoadOrBuildLink(ctx, cache, "test", bs, ue, testFading, testPathloss, shape, seed+1)
	require.NoError(t, err)
	assert.NotEqual(t, built.Complex(), fresh.Complex())
}

func TestLoadOrBuildLinkWithoutStore(t *testing.T) {
	bs, ue := testNodes()
	shape := Shape{Elements: 1, Antennas: 1, Trials: 100}
	link, err := LoadOrBuildLink(context.Background(), nil, "test", bs, ue, testFading, testPathloss, shape, 4)
	require.NoError(t, err)
	direct, err := NewLink(bs, ue, testFading, testPathloss, shape, 4)
	require.NoError(t, err)
	assert.Equal(t, direct.Complex(), link.Complex())
}

func TestLoadOrBuildLinkFromScenarioProfile(t *testing.T) {
	ctx := context.Background()
	cache := &redisLib.MockedRedisStore{}
	scenario := loadScenario(t)

	bs, err := scenario.GetNode("bs")
	require.NoError(t, err)
	ris, err := scenario.GetNode("ris")
	require.NoError(t, err)
	require.Equal(t, 32, ris.Elements)

	shape := Shape{Elements: ris.Elements, Antennas: bs.Antennas, Trials: scenario.Trials}
	built, err := LoadOrBuildLink(ctx, cache, scenario.Name, bs, ris,
		scenario.Fading, scenario.Pathloss, shape, LinkSeed(bs, ris))
	require.NoError(t, err)
	require.Equal(t, shape.Len(), len(built.Complex()))

	restored, err := LoadOrBuildLink(ctx, cache, scenario.Name, bs, ris,
		scenario.Fading, scenario.Pathloss, shape, LinkSeed(bs, ris))
	require.NoError(t, err)
	assert.Equal(t, built.Complex(), restored.Complex())
}

func TestLoadOrBuildLinkIgnoresStaleSnapshot(t *testing.T) {
	ctx := context.Background()
	cache := &redisLib.MockedRedisStore{}
	bs, ue := testNodes()
	shape := Shape{Elements: 1, Antennas: 1, Trials: 50}

	// poison the key with a snapshot of the wrong shape
	key := "test-bs->ue-7-1x1x50"
	require.NoError(t, cache.AddLink(ctx, key, &redisLib.LinkSnapshot{Seed: 7, Elements: 1, Antennas: 1, Trials: 10}))

	link, err := LoadOrBuildLink(ctx, cache, "test", bs, ue, testFading, testPathloss, shape, 7)
	require.NoError(t, err)
	assert.Equal(t, shape.Len(), len(link.Complex()))
}
