// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/nfvri/ris-simulator/pkg/model"
	"github.com/nfvri/ris-simulator/pkg/signal"
	redisLib "github.com/nfvri/ris-simulator/pkg/store/redis"
	"github.com/nfvri/ris-simulator/pkg/utils"
	log "github.com/sirupsen/logrus"
)

// Reserved node names: the transmitter and the reflecting surface. Every
// other node in the scenario is treated as a receiver.
const (
	BSNode  = "bs"
	RISNode = "ris"
)

// Config is a manager configuration
type Config struct {
	ScenarioName  string
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisDB       string
	RedisUsername string
	RedisPassword string
}

// UserResult is the immutable reduction of one receiver's sweep. Returned to
// the caller keyed by node name; nothing is attached back onto the nodes.
type UserResult struct {
	Node      string
	PowersDbm []float64
	MeanRate  []float64
	Outage    []float64
}

// Results holds the outcome of one simulation run.
type Results struct {
	RunID    string
	Scenario string
	// Direct-plus-optimized-RIS single-user curves per receiver.
	Users map[string]UserResult
	// Superposition (NOMA) curves per receiver, present when the base
	// station carries a power allocation.
	Noma map[string]UserResult
}

// Manager runs simulation scenarios end to end.
type Manager struct {
	config   Config
	scenario *model.Scenario
	store    redisLib.Store
}

// NewManager creates a new manager
func NewManager(config *Config) (*Manager, error) {
	log.Info("Creating Manager")
	mgr := &Manager{
		config:   *config,
		scenario: &model.Scenario{},
	}
	if config.RedisEnabled {
		client := redisLib.InitClient(config.RedisHost, config.RedisPort, config.RedisDB,
			config.RedisUsername, config.RedisPassword)
		if client != nil {
			mgr.store = &redisLib.RedisStore{LinkDB: client}
		}
	}
	if err := model.LoadConfig(mgr.scenario, config.ScenarioName); err != nil {
		return nil, err
	}
	return mgr, nil
}

// NewManagerWithScenario creates a manager around an already validated
// scenario, bypassing profile loading. Used by tests and embedding callers.
func NewManagerWithScenario(scenario *model.Scenario, store redisLib.Store) *Manager {
	return &Manager{scenario: scenario, store: store}
}

// Scenario exposes the loaded simulation model.
func (m *Manager) Scenario() *model.Scenario {
	return m.scenario
}

// Run executes the scenario: build links, tune the reflecting surface,
// aggregate the effective channels and reduce them to rate and outage curves.
func (m *Manager) Run(ctx context.Context) (*Results, error) {
	scenario := m.scenario
	bs, err := scenario.GetNode(BSNode)
	if err != nil {
		return nil, err
	}
	ris, err := scenario.GetNode(RISNode)
	if err != nil {
		return nil, err
	}

	users := make([]*model.Node, 0, len(scenario.Nodes))
	for _, node := range scenario.Nodes {
		if node.Name != BSNode && node.Name != RISNode {
			users = append(users, node)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	if len(users) == 0 {
		return nil, model.NewInvalidParameter("scenario %s has no receiver nodes", scenario.Name)
	}

	powersDbm := scenario.Sweep.Values()
	noiseMw := utils.DbmToMw(utils.GetNoisePower(scenario.Noise.TemperatureK, scenario.Noise.BandwidthHz))
	log.Infof("Running scenario %s: %d receivers, %d trials, noise %.2f dBm",
		scenario.Name, len(users), scenario.Trials, utils.MwToDbm(noiseMw))

	results := &Results{
		RunID:    uuid.New().String(),
		Scenario: scenario.Name,
		Users:    map[string]UserResult{},
	}

	cascadeShape := signal.Shape{Elements: ris.Elements, Antennas: bs.Antennas, Trials: scenario.Trials}
	directShape := signal.Shape{Elements: 1, Antennas: bs.Antennas, Trials: scenario.Trials}

	bsRIS, err := m.link(ctx, bs, ris, cascadeShape)
	if err != nil {
		return nil, err
	}

	gains := map[string][]float64{}
	for _, user := range users {
		direct, err := m.link(ctx, bs, user, directShape)
		if err != nil {
			return nil, err
		}
		risUser, err := m.link(ctx, ris, user, cascadeShape)
		if err != nil {
			return nil, err
		}
		if err := signal.ApplyOptimalReflection(ris, direct, bsRIS, risUser, 1.0); err != nil {
			return nil, err
		}
		gain, err := signal.EffectiveChannelGain(direct, bsRIS, risUser, signal.CombineSum)
		if err != nil {
			return nil, err
		}
		gains[user.Name] = signal.GainSquared(gain)

		metrics, err := signal.EvaluateSweep(powersDbm, gains[user.Name],
			signal.SingleUserStage(m.threshold(user.Name)), noiseMw)
		if err != nil {
			return nil, err
		}
		results.Users[user.Name] = UserResult{
			Node:      user.Name,
			PowersDbm: metrics.PowersDbm,
			MeanRate:  metrics.MeanRate,
			Outage:    metrics.Outage,
		}
	}

	if len(bs.PowerAllocation) >= 2 {
		noma, err := m.runNoma(bs, users, gains, powersDbm, noiseMw)
		if err != nil {
			return nil, err
		}
		results.Noma = noma
	}
	return results, nil
}

// runNoma evaluates the two-user superposition downlink. The far user (the
// larger power fraction) is decoded first against the near user's share; the
// near user cancels the far signal before decoding its own, so its outage is
// joint over both stages.
func (m *Manager) runNoma(bs *model.Node, users []*model.Node, gains map[string][]float64,
	powersDbm []float64, noiseMw float64) (map[string]UserResult, error) {

	if len(bs.PowerAllocation) != 2 {
		return nil, model.NewInvalidParameter("superposition coding supports exactly two users, got %d",
			len(bs.PowerAllocation))
	}
	var far, near *model.Node
	for _, user := range users {
		frac, ok := bs.PowerAllocation[user.Name]
		if !ok {
			continue
		}
		if far == nil || frac > bs.PowerAllocation[far.Name] {
			if far != nil {
				near = far
			}
			far = user
		} else {
			near = user
		}
	}
	if far == nil || near == nil {
		return nil, model.NewInvalidParameter("power allocation does not name two receiver nodes")
	}
	aFar := bs.PowerAllocation[far.Name]
	aNear := bs.PowerAllocation[near.Name]
	log.Infof("NOMA pair: far=%s (%.2f) near=%s (%.2f)", far.Name, aFar, near.Name, aNear)

	noma := map[string]UserResult{}

	farMetrics, err := signal.EvaluateSweep(powersDbm, gains[far.Name], []signal.DecodingStage{
		{SignalFrac: aFar, InterferenceFrac: aNear, ThresholdBps: m.threshold(far.Name)},
	}, noiseMw)
	if err != nil {
		return nil, err
	}
	noma[far.Name] = UserResult{Node: far.Name, PowersDbm: powersDbm,
		MeanRate: farMetrics.MeanRate, Outage: farMetrics.Outage}

	nearMetrics, err := signal.EvaluateSweep(powersDbm, gains[near.Name], []signal.DecodingStage{
		{SignalFrac: aFar, InterferenceFrac: aNear, ThresholdBps: m.threshold(far.Name)},
		{SignalFrac: aNear, InterferenceFrac: 0, ThresholdBps: m.threshold(near.Name)},
	}, noiseMw)
	if err != nil {
		return nil, err
	}
	noma[near.Name] = UserResult{Node: near.Name, PowersDbm: powersDbm,
		MeanRate: nearMetrics.MeanRate, Outage: nearMetrics.Outage}
	return noma, nil
}

func (m *Manager) link(ctx context.Context, a, b *model.Node, shape signal.Shape) (*signal.Link, error) {
	return signal.LoadOrBuildLink(ctx, m.store, m.scenario.Name, a, b,
		m.scenario.Fading, m.scenario.Pathloss, shape, signal.LinkSeed(a, b))
}

func (m *Manager) threshold(user string) float64 {
	if t, ok := m.scenario.ThresholdBps[user]; ok {
		return t
	}
	return 1.0
}
