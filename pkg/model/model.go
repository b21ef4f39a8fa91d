// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"math"
)

// Scenario is the top-level simulation model, loaded from a YAML profile.
type Scenario struct {
	Name         string             `mapstructure:"name" yaml:"name"`
	Nodes        map[string]*Node   `mapstructure:"nodes" yaml:"nodes"`
	Fading       FadingSpec         `mapstructure:"fading" yaml:"fading"`
	Pathloss     PathlossSpec       `mapstructure:"pathloss" yaml:"pathloss"`
	Sweep        PowerSweep         `mapstructure:"sweep" yaml:"sweep"`
	Noise        NoiseSpec          `mapstructure:"noise" yaml:"noise"`
	Trials       int                `mapstructure:"trials" yaml:"trials"`
	ThresholdBps map[string]float64 `mapstructure:"thresholdBps" yaml:"thresholdBps"`
}

// Position is a cartesian location in meters.
type Position struct {
	X float64 `mapstructure:"x" yaml:"x"`
	Y float64 `mapstructure:"y" yaml:"y"`
	Z float64 `mapstructure:"z" yaml:"z"`
}

// Node is a positioned actor: base station, user equipment or reflecting surface.
type Node struct {
	Name            string             `mapstructure:"name" yaml:"name"`
	Position        Position           `mapstructure:"position" yaml:"position"`
	Antennas        int                `mapstructure:"antennas" yaml:"antennas"`
	Elements        int                `mapstructure:"elements" yaml:"elements"`
	TxPowerDbm      float64            `mapstructure:"txPowerDbm" yaml:"txPowerDbm"`
	PowerAllocation map[string]float64 `mapstructure:"powerAllocation" yaml:"powerAllocation"`
	Reflection      *Reflection        `mapstructure:"-" yaml:"-"`
}

// Reflection holds the per-element reflection state of a reflecting surface.
// Phases carries either one value per element, or elements*antennas*trials
// values when the controller resolved a per-trial configuration.
type Reflection struct {
	Amplitudes []float64
	Phases     []float64
}

// FadingModel discriminates the small-scale fading variants.
type FadingModel string

const (
	Rayleigh FadingModel = "rayleigh"
	Nakagami FadingModel = "nakagami"
	Rician   FadingModel = "rician"
)

// LOSOrder controls when the Rician specular term joins the scattered part,
// relative to the unit-power normalization of the composite sample.
type LOSOrder string

const (
	LOSPre  LOSOrder = "pre"
	LOSPost LOSOrder = "post"
)

// FadingSpec is the tagged fading configuration. Only the fields of the
// selected Model are consulted.
type FadingSpec struct {
	Model FadingModel `mapstructure:"model" yaml:"model"`
	// Rayleigh: per-component Gaussian variance.
	Sigma float64 `mapstructure:"sigma" yaml:"sigma"`
	// Nakagami: shape m >= 0.5 and mean power omega.
	M     float64 `mapstructure:"m" yaml:"m"`
	Omega float64 `mapstructure:"omega" yaml:"omega"`
	// Rician: linear K-factor and specular insertion order.
	K     float64  `mapstructure:"k" yaml:"k"`
	Order LOSOrder `mapstructure:"order" yaml:"order"`
}

// Validate rejects malformed fading configurations at construction time.
func (f FadingSpec) Validate() error {
	switch f.Model {
	case Rayleigh:
		if f.Sigma <= 0 {
			return NewInvalidParameter("rayleigh sigma must be positive, got %v", f.Sigma)
		}
	case Nakagami:
		if f.M < 0.5 {
			return NewInvalidParameter("nakagami m must be >= 0.5, got %v", f.M)
		}
		if f.Omega <= 0 {
			return NewInvalidParameter("nakagami omega must be positive, got %v", f.Omega)
		}
	case Rician:
		if f.K < 0 {
			return NewInvalidParameter("rician K must be non-negative, got %v", f.K)
		}
		if f.Order != LOSPre && f.Order != LOSPost {
			return NewInvalidParameter("rician order must be %q or %q, got %q", LOSPre, LOSPost, f.Order)
		}
	default:
		return NewInvalidParameter("unknown fading model %q", f.Model)
	}
	return nil
}

// PathlossSpec is the reference-distance power-law large-scale model.
type PathlossSpec struct {
	Exponent    float64 `mapstructure:"exponent" yaml:"exponent"`
	RefPowerDbm float64 `mapstructure:"refPowerDbm" yaml:"refPowerDbm"`
	FrequencyHz float64 `mapstructure:"frequencyHz" yaml:"frequencyHz"`
}

// Validate rejects malformed pathloss configurations.
func (p PathlossSpec) Validate() error {
	if p.Exponent <= 0 {
		return NewInvalidParameter("pathloss exponent must be positive, got %v", p.Exponent)
	}
	if p.FrequencyHz <= 0 {
		return NewInvalidParameter("carrier frequency must be positive, got %v", p.FrequencyHz)
	}
	return nil
}

// PowerSweep is an ordered transmit-power sweep in dBm.
type PowerSweep struct {
	StartDbm float64 `mapstructure:"startDbm" yaml:"startDbm"`
	StopDbm  float64 `mapstructure:"stopDbm" yaml:"stopDbm"`
	Points   int     `mapstructure:"points" yaml:"points"`
}

// Values expands the sweep into its dBm sample points.
func (s PowerSweep) Values() []float64 {
	if s.Points <= 1 {
		return []float64{s.StartDbm}
	}
	step := (s.StopDbm - s.StartDbm) / float64(s.Points-1)
	values := make([]float64, s.Points)
	for i := range values {
		values[i] = s.StartDbm + float64(i)*step
	}
	return values
}

// Validate rejects malformed sweeps.
func (s PowerSweep) Validate() error {
	if s.Points <= 0 {
		return NewInvalidParameter("sweep must have at least one point, got %d", s.Points)
	}
	if s.StopDbm < s.StartDbm {
		return NewInvalidParameter("sweep stop %v dBm below start %v dBm", s.StopDbm, s.StartDbm)
	}
	return nil
}

// NoiseSpec configures the thermal noise floor.
type NoiseSpec struct {
	TemperatureK float64 `mapstructure:"temperatureK" yaml:"temperatureK"`
	BandwidthHz  float64 `mapstructure:"bandwidthHz" yaml:"bandwidthHz"`
}

// Validate rejects malformed noise configurations.
func (n NoiseSpec) Validate() error {
	if n.TemperatureK <= 0 || n.BandwidthHz <= 0 {
		return NewInvalidParameter("noise temperature and bandwidth must be positive, got %vK %vHz",
			n.TemperatureK, n.BandwidthHz)
	}
	return nil
}

// Validate checks the whole scenario; node names are backfilled from map keys.
func (m *Scenario) Validate() error {
	if m.Trials <= 0 {
		return NewInvalidParameter("trials must be positive, got %d", m.Trials)
	}
	if err := m.Fading.Validate(); err != nil {
		return err
	}
	if err := m.Pathloss.Validate(); err != nil {
		return err
	}
	if err := m.Sweep.Validate(); err != nil {
		return err
	}
	if err := m.Noise.Validate(); err != nil {
		return err
	}
	for name, node := range m.Nodes {
		if node.Name == "" {
			node.Name = name
		}
		if node.Antennas == 0 {
			node.Antennas = 1
		}
		for peer, frac := range node.PowerAllocation {
			if frac < 0 || frac > 1 {
				return NewInvalidParameter("node %s power fraction for %s out of [0,1]: %v", name, peer, frac)
			}
		}
	}
	return nil
}

// GetNode gets a node by name.
func (m *Scenario) GetNode(name string) (*Node, error) {
	if node, ok := m.Nodes[name]; ok {
		return node, nil
	}
	return nil, NewInvalidParameter("node %q not found in scenario", name)
}

// SetReflection configures the reflector state of the node with a uniform
// amplitude on every element. A nil phases slice leaves the phases to be
// resolved later by the phase controller.
func (n *Node) SetReflection(amplitude float64, phases []float64) error {
	amplitudes := make([]float64, n.Elements)
	for k := range amplitudes {
		amplitudes[k] = amplitude
	}
	return n.SetReflectionProfile(amplitudes, phases)
}

// SetReflectionProfile configures the reflector state with one amplitude per
// element, modeling non-ideal surfaces whose elements attenuate unevenly.
func (n *Node) SetReflectionProfile(amplitudes, phases []float64) error {
	if len(amplitudes) != n.Elements {
		return NewShapeMismatch("%d reflection amplitudes for node %s with %d elements",
			len(amplitudes), n.Name, n.Elements)
	}
	for _, a := range amplitudes {
		if a < 0 || a > 1 {
			return NewInvalidParameter("reflection amplitude out of [0,1]: %v", a)
		}
	}
	for _, p := range phases {
		if p < 0 || p >= 2*math.Pi {
			return NewInvalidParameter("reflection phase out of [0,2pi): %v", p)
		}
	}
	n.Reflection = &Reflection{Amplitudes: amplitudes, Phases: phases}
	return nil
}
