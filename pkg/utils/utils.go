// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0
//

package utils

import (
	"hash/fnv"
	"math"

	"github.com/nfvri/ris-simulator/pkg/model"
)

// Boltzmann constant in Joule per Kelvin.
const boltzmann = 1.380649e-23

// DbmToMw converts power from dBm to milliwatts.
func DbmToMw(dbm float64) float64 {
	return math.Pow(10, dbm/10)
}

// MwToDbm converts power from milliwatts to dBm.
func MwToDbm(mw float64) float64 {
	return 10 * math.Log10(mw)
}

// DbToLinear converts a dB ratio to linear scale.
func DbToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// LinearToDb converts a linear ratio to dB.
func LinearToDb(lin float64) float64 {
	return 10 * math.Log10(lin)
}

// GetDistance returns the Euclidean distance in meters between two positions.
func GetDistance(a, b model.Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// GenerateSeed hashes a link identity string into a reproducible random seed.
// FNV-1a keeps the mapping stable across runs and builds; collisions between
// distinct identifiers are acceptable and not guarded.
func GenerateSeed(identifier string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(identifier))
	return h.Sum64()
}

// GetNoisePower returns the thermal noise floor in dBm for the given
// temperature in Kelvin and bandwidth in Hz.
func GetNoisePower(temperatureK, bandwidthHz float64) float64 {
	noiseWatt := boltzmann * temperatureK * bandwidthHz
	return MwToDbm(noiseWatt * 1000)
}
