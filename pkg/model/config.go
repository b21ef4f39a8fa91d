// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"github.com/spf13/viper"
)

const configDir = "/etc/ris-simulator/config"

// LoadConfig loads the named scenario profile into the given Scenario and
// validates it. The profile is searched as <name>.yaml in the working
// directory, ./pkg/model and the system config directory.
func LoadConfig(scenario *Scenario, name string) error {
	v := viper.New()
	v.SetConfigName(name)
	v.AddConfigPath(".")
	v.AddConfigPath("./pkg/model")
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	if err := v.Unmarshal(scenario); err != nil {
		return err
	}
	if scenario.Name == "" {
		scenario.Name = name
	}
	return scenario.Validate()
}
