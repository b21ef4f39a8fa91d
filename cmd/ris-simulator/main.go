// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"

	"github.com/nfvri/ris-simulator/pkg/manager"
	"github.com/nfvri/ris-simulator/pkg/plots"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := getRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func getRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ris-simulator",
		Short: "Monte-Carlo simulator for RIS-assisted wireless links",
	}
	cmd.AddCommand(getRunCommand())
	return cmd
}

func getRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation scenario and export its rate/outage curves",
		RunE:  runSimulation,
	}
	cmd.Flags().String("scenario", "scenario", "scenario profile name")
	cmd.Flags().String("output", ".", "directory for exported figures")
	cmd.Flags().Bool("redis-enabled", false, "cache channel realizations in redis")
	cmd.Flags().String("redis-host", "localhost", "redis host")
	cmd.Flags().String("redis-port", "6379", "redis port")
	cmd.Flags().String("redis-db", "0", "redis database")
	cmd.Flags().String("redis-username", "", "redis username")
	cmd.Flags().String("redis-password", "", "redis password")
	cmd.Flags().Bool("debug", false, "verbose math tracing")
	return cmd
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	scenarioName, _ := cmd.Flags().GetString("scenario")
	outputDir, _ := cmd.Flags().GetString("output")
	redisEnabled, _ := cmd.Flags().GetBool("redis-enabled")
	redisHost, _ := cmd.Flags().GetString("redis-host")
	redisPort, _ := cmd.Flags().GetString("redis-port")
	redisDB, _ := cmd.Flags().GetString("redis-db")
	redisUsername, _ := cmd.Flags().GetString("redis-username")
	redisPassword, _ := cmd.Flags().GetString("redis-password")
	debug, _ := cmd.Flags().GetBool("debug")

	if debug {
		log.SetLevel(log.DebugLevel)
	}

	mgr, err := manager.NewManager(&manager.Config{
		ScenarioName:  scenarioName,
		RedisEnabled:  redisEnabled,
		RedisHost:     redisHost,
		RedisPort:     redisPort,
		RedisDB:       redisDB,
		RedisUsername: redisUsername,
		RedisPassword: redisPassword,
	})
	if err != nil {
		return err
	}

	results, err := mgr.Run(context.Background())
	if err != nil {
		return err
	}
	log.Infof("Run %s finished", results.RunID)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	return plots.ExportRun(results, outputDir)
}
