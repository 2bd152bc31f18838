/*
Copyright © 2026 Red Hat, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Entry point to booltab.
//
// booltab computes the truth table of a boolean expression passed as the
// only command line argument. The expression consists of variables (lower
// case letters), operators NOT '~', AND '&', OR '|' and parentheses. One row
// is printed for each of the 2^N assignments of the N variables found in the
// expression, the k-th variable by order of first appearance owns the k-th
// bit of the assignment.
//
// Optionally the whole truth table can be rendered as JSON or YAML document
// and published to the configured Kafka topic.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/booltab/conf"
	"github.com/RedHatInsights/booltab/driver"
)

// Configuration-related constants
const (
	loadConfigurationMessage = "Load configuration"
)

func main() {
	// nothing but truth table and errors is printed by default
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	cliFlags, args := setupCliFlags()
	checkArgs(&cliFlags)

	// config has exactly the same structure as *.toml file
	config, err := conf.LoadConfiguration(conf.ConfigFileEnvVariableName, conf.DefaultConfigFileName)
	if err != nil {
		log.Err(err).Msg(loadConfigurationMessage)
		os.Exit(driver.ExitStatusConfiguration)
	}

	setupLogging(conf.GetLoggingConfiguration(&config), cliFlags.Verbose)

	// configuration is loaded, so it would be possible to display it if
	// asked by user
	if cliFlags.ShowConfiguration {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		showConfiguration(&config)
		os.Exit(driver.ExitStatusOK)
	}

	if cliFlags.Verbose {
		showConfiguration(&config)
	}

	os.Exit(driver.Run(config, cliFlags, args, os.Stdout, os.Stderr))
}
