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

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/booltab/conf"
	"github.com/RedHatInsights/booltab/driver"
	"github.com/RedHatInsights/booltab/types"
)

const (
	versionMessage = "booltab version 1.0.0"
	authorsMessage = "Red Hat Inc."
)

// showVersion function displays version information.
func showVersion() {
	fmt.Println(versionMessage)
}

// showAuthors function displays information about authors.
func showAuthors() {
	fmt.Println(authorsMessage)
}

// showUsage function displays usage followed by all flags.
func showUsage() {
	fmt.Fprintln(flag.CommandLine.Output(), driver.UsageMessage)
	fmt.Fprintln(flag.CommandLine.Output(), "\n  Flags:")
	flag.PrintDefaults()
}

// setupCliFlags defines and parses all command line options, positional
// arguments are returned separately
func setupCliFlags() (types.CliFlags, []string) {
	var cliFlags types.CliFlags
	flag.BoolVar(&cliFlags.ShowVersion, "show-version", false, "show version and exit")
	flag.BoolVar(&cliFlags.ShowAuthors, "show-authors", false, "show authors and exit")
	flag.BoolVar(&cliFlags.ShowConfiguration, "show-configuration", false, "show configuration and exit")
	flag.BoolVar(&cliFlags.Verbose, "verbose", false, "verbose logs")
	flag.StringVar(&cliFlags.OutputFormat, "output", "", "output format: text, json or yaml")
	flag.Usage = showUsage
	flag.Parse()
	return cliFlags, flag.Args()
}

// showConfiguration function displays actual configuration.
func showConfiguration(config *conf.ConfigStruct) {
	loggingConfig := conf.GetLoggingConfiguration(config)
	log.Info().
		Str("Level", loggingConfig.LogLevel).
		Bool("Pretty colored debug logging", loggingConfig.Debug).
		Msg("Logging configuration")

	limitsConfig := conf.GetLimitsConfiguration(config)
	log.Info().
		Int("Max tokens", limitsConfig.MaxTokens).
		Int("Max variables", limitsConfig.MaxVariables).
		Bool("Strict sequential", limitsConfig.StrictSequential).
		Msg("Limits configuration")

	outputConfig := conf.GetOutputConfiguration(config)
	log.Info().
		Str("Format", outputConfig.Format).
		Bool("Header", outputConfig.Header).
		Msg("Output configuration")

	brokerConfig := conf.GetKafkaBrokerConfiguration(config)
	log.Info().
		Bool("Enabled", brokerConfig.Enabled).
		Str("Addresses", brokerConfig.Addresses).
		Str("SecurityProtocol", brokerConfig.SecurityProtocol).
		Str("SaslMechanism", brokerConfig.SaslMechanism).
		Str("Topic", brokerConfig.Topic).
		Str("Timeout", brokerConfig.Timeout.String()).
		Msg("Broker configuration")

	metricsConfig := conf.GetMetricsConfiguration(config)

	// Authentication token is omitted on purpose
	log.Info().
		Str("Job", metricsConfig.Job).
		Str("Namespace", metricsConfig.Namespace).
		Str("Push Gateway", metricsConfig.GatewayURL).
		Int("Retries", metricsConfig.Retries).
		Str("Retry after", metricsConfig.RetryAfter.String()).
		Msg("Metrics configuration")
}

// checkArgs function handles command line options passed to the process
func checkArgs(args *types.CliFlags) {
	switch {
	case args.ShowVersion:
		showVersion()
		os.Exit(driver.ExitStatusOK)
	case args.ShowAuthors:
		showAuthors()
		os.Exit(driver.ExitStatusOK)
	default:
	}
}

// setupLogging sets log level and output from logging configuration,
// verbose mode shows at least informational messages
func setupLogging(loggingConfig conf.LoggingConfiguration, verbose bool) {
	if loggingConfig.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	logLevel := convertLogLevel(loggingConfig.LogLevel)
	if verbose && logLevel > zerolog.InfoLevel {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)
	log.Debug().
		Str("configured", loggingConfig.LogLevel).
		Int("internal", int(logLevel)).
		Msg("Log level")
}

func convertLogLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	}

	return zerolog.WarnLevel
}
