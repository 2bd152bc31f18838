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

package conf_test

import (
	"os"
	"testing"
	"time"

	"github.com/RedHatInsights/insights-operator-utils/tests/helpers"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/booltab/conf"
)

const envVar = conf.ConfigFileEnvVariableName

func init() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

func mustLoadConfiguration(t *testing.T, envVar string) conf.ConfigStruct {
	config, err := conf.LoadConfiguration(envVar, "../tests/config1")
	helpers.FailOnError(t, err)
	return config
}

func mustSetEnv(t *testing.T, key, val string) {
	err := os.Setenv(key, val)
	helpers.FailOnError(t, err)
}

// TestLoadDefaultConfiguration loads a configuration file for testing
func TestLoadDefaultConfiguration(t *testing.T) {
	os.Clearenv()
	config := mustLoadConfiguration(t, "nonExistingEnvVar")

	assert.Equal(t, 1024, config.Limits.MaxTokens)
	assert.Equal(t, "text", config.Output.Format)
}

// TestLoadConfigurationFromEnvVariable tests loading the config. file for
// testing from an environment variable
func TestLoadConfigurationFromEnvVariable(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, envVar, "../tests/config2")
	config := mustLoadConfiguration(t, envVar)

	assert.Equal(t, 256, config.Limits.MaxTokens)
}

// TestLoadConfigurationNonEnvVarUnknownConfigFile tests loading an
// unexisting config file when no environment variable is provided
func TestLoadConfigurationNonEnvVarUnknownConfigFile(t *testing.T) {
	os.Clearenv()

	config, err := conf.LoadConfiguration("", "foobar")
	assert.Nil(t, err)

	// built-in defaults are used
	assert.Equal(t, conf.DefaultMaxTokens, config.Limits.MaxTokens)
	assert.Equal(t, conf.DefaultMaxVariables, config.Limits.MaxVariables)
	assert.Equal(t, conf.DefaultOutputFormat, config.Output.Format)
	assert.Equal(t, conf.DefaultLogLevel, config.Logging.LogLevel)
	assert.Equal(t, conf.DefaultMetricsJob, config.Metrics.Job)
	assert.False(t, config.Kafka.Enabled)
	assert.False(t, config.Limits.StrictSequential)
}

// TestLoadConfigurationBadConfigFile tests loading a config file with
// syntax errors
func TestLoadConfigurationBadConfigFile(t *testing.T) {
	os.Clearenv()

	_, err := conf.LoadConfiguration("", "../tests/config3")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `fatal error config file:`)
}

// TestLoadingConfigurationEnvVariableBadValueNoDefaultConfig tests loading a
// non-existent configuration file set in environment
func TestLoadingConfigurationEnvVariableBadValueNoDefaultConfig(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, envVar, "non existing file")

	_, err := conf.LoadConfiguration(envVar, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `fatal error config file: Config File "non existing file" Not Found in`)
}

// TestLoadingConfigurationEnvVariableBadValueDefaultConfigFailure tests that
// if env var is provided, it must point to a valid config file
func TestLoadingConfigurationEnvVariableBadValueDefaultConfigFailure(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, envVar, "non existing file")

	_, err := conf.LoadConfiguration(envVar, "../tests/config1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `fatal error config file: Config File "non existing file" Not Found in`)
}

// TestLoadLoggingConfiguration tests loading the logging configuration
// sub-tree
func TestLoadLoggingConfiguration(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, envVar, "../tests/config2")
	config, err := conf.LoadConfiguration(envVar, "")
	assert.Nil(t, err, "Failed loading configuration file from env var!")

	loggingCfg := conf.GetLoggingConfiguration(&config)

	assert.True(t, loggingCfg.Debug)
	assert.Equal(t, "debug", loggingCfg.LogLevel)
}

// TestLoadLimitsConfiguration tests loading the limits configuration
// sub-tree
func TestLoadLimitsConfiguration(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, envVar, "../tests/config2")
	config, err := conf.LoadConfiguration(envVar, "")
	assert.Nil(t, err, "Failed loading configuration file from env var!")

	limitsCfg := conf.GetLimitsConfiguration(&config)

	assert.Equal(t, 256, limitsCfg.MaxTokens)
	assert.Equal(t, 8, limitsCfg.MaxVariables)
	assert.True(t, limitsCfg.StrictSequential)
}

// TestLoadOutputConfiguration tests loading the output configuration
// sub-tree
func TestLoadOutputConfiguration(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, envVar, "../tests/config2")
	config, err := conf.LoadConfiguration(envVar, "")
	assert.Nil(t, err, "Failed loading configuration file from env var!")

	outputCfg := conf.GetOutputConfiguration(&config)

	assert.Equal(t, "json", outputCfg.Format)
	assert.True(t, outputCfg.Header)
}

// TestLoadBrokerConfiguration tests loading the broker configuration sub-tree
func TestLoadBrokerConfiguration(t *testing.T) {
	os.Clearenv()
	expectedTimeout, _ := time.ParseDuration("20s")

	mustSetEnv(t, envVar, "../tests/config2")
	config, err := conf.LoadConfiguration(envVar, "")
	assert.Nil(t, err, "Failed loading configuration file from env var!")

	brokerCfg := conf.GetKafkaBrokerConfiguration(&config)

	assert.True(t, brokerCfg.Enabled)
	assert.Equal(t, "localhost:29092", brokerCfg.Addresses)
	assert.Equal(t, "SASL_SSL", brokerCfg.SecurityProtocol)
	assert.Equal(t, "SCRAM-SHA-512", brokerCfg.SaslMechanism)
	assert.Equal(t, "username", brokerCfg.SaslUsername)
	assert.Equal(t, "password", brokerCfg.SaslPassword)
	assert.Equal(t, "booltab_test_reports", brokerCfg.Topic)
	assert.Equal(t, expectedTimeout, brokerCfg.Timeout)
}

// TestLoadMetricsConfiguration tests loading the metrics configuration
// sub-tree
func TestLoadMetricsConfiguration(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, envVar, "../tests/config2")
	config, err := conf.LoadConfiguration(envVar, "")
	assert.Nil(t, err, "Failed loading configuration file from env var!")

	metricsCfg := conf.GetMetricsConfiguration(&config)

	assert.Equal(t, "booltab_test", metricsCfg.Job)
	assert.Equal(t, "booltab_test", metricsCfg.Namespace)
	assert.Equal(t, "localhost:9091", metricsCfg.GatewayURL)
	assert.Equal(t, "token", metricsCfg.GatewayAuthToken)
	assert.Equal(t, 5, metricsCfg.Retries)
	assert.Equal(t, 2*time.Second, metricsCfg.RetryAfter)
}

// TestLoadConfigurationOverwriteFromEnv tests overwriting configuration
// options by environment variables
func TestLoadConfigurationOverwriteFromEnv(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, envVar, "../tests/config1")
	mustSetEnv(t, "BOOLTAB_LIMITS__MAX_TOKENS", "32")
	mustSetEnv(t, "BOOLTAB_LIMITS__STRICT_SEQUENTIAL", "true")
	mustSetEnv(t, "BOOLTAB_OUTPUT__FORMAT", "yaml")
	mustSetEnv(t, "BOOLTAB_KAFKA_BROKER__TOPIC", "other_topic")

	config, err := conf.LoadConfiguration(envVar, "")
	assert.Nil(t, err, "Failed loading configuration file from env var!")

	assert.Equal(t, 32, config.Limits.MaxTokens)
	assert.True(t, config.Limits.StrictSequential)
	assert.Equal(t, "yaml", config.Output.Format)
	assert.Equal(t, "other_topic", config.Kafka.Topic)
}

// TestLoadConfigurationFromEnvWithoutFile tests that environment variables
// are accepted even when no configuration file exists
func TestLoadConfigurationFromEnvWithoutFile(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, "BOOLTAB_LIMITS__MAX_VARIABLES", "4")
	mustSetEnv(t, "BOOLTAB_OUTPUT__HEADER", "true")

	config, err := conf.LoadConfiguration(envVar, "foobar")
	assert.Nil(t, err)

	assert.Equal(t, 4, config.Limits.MaxVariables)
	assert.True(t, config.Output.Header)
	assert.Equal(t, conf.DefaultMaxTokens, config.Limits.MaxTokens)
}

// TestLoadConfigurationFromDotEnvFile tests reading environment variables
// from dotenv file
func TestLoadConfigurationFromDotEnvFile(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, envVar, "../tests/config1")
	mustSetEnv(t, conf.EnvFileEnvVariableName, "../tests/test.env")

	config, err := conf.LoadConfiguration(envVar, "")
	assert.Nil(t, err)

	assert.Equal(t, 64, config.Limits.MaxTokens)
	assert.Equal(t, "yaml", config.Output.Format)
}

// TestLoadConfigurationDotEnvDoesNotOverwriteEnv tests that variables
// already set in environment take precedence over dotenv file
func TestLoadConfigurationDotEnvDoesNotOverwriteEnv(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, envVar, "../tests/config1")
	mustSetEnv(t, conf.EnvFileEnvVariableName, "../tests/test.env")
	mustSetEnv(t, "BOOLTAB_LIMITS__MAX_TOKENS", "16")

	config, err := conf.LoadConfiguration(envVar, "")
	assert.Nil(t, err)

	assert.Equal(t, 16, config.Limits.MaxTokens)
}

// TestLoadConfigurationMissingDotEnvFile tests that dotenv file named in
// environment has to exist
func TestLoadConfigurationMissingDotEnvFile(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, conf.EnvFileEnvVariableName, "../tests/missing.env")

	_, err := conf.LoadConfiguration(envVar, "../tests/config1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unable to load dotenv file ../tests/missing.env")
}

// TestLoadConfigurationClowderWithoutKafka tests that broker configuration
// from file is kept when Clowder provides no Kafka section
func TestLoadConfigurationClowderWithoutKafka(t *testing.T) {
	os.Clearenv()

	mustSetEnv(t, "ACG_CONFIG", "../tests/clowder_config.json")
	mustSetEnv(t, envVar, "../tests/config1")

	config, err := conf.LoadConfiguration(envVar, "")
	assert.Nil(t, err)

	// Clowder configuration is read at package init, before ACG_CONFIG
	// was set
	assert.Equal(t, "localhost:9092", config.Kafka.Addresses)
}
