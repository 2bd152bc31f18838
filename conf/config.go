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

package conf

// This source file contains definition of data type named ConfigStruct that
// represents configuration of booltab. This source file also contains
// function named LoadConfiguration that can be used to load configuration
// from provided configuration file and/or from environment variables.
// Additionally several specific functions named GetLoggingConfiguration,
// GetLimitsConfiguration, GetOutputConfiguration,
// GetKafkaBrokerConfiguration and GetMetricsConfiguration are to be used to
// return specific configuration options.

// Default name of configuration file is config.toml
// It can be changed via environment variable BOOLTAB_CONFIG_FILE
//
// Configuration file is optional, booltab works with built-in defaults.
//
// An example of configuration file:
//
// [logging]
// debug = false
// log_level = "warn"
//
// [limits]
// max_tokens = 1024
// max_variables = 26
// strict_sequential = false
//
// [output]
// format = "text"
// header = false
//
// [kafka_broker]
// enabled = false
// addresses = "localhost:9092"
// topic = "booltab.reports"
// timeout = "30s"
//
// [metrics]
// job_name = "booltab"
// namespace = "booltab"
// gateway_url = ""
//
// Environment variables that can be used to override configuration file
// settings have the form BOOLTAB_<SECTION>__<KEY>, for example
// BOOLTAB_LIMITS__MAX_TOKENS. Environment variables can also be read from
// dotenv file named by BOOLTAB_ENV_FILE.

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	clowder "github.com/redhatinsights/app-common-go/pkg/api/v1"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Configuration-related constants
const (
	ConfigFileEnvVariableName = "BOOLTAB_CONFIG_FILE"
	EnvFileEnvVariableName    = "BOOLTAB_ENV_FILE"
	DefaultConfigFileName     = "config"
	defaultEnvFileName        = ".env"
	envPrefix                 = "BOOLTAB"
)

// Default values used when configuration does not set them
const (
	DefaultMaxTokens    = 1 << 10
	DefaultMaxVariables = 26
	DefaultOutputFormat = "text"
	DefaultLogLevel     = "warn"
	DefaultMetricsJob   = "booltab"
)

// ConfigStruct is a structure holding the whole booltab configuration
type ConfigStruct struct {
	Logging LoggingConfiguration `mapstructure:"logging"      toml:"logging"`
	Limits  LimitsConfiguration  `mapstructure:"limits"       toml:"limits"`
	Output  OutputConfiguration  `mapstructure:"output"       toml:"output"`
	Kafka   KafkaConfiguration   `mapstructure:"kafka_broker" toml:"kafka_broker"`
	Metrics MetricsConfiguration `mapstructure:"metrics"      toml:"metrics"`
}

// LoggingConfiguration represents configuration for logging in general
type LoggingConfiguration struct {
	// Debug enables pretty colored logging
	Debug bool `mapstructure:"debug" toml:"debug"`

	// LogLevel sets logging level to show. Possible values are:
	// "debug"
	// "info"
	// "warn", "warning"
	// "error"
	// "fatal"
	LogLevel string `mapstructure:"log_level" toml:"log_level"`
}

// LimitsConfiguration represents limits of expression compiler and evaluator
type LimitsConfiguration struct {
	// MaxTokens is the capacity of token buffers and evaluation stack
	MaxTokens int `mapstructure:"max_tokens" toml:"max_tokens"`

	// MaxVariables is the maximum number of distinct variables
	MaxVariables int `mapstructure:"max_variables" toml:"max_variables"`

	// StrictSequential refuses expressions whose variables are not
	// sequential letters starting from 'a'
	StrictSequential bool `mapstructure:"strict_sequential" toml:"strict_sequential"`
}

// OutputConfiguration represents configuration of truth table rendering
type OutputConfiguration struct {
	// Format is one of "text", "json" or "yaml"
	Format string `mapstructure:"format" toml:"format"`

	// Header enables header line in text format
	Header bool `mapstructure:"header" toml:"header"`
}

// KafkaConfiguration represents configuration of Kafka broker used to
// publish truth table reports
type KafkaConfiguration struct {
	Enabled          bool          `mapstructure:"enabled"           toml:"enabled"`
	Addresses        string        `mapstructure:"addresses"         toml:"addresses"`
	SecurityProtocol string        `mapstructure:"security_protocol" toml:"security_protocol"`
	CertPath         string        `mapstructure:"cert_path"         toml:"cert_path"`
	SaslMechanism    string        `mapstructure:"sasl_mechanism"    toml:"sasl_mechanism"`
	SaslUsername     string        `mapstructure:"sasl_username"     toml:"sasl_username"`
	SaslPassword     string        `mapstructure:"sasl_password"     toml:"sasl_password"`
	Topic            string        `mapstructure:"topic"             toml:"topic"`
	Timeout          time.Duration `mapstructure:"timeout"           toml:"timeout"`
}

// MetricsConfiguration holds metrics related configuration
type MetricsConfiguration struct {
	Job              string        `mapstructure:"job_name"           toml:"job_name"`
	Namespace        string        `mapstructure:"namespace"          toml:"namespace"`
	GatewayURL       string        `mapstructure:"gateway_url"        toml:"gateway_url"`
	GatewayAuthToken string        `mapstructure:"gateway_auth_token" toml:"gateway_auth_token"`
	Retries          int           `mapstructure:"retries"            toml:"retries"`
	RetryAfter       time.Duration `mapstructure:"retry_after"        toml:"retry_after"`
}

// LoadConfiguration loads configuration from defaultConfigFile, file set in
// configFileEnvVariableName or from env
func LoadConfiguration(configFileEnvVariableName, defaultConfigFile string) (ConfigStruct, error) {
	var config ConfigStruct

	err := loadDotEnv(EnvFileEnvVariableName, defaultEnvFileName)
	if err != nil {
		return config, err
	}

	v := viper.New()

	// env. variable holding name of configuration file
	configFile, specified := os.LookupEnv(configFileEnvVariableName)
	if specified {
		// we need to separate the directory name and filename without
		// extension
		directory, basename := filepath.Split(configFile)
		file := strings.TrimSuffix(basename, filepath.Ext(basename))
		// parse the configuration
		v.SetConfigName(file)
		v.AddConfigPath(directory)
	} else {
		log.Debug().Str("filename", defaultConfigFile).Msg("Parsing configuration file")
		// parse the configuration
		v.SetConfigName(defaultConfigFile)
		v.AddConfigPath(".")
	}

	// try to read the whole configuration
	err = v.ReadInConfig()
	if _, isNotFoundError := err.(viper.ConfigFileNotFoundError); !specified && isNotFoundError {
		// If config file is not present (which is the usual case for
		// command line tool) we need to read configuration from
		// environment variables. Viper is not able to understand the
		// structure of config by itself, so we need to read fake config
		// file
		fakeTomlConfigWriter := new(bytes.Buffer)

		err := toml.NewEncoder(fakeTomlConfigWriter).Encode(config)
		if err != nil {
			return config, err
		}

		v.SetConfigType("toml")

		err = v.ReadConfig(strings.NewReader(fakeTomlConfigWriter.String()))
		if err != nil {
			return config, err
		}
	} else if err != nil {
		// error is processed on caller side
		return config, fmt.Errorf("fatal error config file: %s", err)
	}

	// override config from env if there's variable in env
	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "__"))

	err = v.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if clowder.IsClowderEnabled() {
		updateConfigFromClowder(&config)
	}

	applyDefaults(&config)

	// everything's should be ok
	return config, nil
}

// loadDotEnv loads environment variables from dotenv file. File named by
// envFileVariableName has to exist, default file is optional. Variables
// already present in environment are not overwritten.
func loadDotEnv(envFileVariableName, defaultPath string) error {
	envPath, specified := os.LookupEnv(envFileVariableName)
	if !specified {
		envPath = defaultPath
	}

	err := godotenv.Load(envPath)
	if err == nil {
		log.Debug().Str("filename", envPath).Msg("Environment variables loaded from dotenv file")
		return nil
	}
	if !specified && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("unable to load dotenv file %s: %w", envPath, err)
}

// updateConfigFromClowder replaces Kafka broker addresses, credentials and
// topic name by values provided by Clowder
func updateConfigFromClowder(config *ConfigStruct) {
	// can not use Zerolog at this moment!
	fmt.Fprintln(os.Stderr, "Clowder is enabled")

	if clowder.LoadedConfig == nil || clowder.LoadedConfig.Kafka == nil || len(clowder.LoadedConfig.Kafka.Brokers) == 0 {
		fmt.Fprintln(os.Stderr, "No Kafka configuration available in Clowder, using default one")
		return
	}

	addresses := make([]string, 0, len(clowder.LoadedConfig.Kafka.Brokers))
	for _, broker := range clowder.LoadedConfig.Kafka.Brokers {
		// port can be empty in clowder, so taking it into account
		if broker.Port != nil {
			addresses = append(addresses, fmt.Sprintf("%s:%d", broker.Hostname, *broker.Port))
		} else {
			addresses = append(addresses, broker.Hostname)
		}
	}
	config.Kafka.Addresses = strings.Join(addresses, ",")

	broker := clowder.LoadedConfig.Kafka.Brokers[0]
	if broker.Sasl != nil {
		if broker.Sasl.Username != nil {
			config.Kafka.SaslUsername = *broker.Sasl.Username
		}
		if broker.Sasl.Password != nil {
			config.Kafka.SaslPassword = *broker.Sasl.Password
		}
		if broker.Sasl.SaslMechanism != nil {
			config.Kafka.SaslMechanism = *broker.Sasl.SaslMechanism
		}
	}
	if broker.SecurityProtocol != nil {
		config.Kafka.SecurityProtocol = *broker.SecurityProtocol
	}

	if topic, found := clowder.KafkaTopics[config.Kafka.Topic]; found {
		config.Kafka.Topic = topic.Name
	}
}

// applyDefaults fills options that were not configured
func applyDefaults(config *ConfigStruct) {
	if config.Limits.MaxTokens <= 0 {
		config.Limits.MaxTokens = DefaultMaxTokens
	}
	if config.Limits.MaxVariables <= 0 {
		config.Limits.MaxVariables = DefaultMaxVariables
	}
	if config.Output.Format == "" {
		config.Output.Format = DefaultOutputFormat
	}
	if config.Logging.LogLevel == "" {
		config.Logging.LogLevel = DefaultLogLevel
	}
	if config.Metrics.Job == "" {
		config.Metrics.Job = DefaultMetricsJob
	}
}

// GetLoggingConfiguration returns logging configuration
func GetLoggingConfiguration(config *ConfigStruct) LoggingConfiguration {
	return config.Logging
}

// GetLimitsConfiguration returns limits configuration
func GetLimitsConfiguration(config *ConfigStruct) LimitsConfiguration {
	return config.Limits
}

// GetOutputConfiguration returns output configuration
func GetOutputConfiguration(config *ConfigStruct) OutputConfiguration {
	return config.Output
}

// GetKafkaBrokerConfiguration returns kafka broker configuration
func GetKafkaBrokerConfiguration(config *ConfigStruct) KafkaConfiguration {
	return config.Kafka
}

// GetMetricsConfiguration returns metrics configuration
func GetMetricsConfiguration(config *ConfigStruct) MetricsConfiguration {
	return config.Metrics
}
