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

// Package kafka contains an implementation of Producer interface that can be
// used to publish truth table reports to properly configured Kafka broker.
package kafka

import (
	"crypto/sha512"
	"encoding/json"
	"strings"

	tlsutils "github.com/RedHatInsights/insights-operator-utils/tls"
	"github.com/Shopify/sarama"
	"github.com/rs/zerolog/log"

	"github.com/RedHatInsights/booltab/conf"
	"github.com/RedHatInsights/booltab/types"
)

// attributes of log messages
const (
	topicAttribute  = "topic"
	reportAttribute = "report"
)

// Producer is an implementation of Producer interface
type Producer struct {
	Configuration conf.KafkaConfiguration
	Producer      sarama.SyncProducer
}

// New constructs new implementation of Producer interface
func New(config *conf.ConfigStruct) (*Producer, error) {
	kafkaConfig := conf.GetKafkaBrokerConfiguration(config)

	saramaConfig, err := SaramaConfigFromBrokerConfig(&kafkaConfig)
	if err != nil {
		log.Error().Err(err).Msg("Unable to create a valid Kafka configuration")
		return nil, err
	}

	producer, err := sarama.NewSyncProducer(strings.Split(kafkaConfig.Addresses, ","), saramaConfig)
	if err != nil {
		log.Error().Str("Kafka address", kafkaConfig.Addresses).Err(err).Msg("unable to start a Kafka producer")
		return nil, err
	}

	return &Producer{
		Configuration: kafkaConfig,
		Producer:      producer,
	}, nil
}

// reportID returns ID of the serialized report or empty string when message
// is not a report
func reportID(msg types.ProducerMessage) string {
	var header struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(msg, &header); err != nil {
		return ""
	}
	return header.ID
}

// ProduceMessage publishes report to configured topic. Report ID is used as
// message key so all copies of one report end in the same partition.
// Partition ID and offset of the new message are returned.
func (producer *Producer) ProduceMessage(msg types.ProducerMessage) (partitionID int32, offset int64, err error) {
	if !producer.Configuration.Enabled {
		return
	}

	id := reportID(msg)
	producerMsg := &sarama.ProducerMessage{
		Topic: producer.Configuration.Topic,
		Value: sarama.ByteEncoder(msg),
	}
	if id != "" {
		producerMsg.Key = sarama.StringEncoder(id)
	}

	partitionID, offset, err = producer.Producer.SendMessage(producerMsg)
	if err != nil {
		log.Error().Err(err).Str(topicAttribute, producerMsg.Topic).Str(reportAttribute, id).Msg("report not published")
		return
	}
	log.Info().
		Str(topicAttribute, producerMsg.Topic).
		Str(reportAttribute, id).
		Int32("partition", partitionID).
		Int64("offset", offset).
		Msg("report published")
	return
}

// Close allow the Sarama producer to be gracefully closed
func (producer *Producer) Close() error {
	log.Info().Msg("Shutting down kafka producer")
	if err := producer.Producer.Close(); err != nil {
		log.Error().Err(err).Msg("unable to close Kafka producer")
		return err
	}

	return nil
}

// SaramaConfigFromBrokerConfig returns Sarama configuration for the given
// broker configuration
func SaramaConfigFromBrokerConfig(cfg *conf.KafkaConfiguration) (*sarama.Config, error) {
	saramaConfig := sarama.NewConfig()

	if cfg.Timeout > 0 {
		saramaConfig.Net.DialTimeout = cfg.Timeout
		saramaConfig.Net.ReadTimeout = cfg.Timeout
		saramaConfig.Net.WriteTimeout = cfg.Timeout
		saramaConfig.Producer.Timeout = cfg.Timeout
	}

	if strings.Contains(cfg.SecurityProtocol, "SSL") {
		saramaConfig.Net.TLS.Enable = true
	}
	if strings.EqualFold(cfg.SecurityProtocol, "SSL") && cfg.CertPath != "" {
		tlsConfig, err := tlsutils.NewTLSConfig(cfg.CertPath)
		if err != nil {
			log.Error().Msgf("Unable to load TLS config for %s cert", cfg.CertPath)
			return nil, err
		}
		saramaConfig.Net.TLS.Config = tlsConfig
	} else if strings.HasPrefix(cfg.SecurityProtocol, "SASL_") {
		log.Info().Msg("Configuring SASL authentication")
		saramaConfig.Net.SASL.Enable = true
		saramaConfig.Net.SASL.User = cfg.SaslUsername
		saramaConfig.Net.SASL.Password = cfg.SaslPassword
		saramaConfig.Net.SASL.Mechanism = sarama.SASLMechanism(cfg.SaslMechanism)

		if strings.EqualFold(cfg.SaslMechanism, sarama.SASLTypeSCRAMSHA512) {
			log.Info().Msg("Configuring SCRAM-SHA512")
			saramaConfig.Net.SASL.Handshake = true
			saramaConfig.Net.SASL.SCRAMClientGeneratorFunc = func() sarama.SCRAMClient {
				return &SCRAMClient{HashGeneratorFcn: sha512.New}
			}
		}
	}

	saramaConfig.Producer.Return.Successes = true
	return saramaConfig, nil
}
