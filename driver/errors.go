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

package driver

import "fmt"

// ConfigurationError represents invalid configuration detected when the
// expression is processed
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// KafkaBrokerError represent an error related to Kafka initialization
type KafkaBrokerError struct {
	Err error
}

func (e *KafkaBrokerError) Error() string {
	return fmt.Sprintf("unable to connect to Kafka broker: %v", e.Err)
}

func (e *KafkaBrokerError) Unwrap() error {
	return e.Err
}

// KafkaProducerError represents an error when report can not be published
type KafkaProducerError struct {
	Err error
}

func (e *KafkaProducerError) Error() string {
	return fmt.Sprintf("unable to publish report: %v", e.Err)
}

func (e *KafkaProducerError) Unwrap() error {
	return e.Err
}

// MetricsError is returned when metrics can not be pushed to gateway
type MetricsError struct {
	Err error
}

func (e *MetricsError) Error() string {
	return fmt.Sprintf("unable to push metrics: %v", e.Err)
}

func (e *MetricsError) Unwrap() error {
	return e.Err
}
