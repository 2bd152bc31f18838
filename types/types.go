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

// Package types contains data types shared by all booltab packages.
package types

import (
	"strings"
)

// CliFlags represents structure holding all command line arguments and flags.
type CliFlags struct {
	ShowVersion       bool
	ShowAuthors       bool
	ShowConfiguration bool
	Verbose           bool
	OutputFormat      string
}

// VariableNames is an ordered list of distinct variable names, the k-th name
// owns the k-th bit of an assignment.
type VariableNames []byte

// String returns the variable names separated by single spaces.
func (names VariableNames) String() string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = string(name)
	}
	return strings.Join(parts, " ")
}

// Row represents one truth table row.
type Row struct {
	Assignment uint64 `json:"assignment" yaml:"assignment"`
	Values     []bool `json:"values"     yaml:"values"`
	Result     bool   `json:"result"     yaml:"result"`
}

// ReportMessage represents the whole truth table of one expression. It is
// the document produced by the JSON and YAML renderers and the payload sent
// to Kafka.
type ReportMessage struct {
	ID         string   `json:"id"         yaml:"id"`
	Expression string   `json:"expression" yaml:"expression"`
	Variables  []string `json:"variables"  yaml:"variables"`
	Rows       []Row    `json:"rows"       yaml:"rows"`
	Timestamp  string   `json:"timestamp"  yaml:"timestamp"`
}

// ProducerMessage is a message already serialized to be sent by producer.
type ProducerMessage []byte
