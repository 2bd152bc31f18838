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

package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RedHatInsights/booltab/utils"
)

func TestSetHTTPPrefix(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{"no prefix", "localhost:9091", "http://localhost:9091"},
		{"http prefix", "http://localhost:9091", "http://localhost:9091"},
		{"https prefix", "https://gateway.example.com", "https://gateway.example.com"},
		{"empty", "", "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, utils.SetHTTPPrefix(tt.url))
		})
	}
}

func TestBoolToBit(t *testing.T) {
	assert.Equal(t, "1", utils.BoolToBit(true))
	assert.Equal(t, "0", utils.BoolToBit(false))
}
