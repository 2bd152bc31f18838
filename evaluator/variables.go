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

package evaluator

import (
	"github.com/RedHatInsights/booltab/token"
	"github.com/RedHatInsights/booltab/types"
)

// VariableTable binds every variable to one bit of an assignment mask. Bit k
// holds the value of the k-th variable of the order the table was created
// with.
type VariableTable struct {
	// one based bit index per letter, zero means unbound
	bits [token.AlphabetSize]uint8
	mask uint64
}

// NewVariableTable constructs table for given variable order with all
// variables set to false
func NewVariableTable(order types.VariableNames) VariableTable {
	var table VariableTable
	for k, name := range order {
		if !token.IsVariable(name) {
			continue
		}
		table.bits[name-token.FirstVariable] = uint8(k + 1)
	}
	return table
}

// WithMask returns copy of the table holding the given assignment
func (table VariableTable) WithMask(mask uint64) VariableTable {
	table.mask = mask
	return table
}

// Mask returns the assignment held by the table
func (table VariableTable) Mask() uint64 {
	return table.mask
}

// Value reads the bit of the named variable
func (table VariableTable) Value(name byte) (bool, error) {
	if !token.IsVariable(name) || table.bits[name-token.FirstVariable] == 0 {
		return false, &types.UnboundVariableError{Name: name}
	}
	k := table.bits[name-token.FirstVariable] - 1
	return (table.mask>>k)&1 == 1, nil
}
