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

// Package table contains the enumerator that evaluates expression for all
// assignments of its variables and renderers for the resulting truth table.
package table

import (
	"github.com/RedHatInsights/booltab/evaluator"
	"github.com/RedHatInsights/booltab/token"
	"github.com/RedHatInsights/booltab/types"
)

// MaxVariables is the number of letters that can be used as variable names
const MaxVariables = token.AlphabetSize

// Options controls limits applied during enumeration
type Options struct {
	// MaxVariables is the maximum number of distinct variables, capped and
	// defaulted to the alphabet size
	MaxVariables int

	// StrictSequential requires variables to be exactly a, b, c... without
	// gaps
	StrictSequential bool

	// Capacity is the evaluation stack capacity
	Capacity int
}

// RowHandler is called for every computed row, in enumeration order
type RowHandler func(row types.Row) error

// DiscoverVariables scans the infix sequence and returns distinct variable
// names in order of their first appearance
func DiscoverVariables(infix token.Sequence) types.VariableNames {
	var seen [token.AlphabetSize]bool
	names := make(types.VariableNames, 0, token.AlphabetSize)

	for _, t := range infix {
		if t.Kind == token.Terminator {
			break
		}
		if t.Kind != token.Var || !token.IsVariable(t.Name) {
			continue
		}
		if !seen[t.Name-token.FirstVariable] {
			seen[t.Name-token.FirstVariable] = true
			names = append(names, t.Name)
		}
	}
	return names
}

// CheckVariables validates discovered variables against options
func CheckVariables(names types.VariableNames, options Options) error {
	limit := options.MaxVariables
	if limit <= 0 || limit > MaxVariables {
		limit = MaxVariables
	}
	if len(names) > limit {
		return &types.TooManyVariablesError{Count: len(names), Limit: limit}
	}

	if options.StrictSequential {
		var used [token.AlphabetSize]bool
		for _, name := range names {
			used[name-token.FirstVariable] = true
		}
		for k := 0; k < len(names); k++ {
			if !used[k] {
				return &types.NonSequentialVariablesError{Missing: byte(token.FirstVariable + k)}
			}
		}
	}
	return nil
}

// Enumerate evaluates postfix sequence for all 2^N assignments of the N
// variables found in infix sequence, in ascending order of assignment. Bit
// k of assignment belongs to the k-th discovered variable. The first error,
// either from evaluator or from handler, stops the enumeration.
func Enumerate(infix, postfix token.Sequence, options Options, handler RowHandler) (types.VariableNames, error) {
	names := DiscoverVariables(infix)
	if err := CheckVariables(names, options); err != nil {
		return names, err
	}

	vars := evaluator.NewVariableTable(names)
	machine := evaluator.NewMachine(options.Capacity)
	rows := uint64(1) << uint(len(names))

	for assignment := uint64(0); assignment < rows; assignment++ {
		result, err := machine.Evaluate(postfix, vars.WithMask(assignment))
		if err != nil {
			return names, err
		}

		row := types.Row{
			Assignment: assignment,
			Values:     make([]bool, len(names)),
			Result:     result,
		}
		for k := range names {
			row.Values[k] = (assignment>>uint(k))&1 == 1
		}

		if err := handler(row); err != nil {
			return names, err
		}
	}

	return names, nil
}
