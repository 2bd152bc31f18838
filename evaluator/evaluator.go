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

// Package evaluator contains a stack machine that executes postfix token
// sequence for one assignment of variables.
package evaluator

import (
	"github.com/RedHatInsights/booltab/token"
	"github.com/RedHatInsights/booltab/types"
)

// value is one item on evaluation stack. Non-zero name marks value that
// still has to be read from variable table.
type value struct {
	result bool
	name   byte
}

// Machine evaluates postfix sequences. Its stack buffer is reused between
// calls, so one Machine must not be shared by several goroutines.
type Machine struct {
	// Capacity is the maximum stack depth, token.DefaultCapacity when not
	// positive
	Capacity int

	stack []value
}

// NewMachine constructs machine with the given stack capacity
func NewMachine(capacity int) *Machine {
	if capacity <= 0 {
		capacity = token.DefaultCapacity
	}
	return &Machine{
		Capacity: capacity,
		stack:    make([]value, 0, capacity),
	}
}

// Evaluate executes postfix sequence with a fresh machine
func Evaluate(postfix token.Sequence, vars VariableTable) (bool, error) {
	return NewMachine(0).Evaluate(postfix, vars)
}

// Evaluate executes postfix sequence and returns the only value left on
// stack. Neither the sequence nor the table is modified.
func (m *Machine) Evaluate(postfix token.Sequence, vars VariableTable) (bool, error) {
	if m.Capacity <= 0 {
		m.Capacity = token.DefaultCapacity
	}
	m.stack = m.stack[:0]

	for _, t := range postfix {
		switch t.Kind {
		case token.Var:
			if err := m.push(value{name: t.Name}); err != nil {
				return false, err
			}
		case token.Not, token.And, token.Or:
			if err := m.execute(t.Kind, vars); err != nil {
				return false, err
			}
		case token.Terminator:
			return m.result(vars)
		}
	}

	return m.result(vars)
}

// execute pops operands of operator, applies it and pushes untagged result
func (m *Machine) execute(operator token.Kind, vars VariableTable) error {
	a, err := m.pop(operator, vars)
	if err != nil {
		return err
	}
	if operator == token.Not {
		return m.push(value{result: !a})
	}

	// second popped operand is the left one
	b, err := m.pop(operator, vars)
	if err != nil {
		return err
	}
	return m.push(value{result: apply(operator, b, a)})
}

// apply computes binary operator
func apply(operator token.Kind, left, right bool) bool {
	switch operator {
	case token.And:
		return left && right
	case token.Or:
		return left || right
	default:
		panic("not a binary operator: " + operator.String())
	}
}

func (m *Machine) push(v value) error {
	if len(m.stack) >= m.Capacity {
		return &types.StackOverflowError{Capacity: m.Capacity}
	}
	m.stack = append(m.stack, v)
	return nil
}

// pop removes value from stack top and resolves it against variable table
func (m *Machine) pop(operator token.Kind, vars VariableTable) (bool, error) {
	if len(m.stack) == 0 {
		return false, &types.MissingArgumentError{Operator: operator.String()}
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return resolve(v, vars)
}

// result checks that exactly one value is left on stack
func (m *Machine) result(vars VariableTable) (bool, error) {
	if len(m.stack) != 1 {
		return false, &types.StackCorruptedError{Depth: len(m.stack)}
	}
	return resolve(m.stack[0], vars)
}

func resolve(v value, vars VariableTable) (bool, error) {
	if v.name == 0 {
		return v.result, nil
	}
	return vars.Value(v.name)
}
