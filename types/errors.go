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

package types

import "fmt"

// MissingExpressionError occurs when no expression is passed on command line
type MissingExpressionError struct{}

func (e *MissingExpressionError) Error() string {
	return "missing expression"
}

// UnexpectedArgumentError occurs when more than one positional argument is
// passed on command line
type UnexpectedArgumentError struct {
	Argument string
}

func (e *UnexpectedArgumentError) Error() string {
	return "unexpected argument " + e.Argument
}

// UnexpectedTokenError is returned by tokenizer for any character that is not
// part of the expression alphabet
type UnexpectedTokenError struct {
	Token    rune
	Position int
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token '%c' at position %d", e.Token, e.Position)
}

// UnmatchedBracketError is returned by parser for unbalanced parentheses
type UnmatchedBracketError struct {
	Position int
}

func (e *UnmatchedBracketError) Error() string {
	return "unmatched bracket detected"
}

// StackOverflowError occurs when expression does not fit into fixed capacity
// buffers
type StackOverflowError struct {
	Capacity int
}

func (e *StackOverflowError) Error() string {
	return "expression is too big, exceeded maximum stack size"
}

// MissingArgumentError occurs when operator is applied with too few operands
type MissingArgumentError struct {
	Operator string
}

func (e *MissingArgumentError) Error() string {
	return "missing operand for operator " + e.Operator
}

// StackCorruptedError occurs when postfix program leaves other than exactly
// one value on the stack
type StackCorruptedError struct {
	Depth int
}

func (e *StackCorruptedError) Error() string {
	return "expression is invalid, stack corrupted"
}

// UnboundVariableError occurs when evaluator meets variable that has no bit
// assigned in variable table
type UnboundVariableError struct {
	Name byte
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("variable '%c' is not bound", e.Name)
}

// TooManyVariablesError occurs when expression uses more distinct variables
// than allowed
type TooManyVariablesError struct {
	Count int
	Limit int
}

func (e *TooManyVariablesError) Error() string {
	return fmt.Sprintf("too many variables: %d, at most %d allowed", e.Count, e.Limit)
}

// NonSequentialVariablesError occurs in strict mode when variable names are
// not sequential letters starting from 'a'
type NonSequentialVariablesError struct {
	Missing byte
}

func (e *NonSequentialVariablesError) Error() string {
	return fmt.Sprintf("variables are not sequential, '%c' is missing", e.Missing)
}
