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

// Package token contains definition of expression tokens and the tokenizer
// that converts raw expression into infix token sequence.
package token

import (
	"strings"

	"github.com/RedHatInsights/booltab/types"
)

// Kind is a discriminant of token
type Kind int

// Token kinds. Order matches the priority table used by parser.
const (
	Terminator Kind = iota
	Var
	LeftParen
	RightParen
	Or
	And
	Not
)

// DefaultCapacity is the maximum number of tokens (terminator included) in
// one sequence
const DefaultCapacity = 1 << 10

// Alphabet boundaries
const (
	FirstVariable = 'a'
	LastVariable  = 'z'
	AlphabetSize  = LastVariable - FirstVariable + 1
)

func (k Kind) String() string {
	switch k {
	case Terminator:
		return "TERM"
	case Var:
		return "VAR"
	case LeftParen:
		return "("
	case RightParen:
		return ")"
	case Or:
		return "|"
	case And:
		return "&"
	case Not:
		return "~"
	default:
		return "UNKNOWN"
	}
}

// IsOperator returns true for NOT, AND and OR
func (k Kind) IsOperator() bool {
	return k == Or || k == And || k == Not
}

// Token represents one lexical token. Name is set for Var tokens only.
type Token struct {
	Kind     Kind
	Name     byte
	Position int
}

// String returns the source form of token
func (t Token) String() string {
	if t.Kind == Var {
		return string(t.Name)
	}
	return t.Kind.String()
}

// IsVariable checks if the character is valid variable name
func IsVariable(c byte) bool {
	return FirstVariable <= c && c <= LastVariable
}

// Sequence is an ordered list of tokens terminated by Terminator
type Sequence []Token

// NewSequence allocates an empty sequence able to hold capacity tokens
func NewSequence(capacity int) Sequence {
	return make(Sequence, 0, capacity)
}

// Push appends the token, capacity is checked before the write
func (s *Sequence) Push(t Token) error {
	if len(*s) == cap(*s) {
		return &types.StackOverflowError{Capacity: cap(*s)}
	}
	*s = append(*s, t)
	return nil
}

// String returns tokens separated by spaces, terminator is omitted
func (s Sequence) String() string {
	parts := make([]string, 0, len(s))
	for _, t := range s {
		if t.Kind == Terminator {
			break
		}
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " ")
}
