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

// Package parser contains implementation of shunting-yard algorithm that
// transforms infix token sequence into postfix (RPN) token sequence.
package parser

import (
	"github.com/RedHatInsights/booltab/token"
	"github.com/RedHatInsights/booltab/types"
)

// priorities of all token kinds, indexed by token.Kind
var priorities = [...]int{
	token.Terminator: 0,
	token.Var:        0,
	token.LeftParen:  0,
	token.RightParen: 0,
	token.Or:         1,
	token.And:        2,
	token.Not:        3,
}

// Priority returns operator precedence of token kind
func Priority(kind token.Kind) int {
	if kind < 0 || int(kind) >= len(priorities) {
		return 0
	}
	return priorities[kind]
}

// rightAssociative returns true for prefix unary operators
func rightAssociative(kind token.Kind) bool {
	return kind == token.Not
}

// shouldPop decides whether operator on top of stack goes to output before
// the incoming operator is pushed
func shouldPop(top, incoming token.Kind) bool {
	if !top.IsOperator() {
		return false
	}
	if Priority(top) > Priority(incoming) {
		return true
	}
	return Priority(top) == Priority(incoming) && !rightAssociative(incoming)
}

// ToPostfix converts infix sequence into postfix sequence terminated by
// Terminator. Input that lacks the terminator is closed as if it had one.
// Both the operator stack and the output are limited by capacity; when
// capacity is not positive, token.DefaultCapacity is used.
func ToPostfix(infix token.Sequence, capacity int) (token.Sequence, error) {
	if capacity <= 0 {
		capacity = token.DefaultCapacity
	}
	postfix := token.NewSequence(capacity)
	operators := token.NewSequence(capacity)

	for _, t := range infix {
		switch t.Kind {
		case token.Var:
			if err := postfix.Push(t); err != nil {
				return nil, err
			}
		case token.LeftParen:
			if err := operators.Push(t); err != nil {
				return nil, err
			}
		case token.RightParen:
			if err := popUntilLeftParen(&operators, &postfix, t); err != nil {
				return nil, err
			}
		case token.Not, token.And, token.Or:
			for len(operators) > 0 && shouldPop(operators[len(operators)-1].Kind, t.Kind) {
				if err := postfix.Push(pop(&operators)); err != nil {
					return nil, err
				}
			}
			if err := operators.Push(t); err != nil {
				return nil, err
			}
		case token.Terminator:
			return flush(&operators, postfix, t)
		}
	}

	// sequence without terminator is closed the same way
	return flush(&operators, postfix, token.Token{Kind: token.Terminator})
}

// flush moves all remaining operators to output and terminates it
func flush(operators *token.Sequence, postfix token.Sequence, terminator token.Token) (token.Sequence, error) {
	for len(*operators) > 0 {
		top := pop(operators)
		if top.Kind == token.LeftParen {
			return nil, &types.UnmatchedBracketError{Position: top.Position}
		}
		if err := postfix.Push(top); err != nil {
			return nil, err
		}
	}
	if err := postfix.Push(terminator); err != nil {
		return nil, err
	}
	return postfix, nil
}

// popUntilLeftParen moves operators to output until the matching left
// parenthesis is found and discarded
func popUntilLeftParen(operators, postfix *token.Sequence, closing token.Token) error {
	for len(*operators) > 0 {
		top := pop(operators)
		if top.Kind == token.LeftParen {
			return nil
		}
		if err := postfix.Push(top); err != nil {
			return err
		}
	}
	return &types.UnmatchedBracketError{Position: closing.Position}
}

func pop(stack *token.Sequence) token.Token {
	last := len(*stack) - 1
	t := (*stack)[last]
	*stack = (*stack)[:last]
	return t
}
