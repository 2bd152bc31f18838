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

package token

import (
	"github.com/RedHatInsights/booltab/types"
)

// Tokenize converts the expression into infix token sequence terminated by
// Terminator. Tokenization stops on the first unexpected character. When
// capacity is not positive, DefaultCapacity is used.
func Tokenize(expression string, capacity int) (Sequence, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	infix := NewSequence(capacity)

	for pos, c := range expression {
		var t Token
		switch c {
		case ' ':
			continue
		case '(':
			t = Token{Kind: LeftParen}
		case ')':
			t = Token{Kind: RightParen}
		case '|':
			t = Token{Kind: Or}
		case '&':
			t = Token{Kind: And}
		case '~':
			t = Token{Kind: Not}
		default:
			if c > 0x7f || !IsVariable(byte(c)) {
				return nil, &types.UnexpectedTokenError{Token: c, Position: pos}
			}
			t = Token{Kind: Var, Name: byte(c)}
		}
		t.Position = pos
		if err := infix.Push(t); err != nil {
			return nil, err
		}
	}

	if err := infix.Push(Token{Kind: Terminator, Position: len(expression)}); err != nil {
		return nil, err
	}
	return infix, nil
}
