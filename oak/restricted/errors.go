// Copyright 2024 The Oak Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package restricted

import (
	"fmt"

	"oaklang.org/go/oak/ast"
	"oaklang.org/go/oak/token"
)

// An InvalidError reports that an expression uses a feature that is not
// allowed in restricted expressions. The diagnostic position is that of the
// offending subexpression, which may be a proper subtree of the input.
type InvalidError struct {
	// Feature describes the disallowed feature, such as "variables" or
	// the operator's symbol.
	Feature string

	// X is the (sub-)expression that uses the disallowed feature.
	X ast.Expr
}

func (e *InvalidError) Position() token.Pos { return e.X.Pos() }

func (e *InvalidError) Msg() (string, []any) {
	return "not allowed to use %s in a restricted expression: `%s`",
		[]any{e.Feature, ast.Format(e.X)}
}

func (e *InvalidError) Error() string {
	format, args := e.Msg()
	return fmt.Sprintf(format, args...)
}

// A DuplicateKeyError reports that a record contains the same key twice,
// independent of whether the associated values are equal.
type DuplicateKeyError struct {
	// Key is the repeated key.
	Key string

	// Context describes what kind of construction the duplicate appeared
	// in, such as "in record literal".
	Context string

	pos token.Pos
}

func (e *DuplicateKeyError) Position() token.Pos { return e.pos }

func (e *DuplicateKeyError) Msg() (string, []any) {
	return "duplicate key `%s` %s", []any{e.Key, e.Context}
}

func (e *DuplicateKeyError) Error() string {
	format, args := e.Msg()
	return fmt.Sprintf(format, args...)
}

// A NontrivialResidualError reports that a residual of partial evaluation
// cannot be expressed as a restricted expression because it still contains
// unresolved operators, conditionals, or variable references.
type NontrivialResidualError struct {
	// Residual is the residual expression that failed the invariant.
	Residual ast.Expr

	// Reason is the invariant violation found inside the residual.
	Reason *InvalidError
}

func (e *NontrivialResidualError) Position() token.Pos { return e.Residual.Pos() }

func (e *NontrivialResidualError) Msg() (string, []any) {
	return "residual `%s` is not a restricted expression", []any{ast.Format(e.Residual)}
}

func (e *NontrivialResidualError) Error() string {
	format, args := e.Msg()
	return fmt.Sprintf(format, args...)
}

func (e *NontrivialResidualError) Unwrap() error {
	if e.Reason == nil {
		return nil
	}
	return e.Reason
}
