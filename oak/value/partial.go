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

package value

import "oaklang.org/go/oak/ast"

// A Partial is the result of partial evaluation: either a fully evaluated
// [Value], or a residual expression that evaluation could not fully reduce
// because it contains unknowns.
//
// The zero Partial is a residual over a nil expression and is not valid.
type Partial struct {
	v        Value
	residual ast.Expr
}

// Complete returns a Partial holding a fully evaluated value.
func Complete(v Value) Partial {
	return Partial{v: v}
}

// Residual returns a Partial holding an expression that could not be fully
// reduced.
func Residual(e ast.Expr) Partial {
	return Partial{residual: e}
}

// IsComplete reports whether p holds a fully evaluated value.
func (p Partial) IsComplete() bool { return p.v != nil }

// Value returns the fully evaluated value, if p holds one.
func (p Partial) Value() (Value, bool) {
	return p.v, p.v != nil
}

// Expr returns the residual expression, if p holds one.
func (p Partial) Expr() (ast.Expr, bool) {
	return p.residual, p.residual != nil
}

func (p Partial) String() string {
	if p.v != nil {
		return p.v.String()
	}
	if p.residual != nil {
		return ast.Format(p.residual)
	}
	return "<invalid partial>"
}
