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
	"oaklang.org/go/oak/ast"
	"oaklang.org/go/oak/value"
)

// Programmatic constructors. Aggregates are assembled from already
// validated children, so none of these re-run the invariant check: every
// substructure of a valid restricted expression is itself valid, and a
// literal, unknown, set, record, or call node over valid children is valid
// by definition. Only record construction can fail, on a repeated key.

// Bool returns the restricted expression for a boolean literal.
func Bool(b bool) Expression {
	return Expression{expr: ast.NewBool(b)}
}

// Long returns the restricted expression for an integer literal.
func Long(v int64) Expression {
	return Expression{expr: ast.NewLong(v)}
}

// String returns the restricted expression for a string literal.
func String(s string) Expression {
	return Expression{expr: ast.NewString(s)}
}

// EntityUID returns the restricted expression for an entity reference
// literal.
func EntityUID(uid value.EntityUID) Expression {
	return Expression{expr: ast.NewEntityRef(uid.Type, uid.ID)}
}

// Unknown returns the restricted expression for an unknown placeholder.
func Unknown(name string) Expression {
	return Expression{expr: ast.NewUnknown(name)}
}

// Set assembles a set from restricted elements, preserving their order.
func Set(elems ...Expression) Expression {
	elts := make([]ast.Expr, len(elems))
	for i, e := range elems {
		elts[i] = e.expr
	}
	return Expression{expr: ast.NewSet(elts...)}
}

// An Entry is a key/value pair for [Record].
type Entry struct {
	Key   string
	Value Expression
}

// Record assembles a record from restricted entries, preserving their
// order. It fails with a [*DuplicateKeyError] the moment any key repeats,
// independent of whether the associated values are equal.
func Record(entries ...Entry) (Expression, error) {
	fields := make([]*ast.Field, len(entries))
	for i, e := range entries {
		fields[i] = ast.NewField(e.Key, e.Value.expr)
	}
	rec := ast.NewRecord(fields...)
	if err := checkKeys(rec); err != nil {
		return Expression{}, err
	}
	return Expression{expr: rec}, nil
}

// Call assembles an extension function call from restricted arguments,
// preserving their order.
func Call(fun string, args ...Expression) Expression {
	exprs := make([]ast.Expr, len(args))
	for i, a := range args {
		exprs[i] = a.expr
	}
	return Expression{expr: ast.NewCall(fun, exprs...)}
}
