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

// Package restricted implements restricted expressions: the subset of the
// general policy expression grammar limited to literals, unknown markers,
// extension function calls, and set/record aggregates thereof. This subset
// is exactly expressive enough to represent any fully evaluated value, and
// excludes everything whose meaning depends on ambient context: variables,
// template slots, operators, conditionals, attribute accesses, and
// membership tests.
//
// The invariant is closed under substructure: every child of a valid
// restricted expression is itself a valid restricted expression. Internal
// code relies on this to assemble new restricted expressions from
// already-validated parts without re-validation.
//
// [Expression] owns its tree; [View] is a non-owning alias over a tree
// owned elsewhere. Both expose the same read-only surface. All instances
// are immutable and safe for concurrent use.
package restricted

import (
	"iter"

	"oaklang.org/go/internal/oakdebug"
	"oaklang.org/go/oak/ast"
	"oaklang.org/go/oak/ext"
	"oaklang.org/go/oak/parser"
	"oaklang.org/go/oak/types"
	"oaklang.org/go/oak/value"
)

// check decides restricted-subset membership for e, depth first. It
// returns the first violation found anywhere in the tree, or nil. Record
// key uniqueness is enforced separately by checkKeys, not here.
func check(e ast.Expr) *InvalidError {
	switch x := e.(type) {
	case *ast.BoolLit, *ast.LongLit, *ast.StringLit, *ast.EntityRef,
		*ast.Unknown:
		return nil

	case *ast.Variable:
		return &InvalidError{Feature: "variables", X: x}
	case *ast.Slot:
		return &InvalidError{Feature: "template slots", X: x}
	case *ast.IfExpr:
		return &InvalidError{Feature: "if-then-else", X: x}
	case *ast.UnaryExpr:
		return &InvalidError{Feature: x.Op.String(), X: x}
	case *ast.BinaryExpr:
		return &InvalidError{Feature: x.Op.String(), X: x}
	case *ast.SelectorExpr:
		return &InvalidError{Feature: "attribute accesses", X: x}
	case *ast.HasExpr:
		return &InvalidError{Feature: "'has'", X: x}
	case *ast.LikeExpr:
		return &InvalidError{Feature: "'like'", X: x}
	case *ast.IsExpr:
		return &InvalidError{Feature: "'is'", X: x}
	case *ast.BadExpr:
		return &InvalidError{Feature: "syntax errors", X: x}

	case *ast.SetExpr:
		for _, elt := range x.Elts {
			if err := check(elt); err != nil {
				return err
			}
		}
		return nil

	case *ast.RecordExpr:
		for _, f := range x.Fields {
			if err := check(f.Value); err != nil {
				return err
			}
		}
		return nil

	case *ast.CallExpr:
		for _, arg := range x.Args {
			if err := check(arg); err != nil {
				return err
			}
		}
		return nil
	}
	return &InvalidError{Feature: "unsupported expressions", X: e}
}

// checkKeys verifies that record keys are unique at every nesting level,
// reporting the first repeated key found.
func checkKeys(e ast.Expr) *DuplicateKeyError {
	switch x := e.(type) {
	case *ast.SetExpr:
		for _, elt := range x.Elts {
			if err := checkKeys(elt); err != nil {
				return err
			}
		}
	case *ast.CallExpr:
		for _, arg := range x.Args {
			if err := checkKeys(arg); err != nil {
				return err
			}
		}
	case *ast.RecordExpr:
		seen := make(map[string]bool, len(x.Fields))
		for _, f := range x.Fields {
			if seen[f.Key] {
				return &DuplicateKeyError{
					Key:     f.Key,
					Context: "in record literal",
					pos:     f.KeyPos,
				}
			}
			seen[f.Key] = true
		}
		for _, f := range x.Fields {
			if err := checkKeys(f.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

func validate(e ast.Expr) error {
	if err := check(e); err != nil {
		return err
	}
	if err := checkKeys(e); err != nil {
		return err
	}
	return nil
}

// strict reports whether trusted construction should re-run the invariant
// check, per the OAK_DEBUG=strict flag.
func strict() bool {
	_ = oakdebug.Init()
	return oakdebug.Flags.Strict
}

func assertRestricted(e ast.Expr) {
	if !strict() {
		return
	}
	if err := validate(e); err != nil {
		panic("restricted: trusted construction of invalid expression: " + err.Error())
	}
}

// An Expression is a general expression tree that is guaranteed, for the
// node and everything reachable from it, to satisfy the restricted
// invariant. It owns its tree; use [View] for a non-owning alias.
type Expression struct {
	expr ast.Expr
}

// New runs the invariant check over the whole of e and wraps it on
// success. It returns an [*InvalidError] or [*DuplicateKeyError]
// otherwise.
func New(e ast.Expr) (Expression, error) {
	if err := validate(e); err != nil {
		return Expression{}, err
	}
	return Expression{expr: e}, nil
}

// Trust wraps e, asserting that the caller has already established the
// restricted invariant, typically via the closure property of a validated
// parent. With OAK_DEBUG=strict the check still runs and a violation
// panics; otherwise Trust is a pass-through.
func Trust(e ast.Expr) Expression {
	assertRestricted(e)
	return Expression{expr: e}
}

// Parse parses src under the general expression grammar and then applies
// checked construction. Syntax failures and invariant-violation failures
// are reported through the same error result; callers need not distinguish
// "did not parse" from "parsed but is not restricted".
func Parse(filename string, src []byte) (Expression, error) {
	e, err := parser.ParseExpr(filename, src)
	if err != nil {
		return Expression{}, err
	}
	return New(e)
}

// Exists reports whether the expression is non-zero.
func (e Expression) Exists() bool { return e.expr != nil }

// AsExpr returns the wrapped general expression. Widening never fails:
// restricted expressions are a subset of general ones.
func (e Expression) AsExpr() ast.Expr { return e.expr }

// View returns a non-owning view of the expression.
func (e Expression) View() View { return View{expr: e.expr} }

// Source renders the expression as policy source text.
func (e Expression) Source() string { return e.View().Source() }

// Bool extracts the boolean if the node is exactly a boolean literal.
func (e Expression) Bool() (bool, bool) { return e.View().Bool() }

// Long extracts the integer if the node is exactly an integer literal.
func (e Expression) Long() (int64, bool) { return e.View().Long() }

// String extracts the string if the node is exactly a string literal.
func (e Expression) String() (string, bool) { return e.View().String() }

// EntityUID extracts the entity reference if the node is exactly an entity
// reference literal.
func (e Expression) EntityUID() (value.EntityUID, bool) { return e.View().EntityUID() }

// Unknown extracts the unknown's name if the node is exactly an unknown
// marker.
func (e Expression) Unknown() (string, bool) { return e.View().Unknown() }

// SetElements yields views of the set's elements if the node is a set.
func (e Expression) SetElements() (iter.Seq[View], bool) { return e.View().SetElements() }

// RecordPairs yields the record's key/value pairs in insertion order if
// the node is a record.
func (e Expression) RecordPairs() (iter.Seq2[string, View], bool) { return e.View().RecordPairs() }

// ExtCall yields the function name and views of the arguments if the node
// is an extension function call.
func (e Expression) ExtCall() (string, iter.Seq[View], bool) { return e.View().ExtCall() }

// TypeOf attempts to compute the expression's kind; see [View.TypeOf].
func (e Expression) TypeOf() (types.Kind, bool) { return e.View().TypeOf() }

// Equal reports full structural equality, including source positions; see
// [View.Equal].
func (e Expression) Equal(e2 Expression) bool { return e.View().Equal(e2.View()) }

// A View is a read-only, non-owning alias over a general expression owned
// elsewhere that satisfies the restricted invariant. It must not outlive
// the tree it references. The zero View is empty: all accessors report
// absence.
type View struct {
	expr ast.Expr
}

// NewView runs the invariant check over the whole of e and returns a
// non-owning view on success.
func NewView(e ast.Expr) (View, error) {
	if err := validate(e); err != nil {
		return View{}, err
	}
	return View{expr: e}, nil
}

// TrustView is the non-owning analogue of [Trust].
func TrustView(e ast.Expr) View {
	assertRestricted(e)
	return View{expr: e}
}

// Exists reports whether the view is non-zero.
func (v View) Exists() bool { return v.expr != nil }

// AsExpr returns the viewed general expression.
func (v View) AsExpr() ast.Expr { return v.expr }

// ToOwned converts the view into an owning [Expression]. Subtrees are
// shared, never copied; sharing is not observable through the API.
func (v View) ToOwned() Expression { return Expression{expr: v.expr} }

// Source renders the viewed expression as policy source text.
func (v View) Source() string {
	if v.expr == nil {
		return ""
	}
	return ast.Format(v.expr)
}

// Bool extracts the boolean if the node is exactly a boolean literal.
func (v View) Bool() (bool, bool) {
	if x, ok := v.expr.(*ast.BoolLit); ok {
		return x.Value, true
	}
	return false, false
}

// Long extracts the integer if the node is exactly an integer literal.
func (v View) Long() (int64, bool) {
	if x, ok := v.expr.(*ast.LongLit); ok {
		return x.Value, true
	}
	return 0, false
}

// String extracts the string if the node is exactly a string literal.
func (v View) String() (string, bool) {
	if x, ok := v.expr.(*ast.StringLit); ok {
		return x.Value, true
	}
	return "", false
}

// EntityUID extracts the entity reference if the node is exactly an entity
// reference literal.
func (v View) EntityUID() (value.EntityUID, bool) {
	if x, ok := v.expr.(*ast.EntityRef); ok {
		return value.EntityUID{Type: x.Type, ID: x.ID}, true
	}
	return value.EntityUID{}, false
}

// Unknown extracts the unknown's name if the node is exactly an unknown
// marker.
func (v View) Unknown() (string, bool) {
	if x, ok := v.expr.(*ast.Unknown); ok {
		return x.Name, true
	}
	return "", false
}

// SetElements yields views of the set's elements, in order, if the node is
// a set. The children are returned without re-validation: substructures of
// a validated tree are valid.
func (v View) SetElements() (iter.Seq[View], bool) {
	x, ok := v.expr.(*ast.SetExpr)
	if !ok {
		return nil, false
	}
	return func(yield func(View) bool) {
		for _, elt := range x.Elts {
			if !yield(View{expr: elt}) {
				return
			}
		}
	}, true
}

// RecordPairs yields the record's key/value pairs in insertion order if
// the node is a record.
func (v View) RecordPairs() (iter.Seq2[string, View], bool) {
	x, ok := v.expr.(*ast.RecordExpr)
	if !ok {
		return nil, false
	}
	return func(yield func(string, View) bool) {
		for _, f := range x.Fields {
			if !yield(f.Key, View{expr: f.Value}) {
				return
			}
		}
	}, true
}

// ExtCall yields the function name and views of the arguments, in order,
// if the node is an extension function call.
func (v View) ExtCall() (string, iter.Seq[View], bool) {
	x, ok := v.expr.(*ast.CallExpr)
	if !ok {
		return "", nil, false
	}
	return x.Fun, func(yield func(View) bool) {
		for _, arg := range x.Args {
			if !yield(View{expr: arg}) {
				return
			}
		}
	}, true
}

// TypeOf attempts to compute the node's kind using the general tree's
// type-inference facility. The result is absent whenever the shape
// includes unknowns or extension calls whose result kind the registry
// cannot determine.
func (v View) TypeOf() (types.Kind, bool) {
	if v.expr == nil {
		return types.BottomKind, false
	}
	return types.TypeOf(v.expr, ext.ResultKind)
}
