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

// Package types provides the kind lattice for Oak values and a structural
// type-inference facility over general policy expressions.
package types

import (
	"strings"

	"oaklang.org/go/oak/ast"
	"oaklang.org/go/oak/token"
)

// Kind reports the possible kinds of an expression's value. Kinds form a
// bit set: a Kind with more than one bit set means the expression may
// evaluate to any of those kinds.
type Kind uint16

const (
	// BottomKind is the empty kind: no value can have it.
	BottomKind Kind = 0

	// BoolKind indicates a boolean value.
	BoolKind Kind = 1 << iota

	// LongKind indicates a 64-bit signed integer.
	LongKind

	// StringKind indicates a string value.
	StringKind

	// EntityKind indicates an entity reference.
	EntityKind

	// SetKind indicates a set of values.
	SetKind

	// RecordKind indicates a record of named values.
	RecordKind

	// ExtensionKind indicates a value of an extension type, such as
	// decimal or ipaddr.
	ExtensionKind

	// TopKind represents any value allowed in the value domain.
	TopKind Kind = (ExtensionKind << 1) - 1
)

var kindStrs = []struct {
	kind Kind
	name string
}{
	{BoolKind, "bool"},
	{LongKind, "long"},
	{StringKind, "string"},
	{EntityKind, "entity"},
	{SetKind, "set"},
	{RecordKind, "record"},
	{ExtensionKind, "extension"},
}

// String returns the representation of the Kind as a pipe-separated list of
// kind names.
func (k Kind) String() string {
	if k == BottomKind {
		return "_|_"
	}
	if k == TopKind {
		return "_"
	}
	var parts []string
	for _, ks := range kindStrs {
		if k&ks.kind != 0 {
			parts = append(parts, ks.name)
		}
	}
	return strings.Join(parts, "|")
}

// IsAnyOf reports whether k is any of the given kinds.
func (k Kind) IsAnyOf(of Kind) bool {
	return k&of != BottomKind
}

// An ExtResolver reports the result kind of an extension function, if
// known. It typically wraps the extension registry's type rules.
type ExtResolver func(fun string) (Kind, bool)

// TypeOf attempts to compute the kind of e without evaluating it. The
// second result is false whenever the shape of e includes unknowns, syntax
// errors, attribute accesses whose result depends on data, or extension
// calls whose result kind ext cannot determine. ext may be nil, in which
// case all extension calls are undetermined.
func TypeOf(e ast.Expr, ext ExtResolver) (Kind, bool) {
	switch x := e.(type) {
	case *ast.BoolLit:
		return BoolKind, true
	case *ast.LongLit:
		return LongKind, true
	case *ast.StringLit:
		return StringKind, true
	case *ast.EntityRef:
		return EntityKind, true

	case *ast.Unknown:
		return BottomKind, false

	case *ast.Variable:
		if x.Name == "context" {
			return RecordKind, true
		}
		return EntityKind, true

	case *ast.Slot:
		return EntityKind, true

	case *ast.IfExpr:
		t1, ok1 := TypeOf(x.Then, ext)
		t2, ok2 := TypeOf(x.Else, ext)
		if !ok1 || !ok2 {
			return BottomKind, false
		}
		return t1 | t2, true

	case *ast.UnaryExpr:
		if x.Op == token.NOT {
			return BoolKind, true
		}
		return LongKind, true

	case *ast.BinaryExpr:
		switch x.Op {
		case token.ADD, token.SUB, token.MUL:
			return LongKind, true
		}
		return BoolKind, true

	case *ast.SelectorExpr:
		// The attribute's type depends on entity data or a schema.
		return BottomKind, false

	case *ast.HasExpr, *ast.LikeExpr, *ast.IsExpr:
		return BoolKind, true

	case *ast.CallExpr:
		if ext == nil {
			return BottomKind, false
		}
		return ext(x.Fun)

	case *ast.SetExpr:
		for _, e := range x.Elts {
			if _, ok := TypeOf(e, ext); !ok {
				return BottomKind, false
			}
		}
		return SetKind, true

	case *ast.RecordExpr:
		for _, f := range x.Fields {
			if _, ok := TypeOf(f.Value, ext); !ok {
				return BottomKind, false
			}
		}
		return RecordKind, true
	}
	return BottomKind, false
}
