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
	"oaklang.org/go/oak/errors"
	"oaklang.org/go/oak/ext"
	"oaklang.org/go/oak/value"
)

// FromValue converts a fully evaluated value into a restricted expression.
// The conversion is total and lossless: literals map to literal nodes,
// sets and records map to aggregate nodes over the recursively converted
// children in source iteration order, and extension values unwrap to their
// constructor call form, recursively.
func FromValue(v value.Value) Expression {
	switch x := v.(type) {
	case value.Bool:
		return Bool(bool(x))
	case value.Long:
		return Long(int64(x))
	case value.String:
		return String(string(x))
	case value.EntityUID:
		return EntityUID(x)

	case value.Set:
		elts := make([]ast.Expr, 0, x.Len())
		for e := range x.Elements() {
			elts = append(elts, FromValue(e).expr)
		}
		return Expression{expr: ast.NewSet(elts...)}

	case value.Record:
		// The source record is already key-unique, so record
		// construction cannot fail here.
		fields := make([]*ast.Field, 0, x.Len())
		for k, v := range x.Fields() {
			fields = append(fields, ast.NewField(k, FromValue(v).expr))
		}
		return Expression{expr: ast.NewRecord(fields...)}

	case value.Ext:
		fun, args := x.Constructor()
		exprs := make([]ast.Expr, len(args))
		for i, a := range args {
			exprs[i] = FromValue(a).expr
		}
		return Expression{expr: ast.NewCall(fun, exprs...)}
	}
	// Everything beyond the built-in forms is an extension value, and
	// those convert only through the full value.Ext contract. A type
	// embedding value.ExtValue without implementing value.Ext ends here.
	panic(fmt.Sprintf("restricted: value type %T does not implement value.Ext", v))
}

// FromPartial converts a partially evaluated value into a restricted
// expression. Fully evaluated values always convert; residuals convert
// only if they are already shaped like literals, aggregates, or extension
// calls with embedded unknowns. Residuals still containing unresolved
// operators, conditionals, or variable references fail with a
// [*NontrivialResidualError] and are never coerced.
func FromPartial(p value.Partial) (Expression, error) {
	if v, ok := p.Value(); ok {
		return FromValue(v), nil
	}
	e, ok := p.Expr()
	if !ok {
		return Expression{}, errors.New("invalid partial value")
	}
	if err := check(e); err != nil {
		return Expression{}, &NontrivialResidualError{Residual: e, Reason: err}
	}
	if err := checkKeys(e); err != nil {
		return Expression{}, err
	}
	return Expression{expr: e}, nil
}

// ToValue evaluates a restricted expression back into the value domain.
// It fails on unknown markers, which stand for values not yet available,
// and on calls to extension functions the registry does not know.
func ToValue(v View) (value.Value, error) {
	switch x := v.expr.(type) {
	case *ast.BoolLit:
		return value.Bool(x.Value), nil
	case *ast.LongLit:
		return value.Long(x.Value), nil
	case *ast.StringLit:
		return value.String(x.Value), nil
	case *ast.EntityRef:
		return value.EntityUID{Type: x.Type, ID: x.ID}, nil

	case *ast.Unknown:
		return nil, errors.Newf(x.Pos(), "cannot evaluate unknown `%s`", x.Name)

	case *ast.SetExpr:
		elems := make([]value.Value, len(x.Elts))
		for i, elt := range x.Elts {
			e, err := ToValue(View{expr: elt})
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return value.NewSet(elems...), nil

	case *ast.RecordExpr:
		entries := make([]value.Entry, len(x.Fields))
		for i, f := range x.Fields {
			e, err := ToValue(View{expr: f.Value})
			if err != nil {
				return nil, err
			}
			entries[i] = value.Entry{Key: f.Key, Value: e}
		}
		r, err := value.NewRecord(entries...)
		if err != nil {
			return nil, errors.Promote(err, "record evaluation")
		}
		return r, nil

	case *ast.CallExpr:
		f, ok := ext.Lookup(x.Fun)
		if !ok {
			return nil, errors.Newf(x.Pos(), "unknown extension function %s", x.Fun)
		}
		args := make([]value.Value, len(x.Args))
		for i, arg := range x.Args {
			a, err := ToValue(View{expr: arg})
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		res, err := f.Apply(args)
		if err != nil {
			return nil, errors.Wrapf(err, x.Pos(), "cannot evaluate %s call", x.Fun)
		}
		return res, nil
	}
	return nil, errors.New("not a restricted expression")
}
