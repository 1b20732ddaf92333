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

package ast_test

import (
	"fmt"
	"testing"

	"github.com/go-quicktest/qt"

	"oaklang.org/go/oak/ast"
	"oaklang.org/go/oak/token"
)

func TestConstructorsFormat(t *testing.T) {
	tests := []struct {
		expr ast.Expr
		want string
	}{
		{ast.NewBool(true), `true`},
		{ast.NewBool(false), `false`},
		{ast.NewLong(-7), `-7`},
		{ast.NewString("a\nb"), `"a\nb"`},
		{ast.NewEntityRef("User", "alice"), `User::"alice"`},
		{ast.NewUnknown("pool"), `unknown("pool")`},
		{ast.NewCall("decimal", ast.NewString("1.0")), `decimal("1.0")`},
		{ast.NewSet(), `[]`},
		{ast.NewSet(ast.NewLong(1), ast.NewLong(2)), `[1, 2]`},
		{ast.NewRecord(), `{}`},
		{
			ast.NewRecord(
				ast.NewField("a", ast.NewLong(1)),
				ast.NewField("b c", ast.NewLong(2)),
			),
			`{a: 1, "b c": 2}`,
		},
	}
	for _, tc := range tests {
		qt.Assert(t, qt.Equals(ast.Format(tc.expr), tc.want))
		qt.Assert(t, qt.Equals(tc.expr.Pos(), token.NoPos))
	}
}

func TestFormatQuotesKeywordKeys(t *testing.T) {
	// Keys that collide with keywords cannot be written bare.
	rec := ast.NewRecord(ast.NewField("if", ast.NewLong(1)))
	qt.Assert(t, qt.Equals(ast.Format(rec), `{"if": 1}`))
}

func TestWalk(t *testing.T) {
	e := ast.NewRecord(
		ast.NewField("a", ast.NewSet(ast.NewLong(1), ast.NewString("x"))),
		ast.NewField("b", ast.NewCall("decimal", ast.NewString("1.0"))),
	)

	var order []string
	ast.Walk(e, func(n ast.Node) bool {
		order = append(order, fmt.Sprintf("%T", n))
		return true
	}, nil)

	qt.Assert(t, qt.DeepEquals(order, []string{
		"*ast.RecordExpr",
		"*ast.Field",
		"*ast.SetExpr",
		"*ast.LongLit",
		"*ast.StringLit",
		"*ast.Field",
		"*ast.CallExpr",
		"*ast.StringLit",
	}))
}

func TestWalkPrune(t *testing.T) {
	e := ast.NewSet(
		ast.NewSet(ast.NewLong(1)),
		ast.NewLong(2),
	)

	// Returning false prunes the subtree.
	var count int
	ast.Walk(e, func(n ast.Node) bool {
		count++
		_, isSet := n.(*ast.SetExpr)
		return !isSet || count == 1
	}, nil)
	// Outer set, inner set (pruned), and the sibling literal.
	qt.Assert(t, qt.Equals(count, 3))
}

func TestWalkAfter(t *testing.T) {
	e := ast.NewSet(ast.NewLong(1))

	var after []string
	ast.Walk(e, nil, func(n ast.Node) {
		after = append(after, fmt.Sprintf("%T", n))
	})
	qt.Assert(t, qt.DeepEquals(after, []string{"*ast.LongLit", "*ast.SetExpr"}))
}
