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

package scanner

import (
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp"

	"oaklang.org/go/oak/errors"
	"oaklang.org/go/oak/token"
)

type tokenItem struct {
	Tok token.Token
	Lit string
}

func scanAll(t *testing.T, src string, mode Mode) ([]tokenItem, errors.List) {
	t.Helper()
	var list errors.List
	var s Scanner
	f := token.NewFile("test", len(src))
	s.Init(f, []byte(src), func(pos token.Pos, msg string, args []any) {
		list.AddNewf(pos, msg, args...)
	}, mode)

	var items []tokenItem
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		items = append(items, tokenItem{tok, lit})
	}
	return items, list
}

func TestScanTokens(t *testing.T) {
	src := `{ total: -42, id: User::"alié", ok: true } // trailing`
	items, list := scanAll(t, src, 0)
	qt.Assert(t, qt.IsNil(list.Err()))
	want := []tokenItem{
		{token.LBRACE, ""},
		{token.IDENT, "total"},
		{token.COLON, ""},
		{token.SUB, ""},
		{token.INT, "42"},
		{token.COMMA, ""},
		{token.IDENT, "id"},
		{token.COLON, ""},
		{token.IDENT, "User"},
		{token.COLON2, ""},
		{token.STRING, `"alié"`},
		{token.COMMA, ""},
		{token.IDENT, "ok"},
		{token.COLON, ""},
		{token.TRUE, "true"},
		{token.RBRACE, ""},
	}
	if !cmp.Equal(items, want) {
		t.Error(cmp.Diff(items, want))
	}
}

func TestScanOperators(t *testing.T) {
	src := `== != < <= > >= && || ! + - * . ? ( ) [ ] if then else in has like is`
	items, list := scanAll(t, src, 0)
	qt.Assert(t, qt.IsNil(list.Err()))

	var toks []token.Token
	for _, it := range items {
		toks = append(toks, it.Tok)
	}
	qt.Assert(t, qt.DeepEquals(toks, []token.Token{
		token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ,
		token.LAND, token.LOR, token.NOT, token.ADD, token.SUB, token.MUL,
		token.PERIOD, token.QUEST, token.LPAREN, token.RPAREN,
		token.LBRACK, token.RBRACK,
		token.IF, token.THEN, token.ELSE, token.IN, token.HAS, token.LIKE,
		token.IS,
	}))
}

func TestScanComments(t *testing.T) {
	src := "1 // a comment\n2"
	items, list := scanAll(t, src, ScanComments)
	qt.Assert(t, qt.IsNil(list.Err()))
	qt.Assert(t, qt.DeepEquals(items, []tokenItem{
		{token.INT, "1"},
		{token.COMMENT, "// a comment"},
		{token.INT, "2"},
	}))

	// Comments are skipped without ScanComments.
	items, _ = scanAll(t, src, 0)
	qt.Assert(t, qt.DeepEquals(items, []tokenItem{
		{token.INT, "1"},
		{token.INT, "2"},
	}))
}

func TestScanErrors(t *testing.T) {
	tests := []struct{ src, want string }{
		{`"abc`, "string literal not terminated"},
		{`"\q"`, "unknown escape sequence"},
		{`"\u12"`, `illegal character U+0022 '"' in escape sequence`},
		{`"\ud800"`, "escape sequence is invalid Unicode code point"},
		{`1 = 2`, "illegal token '='; expected '=='"},
		{`1 & 2`, "illegal token '&'; expected '&&'"},
		{`1 | 2`, "illegal token '|'; expected '||'"},
		{`@`, "illegal character U+0040 '@'"},
		{`1x`, "illegal character U+0078 'x' in number"},
	}
	for _, tc := range tests {
		_, list := scanAll(t, tc.src, 0)
		qt.Assert(t, qt.IsNotNil(list.Err()), qt.Commentf("source: %s", tc.src))
		qt.Assert(t, qt.Equals(list[0].Error(), tc.want), qt.Commentf("source: %s", tc.src))
	}
}

func TestScanPositions(t *testing.T) {
	src := "[1,\n 22]"
	var s Scanner
	f := token.NewFile("test", len(src))
	s.Init(f, []byte(src), nil, 0)

	var cols [][2]int
	for {
		pos, tok, _ := s.Scan()
		if tok == token.EOF {
			break
		}
		p := pos.Position()
		cols = append(cols, [2]int{p.Line, p.Column})
	}
	qt.Assert(t, qt.DeepEquals(cols, [][2]int{
		{1, 1}, {1, 2}, {1, 3}, {2, 2}, {2, 4},
	}))
}
