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

package ast

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"oaklang.org/go/oak/token"
)

// Format renders an expression as source text. The result parses back to a
// structurally equal expression; positions are not preserved. It is used for
// diagnostics, which quote the offending subexpression.
func Format(e Expr) string {
	var b strings.Builder
	fprint(&b, e, token.LowestPrec)
	return b.String()
}

func fprint(b *strings.Builder, e Expr, outer int) {
	switch x := e.(type) {
	case *BadExpr:
		b.WriteString("<bad expression>")

	case *BoolLit:
		b.WriteString(strconv.FormatBool(x.Value))

	case *LongLit:
		b.WriteString(strconv.FormatInt(x.Value, 10))

	case *StringLit:
		b.WriteString(strconv.Quote(x.Value))

	case *EntityRef:
		b.WriteString(x.Type)
		b.WriteString("::")
		b.WriteString(strconv.Quote(x.ID))

	case *Unknown:
		fmt.Fprintf(b, "unknown(%s)", strconv.Quote(x.Name))

	case *Variable:
		b.WriteString(x.Name)

	case *Slot:
		b.WriteByte('?')
		b.WriteString(x.Name)

	case *IfExpr:
		openParen(b, outer > token.LowestPrec)
		b.WriteString("if ")
		fprint(b, x.Cond, token.LowestPrec)
		b.WriteString(" then ")
		fprint(b, x.Then, token.LowestPrec)
		b.WriteString(" else ")
		fprint(b, x.Else, token.LowestPrec)
		closeParen(b, outer > token.LowestPrec)

	case *UnaryExpr:
		openParen(b, outer > token.UnaryPrec)
		b.WriteString(x.Op.String())
		fprint(b, x.X, token.UnaryPrec)
		closeParen(b, outer > token.UnaryPrec)

	case *BinaryExpr:
		prec := x.Op.Precedence()
		openParen(b, outer > prec)
		fprint(b, x.X, prec)
		b.WriteByte(' ')
		b.WriteString(x.Op.String())
		b.WriteByte(' ')
		fprint(b, x.Y, prec+1)
		closeParen(b, outer > prec)

	case *SelectorExpr:
		fprint(b, x.X, token.HighestPrec)
		if isValidIdent(x.Sel) {
			b.WriteByte('.')
			b.WriteString(x.Sel)
		} else {
			b.WriteByte('[')
			b.WriteString(strconv.Quote(x.Sel))
			b.WriteByte(']')
		}

	case *HasExpr:
		prec := token.HAS.Precedence()
		openParen(b, outer > prec)
		fprint(b, x.X, prec)
		b.WriteString(" has ")
		if isValidIdent(x.Attr) {
			b.WriteString(x.Attr)
		} else {
			b.WriteString(strconv.Quote(x.Attr))
		}
		closeParen(b, outer > prec)

	case *LikeExpr:
		prec := token.LIKE.Precedence()
		openParen(b, outer > prec)
		fprint(b, x.X, prec)
		b.WriteString(" like ")
		b.WriteString(strconv.Quote(x.Pattern))
		closeParen(b, outer > prec)

	case *IsExpr:
		prec := token.IS.Precedence()
		openParen(b, outer > prec)
		fprint(b, x.X, prec)
		b.WriteString(" is ")
		b.WriteString(x.Type)
		closeParen(b, outer > prec)

	case *CallExpr:
		b.WriteString(x.Fun)
		b.WriteByte('(')
		for i, arg := range x.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			fprint(b, arg, token.LowestPrec)
		}
		b.WriteByte(')')

	case *SetExpr:
		b.WriteByte('[')
		for i, elt := range x.Elts {
			if i > 0 {
				b.WriteString(", ")
			}
			fprint(b, elt, token.LowestPrec)
		}
		b.WriteByte(']')

	case *RecordExpr:
		b.WriteByte('{')
		for i, f := range x.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			if isValidIdent(f.Key) {
				b.WriteString(f.Key)
			} else {
				b.WriteString(strconv.Quote(f.Key))
			}
			b.WriteString(": ")
			fprint(b, f.Value, token.LowestPrec)
		}
		b.WriteByte('}')

	default:
		panic(fmt.Sprintf("Format: unexpected node type %T", x))
	}
}

func openParen(b *strings.Builder, parens bool) {
	if parens {
		b.WriteByte('(')
	}
}

func closeParen(b *strings.Builder, parens bool) {
	if parens {
		b.WriteByte(')')
	}
}

// isValidIdent reports whether name can be written as a bare identifier in
// source text.
func isValidIdent(name string) bool {
	if name == "" || token.Lookup(name) != token.IDENT {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) && r < utf8.RuneSelf {
			continue
		}
		return false
	}
	return true
}
