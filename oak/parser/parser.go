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

package parser

import (
	"strconv"
	"strings"

	"oaklang.org/go/oak/ast"
	"oaklang.org/go/oak/errors"
	"oaklang.org/go/oak/scanner"
	"oaklang.org/go/oak/token"
)

// The parser structure holds the parser's internal state.
type parser struct {
	file    *token.File
	errors  errors.List
	scanner scanner.Scanner

	// Next token
	pos token.Pos   // token position
	tok token.Token // one token look-ahead
	lit string      // token literal
}

func (p *parser) init(filename string, src []byte) {
	p.file = token.NewFile(filename, len(src))
	eh := func(pos token.Pos, msg string, args []any) {
		p.errors.AddNewf(pos, msg, args...)
	}
	p.scanner.Init(p.file, src, eh, 0)
	p.next()
}

// next advances to the next token.
func (p *parser) next() {
	p.pos, p.tok, p.lit = p.scanner.Scan()
}

func (p *parser) errf(pos token.Pos, format string, args ...any) {
	p.errors.AddNewf(pos, format, args...)
}

func (p *parser) errorExpected(pos token.Pos, obj string) {
	if pos != p.pos {
		p.errf(pos, "expected %s", obj)
		return
	}
	// The error happened at the current position; make the error message
	// more specific.
	switch {
	case p.tok.IsLiteral():
		p.errf(pos, "expected %s, found '%s' %s", obj, p.tok, p.lit)
	default:
		p.errf(pos, "expected %s, found '%s'", obj, p.tok)
	}
}

func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.pos
	if p.tok != tok {
		p.errorExpected(pos, "'"+tok.String()+"'")
	}
	p.next() // make progress in any case
	return pos
}

// ----------------------------------------------------------------------------
// Expressions

// parseExpr parses a full expression, including if-then-else at the top.
func (p *parser) parseExpr() ast.Expr {
	if p.tok == token.IF {
		return p.parseIfExpr()
	}
	return p.parseBinaryExpr(token.LowestPrec + 1)
}

func (p *parser) parseIfExpr() ast.Expr {
	ifPos := p.expect(token.IF)
	cond := p.parseExpr()
	p.expect(token.THEN)
	then := p.parseExpr()
	p.expect(token.ELSE)
	els := p.parseExpr()
	return &ast.IfExpr{If: ifPos, Cond: cond, Then: then, Else: els}
}

func (p *parser) parseBinaryExpr(prec1 int) ast.Expr {
	x := p.parseUnaryExpr()
	for {
		op := p.tok
		prec := op.Precedence()
		if prec < prec1 {
			return x
		}
		switch op {
		case token.HAS:
			x = p.parseHasExpr(x)
		case token.LIKE:
			x = p.parseLikeExpr(x)
		case token.IS:
			x = p.parseIsExpr(x)
		default:
			pos := p.expect(op)
			y := p.parseBinaryExpr(prec + 1)
			x = &ast.BinaryExpr{X: x, OpPos: pos, Op: op, Y: y}
		}
	}
}

func (p *parser) parseHasExpr(x ast.Expr) ast.Expr {
	hasPos := p.expect(token.HAS)
	attrPos := p.pos
	var attr string
	var end token.Pos
	switch p.tok {
	case token.IDENT:
		attr = p.lit
		end = p.pos.Add(len(p.lit))
		p.next()
	case token.STRING:
		attr = p.unquote(p.pos, p.lit)
		end = p.pos.Add(len(p.lit))
		p.next()
	default:
		p.errorExpected(p.pos, "attribute name")
		end = p.pos
		p.next()
	}
	return &ast.HasExpr{X: x, HasPos: hasPos, AttrPos: attrPos, Attr: attr, EndPos: end}
}

func (p *parser) parseLikeExpr(x ast.Expr) ast.Expr {
	likePos := p.expect(token.LIKE)
	patPos := p.pos
	var pat string
	var end token.Pos
	if p.tok == token.STRING {
		pat = p.unquote(p.pos, p.lit)
		end = p.pos.Add(len(p.lit))
		p.next()
	} else {
		p.errorExpected(p.pos, "pattern string")
		end = p.pos
		p.next()
	}
	return &ast.LikeExpr{X: x, LikePos: likePos, PatPos: patPos, Pattern: pat, EndPos: end}
}

func (p *parser) parseIsExpr(x ast.Expr) ast.Expr {
	isPos := p.expect(token.IS)
	typePos := p.pos
	path, end := p.parsePath()
	return &ast.IsExpr{X: x, IsPos: isPos, TypePos: typePos, Type: path, EndPos: end}
}

func (p *parser) parseUnaryExpr() ast.Expr {
	switch p.tok {
	case token.NOT:
		pos := p.pos
		p.next()
		return &ast.UnaryExpr{OpPos: pos, Op: token.NOT, X: p.parseUnaryExpr()}
	case token.SUB:
		pos := p.pos
		p.next()
		if p.tok == token.INT {
			// A minus sign directly preceding an integer literal is part
			// of the literal. This also admits the smallest representable
			// long, whose absolute value overflows.
			return p.parseLongLit(pos, "-"+p.lit)
		}
		return &ast.UnaryExpr{OpPos: pos, Op: token.SUB, X: p.parseUnaryExpr()}
	}
	return p.parsePrimaryExpr()
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	x := p.parseOperand()
	for {
		switch p.tok {
		case token.PERIOD:
			p.next()
			selPos := p.pos
			if p.tok != token.IDENT {
				p.errorExpected(p.pos, "attribute name")
				p.next()
				return &ast.BadExpr{From: x.Pos(), To: p.pos}
			}
			sel := p.lit
			end := p.pos.Add(len(p.lit))
			p.next()
			x = &ast.SelectorExpr{X: x, SelPos: selPos, Sel: sel, EndPos: end}
		case token.LBRACK:
			p.next()
			selPos := p.pos
			if p.tok != token.STRING {
				p.errorExpected(p.pos, "string index")
				p.next()
				return &ast.BadExpr{From: x.Pos(), To: p.pos}
			}
			sel := p.unquote(p.pos, p.lit)
			p.next()
			rbrack := p.expect(token.RBRACK)
			x = &ast.SelectorExpr{X: x, SelPos: selPos, Sel: sel, EndPos: rbrack.Add(1)}
		default:
			return x
		}
	}
}

func (p *parser) parseOperand() ast.Expr {
	switch p.tok {
	case token.TRUE, token.FALSE:
		lit := &ast.BoolLit{ValuePos: p.pos, Value: p.tok == token.TRUE}
		p.next()
		return lit

	case token.INT:
		return p.parseLongLit(p.pos, p.lit)

	case token.STRING:
		lit := &ast.StringLit{
			ValuePos: p.pos,
			Value:    p.unquote(p.pos, p.lit),
			EndPos:   p.pos.Add(len(p.lit)),
		}
		p.next()
		return lit

	case token.IDENT:
		return p.parseIdentExpr()

	case token.QUEST:
		return p.parseSlot()

	case token.LPAREN:
		p.next()
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return x

	case token.LBRACK:
		return p.parseSetLit()

	case token.LBRACE:
		return p.parseRecordLit()

	case token.IF:
		return p.parseIfExpr()
	}

	pos := p.pos
	p.errorExpected(pos, "operand")
	p.next() // make progress
	return &ast.BadExpr{From: pos, To: p.pos}
}

func (p *parser) parseLongLit(pos token.Pos, lit string) ast.Expr {
	p.next()
	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		p.errf(pos, "integer literal %s out of range", lit)
		return &ast.BadExpr{From: pos, To: pos.Add(len(lit))}
	}
	return &ast.LongLit{ValuePos: pos, Src: lit, Value: v}
}

// requestVariables are the ambient variables of an authorization request.
var requestVariables = map[string]bool{
	"principal": true,
	"action":    true,
	"resource":  true,
	"context":   true,
}

// parseIdentExpr parses the constructs that start with an identifier:
// request variables, unknown placeholders, entity references, and extension
// function calls.
func (p *parser) parseIdentExpr() ast.Expr {
	pos, name := p.pos, p.lit
	p.next()

	if p.tok != token.COLON2 && p.tok != token.LPAREN {
		if requestVariables[name] {
			return &ast.Variable{NamePos: pos, Name: name}
		}
		p.errf(pos, "undefined identifier %s", name)
		return &ast.BadExpr{From: pos, To: pos.Add(len(name))}
	}

	// Continue a "::"-separated path if present.
	path := name
	for p.tok == token.COLON2 {
		p.next()
		switch p.tok {
		case token.IDENT:
			path += "::" + p.lit
			p.next()
		case token.STRING:
			// Entity reference: Type::"id".
			id := p.unquote(p.pos, p.lit)
			end := p.pos.Add(len(p.lit))
			p.next()
			return &ast.EntityRef{TypePos: pos, Type: path, ID: id, EndPos: end}
		default:
			p.errorExpected(p.pos, "identifier or string after '::'")
			p.next()
			return &ast.BadExpr{From: pos, To: p.pos}
		}
	}

	if p.tok != token.LPAREN {
		p.errorExpected(p.pos, "'(' or '::\"id\"'")
		return &ast.BadExpr{From: pos, To: p.pos}
	}

	if path == "unknown" {
		return p.parseUnknown(pos)
	}

	lparen := p.expect(token.LPAREN)
	var args []ast.Expr
	for p.tok != token.RPAREN && p.tok != token.EOF {
		args = append(args, p.parseExpr())
		if p.tok != token.COMMA {
			break
		}
		p.next()
	}
	rparen := p.expect(token.RPAREN)
	return &ast.CallExpr{FunPos: pos, Fun: path, Lparen: lparen, Args: args, Rparen: rparen}
}

// parseUnknown parses an unknown("name") placeholder; the opening keyword
// has already been consumed.
func (p *parser) parseUnknown(pos token.Pos) ast.Expr {
	p.expect(token.LPAREN)
	var name string
	if p.tok == token.STRING {
		name = p.unquote(p.pos, p.lit)
		p.next()
	} else {
		p.errorExpected(p.pos, "unknown name string")
		p.next()
	}
	rparen := p.expect(token.RPAREN)
	return &ast.Unknown{UnknownPos: pos, Name: name, EndPos: rparen.Add(1)}
}

func (p *parser) parseSlot() ast.Expr {
	pos := p.expect(token.QUEST)
	name := p.lit
	if p.tok != token.IDENT || name != "principal" && name != "resource" {
		p.errorExpected(p.pos, "slot name 'principal' or 'resource'")
	}
	p.next()
	return &ast.Slot{QuestPos: pos, Name: name}
}

// parsePath parses a "::"-separated identifier path, as used after 'is'.
func (p *parser) parsePath() (path string, end token.Pos) {
	var parts []string
	for {
		end = p.pos.Add(len(p.lit))
		if p.tok != token.IDENT {
			p.errorExpected(p.pos, "identifier")
			p.next()
			break
		}
		parts = append(parts, p.lit)
		p.next()
		if p.tok != token.COLON2 {
			break
		}
		p.next()
	}
	return strings.Join(parts, "::"), end
}

func (p *parser) parseSetLit() ast.Expr {
	lbrack := p.expect(token.LBRACK)
	var elts []ast.Expr
	for p.tok != token.RBRACK && p.tok != token.EOF {
		elts = append(elts, p.parseExpr())
		if p.tok != token.COMMA {
			break
		}
		p.next()
	}
	rbrack := p.expect(token.RBRACK)
	return &ast.SetExpr{Lbrack: lbrack, Elts: elts, Rbrack: rbrack}
}

func (p *parser) parseRecordLit() ast.Expr {
	lbrace := p.expect(token.LBRACE)
	var fields []*ast.Field
	for p.tok != token.RBRACE && p.tok != token.EOF {
		keyPos := p.pos
		var key string
		switch p.tok {
		case token.IDENT:
			key = p.lit
			p.next()
		case token.STRING:
			key = p.unquote(p.pos, p.lit)
			p.next()
		default:
			p.errorExpected(p.pos, "record key")
			p.next()
			continue
		}
		colon := p.expect(token.COLON)
		value := p.parseExpr()
		fields = append(fields, &ast.Field{KeyPos: keyPos, Key: key, Colon: colon, Value: value})
		if p.tok != token.COMMA {
			break
		}
		p.next()
	}
	rbrace := p.expect(token.RBRACE)
	return &ast.RecordExpr{Lbrace: lbrace, Fields: fields, Rbrace: rbrace}
}

// unquote resolves the quotes and escapes of a string literal.
func (p *parser) unquote(pos token.Pos, lit string) string {
	s, err := strconv.Unquote(lit)
	if err != nil {
		p.errf(pos, "invalid string literal %s", lit)
		return ""
	}
	return s
}
