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

// Package token defines constants representing the lexical tokens of the Oak
// policy expression language and basic operations on tokens (printing,
// predicates).
package token

import "strconv"

// Token is the set of lexical tokens of the Oak expression language.
type Token int

// The list of tokens.
const (
	// Special tokens
	ILLEGAL Token = iota
	EOF
	COMMENT

	literalBeg
	// Identifiers and basic type literals
	// (these tokens stand for classes of literals)
	IDENT  // ip, context
	INT    // 12345
	STRING // "abc"
	literalEnd

	operatorBeg
	// Operators and delimiters
	LAND // &&
	LOR  // ||

	EQL // ==
	NEQ // !=
	LSS // <
	LEQ // <=
	GTR // >
	GEQ // >=

	ADD // +
	SUB // -
	MUL // *

	NOT // !

	LPAREN // (
	LBRACK // [
	LBRACE // {
	COMMA  // ,
	PERIOD // .

	RPAREN // )
	RBRACK // ]
	RBRACE // }
	COLON  // :
	COLON2 // ::
	QUEST  // ?
	operatorEnd

	keywordBeg
	TRUE  // true
	FALSE // false
	IF    // if
	THEN  // then
	ELSE  // else
	IN    // in
	HAS   // has
	LIKE  // like
	IS    // is
	keywordEnd
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT:  "IDENT",
	INT:    "INT",
	STRING: "STRING",

	LAND: "&&",
	LOR:  "||",

	EQL: "==",
	NEQ: "!=",
	LSS: "<",
	LEQ: "<=",
	GTR: ">",
	GEQ: ">=",

	ADD: "+",
	SUB: "-",
	MUL: "*",

	NOT: "!",

	LPAREN: "(",
	LBRACK: "[",
	LBRACE: "{",
	COMMA:  ",",
	PERIOD: ".",

	RPAREN: ")",
	RBRACK: "]",
	RBRACE: "}",
	COLON:  ":",
	COLON2: "::",
	QUEST:  "?",

	TRUE:  "true",
	FALSE: "false",
	IF:    "if",
	THEN:  "then",
	ELSE:  "else",
	IN:    "in",
	HAS:   "has",
	LIKE:  "like",
	IS:    "is",
}

// String returns the string corresponding to the token tok.
// For operators and delimiters, the string is the actual token character
// sequence (e.g., for the token [ADD], the string is "+"). For all other
// tokens the string corresponds to the token constant name (e.g. for the
// token [IDENT], the string is "IDENT").
func (tok Token) String() string {
	s := ""
	if 0 <= tok && tok < Token(len(tokens)) {
		s = tokens[tok]
	}
	if s == "" {
		s = "token(" + strconv.Itoa(int(tok)) + ")"
	}
	return s
}

// A set of constants for precedence-based expression parsing.
// Non-operators have lowest precedence, followed by operators starting with
// precedence 1 up to unary operators.
const (
	LowestPrec  = 0 // non-operators
	UnaryPrec   = 7
	HighestPrec = 8
)

// Precedence returns the operator precedence of the binary operator op. If op
// is not a binary operator, the result is LowestPrecedence.
func (tok Token) Precedence() int {
	switch tok {
	case LOR:
		return 1
	case LAND:
		return 2
	case EQL, NEQ, LSS, LEQ, GTR, GEQ, IN, HAS, LIKE, IS:
		return 3
	case ADD, SUB:
		return 4
	case MUL:
		return 5
	}
	return LowestPrec
}

var keywords map[string]Token

func init() {
	keywords = make(map[string]Token)
	for i := keywordBeg + 1; i < keywordEnd; i++ {
		keywords[tokens[i]] = i
	}
}

// Lookup maps an identifier to its keyword token or [IDENT] (if not a
// keyword).
func Lookup(ident string) Token {
	if tok, isKeyword := keywords[ident]; isKeyword {
		return tok
	}
	return IDENT
}

// Predicates

// IsLiteral reports whether the token corresponds to an identifier or basic
// type literal; it returns false otherwise.
func (tok Token) IsLiteral() bool { return literalBeg < tok && tok < literalEnd }

// IsOperator reports whether the token corresponds to an operator or
// delimiter; it returns false otherwise.
func (tok Token) IsOperator() bool { return operatorBeg < tok && tok < operatorEnd }

// IsKeyword reports whether the token corresponds to a keyword; it returns
// false otherwise.
func (tok Token) IsKeyword() bool { return keywordBeg < tok && tok < keywordEnd }
