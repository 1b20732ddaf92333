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

// Package scanner implements a scanner for Oak policy expression source
// text. It takes a []byte as source which can then be tokenized through
// repeated calls to the Scan method.
package scanner

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"oaklang.org/go/oak/errors"
	"oaklang.org/go/oak/token"
)

// A Scanner holds the Scanner's internal state while processing a given
// text. It can be allocated as part of another data structure but must be
// initialized via Init before use.
type Scanner struct {
	// immutable state
	file *token.File    // source file handle
	src  []byte         // source
	err  errors.Handler // error reporting; or nil
	mode Mode           // scanning mode

	// scanning state
	ch       rune // current character
	offset   int  // character offset
	rdOffset int  // reading offset (position after current character)

	// public state - ok to modify
	ErrorCount int // number of errors encountered
}

const bom = 0xFEFF // byte order mark, only permitted as very first character

// A Mode value is a set of flags (or 0). They control scanner behavior.
type Mode uint

const (
	// ScanComments causes comments to be returned as COMMENT tokens rather
	// than being skipped.
	ScanComments Mode = 1 << iota
)

// Init prepares the scanner s to tokenize the text src by setting the
// scanner at the beginning of src. The scanner uses the file f for position
// information and it adds line information for each line. It is ok to
// re-use the same file when re-scanning the same file as line information
// which is already present is ignored. Init causes a panic if the file size
// does not match the src size.
//
// Calls to Scan will invoke the error handler err if they encounter a
// syntax error and err is not nil. Also, for each error encountered, the
// Scanner field ErrorCount is incremented by one.
func (s *Scanner) Init(file *token.File, src []byte, err errors.Handler, mode Mode) {
	if file.Size() != len(src) {
		panic(fmt.Sprintf("file size (%d) does not match src len (%d)", file.Size(), len(src)))
	}
	s.file = file
	s.src = src
	s.err = err
	s.mode = mode

	s.ch = ' '
	s.offset = 0
	s.rdOffset = 0
	s.ErrorCount = 0

	s.next()
	if s.ch == bom {
		s.next() // ignore BOM at file beginning
	}
}

// next reads the next Unicode char into s.ch.
// s.ch < 0 means end-of-file.
func (s *Scanner) next() {
	if s.rdOffset < len(s.src) {
		s.offset = s.rdOffset
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		r, w := rune(s.src[s.rdOffset]), 1
		switch {
		case r == 0:
			s.errorf(s.offset, "illegal character NUL")
		case r >= utf8.RuneSelf:
			// not ASCII
			r, w = utf8.DecodeRune(s.src[s.rdOffset:])
			if r == utf8.RuneError && w == 1 {
				s.errorf(s.offset, "illegal UTF-8 encoding")
			} else if r == bom && s.offset > 0 {
				s.errorf(s.offset, "illegal byte order mark")
			}
		}
		s.rdOffset += w
		s.ch = r
	} else {
		s.offset = len(s.src)
		if s.ch == '\n' {
			s.file.AddLine(s.offset)
		}
		s.ch = -1 // eof
	}
}

func (s *Scanner) errorf(offs int, msg string, args ...any) {
	if s.err != nil {
		s.err(s.file.Pos(offs), msg, args)
	}
	s.ErrorCount++
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' ||
		ch >= utf8.RuneSelf && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func (s *Scanner) scanIdentifier() string {
	offs := s.offset
	for isLetter(s.ch) || isDigit(s.ch) || s.ch == '_' {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

func (s *Scanner) scanNumber() string {
	offs := s.offset
	for isDigit(s.ch) {
		s.next()
	}
	if isLetter(s.ch) {
		s.errorf(s.offset, "illegal character %#U in number", s.ch)
	}
	return string(s.src[offs:s.offset])
}

// scanEscape parses an escape sequence. In case of a syntax error, it stops
// at the offending character (without consuming it) and returns false.
func (s *Scanner) scanEscape(quote rune) bool {
	offs := s.offset

	var n int
	var base, max uint32
	switch s.ch {
	case 'n', 'r', 't', '\\', quote:
		s.next()
		return true
	case 'x':
		s.next()
		n, base, max = 2, 16, 255
	case 'u':
		s.next()
		n, base, max = 4, 16, unicode.MaxRune
	default:
		msg := "unknown escape sequence"
		if s.ch < 0 {
			msg = "escape sequence not terminated"
		}
		s.errorf(offs, msg)
		return false
	}

	var x uint32
	for n > 0 {
		d := uint32(digitVal(s.ch))
		if d >= base {
			msg := "illegal character %#U in escape sequence"
			if s.ch < 0 {
				msg = "escape sequence not terminated"
			}
			s.errorf(s.offset, msg, s.ch)
			return false
		}
		x = x*base + d
		s.next()
		n--
	}

	if x > max || 0xD800 <= x && x < 0xE000 {
		s.errorf(offs, "escape sequence is invalid Unicode code point")
		return false
	}
	return true
}

func digitVal(ch rune) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return int(ch - 'a' + 10)
	case 'A' <= ch && ch <= 'F':
		return int(ch - 'A' + 10)
	}
	return 16 // larger than any legal digit val
}

// scanString returns the literal text including the surrounding quotes.
func (s *Scanner) scanString() string {
	// opening '"' already consumed
	offs := s.offset - 1

	for {
		ch := s.ch
		if ch == '\n' || ch < 0 {
			s.errorf(offs, "string literal not terminated")
			break
		}
		s.next()
		if ch == '"' {
			break
		}
		if ch == '\\' {
			s.scanEscape('"')
		}
	}
	return string(s.src[offs:s.offset])
}

func (s *Scanner) scanComment() string {
	// initial '/' already consumed; s.ch == '/'
	offs := s.offset - 1
	s.next()
	for s.ch != '\n' && s.ch >= 0 {
		s.next()
	}
	return string(s.src[offs:s.offset])
}

func (s *Scanner) skipWhitespace() {
	for s.ch == ' ' || s.ch == '\t' || s.ch == '\n' || s.ch == '\r' {
		s.next()
	}
}

// Scan scans the next token and returns the token position, the token, and
// its literal string if applicable. The source end is indicated by EOF.
//
// If the returned token is a literal (IDENT, INT, STRING) or COMMENT, the
// literal string has the corresponding value. String literals include the
// surrounding quotes with escapes unresolved.
//
// If the returned token is a keyword, the literal string is the keyword.
//
// If the returned token is ILLEGAL, the literal string is the offending
// character.
//
// For more tolerant parsing, Scan will return a valid token if possible
// even if a syntax error was encountered. Thus, even if the resulting token
// sequence contains no illegal tokens, a client may not assume that no
// error occurred. Instead it must check the scanner's ErrorCount or the
// number of calls of the error handler, if there was one installed.
func (s *Scanner) Scan() (pos token.Pos, tok token.Token, lit string) {
scanAgain:
	s.skipWhitespace()

	// current token start
	pos = s.file.Pos(s.offset)

	switch ch := s.ch; {
	case isLetter(ch) || ch == '_':
		lit = s.scanIdentifier()
		if len(lit) > 1 {
			// keywords are longer than one letter - avoid lookup otherwise
			tok = token.Lookup(lit)
		} else {
			tok = token.IDENT
		}
	case isDigit(ch):
		tok, lit = token.INT, s.scanNumber()
	default:
		s.next() // always make progress
		switch ch {
		case -1:
			tok = token.EOF
		case '"':
			tok, lit = token.STRING, s.scanString()
		case ':':
			if s.ch == ':' {
				s.next()
				tok = token.COLON2
			} else {
				tok = token.COLON
			}
		case '.':
			tok = token.PERIOD
		case ',':
			tok = token.COMMA
		case '?':
			tok = token.QUEST
		case '(':
			tok = token.LPAREN
		case ')':
			tok = token.RPAREN
		case '[':
			tok = token.LBRACK
		case ']':
			tok = token.RBRACK
		case '{':
			tok = token.LBRACE
		case '}':
			tok = token.RBRACE
		case '+':
			tok = token.ADD
		case '-':
			tok = token.SUB
		case '*':
			tok = token.MUL
		case '/':
			if s.ch == '/' {
				comment := s.scanComment()
				if s.mode&ScanComments == 0 {
					goto scanAgain
				}
				tok, lit = token.COMMENT, comment
			} else {
				s.errorf(s.file.Offset(pos), "illegal character %#U", ch)
				tok, lit = token.ILLEGAL, string(ch)
			}
		case '<':
			tok = s.switch2(token.LSS, token.LEQ)
		case '>':
			tok = s.switch2(token.GTR, token.GEQ)
		case '!':
			tok = s.switch2(token.NOT, token.NEQ)
		case '=':
			if s.ch == '=' {
				s.next()
				tok = token.EQL
			} else {
				s.errorf(s.file.Offset(pos), "illegal token '='; expected '=='")
				tok, lit = token.ILLEGAL, string(ch)
			}
		case '&':
			if s.ch == '&' {
				s.next()
				tok = token.LAND
			} else {
				s.errorf(s.file.Offset(pos), "illegal token '&'; expected '&&'")
				tok, lit = token.ILLEGAL, string(ch)
			}
		case '|':
			if s.ch == '|' {
				s.next()
				tok = token.LOR
			} else {
				s.errorf(s.file.Offset(pos), "illegal token '|'; expected '||'")
				tok, lit = token.ILLEGAL, string(ch)
			}
		default:
			// next reports unexpected BOMs - don't repeat
			if ch != bom {
				s.errorf(s.file.Offset(pos), "illegal character %#U", ch)
			}
			tok, lit = token.ILLEGAL, string(ch)
		}
	}
	return pos, tok, lit
}

// Helper for scanning two-byte tokens such as >=.
func (s *Scanner) switch2(tok0, tok1 token.Token) token.Token {
	if s.ch == '=' {
		s.next()
		return tok1
	}
	return tok0
}
