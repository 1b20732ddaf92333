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

// Package parser implements a parser for Oak policy expression source text.
// Input is provided as source text and the output is an abstract syntax
// tree representing the source; see the documentation of [oak/ast] for the
// node types.
package parser

import (
	"oaklang.org/go/oak/ast"
	"oaklang.org/go/oak/token"
)

// ParseExpr parses a single expression from src and returns the
// corresponding [ast.Expr] node. The filename is only used when recording
// position information.
//
// The returned tree may be incomplete if errors were found. The error, if
// non-nil, is an [oaklang.org/go/oak/errors.List] sorted by source
// position.
func ParseExpr(filename string, src []byte) (ast.Expr, error) {
	var p parser
	p.init(filename, src)

	e := p.parseExpr()
	if p.tok != token.EOF {
		p.errorExpected(p.pos, "end of expression")
	}

	p.errors.Sort()
	return e, p.errors.Err()
}
