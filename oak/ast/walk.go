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

import "fmt"

// Walk traverses an AST in depth-first order: It starts by calling
// before(node); node must not be nil. If before returns true, Walk invokes
// walk recursively for each of the non-nil children of node, followed by a
// call of after. Both functions may be nil. If before is nil, it is assumed
// to always return true.
func Walk(node Node, before func(Node) bool, after func(Node)) {
	if before == nil {
		before = func(Node) bool { return true }
	}
	if after == nil {
		after = func(Node) {}
	}
	walk(node, before, after)
}

func walkList[N Node](list []N, before func(Node) bool, after func(Node)) {
	for _, node := range list {
		walk(node, before, after)
	}
}

func walk(node Node, before func(Node) bool, after func(Node)) {
	if !before(node) {
		return
	}

	switch n := node.(type) {
	// leaves
	case *BadExpr, *BoolLit, *LongLit, *StringLit, *EntityRef, *Unknown,
		*Variable, *Slot:
		// nothing to do

	case *IfExpr:
		walk(n.Cond, before, after)
		walk(n.Then, before, after)
		walk(n.Else, before, after)

	case *UnaryExpr:
		walk(n.X, before, after)

	case *BinaryExpr:
		walk(n.X, before, after)
		walk(n.Y, before, after)

	case *SelectorExpr:
		walk(n.X, before, after)

	case *HasExpr:
		walk(n.X, before, after)

	case *LikeExpr:
		walk(n.X, before, after)

	case *IsExpr:
		walk(n.X, before, after)

	case *CallExpr:
		walkList(n.Args, before, after)

	case *SetExpr:
		walkList(n.Elts, before, after)

	case *RecordExpr:
		walkList(n.Fields, before, after)

	case *Field:
		walk(n.Value, before, after)

	default:
		panic(fmt.Sprintf("Walk: unexpected node type %T", n))
	}

	after(node)
}
