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
	"encoding/binary"
	"hash"
	"hash/fnv"

	"oaklang.org/go/oak/ast"
	"oaklang.org/go/oak/token"
)

// Equal reports full structural equality of two views, including source
// positions: two otherwise identical trees read from different places in a
// file compare unequal. Use [Shape] for position-insensitive comparison.
func (v View) Equal(w View) bool {
	if v.expr == nil || w.expr == nil {
		return v.expr == w.expr
	}
	return equalExpr(v.expr, w.expr, true)
}

func equalPos(a, b token.Pos, withPos bool) bool {
	return !withPos || a == b
}

// equalExpr compares two expression trees structurally. When withPos is
// set, source positions and literal source text take part in the
// comparison; otherwise only the shape counts.
func equalExpr(a, b ast.Expr, withPos bool) bool {
	switch x := a.(type) {
	case *ast.BoolLit:
		y, ok := b.(*ast.BoolLit)
		return ok && x.Value == y.Value &&
			equalPos(x.ValuePos, y.ValuePos, withPos)

	case *ast.LongLit:
		y, ok := b.(*ast.LongLit)
		if !ok || x.Value != y.Value {
			return false
		}
		if withPos && (x.Src != y.Src || x.ValuePos != y.ValuePos) {
			return false
		}
		return true

	case *ast.StringLit:
		y, ok := b.(*ast.StringLit)
		return ok && x.Value == y.Value &&
			equalPos(x.ValuePos, y.ValuePos, withPos) &&
			equalPos(x.EndPos, y.EndPos, withPos)

	case *ast.EntityRef:
		y, ok := b.(*ast.EntityRef)
		return ok && x.Type == y.Type && x.ID == y.ID &&
			equalPos(x.TypePos, y.TypePos, withPos) &&
			equalPos(x.EndPos, y.EndPos, withPos)

	case *ast.Unknown:
		y, ok := b.(*ast.Unknown)
		return ok && x.Name == y.Name &&
			equalPos(x.UnknownPos, y.UnknownPos, withPos) &&
			equalPos(x.EndPos, y.EndPos, withPos)

	case *ast.Variable:
		y, ok := b.(*ast.Variable)
		return ok && x.Name == y.Name &&
			equalPos(x.NamePos, y.NamePos, withPos)

	case *ast.Slot:
		y, ok := b.(*ast.Slot)
		return ok && x.Name == y.Name &&
			equalPos(x.QuestPos, y.QuestPos, withPos)

	case *ast.IfExpr:
		y, ok := b.(*ast.IfExpr)
		return ok && equalPos(x.If, y.If, withPos) &&
			equalExpr(x.Cond, y.Cond, withPos) &&
			equalExpr(x.Then, y.Then, withPos) &&
			equalExpr(x.Else, y.Else, withPos)

	case *ast.UnaryExpr:
		y, ok := b.(*ast.UnaryExpr)
		return ok && x.Op == y.Op &&
			equalPos(x.OpPos, y.OpPos, withPos) &&
			equalExpr(x.X, y.X, withPos)

	case *ast.BinaryExpr:
		y, ok := b.(*ast.BinaryExpr)
		return ok && x.Op == y.Op &&
			equalPos(x.OpPos, y.OpPos, withPos) &&
			equalExpr(x.X, y.X, withPos) &&
			equalExpr(x.Y, y.Y, withPos)

	case *ast.SelectorExpr:
		y, ok := b.(*ast.SelectorExpr)
		return ok && x.Sel == y.Sel &&
			equalPos(x.SelPos, y.SelPos, withPos) &&
			equalExpr(x.X, y.X, withPos)

	case *ast.HasExpr:
		y, ok := b.(*ast.HasExpr)
		return ok && x.Attr == y.Attr &&
			equalPos(x.HasPos, y.HasPos, withPos) &&
			equalExpr(x.X, y.X, withPos)

	case *ast.LikeExpr:
		y, ok := b.(*ast.LikeExpr)
		return ok && x.Pattern == y.Pattern &&
			equalPos(x.LikePos, y.LikePos, withPos) &&
			equalExpr(x.X, y.X, withPos)

	case *ast.IsExpr:
		y, ok := b.(*ast.IsExpr)
		return ok && x.Type == y.Type &&
			equalPos(x.IsPos, y.IsPos, withPos) &&
			equalExpr(x.X, y.X, withPos)

	case *ast.CallExpr:
		y, ok := b.(*ast.CallExpr)
		if !ok || x.Fun != y.Fun || len(x.Args) != len(y.Args) {
			return false
		}
		if !equalPos(x.FunPos, y.FunPos, withPos) {
			return false
		}
		for i := range x.Args {
			if !equalExpr(x.Args[i], y.Args[i], withPos) {
				return false
			}
		}
		return true

	case *ast.SetExpr:
		y, ok := b.(*ast.SetExpr)
		if !ok || len(x.Elts) != len(y.Elts) {
			return false
		}
		if !equalPos(x.Lbrack, y.Lbrack, withPos) || !equalPos(x.Rbrack, y.Rbrack, withPos) {
			return false
		}
		for i := range x.Elts {
			if !equalExpr(x.Elts[i], y.Elts[i], withPos) {
				return false
			}
		}
		return true

	case *ast.RecordExpr:
		y, ok := b.(*ast.RecordExpr)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false
		}
		if !equalPos(x.Lbrace, y.Lbrace, withPos) || !equalPos(x.Rbrace, y.Rbrace, withPos) {
			return false
		}
		for i := range x.Fields {
			f, g := x.Fields[i], y.Fields[i]
			if f.Key != g.Key || !equalPos(f.KeyPos, g.KeyPos, withPos) {
				return false
			}
			if !equalExpr(f.Value, g.Value, withPos) {
				return false
			}
		}
		return true

	case *ast.BadExpr:
		y, ok := b.(*ast.BadExpr)
		return ok && equalPos(x.From, y.From, withPos) &&
			equalPos(x.To, y.To, withPos)
	}
	return false
}

// Type tags for hashing. Values are arbitrary but must be distinct and
// stable within a process.
const (
	tagBool byte = iota + 1
	tagLong
	tagString
	tagEntity
	tagUnknown
	tagSet
	tagRecord
	tagCall
)

func hashExpr(h hash.Hash64, e ast.Expr) {
	var buf [8]byte
	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	writeStr := func(s string) {
		writeInt(int64(len(s)))
		h.Write([]byte(s))
	}

	switch x := e.(type) {
	case *ast.BoolLit:
		h.Write([]byte{tagBool})
		if x.Value {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case *ast.LongLit:
		h.Write([]byte{tagLong})
		writeInt(x.Value)
	case *ast.StringLit:
		h.Write([]byte{tagString})
		writeStr(x.Value)
	case *ast.EntityRef:
		h.Write([]byte{tagEntity})
		writeStr(x.Type)
		writeStr(x.ID)
	case *ast.Unknown:
		h.Write([]byte{tagUnknown})
		writeStr(x.Name)
	case *ast.SetExpr:
		h.Write([]byte{tagSet})
		writeInt(int64(len(x.Elts)))
		for _, elt := range x.Elts {
			hashExpr(h, elt)
		}
	case *ast.RecordExpr:
		h.Write([]byte{tagRecord})
		writeInt(int64(len(x.Fields)))
		for _, f := range x.Fields {
			writeStr(f.Key)
			hashExpr(h, f.Value)
		}
	case *ast.CallExpr:
		h.Write([]byte{tagCall})
		writeStr(x.Fun)
		writeInt(int64(len(x.Args)))
		for _, arg := range x.Args {
			hashExpr(h, arg)
		}
	}
}

func hashOf(e ast.Expr) uint64 {
	h := fnv.New64a()
	if e != nil {
		hashExpr(h, e)
	}
	return h.Sum64()
}
