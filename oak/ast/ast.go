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

// Package ast declares the types used to represent syntax trees for Oak
// policy expressions.
//
// All nodes contain position information marking the beginning of the
// corresponding source text segment; it is accessible via the Pos accessor
// method. Nodes constructed programmatically carry [token.NoPos].
//
// Nodes are immutable once built. Subtrees may be shared between multiple
// expressions; sharing is acyclic and never observable through the API.
package ast

import (
	"oaklang.org/go/oak/token"
)

// A Node represents any node in the abstract syntax tree.
type Node interface {
	Pos() token.Pos // position of first character belonging to the node
	End() token.Pos // position of first character immediately after the node
}

// An Expr is implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

func (*BadExpr) exprNode()    {}
func (*BoolLit) exprNode()    {}
func (*LongLit) exprNode()    {}
func (*StringLit) exprNode()  {}
func (*EntityRef) exprNode()  {}
func (*Unknown) exprNode()    {}
func (*Variable) exprNode()   {}
func (*Slot) exprNode()       {}
func (*IfExpr) exprNode()     {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*SelectorExpr) exprNode() {}
func (*HasExpr) exprNode()    {}
func (*LikeExpr) exprNode()   {}
func (*IsExpr) exprNode()     {}
func (*CallExpr) exprNode()   {}
func (*SetExpr) exprNode()    {}
func (*RecordExpr) exprNode() {}

// A BadExpr node is a placeholder for expressions containing syntax errors
// for which no correct expression nodes can be created.
type BadExpr struct {
	From, To token.Pos // position range of bad expression
}

// A BoolLit node represents the literal true or false.
type BoolLit struct {
	ValuePos token.Pos
	Value    bool
}

// A LongLit node represents a 64-bit signed integer literal.
type LongLit struct {
	ValuePos token.Pos
	Src      string // literal source text; empty for programmatic nodes
	Value    int64
}

// A StringLit node represents a string literal. Value holds the string the
// literal denotes, with quotes and escapes already resolved.
type StringLit struct {
	ValuePos token.Pos
	Value    string
	EndPos   token.Pos // position just after the closing quote
}

// An EntityRef node represents an entity reference literal, such as
//
//	PhotoApp::User::"alice"
//
// Type holds the "::"-joined entity type path and ID the unescaped entity
// identifier.
type EntityRef struct {
	TypePos token.Pos
	Type    string
	ID      string
	EndPos  token.Pos // position just after the closing quote of ID
}

// An Unknown node is a placeholder standing for a value not yet known,
// produced during partial evaluation or written as unknown("name").
type Unknown struct {
	UnknownPos token.Pos
	Name       string
	EndPos     token.Pos
}

// A Variable node references one of the request variables principal,
// action, resource, or context.
type Variable struct {
	NamePos token.Pos
	Name    string
}

// A Slot node represents a template slot such as ?principal.
type Slot struct {
	QuestPos token.Pos // position of "?"
	Name     string
}

// An IfExpr node represents an if-then-else expression.
type IfExpr struct {
	If   token.Pos // position of "if"
	Cond Expr
	Then Expr
	Else Expr
}

// A UnaryExpr node represents a unary expression.
type UnaryExpr struct {
	OpPos token.Pos   // position of Op
	Op    token.Token // operator: NOT or SUB
	X     Expr        // operand
}

// A BinaryExpr node represents a binary expression, including the
// short-circuiting operators && and || and the containment operator in.
type BinaryExpr struct {
	X     Expr        // left operand
	OpPos token.Pos   // position of Op
	Op    token.Token // operator
	Y     Expr        // right operand
}

// A SelectorExpr node represents an attribute access, either x.attr or
// x["attr"].
type SelectorExpr struct {
	X      Expr // expression
	SelPos token.Pos
	Sel    string // attribute name
	EndPos token.Pos
}

// A HasExpr node represents an attribute presence test: x has attr.
type HasExpr struct {
	X       Expr
	HasPos  token.Pos
	AttrPos token.Pos
	Attr    string
	EndPos  token.Pos
}

// A LikeExpr node represents a wildcard pattern match: x like "pat*".
// Pattern is the unescaped pattern text; '*' matches any sequence.
type LikeExpr struct {
	X       Expr
	LikePos token.Pos
	PatPos  token.Pos
	Pattern string
	EndPos  token.Pos
}

// An IsExpr node represents an entity type test: x is Type.
type IsExpr struct {
	X       Expr
	IsPos   token.Pos
	TypePos token.Pos
	Type    string // "::"-joined entity type path
	EndPos  token.Pos
}

// A CallExpr node represents an extension function call, such as
// decimal("12.34"). Fun is the possibly "::"-qualified function name.
type CallExpr struct {
	FunPos token.Pos
	Fun    string
	Lparen token.Pos // position of "("
	Args   []Expr    // function arguments; or nil
	Rparen token.Pos // position of ")"
}

// A SetExpr node represents a set literal. Element order is preserved and
// significant for structural equality.
type SetExpr struct {
	Lbrack token.Pos // position of "["
	Elts   []Expr    // set elements; or nil
	Rbrack token.Pos // position of "]"
}

// A RecordExpr node represents a record literal. Fields appear in source
// order. The general grammar permits duplicate keys; uniqueness is enforced
// where records are turned into restricted expressions or values.
type RecordExpr struct {
	Lbrace token.Pos // position of "{"
	Fields []*Field  // list of fields; or nil
	Rbrace token.Pos // position of "}"
}

// A Field is a single key/value pair in a [RecordExpr].
type Field struct {
	KeyPos token.Pos
	Key    string // unescaped key
	Colon  token.Pos
	Value  Expr
}

func (f *Field) Pos() token.Pos { return f.KeyPos }
func (f *Field) End() token.Pos { return f.Value.End() }

// Pos and End implementations for expression nodes.

func (x *BadExpr) Pos() token.Pos      { return x.From }
func (x *BoolLit) Pos() token.Pos      { return x.ValuePos }
func (x *LongLit) Pos() token.Pos      { return x.ValuePos }
func (x *StringLit) Pos() token.Pos    { return x.ValuePos }
func (x *EntityRef) Pos() token.Pos    { return x.TypePos }
func (x *Unknown) Pos() token.Pos      { return x.UnknownPos }
func (x *Variable) Pos() token.Pos     { return x.NamePos }
func (x *Slot) Pos() token.Pos         { return x.QuestPos }
func (x *IfExpr) Pos() token.Pos       { return x.If }
func (x *UnaryExpr) Pos() token.Pos    { return x.OpPos }
func (x *BinaryExpr) Pos() token.Pos   { return x.X.Pos() }
func (x *SelectorExpr) Pos() token.Pos { return x.X.Pos() }
func (x *HasExpr) Pos() token.Pos      { return x.X.Pos() }
func (x *LikeExpr) Pos() token.Pos     { return x.X.Pos() }
func (x *IsExpr) Pos() token.Pos       { return x.X.Pos() }
func (x *CallExpr) Pos() token.Pos     { return x.FunPos }
func (x *SetExpr) Pos() token.Pos      { return x.Lbrack }
func (x *RecordExpr) Pos() token.Pos   { return x.Lbrace }

func (x *BadExpr) End() token.Pos { return x.To }
func (x *BoolLit) End() token.Pos {
	if !x.Value {
		return x.ValuePos.Add(len("false"))
	}
	return x.ValuePos.Add(len("true"))
}
func (x *LongLit) End() token.Pos      { return x.ValuePos.Add(len(x.Src)) }
func (x *StringLit) End() token.Pos    { return x.EndPos }
func (x *EntityRef) End() token.Pos    { return x.EndPos }
func (x *Unknown) End() token.Pos      { return x.EndPos }
func (x *Variable) End() token.Pos     { return x.NamePos.Add(len(x.Name)) }
func (x *Slot) End() token.Pos         { return x.QuestPos.Add(1 + len(x.Name)) }
func (x *IfExpr) End() token.Pos       { return x.Else.End() }
func (x *UnaryExpr) End() token.Pos    { return x.X.End() }
func (x *BinaryExpr) End() token.Pos   { return x.Y.End() }
func (x *SelectorExpr) End() token.Pos { return x.EndPos }
func (x *HasExpr) End() token.Pos      { return x.EndPos }
func (x *LikeExpr) End() token.Pos     { return x.EndPos }
func (x *IsExpr) End() token.Pos       { return x.EndPos }
func (x *CallExpr) End() token.Pos     { return x.Rparen.Add(1) }
func (x *SetExpr) End() token.Pos      { return x.Rbrack.Add(1) }
func (x *RecordExpr) End() token.Pos   { return x.Rbrace.Add(1) }

// Convenience constructors for programmatic trees. All carry token.NoPos.

// NewBool creates a new boolean literal without position.
func NewBool(b bool) *BoolLit { return &BoolLit{Value: b} }

// NewLong creates a new integer literal without position.
func NewLong(v int64) *LongLit { return &LongLit{Value: v} }

// NewString creates a new string literal without position.
func NewString(s string) *StringLit { return &StringLit{Value: s} }

// NewEntityRef creates a new entity reference literal without position.
func NewEntityRef(typ, id string) *EntityRef {
	return &EntityRef{Type: typ, ID: id}
}

// NewUnknown creates a new unknown placeholder without position.
func NewUnknown(name string) *Unknown { return &Unknown{Name: name} }

// NewCall creates a new extension function call without position.
func NewCall(fun string, args ...Expr) *CallExpr {
	return &CallExpr{Fun: fun, Args: args}
}

// NewSet creates a new set literal without position.
func NewSet(elts ...Expr) *SetExpr { return &SetExpr{Elts: elts} }

// NewRecord creates a new record literal without position from alternating
// key/value arguments. The general grammar permits duplicate keys, so no
// uniqueness check happens here.
func NewRecord(fields ...*Field) *RecordExpr {
	return &RecordExpr{Fields: fields}
}

// NewField creates a record field without position.
func NewField(key string, value Expr) *Field {
	return &Field{Key: key, Value: value}
}
