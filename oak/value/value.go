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

// Package value defines the evaluator's value domain: fully evaluated
// values with no residual syntax, and partially evaluated values that may
// still contain unknowns.
//
// All values are immutable and safe for concurrent use.
package value

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"oaklang.org/go/oak/types"
)

// A Value is a fully evaluated value: a reduced literal, set, record, or
// extension-type value.
type Value interface {
	// Kind returns the kind of the value.
	Kind() types.Kind

	// Equal reports whether two values are semantically equal. Sets
	// compare elementwise in order; records compare by content
	// independent of field order.
	Equal(Value) bool

	// String renders the value as policy source text.
	String() string

	value()
}

func (Bool) value()      {}
func (Long) value()      {}
func (String) value()    {}
func (EntityUID) value() {}
func (Set) value()       {}
func (Record) value()    {}

// Bool is a boolean value.
type Bool bool

func (b Bool) Kind() types.Kind { return types.BoolKind }
func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }

func (b Bool) Equal(v Value) bool {
	b2, ok := v.(Bool)
	return ok && b == b2
}

// Long is a 64-bit signed integer value.
type Long int64

func (l Long) Kind() types.Kind { return types.LongKind }
func (l Long) String() string   { return strconv.FormatInt(int64(l), 10) }

func (l Long) Equal(v Value) bool {
	l2, ok := v.(Long)
	return ok && l == l2
}

// String is a string value.
type String string

func (s String) Kind() types.Kind { return types.StringKind }
func (s String) String() string   { return strconv.Quote(string(s)) }

func (s String) Equal(v Value) bool {
	s2, ok := v.(String)
	return ok && s == s2
}

// An EntityUID uniquely identifies an entity: a "::"-joined entity type
// path plus an identifier.
type EntityUID struct {
	Type string
	ID   string
}

func (e EntityUID) Kind() types.Kind { return types.EntityKind }

func (e EntityUID) String() string {
	return e.Type + "::" + strconv.Quote(e.ID)
}

func (e EntityUID) Equal(v Value) bool {
	e2, ok := v.(EntityUID)
	return ok && e == e2
}

// A Set is an ordered collection of values. Iteration order is the
// insertion order of construction.
type Set struct {
	elems []Value
}

// NewSet creates a set over the given elements, preserving their order.
func NewSet(elems ...Value) Set {
	return Set{elems: elems}
}

func (s Set) Kind() types.Kind { return types.SetKind }

// Len returns the number of elements in the set.
func (s Set) Len() int { return len(s.elems) }

// Elements yields the elements of the set in insertion order.
func (s Set) Elements() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		for _, e := range s.elems {
			if !yield(e) {
				return
			}
		}
	}
}

func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range s.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (s Set) Equal(v Value) bool {
	s2, ok := v.(Set)
	if !ok || len(s.elems) != len(s2.elems) {
		return false
	}
	for i, e := range s.elems {
		if !e.Equal(s2.elems[i]) {
			return false
		}
	}
	return true
}

// A Record maps unique string keys to values. Iteration order is the
// insertion order of construction.
type Record struct {
	keys   []string
	fields map[string]Value
}

// An Entry is a single key/value pair of a record.
type Entry struct {
	Key   string
	Value Value
}

// NewRecord creates a record from the given entries. It fails the moment
// any key repeats, independent of whether the associated values are equal.
func NewRecord(entries ...Entry) (Record, error) {
	r := Record{
		keys:   make([]string, 0, len(entries)),
		fields: make(map[string]Value, len(entries)),
	}
	for _, e := range entries {
		if _, ok := r.fields[e.Key]; ok {
			return Record{}, fmt.Errorf("duplicate key %q in record", e.Key)
		}
		r.keys = append(r.keys, e.Key)
		r.fields[e.Key] = e.Value
	}
	return r, nil
}

func (r Record) Kind() types.Kind { return types.RecordKind }

// Len returns the number of fields in the record.
func (r Record) Len() int { return len(r.keys) }

// Get returns the value for the given key, if present.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Fields yields the key/value pairs of the record in insertion order.
func (r Record) Fields() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, k := range r.keys {
			if !yield(k, r.fields[k]) {
				return
			}
		}
	}
}

func (r Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(k))
		b.WriteString(": ")
		b.WriteString(r.fields[k].String())
	}
	b.WriteByte('}')
	return b.String()
}

func (r Record) Equal(v Value) bool {
	r2, ok := v.(Record)
	if !ok || len(r.keys) != len(r2.keys) {
		return false
	}
	for k, v1 := range r.fields {
		v2, ok := r2.fields[k]
		if !ok || !v1.Equal(v2) {
			return false
		}
	}
	return true
}

// ExtValue is embedded by extension value implementations, marking them as
// part of the value domain and giving them [types.ExtensionKind].
// Embedding ExtValue alone is not enough: implementations must satisfy the
// full [Ext] interface, or conversion to expression form will refuse them.
type ExtValue struct{}

func (ExtValue) value()           {}
func (ExtValue) Kind() types.Kind { return types.ExtensionKind }

// An Ext is a value of an extension type, such as decimal or ipaddr.
// Extension values unwrap to restricted-expression form through their
// constructor call, recursively.
type Ext interface {
	Value

	// ExtName returns the name of the extension type.
	ExtName() string

	// Constructor returns the extension function call that reconstructs
	// the value: the function name and its fully evaluated arguments.
	Constructor() (fun string, args []Value)
}
