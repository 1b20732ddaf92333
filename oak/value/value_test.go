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

package value_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"oaklang.org/go/oak/ast"
	"oaklang.org/go/oak/types"
	"oaklang.org/go/oak/value"
)

func TestLiteralEquality(t *testing.T) {
	qt.Assert(t, qt.IsTrue(value.Bool(true).Equal(value.Bool(true))))
	qt.Assert(t, qt.IsFalse(value.Bool(true).Equal(value.Bool(false))))
	qt.Assert(t, qt.IsFalse(value.Bool(true).Equal(value.Long(1))))

	qt.Assert(t, qt.IsTrue(value.Long(7).Equal(value.Long(7))))
	qt.Assert(t, qt.IsFalse(value.Long(7).Equal(value.String("7"))))

	qt.Assert(t, qt.IsTrue(value.String("a").Equal(value.String("a"))))

	alice := value.EntityUID{Type: "User", ID: "alice"}
	qt.Assert(t, qt.IsTrue(alice.Equal(value.EntityUID{Type: "User", ID: "alice"})))
	qt.Assert(t, qt.IsFalse(alice.Equal(value.EntityUID{Type: "Group", ID: "alice"})))
	qt.Assert(t, qt.IsFalse(alice.Equal(value.EntityUID{Type: "User", ID: "bob"})))
}

func TestSetSemantics(t *testing.T) {
	s := value.NewSet(value.Long(1), value.Long(2))
	qt.Assert(t, qt.Equals(s.Len(), 2))
	qt.Assert(t, qt.Equals(s.Kind(), types.SetKind))

	// Element order is part of the identity.
	qt.Assert(t, qt.IsTrue(s.Equal(value.NewSet(value.Long(1), value.Long(2)))))
	qt.Assert(t, qt.IsFalse(s.Equal(value.NewSet(value.Long(2), value.Long(1)))))
	qt.Assert(t, qt.IsFalse(s.Equal(value.NewSet(value.Long(1)))))

	var got []value.Value
	for e := range s.Elements() {
		got = append(got, e)
	}
	qt.Assert(t, qt.Equals(len(got), 2))
	qt.Assert(t, qt.IsTrue(got[0].Equal(value.Long(1))))
	qt.Assert(t, qt.IsTrue(got[1].Equal(value.Long(2))))

	qt.Assert(t, qt.Equals(s.String(), "[1, 2]"))
}

func TestRecordSemantics(t *testing.T) {
	r, err := value.NewRecord(
		value.Entry{Key: "b", Value: value.Long(2)},
		value.Entry{Key: "a", Value: value.Long(1)},
	)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(r.Len(), 2))
	qt.Assert(t, qt.Equals(r.Kind(), types.RecordKind))

	// Iteration preserves insertion order.
	var keys []string
	for k := range r.Fields() {
		keys = append(keys, k)
	}
	qt.Assert(t, qt.DeepEquals(keys, []string{"b", "a"}))

	v, ok := r.Get("a")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(v.Equal(value.Long(1))))
	_, ok = r.Get("missing")
	qt.Assert(t, qt.IsFalse(ok))

	// Equality is content based: field order does not matter.
	r2, err := value.NewRecord(
		value.Entry{Key: "a", Value: value.Long(1)},
		value.Entry{Key: "b", Value: value.Long(2)},
	)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(r.Equal(r2)))

	r3, err := value.NewRecord(value.Entry{Key: "a", Value: value.Long(1)})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(r.Equal(r3)))
}

func TestRecordDuplicateKey(t *testing.T) {
	_, err := value.NewRecord(
		value.Entry{Key: "foo", Value: value.Long(1)},
		value.Entry{Key: "foo", Value: value.Long(1)},
	)
	qt.Assert(t, qt.ErrorMatches(err, `duplicate key "foo" in record`))
}

func TestPartial(t *testing.T) {
	c := value.Complete(value.Long(42))
	qt.Assert(t, qt.IsTrue(c.IsComplete()))
	v, ok := c.Value()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(v.Equal(value.Long(42))))
	_, ok = c.Expr()
	qt.Assert(t, qt.IsFalse(ok))

	r := value.Residual(ast.NewUnknown("pool"))
	qt.Assert(t, qt.IsFalse(r.IsComplete()))
	_, ok = r.Value()
	qt.Assert(t, qt.IsFalse(ok))
	e, ok := r.Expr()
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ast.Format(e), `unknown("pool")`))
}

func TestValueStrings(t *testing.T) {
	r, err := value.NewRecord(
		value.Entry{Key: "a", Value: value.String("x")},
		value.Entry{Key: "n", Value: value.Long(-1)},
	)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(r.String(), `{"a": "x", "n": -1}`))

	uid := value.EntityUID{Type: "User", ID: "al ice"}
	qt.Assert(t, qt.Equals(uid.String(), `User::"al ice"`))
}
