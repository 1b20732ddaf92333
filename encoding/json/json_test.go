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

package json_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"oaklang.org/go/encoding/json"
	"oaklang.org/go/oak/ext"
	"oaklang.org/go/oak/restricted"
	"oaklang.org/go/oak/value"
)

func TestMarshalRestricted(t *testing.T) {
	tests := []struct{ src, want string }{
		{`true`, `true`},
		{`-42`, `-42`},
		{`"a\nb"`, `"a\nb"`},
		{`User::"alice"`, `{"__entity":{"type":"User","id":"alice"}}`},
		{`[]`, `[]`},
		{`[1, "a", [true]]`, `[1,"a",[true]]`},
		{`{}`, `{}`},
		{`{ b: 2, a: 1 }`, `{"b":2,"a":1}`},
		{`{ "quoted key": [] }`, `{"quoted key":[]}`},
		{`decimal("3.5")`, `{"__extn":{"fn":"decimal","arg":"3.5"}}`},
		{`frob(1, 2)`, `{"__extn":{"fn":"frob","args":[1,2]}}`},
		{`frob()`, `{"__extn":{"fn":"frob","args":[]}}`},
		{
			`{ net: ip("10.0.0.0/8"), on: true }`,
			`{"net":{"__extn":{"fn":"ip","arg":"10.0.0.0/8"}},"on":true}`,
		},
	}
	for _, tc := range tests {
		e, err := restricted.Parse("test", []byte(tc.src))
		qt.Assert(t, qt.IsNil(err), qt.Commentf("source: %s", tc.src))

		data, err := json.MarshalRestricted(e.View())
		qt.Assert(t, qt.IsNil(err), qt.Commentf("source: %s", tc.src))
		qt.Assert(t, qt.Equals(string(data), tc.want), qt.Commentf("source: %s", tc.src))
	}
}

func TestMarshalRestrictedUnknown(t *testing.T) {
	e, err := restricted.Parse("test", []byte(`{ a: [unknown("pool")] }`))
	qt.Assert(t, qt.IsNil(err))

	_, err = json.MarshalRestricted(e.View())
	qt.Assert(t, qt.ErrorMatches(err, `json: cannot render unknown "pool"`))
}

func TestMarshalValue(t *testing.T) {
	dec, err := ext.ParseDecimal("-0.5")
	qt.Assert(t, qt.IsNil(err))

	rec, err := value.NewRecord(
		value.Entry{Key: "who", Value: value.EntityUID{Type: "User", ID: "alice"}},
		value.Entry{Key: "limit", Value: dec},
		value.Entry{Key: "tags", Value: value.NewSet(value.String("a"), value.String("b"))},
	)
	qt.Assert(t, qt.IsNil(err))

	data, err := json.Marshal(rec)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(data),
		`{"who":{"__entity":{"type":"User","id":"alice"}},`+
			`"limit":{"__extn":{"fn":"decimal","arg":"-0.5"}},`+
			`"tags":["a","b"]}`))
}

func TestMarshalValueMatchesRestricted(t *testing.T) {
	// A value and its restricted conversion encode identically.
	v := value.NewSet(value.Long(1), value.String("x"))
	fromValue, err := json.Marshal(v)
	qt.Assert(t, qt.IsNil(err))
	fromExpr, err := json.MarshalRestricted(restricted.FromValue(v).View())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(string(fromValue), string(fromExpr)))
}
