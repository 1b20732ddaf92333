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

package restricted_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"oaklang.org/go/oak/restricted"
)

func shapeOf(t *testing.T, src string) restricted.Shape {
	t.Helper()
	return restricted.NewShape(mustParse(t, src).View())
}

func TestShapeIgnoresPositions(t *testing.T) {
	// The same source parsed twice yields distinct position tables, so the
	// full comparison fails but the shape comparison succeeds.
	a := mustParse(t, `{ a: [1, 2], b: unknown("x") }`)
	b := mustParse(t, `{ a: [1, 2], b: unknown("x") }`)
	qt.Assert(t, qt.IsFalse(a.View().Equal(b.View())))

	sa, sb := restricted.NewShape(a.View()), restricted.NewShape(b.View())
	qt.Assert(t, qt.IsTrue(sa.Equal(sb)))
	qt.Assert(t, qt.Equals(sa.Hash(), sb.Hash()))

	// Shifted whitespace changes positions but not shape.
	c := shapeOf(t, `{   a: [ 1,2 ],    b: unknown("x")   }`)
	qt.Assert(t, qt.IsTrue(sa.Equal(c)))
	qt.Assert(t, qt.Equals(sa.Hash(), c.Hash()))

	// A programmatically built tree has no positions at all.
	built, err := restricted.Record(
		restricted.Entry{Key: "a", Value: restricted.Set(restricted.Long(1), restricted.Long(2))},
		restricted.Entry{Key: "b", Value: restricted.Unknown("x")},
	)
	qt.Assert(t, qt.IsNil(err))
	sd := restricted.NewShape(built.View())
	qt.Assert(t, qt.IsTrue(sa.Equal(sd)))
	qt.Assert(t, qt.Equals(sa.Hash(), sd.Hash()))
}

func TestShapeDistinguishesStructure(t *testing.T) {
	tests := []struct{ a, b string }{
		// Element and field order is significant.
		{`[1, 2]`, `[2, 1]`},
		{`{ a: 1, b: 2 }`, `{ b: 2, a: 1 }`},
		{`1`, `"1"`},
		{`true`, `1`},
		{`User::"alice"`, `User::"bob"`},
		{`unknown("x")`, `unknown("y")`},
		{`decimal("1.0")`, `ip("1.0.0.0")`},
		{`[1]`, `[1, 1]`},
	}
	for _, tc := range tests {
		a, b := shapeOf(t, tc.a), shapeOf(t, tc.b)
		qt.Assert(t, qt.IsFalse(a.Equal(b)), qt.Commentf("%s vs %s", tc.a, tc.b))
	}
}

func TestShapeHashUsableAsKey(t *testing.T) {
	seen := map[uint64]restricted.Shape{}
	for _, src := range []string{`1`, `2`, `"1"`, `[1]`, `{ a: 1 }`} {
		s := shapeOf(t, src)
		prev, collision := seen[s.Hash()]
		qt.Assert(t, qt.IsFalse(collision), qt.Commentf("%s collides with %s", src, prev.View().Source()))
		seen[s.Hash()] = s
	}
}

func TestFullEqualityIncludesPositions(t *testing.T) {
	e := mustParse(t, `[1, 2]`)
	qt.Assert(t, qt.IsTrue(e.View().Equal(e.View())))
	qt.Assert(t, qt.IsTrue(e.Equal(e)))

	// Built trees all carry no position, so structural identity suffices.
	x := restricted.Set(restricted.Long(1))
	y := restricted.Set(restricted.Long(1))
	qt.Assert(t, qt.IsTrue(x.Equal(y)))
	qt.Assert(t, qt.IsFalse(x.Equal(restricted.Set(restricted.Long(2)))))
}
