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

// A Shape wraps a [View] to provide equality and hashing over the
// structural form of the expression only, excluding source positions and
// other provenance metadata. Use it to key associative containers by
// expression shape without being perturbed by where in the source text the
// expression occurred.
//
// Shape is a separate view rather than the primary equality because other
// callers legitimately need the full, position-sensitive comparison, for
// instance when diffing exact diagnostics.
type Shape struct {
	v View
}

// NewShape wraps a borrowed restricted expression in its shape-equality
// view.
func NewShape(v View) Shape {
	return Shape{v: v}
}

// View returns the wrapped view.
func (s Shape) View() View { return s.v }

// Equal compares the two wrapped expressions' structure, recursively,
// ignoring source positions.
func (s Shape) Equal(t Shape) bool {
	if s.v.expr == nil || t.v.expr == nil {
		return s.v.expr == t.v.expr
	}
	return equalExpr(s.v.expr, t.v.expr, false)
}

// Hash returns a hash consistent with [Shape.Equal]: structurally
// shape-equal instances always hash equal.
func (s Shape) Hash() uint64 {
	return hashOf(s.v.expr)
}
