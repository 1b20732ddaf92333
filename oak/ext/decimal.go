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

package ext

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"

	"oaklang.org/go/oak/value"
)

// A Decimal is a fixed-point decimal number with exactly four digits of
// fraction, stored as the number of 1/10000 units. Its range is that of an
// int64 over those units.
type Decimal struct {
	value.ExtValue
	units int64
}

// fracDigits is the fixed fraction width of the decimal type.
const fracDigits = 4

var decimalCtx = apd.BaseContext.WithPrecision(30)

// ParseDecimal parses a decimal value from its source representation: an
// optionally signed integer part followed by one to four fraction digits,
// such as "-12.34".
func ParseDecimal(s string) (Decimal, error) {
	intPart, fracPart, ok := strings.Cut(s, ".")
	if !ok || !isDigits(strings.TrimPrefix(intPart, "-")) ||
		len(fracPart) > fracDigits || !isDigits(fracPart) {
		return Decimal{}, fmt.Errorf("%q is not a valid decimal: expected an integer part and 1 to %d fraction digits", s, fracDigits)
	}

	d, cond, err := apd.NewFromString(s)
	if err != nil || cond.Any() {
		return Decimal{}, fmt.Errorf("%q is not a valid decimal", s)
	}
	var units apd.Decimal
	if _, err := decimalCtx.Mul(&units, d, apd.New(1, fracDigits)); err != nil {
		return Decimal{}, fmt.Errorf("%q is not a valid decimal: %v", s, err)
	}
	i, err := units.Int64()
	if err != nil {
		return Decimal{}, fmt.Errorf("decimal %q out of range", s)
	}
	return Decimal{units: i}, nil
}

// isDigits reports whether s is one or more ASCII digits. Decimal source
// form admits no exponent, no leading '+', and no spaces, so both halves
// around the '.' must pass this before apd sees the string.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Units returns the number of 1/10000 units of d.
func (d Decimal) Units() int64 { return d.units }

// ExtName implements [value.Ext].
func (d Decimal) ExtName() string { return "decimal" }

// Constructor implements [value.Ext]: decimal values reconstruct as
// decimal("...") calls.
func (d Decimal) Constructor() (string, []value.Value) {
	return "decimal", []value.Value{value.String(d.text())}
}

// text renders d in source form, trimming trailing fraction zeros but
// always keeping at least one fraction digit.
func (d Decimal) text() string {
	a := apd.New(d.units, -fracDigits)
	s := a.Text('f')
	if !strings.Contains(s, ".") {
		return s + ".0"
	}
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

func (d Decimal) String() string {
	return fmt.Sprintf("decimal(%q)", d.text())
}

func (d Decimal) Equal(v value.Value) bool {
	d2, ok := v.(Decimal)
	return ok && d.units == d2.units
}
