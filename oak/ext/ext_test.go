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

package ext_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"oaklang.org/go/oak/ext"
	"oaklang.org/go/oak/types"
	"oaklang.org/go/oak/value"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		src   string
		units int64
	}{
		{"0.0", 0},
		{"1.5", 15000},
		{"-1.5", -15000},
		{"123.456", 1234560},
		{"3.1415", 31415},
		{"-922337203685477.5808", -9223372036854775808},
		{"922337203685477.5807", 9223372036854775807},
	}
	for _, tc := range tests {
		d, err := ext.ParseDecimal(tc.src)
		qt.Assert(t, qt.IsNil(err), qt.Commentf("source: %s", tc.src))
		qt.Assert(t, qt.Equals(d.Units(), tc.units), qt.Commentf("source: %s", tc.src))
	}
}

func TestParseDecimalErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"1",
		"1.",
		".5",
		"1.23456", // too many fraction digits
		"one.two",
		"1.2e3", // no exponent form
		"1e3.0",
		"+1.5", // no leading plus
		"1.+5",
		"1.-5",
		"- 1.5",
		"922337203685477.5808", // out of range
		"-922337203685477.5809",
	} {
		_, err := ext.ParseDecimal(src)
		qt.Assert(t, qt.IsNotNil(err), qt.Commentf("source: %s", src))
	}
}

func TestDecimalText(t *testing.T) {
	tests := []struct{ src, want string }{
		{"1.5000", "1.5"},
		{"1.5", "1.5"},
		{"-0.0100", "-0.01"},
		{"42.0000", "42.0"},
		{"3.1415", "3.1415"},
	}
	for _, tc := range tests {
		d, err := ext.ParseDecimal(tc.src)
		qt.Assert(t, qt.IsNil(err))

		fun, args := d.Constructor()
		qt.Assert(t, qt.Equals(fun, "decimal"))
		qt.Assert(t, qt.Equals(len(args), 1))
		qt.Assert(t, qt.IsTrue(args[0].Equal(value.String(tc.want))))
		qt.Assert(t, qt.Equals(d.String(), `decimal("`+tc.want+`")`))
	}
}

func TestDecimalEqual(t *testing.T) {
	a, _ := ext.ParseDecimal("1.50")
	b, _ := ext.ParseDecimal("1.5000")
	c, _ := ext.ParseDecimal("1.51")
	qt.Assert(t, qt.IsTrue(a.Equal(b)))
	qt.Assert(t, qt.IsFalse(a.Equal(c)))
	qt.Assert(t, qt.IsFalse(a.Equal(value.Long(1))))
	qt.Assert(t, qt.Equals(a.Kind(), types.ExtensionKind))
}

func TestParseIPAddr(t *testing.T) {
	a, err := ext.ParseIPAddr("192.0.2.1")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(a.Addr().String(), "192.0.2.1"))
	qt.Assert(t, qt.Equals(a.Prefix().Bits(), 32))

	n, err := ext.ParseIPAddr("192.0.2.0/24")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(n.Contains(a)))
	qt.Assert(t, qt.IsFalse(a.Contains(n)))

	v6, err := ext.ParseIPAddr("::1")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v6.Prefix().Bits(), 128))
	qt.Assert(t, qt.IsFalse(n.Contains(v6)))

	for _, src := range []string{"", "not an ip", "192.0.2.256", "192.0.2.0/33"} {
		_, err := ext.ParseIPAddr(src)
		qt.Assert(t, qt.IsNotNil(err), qt.Commentf("source: %s", src))
	}
}

func TestIPAddrConstructor(t *testing.T) {
	a, _ := ext.ParseIPAddr("10.1.2.3")
	fun, args := a.Constructor()
	qt.Assert(t, qt.Equals(fun, "ip"))
	qt.Assert(t, qt.IsTrue(args[0].Equal(value.String("10.1.2.3"))))

	n, _ := ext.ParseIPAddr("10.0.0.0/8")
	_, args = n.Constructor()
	qt.Assert(t, qt.IsTrue(args[0].Equal(value.String("10.0.0.0/8"))))

	// An address and the equivalent full-length range are distinct values.
	full, _ := ext.ParseIPAddr("10.1.2.3/32")
	qt.Assert(t, qt.IsFalse(a.Equal(full)))
}

func TestRegistry(t *testing.T) {
	f, ok := ext.Lookup("decimal")
	qt.Assert(t, qt.IsTrue(ok))

	v, err := f.Apply([]value.Value{value.String("1.5")})
	qt.Assert(t, qt.IsNil(err))
	want, _ := ext.ParseDecimal("1.5")
	qt.Assert(t, qt.IsTrue(v.Equal(want)))

	_, err = f.Apply([]value.Value{value.Long(1)})
	qt.Assert(t, qt.ErrorMatches(err, "decimal expects a string argument, got long"))
	_, err = f.Apply(nil)
	qt.Assert(t, qt.ErrorMatches(err, "decimal expects one argument, got 0"))

	_, ok = ext.Lookup("frob")
	qt.Assert(t, qt.IsFalse(ok))

	kind, ok := ext.ResultKind("ip")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(kind, types.ExtensionKind))
	_, ok = ext.ResultKind("frob")
	qt.Assert(t, qt.IsFalse(ok))
}
