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

// Package json converts Oak values and restricted expressions to "natural"
// JSON: booleans, numbers, strings, arrays, and objects map directly;
// entity references are rendered as {"__entity": ...} and extension values
// as {"__extn": ...} escape objects. Record field order is preserved.
package json

import (
	gojson "encoding/json"
	"fmt"
	"strconv"
	"strings"

	"oaklang.org/go/oak/restricted"
	"oaklang.org/go/oak/value"
)

// Marshal renders a fully evaluated value as natural JSON.
func Marshal(v value.Value) ([]byte, error) {
	var b strings.Builder
	if err := appendValue(&b, v); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// MarshalRestricted renders a restricted expression as natural JSON.
// Expressions containing unknown markers cannot be rendered.
func MarshalRestricted(v restricted.View) ([]byte, error) {
	var b strings.Builder
	if err := appendView(&b, v); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func appendString(b *strings.Builder, s string) {
	data, _ := gojson.Marshal(s)
	b.Write(data)
}

func appendEntity(b *strings.Builder, uid value.EntityUID) {
	b.WriteString(`{"__entity":{"type":`)
	appendString(b, uid.Type)
	b.WriteString(`,"id":`)
	appendString(b, uid.ID)
	b.WriteString(`}}`)
}

func appendExtnHeader(b *strings.Builder, fun string, nargs int) {
	b.WriteString(`{"__extn":{"fn":`)
	appendString(b, fun)
	if nargs == 1 {
		b.WriteString(`,"arg":`)
	} else {
		b.WriteString(`,"args":[`)
	}
}

func appendExtnFooter(b *strings.Builder, nargs int) {
	if nargs != 1 {
		b.WriteString(`]`)
	}
	b.WriteString(`}}`)
}

func appendValue(b *strings.Builder, v value.Value) error {
	switch x := v.(type) {
	case value.Bool:
		b.WriteString(strconv.FormatBool(bool(x)))
	case value.Long:
		b.WriteString(strconv.FormatInt(int64(x), 10))
	case value.String:
		appendString(b, string(x))
	case value.EntityUID:
		appendEntity(b, x)

	case value.Set:
		b.WriteByte('[')
		first := true
		for e := range x.Elements() {
			if !first {
				b.WriteByte(',')
			}
			first = false
			if err := appendValue(b, e); err != nil {
				return err
			}
		}
		b.WriteByte(']')

	case value.Record:
		b.WriteByte('{')
		first := true
		for k, e := range x.Fields() {
			if !first {
				b.WriteByte(',')
			}
			first = false
			appendString(b, k)
			b.WriteByte(':')
			if err := appendValue(b, e); err != nil {
				return err
			}
		}
		b.WriteByte('}')

	case value.Ext:
		fun, args := x.Constructor()
		appendExtnHeader(b, fun, len(args))
		for i, a := range args {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := appendValue(b, a); err != nil {
				return err
			}
		}
		appendExtnFooter(b, len(args))

	default:
		return fmt.Errorf("json: unexpected value type %T", v)
	}
	return nil
}

func appendView(b *strings.Builder, v restricted.View) error {
	if x, ok := v.Bool(); ok {
		b.WriteString(strconv.FormatBool(x))
		return nil
	}
	if x, ok := v.Long(); ok {
		b.WriteString(strconv.FormatInt(x, 10))
		return nil
	}
	if x, ok := v.String(); ok {
		appendString(b, x)
		return nil
	}
	if uid, ok := v.EntityUID(); ok {
		appendEntity(b, uid)
		return nil
	}
	if name, ok := v.Unknown(); ok {
		return fmt.Errorf("json: cannot render unknown %q", name)
	}
	if elems, ok := v.SetElements(); ok {
		b.WriteByte('[')
		first := true
		for e := range elems {
			if !first {
				b.WriteByte(',')
			}
			first = false
			if err := appendView(b, e); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		return nil
	}
	if pairs, ok := v.RecordPairs(); ok {
		b.WriteByte('{')
		first := true
		for k, e := range pairs {
			if !first {
				b.WriteByte(',')
			}
			first = false
			appendString(b, k)
			b.WriteByte(':')
			if err := appendView(b, e); err != nil {
				return err
			}
		}
		b.WriteByte('}')
		return nil
	}
	if fun, args, ok := v.ExtCall(); ok {
		n := 0
		for range args {
			n++
		}
		appendExtnHeader(b, fun, n)
		i := 0
		for a := range args {
			if i > 0 {
				b.WriteByte(',')
			}
			i++
			if err := appendView(b, a); err != nil {
				return err
			}
		}
		appendExtnFooter(b, n)
		return nil
	}
	return fmt.Errorf("json: cannot render %s", v.Source())
}
