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

// Package ext implements the extension type system: pluggable value types
// beyond the built-in literals, with their constructor functions. The
// built-in extensions are decimal and ipaddr.
package ext

import (
	"fmt"

	"oaklang.org/go/oak/types"
	"oaklang.org/go/oak/value"
)

// A Func describes an extension function.
type Func struct {
	// Name is the function name as it appears in source text.
	Name string

	// Result is the kind of the function's result.
	Result types.Kind

	// Apply invokes the function on fully evaluated arguments.
	Apply func(args []value.Value) (value.Value, error)
}

var registry = map[string]*Func{
	"decimal": {
		Name:   "decimal",
		Result: types.ExtensionKind,
		Apply:  applyDecimal,
	},
	"ip": {
		Name:   "ip",
		Result: types.ExtensionKind,
		Apply:  applyIP,
	},
}

// Lookup returns the extension function with the given name.
func Lookup(name string) (*Func, bool) {
	f, ok := registry[name]
	return f, ok
}

// ResultKind reports the result kind of the named extension function. It
// satisfies [types.ExtResolver].
func ResultKind(name string) (types.Kind, bool) {
	f, ok := registry[name]
	if !ok {
		return types.BottomKind, false
	}
	return f.Result, true
}

func singleString(fun string, args []value.Value) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s expects one argument, got %d", fun, len(args))
	}
	s, ok := args[0].(value.String)
	if !ok {
		return "", fmt.Errorf("%s expects a string argument, got %s", fun, args[0].Kind())
	}
	return string(s), nil
}

func applyDecimal(args []value.Value) (value.Value, error) {
	s, err := singleString("decimal", args)
	if err != nil {
		return nil, err
	}
	return ParseDecimal(s)
}

func applyIP(args []value.Value) (value.Value, error) {
	s, err := singleString("ip", args)
	if err != nil {
		return nil, err
	}
	return ParseIPAddr(s)
}
