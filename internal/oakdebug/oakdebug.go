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

// Package oakdebug holds the global OAK_DEBUG flags.
package oakdebug

import (
	"sync"

	"oaklang.org/go/internal/envflag"
)

// Flags holds the set of global OAK_DEBUG flags. It is initialized by Init.
var Flags Config

// Config defines the set of known OAK_DEBUG flags.
type Config struct {
	// Strict enables extra internal consistency checking. Most notably,
	// the trusted restricted-expression constructors re-run the full
	// invariant check and panic on violation instead of silently
	// accepting the caller's claim. Development and test builds should
	// run with OAK_DEBUG=strict.
	Strict bool
}

// Init initializes Flags from the OAK_DEBUG environment variable. Note:
// this isn't an init function so that the failure mode can be an error
// rather than a panic.
func Init() error {
	return initOnce()
}

var initOnce = sync.OnceValue(func() error {
	return envflag.Init(&Flags, "OAK_DEBUG")
})
