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
	"net/netip"
	"strings"

	"oaklang.org/go/oak/value"
)

// An IPAddr is an IPv4 or IPv6 address or network range.
type IPAddr struct {
	value.ExtValue
	prefix netip.Prefix
	isAddr bool // source had no "/len" suffix
}

// ParseIPAddr parses an IP address such as "192.0.2.1" or "::1", or a CIDR
// range such as "192.0.2.0/24".
func ParseIPAddr(s string) (IPAddr, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return IPAddr{}, fmt.Errorf("%q is not a valid IP address or range: %v", s, err)
		}
		return IPAddr{prefix: p}, nil
	}
	a, err := netip.ParseAddr(s)
	if err != nil {
		return IPAddr{}, fmt.Errorf("%q is not a valid IP address: %v", s, err)
	}
	return IPAddr{prefix: netip.PrefixFrom(a, a.BitLen()), isAddr: true}, nil
}

// Addr returns the address part of the value.
func (i IPAddr) Addr() netip.Addr { return i.prefix.Addr() }

// Prefix returns the value as a prefix; single addresses have a full-length
// prefix.
func (i IPAddr) Prefix() netip.Prefix { return i.prefix }

// Contains reports whether the range i contains the address of i2.
func (i IPAddr) Contains(i2 IPAddr) bool {
	return i.prefix.Contains(i2.prefix.Addr())
}

// ExtName implements [value.Ext].
func (i IPAddr) ExtName() string { return "ipaddr" }

// Constructor implements [value.Ext]: ipaddr values reconstruct as
// ip("...") calls.
func (i IPAddr) Constructor() (string, []value.Value) {
	return "ip", []value.Value{value.String(i.text())}
}

func (i IPAddr) text() string {
	if i.isAddr {
		return i.prefix.Addr().String()
	}
	return i.prefix.String()
}

func (i IPAddr) String() string {
	return fmt.Sprintf("ip(%q)", i.text())
}

func (i IPAddr) Equal(v value.Value) bool {
	i2, ok := v.(IPAddr)
	return ok && i.isAddr == i2.isAddr && i.prefix == i2.prefix
}
