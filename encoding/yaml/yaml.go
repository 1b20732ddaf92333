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

// Package yaml converts Oak restricted expressions to YAML using the same
// natural encoding as the json package, including the __entity and __extn
// escape forms. Record field order is preserved.
package yaml

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"oaklang.org/go/oak/restricted"
)

// MarshalRestricted renders a restricted expression as a YAML document.
// Expressions containing unknown markers cannot be rendered.
func MarshalRestricted(v restricted.View) ([]byte, error) {
	n, err := toNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n)
}

func scalar(tag, val string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: val}
}

// strNode produces a string scalar. The encoder quotes the value itself
// when a plain rendering would reparse as another type.
func strNode(s string) *yaml.Node {
	return scalar("!!str", s)
}

func mapping(pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: pairs}
}

func toNode(v restricted.View) (*yaml.Node, error) {
	if x, ok := v.Bool(); ok {
		return scalar("!!bool", strconv.FormatBool(x)), nil
	}
	if x, ok := v.Long(); ok {
		return scalar("!!int", strconv.FormatInt(x, 10)), nil
	}
	if x, ok := v.String(); ok {
		return strNode(x), nil
	}
	if uid, ok := v.EntityUID(); ok {
		return mapping(
			strNode("__entity"),
			mapping(
				strNode("type"), strNode(uid.Type),
				strNode("id"), strNode(uid.ID),
			),
		), nil
	}
	if name, ok := v.Unknown(); ok {
		return nil, fmt.Errorf("yaml: cannot render unknown %q", name)
	}
	if elems, ok := v.SetElements(); ok {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for e := range elems {
			n, err := toNode(e)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, n)
		}
		return seq, nil
	}
	if pairs, ok := v.RecordPairs(); ok {
		m := mapping()
		for k, e := range pairs {
			n, err := toNode(e)
			if err != nil {
				return nil, err
			}
			m.Content = append(m.Content, strNode(k), n)
		}
		return m, nil
	}
	if fun, args, ok := v.ExtCall(); ok {
		var nodes []*yaml.Node
		for a := range args {
			n, err := toNode(a)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}
		inner := mapping(strNode("fn"), strNode(fun))
		if len(nodes) == 1 {
			inner.Content = append(inner.Content, strNode("arg"), nodes[0])
		} else {
			seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: nodes}
			inner.Content = append(inner.Content, strNode("args"), seq)
		}
		return mapping(strNode("__extn"), inner), nil
	}
	return nil, fmt.Errorf("yaml: cannot render %s", v.Source())
}
