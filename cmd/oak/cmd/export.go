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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"oaklang.org/go/encoding/json"
	"oaklang.org/go/encoding/yaml"
	"oaklang.org/go/oak/errors"
	"oaklang.org/go/oak/restricted"
)

func newExportCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [files]",
		Short: "convert restricted policy expressions to other formats",
		Long: `export parses each file as a restricted policy expression and
writes it to standard output in the requested format.

Entity references and extension values use the __entity and __extn
escape forms. Expressions containing unknown markers cannot be
exported.`,
		RunE: mkRunE(c, doExport),
	}

	addOutFlags(cmd.Flags())

	return cmd
}

func doExport(cmd *Command, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	out := flagOut.String(cmd)
	if out != "json" && out != "yaml" {
		return fmt.Errorf("unknown output format %q", out)
	}

	for _, name := range args {
		src, err := readSource(cmd, name)
		if err != nil {
			return err
		}
		e, err := restricted.Parse(name, src)
		if err != nil {
			errors.Print(cmd.Stderr(), err)
			continue
		}
		var data []byte
		switch out {
		case "json":
			data, err = json.MarshalRestricted(e.View())
		case "yaml":
			data, err = yaml.MarshalRestricted(e.View())
		}
		if err != nil {
			fmt.Fprintf(cmd.Stderr(), "%s: %v\n", name, err)
			continue
		}
		if out == "json" {
			data = append(data, '\n')
		}
		cmd.OutOrStdout().Write(data)
	}
	return nil
}
