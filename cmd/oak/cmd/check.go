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
	"io"
	"os"

	"github.com/spf13/cobra"

	"oaklang.org/go/oak/errors"
	"oaklang.org/go/oak/restricted"
)

func newCheckCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files]",
		Short: "validate restricted policy expressions",
		Long: `check parses each file as a policy expression and verifies that
it stays within the restricted subset. Reading from standard input
is supported by passing "-" as the file name.

With --type, the inferred type of each valid expression is printed.`,
		RunE: mkRunE(c, doCheck),
	}

	cmd.Flags().BoolP(string(flagType), "t", false, "print the inferred type of each expression")

	return cmd
}

func readSource(cmd *Command, name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(name)
}

func doCheck(cmd *Command, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	showType := flagType.Bool(cmd)

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
		if showType {
			kind, ok := e.TypeOf()
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: _\n", name)
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, kind)
		}
	}
	return nil
}
