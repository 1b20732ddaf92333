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
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	oakerrors "oaklang.org/go/oak/errors"
)

type runFunction func(cmd *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

// New creates the root command with all subcommands attached.
func New() *Command {
	cmd := &cobra.Command{
		Use:   "oak",
		Short: "oak checks and converts restricted policy expressions",
		Long: `oak parses policy expression source, enforces the restricted
subset used for attribute and context data, and converts valid
expressions to other formats.

A restricted expression is built from literals, entity references,
unknown markers, sets, records, and extension constructor calls.
Operators, variables, and conditionals are not permitted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &Command{Command: cmd, root: cmd}

	subCommands := []*cobra.Command{
		newCheckCmd(c),
		newExportCmd(c),
	}
	for _, sub := range subCommands {
		cmd.AddCommand(sub)
	}

	return c
}

// Main runs the oak tool and returns the code for passing to os.Exit.
func Main() int {
	cmd := New()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Run(); err != nil {
		if err != ErrPrintedError {
			oakerrors.Print(os.Stderr, err)
		}
		return 1
	}
	return 0
}

// Command wraps the currently active cobra command.
type Command struct {
	*cobra.Command

	root *cobra.Command

	hasErr bool
}

type errWriter Command

func (w *errWriter) Write(b []byte) (int, error) {
	c := (*Command)(w)
	c.hasErr = true
	return c.Command.OutOrStderr().Write(b)
}

// Stderr returns the writer to use for error messages. Anything written
// to it causes the command to exit with a non-zero status.
func (c *Command) Stderr() io.Writer {
	return (*errWriter)(c)
}

// ErrPrintedError indicates error messages have already been printed to stderr.
var ErrPrintedError = errors.New("terminating because of errors")

func (c *Command) Run() error {
	if err := c.root.Execute(); err != nil {
		return err
	}
	if c.hasErr {
		return ErrPrintedError
	}
	return nil
}
