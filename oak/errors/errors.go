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

// Package errors defines shared types for handling Oak errors.
//
// All user-reachable failures in this module are non-fatal values
// implementing [Error], carrying an optional source position for precise
// diagnostics. Positions are absent for programmatically constructed
// expressions.
package errors

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"oaklang.org/go/oak/token"
)

// New is a convenience wrapper for errors.New in the core library.
// It does not carry any position information.
func New(msg string) error {
	return errors.New(msg)
}

// Unwrap returns the result of calling the Unwrap method on err, if err
// implements Unwrap. Otherwise, Unwrap returns nil.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches the type to which
// target points, and if so, sets the target to its value and returns true.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// A Handler is a generic error handler used throughout Oak packages.
//
// The position points to the beginning of the offending token.
type Handler func(pos token.Pos, msg string, args []any)

// Error is the common error type for errors that can carry a source
// position.
type Error interface {
	// Position returns the position of the error, which may be
	// [token.NoPos] for errors not associated with source text.
	Position() token.Pos

	// Msg returns the unformatted error message and its arguments for
	// human consumption.
	Msg() (format string, args []any)

	// Error reports the error message without position information.
	Error() string
}

// Newf creates an Error with the associated position and message.
func Newf(p token.Pos, format string, args ...any) Error {
	return &posError{
		pos:     p,
		Message: NewMessagef(format, args...),
	}
}

// Wrapf creates an Error with the associated position and message, wrapping
// another error.
func Wrapf(err error, p token.Pos, format string, args ...any) Error {
	pErr := toErr(err)
	return &posError{
		pos:     p,
		Message: NewMessagef(format, args...),
		err:     pErr,
	}
}

// Promote converts a regular Go error to an Error if it isn't already one,
// prefixing it with msg.
func Promote(err error, msg string) Error {
	switch x := err.(type) {
	case Error:
		return x
	default:
		return Wrapf(err, token.NoPos, "%s", msg)
	}
}

// Message implements the error message part of the [Error] interface. It can
// be embedded in other error types to satisfy Msg and Error.
type Message struct {
	format string
	args   []any
}

// NewMessagef creates an error message for human consumption. The arguments
// are for later consumption, allowing the message to be localized at a later
// time if so desired.
func NewMessagef(format string, args ...any) Message {
	return Message{format: format, args: args}
}

// Msg returns a printf-style format string and its arguments for human
// consumption.
func (m *Message) Msg() (format string, args []any) {
	return m.format, m.args
}

func (m *Message) Error() string {
	return fmt.Sprintf(m.format, m.args...)
}

// posError is an error associated with a position.
type posError struct {
	pos token.Pos
	Message

	// The underlying error that triggered this one, if any.
	err error
}

func (e *posError) Position() token.Pos { return e.pos }
func (e *posError) Unwrap() error       { return e.err }

// Errors reports the individual errors associated with an error, which is
// the error itself if there is only one or, if the underlying type is
// [List], its individual elements.
func Errors(err error) []Error {
	if err == nil {
		return nil
	}
	var list List
	if errors.As(err, &list) {
		return list
	}
	return []Error{toErr(err)}
}

func toErr(err error) Error {
	if e, ok := err.(Error); ok {
		return e
	}
	return &posError{Message: NewMessagef("%s", err.Error()), err: err}
}

// Append combines two errors, flattening Lists as necessary.
func Append(a, b error) error {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	var list List
	list = append(list, Errors(a)...)
	list = append(list, Errors(b)...)
	return list
}

// List is a list of Errors.
// The zero value for a List is an empty List ready to use.
type List []Error

// AddNewf adds an [Error] with given position and error message to a List.
func (p *List) AddNewf(pos token.Pos, msg string, args ...any) {
	*p = append(*p, Newf(pos, msg, args...))
}

// Add adds an error to a List, flattening nested lists.
func (p *List) Add(err error) {
	*p = append(*p, Errors(err)...)
}

// Reset resets a List to no errors.
func (p *List) Reset() { *p = (*p)[:0] }

// Sort sorts a List by position, with errors without a position last.
func (p List) Sort() {
	slices.SortStableFunc(p, func(a, b Error) int {
		return a.Position().Compare(b.Position())
	})
}

// A List implements the error interface.
func (p List) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (p List) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

// Print is a utility function that prints a list of errors to w, one error
// per line, if the err parameter is a List. Otherwise it prints the err
// string.
func Print(w io.Writer, err error) {
	for _, e := range Errors(err) {
		printError(w, e)
	}
}

func printError(w io.Writer, err Error) {
	if pos := err.Position().Position(); pos.IsValid() {
		fmt.Fprintf(w, "%s: %v\n", pos, err)
		return
	}
	fmt.Fprintf(w, "%v\n", err)
}
