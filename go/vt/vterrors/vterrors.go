/*
Copyright 2026 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package vterrors provides the error type used by the binlog codec.
//
// Every error created by this package carries an ErrorCode, which callers use to
// decide what to do with a failure (drop the connection, abort the log write,
// ...). Errors also carry the stack of the place they were created at, which
// is printed with the %+v verb:
//
//	err := vterrors.Errorf(vterrors.OutOfBounds, "need %d bytes at %d", n, pos)
//	log.ErrorS("decode failed", "kind", vterrors.Code(err), "err", err)
//
// Wrapping an error with Wrap or Wrapf keeps the code of the wrapped error.
package vterrors

import (
	"errors"
	"fmt"
	"io"

	pkgerrors "github.com/pkg/errors"
)

type vtError struct {
	code ErrorCode
	err  error
}

// New returns an error with the supplied message and code.
func New(code ErrorCode, message string) error {
	return &vtError{
		code: code,
		err:  pkgerrors.New(message),
	}
}

// Errorf formats according to a format specifier and returns the string
// as a value that satisfies error, along with the supplied code.
func Errorf(code ErrorCode, format string, args ...any) error {
	return &vtError{
		code: code,
		err:  pkgerrors.Errorf(format, args...),
	}
}

// NewWithCause returns an error with the supplied code whose cause is err.
// It is used to translate library errors into this package's codes.
func NewWithCause(code ErrorCode, err error, message string) error {
	if err == nil {
		return New(code, message)
	}
	return &vtError{
		code: code,
		err:  pkgerrors.Wrap(err, message),
	}
}

func (e *vtError) Error() string {
	return e.err.Error()
}

// ErrorCode implements ErrorWithCode.
func (e *vtError) ErrorCode() ErrorCode {
	return e.code
}

// Unwrap returns the wrapped library error, if any.
func (e *vtError) Unwrap() error {
	return pkgerrors.Unwrap(e.err)
}

// Cause returns the wrapped library error, if any.
func (e *vtError) Cause() error {
	return pkgerrors.Unwrap(e.err)
}

func (e *vtError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%v: %+v", e.code, e.err)
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// Wrap returns an error annotating err with a stack trace
// at the point Wrap is called, and the supplied message.
// If err is nil, Wrap returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(err, message)
}

// Wrapf returns an error annotating err with a stack trace
// at the point Wrapf is called, and the format specifier.
// If err is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrapf(err, format, args...)
}

// Code returns the error code if it's a vtError.
// If err is nil, it returns Unknown.
func Code(err error) ErrorCode {
	if err == nil {
		return Unknown
	}
	var withCode ErrorWithCode
	if errors.As(err, &withCode) {
		return withCode.ErrorCode()
	}
	return Unknown
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	return err != nil && Code(err) == code
}

// Cause will return the immediate cause, if possible.
// An error value has a cause if it implements the following
// interface:
//
//	type causer interface {
//	       Cause() error
//	}
//
// If the error does not implement Cause, nil will be returned.
func Cause(err error) error {
	type causer interface {
		Cause() error
	}

	for err != nil {
		cause, ok := err.(causer)
		if !ok {
			return nil
		}
		return cause.Cause()
	}
	return nil
}

// RootCause returns the underlying cause of the error, if possible.
// If the error does not have a cause, the error itself is returned.
func RootCause(err error) error {
	for {
		cause := Cause(err)
		if cause == nil {
			return err
		}
		err = cause
	}
}
