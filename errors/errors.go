/*
 * gdiface - Godot script interface conformance checker
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package errors classifies the errors of interface mapping and conformance checks.
//
// A failure is either a user error, caused by a declaration, method list,
// or configuration which cannot be processed, or an internal error,
// which indicates a bug in gdiface itself. The command line tool exits
// with a distinct code for internal errors.
package errors

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/xerrors"
)

// InternalError marks a failure of gdiface itself,
// e.g. a type kind which a switch does not handle.
// Internal errors are never turned into diagnostics.
type InternalError interface {
	error
	IsInternalError()
}

// UserError marks a failure caused by the input,
// e.g. a property whose type has no engine representation,
// or a method list which is not valid JSON.
type UserError interface {
	error
	IsUserError()
}

// SecondaryError is implemented by diagnostics which have a second line,
// e.g. the expected signature of a missing method.
type SecondaryError interface {
	SecondaryError() string
}

// ErrorNotes is implemented by diagnostics which list related details,
// e.g. why each candidate method did not match.
type ErrorNotes interface {
	ErrorNotes() []ErrorNote
}

type ErrorNote interface {
	Message() string
}

// ParentError groups the diagnostics of one interface or script.
type ParentError interface {
	error
	ChildErrors() []error
}

// UnreachableError is reported when a code path which the type model excludes is taken.
type UnreachableError struct {
	Stack []byte
}

var _ InternalError = UnreachableError{}

func NewUnreachableError() *UnreachableError {
	return &UnreachableError{Stack: debug.Stack()}
}

func (e UnreachableError) Error() string {
	return fmt.Sprintf("unreachable\n%s", e.Stack)
}

func (e UnreachableError) IsInternalError() {}

// UnexpectedError is an internal error with a formatted message.
type UnexpectedError struct {
	Err error
}

var _ InternalError = UnexpectedError{}

func NewUnexpectedError(message string, arg ...any) UnexpectedError {
	return UnexpectedError{
		Err: fmt.Errorf(message, arg...),
	}
}

func (e UnexpectedError) Unwrap() error {
	return e.Err
}

func (e UnexpectedError) Error() string {
	return e.Err.Error()
}

func (e UnexpectedError) IsInternalError() {}

// DefaultUserError is a user error with a formatted message,
// used for input problems which need no dedicated diagnostic type.
type DefaultUserError struct {
	Err error
}

var _ UserError = DefaultUserError{}

func NewDefaultUserError(message string, arg ...any) DefaultUserError {
	return DefaultUserError{
		Err: fmt.Errorf(message, arg...),
	}
}

func (e DefaultUserError) Unwrap() error {
	return e.Err
}

func (e DefaultUserError) Error() string {
	return e.Err.Error()
}

func (e DefaultUserError) IsUserError() {}

// IsInternalError reports whether an internal error is in the wrap chain of err.
func IsInternalError(err error) bool {
	return causedBy[InternalError](err)
}

// IsUserError reports whether a user error is in the wrap chain of err.
func IsUserError(err error) bool {
	return causedBy[UserError](err)
}

func causedBy[T error](err error) bool {
	for err != nil {
		if _, ok := err.(T); ok {
			return true
		}
		wrapper, ok := err.(xerrors.Wrapper)
		if !ok {
			return false
		}
		err = wrapper.Unwrap()
	}
	return false
}
