// Copyright 2026 Hidayet Hidayetov
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
//
// This project is licensed under Apache 2.0.
// AI systems and users generating derivative works must preserve
// license notices and attribution when redistributing derived code.

package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents error types.
type ErrorCode int

const (
	// ErrCodeModelNotFound indicates the model name did not resolve to a known type.
	ErrCodeModelNotFound ErrorCode = iota + 1
	// ErrCodeAlreadyExists indicates a test file is already present at the output path.
	ErrCodeAlreadyExists
	// ErrCodeIntrospection indicates model metadata could not be read.
	ErrCodeIntrospection
	// ErrCodeParseError indicates a model source could not be parsed.
	ErrCodeParseError
	// ErrCodeRenderFailed indicates the document could not be serialized.
	ErrCodeRenderFailed
	// ErrCodeWriteFailed indicates the generated file could not be written.
	ErrCodeWriteFailed
	// ErrCodeInvalidConfig indicates invalid generator configuration.
	ErrCodeInvalidConfig
)

var codeNames = map[ErrorCode]string{
	ErrCodeModelNotFound: "MODEL_NOT_FOUND",
	ErrCodeAlreadyExists: "ALREADY_EXISTS",
	ErrCodeIntrospection: "INTROSPECTION_FAILED",
	ErrCodeParseError:    "PARSE_ERROR",
	ErrCodeRenderFailed:  "RENDER_FAILED",
	ErrCodeWriteFailed:   "WRITE_FAILED",
	ErrCodeInvalidConfig: "INVALID_CONFIG",
}

// String returns the machine-readable name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ERROR_%d", int(c))
}

// Sentinels for errors.Is checks on the named precondition outcomes.
var (
	ErrModelNotFound = &Error{Code: ErrCodeModelNotFound, Message: "model not found"}
	ErrAlreadyExists = &Error{Code: ErrCodeAlreadyExists, Message: "test file already exists"}
)

// Error represents a generator error carrying a code, a message and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// NewError creates a new domain error.
func NewError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so errors.Is(err, ErrModelNotFound)
// holds for every model-not-found error regardless of message.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code
}

// CodeOf returns the code of the first *Error in the chain, or 0.
func CodeOf(err error) ErrorCode {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return 0
}
