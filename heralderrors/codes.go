// Copyright (c) 2021 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package heralderrors

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// CodeOK means no error; returned on success.
	CodeOK Code = 0

	// CodeCancelled means the operation was cancelled, typically by the
	// caller.
	CodeCancelled Code = 1

	// CodeUnknown means an unknown error. Failures surfaced by APIs that do
	// not return enough information are converted to this code.
	CodeUnknown Code = 2

	// CodeInvalidArgument means the client specified an invalid argument,
	// one that is problematic regardless of the state of the service (for
	// example, a malformed queue name).
	CodeInvalidArgument Code = 3

	// CodeDeadlineExceeded means the deadline expired before the operation
	// could complete. The operation may still have completed on the server.
	CodeDeadlineExceeded Code = 4

	// CodeNotFound means a requested entity (queue, message, claim) was not
	// found.
	CodeNotFound Code = 5

	// CodeAlreadyExists means the entity the client attempted to create
	// already exists.
	CodeAlreadyExists Code = 6

	// CodePermissionDenied means the caller does not have permission to
	// execute the specified operation. It must not be used when the caller
	// cannot be identified; use CodeUnauthenticated for those failures.
	CodePermissionDenied Code = 7

	// CodeResourceExhausted means some resource has been exhausted, such as
	// a per-project quota on the hosted service.
	CodeResourceExhausted Code = 8

	// CodeInternal means the service broke one of its own invariants. This
	// code is reserved for serious errors.
	CodeInternal Code = 13

	// CodeUnavailable means the service, or the transport needed to reach
	// it, is currently unavailable. This is most likely a transient
	// condition.
	CodeUnavailable Code = 14

	// CodeUnauthenticated means the request does not have valid
	// authentication credentials for the operation.
	CodeUnauthenticated Code = 16
)

var (
	_codeToString = map[Code]string{
		CodeOK:                "ok",
		CodeCancelled:         "cancelled",
		CodeUnknown:           "unknown",
		CodeInvalidArgument:   "invalid-argument",
		CodeDeadlineExceeded:  "deadline-exceeded",
		CodeNotFound:          "not-found",
		CodeAlreadyExists:     "already-exists",
		CodePermissionDenied:  "permission-denied",
		CodeResourceExhausted: "resource-exhausted",
		CodeInternal:          "internal",
		CodeUnavailable:       "unavailable",
		CodeUnauthenticated:   "unauthenticated",
	}
	_stringToCode = map[string]Code{
		"ok":                 CodeOK,
		"cancelled":          CodeCancelled,
		"unknown":            CodeUnknown,
		"invalid-argument":   CodeInvalidArgument,
		"deadline-exceeded":  CodeDeadlineExceeded,
		"not-found":          CodeNotFound,
		"already-exists":     CodeAlreadyExists,
		"permission-denied":  CodePermissionDenied,
		"resource-exhausted": CodeResourceExhausted,
		"internal":           CodeInternal,
		"unavailable":        CodeUnavailable,
		"unauthenticated":    CodeUnauthenticated,
	}
)

// Code represents the type of error for a call to the queueing service.
//
// When multiple codes apply, callers receive the most specific one. The
// numeric values intentionally line up with the gRPC status code space so
// that the codes survive translation across transports.
type Code int

// String returns the string representation of the Code.
func (c Code) String() string {
	s, ok := _codeToString[c]
	if ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	s, ok := _codeToString[c]
	if ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown code: %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	i, ok := _stringToCode[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown code string: %s", string(text))
	}
	*c = i
	return nil
}
