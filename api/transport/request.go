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

package transport

import (
	"io"
	"net/url"
	"strings"

	"go.uber.org/herald/heralderrors"
)

// Request is the low level representation of one call to the queueing
// service. A Request is created per call and discarded after the call
// completes.
type Request struct {
	// Endpoint is the base URL of the service instance the request targets.
	// The resolver uses it to pick a transport; the transport uses it to
	// address the request.
	Endpoint string

	// API names the versioned API the request addresses, for example
	// "queues.v1". The wire layer maps it to the base path the resource
	// path is attached under.
	API string

	// Method is the protocol verb of the operation, set by the wire layer.
	Method string

	// Path is the resource path relative to the endpoint, set by the wire
	// layer. It includes the API base path.
	Path string

	// Query carries the operation's filter parameters, if any.
	Query url.Values

	// Headers for the request. Always carries the Client-ID identity
	// header injected by the request builder.
	Headers Headers

	// Request payload, nil when the operation has no body.
	Body io.Reader
}

// ValidateRequest validates the given request. An error with code
// CodeInvalidArgument is returned if the request is missing required
// fields.
func ValidateRequest(req *Request) error {
	var missing []string
	if req.Endpoint == "" {
		missing = append(missing, "endpoint")
	}
	if req.API == "" {
		missing = append(missing, "api")
	}
	if req.Method == "" {
		missing = append(missing, "method")
	}
	if req.Path == "" {
		missing = append(missing, "path")
	}
	if len(missing) > 0 {
		return heralderrors.InvalidArgumentErrorf(
			"request is missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
