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

// Package transport defines the channel-level abstractions of the herald
// client: the request and response representations exchanged with the
// queueing service, and the Transport interface that delivers them to a
// service endpoint.
package transport

import "context"

// Lifecycle objects advance monotonically from idle through running to
// stopped, with at-most-once start and stop implementations.
type Lifecycle interface {
	// Start opens the transport's resources. Start should block until the
	// transport is ready to send requests.
	Start() error

	// Stop closes the transport's resources, draining pending requests.
	// Stop should block until all pending requests have drained.
	Stop() error

	// IsRunning returns whether the object is in its running state.
	IsRunning() bool
}

// Transport delivers requests to a single class of service endpoints. A
// Transport is bound to the scheme of the endpoints it serves (for example
// "http" and "https") and may be shared across requests to the same
// endpoint.
type Transport interface {
	Lifecycle

	// Send executes the request against the service and returns the
	// response, blocking until the call completes or the context is done.
	// Non-success responses surface as *heralderrors.Status errors; Send
	// performs no retries.
	Send(ctx context.Context, req *Request) (*Response, error)
}

// Spec associates a URL scheme with a constructor for the Transport
// responsible for endpoints of that scheme. The resolver consults specs
// when it sees an endpoint it has no cached transport for.
type Spec struct {
	// Scheme is the URL scheme this spec serves, for example "http".
	Scheme string

	// Build constructs a new transport bound to a single endpoint. The
	// returned transport has not been started.
	Build func() (Transport, error)
}
