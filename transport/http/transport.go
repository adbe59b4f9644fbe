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

package http

import (
	"net"
	"net/http"
	"time"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/herald/api/transport"
	"go.uber.org/herald/internal/lifecycle"
	"go.uber.org/zap"
)

type transportOptions struct {
	keepAlive             time.Duration
	maxIdleConns          int
	maxIdleConnsPerHost   int
	idleConnTimeout       time.Duration
	disableKeepAlives     bool
	responseHeaderTimeout time.Duration
	tracer                opentracing.Tracer
	logger                *zap.Logger
	buildClient           func(*transportOptions) *http.Client
}

var defaultTransportOptions = transportOptions{
	keepAlive:           30 * time.Second,
	maxIdleConnsPerHost: 2,
}

func newTransportOptions() transportOptions {
	options := defaultTransportOptions
	options.tracer = opentracing.GlobalTracer()
	return options
}

// TransportOption customizes the behavior of an HTTP transport.
type TransportOption func(*transportOptions)

// KeepAlive specifies the keep-alive period for the network connection. If
// zero, keep-alives are disabled.
//
// Defaults to 30 seconds.
func KeepAlive(t time.Duration) TransportOption {
	return func(options *transportOptions) {
		options.keepAlive = t
	}
}

// MaxIdleConns controls the maximum number of idle (keep-alive) connections
// across all hosts. Zero means no limit.
func MaxIdleConns(i int) TransportOption {
	return func(options *transportOptions) {
		options.maxIdleConns = i
	}
}

// MaxIdleConnsPerHost specifies the number of idle (keep-alive) HTTP
// connections that will be maintained per host.
//
// Defaults to 2 connections.
func MaxIdleConnsPerHost(i int) TransportOption {
	return func(options *transportOptions) {
		options.maxIdleConnsPerHost = i
	}
}

// IdleConnTimeout is the maximum amount of time an idle (keep-alive)
// connection will remain idle before closing itself.
// Zero means no limit.
func IdleConnTimeout(t time.Duration) TransportOption {
	return func(options *transportOptions) {
		options.idleConnTimeout = t
	}
}

// DisableKeepAlives prevents re-use of TCP connections between different
// HTTP requests.
func DisableKeepAlives() TransportOption {
	return func(options *transportOptions) {
		options.disableKeepAlives = true
	}
}

// ResponseHeaderTimeout if non-zero specifies the amount of time to wait
// for a server's response headers after fully writing the request
// (including its body, if any). This time does not include the time to
// read the response body.
func ResponseHeaderTimeout(t time.Duration) TransportOption {
	return func(options *transportOptions) {
		options.responseHeaderTimeout = t
	}
}

// Tracer configures a tracer for the transport. Spans are created per
// outgoing request and their contexts injected into the request headers.
//
// Defaults to the global tracer.
func Tracer(tracer opentracing.Tracer) TransportOption {
	return func(options *transportOptions) {
		options.tracer = tracer
	}
}

// Logger sets a logger to use for internal logging.
//
// The default is to not write any logs.
func Logger(logger *zap.Logger) TransportOption {
	return func(options *transportOptions) {
		options.logger = logger
	}
}

// Hidden option to override the buildHTTPClient function. This is used
// only for testing.
func buildClient(f func(*transportOptions) *http.Client) TransportOption {
	return func(options *transportOptions) {
		options.buildClient = f
	}
}

// NewTransport creates a new HTTP transport for sending requests to
// queueing service endpoints.
func NewTransport(opts ...TransportOption) *Transport {
	options := newTransportOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options.newTransport()
}

func (o *transportOptions) newTransport() *Transport {
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Transport{
		once:   lifecycle.NewOnce(),
		tracer: o.tracer,
		logger: logger,
	}
	// buildClient is only passed in for tests.
	if o.buildClient == nil {
		t.client = o.buildHTTPClient()
	} else {
		t.client = o.buildClient(o)
	}
	return t
}

func (o *transportOptions) buildHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			// options lifted from https://golang.org/src/net/http/transport.go
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: o.keepAlive,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
			MaxIdleConns:          o.maxIdleConns,
			MaxIdleConnsPerHost:   o.maxIdleConnsPerHost,
			IdleConnTimeout:       o.idleConnTimeout,
			DisableKeepAlives:     o.disableKeepAlives,
			ResponseHeaderTimeout: o.responseHeaderTimeout,
		},
	}
}

// Transport sends requests to queueing service endpoints over HTTP. A
// single Transport owns one HTTP client and may serve many requests to the
// same endpoint concurrently.
type Transport struct {
	once   *lifecycle.Once
	client *http.Client
	tracer opentracing.Tracer
	logger *zap.Logger
}

var _ transport.Transport = (*Transport)(nil)

// Start starts the HTTP transport.
func (t *Transport) Start() error {
	return t.once.Start(func() error {
		return nil // Nothing to do
	})
}

// Stop stops the HTTP transport, closing any idle connections.
func (t *Transport) Stop() error {
	return t.once.Stop(func() error {
		if ht, ok := t.client.Transport.(*http.Transport); ok {
			ht.CloseIdleConnections()
		}
		return nil
	})
}

// IsRunning returns whether the HTTP transport is running.
func (t *Transport) IsRunning() bool {
	return t.once.IsRunning()
}

// Specs returns the transport specs served by this package: one per URL
// scheme, each building an independent transport with the given options.
func Specs(opts ...TransportOption) []transport.Spec {
	build := func() (transport.Transport, error) {
		return NewTransport(opts...), nil
	}
	return []transport.Spec{
		{Scheme: "http", Build: build},
		{Scheme: "https", Build: build},
	}
}
