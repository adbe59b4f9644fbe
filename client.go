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

package herald

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/herald/api/transport"
	"go.uber.org/herald/internal/observability"
	"go.uber.org/herald/transport/http"
	"go.uber.org/herald/wire"
	"go.uber.org/multierr"
	"go.uber.org/net/metrics"
	"go.uber.org/zap"
)

type options struct {
	logger           *zap.Logger
	tracer           opentracing.Tracer
	meterScope       *metrics.Scope
	specs            []transport.Spec
	defaultTransport transport.Transport
}

// Option customizes the behavior of a Client.
type Option func(*options)

// Logger sets a logger to use for internal logging.
//
// The default is to not write any logs.
func Logger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Tracer configures a tracer for the client's transports.
//
// Defaults to the global tracer.
func Tracer(tracer opentracing.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// Meter sets the metrics scope call counters are registered on.
//
// The default is to not record any metrics.
func Meter(scope *metrics.Scope) Option {
	return func(o *options) {
		o.meterScope = scope
	}
}

// TransportSpecs registers additional transport specs with the client's
// resolver. Specs registered later win for their scheme.
func TransportSpecs(specs ...transport.Spec) Option {
	return func(o *options) {
		o.specs = append(o.specs, specs...)
	}
}

// DefaultTransport replaces the transport used for endpoints whose scheme
// has no registered spec. The client owns starting and stopping it.
func DefaultTransport(t transport.Transport) Option {
	return func(o *options) {
		o.defaultTransport = t
	}
}

// Client talks to one queueing service instance. It is safe for
// concurrent use.
type Client struct {
	cfg      Config
	clientID string
	logger   *zap.Logger
	meter    *observability.Meter
	def      transport.Transport
	resolver *resolver
}

// New builds a Client from the given configuration. The client's default
// HTTP transport is started before New returns; Close releases it.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg, err := cfg.sanitized()
	if err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tracer := o.tracer
	if tracer == nil {
		tracer = opentracing.GlobalTracer()
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = uuid.New().String()
	}

	transportOpts := []http.TransportOption{
		http.Logger(logger),
		http.Tracer(tracer),
	}
	specs := http.Specs(transportOpts...)
	specs = append(specs, o.specs...)

	def := o.defaultTransport
	if def == nil {
		def = http.NewTransport(transportOpts...)
	}
	if err := def.Start(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:      cfg,
		clientID: clientID,
		logger:   logger,
		meter:    observability.NewMeter(o.meterScope, logger),
		def:      def,
		resolver: newResolver(specs, def, logger),
	}
	logger.Debug("built client",
		zap.String("endpoint", cfg.Endpoint),
		zap.Int("apiVersion", cfg.APIVersion),
	)
	return c, nil
}

// prepareRequest builds a fully addressable request for the configured
// endpoint and API version, carrying the Client-ID identity header. No
// network I/O happens here.
func (c *Client) prepareRequest() *transport.Request {
	headers := transport.NewHeaders().With("Client-ID", c.clientID)
	if c.cfg.AuthToken != "" {
		headers = headers.With("X-Auth-Token", c.cfg.AuthToken)
	}
	return &transport.Request{
		Endpoint: c.cfg.Endpoint,
		API:      fmt.Sprintf("queues.v%d", c.cfg.APIVersion),
		Headers:  headers,
	}
}

// requestAndTransport pairs a fresh request with the transport resolved
// for its endpoint.
func (c *Client) requestAndTransport() (*transport.Request, transport.Transport, error) {
	req := c.prepareRequest()
	trans, err := c.resolver.resolve(req)
	if err != nil {
		return nil, nil, err
	}
	return req, trans, nil
}

// observe records one call, and its failure if any, for the operation.
func (c *Client) observe(operation string, err error) {
	c.meter.Call(operation)
	if err != nil {
		c.meter.Failure(operation)
		c.logger.Debug("operation failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
	}
}

// ListQueues fetches exactly one page of the project's queues. The
// returned page carries the marker for the next page; requesting it is
// the caller's concern.
func (c *Client) ListQueues(ctx context.Context, lr ListQueuesRequest) (*QueuePage, error) {
	req, trans, err := c.requestAndTransport()
	if err != nil {
		return nil, err
	}
	page, err := wire.QueueList(ctx, trans, req, lr)
	c.observe("queue_list", err)
	return page, err
}

// InvalidateTransport evicts and stops the cached transport bound to the
// endpoint, typically after a session expiry. The next request to the
// endpoint constructs a fresh transport.
func (c *Client) InvalidateTransport(endpoint string) error {
	return c.resolver.invalidate(endpoint)
}

// Close stops the default transport and every endpoint-bound transport
// the resolver constructed.
func (c *Client) Close() error {
	return multierr.Append(c.def.Stop(), c.resolver.stopAll())
}
