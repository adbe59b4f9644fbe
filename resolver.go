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
	"net/url"
	"sync"

	"go.uber.org/herald/api/transport"
	"go.uber.org/herald/heralderrors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// resolver selects the transport responsible for a request's endpoint,
// lazily constructing and caching one per endpoint. The cache is guarded
// by a read-mostly lock: resolution of an already-seen endpoint only takes
// the read side.
type resolver struct {
	mu     sync.RWMutex
	specs  map[string]transport.Spec
	cache  map[string]transport.Transport
	def    transport.Transport
	logger *zap.Logger
}

func newResolver(specs []transport.Spec, def transport.Transport, logger *zap.Logger) *resolver {
	m := make(map[string]transport.Spec, len(specs))
	for _, s := range specs {
		m[s.Scheme] = s
	}
	return &resolver{
		specs:  m,
		cache:  make(map[string]transport.Transport),
		def:    def,
		logger: logger,
	}
}

// resolve returns the transport bound to the request's endpoint. At most
// one transport is cached per distinct endpoint; on a miss, the spec
// registered for the endpoint's URL scheme builds and starts one.
// Endpoints with no registered scheme fall back to the default transport;
// failing that, resolution fails with CodeUnavailable.
func (r *resolver) resolve(req *transport.Request) (transport.Transport, error) {
	endpoint := req.Endpoint

	r.mu.RLock()
	t, ok := r.cache[endpoint]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, heralderrors.InvalidArgumentErrorf("invalid endpoint %q: %v", endpoint, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Lost the race against a concurrent miss.
	if t, ok := r.cache[endpoint]; ok {
		return t, nil
	}

	spec, ok := r.specs[u.Scheme]
	if !ok {
		if r.def != nil {
			return r.def, nil
		}
		return nil, heralderrors.UnavailableErrorf(
			"no transport available for endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}

	t, err = spec.Build()
	if err != nil {
		return nil, err
	}
	if err := t.Start(); err != nil {
		return nil, err
	}
	r.cache[endpoint] = t
	r.logger.Debug("constructed transport",
		zap.String("endpoint", endpoint),
		zap.String("scheme", u.Scheme),
	)
	return t, nil
}

// invalidate evicts and stops the cached transport for the endpoint. A
// miss is a no-op.
func (r *resolver) invalidate(endpoint string) error {
	r.mu.Lock()
	t, ok := r.cache[endpoint]
	delete(r.cache, endpoint)
	r.mu.Unlock()

	if !ok {
		return nil
	}
	return t.Stop()
}

// stopAll stops and evicts every cached transport.
func (r *resolver) stopAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	for endpoint, t := range r.cache {
		err = multierr.Append(err, t.Stop())
		delete(r.cache, endpoint)
	}
	return err
}
