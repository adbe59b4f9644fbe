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

// Package wire encodes queue, message and claim operations into transport
// requests and decodes the service's responses. It owns the wire format;
// errors from the transport pass through untranslated.
package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/url"

	"go.uber.org/herald/api/transport"
	"go.uber.org/herald/heralderrors"
	"go.uber.org/multierr"
)

// _basePaths maps the versioned API names carried by requests to the base
// path their resource paths attach under.
var _basePaths = map[string]string{
	"queues.v1": "/v1",
}

func basePath(api string) (string, error) {
	p, ok := _basePaths[api]
	if !ok {
		return "", heralderrors.InvalidArgumentErrorf("unsupported API %q", api)
	}
	return p, nil
}

// invoke fills in the operation fields of a prepared request and executes
// it. The request must not be reused across calls.
func invoke(
	ctx context.Context,
	t transport.Transport,
	req *transport.Request,
	method string,
	resource string,
	query url.Values,
	body interface{},
) (*transport.Response, error) {
	base, err := basePath(req.API)
	if err != nil {
		return nil, err
	}

	req.Method = method
	req.Path = base + resource
	req.Query = query

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, heralderrors.InvalidArgumentErrorf("failed to encode request body: %v", err)
		}
		req.Headers = req.Headers.With("Content-Type", "application/json")
		req.Body = bytes.NewReader(raw)
	}

	return t.Send(ctx, req)
}

// decodeJSON reads and closes the response body and decodes it into out.
// Empty bodies leave out untouched, so callers get zero values for
// operations answered with 204.
func decodeJSON(res *transport.Response, out interface{}) error {
	if res == nil || res.Body == nil {
		return nil
	}
	raw, err := ioutil.ReadAll(res.Body)
	err = multierr.Append(err, res.Body.Close())
	if err != nil {
		return heralderrors.InternalErrorf("failed to read response body: %v", err)
	}
	if len(raw) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return heralderrors.InternalErrorf("failed to decode response body: %v", err)
	}
	return nil
}

// discard closes the response body without reading it.
func discard(res *transport.Response) error {
	if res == nil || res.Body == nil {
		return nil
	}
	return res.Body.Close()
}

// nextMarker extracts the pagination marker from the service's "next"
// link, if present. The SDK never follows the link itself.
func nextMarker(links []link) string {
	for _, l := range links {
		if l.Rel != "next" {
			continue
		}
		u, err := url.Parse(l.Href)
		if err != nil {
			return ""
		}
		return u.Query().Get("marker")
	}
	return ""
}

type link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}
