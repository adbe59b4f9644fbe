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
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/herald/api/transport"
	"go.uber.org/herald/heralderrors"
	"go.uber.org/zap"
)

// Cap on how much of an error response body is quoted in the returned
// error message.
const _maxErrorBody = 4096

// Send executes the request and returns the service response. Responses
// with a non-2xx status are converted to *heralderrors.Status errors with a
// best-effort code; the body of such responses is consumed and quoted in
// the error message.
func (t *Transport) Send(ctx context.Context, treq *transport.Request) (*transport.Response, error) {
	if !t.once.IsRunning() {
		return nil, heralderrors.UnavailableErrorf("http transport is not running")
	}
	if err := transport.ValidateRequest(treq); err != nil {
		return nil, err
	}

	req, err := t.createRequest(treq)
	if err != nil {
		return nil, err
	}

	ctx, span := t.startSpan(ctx, req, treq)
	defer span.Finish()

	response, err := t.client.Do(req.WithContext(ctx))
	if err != nil {
		ext.Error.Set(span, true)
		return nil, t.convertError(ctx, treq, err)
	}
	ext.HTTPStatusCode.Set(span, uint16(response.StatusCode))

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		t.logger.Debug("request succeeded",
			zap.String("method", treq.Method),
			zap.String("path", treq.Path),
			zap.Int("status", response.StatusCode),
		)
		return &transport.Response{
			Status:  response.StatusCode,
			Headers: fromHTTPHeaders(response.Header),
			Body:    response.Body,
		}, nil
	}

	ext.Error.Set(span, true)
	return nil, t.errorFromResponse(treq, response)
}

func (t *Transport) createRequest(treq *transport.Request) (*http.Request, error) {
	u, err := url.Parse(treq.Endpoint)
	if err != nil {
		return nil, heralderrors.InvalidArgumentErrorf("invalid endpoint %q: %v", treq.Endpoint, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + treq.Path
	if treq.Query != nil {
		u.RawQuery = treq.Query.Encode()
	}

	req, err := http.NewRequest(treq.Method, u.String(), treq.Body)
	if err != nil {
		return nil, heralderrors.InvalidArgumentErrorf("failed to build request: %v", err)
	}
	req.Header = toHTTPHeaders(treq.Headers, req.Header)
	return req, nil
}

func (t *Transport) startSpan(ctx context.Context, req *http.Request, treq *transport.Request) (context.Context, opentracing.Span) {
	var parent opentracing.SpanContext // ok to be nil
	if parentSpan := opentracing.SpanFromContext(ctx); parentSpan != nil {
		parent = parentSpan.Context()
	}
	span := t.tracer.StartSpan(
		treq.Method+" "+treq.Path,
		opentracing.ChildOf(parent),
		opentracing.Tags{"api": treq.API},
	)
	ext.SpanKindRPCClient.Set(span)
	ext.HTTPMethod.Set(span, treq.Method)
	ext.HTTPUrl.Set(span, req.URL.String())
	ctx = opentracing.ContextWithSpan(ctx, span)

	_ = t.tracer.Inject(
		span.Context(),
		opentracing.HTTPHeaders,
		opentracing.HTTPHeadersCarrier(req.Header),
	)
	return ctx, span
}

func (t *Transport) convertError(ctx context.Context, treq *transport.Request, err error) error {
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return heralderrors.DeadlineExceededErrorf(
			"%s %s timed out: %v", treq.Method, treq.Path, err)
	case context.Canceled:
		return heralderrors.CancelledErrorf(
			"%s %s was cancelled: %v", treq.Method, treq.Path, err)
	}
	return heralderrors.UnavailableErrorf(
		"%s %s failed: %v", treq.Method, treq.Path, err)
}

func (t *Transport) errorFromResponse(treq *transport.Request, response *http.Response) error {
	body, readErr := ioutil.ReadAll(io.LimitReader(response.Body, _maxErrorBody))
	_ = response.Body.Close()

	message := strings.TrimSpace(string(body))
	if readErr != nil {
		message = readErr.Error()
	}

	code := statusCodeToBestCode(response.StatusCode)
	t.logger.Debug("request failed",
		zap.String("method", treq.Method),
		zap.String("path", treq.Path),
		zap.Int("status", response.StatusCode),
		zap.Stringer("code", code),
	)
	return heralderrors.Newf(code, "%s %s returned %d: %s",
		treq.Method, treq.Path, response.StatusCode, message)
}
