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

// Package observability holds the client's call metrics. All of it is
// nop-safe: a nil Meter records nothing.
package observability

import (
	"go.uber.org/net/metrics"
	"go.uber.org/zap"
)

const _operationTag = "operation"

// Meter counts calls and failures per operation.
type Meter struct {
	calls    *metrics.CounterVector
	failures *metrics.CounterVector
}

// NewMeter builds a Meter on the given scope. A nil scope yields a nil
// Meter, which is safe to use.
func NewMeter(scope *metrics.Scope, logger *zap.Logger) *Meter {
	if scope == nil {
		return nil
	}

	calls, err := scope.CounterVector(metrics.Spec{
		Name:    "herald_calls",
		Help:    "Total number of calls issued to the queueing service.",
		VarTags: []string{_operationTag},
	})
	if err != nil {
		logger.Error("failed to create calls counter", zap.Error(err))
	}

	failures, err := scope.CounterVector(metrics.Spec{
		Name:    "herald_call_failures",
		Help:    "Total number of calls that returned an error.",
		VarTags: []string{_operationTag},
	})
	if err != nil {
		logger.Error("failed to create call failures counter", zap.Error(err))
	}

	return &Meter{
		calls:    calls,
		failures: failures,
	}
}

// Call records one issued call for the operation.
func (m *Meter) Call(operation string) {
	if m == nil || m.calls == nil {
		return
	}
	if c, err := m.calls.Get(_operationTag, operation); err == nil {
		c.Inc()
	}
}

// Failure records one failed call for the operation.
func (m *Meter) Failure(operation string) {
	if m == nil || m.failures == nil {
		return
	}
	if c, err := m.failures.Get(_operationTag, operation); err == nil {
		c.Inc()
	}
}
