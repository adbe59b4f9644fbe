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

// Package heraldfx provides herald integration for Fx applications. The
// module produces a *herald.Client from a herald.Config, wiring in the
// application's logger, tracer and metrics scope when available.
package heraldfx

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/fx"
	herald "go.uber.org/herald"
	"go.uber.org/net/metrics"
	"go.uber.org/zap"
)

// Module provides a *herald.Client to the Fx application. The client's
// transports stop with the application.
var Module = fx.Options(
	fx.Provide(New),
)

// Params defines the dependencies of this module.
type Params struct {
	fx.In

	Config    herald.Config
	Lifecycle fx.Lifecycle

	Logger *zap.Logger        `optional:"true"`
	Tracer opentracing.Tracer `optional:"true"`
	Meter  *metrics.Scope     `optional:"true"`
}

// Result defines the values produced by this module.
type Result struct {
	fx.Out

	Client *herald.Client
}

// New provides a *herald.Client to the Fx application.
func New(p Params) (Result, error) {
	var opts []herald.Option
	if p.Logger != nil {
		opts = append(opts, herald.Logger(p.Logger))
	}
	if p.Tracer != nil {
		opts = append(opts, herald.Tracer(p.Tracer))
	}
	if p.Meter != nil {
		opts = append(opts, herald.Meter(p.Meter))
	}

	client, err := herald.New(p.Config, opts...)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return Result{Client: client}, nil
}
