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
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/herald/heralderrors"
)

func TestTransportLifecycle(t *testing.T) {
	trans := NewTransport()
	assert.False(t, trans.IsRunning())

	require.NoError(t, trans.Start())
	assert.True(t, trans.IsRunning())
	require.NoError(t, trans.Start(), "restart must be a no-op")

	require.NoError(t, trans.Stop())
	assert.False(t, trans.IsRunning())
	require.NoError(t, trans.Stop(), "re-stop must be a no-op")

	err := trans.Start()
	require.Error(t, err)
	assert.True(t, heralderrors.IsUnavailable(err))
}

func TestTransportOptions(t *testing.T) {
	var got *transportOptions
	capture := buildClient(func(o *transportOptions) *http.Client {
		got = o
		return &http.Client{}
	})

	NewTransport(
		KeepAlive(time.Minute),
		MaxIdleConns(100),
		MaxIdleConnsPerHost(10),
		IdleConnTimeout(30*time.Second),
		DisableKeepAlives(),
		ResponseHeaderTimeout(5*time.Second),
		capture,
	)

	require.NotNil(t, got)
	assert.Equal(t, time.Minute, got.keepAlive)
	assert.Equal(t, 100, got.maxIdleConns)
	assert.Equal(t, 10, got.maxIdleConnsPerHost)
	assert.Equal(t, 30*time.Second, got.idleConnTimeout)
	assert.True(t, got.disableKeepAlives)
	assert.Equal(t, 5*time.Second, got.responseHeaderTimeout)
}

func TestTransportDefaults(t *testing.T) {
	options := newTransportOptions()
	assert.Equal(t, 30*time.Second, options.keepAlive)
	assert.Equal(t, 2, options.maxIdleConnsPerHost)
	assert.NotNil(t, options.tracer)
}

func TestSpecs(t *testing.T) {
	specs := Specs()
	require.Len(t, specs, 2)
	assert.Equal(t, "http", specs[0].Scheme)
	assert.Equal(t, "https", specs[1].Scheme)

	for _, spec := range specs {
		trans, err := spec.Build()
		require.NoError(t, err)
		assert.NotNil(t, trans)
	}
}
