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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadersZeroValue(t *testing.T) {
	var headers Headers
	assert.Equal(t, 0, headers.Len())

	_, ok := headers.Get("Client-ID")
	assert.False(t, ok)

	headers = headers.With("Client-ID", "foo")
	v, ok := headers.Get("Client-ID")
	assert.True(t, ok)
	assert.Equal(t, "foo", v)
}

func TestHeadersCaseInsensitive(t *testing.T) {
	headers := NewHeaders().With("Client-ID", "foo")

	for _, k := range []string{"client-id", "Client-Id", "CLIENT-ID"} {
		v, ok := headers.Get(k)
		assert.True(t, ok, "lookup %q", k)
		assert.Equal(t, "foo", v)
	}
}

func TestHeadersWithOverwrites(t *testing.T) {
	headers := NewHeaders().
		With("X-Auth-Token", "one").
		With("x-auth-token", "two")
	assert.Equal(t, 1, headers.Len())

	v, _ := headers.Get("X-Auth-Token")
	assert.Equal(t, "two", v)
}

func TestHeadersDel(t *testing.T) {
	headers := NewHeaders().With("Client-ID", "foo")
	headers.Del("client-id")
	assert.Equal(t, 0, headers.Len())

	// Deleting a missing key is a no-op.
	headers.Del("client-id")
}

func TestHeadersItems(t *testing.T) {
	headers := NewHeaders().
		With("Client-ID", "foo").
		With("X-Auth-Token", "bar")
	assert.Equal(t, map[string]string{
		"client-id":    "foo",
		"x-auth-token": "bar",
	}, headers.Items())
}

func TestHeadersFromMap(t *testing.T) {
	assert.Equal(t, Headers{}, HeadersFromMap(nil))

	headers := HeadersFromMap(map[string]string{"Client-ID": "foo"})
	v, ok := headers.Get("client-id")
	assert.True(t, ok)
	assert.Equal(t, "foo", v)
}

func TestNewHeadersWithCapacity(t *testing.T) {
	assert.Equal(t, Headers{}, NewHeadersWithCapacity(0))
	assert.Equal(t, Headers{}, NewHeadersWithCapacity(-1))

	headers := NewHeadersWithCapacity(4).With("Client-ID", "foo")
	assert.Equal(t, 1, headers.Len())
}
