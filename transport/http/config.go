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

import "time"

// TransportConfig configures the HTTP transport from a configuration file.
//
//	http:
//	  keepAlive: 30s
//	  maxIdleConnsPerHost: 2
type TransportConfig struct {
	// KeepAlive specifies the keep-alive period for the network
	// connection.
	KeepAlive time.Duration `config:"keepAlive"`

	// MaxIdleConns is the maximum number of idle connections across all
	// hosts.
	MaxIdleConns int `config:"maxIdleConns"`

	// MaxIdleConnsPerHost is the number of idle connections maintained per
	// host.
	MaxIdleConnsPerHost int `config:"maxIdleConnsPerHost"`

	// IdleConnTimeout is the maximum amount of time an idle connection
	// will remain idle before closing itself.
	IdleConnTimeout time.Duration `config:"idleConnTimeout"`

	// DisableKeepAlives prevents re-use of TCP connections.
	DisableKeepAlives bool `config:"disableKeepAlives"`

	// ResponseHeaderTimeout is the amount of time to wait for the server's
	// response headers.
	ResponseHeaderTimeout time.Duration `config:"responseHeaderTimeout"`
}

// Options translates the configuration into transport options.
func (c TransportConfig) Options() []TransportOption {
	var opts []TransportOption
	if c.KeepAlive > 0 {
		opts = append(opts, KeepAlive(c.KeepAlive))
	}
	if c.MaxIdleConns > 0 {
		opts = append(opts, MaxIdleConns(c.MaxIdleConns))
	}
	if c.MaxIdleConnsPerHost > 0 {
		opts = append(opts, MaxIdleConnsPerHost(c.MaxIdleConnsPerHost))
	}
	if c.IdleConnTimeout > 0 {
		opts = append(opts, IdleConnTimeout(c.IdleConnTimeout))
	}
	if c.DisableKeepAlives {
		opts = append(opts, DisableKeepAlives())
	}
	if c.ResponseHeaderTimeout > 0 {
		opts = append(opts, ResponseHeaderTimeout(c.ResponseHeaderTimeout))
	}
	return opts
}
