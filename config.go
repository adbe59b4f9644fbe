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

	"go.uber.org/herald/heralderrors"
)

// Config is the connection configuration of a Client. It is copied at
// construction and shared immutably across requests.
type Config struct {
	// Endpoint is the base URL of the queueing service, for example
	// "https://queues.example.org".
	Endpoint string `config:"endpoint"`

	// APIVersion selects the service API version. Defaults to 1, the only
	// version currently supported.
	APIVersion int `config:"apiVersion"`

	// ClientID is the stable identity token sent with every request so
	// the service can attribute calls. When empty, a random UUID is
	// generated at construction.
	ClientID string `config:"clientID"`

	// AuthToken, when set, is attached to every request. Acquiring and
	// renewing tokens is the caller's concern.
	AuthToken string `config:"authToken"`
}

// sanitized returns a copy of the config with defaults applied, or an
// error if the config cannot address the service.
func (c Config) sanitized() (Config, error) {
	if c.Endpoint == "" {
		return c, heralderrors.InvalidArgumentErrorf("endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return c, heralderrors.InvalidArgumentErrorf("endpoint %q is not a valid URL", c.Endpoint)
	}
	if c.APIVersion == 0 {
		c.APIVersion = 1
	}
	if c.APIVersion != 1 {
		return c, heralderrors.InvalidArgumentErrorf("unsupported API version %d", c.APIVersion)
	}
	return c, nil
}
