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

// Package heraldconfig builds herald clients from YAML configuration.
//
//	client, err := heraldconfig.NewClientFromYAML(strings.NewReader(`
//	endpoint: https://queues.example.org
//	clientID: 3381af92-2b9e-11e3-b191-71861300734c
//	http:
//	  keepAlive: 30s
//	`))
package heraldconfig

import (
	"io"
	"io/ioutil"

	herald "go.uber.org/herald"
	"go.uber.org/herald/transport/http"
	yaml "gopkg.in/yaml.v2"
)

// clientConfig mirrors the YAML shape of a client configuration.
type clientConfig struct {
	Endpoint   string               `config:"endpoint"`
	APIVersion int                  `config:"apiVersion"`
	ClientID   string               `config:"clientID"`
	AuthToken  string               `config:"authToken"`
	HTTP       http.TransportConfig `config:"http"`
}

// LoadConfigFromYAML parses a client configuration and the options it
// implies from YAML.
func LoadConfigFromYAML(r io.Reader) (herald.Config, []herald.Option, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return herald.Config{}, nil, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return herald.Config{}, nil, err
	}
	return LoadConfig(data)
}

// LoadConfig decodes a client configuration from an attribute map, as
// obtained from a parsed configuration file.
func LoadConfig(data map[string]interface{}) (herald.Config, []herald.Option, error) {
	var cc clientConfig
	if err := decodeInto(&cc, data); err != nil {
		return herald.Config{}, nil, err
	}

	cfg := herald.Config{
		Endpoint:   cc.Endpoint,
		APIVersion: cc.APIVersion,
		ClientID:   cc.ClientID,
		AuthToken:  cc.AuthToken,
	}

	var opts []herald.Option
	if httpOpts := cc.HTTP.Options(); len(httpOpts) > 0 {
		opts = append(opts,
			herald.TransportSpecs(http.Specs(httpOpts...)...),
			herald.DefaultTransport(http.NewTransport(httpOpts...)),
		)
	}
	return cfg, opts, nil
}

// NewClientFromYAML builds a started client from YAML configuration.
// Options given here are applied after the configuration's own.
func NewClientFromYAML(r io.Reader, extra ...herald.Option) (*herald.Client, error) {
	cfg, opts, err := LoadConfigFromYAML(r)
	if err != nil {
		return nil, err
	}
	return herald.New(cfg, append(opts, extra...)...)
}
