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
	"context"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/herald/api/transport"
	"go.uber.org/herald/api/transport/transporttest"
	"go.uber.org/herald/heralderrors"
)

// newTestClient builds a client whose requests all route to the given
// mock: the test:// scheme has no registered spec, so the resolver falls
// back to the default transport.
func newTestClient(t *testing.T, mockCtrl *gomock.Controller, opts ...Option) (*Client, *transporttest.MockTransport) {
	trans := transporttest.NewMockTransport(mockCtrl)
	trans.EXPECT().Start().Return(nil)

	opts = append(opts, DefaultTransport(trans))
	client, err := New(Config{Endpoint: "test://queues", ClientID: "client-1"}, opts...)
	require.NoError(t, err)
	return client, trans
}

func jsonResponse(status int, body string) *transport.Response {
	res := &transport.Response{Status: status}
	if body != "" {
		res.Body = ioutil.NopCloser(strings.NewReader(body))
	}
	return res
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no endpoint", Config{}},
		{"relative endpoint", Config{Endpoint: "queues.example.org"}},
		{"unsupported version", Config{Endpoint: "https://queues.example.org", APIVersion: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)
			assert.True(t, heralderrors.IsInvalidArgument(err))
		})
	}
}

func TestNewGeneratesClientID(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	trans := transporttest.NewMockTransport(mockCtrl)
	trans.EXPECT().Start().Return(nil)

	client, err := New(Config{Endpoint: "test://queues"}, DefaultTransport(trans))
	require.NoError(t, err)

	id, ok := client.prepareRequest().Headers.Get("Client-ID")
	require.True(t, ok)
	_, err = uuid.Parse(id)
	assert.NoError(t, err, "generated Client-ID must be a UUID")
}

func TestPrepareRequest(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	client, _ := newTestClient(t, mockCtrl)
	req := client.prepareRequest()

	assert.Equal(t, "test://queues", req.Endpoint)
	assert.Equal(t, "queues.v1", req.API)

	id, ok := req.Headers.Get("Client-ID")
	require.True(t, ok)
	assert.Equal(t, "client-1", id)

	_, ok = req.Headers.Get("X-Auth-Token")
	assert.False(t, ok, "no token configured, no auth header")
}

func TestPrepareRequestAuthToken(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	trans := transporttest.NewMockTransport(mockCtrl)
	trans.EXPECT().Start().Return(nil)

	client, err := New(Config{
		Endpoint:  "test://queues",
		AuthToken: "secret",
	}, DefaultTransport(trans))
	require.NoError(t, err)

	token, ok := client.prepareRequest().Headers.Get("X-Auth-Token")
	require.True(t, ok)
	assert.Equal(t, "secret", token)
}

func TestPrepareRequestIsFreshPerCall(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	client, _ := newTestClient(t, mockCtrl)
	first := client.prepareRequest()
	second := client.prepareRequest()

	// The wire layer mutates requests in place; sharing one across calls
	// would leak state between operations.
	assert.False(t, first == second)
}

func TestListQueues(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	client, trans := newTestClient(t, mockCtrl)
	trans.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *transport.Request) (*transport.Response, error) {
			assert.Equal(t, "GET", req.Method)
			assert.Equal(t, "/v1/queues", req.Path)
			return jsonResponse(200, `{
				"queues": [{"name": "jobs", "href": "/v1/queues/jobs"}]
			}`), nil
		},
	)

	page, err := client.ListQueues(context.Background(), ListQueuesRequest{})
	require.NoError(t, err)
	require.Len(t, page.Queues, 1)
	assert.Equal(t, "jobs", page.Queues[0].Name)
}

func TestClose(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	client, trans := newTestClient(t, mockCtrl)
	trans.EXPECT().Stop().Return(nil)
	assert.NoError(t, client.Close())
}

func TestInvalidateTransportMiss(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	client, _ := newTestClient(t, mockCtrl)

	// The default transport is not endpoint-bound, so there is nothing to
	// evict.
	assert.NoError(t, client.InvalidateTransport("test://queues"))
}
