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

package wire

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/herald/api/transport/transporttest"
	"go.uber.org/herald/heralderrors"
)

func TestQueueExists(t *testing.T) {
	t.Run("exists", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		trans := transporttest.NewMockTransport(mockCtrl)

		captured := expectSend(trans, response(204, ""), nil)
		ok, err := QueueExists(context.Background(), trans, newRequest(), "jobs")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "GET", captured.req.Method)
		assert.Equal(t, "/v1/queues/jobs", captured.req.Path)
	})

	t.Run("not found is false, not an error", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		trans := transporttest.NewMockTransport(mockCtrl)

		expectSend(trans, nil, heralderrors.NotFoundErrorf("GET /v1/queues/jobs returned 404"))
		ok, err := QueueExists(context.Background(), trans, newRequest(), "jobs")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("other errors propagate", func(t *testing.T) {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		trans := transporttest.NewMockTransport(mockCtrl)

		expectSend(trans, nil, heralderrors.UnavailableErrorf("service down"))
		_, err := QueueExists(context.Background(), trans, newRequest(), "jobs")
		require.Error(t, err)
		assert.True(t, heralderrors.IsUnavailable(err))
	})
}

func TestQueueCreate(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	trans := transporttest.NewMockTransport(mockCtrl)

	captured := expectSend(trans, response(201, ""), nil)
	require.NoError(t, QueueCreate(context.Background(), trans, newRequest(), "jobs"))
	assert.Equal(t, "PUT", captured.req.Method)
	assert.Equal(t, "/v1/queues/jobs", captured.req.Path)
	assert.Nil(t, captured.req.Body)
}

func TestQueueDelete(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	trans := transporttest.NewMockTransport(mockCtrl)

	captured := expectSend(trans, response(204, ""), nil)
	require.NoError(t, QueueDelete(context.Background(), trans, newRequest(), "jobs"))
	assert.Equal(t, "DELETE", captured.req.Method)
	assert.Equal(t, "/v1/queues/jobs", captured.req.Path)
}

func TestQueueNameEscaping(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	trans := transporttest.NewMockTransport(mockCtrl)

	captured := expectSend(trans, response(201, ""), nil)
	require.NoError(t, QueueCreate(context.Background(), trans, newRequest(), "a/b c"))
	assert.Equal(t, "/v1/queues/a%2Fb%20c", captured.req.Path)
}

func TestQueueGetMetadata(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	trans := transporttest.NewMockTransport(mockCtrl)

	captured := expectSend(trans, response(200, `{"ttl": 120, "team": "infra"}`), nil)
	meta, err := QueueGetMetadata(context.Background(), trans, newRequest(), "jobs")
	require.NoError(t, err)
	assert.Equal(t, "GET", captured.req.Method)
	assert.Equal(t, "/v1/queues/jobs/metadata", captured.req.Path)
	assert.Equal(t, Metadata{"ttl": float64(120), "team": "infra"}, meta)
}

func TestQueueSetMetadata(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	trans := transporttest.NewMockTransport(mockCtrl)

	captured := expectSend(trans, response(204, ""), nil)
	err := QueueSetMetadata(context.Background(), trans, newRequest(), "jobs", Metadata{"ttl": 120})
	require.NoError(t, err)

	assert.Equal(t, "PUT", captured.req.Method)
	assert.Equal(t, "/v1/queues/jobs/metadata", captured.req.Path)
	assert.JSONEq(t, `{"ttl": 120}`, string(captured.body))

	ct, ok := captured.req.Headers.Get("Content-Type")
	assert.True(t, ok)
	assert.Equal(t, "application/json", ct)
}

func TestQueueGetStats(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	trans := transporttest.NewMockTransport(mockCtrl)

	captured := expectSend(trans, response(200,
		`{"messages": {"free": 10, "claimed": 2, "total": 12}}`), nil)
	stats, err := QueueGetStats(context.Background(), trans, newRequest(), "jobs")
	require.NoError(t, err)
	assert.Equal(t, "/v1/queues/jobs/stats", captured.req.Path)
	assert.Equal(t, &QueueStats{Messages: MessageCounts{Free: 10, Claimed: 2, Total: 12}}, stats)
}

func TestQueueList(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	trans := transporttest.NewMockTransport(mockCtrl)

	captured := expectSend(trans, response(200, `{
		"queues": [
			{"name": "jobs", "href": "/v1/queues/jobs"},
			{"name": "mail", "href": "/v1/queues/mail"}
		],
		"links": [{"rel": "next", "href": "/v1/queues?marker=mail&limit=2"}]
	}`), nil)

	page, err := QueueList(context.Background(), trans, newRequest(), ListQueuesRequest{
		Limit:    2,
		Marker:   "aardvark",
		Detailed: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "GET", captured.req.Method)
	assert.Equal(t, "/v1/queues", captured.req.Path)
	assert.Equal(t, "2", captured.req.Query.Get("limit"))
	assert.Equal(t, "aardvark", captured.req.Query.Get("marker"))
	assert.Equal(t, "true", captured.req.Query.Get("detailed"))

	require.Len(t, page.Queues, 2)
	assert.Equal(t, "jobs", page.Queues[0].Name)
	assert.Equal(t, "mail", page.Marker)
}

func TestQueueListNoFilters(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	trans := transporttest.NewMockTransport(mockCtrl)

	captured := expectSend(trans, response(200, `{"queues": []}`), nil)
	page, err := QueueList(context.Background(), trans, newRequest(), ListQueuesRequest{})
	require.NoError(t, err)

	assert.Empty(t, captured.req.Query)
	assert.Empty(t, page.Queues)
	assert.Empty(t, page.Marker)
}

func TestQueueListTransportError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()
	trans := transporttest.NewMockTransport(mockCtrl)

	expectSend(trans, nil, errors.New("boom"))
	_, err := QueueList(context.Background(), trans, newRequest(), ListQueuesRequest{})
	assert.Error(t, err)
}
