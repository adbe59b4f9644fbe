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
	"io/ioutil"
	"strings"

	"github.com/golang/mock/gomock"
	"go.uber.org/herald/api/transport"
	"go.uber.org/herald/api/transport/transporttest"
)

// newRequest builds a prepared request the way the client's request
// builder would.
func newRequest() *transport.Request {
	return &transport.Request{
		Endpoint: "https://queues.example.org",
		API:      "queues.v1",
		Headers:  transport.NewHeaders().With("Client-ID", "client-1"),
	}
}

func response(status int, body string) *transport.Response {
	res := &transport.Response{Status: status}
	if body != "" {
		res.Body = ioutil.NopCloser(strings.NewReader(body))
	}
	return res
}

// capturedRequest records the request a mocked Send received, with its
// body drained so tests can assert on the encoded payload.
type capturedRequest struct {
	req  *transport.Request
	body []byte
}

func expectSend(trans *transporttest.MockTransport, res *transport.Response, err error) *capturedRequest {
	captured := &capturedRequest{}
	trans.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *transport.Request) (*transport.Response, error) {
			captured.req = req
			if req.Body != nil {
				captured.body, _ = ioutil.ReadAll(req.Body)
			}
			return res, err
		},
	)
	return captured
}
