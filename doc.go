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

// Package herald is a client for a hosted message-queueing service. It
// exposes queues, their metadata, and the messages and claims within
// them, translating method calls into requests executed through a
// pluggable, per-endpoint transport.
//
//	client, err := herald.New(herald.Config{
//		Endpoint: "https://queues.example.org",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	queue, err := client.Queue(ctx, "jobs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := queue.Post(ctx, herald.Message{
//		TTL:  300,
//		Body: map[string]string{"event": "signup"},
//	})
//
// Every operation is synchronous and issues exactly one round trip;
// failures propagate to the caller as *heralderrors.Status values with no
// retries.
package herald
