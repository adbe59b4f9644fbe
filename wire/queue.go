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
	"net/url"
	"strconv"

	"go.uber.org/herald/api/transport"
	"go.uber.org/herald/heralderrors"
)

// Metadata is the free-form metadata object attached to a queue.
type Metadata map[string]interface{}

// QueueStats reports the message counts of a queue.
type QueueStats struct {
	Messages MessageCounts `json:"messages"`
}

// MessageCounts breaks down a queue's messages by claim state.
type MessageCounts struct {
	Free    int `json:"free"`
	Claimed int `json:"claimed"`
	Total   int `json:"total"`
}

// QueueItem is one entry of a queue listing.
type QueueItem struct {
	Name     string   `json:"name"`
	Href     string   `json:"href"`
	Metadata Metadata `json:"metadata,omitempty"`
}

// QueuePage is one page of a queue listing. Marker, when non-empty, is the
// pagination marker for requesting the next page; the SDK never requests
// it automatically.
type QueuePage struct {
	Queues []QueueItem
	Marker string
}

// ListQueuesRequest carries the server-side filters of a queue listing.
type ListQueuesRequest struct {
	// Limit caps the number of queues returned in the page.
	Limit int

	// Marker resumes listing after the named queue.
	Marker string

	// Detailed includes each queue's metadata in the listing.
	Detailed bool
}

// QueueExists probes for the queue. A not-found answer from the service is
// a false result, not an error.
func QueueExists(ctx context.Context, t transport.Transport, req *transport.Request, name string) (bool, error) {
	res, err := invoke(ctx, t, req, "GET", "/queues/"+url.PathEscape(name), nil, nil)
	if err != nil {
		if heralderrors.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, discard(res)
}

// QueueCreate creates the queue. The operation is idempotent on the
// service side; creating an existing queue succeeds.
func QueueCreate(ctx context.Context, t transport.Transport, req *transport.Request, name string) error {
	res, err := invoke(ctx, t, req, "PUT", "/queues/"+url.PathEscape(name), nil, nil)
	if err != nil {
		return err
	}
	return discard(res)
}

// QueueDelete deletes the queue and all of its messages.
func QueueDelete(ctx context.Context, t transport.Transport, req *transport.Request, name string) error {
	res, err := invoke(ctx, t, req, "DELETE", "/queues/"+url.PathEscape(name), nil, nil)
	if err != nil {
		return err
	}
	return discard(res)
}

// QueueGetMetadata fetches the queue's metadata object.
func QueueGetMetadata(ctx context.Context, t transport.Transport, req *transport.Request, name string) (Metadata, error) {
	res, err := invoke(ctx, t, req, "GET", "/queues/"+url.PathEscape(name)+"/metadata", nil, nil)
	if err != nil {
		return nil, err
	}
	var meta Metadata
	if err := decodeJSON(res, &meta); err != nil {
		return nil, err
	}
	return meta, nil
}

// QueueSetMetadata replaces the queue's metadata object.
func QueueSetMetadata(ctx context.Context, t transport.Transport, req *transport.Request, name string, meta Metadata) error {
	res, err := invoke(ctx, t, req, "PUT", "/queues/"+url.PathEscape(name)+"/metadata", nil, meta)
	if err != nil {
		return err
	}
	return discard(res)
}

// QueueGetStats fetches the queue's message counts.
func QueueGetStats(ctx context.Context, t transport.Transport, req *transport.Request, name string) (*QueueStats, error) {
	res, err := invoke(ctx, t, req, "GET", "/queues/"+url.PathEscape(name)+"/stats", nil, nil)
	if err != nil {
		return nil, err
	}
	var stats QueueStats
	if err := decodeJSON(res, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// QueueList fetches one page of the project's queues.
func QueueList(ctx context.Context, t transport.Transport, req *transport.Request, lr ListQueuesRequest) (*QueuePage, error) {
	query := url.Values{}
	if lr.Limit > 0 {
		query.Set("limit", strconv.Itoa(lr.Limit))
	}
	if lr.Marker != "" {
		query.Set("marker", lr.Marker)
	}
	if lr.Detailed {
		query.Set("detailed", "true")
	}

	res, err := invoke(ctx, t, req, "GET", "/queues", query, nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Queues []QueueItem `json:"queues"`
		Links  []link      `json:"links"`
	}
	if err := decodeJSON(res, &body); err != nil {
		return nil, err
	}
	return &QueuePage{
		Queues: body.Queues,
		Marker: nextMarker(body.Links),
	}, nil
}
