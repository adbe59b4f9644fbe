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
	"path"
	"strconv"

	"go.uber.org/herald/api/transport"
)

// ClaimRequest carries the parameters of a new claim.
type ClaimRequest struct {
	// TTL is how long, in seconds, the claim holds its messages.
	TTL int `json:"ttl"`

	// Grace extends the lifetime of claimed messages, in seconds, so they
	// don't expire while held.
	Grace int `json:"grace"`

	// Limit caps the number of messages claimed. Zero uses the service's
	// default.
	Limit int `json:"-"`
}

// ClaimInfo describes a claim and the messages it holds.
type ClaimInfo struct {
	ID       string
	TTL      int
	Age      int
	Messages []Message
}

// ClaimCreate claims a batch of messages for exclusive processing. It
// returns nil when the queue has no messages available to claim.
func ClaimCreate(ctx context.Context, t transport.Transport, req *transport.Request, queue string, cr ClaimRequest) (*ClaimInfo, error) {
	query := url.Values{}
	if cr.Limit > 0 {
		query.Set("limit", strconv.Itoa(cr.Limit))
	}

	res, err := invoke(ctx, t, req, "POST", claimsPath(queue), query, cr)
	if err != nil {
		return nil, err
	}
	if res.Status == 204 {
		return nil, discard(res)
	}

	var messages []Message
	if err := decodeJSON(res, &messages); err != nil {
		return nil, err
	}

	info := &ClaimInfo{
		TTL:      cr.TTL,
		Messages: messages,
	}
	if location, ok := res.Headers.Get("Location"); ok {
		info.ID = path.Base(location)
	}
	return info, nil
}

// ClaimGet fetches the current state of a claim.
func ClaimGet(ctx context.Context, t transport.Transport, req *transport.Request, queue, id string) (*ClaimInfo, error) {
	res, err := invoke(ctx, t, req, "GET", claimsPath(queue)+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		TTL      int       `json:"ttl"`
		Age      int       `json:"age"`
		Messages []Message `json:"messages"`
	}
	if err := decodeJSON(res, &body); err != nil {
		return nil, err
	}
	return &ClaimInfo{
		ID:       id,
		TTL:      body.TTL,
		Age:      body.Age,
		Messages: body.Messages,
	}, nil
}

// ClaimUpdate extends the TTL of an existing claim.
func ClaimUpdate(ctx context.Context, t transport.Transport, req *transport.Request, queue, id string, ttl int) error {
	body := struct {
		TTL int `json:"ttl"`
	}{TTL: ttl}

	res, err := invoke(ctx, t, req, "PATCH", claimsPath(queue)+"/"+url.PathEscape(id), nil, body)
	if err != nil {
		return err
	}
	return discard(res)
}

// ClaimRelease releases a claim, making its messages claimable again.
func ClaimRelease(ctx context.Context, t transport.Transport, req *transport.Request, queue, id string) error {
	res, err := invoke(ctx, t, req, "DELETE", claimsPath(queue)+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return discard(res)
}

func claimsPath(queue string) string {
	return "/queues/" + url.PathEscape(queue) + "/claims"
}
