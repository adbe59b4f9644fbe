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
	"strings"

	"go.uber.org/herald/api/transport"
	"go.uber.org/herald/heralderrors"
)

// Message is a single message of a queue. When posting, only TTL and Body
// are sent; Href and Age are assigned by the service.
type Message struct {
	Href string      `json:"href,omitempty"`
	TTL  int         `json:"ttl"`
	Age  int         `json:"age,omitempty"`
	Body interface{} `json:"body"`
}

// ID returns the message identifier embedded in the message's href. The
// empty string means the message has not been posted yet.
func (m Message) ID() string {
	href := m.Href
	if i := strings.IndexByte(href, '?'); i >= 0 {
		href = href[:i]
	}
	if href == "" {
		return ""
	}
	return path.Base(href)
}

// PostResult is the service's answer to a message post. Resources holds
// the hrefs of the created messages in posting order; Partial reports
// whether only a subset was stored.
type PostResult struct {
	Resources []string `json:"resources"`
	Partial   bool     `json:"partial"`
}

// IDs returns the identifiers of the created messages in posting order.
func (r *PostResult) IDs() []string {
	ids := make([]string, 0, len(r.Resources))
	for _, href := range r.Resources {
		ids = append(ids, Message{Href: href}.ID())
	}
	return ids
}

// MessagePage is one page of a message listing. Marker, when non-empty,
// is the pagination marker for the next page; the SDK never requests it
// automatically.
type MessagePage struct {
	Messages []Message
	Marker   string
}

// ListMessagesRequest carries the server-side filters of a message
// listing.
type ListMessagesRequest struct {
	// Limit caps the number of messages returned in the page.
	Limit int

	// Marker resumes listing from a previous page's marker.
	Marker string

	// Echo includes messages posted by this client.
	Echo bool

	// IncludeClaimed includes messages currently held by a claim.
	IncludeClaimed bool
}

// MessagePost posts the given messages in one batched request and returns
// the assigned resources.
func MessagePost(ctx context.Context, t transport.Transport, req *transport.Request, queue string, messages []Message) (*PostResult, error) {
	if len(messages) == 0 {
		return nil, heralderrors.InvalidArgumentErrorf("no messages to post")
	}
	res, err := invoke(ctx, t, req, "POST", messagesPath(queue), nil, messages)
	if err != nil {
		return nil, err
	}
	var result PostResult
	if err := decodeJSON(res, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// MessageGet looks up a single message by id.
func MessageGet(ctx context.Context, t transport.Transport, req *transport.Request, queue, id string) (*Message, error) {
	res, err := invoke(ctx, t, req, "GET", messagesPath(queue)+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := decodeJSON(res, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MessageGetMany looks up a set of messages by id in one request.
func MessageGetMany(ctx context.Context, t transport.Transport, req *transport.Request, queue string, ids []string) ([]Message, error) {
	if len(ids) == 0 {
		return nil, heralderrors.InvalidArgumentErrorf("no message ids given")
	}
	query := url.Values{"ids": []string{strings.Join(ids, ",")}}
	res, err := invoke(ctx, t, req, "GET", messagesPath(queue), query, nil)
	if err != nil {
		return nil, err
	}
	var msgs []Message
	if err := decodeJSON(res, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// MessageList fetches exactly one page of the queue's messages using the
// given filters, no matter how many messages exist server-side.
func MessageList(ctx context.Context, t transport.Transport, req *transport.Request, queue string, lr ListMessagesRequest) (*MessagePage, error) {
	query := url.Values{}
	if lr.Limit > 0 {
		query.Set("limit", strconv.Itoa(lr.Limit))
	}
	if lr.Marker != "" {
		query.Set("marker", lr.Marker)
	}
	if lr.Echo {
		query.Set("echo", "true")
	}
	if lr.IncludeClaimed {
		query.Set("include_claimed", "true")
	}

	res, err := invoke(ctx, t, req, "GET", messagesPath(queue), query, nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Messages []Message `json:"messages"`
		Links    []link    `json:"links"`
	}
	if err := decodeJSON(res, &body); err != nil {
		return nil, err
	}
	return &MessagePage{
		Messages: body.Messages,
		Marker:   nextMarker(body.Links),
	}, nil
}

// MessageDelete deletes a single message by id.
func MessageDelete(ctx context.Context, t transport.Transport, req *transport.Request, queue, id string) error {
	res, err := invoke(ctx, t, req, "DELETE", messagesPath(queue)+"/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return discard(res)
}

// MessageDeleteMany deletes a set of messages by id in one request.
func MessageDeleteMany(ctx context.Context, t transport.Transport, req *transport.Request, queue string, ids []string) error {
	if len(ids) == 0 {
		return heralderrors.InvalidArgumentErrorf("no message ids given")
	}
	query := url.Values{"ids": []string{strings.Join(ids, ",")}}
	res, err := invoke(ctx, t, req, "DELETE", messagesPath(queue), query, nil)
	if err != nil {
		return err
	}
	return discard(res)
}

func messagesPath(queue string) string {
	return "/queues/" + url.PathEscape(queue) + "/messages"
}
