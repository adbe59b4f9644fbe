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

	"go.uber.org/herald/wire"
)

// Claim holds a batch of messages claimed from a queue for exclusive
// processing. A Claim is not safe for concurrent use.
type Claim struct {
	queue    *Queue
	id       string
	ttl      int
	age      int
	messages []Message
}

// Claim claims a batch of messages for exclusive processing. It returns
// nil when the queue had no messages available to claim.
func (q *Queue) Claim(ctx context.Context, cr ClaimRequest) (*Claim, error) {
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return nil, err
	}
	info, err := wire.ClaimCreate(ctx, trans, req, q.name, cr)
	q.client.observe("claim_create", err)
	if err != nil || info == nil {
		return nil, err
	}
	return &Claim{
		queue:    q,
		id:       info.ID,
		ttl:      info.TTL,
		messages: info.Messages,
	}, nil
}

// ID returns the claim's identifier.
func (c *Claim) ID() string {
	return c.id
}

// TTL returns how long, in seconds, the claim holds its messages.
func (c *Claim) TTL() int {
	return c.ttl
}

// Age returns the claim's age in seconds as of the last Refresh.
func (c *Claim) Age() int {
	return c.age
}

// Messages returns the messages held by the claim.
func (c *Claim) Messages() []Message {
	return c.messages
}

// Refresh re-fetches the claim's state from the service, updating its
// TTL, age and message set.
func (c *Claim) Refresh(ctx context.Context) error {
	q := c.queue
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return err
	}
	info, err := wire.ClaimGet(ctx, trans, req, q.name, c.id)
	q.client.observe("claim_get", err)
	if err != nil {
		return err
	}

	c.ttl = info.TTL
	c.age = info.Age
	c.messages = info.Messages
	return nil
}

// Update extends the claim's TTL.
func (c *Claim) Update(ctx context.Context, ttl int) error {
	q := c.queue
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return err
	}
	err = wire.ClaimUpdate(ctx, trans, req, q.name, c.id, ttl)
	q.client.observe("claim_update", err)
	if err != nil {
		return err
	}

	c.ttl = ttl
	return nil
}

// Release releases the claim, making its messages claimable again.
func (c *Claim) Release(ctx context.Context) error {
	q := c.queue
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return err
	}
	err = wire.ClaimRelease(ctx, trans, req, q.name, c.id)
	q.client.observe("claim_release", err)
	return err
}
