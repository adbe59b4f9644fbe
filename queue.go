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
	"sync"

	"go.uber.org/herald/heralderrors"
	"go.uber.org/herald/wire"
)

// The domain types of the service are defined next to their wire encoding
// and re-exported here for callers.
type (
	// Metadata is the free-form metadata object attached to a queue.
	Metadata = wire.Metadata

	// Message is a single message of a queue.
	Message = wire.Message

	// PostResult is the service's answer to a message post.
	PostResult = wire.PostResult

	// MessagePage is one page of a message listing.
	MessagePage = wire.MessagePage

	// ListMessagesRequest carries the server-side filters of a message
	// listing.
	ListMessagesRequest = wire.ListMessagesRequest

	// QueueStats reports the message counts of a queue.
	QueueStats = wire.QueueStats

	// QueuePage is one page of a queue listing.
	QueuePage = wire.QueuePage

	// ListQueuesRequest carries the server-side filters of a queue
	// listing.
	ListQueuesRequest = wire.ListQueuesRequest

	// ClaimRequest carries the parameters of a new claim.
	ClaimRequest = wire.ClaimRequest
)

type queueOptions struct {
	noAutoCreate bool
}

// QueueOption customizes queue handle construction.
type QueueOption func(*queueOptions)

// NoAutoCreate skips the create-if-absent call normally issued when a
// queue handle is constructed.
func NoAutoCreate() QueueOption {
	return func(o *queueOptions) {
		o.noAutoCreate = true
	}
}

// Queue is a handle on one queue of the service. The handle caches the
// queue's metadata locally; nothing else is cached. The metadata cache is
// guarded by a per-handle lock, everything else on the handle is
// immutable.
type Queue struct {
	client *Client
	name   string

	mu       sync.Mutex
	metadata Metadata
}

// Queue returns a handle on the named queue. Unless NoAutoCreate is
// given, the handle immediately issues a create-if-absent call. That call
// is not race safe: another actor could delete the queue right after it
// returns, leaving the handle believing the queue exists.
func (c *Client) Queue(ctx context.Context, name string, opts ...QueueOption) (*Queue, error) {
	if name == "" {
		return nil, heralderrors.InvalidArgumentErrorf("queue name is required")
	}

	var qo queueOptions
	for _, opt := range opts {
		opt(&qo)
	}

	q := &Queue{client: c, name: name}
	if !qo.noAutoCreate {
		if err := q.EnsureExists(ctx); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// Name returns the queue's name.
func (q *Queue) Name() string {
	return q.name
}

// Exists checks whether the queue exists. The probe is stateless; it
// never consults or updates the metadata cache.
func (q *Queue) Exists(ctx context.Context) (bool, error) {
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return false, err
	}
	ok, err := wire.QueueExists(ctx, trans, req, q.name)
	q.client.observe("queue_exists", err)
	return ok, err
}

// EnsureExists creates the queue if it is absent. Creating an existing
// queue is a no-op on the service side, so EnsureExists is idempotent.
func (q *Queue) EnsureExists(ctx context.Context) error {
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return err
	}
	err = wire.QueueCreate(ctx, trans, req, q.name)
	q.client.observe("queue_create", err)
	return err
}

// Metadata returns the queue's metadata, fetching from the service only
// when no locally cached copy exists. The cache has no TTL: it is
// refreshed only by ReloadMetadata or SetMetadata, and dropped only by
// InvalidateMetadata or a successful Delete.
func (q *Queue) Metadata(ctx context.Context) (Metadata, error) {
	q.mu.Lock()
	cached := q.metadata
	q.mu.Unlock()

	if cached != nil {
		return cached, nil
	}
	return q.ReloadMetadata(ctx)
}

// ReloadMetadata fetches the metadata from the service, ignoring and
// repopulating the local cache.
func (q *Queue) ReloadMetadata(ctx context.Context) (Metadata, error) {
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return nil, err
	}
	meta, err := wire.QueueGetMetadata(ctx, trans, req, q.name)
	q.client.observe("queue_get_metadata", err)
	if err != nil {
		return nil, err
	}

	q.mu.Lock()
	q.metadata = meta
	q.mu.Unlock()
	return meta, nil
}

// SetMetadata replaces the queue's metadata remotely and caches the new
// value locally. The cache trusts that the service stored the object
// verbatim; there is no read-back verification.
func (q *Queue) SetMetadata(ctx context.Context, meta Metadata) error {
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return err
	}
	err = wire.QueueSetMetadata(ctx, trans, req, q.name, meta)
	q.client.observe("queue_set_metadata", err)
	if err != nil {
		return err
	}

	q.mu.Lock()
	q.metadata = meta
	q.mu.Unlock()
	return nil
}

// InvalidateMetadata drops the locally cached metadata. The next call to
// Metadata fetches from the service.
func (q *Queue) InvalidateMetadata() {
	q.mu.Lock()
	q.metadata = nil
	q.mu.Unlock()
}

// Delete deletes the queue and all of its messages, and drops the locally
// cached metadata. The handle remains usable; EnsureExists recreates the
// queue.
func (q *Queue) Delete(ctx context.Context) error {
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return err
	}
	err = wire.QueueDelete(ctx, trans, req, q.name)
	q.client.observe("queue_delete", err)
	if err != nil {
		return err
	}

	q.InvalidateMetadata()
	return nil
}

// Stats reports the queue's message counts.
func (q *Queue) Stats(ctx context.Context) (*QueueStats, error) {
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return nil, err
	}
	stats, err := wire.QueueGetStats(ctx, trans, req, q.name)
	q.client.observe("queue_stats", err)
	return stats, err
}

// Post posts one or more messages to the queue in a single batched
// request and returns the assigned resources. Posting one message and
// posting a one-element batch are the same call.
func (q *Queue) Post(ctx context.Context, messages ...Message) (*PostResult, error) {
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return nil, err
	}
	result, err := wire.MessagePost(ctx, trans, req, q.name, messages)
	q.client.observe("message_post", err)
	return result, err
}

// GetMessage looks up a single message by id. No local caching.
func (q *Queue) GetMessage(ctx context.Context, id string) (*Message, error) {
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return nil, err
	}
	msg, err := wire.MessageGet(ctx, trans, req, q.name, id)
	q.client.observe("message_get", err)
	return msg, err
}

// GetMessages looks up a set of messages by id in one request. No local
// caching.
func (q *Queue) GetMessages(ctx context.Context, ids ...string) ([]Message, error) {
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return nil, err
	}
	msgs, err := wire.MessageGetMany(ctx, trans, req, q.name, ids)
	q.client.observe("message_get_many", err)
	return msgs, err
}

// ListMessages fetches exactly one page of the queue's messages using the
// given server-side filters, issuing exactly one request no matter how
// many messages exist. The returned page carries the marker for the next
// page; requesting it is the caller's concern.
func (q *Queue) ListMessages(ctx context.Context, lr ListMessagesRequest) (*MessagePage, error) {
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return nil, err
	}
	page, err := wire.MessageList(ctx, trans, req, q.name, lr)
	q.client.observe("message_list", err)
	return page, err
}

// DeleteMessage deletes a single message by id.
func (q *Queue) DeleteMessage(ctx context.Context, id string) error {
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return err
	}
	err = wire.MessageDelete(ctx, trans, req, q.name, id)
	q.client.observe("message_delete", err)
	return err
}

// DeleteMessages deletes a set of messages by id in one request.
func (q *Queue) DeleteMessages(ctx context.Context, ids ...string) error {
	req, trans, err := q.client.requestAndTransport()
	if err != nil {
		return err
	}
	err = wire.MessageDeleteMany(ctx, trans, req, q.name, ids)
	q.client.observe("message_delete_many", err)
	return err
}
