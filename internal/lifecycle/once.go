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

// Package lifecycle provides an at-most-once start/stop helper for
// transports.
package lifecycle

import (
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/herald/heralderrors"
)

// State represents the states a lifecycle object can be in.
type State int32

const (
	// Idle indicates the lifecycle hasn't been operated on yet.
	Idle State = iota

	// Running indicates that the lifecycle has finished starting and is
	// available.
	Running

	// Stopped indicates that the lifecycle has been stopped.
	Stopped
)

// Once is a helper for objects that advance monotonically through lifecycle
// states using at-most-once start and stop implementations in a thread safe
// manner.
type Once struct {
	mu    sync.Mutex
	state atomic.Int32
	err   error
}

// NewOnce returns a lifecycle controller in the Idle state.
func NewOnce() *Once {
	return &Once{}
}

// Start runs f at most once and transitions to Running. Subsequent calls
// return the error of the first call. Starting after Stop is an error.
func (o *Once) Start(f func() error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch State(o.state.Load()) {
	case Running:
		return o.err
	case Stopped:
		return heralderrors.UnavailableErrorf("cannot start: already stopped")
	}

	if f != nil {
		o.err = f()
	}
	o.state.Store(int32(Running))
	return o.err
}

// Stop runs f at most once and transitions to Stopped. Stopping an Idle
// lifecycle skips f. Subsequent calls return the error of the first call.
func (o *Once) Stop(f func() error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch State(o.state.Load()) {
	case Stopped:
		return o.err
	case Idle:
		o.state.Store(int32(Stopped))
		return nil
	}

	if f != nil {
		o.err = f()
	}
	o.state.Store(int32(Stopped))
	return o.err
}

// IsRunning returns whether the lifecycle is currently in the Running
// state.
func (o *Once) IsRunning() bool {
	return State(o.state.Load()) == Running
}

// State returns the current state.
func (o *Once) State() State {
	return State(o.state.Load())
}
