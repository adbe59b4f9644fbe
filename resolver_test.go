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
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/herald/api/transport"
	"go.uber.org/herald/api/transport/transporttest"
	"go.uber.org/herald/heralderrors"
	"go.uber.org/zap"
)

func TestResolverCachesPerEndpoint(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	trans := transporttest.NewMockTransport(mockCtrl)
	trans.EXPECT().Start().Return(nil)

	builds := 0
	spec := transport.Spec{
		Scheme: "test",
		Build: func() (transport.Transport, error) {
			builds++
			return trans, nil
		},
	}
	r := newResolver([]transport.Spec{spec}, nil, zap.NewNop())

	first, err := r.resolve(&transport.Request{Endpoint: "test://queues"})
	require.NoError(t, err)
	second, err := r.resolve(&transport.Request{Endpoint: "test://queues"})
	require.NoError(t, err)

	assert.True(t, first == second, "same endpoint must resolve to the same transport")
	assert.Equal(t, 1, builds, "the transport must be constructed once")
}

func TestResolverBuildsPerEndpoint(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	builds := 0
	spec := transport.Spec{
		Scheme: "test",
		Build: func() (transport.Transport, error) {
			builds++
			trans := transporttest.NewMockTransport(mockCtrl)
			trans.EXPECT().Start().Return(nil)
			return trans, nil
		},
	}
	r := newResolver([]transport.Spec{spec}, nil, zap.NewNop())

	first, err := r.resolve(&transport.Request{Endpoint: "test://one"})
	require.NoError(t, err)
	second, err := r.resolve(&transport.Request{Endpoint: "test://two"})
	require.NoError(t, err)

	assert.False(t, first == second, "distinct endpoints get distinct transports")
	assert.Equal(t, 2, builds)
}

func TestResolverDefaultFallback(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	def := transporttest.NewMockTransport(mockCtrl)
	r := newResolver(nil, def, zap.NewNop())

	got, err := r.resolve(&transport.Request{Endpoint: "test://queues"})
	require.NoError(t, err)
	assert.True(t, got == transport.Transport(def))
}

func TestResolverUnsupportedScheme(t *testing.T) {
	r := newResolver(nil, nil, zap.NewNop())

	_, err := r.resolve(&transport.Request{Endpoint: "test://queues"})
	require.Error(t, err)
	assert.True(t, heralderrors.IsUnavailable(err))
	assert.Contains(t, err.Error(), `"test"`)
}

func TestResolverInvalidEndpoint(t *testing.T) {
	r := newResolver(nil, nil, zap.NewNop())

	_, err := r.resolve(&transport.Request{Endpoint: "://queues"})
	require.Error(t, err)
	assert.True(t, heralderrors.IsInvalidArgument(err))
}

func TestResolverBuildError(t *testing.T) {
	wantErr := errors.New("build failed")
	spec := transport.Spec{
		Scheme: "test",
		Build: func() (transport.Transport, error) {
			return nil, wantErr
		},
	}
	r := newResolver([]transport.Spec{spec}, nil, zap.NewNop())

	_, err := r.resolve(&transport.Request{Endpoint: "test://queues"})
	assert.Equal(t, wantErr, err)
}

func TestResolverInvalidate(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	builds := 0
	spec := transport.Spec{
		Scheme: "test",
		Build: func() (transport.Transport, error) {
			builds++
			trans := transporttest.NewMockTransport(mockCtrl)
			trans.EXPECT().Start().Return(nil)
			trans.EXPECT().Stop().Return(nil)
			return trans, nil
		},
	}
	r := newResolver([]transport.Spec{spec}, nil, zap.NewNop())

	_, err := r.resolve(&transport.Request{Endpoint: "test://queues"})
	require.NoError(t, err)
	require.NoError(t, r.invalidate("test://queues"))

	// The next resolution constructs a fresh transport.
	_, err = r.resolve(&transport.Request{Endpoint: "test://queues"})
	require.NoError(t, err)
	assert.Equal(t, 2, builds)

	require.NoError(t, r.stopAll())
}

func TestResolverInvalidateMiss(t *testing.T) {
	r := newResolver(nil, nil, zap.NewNop())
	assert.NoError(t, r.invalidate("test://never-seen"))
}

func TestResolverStopAll(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	spec := transport.Spec{
		Scheme: "test",
		Build: func() (transport.Transport, error) {
			trans := transporttest.NewMockTransport(mockCtrl)
			trans.EXPECT().Start().Return(nil)
			trans.EXPECT().Stop().Return(nil)
			return trans, nil
		},
	}
	r := newResolver([]transport.Spec{spec}, nil, zap.NewNop())

	_, err := r.resolve(&transport.Request{Endpoint: "test://one"})
	require.NoError(t, err)
	_, err = r.resolve(&transport.Request{Endpoint: "test://two"})
	require.NoError(t, err)

	require.NoError(t, r.stopAll())
	assert.Empty(t, r.cache)
}

func TestResolverLaterSpecWins(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	trans := transporttest.NewMockTransport(mockCtrl)
	trans.EXPECT().Start().Return(nil)

	loser := transport.Spec{Scheme: "test", Build: func() (transport.Transport, error) {
		t.Fatal("overridden spec must not build")
		return nil, nil
	}}
	winner := transport.Spec{Scheme: "test", Build: func() (transport.Transport, error) {
		return trans, nil
	}}
	r := newResolver([]transport.Spec{loser, winner}, nil, zap.NewNop())

	got, err := r.resolve(&transport.Request{Endpoint: "test://queues"})
	require.NoError(t, err)
	assert.True(t, got == transport.Transport(trans))
}
