// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wmi

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/cns-wmi/pkg/errors"
)

type stubHandler struct {
	opts int
}

func (s *stubHandler) Execute(_ context.Context, q Query) (*Result, error) {
	return emptyResult(q), nil
}

func newTestFactory(t *testing.T, opts ...FactoryOption) *Factory {
	t.Helper()
	base := []FactoryOption{
		WithFactoryLogger(discardLogger()),
		WithHandlerOptions(WithRuntime(&fakeRuntime{}), WithDispatcher(&fakeDispatcher{}), WithLogger(discardLogger())),
	}
	f, err := NewFactory(append(base, opts...)...)
	assert.NoError(t, err)
	return f
}

func TestNewFactory_RejectsInvalidTimeout(t *testing.T) {
	for _, ms := range []int64{0, -2, -1000} {
		f, err := NewFactory(WithDefaultTimeout(ms))
		assert.Nil(t, f)
		assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidConfig), "timeout %d", ms)
	}
}

func TestFactory_CreateInstanceDefault(t *testing.T) {
	f := newTestFactory(t, WithDefaultTimeout(5000))

	h := f.CreateInstance()
	qh, ok := h.(*QueryHandler)
	assert.True(t, ok)
	assert.Equal(t, int64(5000), qh.Timeout())

	assert.NotSame(t, qh, f.CreateInstance(), "each call creates a new handler")
}

func TestFactory_SetInstanceConstructor(t *testing.T) {
	f := newTestFactory(t)

	var received int
	f.SetInstanceConstructor(func(opts ...Option) (Handler, error) {
		received = len(opts)
		return &stubHandler{opts: len(opts)}, nil
	})
	_, ok := f.CreateInstance().(*stubHandler)
	assert.True(t, ok)
	assert.Equal(t, 4, received, "timeout plus the factory handler options")

	// last write wins
	f.SetInstanceConstructor(func(...Option) (Handler, error) {
		return DefaultConstructor(WithRuntime(&fakeRuntime{}), WithDispatcher(&fakeDispatcher{}))
	})
	_, ok = f.CreateInstance().(*QueryHandler)
	assert.True(t, ok)

	f.SetInstanceConstructor(nil)
	_, ok = f.CreateInstance().(*QueryHandler)
	assert.True(t, ok, "nil restores the default")
}

func TestFactory_CreateInstanceFailures(t *testing.T) {
	tests := []struct {
		name string
		c    Constructor
		log  string
	}{
		{
			name: "constructor error",
			c: func(...Option) (Handler, error) {
				return nil, stderrors.New("no default constructor")
			},
			log: "failed to create WMI query handler",
		},
		{
			name: "constructor panic",
			c: func(...Option) (Handler, error) {
				panic("boom")
			},
			log: "handler constructor panicked",
		},
		{
			name: "nil instance",
			c: func(...Option) (Handler, error) {
				return nil, nil
			},
			log: "handler constructor returned no instance",
		},
		{
			name: "typed nil instance",
			c: func(...Option) (Handler, error) {
				var h *stubHandler
				return h, nil
			},
			log: "handler constructor returned no instance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := newCapturingLogger()
			f := newTestFactory(t, WithFactoryLogger(logger), WithConstructor(tt.c))

			h := f.CreateInstance()
			assert.True(t, h == nil, "expected an untyped nil handler, got %#v", h)
			assert.Contains(t, logs.String(), tt.log)
			assert.Contains(t, logs.String(), `"level":"ERROR"`)
		})
	}
}

func TestFactory_DefaultConstructorInvalidOptions(t *testing.T) {
	h, err := DefaultConstructor(WithTimeout(0))
	assert.Nil(t, h, "no typed nil behind the interface")
	assert.Error(t, err)
}
