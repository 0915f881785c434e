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
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/NVIDIA/cns-wmi/pkg/defaults"
)

// Handler executes WMI queries. *QueryHandler is the standard
// implementation; a Factory can be configured to hand out another one.
type Handler interface {
	Execute(ctx context.Context, q Query) (*Result, error)
}

// Constructor builds a Handler from handler options.
type Constructor func(opts ...Option) (Handler, error)

// DefaultConstructor builds a *QueryHandler.
func DefaultConstructor(opts ...Option) (Handler, error) {
	h, err := NewQueryHandler(opts...)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Factory creates handlers. It is meant to be configured once at startup
// and passed to the components that need handlers.
type Factory struct {
	timeoutMillis int64
	handlerOpts   []Option
	logger        *slog.Logger

	mu          sync.RWMutex
	constructor Constructor
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithDefaultTimeout sets the timeout, in milliseconds, given to every
// handler the factory creates.
func WithDefaultTimeout(ms int64) FactoryOption {
	return func(f *Factory) {
		f.timeoutMillis = ms
	}
}

// WithHandlerOptions appends options passed to every constructed handler.
func WithHandlerOptions(opts ...Option) FactoryOption {
	return func(f *Factory) {
		f.handlerOpts = append(f.handlerOpts, opts...)
	}
}

// WithConstructor registers a custom constructor at creation time.
func WithConstructor(c Constructor) FactoryOption {
	return func(f *Factory) {
		f.constructor = c
	}
}

// WithFactoryLogger sets the logger used for construction failures.
func WithFactoryLogger(l *slog.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = l
	}
}

// NewFactory returns a factory. The timeout is validated here so a bad
// configuration fails before any handler exists.
func NewFactory(opts ...FactoryOption) (*Factory, error) {
	f := &Factory{
		timeoutMillis: defaults.WMITimeoutMillis,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := ValidateTimeout(f.timeoutMillis); err != nil {
		return nil, err
	}
	return f, nil
}

// SetInstanceConstructor registers the constructor CreateInstance uses.
// The last call wins; nil restores the default.
func (f *Factory) SetInstanceConstructor(c Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructor = c
}

// CreateInstance returns a new handler from the registered constructor, or
// a *QueryHandler when none is registered. A constructor that fails or
// panics is logged and yields nil; callers should treat nil as the factory
// being unavailable.
func (f *Factory) CreateInstance() (h Handler) {
	f.mu.RLock()
	c := f.constructor
	f.mu.RUnlock()

	custom := c != nil
	if !custom {
		c = DefaultConstructor
	}

	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("handler constructor panicked",
				"custom", custom,
				"panic", fmt.Sprint(r))
			h = nil
		}
	}()

	opts := make([]Option, 0, len(f.handlerOpts)+1)
	opts = append(opts, WithTimeout(f.timeoutMillis))
	opts = append(opts, f.handlerOpts...)

	h, err := c(opts...)
	if err != nil {
		f.logger.Error("failed to create WMI query handler",
			"custom", custom,
			"error", err)
		return nil
	}
	if isNilHandler(h) {
		f.logger.Error("handler constructor returned no instance", "custom", custom)
		return nil
	}
	return h
}

// isNilHandler also catches a nil pointer stored in the interface, which
// would otherwise pass the nil check and panic on first use.
func isNilHandler(h Handler) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
