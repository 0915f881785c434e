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
	"errors"
)

// ErrQueryTimeout is returned by a Dispatcher when the deadline elapses
// before the provider answers.
var ErrQueryTimeout = errors.New("wmi query timed out")

// Dispatcher runs one query against the management provider and returns the
// raw instances. Each instance maps property names to Go values as decoded
// from VARIANTs.
//
// The handler calls Dispatch on a locked OS thread where it has already
// initialized COM, between acquiring and releasing the runtime. A dispatcher
// that reports a CoInitializeEx failure of its own gets a NATIVE_INIT error
// back to the caller, never a memoized class. Returning early on ctx
// cancellation is optional: the handler stops waiting at the deadline.
type Dispatcher interface {
	Dispatch(ctx context.Context, q Query) ([]map[string]any, error)
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, q Query) ([]map[string]any, error)

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, q Query) ([]map[string]any, error) {
	return f(ctx, q)
}

// NativeDispatcher returns the platform query dispatcher.
func NativeDispatcher() Dispatcher {
	return nativeDispatcher{}
}
