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
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// fakeRuntime records COM calls. When foreign is set the thread behaves as
// if another component initialized it under that model first.
type fakeRuntime struct {
	mu             sync.Mutex
	foreign        *ThreadingModel
	initStatus     HRESULT
	securityStatus HRESULT

	initCalls     []ThreadingModel
	active        []ThreadingModel
	acquired      int
	released      int
	securityCalls int
}

func (f *fakeRuntime) Initialize(m ThreadingModel) HRESULT {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCalls = append(f.initCalls, m)
	if f.foreign != nil {
		if *f.foreign != m {
			return RPCEChangedMode
		}
		f.acquired++
		f.active = append(f.active, m)
		return SFalse
	}
	if f.initStatus.Failed() {
		return f.initStatus
	}
	f.acquired++
	f.active = append(f.active, m)
	return f.initStatus
}

func (f *fakeRuntime) Uninitialize() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released++
	if n := len(f.active); n > 0 {
		f.active = f.active[:n-1]
	}
}

func (f *fakeRuntime) InitializeSecurity(SecurityBlanket) HRESULT {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.securityCalls++
	return f.securityStatus
}

func (f *fakeRuntime) counts() (acquired, released, security int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.acquired, f.released, f.securityCalls
}

// current returns the model of the innermost live acquisition, or false when
// COM is not held.
func (f *fakeRuntime) current() (ThreadingModel, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.active) == 0 {
		return 0, false
	}
	return f.active[len(f.active)-1], true
}

func (f *fakeRuntime) models() []ThreadingModel {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ThreadingModel(nil), f.initCalls...)
}

// fakeDispatcher returns canned rows or an error. With block set it waits
// for the context like the native dispatcher does.
type fakeDispatcher struct {
	mu    sync.Mutex
	rows  []map[string]any
	err   error
	block bool
	calls int
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, _ Query) ([]map[string]any, error) {
	d.mu.Lock()
	d.calls++
	rows, err, block := d.rows, d.err, d.block
	d.mu.Unlock()

	if block {
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrQueryTimeout
		}
		return nil, ctx.Err()
	}
	return rows, err
}

func (d *fakeDispatcher) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// logBuffer is a concurrency-safe sink for a JSON slog handler.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *logBuffer) count(substr string) int {
	return strings.Count(b.String(), substr)
}

func newCapturingLogger() (*slog.Logger, *logBuffer) {
	b := &logBuffer{}
	return slog.New(slog.NewJSONHandler(b, &slog.HandlerOptions{Level: slog.LevelDebug})), b
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func statusErr(hr HRESULT) error {
	return &StatusError{Op: "ExecQuery", Status: hr}
}

func newTestHandler(rt *fakeRuntime, d *fakeDispatcher, opts ...Option) *QueryHandler {
	base := []Option{
		WithRuntime(rt),
		WithDispatcher(d),
		WithLogger(discardLogger()),
	}
	h, err := NewQueryHandler(append(base, opts...)...)
	if err != nil {
		panic(err)
	}
	return h
}
