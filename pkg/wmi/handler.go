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
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/NVIDIA/cns-wmi/pkg/defaults"
	"github.com/NVIDIA/cns-wmi/pkg/errors"
)

// QueryHandler executes WMI queries with bounded time and skips classes it
// has already found unreachable. It is safe for concurrent use.
type QueryHandler struct {
	timeoutMillis  atomic.Int64
	guard          *runtimeGuard
	security       *securityInit
	dispatcher     Dispatcher
	memo           *FailureMemo
	softNamespaces []string
	failureHandler FailureHandler
	logger         *slog.Logger
}

// Option configures a QueryHandler.
type Option func(*handlerConfig)

type handlerConfig struct {
	timeoutMillis  int64
	model          ThreadingModel
	runtime        Runtime
	dispatcher     Dispatcher
	logger         *slog.Logger
	softNamespaces []string
	failureHandler FailureHandler
}

// WithTimeout sets the query timeout in milliseconds. -1 disables the
// timeout.
func WithTimeout(ms int64) Option {
	return func(c *handlerConfig) {
		c.timeoutMillis = ms
	}
}

// WithThreadingModel sets the initial COM threading model preference.
func WithThreadingModel(m ThreadingModel) Option {
	return func(c *handlerConfig) {
		c.model = m
	}
}

// WithRuntime replaces the native COM runtime.
func WithRuntime(rt Runtime) Option {
	return func(c *handlerConfig) {
		c.runtime = rt
	}
}

// WithDispatcher replaces the native query dispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(c *handlerConfig) {
		c.dispatcher = d
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *handlerConfig) {
		c.logger = l
	}
}

// WithSoftNamespaces replaces the namespaces whose failures are expected and
// not logged.
func WithSoftNamespaces(ns ...string) Option {
	return func(c *handlerConfig) {
		c.softNamespaces = append([]string(nil), ns...)
	}
}

// WithFailureHandler replaces the handler for unclassified query failures.
func WithFailureHandler(fh FailureHandler) Option {
	return func(c *handlerConfig) {
		c.failureHandler = fh
	}
}

// ValidateTimeout accepts -1 (infinite) or a positive number of milliseconds.
func ValidateTimeout(ms int64) error {
	if ms == defaults.WMITimeoutInfinite || ms > 0 {
		return nil
	}
	return errors.NewWithContext(errors.ErrCodeInvalidConfig,
		fmt.Sprintf("invalid WMI timeout %d: must be -1 (infinite) or a positive number of milliseconds", ms),
		map[string]any{"timeoutMillis": ms})
}

// NewQueryHandler returns a handler configured by opts. It fails with an
// INVALID_CONFIG error when the timeout is out of range.
func NewQueryHandler(opts ...Option) (*QueryHandler, error) {
	cfg := handlerConfig{
		timeoutMillis:  defaults.WMITimeoutMillis,
		model:          Multithreaded,
		softNamespaces: defaults.WMISoftNamespaces,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := ValidateTimeout(cfg.timeoutMillis); err != nil {
		return nil, err
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.runtime == nil {
		cfg.runtime = NativeRuntime()
	}
	if cfg.dispatcher == nil {
		cfg.dispatcher = NativeDispatcher()
	}
	if cfg.failureHandler == nil {
		cfg.failureHandler = LogFailureHandler(cfg.logger)
	}

	h := &QueryHandler{
		guard: &runtimeGuard{
			rt:     cfg.runtime,
			logger: cfg.logger,
			model:  cfg.model,
		},
		security: &securityInit{
			rt:      cfg.runtime,
			blanket: ImpersonateBlanket,
		},
		dispatcher:     cfg.dispatcher,
		memo:           NewFailureMemo(),
		softNamespaces: cfg.softNamespaces,
		failureHandler: cfg.failureHandler,
		logger:         cfg.logger,
	}
	h.timeoutMillis.Store(cfg.timeoutMillis)
	return h, nil
}

// Timeout returns the query timeout in milliseconds.
func (h *QueryHandler) Timeout() int64 {
	return h.timeoutMillis.Load()
}

// SetTimeout changes the query timeout for subsequent calls.
func (h *QueryHandler) SetTimeout(ms int64) error {
	if err := ValidateTimeout(ms); err != nil {
		return err
	}
	h.timeoutMillis.Store(ms)
	return nil
}

// ThreadingModel returns the current COM threading model preference.
func (h *QueryHandler) ThreadingModel() ThreadingModel {
	return h.guard.threadingModel()
}

// SecurityInitialized reports whether COM security has been configured.
func (h *QueryHandler) SecurityInitialized() bool {
	return h.security.initialized()
}

// FailedClasses returns the classes this handler will no longer query.
func (h *QueryHandler) FailedClasses() []string {
	return h.memo.Classes()
}

// InitRuntime initializes COM on the current OS thread and makes sure
// process security is configured. When it returns true the caller must call
// ReleaseRuntime on the same thread, so the goroutine should be locked with
// runtime.LockOSThread for the span. False with a nil error means COM was
// already running under the other threading model and nothing was acquired.
func (h *QueryHandler) InitRuntime() (bool, error) {
	acquired, err := h.guard.acquire()
	if err != nil || !acquired {
		return false, err
	}
	if err := h.security.ensure(); err != nil {
		h.guard.release()
		return false, err
	}
	return true, nil
}

// ReleaseRuntime balances a successful InitRuntime.
func (h *QueryHandler) ReleaseRuntime() {
	h.guard.release()
}

// Execute runs q and returns its rows. Classes that are missing or broken on
// this host yield an empty result and are not queried again by this
// handler; a timeout also yields an empty result but the class stays
// eligible. Errors are returned only when COM itself cannot be used, when
// ctx is cancelled, or when q is malformed.
//
// Runtime acquisition, security setup, the query and the release all run on
// one locked worker thread, so the query uses the threading model the guard
// negotiated. Execute stops waiting for that thread at the deadline; the
// native call is not aborted and releases COM when it eventually returns.
func (h *QueryHandler) Execute(ctx context.Context, q Query) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid WMI query", err)
	}

	if h.memo.Contains(q.Class) {
		queriesTotal.WithLabelValues(q.Class, outcomeMemoized).Inc()
		return emptyResult(q), nil
	}

	if err := ctx.Err(); err != nil {
		queriesTotal.WithLabelValues(q.Class, outcomeCancelled).Inc()
		return nil, err
	}

	timeout := h.Timeout()
	dctx := ctx
	if timeout != defaults.WMITimeoutInfinite {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Millisecond)
		defer cancel()
	}

	start := time.Now()
	done := make(chan queryOutcome, 1)
	go func() {
		// COM state belongs to the OS thread
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		done <- h.runOnThread(dctx, q)
	}()

	var out queryOutcome
	select {
	case out = <-done:
	case <-dctx.Done():
		select {
		case out = <-done:
		default:
			out.err = dctx.Err()
			if out.err == context.DeadlineExceeded {
				out.err = ErrQueryTimeout
			}
		}
	}
	queryDuration.WithLabelValues(q.Class).Observe(time.Since(start).Seconds())

	switch {
	case out.initErr != nil:
		queriesTotal.WithLabelValues(q.Class, outcomeError).Inc()
		return nil, out.initErr
	case out.err == nil:
		queriesTotal.WithLabelValues(q.Class, outcomeSuccess).Inc()
		return project(q, out.rows), nil
	case isNativeInitFailure(out.err):
		queriesTotal.WithLabelValues(q.Class, outcomeError).Inc()
		hr, _ := StatusOf(out.err)
		return nil, errors.WrapWithContext(errors.ErrCodeNativeInit,
			"COM is not usable on the query thread", out.err,
			map[string]any{
				"threadingModel": out.model.String(),
				"hresult":        hr.Hex(),
			})
	default:
		return h.classify(ctx, q, timeout, out.err)
	}
}

// queryOutcome is what the worker thread reports back to Execute.
type queryOutcome struct {
	rows    []map[string]any
	model   ThreadingModel
	initErr error
	err     error
}

// runOnThread acquires the runtime, dispatches and releases on the current
// OS thread. The caller must hold runtime.LockOSThread.
func (h *QueryHandler) runOnThread(ctx context.Context, q Query) queryOutcome {
	acquired, err := h.InitRuntime()
	if err != nil {
		return queryOutcome{initErr: err}
	}
	if acquired {
		defer h.ReleaseRuntime()
	}

	out := queryOutcome{model: h.ThreadingModel()}
	out.rows, out.err = h.dispatcher.Dispatch(ctx, q)
	return out
}

// classify turns a dispatch failure into an empty result, recording the class
// unless the failure is transient. A provider status wins over a cancellation
// that raced it; only failures without a status become the caller's context
// error.
func (h *QueryHandler) classify(ctx context.Context, q Query, timeout int64, err error) (*Result, error) {
	if _, hasStatus := StatusOf(err); !hasStatus {
		if ctxErr := ctx.Err(); ctxErr != nil {
			queriesTotal.WithLabelValues(q.Class, outcomeCancelled).Inc()
			return nil, ctxErr
		}
	}

	if isTimeout(err) {
		queriesTotal.WithLabelValues(q.Class, outcomeTimeout).Inc()
		h.logger.Error("WMI query timed out",
			"timeoutMillis", timeout,
			"query", q.String())
		return emptyResult(q), nil
	}

	reason := invalidReason(err)
	switch {
	case h.isSoftNamespace(q.Namespace):
		queriesTotal.WithLabelValues(q.Class, outcomeSoft).Inc()
	case reason != "":
		queriesTotal.WithLabelValues(q.Class, outcomeInvalid).Inc()
		h.logger.Warn("WMI query failed, class will not be queried again",
			"reason", reason,
			"query", q.String())
	default:
		queriesTotal.WithLabelValues(q.Class, outcomeFailed).Inc()
		h.failureHandler.HandleQueryFailure(q, err)
	}

	if h.memo.Add(q.Class) {
		memoizedClasses.Inc()
	}
	return emptyResult(q), nil
}

func (h *QueryHandler) isSoftNamespace(ns string) bool {
	for _, s := range h.softNamespaces {
		if strings.EqualFold(s, ns) {
			return true
		}
	}
	return false
}

// isNativeInitFailure reports whether the dispatcher could not use COM on its
// thread. That is an environment problem, not a property of the class.
func isNativeInitFailure(err error) bool {
	var se *StatusError
	if stderrors.As(err, &se) && se.Op == "CoInitializeEx" {
		return true
	}
	hr, ok := StatusOf(err)
	return ok && (hr == RPCEChangedMode || hr == COENotInitialized)
}

func isTimeout(err error) bool {
	if stderrors.Is(err, ErrQueryTimeout) || stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	hr, ok := StatusOf(err)
	return ok && (hr == WBEMETimedOut || hr == WBEMSTimedOut)
}

func invalidReason(err error) string {
	hr, ok := StatusOf(err)
	if !ok {
		return ""
	}
	switch hr {
	case WBEMEInvalidNamespace:
		return "invalid namespace"
	case WBEMEInvalidClass:
		return "invalid class"
	case WBEMEInvalidQuery:
		return "invalid query"
	default:
		return ""
	}
}
