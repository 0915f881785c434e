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

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newTestServer(limit rate.Limit, burst int) *Server {
	return &Server{
		config:      NewConfig(),
		rateLimiter: rate.NewLimiter(limit, burst),
	}
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestIDMiddleware(t *testing.T) {
	s := newTestServer(100, 200)
	provided := uuid.New().String()

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"generates new", "", false},
		{"keeps valid", provided, true},
		{"replaces invalid", "invalid-not-a-uuid", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			handler := s.requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
				captured = r.Context().Value(contextKeyRequestID).(string)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/query", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-Id", tt.header)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			_, err := uuid.Parse(captured)
			assert.NoError(t, err)
			assert.Equal(t, captured, rec.Header().Get("X-Request-Id"))
			if tt.keep {
				assert.Equal(t, tt.header, captured)
			} else {
				assert.NotEqual(t, tt.header, captured)
			}
		})
	}
}

func TestVersionMiddleware(t *testing.T) {
	s := newTestServer(100, 200)

	var captured string
	handler := s.versionMiddleware(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = r.Context().Value(contextKeyAPIVersion).(string)
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/v1/query", nil))

	assert.Equal(t, DefaultAPIVersion, captured)
	assert.Equal(t, DefaultAPIVersion, rec.Header().Get(HeaderAPIVersion))
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allows", func(t *testing.T) {
		s := newTestServer(100, 200)
		called := false
		handler := s.rateLimitMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/v1/query", nil))

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
		for _, h := range []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"} {
			assert.NotEmpty(t, rec.Header().Get(h), h)
		}
	})

	t.Run("rejects", func(t *testing.T) {
		s := newTestServer(0, 0)
		called := false
		handler := s.rateLimitMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			called = true
		})

		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/v1/query", nil))

		assert.False(t, called)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
		assert.Contains(t, rec.Body.String(), "RATE_LIMIT_EXCEEDED")
	})
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	s := newTestServer(100, 200)

	handler := s.panicRecoveryMiddleware(func(http.ResponseWriter, *http.Request) {
		panic("test panic")
	})
	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler(rec, httptest.NewRequest(http.MethodGet, "/v1/query", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	s.panicRecoveryMiddleware(okHandler)(rec, httptest.NewRequest(http.MethodGet, "/v1/query", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggingMiddleware_TracksStatusCode(t *testing.T) {
	s := newTestServer(100, 200)

	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusGatewayTimeout} {
		handler := s.loggingMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/v1/query", nil))
		assert.Equal(t, status, rec.Code)
	}
}

func TestMiddlewareChain(t *testing.T) {
	s := newTestServer(100, 200)

	var hasRequestID, hasAPIVersion bool
	handler := s.withMiddleware(func(w http.ResponseWriter, r *http.Request) {
		hasRequestID = r.Context().Value(contextKeyRequestID) != nil
		hasAPIVersion = r.Context().Value(contextKeyAPIVersion) != nil
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/v1/query", nil))

	assert.True(t, hasRequestID)
	assert.True(t, hasAPIVersion)
	for _, h := range []string{"X-Request-Id", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", HeaderAPIVersion} {
		assert.NotEmpty(t, rec.Header().Get(h), h)
	}
}
