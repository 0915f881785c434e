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

// Package server is the HTTP shell around the WMI query API.
//
// Application handlers are registered by path and run behind a middleware
// chain: Prometheus metrics, API version negotiation, request IDs, panic
// recovery, a token bucket rate limiter (golang.org/x/time/rate) and debug
// request logging. System endpoints bypass the chain:
//
//   - GET /         name, version, readiness and the route table
//   - GET /health   liveness
//   - GET /ready    readiness; 503 until Start and after Shutdown begins
//   - GET /metrics  Prometheus exposition
//
// # Usage
//
//	s := server.New(
//	    server.WithName("cnswmid"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/query": h.HandleQuery,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run stops on SIGINT or SIGTERM and drains in-flight requests for at most
// ShutdownTimeout. PORT and SHUTDOWN_TIMEOUT_SECONDS override the listen
// port and drain time.
//
// # Errors
//
// Failures are written as ErrorResponse documents carrying the request ID.
// WriteErrorFromErr derives the HTTP status from the structured error code,
// so a COM initialization failure surfaces as 503 and a WMI timeout as 504.
package server
