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

package defaults

import "time"

// WMI query settings.
const (
	// WMITimeoutInfinite disables the per-query deadline.
	WMITimeoutInfinite = -1

	// WMITimeoutMillis is the default per-query timeout in milliseconds.
	WMITimeoutMillis = WMITimeoutInfinite

	// WMIDefaultNamespace is the namespace used when a query names none.
	WMIDefaultNamespace = `ROOT\CIMV2`

	// WMIMaxConcurrentQueries bounds collector fan-out against the WMI service.
	WMIMaxConcurrentQueries = 4
)

// WMISoftNamespaces are optional instrumentation providers that are commonly
// absent. Failures against them are memoized without a diagnostic.
var WMISoftNamespaces = []string{
	`ROOT\OpenHardwareMonitor`,
	`ROOT\LibreHardwareMonitor`,
}

// Collector timeouts for data collection operations.
const (
	// CollectorTimeout is the default timeout for collector operations.
	// Collectors should respect parent context deadlines when shorter.
	CollectorTimeout = 30 * time.Second
)

// Handler timeouts for HTTP request processing.
const (
	// QueryHandlerTimeout is the timeout for a single /v1/query request.
	QueryHandlerTimeout = 30 * time.Second

	// SnapshotHandlerTimeout is the timeout for a /v1/snapshot request.
	// Longer than a single query because the full query set runs.
	SnapshotHandlerTimeout = 60 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 75 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// ConfigMap timeouts for Kubernetes ConfigMap operations.
const (
	// ConfigMapWriteTimeout is the timeout for writing to ConfigMaps.
	ConfigMapWriteTimeout = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLISnapshotTimeout is the default timeout for snapshot operations.
	CLISnapshotTimeout = 5 * time.Minute
)
