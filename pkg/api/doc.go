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

// Package api wires the WMI query handler into the HTTP server.
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET /v1/query     run one WMI query
//   - GET /v1/snapshot  run the configured query set and return a Snapshot
//
// System endpoints come from pkg/server: /, /health, /ready and /metrics.
//
// # Query Parameters (GET /v1/query)
//   - namespace: WMI namespace, default ROOT\CIMV2
//   - class: WMI class, required
//   - fields: property names, repeated or comma separated; empty selects all
//   - format: json (default), yaml or table
//
// Example:
//
//	curl -s "http://localhost:8080/v1/query?class=Win32_OperatingSystem&fields=Caption,Version"
//
// returns
//
//	{
//	  "kind": "QueryResult",
//	  "apiVersion": "wmi.cns.nvidia.com/v1alpha1",
//	  "metadata": {"source-node": "win-worker-01", "timestamp": "..."},
//	  "query": "SELECT Caption,Version FROM Win32_OperatingSystem",
//	  "result": {"namespace": "ROOT\\CIMV2", "class": "Win32_OperatingSystem", "rows": [...]}
//	}
//
// A class the host does not provide yields an empty rows list, not an error.
// Errors are reserved for malformed requests (400), an unusable COM runtime
// (503) and request deadlines (504).
package api
