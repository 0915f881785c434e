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

// Package cli implements the cnswmi command line.
//
// # Commands
//
// query - Run a single WMI query:
//
//	cnswmi query --class Win32_OperatingSystem --field Caption --field Version
//
// snapshot - Capture the configured query set as a Snapshot:
//
//	cnswmi snapshot --output cm://gpu-operator/cns-wmi-snapshot
//
// show - Re-render a captured snapshot:
//
//	cnswmi show --snapshot snapshot.json --format table
//
// serve - Start the HTTP API (see pkg/api).
//
// # Global Flags
//
//	--config, -c   YAML or TOML configuration file (env: CNS_WMI_CONFIG)
//	--env-file     Dotenv file(s) loaded before the environment is read
//	--log-level    Log level, overriding the configuration
//
// # Output
//
// Commands that produce documents accept --output (file path, cm://namespace/name,
// or stdout when empty) and --format (yaml, json, table).
//
// # Environment Variables
//
//	CNS_WMI_TIMEOUT          Query timeout in milliseconds, -1 for none
//	CNS_WMI_SOFT_NAMESPACES  Comma separated namespaces whose failures are not logged
//	CNS_WMI_THREADING_MODEL  multithreaded or apartment
//	CNS_WMI_MAX_CONCURRENCY  Snapshot query fan-out
//	LOG_LEVEL                debug, info, warn, error
//	NODE_NAME                Node name recorded in documents (default: host name)
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/cns-wmi/pkg/cli.version=1.0.0'"
package cli
