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

// Package config loads cnswmi settings.
//
// Values are layered: built-in defaults, then an optional YAML or TOML file,
// then optional dotenv files, then environment variables. A WMI timeout of 0
// or below -1 is rejected here, before any query handler exists.
//
// Example YAML:
//
//	wmi:
//	  timeoutMillis: 5000
//	  threadingModel: multithreaded
//	  softNamespaces:
//	    - ROOT\OpenHardwareMonitor
//	queries:
//	  - namespace: ROOT\CIMV2
//	    class: Win32_OperatingSystem
//	    fields: [Caption, Version, BuildNumber]
//
// The same document in TOML:
//
//	[wmi]
//	timeout_millis = 5000
//
//	[[queries]]
//	namespace = 'ROOT\CIMV2'
//	class = "Win32_OperatingSystem"
//	fields = ["Caption", "Version", "BuildNumber"]
package config
