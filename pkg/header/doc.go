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

// Package header defines the kind/apiVersion/metadata block shared by
// snapshots and query results.
//
//	kind: Snapshot
//	apiVersion: wmi.cns.nvidia.com/v1alpha1
//	metadata:
//	  timestamp: "2025-06-01T10:00:00Z"
//	  version: v0.3.0
//	  source-node: win-node-01
//
// Types embed Header inline so the fields appear at the top level of the
// serialized document:
//
//	type Snapshot struct {
//	    header.Header `json:",inline" yaml:",inline"`
//	    Measurements []*measurement.Measurement `json:"measurements"`
//	}
package header
