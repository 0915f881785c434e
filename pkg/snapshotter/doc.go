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

// Package snapshotter captures the WMI configuration of a Windows node.
//
// NodeSnapshotter asks its collector.Factory for a WMI collector, wraps the
// resulting measurement in a Snapshot and serializes it. The snapshot header
// records the kind, API version, collection time, producer version and the
// source node:
//
//	kind: Snapshot
//	apiVersion: wmi.cns.nvidia.com/v1alpha1
//	metadata:
//	  source-node: win-worker-01
//	  timestamp: "2026-01-02T15:04:05Z"
//	  version: v0.3.0
//	measurements:
//	  - type: WMI
//	    subtypes:
//	      - subtype: Win32_OperatingSystem
//	        data:
//	          Caption: Microsoft Windows Server 2022 Datacenter
//
// # Usage
//
//	s := &snapshotter.NodeSnapshotter{
//	    Version:    version,
//	    Factory:    collector.NewDefaultFactory(collector.WithHandlerFactory(handlers)),
//	    Serializer: serializer.NewStdoutWriter(serializer.FormatYAML),
//	}
//	if err := s.Measure(ctx); err != nil {
//	    return err
//	}
//
// Snapshot returns the collected document without writing it, which is what
// the API server uses.
package snapshotter
