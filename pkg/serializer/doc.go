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

// Package serializer renders snapshots and query results as JSON, YAML or a
// flattened FIELD/VALUE table, and routes them to stdout, a file or a
// Kubernetes ConfigMap.
//
// Destinations are chosen from the --output flag value:
//
//	s, err := serializer.NewDestination(serializer.FormatYAML, "cm://kube-system/cns-wmi")
//	if err != nil {
//	    return err
//	}
//	defer serializer.CloseIfCloser(s)
//	return s.Serialize(ctx, snap)
//
// ConfigMaps are written with server-side apply under the "cnswmi" field
// manager and hold three keys: snapshot.<ext>, format and timestamp.
// FromFile reads either a local file or such a ConfigMap back:
//
//	snap, err := serializer.FromFile[snapshotter.Snapshot](ctx, "cm://kube-system/cns-wmi")
//
// HTTP handlers use RespondJSON, which encodes before writing the status so
// a failed encode never leaves a partial body.
package serializer
