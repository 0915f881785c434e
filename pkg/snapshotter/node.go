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

package snapshotter

import (
	"log/slog"
	"os"
)

// NodeName returns the name recorded as the snapshot source. NODE_NAME wins
// when a pod spec passes it through the Downward API; bare hosts fall back
// to their hostname.
func NodeName() string {
	if name := os.Getenv("NODE_NAME"); name != "" {
		return name
	}
	if name := os.Getenv("COMPUTERNAME"); name != "" {
		return name
	}
	name, err := os.Hostname()
	if err != nil {
		slog.Warn("failed to resolve hostname", slog.String("error", err.Error()))
		return ""
	}
	return name
}
