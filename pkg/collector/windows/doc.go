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

// Package windows collects host configuration from WMI.
//
// The Collector issues its query set through a wmi.Handler, at most
// MaxConcurrency at a time, and folds the rows into one measurement of type
// WMI. Each row becomes a subtype named after its class (with a [row] suffix
// when the class returned several instances) and carries the namespace,
// class and row index as context.
//
// Serial numbers, UUIDs, MAC addresses and similar identifiers are removed
// before the data leaves the collector.
package windows
