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

// Package measurement provides types for the data returned by WMI queries.
//
// # Core Types
//
//   - Type: Identifies the measurement source (WMI)
//   - Measurement: Contains a Type and a slice of Subtypes
//   - Subtype: Named collection of key-value data, one per returned row
//   - Reading: Interface for type-safe scalar values
//
// COM variants carry sized integers (uint16, int32, uint32...). ToReading
// keeps those widths so a value round-trips with the type WMI reported.
// WMI encodes uint64 and datetime properties as strings; AsUint64 accepts
// both forms.
//
// # Creating Measurements
//
//	m := NewMeasurement(TypeWMI).
//	    WithSubtype(
//	        NewSubtypeBuilder("Win32_Processor[0]").
//	            SetString("Name", "Intel(R) Xeon(R)").
//	            Set("NumberOfCores", Uint32(16)).
//	            SetContext(KeyNamespace, `ROOT\CIMV2`).
//	            Build(),
//	    ).
//	    Build()
//
// # Filtering Data
//
// Drop sensitive properties using case-insensitive wildcard patterns:
//
//	filtered := FilterOut(readings, []string{"SerialNumber", "*UUID*"})
//
// # Serialization
//
// Readings marshal to their underlying value in JSON and YAML, avoiding
// wrapper structures in the output.
package measurement
