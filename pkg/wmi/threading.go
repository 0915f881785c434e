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

package wmi

// ThreadingModel is the COM concurrency model requested by CoInitializeEx.
type ThreadingModel uint32

const (
	// Multithreaded is COINIT_MULTITHREADED, the free-threaded apartment.
	Multithreaded ThreadingModel = 0x0
	// ApartmentThreaded is COINIT_APARTMENTTHREADED, a single-threaded apartment.
	ApartmentThreaded ThreadingModel = 0x2
)

// Other returns the opposite model.
func (m ThreadingModel) Other() ThreadingModel {
	if m == ApartmentThreaded {
		return Multithreaded
	}
	return ApartmentThreaded
}

func (m ThreadingModel) String() string {
	if m == ApartmentThreaded {
		return "apartment"
	}
	return "multithreaded"
}
