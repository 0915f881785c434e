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

// Authentication, impersonation, and capability values passed to
// CoInitializeSecurity.
const (
	AuthnLevelDefault   uint32 = 0
	ImpLevelImpersonate uint32 = 3
	CapabilityNone      uint32 = 0
)

// SecurityBlanket is the process-wide security configuration applied once.
type SecurityBlanket struct {
	AuthnLevel   uint32
	ImpLevel     uint32
	Capabilities uint32
}

// ImpersonateBlanket is the configuration WMI queries need: default
// authentication, impersonation level, no extra capabilities.
var ImpersonateBlanket = SecurityBlanket{
	AuthnLevel:   AuthnLevelDefault,
	ImpLevel:     ImpLevelImpersonate,
	Capabilities: CapabilityNone,
}

// Runtime is the native COM surface the handler drives. The production
// implementation calls into ole32; tests substitute a fake.
type Runtime interface {
	// Initialize calls CoInitializeEx on the current OS thread.
	Initialize(model ThreadingModel) HRESULT
	// Uninitialize balances one successful Initialize on the current OS thread.
	Uninitialize()
	// InitializeSecurity calls CoInitializeSecurity for the process.
	InitializeSecurity(blanket SecurityBlanket) HRESULT
}

// NativeRuntime returns the platform COM runtime.
func NativeRuntime() Runtime {
	return nativeRuntime{}
}
