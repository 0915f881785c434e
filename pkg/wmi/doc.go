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

// Package wmi executes Windows Management Instrumentation queries on behalf
// of the node collectors.
//
// A QueryHandler owns the parts of COM that are awkward to get right from
// Go:
//
//   - COM is initialized per OS thread. Execute locks the goroutine to its
//     thread, calls CoInitializeEx, and releases it before returning. When
//     another component already initialized the thread with the other
//     threading model (RPC_E_CHANGED_MODE) the handler switches its
//     preference and retries once; if that fails too, the query proceeds
//     without its own reference.
//   - CoInitializeSecurity may only succeed once per process. The handler
//     calls it after its first acquisition and treats RPC_E_TOO_LATE as
//     success.
//   - Classes that do not exist on the host are remembered and never queried
//     again by the same handler. Timeouts are not remembered.
//
// Usage:
//
//	h, err := wmi.NewQueryHandler(wmi.WithTimeout(5000))
//	if err != nil {
//	    return err
//	}
//	res, err := h.Execute(ctx, wmi.NewQuery(`ROOT\CIMV2`, "Win32_OperatingSystem", "Caption", "Version"))
//	if err != nil {
//	    return err // COM unusable on this thread
//	}
//	caption, _ := res.GetString(0, "Caption")
//
// Handlers are normally obtained from a Factory so a process can substitute
// its own Handler implementation in one place:
//
//	f, err := wmi.NewFactory(wmi.WithDefaultTimeout(cfg.TimeoutMillis))
//	f.SetInstanceConstructor(myConstructor)
//	h := f.CreateInstance()
//
// On platforms other than Windows the native runtime reports E_NOTIMPL, so
// Execute fails with a NATIVE_INIT error unless a Runtime and Dispatcher are
// supplied with WithRuntime and WithDispatcher.
package wmi
