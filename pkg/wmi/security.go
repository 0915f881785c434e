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

import (
	"sync"
	"sync/atomic"

	"github.com/NVIDIA/cns-wmi/pkg/errors"
)

// securityInit calls CoInitializeSecurity at most once successfully. The
// flag is never cleared.
type securityInit struct {
	rt      Runtime
	blanket SecurityBlanket

	done atomic.Bool
	mu   sync.Mutex
}

func (s *securityInit) initialized() bool {
	return s.done.Load()
}

// ensure configures process security unless it is already done. Another
// component configuring security first (RPC_E_TOO_LATE) counts as success.
func (s *securityInit) ensure() error {
	if s.done.Load() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done.Load() {
		return nil
	}

	hr := s.rt.InitializeSecurity(s.blanket)
	if hr.Failed() && hr != RPCETooLate {
		return errors.WrapWithContext(errors.ErrCodeSecurityInit,
			"failed to initialize COM security",
			&StatusError{Op: "CoInitializeSecurity", Status: hr},
			map[string]any{
				"hresult":       hr.Hex(),
				"impersonation": s.blanket.ImpLevel,
			})
	}
	s.done.Store(true)
	return nil
}
