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
	"errors"
	"fmt"
)

// HRESULT is a COM status code. The high bit marks failure.
type HRESULT uint32

// Status codes the handler distinguishes. Anything else is treated as an
// opaque failure.
const (
	SOK    HRESULT = 0x00000000
	SFalse HRESULT = 0x00000001

	ENotImpl HRESULT = 0x80004001
	EFail    HRESULT = 0x80004005

	RPCEChangedMode HRESULT = 0x80010106
	RPCETooLate     HRESULT = 0x80010119

	COENotInitialized HRESULT = 0x800401F0

	WBEMSTimedOut         HRESULT = 0x00040004
	WBEMEInvalidNamespace HRESULT = 0x8004100E
	WBEMEInvalidClass     HRESULT = 0x80041010
	WBEMEInvalidQuery     HRESULT = 0x80041017
	WBEMETimedOut         HRESULT = 0x80043001
)

var hresultNames = map[HRESULT]string{
	SOK:                   "S_OK",
	SFalse:                "S_FALSE",
	ENotImpl:              "E_NOTIMPL",
	EFail:                 "E_FAIL",
	RPCEChangedMode:       "RPC_E_CHANGED_MODE",
	RPCETooLate:           "RPC_E_TOO_LATE",
	COENotInitialized:     "CO_E_NOTINITIALIZED",
	WBEMSTimedOut:         "WBEM_S_TIMEDOUT",
	WBEMEInvalidNamespace: "WBEM_E_INVALID_NAMESPACE",
	WBEMEInvalidClass:     "WBEM_E_INVALID_CLASS",
	WBEMEInvalidQuery:     "WBEM_E_INVALID_QUERY",
	WBEMETimedOut:         "WBEM_E_TIMED_OUT",
}

// Failed reports whether the status has the severity bit set.
func (h HRESULT) Failed() bool {
	return int32(h) < 0
}

// Hex renders the status the way Windows tooling prints it.
func (h HRESULT) Hex() string {
	return fmt.Sprintf("0x%08X", uint32(h))
}

// String returns the symbolic name when known, followed by the hex code.
func (h HRESULT) String() string {
	if name, ok := hresultNames[h]; ok {
		return fmt.Sprintf("%s (%s)", name, h.Hex())
	}
	return h.Hex()
}

// StatusError is a native call that returned a failing HRESULT.
type StatusError struct {
	Op     string
	Status HRESULT
	Detail string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

// StatusOf extracts the HRESULT carried anywhere in err's chain.
func StatusOf(err error) (HRESULT, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status, true
	}
	return 0, false
}
