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

//go:build windows

package wmi

import (
	"errors"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var (
	modole32                 = windows.NewLazySystemDLL("ole32.dll")
	procCoInitializeSecurity = modole32.NewProc("CoInitializeSecurity")
)

type nativeRuntime struct{}

func (nativeRuntime) Initialize(model ThreadingModel) HRESULT {
	// go-ole reports S_FALSE as an error as well; only the code matters here.
	err := ole.CoInitializeEx(0, uint32(model))
	return statusFromOle(err)
}

func (nativeRuntime) Uninitialize() {
	ole.CoUninitialize()
}

func (nativeRuntime) InitializeSecurity(b SecurityBlanket) HRESULT {
	if err := procCoInitializeSecurity.Find(); err != nil {
		return ENotImpl
	}
	hr, _, _ := procCoInitializeSecurity.Call(
		0,          // pSecDesc
		0xFFFFFFFF, // cAuthSvc: let COM choose
		0,          // asAuthSvc
		0,          // pReserved1
		uintptr(b.AuthnLevel),
		uintptr(b.ImpLevel),
		0, // pAuthList
		uintptr(b.Capabilities),
		0, // pReserved3
	)
	return HRESULT(uint32(hr))
}

// statusFromOle maps a go-ole error to the HRESULT it carries. IDispatch
// exceptions carry the provider status in the EXCEPINFO scode.
func statusFromOle(err error) HRESULT {
	if err == nil {
		return SOK
	}
	var oleErr *ole.OleError
	if !errors.As(err, &oleErr) {
		return EFail
	}
	if ex, ok := oleErr.SubError().(ole.EXCEPINFO); ok {
		if sc := ex.SCODE(); sc != 0 {
			return HRESULT(sc)
		}
	}
	return HRESULT(uint32(oleErr.Code()))
}
