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
	"log/slog"
	"sync"

	"github.com/NVIDIA/cns-wmi/pkg/errors"
)

// runtimeGuard initializes COM on the calling thread and negotiates the
// threading model. The preferred model is shared by every call on the
// handler and only changes when COM reports RPC_E_CHANGED_MODE.
type runtimeGuard struct {
	rt     Runtime
	logger *slog.Logger

	mu    sync.Mutex
	model ThreadingModel
}

func (g *runtimeGuard) threadingModel() ThreadingModel {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.model
}

// toggle flips the preference away from `from`. A concurrent call may have
// flipped it already, in which case the current value is returned unchanged.
func (g *runtimeGuard) toggle(from ThreadingModel) ThreadingModel {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.model == from {
		g.model = from.Other()
		threadingToggles.Inc()
		g.logger.Debug("switched COM threading model",
			"from", from.String(),
			"to", g.model.String())
	}
	return g.model
}

// acquire initializes COM on the current thread. It returns true when the
// caller owns one reference and must call release. It retries once under the
// other model on RPC_E_CHANGED_MODE and gives up quietly if that also fails.
func (g *runtimeGuard) acquire() (bool, error) {
	model := g.threadingModel()
	ok, err := g.tryInit(model)
	if ok || err != nil {
		return ok, err
	}

	ok, err = g.tryInit(g.toggle(model))
	if err != nil {
		return false, err
	}
	if !ok {
		g.logger.Debug("COM already initialized under an incompatible threading model, continuing without acquisition")
	}
	return ok, nil
}

func (g *runtimeGuard) tryInit(model ThreadingModel) (bool, error) {
	hr := g.rt.Initialize(model)
	switch {
	case hr == SOK || hr == SFalse:
		return true, nil
	case hr == RPCEChangedMode:
		return false, nil
	case hr.Failed():
		return false, errors.WrapWithContext(errors.ErrCodeNativeInit,
			"failed to initialize COM runtime",
			&StatusError{Op: "CoInitializeEx", Status: hr},
			map[string]any{
				"threadingModel": model.String(),
				"hresult":        hr.Hex(),
			})
	default:
		// other success codes still leave a reference to balance
		return true, nil
	}
}

func (g *runtimeGuard) release() {
	g.rt.Uninitialize()
}
