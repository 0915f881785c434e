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

package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/cns-wmi/pkg/collector/windows"
	"github.com/NVIDIA/cns-wmi/pkg/wmi"
)

type stubHandler struct{}

func (stubHandler) Execute(_ context.Context, q wmi.Query) (*wmi.Result, error) {
	return &wmi.Result{Namespace: q.Namespace, Class: q.Class}, nil
}

func TestDefaultFactory_CreateWMICollector(t *testing.T) {
	handlers, err := wmi.NewFactory(wmi.WithConstructor(func(...wmi.Option) (wmi.Handler, error) {
		return stubHandler{}, nil
	}))
	assert.NoError(t, err)

	qs := []wmi.Query{wmi.NewQuery(`ROOT\CIMV2`, "Win32_BIOS")}
	f := NewDefaultFactory(WithHandlerFactory(handlers), WithQueries(qs), WithMaxConcurrency(1))

	col := f.CreateWMICollector()
	wc, ok := col.(*windows.Collector)
	if assert.True(t, ok) {
		assert.NotNil(t, wc.Handler)
		assert.Equal(t, qs, wc.Queries)
		assert.Equal(t, 1, wc.MaxConcurrency)
	}

	m, err := col.Collect(context.TODO())
	assert.NoError(t, err)
	assert.NotNil(t, m)
}

func TestDefaultFactory_NoHandler(t *testing.T) {
	handlers, err := wmi.NewFactory(wmi.WithConstructor(func(...wmi.Option) (wmi.Handler, error) {
		panic("boom")
	}))
	assert.NoError(t, err)

	col := NewDefaultFactory(WithHandlerFactory(handlers)).CreateWMICollector()
	_, err = col.Collect(context.TODO())
	assert.Error(t, err)

	col = NewDefaultFactory().CreateWMICollector()
	_, err = col.Collect(context.TODO())
	assert.Error(t, err)
}

func TestDefaultFactory_SharedHandler(t *testing.T) {
	h := stubHandler{}
	f := NewDefaultFactory(WithHandler(h))

	a, ok := f.CreateWMICollector().(*windows.Collector)
	assert.True(t, ok)
	b, ok := f.CreateWMICollector().(*windows.Collector)
	assert.True(t, ok)
	assert.Equal(t, wmi.Handler(h), a.Handler)
	assert.Equal(t, a.Handler, b.Handler)
}
