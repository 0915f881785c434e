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

	"github.com/NVIDIA/cns-wmi/pkg/collector/windows"
	"github.com/NVIDIA/cns-wmi/pkg/defaults"
	"github.com/NVIDIA/cns-wmi/pkg/measurement"
	"github.com/NVIDIA/cns-wmi/pkg/wmi"
)

// Collector gathers one measurement.
type Collector interface {
	Collect(ctx context.Context) (*measurement.Measurement, error)
}

// Factory creates collectors with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateWMICollector() Collector
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	// Handler, when set, is shared by every collector so its failure memo
	// outlives a single collection. Otherwise each collector gets a new
	// handler from Handlers.
	Handler        wmi.Handler
	Handlers       *wmi.Factory
	Queries        []wmi.Query
	MaxConcurrency int
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithHandlerFactory sets the factory WMI collectors obtain their handler from.
func WithHandlerFactory(f *wmi.Factory) Option {
	return func(d *DefaultFactory) {
		d.Handlers = f
	}
}

// WithHandler shares one handler across all collectors.
func WithHandler(h wmi.Handler) Option {
	return func(d *DefaultFactory) {
		d.Handler = h
	}
}

// WithQueries replaces the default WMI query set.
func WithQueries(qs []wmi.Query) Option {
	return func(d *DefaultFactory) {
		d.Queries = qs
	}
}

// WithMaxConcurrency bounds the number of WMI queries in flight per collection.
func WithMaxConcurrency(n int) Option {
	return func(d *DefaultFactory) {
		d.MaxConcurrency = n
	}
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		MaxConcurrency: defaults.WMIMaxConcurrentQueries,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateWMICollector creates a WMI collector. When no handler is available
// the collector reports the failure from Collect.
func (f *DefaultFactory) CreateWMICollector() Collector {
	c := &windows.Collector{
		Handler:        f.Handler,
		Queries:        f.Queries,
		MaxConcurrency: f.MaxConcurrency,
	}
	if c.Handler == nil && f.Handlers != nil {
		if h := f.Handlers.CreateInstance(); h != nil {
			c.Handler = h
		}
	}
	return c
}
