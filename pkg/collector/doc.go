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

// Package collector defines how configuration measurements are gathered.
//
// A Collector returns one measurement per call:
//
//	type Collector interface {
//	    Collect(ctx context.Context) (*measurement.Measurement, error)
//	}
//
// The Factory interface abstracts collector construction so snapshotters
// can be tested with stubs. DefaultFactory builds the WMI collector from
// the windows subpackage, pulling a query handler from a wmi.Factory:
//
//	handlers, err := wmi.NewFactory(wmi.WithDefaultTimeout(5000))
//	if err != nil {
//	    return err
//	}
//	f := collector.NewDefaultFactory(
//	    collector.WithHandlerFactory(handlers),
//	    collector.WithMaxConcurrency(2),
//	)
//	m, err := f.CreateWMICollector().Collect(ctx)
package collector
