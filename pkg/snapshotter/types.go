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

package snapshotter

import (
	"context"

	"github.com/NVIDIA/cns-wmi/pkg/header"
	"github.com/NVIDIA/cns-wmi/pkg/measurement"
	"github.com/NVIDIA/cns-wmi/pkg/wmi"
)

// Snapshotter collects a configuration snapshot and writes it somewhere.
type Snapshotter interface {
	Measure(ctx context.Context) error
}

// NewSnapshot creates a new Snapshot instance with an initialized Measurements slice.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Measurements: make([]*measurement.Measurement, 0),
	}
}

// Snapshot is the WMI configuration of one Windows node.
type Snapshot struct {
	header.Header `json:",inline" yaml:",inline"`

	Measurements []*measurement.Measurement `json:"measurements" yaml:"measurements"`
}

// QueryResult is the document produced for a single ad hoc WMI query.
type QueryResult struct {
	header.Header `json:",inline" yaml:",inline"`

	Query  string      `json:"query" yaml:"query"`
	Result *wmi.Result `json:"result" yaml:"result"`
}

// NewQueryResult wraps res in a QueryResult stamped with the source node.
func NewQueryResult(version string, q wmi.Query, res *wmi.Result) *QueryResult {
	doc := &QueryResult{Query: q.WQL(), Result: res}
	doc.Init(header.KindQueryResult, header.APIVersion, version)
	doc.Metadata[header.MetadataNode] = NodeName()
	return doc
}
