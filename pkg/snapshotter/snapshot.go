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
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/cns-wmi/pkg/collector"
	"github.com/NVIDIA/cns-wmi/pkg/header"
	"github.com/NVIDIA/cns-wmi/pkg/serializer"
)

// NodeSnapshotter collects WMI measurements from the current node and
// serializes them as a Snapshot.
type NodeSnapshotter struct {
	// Version is the snapshotter version.
	Version string

	// Factory is the collector factory to use. If nil, the default factory is used.
	Factory collector.Factory

	// Serializer is the serializer to use for output. If nil, a default stdout JSON serializer is used.
	Serializer serializer.Serializer
}

// Measure collects a snapshot and serializes it with the configured Serializer.
func (n *NodeSnapshotter) Measure(ctx context.Context) error {
	snap, err := n.Snapshot(ctx)
	if err != nil {
		return err
	}

	if n.Serializer == nil {
		n.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}

	if err := n.Serializer.Serialize(ctx, snap); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return fmt.Errorf("failed to serialize: %w", err)
	}

	return nil
}

// Snapshot collects the measurements without serializing them.
func (n *NodeSnapshotter) Snapshot(ctx context.Context) (*Snapshot, error) {
	if n.Factory == nil {
		n.Factory = collector.NewDefaultFactory()
	}

	slog.Debug("starting node snapshot")

	start := time.Now()
	defer func() {
		snapshotCollectionDuration.Observe(time.Since(start).Seconds())
	}()

	snap := NewSnapshot()
	snap.Init(header.KindSnapshot, header.APIVersion, n.Version)
	nodeName := NodeName()
	snap.Metadata[header.MetadataNode] = nodeName
	slog.Debug("obtained node metadata", slog.String("name", nodeName), slog.String("version", n.Version))

	collectorStart := time.Now()
	m, err := n.Factory.CreateWMICollector().Collect(ctx)
	snapshotCollectorDuration.WithLabelValues("wmi").Observe(time.Since(collectorStart).Seconds())
	if err != nil {
		snapshotCollectionTotal.WithLabelValues("error").Inc()
		slog.Error("failed to collect WMI data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to collect WMI data: %w", err)
	}
	snap.Measurements = append(snap.Measurements, m)

	snapshotCollectionTotal.WithLabelValues("success").Inc()
	snapshotSubtypeCount.Set(float64(len(m.Subtypes)))

	slog.Debug("snapshot collection complete", slog.Int("subtypes", len(m.Subtypes)))
	return snap, nil
}
