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

package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/NVIDIA/cns-wmi/pkg/collector"
	"github.com/NVIDIA/cns-wmi/pkg/config"
	"github.com/NVIDIA/cns-wmi/pkg/logging"
	"github.com/NVIDIA/cns-wmi/pkg/server"
	"github.com/NVIDIA/cns-wmi/pkg/snapshotter"
	"github.com/NVIDIA/cns-wmi/pkg/wmi"
)

const (
	name           = "cnswmid"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/cns-wmi/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
func Serve(ctx context.Context, cfg *config.Config) error {
	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.Log.Level)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	h, err := NewHandlers(cfg, version)
	if err != nil {
		return err
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(h.Routes()),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// NewHandlers builds the request handlers from cfg. The query handler is
// created once and shared with the snapshot collector.
func NewHandlers(cfg *config.Config, version string) (*Handlers, error) {
	factory, err := wmi.NewFactory(
		wmi.WithDefaultTimeout(cfg.WMI.TimeoutMillis),
		wmi.WithHandlerOptions(cfg.WMI.HandlerOptions()...),
	)
	if err != nil {
		return nil, err
	}

	qh := factory.CreateInstance()
	if qh == nil {
		return nil, fmt.Errorf("failed to create WMI query handler")
	}

	return &Handlers{
		Version: version,
		Query:   qh,
		Snapshotter: &snapshotter.NodeSnapshotter{
			Version: version,
			Factory: collector.NewDefaultFactory(
				collector.WithHandler(qh),
				collector.WithQueries(cfg.Queries),
				collector.WithMaxConcurrency(cfg.WMI.MaxConcurrency),
			),
		},
	}, nil
}
