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

package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cns-wmi/pkg/config"
	"github.com/NVIDIA/cns-wmi/pkg/defaults"
	"github.com/NVIDIA/cns-wmi/pkg/snapshotter"
	"github.com/NVIDIA/cns-wmi/pkg/wmi"
)

func queryCmd() *cli.Command {
	return &cli.Command{
		Name:                  "query",
		EnableShellCompletion: true,
		Usage:                 "Run a single WMI query",
		Description: `Run one WMI query and print the selected properties of every instance.

A class that does not exist on this host, or a namespace whose provider is
not installed, produces an empty result rather than an error.

# Examples

  cnswmi query --class Win32_OperatingSystem --field Caption --field Version
  cnswmi query --namespace 'ROOT\OpenHardwareMonitor' --class Sensor --timeout 2000 --format json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Value:   defaults.WMIDefaultNamespace,
				Usage:   "WMI namespace",
			},
			&cli.StringFlag{
				Name:     "class",
				Required: true,
				Usage:    "WMI class to query",
			},
			&cli.StringSliceFlag{
				Name:    "field",
				Aliases: []string{"f"},
				Usage:   "Property to select (can be repeated; default: all properties)",
			},
			&cli.Int64Flag{
				Name:  "timeout",
				Usage: "Query timeout in milliseconds, -1 to wait forever (overrides config)",
			},
			&cli.StringFlag{
				Name:  "threading-model",
				Usage: "Initial COM threading model: multithreaded or apartment (overrides config)",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			cfg := *configFrom(ctx)
			if cmd.IsSet("timeout") {
				cfg.WMI.TimeoutMillis = cmd.Int64("timeout")
			}
			if cmd.IsSet("threading-model") {
				cfg.WMI.ThreadingModel = cmd.String("threading-model")
			}

			q := wmi.NewQuery(cmd.String("namespace"), cmd.String("class"), cmd.StringSlice("field")...)
			if err := q.Validate(); err != nil {
				return err
			}

			h, err := newQueryHandler(&cfg)
			if err != nil {
				return err
			}

			res, err := h.Execute(ctx, q)
			if err != nil {
				return fmt.Errorf("query %s failed: %w", q, err)
			}

			return write(ctx, cmd, snapshotter.NewQueryResult(version, q, res))
		},
	}
}

// newQueryHandler builds a handler through the factory so the CLI and the
// server apply configuration identically.
func newQueryHandler(cfg *config.Config) (wmi.Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	factory, err := wmi.NewFactory(
		wmi.WithDefaultTimeout(cfg.WMI.TimeoutMillis),
		wmi.WithHandlerOptions(cfg.WMI.HandlerOptions()...),
	)
	if err != nil {
		return nil, err
	}
	h := factory.CreateInstance()
	if h == nil {
		return nil, fmt.Errorf("failed to create WMI query handler")
	}
	return h, nil
}
