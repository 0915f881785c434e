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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cns-wmi/pkg/collector"
	"github.com/NVIDIA/cns-wmi/pkg/serializer"
	"github.com/NVIDIA/cns-wmi/pkg/snapshotter"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Capture a WMI configuration snapshot of this node",
		Description: `Run the configured WMI query set (or the built-in inventory of operating
system, computer system, processor, BIOS, video controller and logical disks)
and write the rows as a Snapshot document.

The snapshot can be written to a file, a Kubernetes ConfigMap, or stdout, in
JSON, YAML, or table format.

# Examples

  cnswmi snapshot --output snapshot.yaml
  cnswmi snapshot --output cm://gpu-operator/cns-wmi-snapshot --format json`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-concurrency",
				Usage: "Maximum WMI queries in flight (overrides config)",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) (err error) {
			format, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg := *configFrom(ctx)
			if cmd.IsSet("max-concurrency") {
				cfg.WMI.MaxConcurrency = int(cmd.Int("max-concurrency"))
			}

			h, err := newQueryHandler(&cfg)
			if err != nil {
				return err
			}

			dest, err := serializer.NewDestination(format, cmd.String("output"),
				serializer.WithKubeconfig(cmd.String("kubeconfig")))
			if err != nil {
				return err
			}
			defer func() {
				if cerr := serializer.CloseIfCloser(dest); cerr != nil && err == nil {
					err = cerr
				}
			}()

			ns := snapshotter.NodeSnapshotter{
				Version: version,
				Factory: collector.NewDefaultFactory(
					collector.WithHandler(h),
					collector.WithQueries(cfg.Queries),
					collector.WithMaxConcurrency(cfg.WMI.MaxConcurrency),
				),
				Serializer: dest,
			}
			return ns.Measure(ctx)
		},
	}
}
