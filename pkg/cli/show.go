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

	"github.com/NVIDIA/cns-wmi/pkg/serializer"
	"github.com/NVIDIA/cns-wmi/pkg/snapshotter"
)

func showCmd() *cli.Command {
	return &cli.Command{
		Name:                  "show",
		EnableShellCompletion: true,
		Usage:                 "Re-render a previously captured snapshot",
		Description: `Read a snapshot from a file or ConfigMap and write it in another format,
for example to review a snapshot captured by a DaemonSet as a table.

# Examples

  cnswmi show --snapshot cm://gpu-operator/cns-wmi-snapshot --format table
  cnswmi show -s snapshot.json --output snapshot.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "snapshot",
				Aliases:  []string{"s"},
				Required: true,
				Usage:    "Snapshot file path or ConfigMap URI (cm://namespace/name)",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			snap, err := serializer.FromFile[snapshotter.Snapshot](ctx, cmd.String("snapshot"),
				serializer.WithKubeconfig(cmd.String("kubeconfig")))
			if err != nil {
				return err
			}
			return write(ctx, cmd, snap)
		},
	}
}
