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

	"github.com/NVIDIA/cns-wmi/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the WMI query API over HTTP",
		Description: `Start the HTTP API (/v1/query, /v1/snapshot, /health, /ready, /metrics).

The listen port comes from PORT (default 8080) and the drain period from
SHUTDOWN_TIMEOUT_SECONDS.`,
		Action: func(ctx context.Context, _ *cli.Command) error {
			return api.Serve(ctx, configFrom(ctx))
		},
	}
}
