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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cns-wmi/pkg/serializer"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output destination: file path, ConfigMap URI (cm://namespace/name), or stdout when empty",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatYAML),
		Usage:   fmt.Sprintf("Output format (supported: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}

	kubeconfigFlag = &cli.StringFlag{
		Name:    "kubeconfig",
		Aliases: []string{"k"},
		Usage:   "Path to kubeconfig used for ConfigMap input and output (default: in-cluster or ~/.kube/config)",
	}
)

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(strings.ToLower(cmd.String("format")))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", cmd.String("format"))
	}
	return f, nil
}

// write serializes v to the --output destination.
func write(ctx context.Context, cmd *cli.Command, v any) (err error) {
	format, err := parseOutputFormat(cmd)
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

	return dest.Serialize(ctx, v)
}
