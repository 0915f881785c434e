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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cns-wmi/pkg/config"
	"github.com/NVIDIA/cns-wmi/pkg/serializer"
	"github.com/NVIDIA/cns-wmi/pkg/snapshotter"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		want    serializer.Format
		wantErr bool
	}{
		{"yaml", serializer.FormatYAML, false},
		{"JSON", serializer.FormatJSON, false},
		{"table", serializer.FormatTable, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			cmd := &cli.Command{
				Flags: []cli.Flag{&cli.StringFlag{Name: "format", Value: tt.format}},
				Action: func(_ context.Context, c *cli.Command) error {
					got, err := parseOutputFormat(c)
					if tt.wantErr {
						assert.Error(t, err)
						return nil
					}
					assert.NoError(t, err)
					assert.Equal(t, tt.want, got)
					return nil
				},
			}
			assert.NoError(t, cmd.Run(context.Background(), []string{"test"}))
		})
	}
}

func TestRootCmd(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, name, root.Name)
	assert.NotNil(t, root.Before)

	names := make([]string, 0, len(root.Commands))
	for _, c := range root.Commands {
		names = append(names, c.Name)
		assert.NotEmpty(t, c.Usage, c.Name)
		assert.NotNil(t, c.Action, c.Name)
	}
	assert.ElementsMatch(t, []string{"query", "snapshot", "show", "serve"}, names)
}

func TestCommandLister(_ *testing.T) {
	commandLister(context.Background(), nil)
	commandLister(context.Background(), &cli.Command{Name: "test"})
	commandLister(context.Background(), &cli.Command{
		Name: "root",
		Commands: []*cli.Command{
			{Name: "visible", Hidden: false},
			{Name: "hidden", Hidden: true},
		},
	})
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(config.EnvTimeout, "")
	t.Setenv(config.EnvLogLevel, "")
	path := filepath.Join(t.TempDir(), "cnswmi.toml")
	assert.NoError(t, os.WriteFile(path, []byte("[wmi]\ntimeout_millis = 1500\n"), 0o600))

	var got *config.Config
	root := newRootCmd()
	root.Commands = []*cli.Command{{
		Name: "probe",
		Action: func(ctx context.Context, _ *cli.Command) error {
			got = configFrom(ctx)
			return nil
		},
	}}

	err := root.Run(context.Background(), []string{name, "--config", path, "--log-level", "debug", "probe"})
	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.Equal(t, int64(1500), got.WMI.TimeoutMillis)
		assert.Equal(t, "debug", got.Log.Level)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cnswmi.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("wmi:\n  timeoutMillis: -7\n"), 0o600))

	root := newRootCmd()
	err := root.Run(context.Background(), []string{name, "--config", path, "serve"})
	assert.Error(t, err)
}

func TestConfigFrom_Default(t *testing.T) {
	assert.Equal(t, config.Default(), configFrom(context.Background()))
}

func TestShowCmd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "snapshot.json")
	out := filepath.Join(dir, "snapshot.yaml")
	assert.NoError(t, os.WriteFile(in, []byte(`{
  "kind": "Snapshot",
  "apiVersion": "wmi.cns.nvidia.com/v1alpha1",
  "metadata": {"source-node": "win-worker-01"},
  "measurements": [
    {"type": "WMI", "subtypes": [
      {"subtype": "Win32_BIOS", "data": {"Manufacturer": "Contoso"}}
    ]}
  ]
}`), 0o600))

	err := showCmd().Run(context.Background(), []string{"show", "--snapshot", in, "--output", out, "--format", "yaml"})
	assert.NoError(t, err)

	snap, err := serializer.FromFile[snapshotter.Snapshot](context.Background(), out)
	assert.NoError(t, err)
	if assert.NotNil(t, snap) {
		assert.Equal(t, "win-worker-01", snap.Metadata["source-node"])
		assert.Len(t, snap.Measurements, 1)
		st := snap.Measurements[0].GetSubtype("Win32_BIOS")
		if assert.NotNil(t, st) {
			v, err := st.GetString("Manufacturer")
			assert.NoError(t, err)
			assert.Equal(t, "Contoso", v)
		}
	}
}

func TestShowCmd_Errors(t *testing.T) {
	assert.Error(t, showCmd().Run(context.Background(), []string{"show"}))
	assert.Error(t, showCmd().Run(context.Background(),
		[]string{"show", "--snapshot", filepath.Join(t.TempDir(), "missing.json")}))
	assert.Error(t, showCmd().Run(context.Background(),
		[]string{"show", "--snapshot", "x.json", "--format", "xml"}))
}

func TestQueryCmd_Validation(t *testing.T) {
	assert.Error(t, queryCmd().Run(context.Background(), []string{"query"}))
	assert.Error(t, queryCmd().Run(context.Background(),
		[]string{"query", "--class", "Win32_BIOS", "--format", "xml"}))
	assert.Error(t, queryCmd().Run(context.Background(),
		[]string{"query", "--class", "Win32_BIOS", "--timeout", "-9"}))
	assert.Error(t, queryCmd().Run(context.Background(),
		[]string{"query", "--class", "Win32_BIOS", "--threading-model", "free"}))
}
