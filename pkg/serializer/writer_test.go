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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/cns-wmi/pkg/header"
	"github.com/NVIDIA/cns-wmi/pkg/measurement"
)

type testDoc struct {
	header.Header `json:",inline" yaml:",inline"`
	Measurements  []*measurement.Measurement `json:"measurements" yaml:"measurements"`
}

func newTestDoc() *testDoc {
	d := &testDoc{}
	d.Init(header.KindSnapshot, header.APIVersion, "v0.1.0")
	d.Measurements = []*measurement.Measurement{
		measurement.NewMeasurement(measurement.TypeWMI).
			WithSubtype(measurement.NewSubtypeBuilder("Win32_OperatingSystem").
				SetString("Caption", "Microsoft Windows Server 2022 Datacenter").
				SetUint64("TotalVisibleMemorySize", 33554432).
				Build()).
			Build(),
	}
	return d
}

func TestWriter_Formats(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		check  func(t *testing.T, out []byte)
	}{
		{
			name:   "json",
			format: FormatJSON,
			check: func(t *testing.T, out []byte) {
				var got map[string]any
				if err := json.Unmarshal(out, &got); err != nil {
					t.Fatalf("invalid JSON: %v", err)
				}
				if got["kind"] != "Snapshot" {
					t.Errorf("kind = %v", got["kind"])
				}
			},
		},
		{
			name:   "yaml",
			format: FormatYAML,
			check: func(t *testing.T, out []byte) {
				var got map[string]any
				if err := yaml.Unmarshal(out, &got); err != nil {
					t.Fatalf("invalid YAML: %v", err)
				}
				if got["apiVersion"] != header.APIVersion {
					t.Errorf("apiVersion = %v", got["apiVersion"])
				}
			},
		},
		{
			name:   "table",
			format: FormatTable,
			check: func(t *testing.T, out []byte) {
				s := string(out)
				if !strings.HasPrefix(s, "FIELD") {
					t.Errorf("missing table header:\n%s", s)
				}
				if !strings.Contains(s, "Measurements.[0].Subtypes.[0].Data.Caption") {
					t.Errorf("missing flattened reading:\n%s", s)
				}
				if !strings.Contains(s, "Microsoft Windows Server 2022 Datacenter") {
					t.Errorf("reading value not rendered:\n%s", s)
				}
			},
		},
		{
			name:   "unknown falls back to json",
			format: Format("xml"),
			check: func(t *testing.T, out []byte) {
				if !json.Valid(out) {
					t.Errorf("expected JSON, got:\n%s", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(tt.format, &buf)
			if err := w.Serialize(context.Background(), newTestDoc()); err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			tt.check(t, buf.Bytes())
		})
	}
}

func TestEncode_EmptyTable(t *testing.T) {
	out, err := Encode(FormatTable, struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "<empty>\n" {
		t.Errorf("got %q", out)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"snap.json":     FormatJSON,
		"snap.YAML":     FormatYAML,
		"snap.yml":      FormatYAML,
		"snap.txt":      FormatTable,
		"snap":          FormatJSON,
		`C:\out\a.yaml`: FormatYAML,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestNewDestination(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.yaml")

	s, err := NewDestination(FormatYAML, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Serialize(context.Background(), newTestDoc()); err != nil {
		t.Fatal(err)
	}
	if err := CloseIfCloser(s); err != nil {
		t.Fatal(err)
	}
	if b, err := os.ReadFile(path); err != nil || !strings.Contains(string(b), "kind: Snapshot") {
		t.Errorf("file content = %q, err = %v", b, err)
	}

	if s, err := NewDestination(FormatJSON, "-"); err != nil {
		t.Error(err)
	} else if _, ok := s.(*Writer); !ok {
		t.Errorf("stdout destination type = %T", s)
	}

	if s, err := NewDestination(FormatJSON, "cm://kube-system/cns-wmi"); err != nil {
		t.Error(err)
	} else if _, ok := s.(*ConfigMapWriter); !ok {
		t.Errorf("ConfigMap destination type = %T", s)
	}

	if _, err := NewDestination(FormatJSON, "cm://kube-system"); err == nil {
		t.Error("expected error for malformed ConfigMap URI")
	}
	if _, err := NewDestination(FormatJSON, filepath.Join(dir, "missing", "x.json")); err == nil {
		t.Error("expected error for uncreatable file")
	}
}

func TestWriter_CloseTwice(t *testing.T) {
	w, err := NewFileWriter(FormatJSON, filepath.Join(t.TempDir(), "x.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
