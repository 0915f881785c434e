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
package measurement

import (
	"encoding/json"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestToReadingWithType(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		in       any
		want     any
		lossless bool
	}{
		{"int", 42, 42, true},
		{"int8", int8(-3), int8(-3), true},
		{"int16", int16(512), int16(512), true},
		{"int32", int32(-1), int32(-1), true},
		{"int64", int64(1 << 40), int64(1 << 40), true},
		{"uint8", uint8(7), uint8(7), true},
		{"uint16", uint16(2), uint16(2), true},
		{"uint32", uint32(3600), uint32(3600), true},
		{"uint64", uint64(17179869184), uint64(17179869184), true},
		{"float32", float32(1.5), float32(1.5), true},
		{"float64", 2.25, 2.25, true},
		{"bool", true, true, true},
		{"string", "Win32_BIOS", "Win32_BIOS", true},
		{"time", ts, "2025-03-01T12:30:00Z", true},
		{"slice", []string{"a", "b"}, "[a b]", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := ToReadingWithType(tt.in)
			if ok != tt.lossless {
				t.Errorf("lossless = %v, want %v", ok, tt.lossless)
			}
			if r.Any() != tt.want {
				t.Errorf("Any() = %#v, want %#v", r.Any(), tt.want)
			}
		})
	}
}

func TestSubtype_JSONRoundTrip(t *testing.T) {
	st := Subtype{
		Name: "Win32_Processor[0]",
		Data: map[string]Reading{
			"Name":          Str("Intel(R) Xeon(R)"),
			"NumberOfCores": Uint32(16),
		},
		Context: map[string]string{KeyNamespace: `ROOT\CIMV2`},
	}

	data, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var got Subtype
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	name, err := got.GetString("Name")
	if err != nil || name != "Intel(R) Xeon(R)" {
		t.Errorf("GetString(Name) = %q, %v", name, err)
	}
	// JSON numbers come back as float64
	if f, ok := AsFloat64(got.Get("NumberOfCores")); !ok || f != 16 {
		t.Errorf("NumberOfCores = %v, %v; want 16", f, ok)
	}
	if got.Context[KeyNamespace] != `ROOT\CIMV2` {
		t.Errorf("context namespace = %q", got.Context[KeyNamespace])
	}
}

func TestSubtype_YAMLMarshalsScalars(t *testing.T) {
	st := Subtype{
		Name: "Win32_BIOS[0]",
		Data: map[string]Reading{"SMBIOSBIOSVersion": Str("2.17.0")},
	}

	out, err := yaml.Marshal(st)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	var got Subtype
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if v, _ := got.GetString("SMBIOSBIOSVersion"); v != "2.17.0" {
		t.Errorf("SMBIOSBIOSVersion = %q, want 2.17.0", v)
	}
}

func TestAsUint64(t *testing.T) {
	tests := []struct {
		name string
		r    Reading
		want uint64
		ok   bool
	}{
		{"nil", nil, 0, false},
		{"uint32", Uint32(10), 10, true},
		{"uint64", Uint64(1 << 35), 1 << 35, true},
		{"numeric string", Str("34359738368"), 34359738368, true},
		{"non numeric string", Str("12abc"), 0, false},
		{"negative int32", ToReading(int32(-5)), 0, false},
		{"positive int32", ToReading(int32(5)), 5, true},
		{"bool", Bool(true), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsUint64(tt.r)
			if got != tt.want || ok != tt.ok {
				t.Errorf("AsUint64() = %d, %v; want %d, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMeasurement_Validate(t *testing.T) {
	tests := []struct {
		name    string
		m       Measurement
		wantErr bool
	}{
		{
			name:    "empty type",
			m:       Measurement{},
			wantErr: true,
		},
		{
			name:    "no subtypes",
			m:       Measurement{Type: TypeWMI},
			wantErr: true,
		},
		{
			name: "empty subtype data",
			m: Measurement{Type: TypeWMI, Subtypes: []Subtype{
				{Name: "Win32_BIOS[0]", Data: map[string]Reading{}},
			}},
			wantErr: true,
		},
		{
			name: "valid",
			m: Measurement{Type: TypeWMI, Subtypes: []Subtype{
				{Name: "Win32_BIOS[0]", Data: map[string]Reading{"Name": Str("BIOS")}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.m.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	if mt, ok := ParseType("WMI"); !ok || mt != TypeWMI {
		t.Errorf("ParseType(WMI) = %v, %v", mt, ok)
	}
	if _, ok := ParseType("K8s"); ok {
		t.Error("ParseType(K8s) should fail")
	}
}
