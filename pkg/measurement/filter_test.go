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

import "testing"

func TestFilterOut(t *testing.T) {
	readings := map[string]Reading{
		"SerialNumber":      Str("ABC123"),
		"UUID":              Str("4C4C4544-0042"),
		"Manufacturer":      Str("Dell Inc."),
		"SMBIOSBIOSVersion": Str("2.17.0"),
		"BIOSVersion":       Str("DELL - 1072009"),
		"ReleaseDate":       Str("20230404000000.000000+000"),
	}

	tests := []struct {
		name     string
		patterns []string
		wantKeys []string
	}{
		{
			name:     "exact match",
			patterns: []string{"UUID"},
			wantKeys: []string{"SerialNumber", "Manufacturer", "SMBIOSBIOSVersion", "BIOSVersion", "ReleaseDate"},
		},
		{
			name:     "exact match ignores case",
			patterns: []string{"serialnumber"},
			wantKeys: []string{"UUID", "Manufacturer", "SMBIOSBIOSVersion", "BIOSVersion", "ReleaseDate"},
		},
		{
			name:     "suffix wildcard",
			patterns: []string{"*Version"},
			wantKeys: []string{"SerialNumber", "UUID", "Manufacturer", "ReleaseDate"},
		},
		{
			name:     "prefix wildcard",
			patterns: []string{"SMBIOS*"},
			wantKeys: []string{"SerialNumber", "UUID", "Manufacturer", "BIOSVersion", "ReleaseDate"},
		},
		{
			name:     "contains wildcard",
			patterns: []string{"*bios*"},
			wantKeys: []string{"SerialNumber", "UUID", "Manufacturer", "ReleaseDate"},
		},
		{
			name:     "multiple patterns",
			patterns: []string{"Serial*", "UUID"},
			wantKeys: []string{"Manufacturer", "SMBIOSBIOSVersion", "BIOSVersion", "ReleaseDate"},
		},
		{
			name:     "no patterns",
			patterns: nil,
			wantKeys: []string{"SerialNumber", "UUID", "Manufacturer", "SMBIOSBIOSVersion", "BIOSVersion", "ReleaseDate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterOut(readings, tt.patterns)

			if len(result) != len(tt.wantKeys) {
				t.Fatalf("FilterOut() returned %d keys, want %d: %v", len(result), len(tt.wantKeys), result)
			}
			for _, k := range tt.wantKeys {
				if _, ok := result[k]; !ok {
					t.Errorf("FilterOut() missing expected key %q", k)
				}
			}
		})
	}
}

func TestMatchesPattern(t *testing.T) {
	tests := []struct {
		key     string
		pattern string
		want    bool
	}{
		{"Name", "Name", true},
		{"Name", "name", true},
		{"Name", "Names", false},
		{"MaxClockSpeed", "Max*", true},
		{"MaxClockSpeed", "*Speed", true},
		{"MaxClockSpeed", "*Clock*", true},
		{"MaxClockSpeed", "M*C*S*", true},
		{"MaxClockSpeed", "*Voltage*", false},
		{"MaxClockSpeed", "*", true},
		{"MaxClockSpeed", "**", true},
		{"ab", "a*b*b", false},
	}

	for _, tt := range tests {
		t.Run(tt.key+"/"+tt.pattern, func(t *testing.T) {
			if got := matchesPattern(tt.key, tt.pattern); got != tt.want {
				t.Errorf("matchesPattern(%q, %q) = %v, want %v", tt.key, tt.pattern, got, tt.want)
			}
		})
	}
}
