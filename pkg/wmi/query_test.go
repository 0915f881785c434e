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

package wmi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/cns-wmi/pkg/measurement"
)

func TestQuery_WQL(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want string
	}{
		{"fields", NewQuery(cimv2, "Win32_Processor", "Name", "NumberOfCores"), "SELECT Name,NumberOfCores FROM Win32_Processor"},
		{"all", NewQuery(cimv2, "Win32_BIOS"), "SELECT * FROM Win32_BIOS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.WQL())
		})
	}

	q := NewQuery(`ROOT\OpenHardwareMonitor`, "Sensor", "Value")
	assert.Equal(t, `SELECT Value FROM Sensor (ROOT\OpenHardwareMonitor)`, q.String())
}

func TestNewQuery_CopiesFields(t *testing.T) {
	fields := []string{"Name", "Size"}
	q := NewQuery(cimv2, "Win32_LogicalDisk", fields...)
	fields[0] = "changed"
	assert.Equal(t, "Name", q.Fields[0])
}

func TestQuery_Validate(t *testing.T) {
	assert.NoError(t, NewQuery(cimv2, "Win32_BIOS").Validate())
	assert.Error(t, NewQuery("", "Win32_BIOS").Validate())
	assert.Error(t, NewQuery(cimv2, " ").Validate())
	assert.Error(t, NewQuery(cimv2, "Win32_BIOS", "Name", "").Validate())
}

func TestProject(t *testing.T) {
	q := NewQuery(cimv2, "Win32_Processor", "Name", "MaxClockSpeed", "L3CacheSize")
	res := project(q, []map[string]any{
		{"NAME": "Xeon", "MaxClockSpeed": uint32(3100), "Extra": "ignored"},
	})

	assert.Equal(t, 1, res.Len())
	row := res.Rows[0]
	assert.Len(t, row, 3)
	assert.Equal(t, "Xeon", row["Name"].Any(), "caller spelling is kept")
	assert.Equal(t, uint32(3100), row["MaxClockSpeed"].Any())
	assert.Nil(t, row["L3CacheSize"])
	assert.NotContains(t, row, "Extra")
}

func TestResult_TypedAccessors(t *testing.T) {
	res := &Result{Rows: []Row{{
		"Caption":        measurement.Str("Windows"),
		"NumberOfCores":  measurement.Uint32(16),
		"Capacity":       measurement.Str("17179869184"),
		"Temperature":    measurement.Float64(41.5),
		"Negative":       &measurement.Scalar[int32]{V: -1},
		"LastBootUpTime": measurement.Str("20240131120000.000000+060"),
		"InstallDate":    measurement.Str("not a date"),
		"TooLargeForU32": measurement.Uint64(1 << 40),
		"PartOfDomain":   measurement.Bool(true),
	}}}

	s, ok := res.GetString(0, "caption")
	assert.True(t, ok)
	assert.Equal(t, "Windows", s)

	n, ok := res.GetUint32(0, "NumberOfCores")
	assert.True(t, ok)
	assert.Equal(t, uint32(16), n)

	_, ok = res.GetUint32(0, "TooLargeForU32")
	assert.False(t, ok)

	_, ok = res.GetUint32(0, "Negative")
	assert.False(t, ok)

	u, ok := res.GetUint64(0, "Capacity")
	assert.True(t, ok)
	assert.Equal(t, uint64(17179869184), u)

	f, ok := res.GetFloat64(0, "Temperature")
	assert.True(t, ok)
	assert.InDelta(t, 41.5, f, 0.0001)

	b, ok := res.GetBool(0, "PartOfDomain")
	assert.True(t, ok)
	assert.True(t, b)

	boot, ok := res.GetDateTime(0, "LastBootUpTime")
	assert.True(t, ok)
	assert.True(t, boot.Equal(time.Date(2024, 1, 31, 11, 0, 0, 0, time.UTC)))

	_, ok = res.GetDateTime(0, "InstallDate")
	assert.False(t, ok)

	assert.Nil(t, res.Value(1, "Caption"), "row out of range")
	assert.Nil(t, res.Value(-1, "Caption"))
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"20231015123045.500000+000", time.Date(2023, 10, 15, 12, 30, 45, 500000000, time.UTC), false},
		{"20231015123045.000000-300", time.Date(2023, 10, 15, 17, 30, 45, 0, time.UTC), false},
		{"20231015123045.000000", time.Time{}, true},
		{"20231015123045.000000*000", time.Time{}, true},
		{"2023101512304X.000000+000", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateTime(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s", got)
		})
	}
}

func TestResult_NilSafe(t *testing.T) {
	var res *Result
	assert.Equal(t, 0, res.Len())
	assert.True(t, res.Empty())
	assert.Nil(t, res.Value(0, "Name"))
}
