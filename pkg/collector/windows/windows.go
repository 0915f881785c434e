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

package windows

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/cns-wmi/pkg/defaults"
	"github.com/NVIDIA/cns-wmi/pkg/measurement"
	"github.com/NVIDIA/cns-wmi/pkg/wmi"
)

var (
	// Properties dropped from every row: hardware identifiers that make
	// snapshots unique per machine without helping configuration review.
	filterOutWMIKeys = []string{
		"*SerialNumber*",
		"UUID",
		"IdentifyingNumber",
		"ProcessorId",
		"*Password*",
		"MACAddress",
	}
)

// DefaultQueries is the host inventory read when no query set is configured.
// The OpenHardwareMonitor sensor query is expected to fail on most hosts.
func DefaultQueries() []wmi.Query {
	cimv2 := defaults.WMIDefaultNamespace
	return []wmi.Query{
		wmi.NewQuery(cimv2, "Win32_OperatingSystem",
			"Caption", "Version", "BuildNumber", "OSArchitecture", "LastBootUpTime", "TotalVisibleMemorySize"),
		wmi.NewQuery(cimv2, "Win32_ComputerSystem",
			"Manufacturer", "Model", "NumberOfLogicalProcessors", "TotalPhysicalMemory", "HypervisorPresent"),
		wmi.NewQuery(cimv2, "Win32_Processor",
			"Name", "NumberOfCores", "NumberOfLogicalProcessors", "MaxClockSpeed"),
		wmi.NewQuery(cimv2, "Win32_BIOS",
			"Manufacturer", "SMBIOSBIOSVersion", "ReleaseDate"),
		wmi.NewQuery(cimv2, "Win32_VideoController",
			"Name", "DriverVersion", "AdapterRAM", "PNPDeviceID"),
		wmi.NewQuery(cimv2, "Win32_LogicalDisk",
			"DeviceID", "DriveType", "FileSystem", "Size", "FreeSpace"),
		wmi.NewQuery(`ROOT\OpenHardwareMonitor`, "Sensor",
			"Identifier", "SensorType", "Value"),
	}
}

// Collector runs a set of WMI queries through one handler and reports every
// returned row as a subtype of a single WMI measurement.
type Collector struct {
	Handler        wmi.Handler
	Queries        []wmi.Query
	MaxConcurrency int
}

// Collect executes the queries concurrently. Unreachable classes contribute
// no subtypes; only a handler error (COM unusable, cancellation) fails the
// collection.
func (c *Collector) Collect(ctx context.Context) (*measurement.Measurement, error) {
	if c.Handler == nil {
		return nil, fmt.Errorf("WMI query handler is not available")
	}

	queries := c.Queries
	if len(queries) == 0 {
		queries = DefaultQueries()
	}
	limit := c.MaxConcurrency
	if limit < 1 {
		limit = defaults.WMIMaxConcurrentQueries
	}

	slog.Info("collecting WMI data", "queries", len(queries), "concurrency", limit)

	results := make([]*wmi.Result, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, q := range queries {
		g.Go(func() error {
			res, err := c.Handler.Execute(gctx, q)
			if err != nil {
				return fmt.Errorf("failed to query %s: %w", q.Class, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := measurement.NewMeasurement(measurement.TypeWMI)
	for _, res := range results {
		for _, st := range Subtypes(res) {
			b.WithSubtype(st)
		}
	}
	return b.Build(), nil
}

// Subtypes converts a query result into measurement subtypes, one per row.
// Rows whose properties are all null or filtered out are skipped.
func Subtypes(res *wmi.Result) []measurement.Subtype {
	if res.Empty() {
		return nil
	}
	subs := make([]measurement.Subtype, 0, res.Len())
	for i, row := range res.Rows {
		data := make(map[string]measurement.Reading, len(row))
		for k, v := range row {
			if v != nil {
				data[k] = v
			}
		}
		data = measurement.FilterOut(data, filterOutWMIKeys)
		if len(data) == 0 {
			continue
		}

		name := res.Class
		if res.Len() > 1 {
			name = fmt.Sprintf("%s[%d]", res.Class, i)
		}
		st := measurement.NewSubtypeBuilder(name).
			SetContext(measurement.KeyNamespace, res.Namespace).
			SetContext(measurement.KeyClass, res.Class).
			SetContext(measurement.KeyRow, strconv.Itoa(i))
		for k, v := range data {
			st.Set(k, v)
		}
		subs = append(subs, st.Build())
	}
	return subs
}
