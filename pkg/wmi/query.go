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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/cns-wmi/pkg/measurement"
)

// Query identifies one WMI class to read: the namespace it lives in, the
// class name and the properties to project. An empty Fields list selects
// every property the provider returns.
type Query struct {
	Namespace string   `json:"namespace" yaml:"namespace" toml:"namespace"`
	Class     string   `json:"class" yaml:"class" toml:"class"`
	Fields    []string `json:"fields,omitempty" yaml:"fields,omitempty" toml:"fields"`
}

// NewQuery builds a Query. Fields are copied so the caller's slice can be
// reused.
func NewQuery(namespace, class string, fields ...string) Query {
	q := Query{Namespace: namespace, Class: class}
	if len(fields) > 0 {
		q.Fields = append([]string(nil), fields...)
	}
	return q
}

// Validate checks that the query names a namespace and a class, and that no
// field name is blank.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Namespace) == "" {
		return fmt.Errorf("query namespace is required")
	}
	if strings.TrimSpace(q.Class) == "" {
		return fmt.Errorf("query class is required")
	}
	for i, f := range q.Fields {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("query field %d of %s is empty", i, q.Class)
		}
	}
	return nil
}

// WQL renders the query as a WQL SELECT statement.
func (q Query) WQL() string {
	sel := "*"
	if len(q.Fields) > 0 {
		sel = strings.Join(q.Fields, ",")
	}
	return "SELECT " + sel + " FROM " + q.Class
}

// String identifies the query in diagnostics: the WQL statement qualified by
// its namespace.
func (q Query) String() string {
	return q.WQL() + " (" + q.Namespace + ")"
}

// Row maps property names to values for one returned instance.
type Row map[string]measurement.Reading

// Result holds the rows returned for a Query. A Result is never nil when
// Execute returns without error; an unreachable class yields zero rows.
type Result struct {
	Namespace string   `json:"namespace" yaml:"namespace"`
	Class     string   `json:"class" yaml:"class"`
	Fields    []string `json:"fields,omitempty" yaml:"fields,omitempty"`
	Rows      []Row    `json:"rows" yaml:"rows"`
}

func emptyResult(q Query) *Result {
	return &Result{
		Namespace: q.Namespace,
		Class:     q.Class,
		Fields:    q.Fields,
		Rows:      []Row{},
	}
}

// Len returns the number of rows.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Empty reports whether the result has no rows.
func (r *Result) Empty() bool {
	return r.Len() == 0
}

// Value returns the reading for field in row i, or nil when the row or the
// field is missing. Field lookup ignores case, as WMI property names do.
func (r *Result) Value(i int, field string) measurement.Reading {
	if r == nil || i < 0 || i >= len(r.Rows) {
		return nil
	}
	row := r.Rows[i]
	if v, ok := row[field]; ok {
		return v
	}
	for k, v := range row {
		if strings.EqualFold(k, field) {
			return v
		}
	}
	return nil
}

// GetString returns the field as a string.
func (r *Result) GetString(i int, field string) (string, bool) {
	v := r.Value(i, field)
	if v == nil {
		return "", false
	}
	if s, ok := v.Any().(string); ok {
		return s, true
	}
	return v.String(), true
}

// GetUint32 returns the field as a uint32. Values that do not fit are
// rejected.
func (r *Result) GetUint32(i int, field string) (uint32, bool) {
	n, ok := measurement.AsUint64(r.Value(i, field))
	if !ok || n > uint64(^uint32(0)) {
		return 0, false
	}
	return uint32(n), true
}

// GetUint64 returns the field as a uint64. WMI encodes uint64 properties as
// decimal strings; both forms are accepted.
func (r *Result) GetUint64(i int, field string) (uint64, bool) {
	return measurement.AsUint64(r.Value(i, field))
}

// GetFloat64 returns any numeric field widened to float64.
func (r *Result) GetFloat64(i int, field string) (float64, bool) {
	return measurement.AsFloat64(r.Value(i, field))
}

// GetBool returns the field as a bool.
func (r *Result) GetBool(i int, field string) (bool, bool) {
	v := r.Value(i, field)
	if v == nil {
		return false, false
	}
	b, ok := v.Any().(bool)
	return b, ok
}

// GetDateTime parses a CIM_DATETIME field such as
// "20240131120000.000000+060" (offset in minutes from UTC).
func (r *Result) GetDateTime(i int, field string) (time.Time, bool) {
	s, ok := r.GetString(i, field)
	if !ok {
		return time.Time{}, false
	}
	t, err := ParseDateTime(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

const cimDateTimeLayout = "20060102150405.000000"

// ParseDateTime parses a CIM_DATETIME value.
func ParseDateTime(s string) (time.Time, error) {
	if len(s) != 25 {
		return time.Time{}, fmt.Errorf("invalid CIM datetime %q: want 25 characters, got %d", s, len(s))
	}
	sign := s[21]
	if sign != '+' && sign != '-' {
		return time.Time{}, fmt.Errorf("invalid CIM datetime %q: bad offset sign", s)
	}
	minutes, err := strconv.Atoi(s[22:])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid CIM datetime %q: %w", s, err)
	}
	offset := minutes * 60
	if sign == '-' {
		offset = -offset
	}
	t, err := time.ParseInLocation(cimDateTimeLayout, s[:21], time.FixedZone("", offset))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid CIM datetime %q: %w", s, err)
	}
	return t, nil
}

// project converts raw provider rows into the result shape. With explicit
// fields every row carries exactly those keys, in the caller's spelling, and
// a property the provider did not return maps to nil. Without fields every
// returned property is kept.
func project(q Query, raw []map[string]any) *Result {
	res := emptyResult(q)
	res.Rows = make([]Row, 0, len(raw))
	for _, inst := range raw {
		row := make(Row, max(len(q.Fields), len(inst)))
		if len(q.Fields) == 0 {
			for k, v := range inst {
				row[k] = toReading(v)
			}
		} else {
			for _, f := range q.Fields {
				row[f] = toReading(lookupFold(inst, f))
			}
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}

func lookupFold(inst map[string]any, field string) any {
	if v, ok := inst[field]; ok {
		return v
	}
	for k, v := range inst {
		if strings.EqualFold(k, field) {
			return v
		}
	}
	return nil
}

func toReading(v any) measurement.Reading {
	if v == nil {
		return nil
	}
	return measurement.ToReading(v)
}
