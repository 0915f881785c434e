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
	"errors"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Common measurement keys exported for consistency and type safety.
const (
	KeyNamespace = "namespace"
	KeyClass     = "class"
	KeyRow       = "row"
	KeyQuery     = "query"
)

// Type represents the category of a measurement.
type Type string

// String returns the string representation of the measurement Type.
func (mt Type) String() string {
	return string(mt)
}

const (
	// TypeWMI holds rows returned by WMI queries, one subtype per row.
	TypeWMI Type = "WMI"
)

// Types is the list of all supported measurement types.
var Types = []Type{
	TypeWMI,
}

// ParseType parses a string into a measurement Type.
// Returns the Type and true if parsing succeeds, or empty Type and false if the string is invalid.
func ParseType(s string) (Type, bool) {
	for _, mt := range Types {
		if string(mt) == s {
			return mt, true
		}
	}
	return "", false
}

// Measurement represents collected data of a specific type with multiple subtypes.
type Measurement struct {
	Type     Type      `json:"type" yaml:"type"`
	Subtypes []Subtype `json:"subtypes,omitempty" yaml:"subtypes,omitempty"`
}

// Subtype represents a specific subcategory of measurement with associated data.
// Data contains the actual measurements as key-value pairs.
// Context provides additional metadata about the measurement environment.
type Subtype struct {
	Name    string             `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	Data    map[string]Reading `json:"data" yaml:"data"`
	Context map[string]string  `json:"context,omitempty" yaml:"context,omitempty"`
}

// UnmarshalJSON custom unmarshaler for Subtype to handle Reading interface
func (st *Subtype) UnmarshalJSON(data []byte) error {
	var tmp struct {
		Name    string            `json:"subtype"`
		Data    map[string]any    `json:"data"`
		Context map[string]string `json:"context"`
	}

	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	st.Name = tmp.Name
	st.Context = tmp.Context
	st.Data = make(map[string]Reading, len(tmp.Data))
	for k, v := range tmp.Data {
		st.Data[k] = ToReading(v)
	}

	return nil
}

// UnmarshalYAML custom unmarshaler for Subtype to handle Reading interface
func (st *Subtype) UnmarshalYAML(node *yaml.Node) error {
	var tmp struct {
		Name    string            `yaml:"subtype"`
		Data    map[string]any    `yaml:"data"`
		Context map[string]string `yaml:"context"`
	}

	if err := node.Decode(&tmp); err != nil {
		return err
	}

	st.Name = tmp.Name
	st.Context = tmp.Context
	st.Data = make(map[string]Reading, len(tmp.Data))
	for k, v := range tmp.Data {
		st.Data[k] = ToReading(v)
	}

	return nil
}

// AllowedScalar is a constraint (compile-time) for what we allow as readings.
type AllowedScalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		~bool |
		~string
}

// Reading is a *runtime* interface (so it can be stored in a map with mixed types).
type Reading interface {
	isReading()
	Any() any
	String() string

	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Scalar wraps an allowed scalar type.
type Scalar[T AllowedScalar] struct {
	V T
}

func (Scalar[T]) isReading() {}

func (s Scalar[T]) Any() any { return s.V }

// String returns the string representation of the underlying scalar value.
func (s Scalar[T]) String() string {
	return fmt.Sprintf("%v", s.V)
}

// MarshalJSON makes the JSON value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.V)
}

// MarshalYAML makes the YAML value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalYAML() (any, error) {
	return s.V, nil
}

// UnmarshalJSON unmarshals a JSON value into the underlying scalar.
func (s *Scalar[T]) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &s.V)
}

// UnmarshalYAML unmarshals a YAML value into the underlying scalar.
func (s *Scalar[T]) UnmarshalYAML(node *yaml.Node) error {
	return node.Decode(&s.V)
}

// ToReading creates a Reading from a native value. COM variants surface as
// the sized integer types, so those keep their width. Times are rendered as
// RFC 3339 strings. Anything else becomes its fmt representation.
func ToReading(v any) Reading {
	r, _ := ToReadingWithType(v)
	return r
}

// ToReadingWithType converts a value to a Reading and returns false when the
// conversion was lossy (i.e., converted to string via fmt.Sprintf).
func ToReadingWithType(v any) (Reading, bool) {
	switch val := v.(type) {
	case int:
		return Int(val), true
	case int8:
		return &Scalar[int8]{V: val}, true
	case int16:
		return &Scalar[int16]{V: val}, true
	case int32:
		return &Scalar[int32]{V: val}, true
	case int64:
		return Int64(val), true
	case uint:
		return Uint(val), true
	case uint8:
		return &Scalar[uint8]{V: val}, true
	case uint16:
		return &Scalar[uint16]{V: val}, true
	case uint32:
		return Uint32(val), true
	case uint64:
		return Uint64(val), true
	case float32:
		return &Scalar[float32]{V: val}, true
	case float64:
		return Float64(val), true
	case bool:
		return Bool(val), true
	case string:
		return Str(val), true
	case time.Time:
		return Str(val.UTC().Format(time.RFC3339)), true
	default:
		return Str(fmt.Sprintf("%v", val)), false
	}
}

// Convenience constructors for each allowed scalar type.
func Int(v int) Reading         { return &Scalar[int]{V: v} }
func Int64(v int64) Reading     { return &Scalar[int64]{V: v} }
func Uint(v uint) Reading       { return &Scalar[uint]{V: v} }
func Uint32(v uint32) Reading   { return &Scalar[uint32]{V: v} }
func Uint64(v uint64) Reading   { return &Scalar[uint64]{V: v} }
func Float64(v float64) Reading { return &Scalar[float64]{V: v} }
func Bool(v bool) Reading       { return &Scalar[bool]{V: v} }
func Str(v string) Reading      { return &Scalar[string]{V: v} }

// Validate checks if the measurement is properly formed.
func (m *Measurement) Validate() error {
	if m.Type == "" {
		return errors.New("measurement type cannot be empty")
	}
	if len(m.Subtypes) == 0 {
		return errors.New("measurement must have at least one subtype")
	}
	for i, st := range m.Subtypes {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("subtype[%d]: %w", i, err)
		}
	}
	return nil
}

// GetSubtype retrieves a subtype by name, returning nil if not found.
func (m *Measurement) GetSubtype(name string) *Subtype {
	for i := range m.Subtypes {
		if m.Subtypes[i].Name == name {
			return &m.Subtypes[i]
		}
	}
	return nil
}

// HasSubtype checks if a subtype with the given name exists.
func (m *Measurement) HasSubtype(name string) bool {
	return m.GetSubtype(name) != nil
}

// SubtypeNames returns all subtype names.
func (m *Measurement) SubtypeNames() []string {
	names := make([]string, len(m.Subtypes))
	for i, st := range m.Subtypes {
		names[i] = st.Name
	}
	return names
}

// Validate checks if the subtype is properly formed.
func (st *Subtype) Validate() error {
	if len(st.Data) == 0 {
		return errors.New("subtype data cannot be empty")
	}
	return nil
}

// Has checks if a key exists in the subtype data.
func (st *Subtype) Has(key string) bool {
	_, exists := st.Data[key]
	return exists
}

// Get retrieves a reading by key, returning nil if not found.
func (st *Subtype) Get(key string) Reading {
	return st.Data[key]
}

// GetString attempts to retrieve a string value, returning an error if not found or wrong type.
func (st *Subtype) GetString(key string) (string, error) {
	reading := st.Data[key]
	if reading == nil {
		return "", fmt.Errorf("key %q not found", key)
	}
	v, ok := reading.Any().(string)
	if !ok {
		return "", fmt.Errorf("key %q is not a string", key)
	}
	return v, nil
}

// GetUint64 retrieves any unsigned integer reading widened to uint64.
func (st *Subtype) GetUint64(key string) (uint64, error) {
	reading := st.Data[key]
	if reading == nil {
		return 0, fmt.Errorf("key %q not found", key)
	}
	v, ok := AsUint64(reading)
	if !ok {
		return 0, fmt.Errorf("key %q is not an unsigned integer", key)
	}
	return v, nil
}

// GetBool attempts to retrieve a bool value, returning an error if not found or wrong type.
func (st *Subtype) GetBool(key string) (bool, error) {
	reading := st.Data[key]
	if reading == nil {
		return false, fmt.Errorf("key %q not found", key)
	}
	v, ok := reading.Any().(bool)
	if !ok {
		return false, fmt.Errorf("key %q is not a bool", key)
	}
	return v, nil
}

// AsUint64 widens an unsigned integer reading. WMI reports uint64 properties
// as strings, so numeric strings are accepted too.
func AsUint64(r Reading) (uint64, bool) {
	if r == nil {
		return 0, false
	}
	switch v := r.Any().(type) {
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case int32:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// AsFloat64 widens any numeric reading to float64.
func AsFloat64(r Reading) (float64, bool) {
	if r == nil {
		return 0, false
	}
	switch v := r.Any().(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		if u, ok := AsUint64(r); ok {
			return float64(u), true
		}
		return 0, false
	}
}
