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
	"fmt"
	"strings"
)

// NewDestination returns the serializer for an --output value:
//   - empty or "-": stdout
//   - cm://namespace/name: a ConfigMap
//   - anything else: a file path
//
// Callers should Close the result when it implements Closer.
func NewDestination(format Format, output string, opts ...ConfigMapOption) (Serializer, error) {
	out := strings.TrimSpace(output)
	switch {
	case out == "" || out == "-":
		return NewStdoutWriter(format), nil
	case strings.HasPrefix(out, ConfigMapURIScheme):
		ns, name, err := parseConfigMapURI(out)
		if err != nil {
			return nil, err
		}
		return NewConfigMapWriter(ns, name, format, opts...), nil
	default:
		w, err := NewFileWriter(format, out)
		if err != nil {
			return nil, fmt.Errorf("output %q: %w", out, err)
		}
		return w, nil
	}
}

// CloseIfCloser closes s when it holds resources.
func CloseIfCloser(s Serializer) error {
	if c, ok := s.(Closer); ok {
		return c.Close()
	}
	return nil
}
