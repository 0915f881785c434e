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

import "strings"

// FilterOut returns a new map without the keys matching any of the patterns.
// WMI property names are case-insensitive, so matching ignores case.
// Supported patterns:
//   - "prefix*" matches keys starting with "prefix"
//   - "*suffix" matches keys ending with "suffix"
//   - "*contains*" matches keys containing "contains"
//   - "exact" matches keys exactly
func FilterOut(readings map[string]Reading, patterns []string) map[string]Reading {
	result := make(map[string]Reading, len(readings))

	for key, value := range readings {
		if !matchesAny(key, patterns) {
			result[key] = value
		}
	}

	return result
}

func matchesAny(key string, patterns []string) bool {
	for _, p := range patterns {
		if matchesPattern(key, p) {
			return true
		}
	}
	return false
}

// matchesPattern checks if a key matches a wildcard pattern.
// Supports multiple wildcard segments, e.g., "a*b*c" matches "aXbYc".
func matchesPattern(key, pattern string) bool {
	key = strings.ToLower(key)
	pattern = strings.ToLower(pattern)

	if !strings.Contains(pattern, "*") {
		return key == pattern
	}

	segments := strings.Split(pattern, "*")
	last := len(segments) - 1

	if !strings.HasPrefix(key, segments[0]) {
		return false
	}
	pos := len(segments[0])

	for i := 1; i < last; i++ {
		idx := strings.Index(key[pos:], segments[i])
		if idx == -1 {
			return false
		}
		pos += idx + len(segments[i])
	}

	return strings.HasSuffix(key[pos:], segments[last])
}
