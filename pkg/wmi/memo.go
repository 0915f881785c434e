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
	"sort"
	"sync"
)

// FailureMemo records classes that could not be queried. Entries are never
// removed; a class added once is skipped for the memo's lifetime.
type FailureMemo struct {
	mu      sync.RWMutex
	classes map[string]struct{}
}

// NewFailureMemo returns an empty memo.
func NewFailureMemo() *FailureMemo {
	return &FailureMemo{classes: make(map[string]struct{})}
}

// Contains reports whether class was recorded. Matching is exact.
func (m *FailureMemo) Contains(class string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.classes[class]
	return ok
}

// Add records class and reports whether it was new.
func (m *FailureMemo) Add(class string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.classes[class]; ok {
		return false
	}
	m.classes[class] = struct{}{}
	return true
}

// Len returns the number of recorded classes.
func (m *FailureMemo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.classes)
}

// Classes returns a sorted copy of the recorded class names.
func (m *FailureMemo) Classes() []string {
	m.mu.RLock()
	out := make([]string, 0, len(m.classes))
	for c := range m.classes {
		out = append(out, c)
	}
	m.mu.RUnlock()
	sort.Strings(out)
	return out
}
