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

package header

import (
	"time"
)

// APIGroup is the group of every resource this module emits.
const APIGroup = "wmi.cns.nvidia.com"

// APIVersion is the full apiVersion written into headers.
const APIVersion = APIGroup + "/v1alpha1"

// Kind is the type of a serialized resource.
type Kind string

const (
	// KindSnapshot is a node snapshot made of WMI measurements.
	KindSnapshot Kind = "Snapshot"
	// KindQueryResult wraps the rows of a single WMI query.
	KindQueryResult Kind = "QueryResult"
)

// Metadata keys set by Init.
const (
	MetadataTimestamp = "timestamp"
	MetadataVersion   = "version"
	MetadataNode      = "source-node"
)

// String returns the kind name.
func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindSnapshot, KindQueryResult:
		return true
	default:
		return false
	}
}

// Header carries the Kubernetes-style type information of a resource.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Option configures a Header built by New.
type Option func(*Header)

// WithKind sets the kind.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion sets the apiVersion.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// WithMetadata adds one metadata entry.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// New returns a Header with an initialized Metadata map.
func New(opts ...Option) *Header {
	h := &Header{Metadata: make(map[string]string)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Init resets the header for kind, stamping the current UTC time and, when
// set, the producer version.
func (h *Header) Init(kind Kind, apiVersion, version string) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = map[string]string{
		MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata[MetadataVersion] = version
	}
}

// GetKind returns the kind.
func (h *Header) GetKind() Kind {
	return h.Kind
}

// GetMetadata returns the metadata map.
func (h *Header) GetMetadata() map[string]string {
	return h.Metadata
}
