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

package server

import (
	"net/http"
	"strings"
)

const (
	// DefaultAPIVersion is used when the Accept header names no supported version.
	DefaultAPIVersion = "v1"

	// HeaderAPIVersion carries the negotiated version on every API response.
	HeaderAPIVersion = "X-API-Version"

	vendorMediaPrefix = "application/vnd.nvidia.cns-wmi."
)

var supportedAPIVersions = map[string]bool{
	"v1": true,
}

// negotiateAPIVersion reads the version from a vendor media type such as
// application/vnd.nvidia.cns-wmi.v1+json.
func negotiateAPIVersion(r *http.Request) string {
	for _, mt := range strings.Split(r.Header.Get("Accept"), ",") {
		mt = strings.TrimSpace(mt)
		rest, ok := strings.CutPrefix(mt, vendorMediaPrefix)
		if !ok {
			continue
		}
		version, _, _ := strings.Cut(rest, "+")
		if isValidAPIVersion(version) {
			return version
		}
	}
	return DefaultAPIVersion
}

func isValidAPIVersion(version string) bool {
	return supportedAPIVersions[version]
}
