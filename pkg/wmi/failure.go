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

import "log/slog"

// FailureHandler receives query failures that are neither invalid-query
// statuses nor soft-namespace errors. The handler has already decided to
// skip the class in future calls.
type FailureHandler interface {
	HandleQueryFailure(q Query, err error)
}

// FailureHandlerFunc adapts a function to FailureHandler.
type FailureHandlerFunc func(q Query, err error)

// HandleQueryFailure calls f.
func (f FailureHandlerFunc) HandleQueryFailure(q Query, err error) {
	f(q, err)
}

// LogFailureHandler returns the default FailureHandler, which logs a
// warning through logger.
func LogFailureHandler(logger *slog.Logger) FailureHandler {
	return FailureHandlerFunc(func(q Query, err error) {
		logger.Warn("WMI class might not be on your system, will not attempt to query it again",
			"class", q.Class,
			"namespace", q.Namespace,
			"query", q.String(),
			"error", err)
	})
}
