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
	stderrors "errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/cns-wmi/pkg/errors"
	"github.com/NVIDIA/cns-wmi/pkg/serializer"
)

// WriteError writes an ErrorResponse carrying the request ID from the context,
// or a fresh one when the request bypassed the request ID middleware.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code errors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps err to a status code by its structured error code
// and writes it. Unstructured errors become 500 INTERNAL.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, message string, details map[string]any) {
	code := errors.CodeOf(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}

	var se *errors.StructuredError
	if stderrors.As(err, &se) && len(se.Context) > 0 {
		if details == nil {
			details = make(map[string]any, len(se.Context))
		}
		for k, v := range se.Context {
			details[k] = v
		}
	}
	if details == nil {
		details = map[string]any{}
	}
	details["error"] = err.Error()

	status, retryable := httpStatus(code)
	WriteError(w, r, status, code, message, retryable, details)
}

func httpStatus(code errors.ErrorCode) (int, bool) {
	switch code {
	case errors.ErrCodeInvalidRequest, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest, false
	case errors.ErrCodeNotFound:
		return http.StatusNotFound, false
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized, false
	case errors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed, false
	case errors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests, true
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, true
	case errors.ErrCodeUnavailable, errors.ErrCodeNativeInit, errors.ErrCodeSecurityInit:
		return http.StatusServiceUnavailable, true
	default:
		return http.StatusInternalServerError, true
	}
}
