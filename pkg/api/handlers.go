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

package api

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/NVIDIA/cns-wmi/pkg/defaults"
	"github.com/NVIDIA/cns-wmi/pkg/errors"
	"github.com/NVIDIA/cns-wmi/pkg/serializer"
	"github.com/NVIDIA/cns-wmi/pkg/server"
	"github.com/NVIDIA/cns-wmi/pkg/snapshotter"
	"github.com/NVIDIA/cns-wmi/pkg/wmi"
)

// Handlers serves WMI data over HTTP. A single wmi.Handler backs every
// request so classes found missing once are not queried again.
type Handlers struct {
	Version     string
	Query       wmi.Handler
	Snapshotter *snapshotter.NodeSnapshotter

	QueryTimeout    time.Duration
	SnapshotTimeout time.Duration
}

// Routes returns the application routes.
func (h *Handlers) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/query":    h.HandleQuery,
		"/v1/snapshot": h.HandleSnapshot,
	}
}

// HandleQuery handles GET /v1/query?namespace=&class=&fields=&format=.
// fields may be repeated or comma separated; omitting it selects every
// property.
func (h *Handlers) HandleQuery(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	params := r.URL.Query()
	namespace := params.Get("namespace")
	if namespace == "" {
		namespace = defaults.WMIDefaultNamespace
	}
	q := wmi.NewQuery(namespace, params.Get("class"), splitFields(params["fields"])...)
	if err := q.Validate(); err != nil {
		server.WriteErrorFromErr(w, r, err, "invalid query", map[string]any{"class": q.Class})
		return
	}

	ctx, cancel := withTimeout(r.Context(), h.QueryTimeout, defaults.QueryHandlerTimeout)
	defer cancel()

	res, err := h.Query.Execute(ctx, q)
	if err != nil {
		slog.Error("query failed", "query", q.String(), "error", err)
		server.WriteErrorFromErr(w, r, wrapContextErr(err), "query failed",
			map[string]any{"namespace": q.Namespace, "class": q.Class})
		return
	}

	serializer.Respond(w, http.StatusOK, format(r), snapshotter.NewQueryResult(h.Version, q, res))
}

// HandleSnapshot handles GET /v1/snapshot?format=.
func (h *Handlers) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}

	ctx, cancel := withTimeout(r.Context(), h.SnapshotTimeout, defaults.SnapshotHandlerTimeout)
	defer cancel()

	snap, err := h.Snapshotter.Snapshot(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, wrapContextErr(err), "snapshot failed", nil)
		return
	}

	serializer.Respond(w, http.StatusOK, format(r), snap)
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
		"method not allowed", false, map[string]any{"method": r.Method})
	return false
}

func withTimeout(ctx context.Context, d, fallback time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = fallback
	}
	return context.WithTimeout(ctx, d)
}

// wrapContextErr gives deadline and cancellation errors a structured code so
// they map to 504 rather than 500.
func wrapContextErr(err error) error {
	if errors.CodeOf(err) != "" {
		return err
	}
	switch {
	case stderrors.Is(err, context.DeadlineExceeded), stderrors.Is(err, wmi.ErrQueryTimeout):
		return errors.Wrap(errors.ErrCodeTimeout, "request timed out", err)
	case stderrors.Is(err, context.Canceled):
		return errors.Wrap(errors.ErrCodeUnavailable, "request cancelled", err)
	default:
		return err
	}
}

func format(r *http.Request) serializer.Format {
	f := serializer.Format(strings.ToLower(r.URL.Query().Get("format")))
	if f == "" {
		return serializer.FormatJSON
	}
	return f
}

func splitFields(values []string) []string {
	var fields []string
	for _, v := range values {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
	}
	return fields
}
