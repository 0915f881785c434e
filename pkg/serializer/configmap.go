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
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/NVIDIA/cns-wmi/pkg/defaults"
	"github.com/NVIDIA/cns-wmi/pkg/header"
	"github.com/NVIDIA/cns-wmi/pkg/k8s/client"
)

// FieldManager identifies this tool in server-side apply ownership.
const FieldManager = "cnswmi"

// ConfigMapWriter stores serialized snapshots in a Kubernetes ConfigMap
// using server-side apply, so repeated writes update in place.
type ConfigMapWriter struct {
	namespace  string
	name       string
	format     Format
	kubeconfig string
	client     client.Interface
}

// ConfigMapOption configures a ConfigMapWriter or a ConfigMap read.
type ConfigMapOption func(*ConfigMapWriter)

// WithKubeClient injects the Kubernetes client.
func WithKubeClient(c client.Interface) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.client = c
	}
}

// WithKubeconfig selects a kubeconfig file instead of automatic discovery.
func WithKubeconfig(path string) ConfigMapOption {
	return func(w *ConfigMapWriter) {
		w.kubeconfig = path
	}
}

// NewConfigMapWriter returns a writer for namespace/name.
func NewConfigMapWriter(namespace, name string, format Format, opts ...ConfigMapOption) *ConfigMapWriter {
	w := &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    normalize(format),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *ConfigMapWriter) kubeClient() (client.Interface, error) {
	if w.client != nil {
		return w.client, nil
	}
	var (
		c   client.Interface
		err error
	)
	if w.kubeconfig != "" {
		c, _, err = client.GetKubeClientWithConfig(w.kubeconfig)
	} else {
		c, _, err = client.GetKubeClient()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get kubernetes client: %w", err)
	}
	w.client = c
	return c, nil
}

// Serialize applies a ConfigMap holding:
//   - snapshot.<ext>: the encoded value
//   - format: the encoding used
//   - timestamp: the value's header timestamp, or now
func (w *ConfigMapWriter) Serialize(ctx context.Context, v any) error {
	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	c, err := w.kubeClient()
	if err != nil {
		return err
	}

	content, err := Encode(w.format, v)
	if err != nil {
		return err
	}

	kind, version, timestamp := headerInfo(v)
	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "cns-wmi",
			"app.kubernetes.io/component": strings.ToLower(kind),
			"app.kubernetes.io/version":   version,
		}).
		WithData(map[string]string{
			"snapshot." + w.format.extension(): string(content),
			"format":                           string(w.format),
			"timestamp":                        timestamp,
		})

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format,
		"size", len(content))

	_, err = c.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: FieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}
	return nil
}

// Close is a no-op.
func (w *ConfigMapWriter) Close() error {
	return nil
}

func headerInfo(v any) (kind, version, timestamp string) {
	kind = header.KindSnapshot.String()
	version = "unknown"
	timestamp = time.Now().UTC().Format(time.RFC3339)

	h, ok := v.(interface {
		GetKind() header.Kind
		GetMetadata() map[string]string
	})
	if !ok {
		return kind, version, timestamp
	}
	if k := h.GetKind(); k != "" {
		kind = k.String()
	}
	md := h.GetMetadata()
	if s := md[header.MetadataVersion]; s != "" {
		version = s
	}
	if s := md[header.MetadataTimestamp]; s != "" {
		timestamp = s
	}
	return kind, version, timestamp
}

// parseConfigMapURI splits cm://namespace/name.
func parseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", fmt.Errorf("invalid ConfigMap URI: must start with %s", ConfigMapURIScheme)
	}
	parts := strings.SplitN(strings.TrimPrefix(uri, ConfigMapURIScheme), "/", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid ConfigMap URI format: expected %snamespace/name, got %s", ConfigMapURIScheme, uri)
	}
	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])
	if namespace == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: namespace cannot be empty")
	}
	if name == "" {
		return "", "", fmt.Errorf("invalid ConfigMap URI: name cannot be empty")
	}
	return namespace, name, nil
}
