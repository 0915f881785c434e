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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Decode reads one document in format from r into v.
func Decode(format Format, r io.Reader, v any) error {
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	case FormatTable:
		return fmt.Errorf("table format does not support deserialization")
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", format)
	}
	return nil
}

// FromFile loads a T from a JSON or YAML file, or from a ConfigMap written by
// ConfigMapWriter when path is a cm:// URI.
func FromFile[T any](ctx context.Context, path string, opts ...ConfigMapOption) (*T, error) {
	if strings.HasPrefix(path, ConfigMapURIScheme) {
		ns, name, err := parseConfigMapURI(path)
		if err != nil {
			return nil, err
		}
		return fromConfigMap[T](ctx, NewConfigMapWriter(ns, name, FormatJSON, opts...))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var out T
	if err := Decode(FormatFromPath(path), f, &out); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &out, nil
}

func fromConfigMap[T any](ctx context.Context, ref *ConfigMapWriter) (*T, error) {
	c, err := ref.kubeClient()
	if err != nil {
		return nil, err
	}
	cm, err := c.CoreV1().ConfigMaps(ref.namespace).Get(ctx, ref.name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %s/%s: %w", ref.namespace, ref.name, err)
	}

	format := FormatYAML
	if s, ok := cm.Data["format"]; ok {
		format = Format(s)
	}
	content, ok := cm.Data["snapshot."+format.extension()]
	if !ok {
		for _, f := range []Format{FormatYAML, FormatJSON} {
			if content, ok = cm.Data["snapshot."+f.extension()]; ok {
				format = f
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("ConfigMap %s/%s has no snapshot data", ref.namespace, ref.name)
	}

	slog.Debug("reading from ConfigMap",
		"namespace", ref.namespace,
		"name", ref.name,
		"format", format,
		"size", len(content))

	var out T
	if err := Decode(format, strings.NewReader(content), &out); err != nil {
		return nil, fmt.Errorf("failed to decode ConfigMap %s/%s: %w", ref.namespace, ref.name, err)
	}
	return &out, nil
}
