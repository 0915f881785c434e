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

package client

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testKubeconfig = `apiVersion: v1
kind: Config
clusters:
- cluster:
    server: https://127.0.0.1:6443
  name: test
contexts:
- context:
    cluster: test
    user: test
  name: test
current-context: test
users:
- name: test
  user:
    token: abc
`

func TestResolveKubeconfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv(EnvKubeconfig, "")

	if got := ResolveKubeconfig("/explicit"); got != "/explicit" {
		t.Errorf("explicit path ignored: %q", got)
	}
	if got := ResolveKubeconfig(""); got != "" {
		t.Errorf("expected in-cluster fallback, got %q", got)
	}

	kubeDir := filepath.Join(home, ".kube")
	if err := os.MkdirAll(kubeDir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(kubeDir, "config"), []byte(testKubeconfig), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := ResolveKubeconfig(""); got != filepath.Join(kubeDir, "config") {
		t.Errorf("home kubeconfig not found: %q", got)
	}

	t.Setenv(EnvKubeconfig, "/from/env")
	if got := ResolveKubeconfig(""); got != "/from/env" {
		t.Errorf("env override ignored: %q", got)
	}
}

func TestBuildKubeClient(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kubeconfig")
	if err := os.WriteFile(path, []byte(testKubeconfig), 0o600); err != nil {
		t.Fatal(err)
	}

	cs, cfg, err := BuildKubeClient(path)
	if err != nil {
		t.Fatalf("BuildKubeClient() error = %v", err)
	}
	if cs == nil || cfg.Host != "https://127.0.0.1:6443" {
		t.Errorf("unexpected config host %q", cfg.Host)
	}
}

func TestBuildKubeClient_InvalidPath(t *testing.T) {
	_, _, err := GetKubeClientWithConfig("/nonexistent/kubeconfig")
	if err == nil || !strings.Contains(err.Error(), "failed to build kube config") {
		t.Errorf("error = %v", err)
	}
}
