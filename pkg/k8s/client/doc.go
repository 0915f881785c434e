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

// Package client builds the Kubernetes clientset used to publish snapshots
// to ConfigMaps.
//
// GetKubeClient caches one client per process; GetKubeClientWithConfig
// builds a fresh one for an explicit kubeconfig. Discovery order is the
// explicit path, $KUBECONFIG, ~/.kube/config, then the in-cluster service
// account:
//
//	cs, _, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//	cm, err := cs.CoreV1().ConfigMaps("kube-system").Get(ctx, "cns-wmi", metav1.GetOptions{})
//
// Tests inject k8s.io/client-go/kubernetes/fake through the Interface alias.
package client
