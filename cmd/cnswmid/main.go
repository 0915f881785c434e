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

package main

import (
	"context"
	"log"
	"os"

	"github.com/NVIDIA/cns-wmi/pkg/api"
	"github.com/NVIDIA/cns-wmi/pkg/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("CNS_WMI_CONFIG"))
	if err != nil {
		log.Fatal(err)
	}
	if err := api.Serve(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}
}
