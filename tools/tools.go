// Copyright 2025 walteh LLC
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

//go:build tools

// Package tools pins the binaries used to maintain the repo:
//
//	go run github.com/vektra/mockery/v2          # regenerate gen/mockery from .mockery.yaml
//	go run github.com/google/addlicense -c "walteh LLC" .
//	go run gotest.tools/gotestsum -- ./...
//	go run github.com/golangci/golangci-lint/cmd/golangci-lint run
package tools

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/google/addlicense"
	_ "github.com/vektra/mockery/v2"
	_ "gotest.tools/gotestsum"
)
