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

// Package transform turns a natural language prompt into a find/replace over
// the session dataset.
//
// Apply and Preview share the request status cycle of the session store:
//
//	idle ──▶ loading ──▶ idle   (response committed)
//	            │
//	            └──────▶ error  (message from the server or a fallback)
//
// An error is cleared by the next request. Preview only ever writes the
// pattern and its explanation.
//
// Target columns may be given as exact names or doublestar globs and are
// resolved locally before anything is sent. A target matching no column
// fails with the closest column name as a suggestion.
package transform
