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

package remote

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🏭 Factory builds a backend for a base URL
type Factory func(ctx context.Context, baseURL *url.URL) (Backend, error)

var registry = map[string]Factory{}

// Register makes a backend factory available for a URL scheme
func Register(scheme string, factory Factory) {
	registry[strings.ToLower(scheme)] = factory
}

// 🎯 Open returns the backend registered for the scheme of baseURL
func Open(ctx context.Context, baseURL string) (Backend, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Errorf("parsing backend url: %w", err)
	}

	factory, ok := registry[strings.ToLower(u.Scheme)]
	if !ok {
		options := []string{}
		for k := range registry {
			options = append(options, k)
		}
		sort.Strings(options)
		return nil, errors.Errorf("no backend for scheme %q, options: %s", u.Scheme, strings.Join(options, ", "))
	}
	return factory(ctx, u)
}

type sessionKey struct{}

// ContextWithSession carries the session id to backends opened with ctx
func ContextWithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionFromContext returns the session id set by ContextWithSession, or ""
func SessionFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
