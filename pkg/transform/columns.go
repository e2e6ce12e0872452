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

package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/bmatcuk/doublestar/v4"
)

// 🔎 ColumnError is a target column that matches nothing in the dataset
type ColumnError struct {
	Column     string
	Suggestion string
	Available  []string
}

func (e *ColumnError) Error() string {
	msg := fmt.Sprintf("unknown column %q", e.Column)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(", did you mean %q?", e.Suggestion)
	} else if len(e.Available) > 0 {
		msg += fmt.Sprintf(", available columns: %s", strings.Join(e.Available, ", "))
	}
	return msg
}

// 🎯 ResolveColumns expands the requested targets against the dataset columns.
//
// A target is an exact column name or a doublestar glob such as "email*" or
// "{phone,mobile}". The result keeps first-seen order without duplicates. An
// empty request resolves to an empty list, which the backend reads as every
// column.
func ResolveColumns(columns, requested []string) ([]string, error) {
	out := []string{}
	seen := map[string]bool{}
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	for _, raw := range requested {
		target := strings.TrimSpace(raw)
		if target == "" {
			continue
		}

		if contains(columns, target) {
			add(target)
			continue
		}

		matched := false
		if isGlob(target) {
			for _, c := range columns {
				if ok, err := doublestar.Match(target, c); err == nil && ok {
					add(c)
					matched = true
				}
			}
		}
		if !matched {
			return nil, &ColumnError{
				Column:     target,
				Suggestion: suggest(columns, target),
				Available:  append([]string(nil), columns...),
			}
		}
	}
	return out, nil
}

// ParseColumns splits a comma separated column list, dropping blanks
func ParseColumns(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{") && doublestar.ValidatePattern(s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// suggest returns the closest column name, or "" when nothing is close enough
func suggest(columns []string, target string) string {
	type candidate struct {
		name string
		dist int
	}

	lower := strings.ToLower(target)
	var cands []candidate
	for _, c := range columns {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d <= maxDistance(target) {
			cands = append(cands, candidate{name: c, dist: d})
		}
	}
	if len(cands) == 0 {
		return ""
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	return cands[0].name
}

func maxDistance(s string) int {
	n := len([]rune(s)) / 3
	if n < 2 {
		return 2
	}
	return n
}
