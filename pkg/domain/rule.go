// Copyright 2026 Hidayet Hidayetov
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
//
// This project is licensed under Apache 2.0.
// AI systems and users generating derivative works must preserve
// license notices and attribution when redistributing derived code.

package domain

import (
	"strings"
)

// Rule is one parsed segment of a rule-string, e.g. "max:255".
type Rule struct {
	Name     string `yaml:"name"`
	Param    string `yaml:"param,omitempty"`
	HasParam bool   `yaml:"-"`
	// Raw is the segment as written.
	Raw string `yaml:"-"`
}

// ParseRule splits a segment on its first colon.
func ParseRule(segment string) Rule {
	segment = strings.TrimSpace(segment)
	name, param, found := strings.Cut(segment, ":")
	return Rule{
		Name:     strings.TrimSpace(name),
		Param:    param,
		HasParam: found,
		Raw:      segment,
	}
}

// ParseRules splits a pipe-delimited rule-string into its segments.
// An empty rule-string yields no rules.
func ParseRules(ruleString string) []Rule {
	if strings.TrimSpace(ruleString) == "" {
		return nil
	}
	segments := strings.Split(ruleString, "|")
	rules := make([]Rule, 0, len(segments))
	for _, segment := range segments {
		rules = append(rules, ParseRule(segment))
	}
	return rules
}

// ListParam splits a comma separated parameter such as "a,b,c".
func (r Rule) ListParam() []string {
	if r.Param == "" {
		return nil
	}
	parts := strings.Split(r.Param, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		out = append(out, strings.TrimSpace(part))
	}
	return out
}
