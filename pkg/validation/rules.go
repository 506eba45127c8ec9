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

package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/HidayetHidayetov/auto-testify/pkg/domain"
	"github.com/HidayetHidayetov/auto-testify/pkg/utils"
)

// Adversarial literals.
const (
	InvalidEmail   = "invalid-email"
	NotANumber     = "not-a-number"
	NotAnInteger   = "12.34"
	InvalidValue   = "invalid-value"
	Disallowed     = "disallowed"
	InvalidDate    = "invalid-date"
	NotAURL        = "not-a-url"
	RegexFallback  = "123"
	lengthFillRune = "a"
)

// MaxLengthParam bounds max/min parameters; larger limits would put
// megabytes of filler into the generated source.
const MaxLengthParam = 65535

// ErrInvalidParam is returned when a rule parameter cannot be used.
var ErrInvalidParam = errors.New("invalid rule parameter")

func builtinSpecs() map[string]Spec {
	return map[string]Spec{
		"required": {
			NameTemplate: "test_{model}_{field}_is_required",
			Transform: func(field string, base domain.Attributes, _ domain.Rule) (domain.Attributes, error) {
				return base.Without(field), nil
			},
		},
		"email": {
			NameTemplate: "test_{model}_{field}_must_be_valid_email",
			Transform:    constant(InvalidEmail),
		},
		"max": {
			NameTemplate: "test_{model}_{field}_must_not_exceed_{param}_characters",
			Transform: func(field string, base domain.Attributes, rule domain.Rule) (domain.Attributes, error) {
				n, err := lengthParam(rule)
				if err != nil {
					return nil, err
				}
				return base.With(field, strings.Repeat(lengthFillRune, n+1)), nil
			},
		},
		"min": {
			NameTemplate: "test_{model}_{field}_must_be_at_least_{param}_characters",
			Transform: func(field string, base domain.Attributes, rule domain.Rule) (domain.Attributes, error) {
				n, err := lengthParam(rule)
				if err != nil {
					return nil, err
				}
				return base.With(field, strings.Repeat(lengthFillRune, max(n-1, 0))), nil
			},
		},
		"numeric": {
			NameTemplate: "test_{model}_{field}_must_be_numeric",
			Transform:    constant(NotANumber),
		},
		"integer": {
			NameTemplate: "test_{model}_{field}_must_be_an_integer",
			Transform:    constant(NotAnInteger),
		},
		"in": {
			NameTemplate: "test_{model}_{field}_must_be_in_allowed_values",
			Transform: func(field string, base domain.Attributes, rule domain.Rule) (domain.Attributes, error) {
				return base.With(field, outsideOf(rule.ListParam())), nil
			},
		},
		"not_in": {
			NameTemplate: "test_{model}_{field}_must_not_be_in_disallowed_values",
			Transform: func(field string, base domain.Attributes, rule domain.Rule) (domain.Attributes, error) {
				value := Disallowed
				if values := rule.ListParam(); len(values) > 0 && values[0] != "" {
					value = values[0]
				}
				return base.With(field, value), nil
			},
		},
		"regex": {
			NameTemplate: "test_{model}_{field}_must_match_regex_pattern",
			Transform: func(field string, base domain.Attributes, rule domain.Rule) (domain.Attributes, error) {
				return base.With(field, NonMatching(rule.Param)), nil
			},
		},
		"date": {
			NameTemplate: "test_{model}_{field}_must_be_a_valid_date",
			Transform:    constant(InvalidDate),
		},
		"url": {
			NameTemplate: "test_{model}_{field}_must_be_a_valid_url",
			Transform:    constant(NotAURL),
		},
	}
}

func constant(value string) Transform {
	return func(field string, base domain.Attributes, _ domain.Rule) (domain.Attributes, error) {
		return base.With(field, value), nil
	}
}

func lengthParam(rule domain.Rule) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(rule.Param))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s expects a non-negative integer, got %q", ErrInvalidParam, rule.Name, rule.Param)
	}
	if n > MaxLengthParam {
		return 0, fmt.Errorf("%w: %s limit %d exceeds %d", ErrInvalidParam, rule.Name, n, MaxLengthParam)
	}
	return n, nil
}

// outsideOf returns InvalidValue, suffixed with a counter until it is not
// one of the allowed values.
func outsideOf(allowed []string) string {
	candidate := InvalidValue
	for i := 1; utils.ContainsString(allowed, candidate); i++ {
		candidate = InvalidValue + "-" + strconv.Itoa(i)
	}
	return candidate
}
