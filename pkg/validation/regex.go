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
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const regexMatchTimeout = 100 * time.Millisecond

// regexCandidates are tried in order; the first one the pattern rejects wins.
var regexCandidates = []string{
	RegexFallback,
	"invalid-value",
	"INVALID VALUE",
	"!@#$%^&*()",
	"a",
	"",
	" ",
	"0",
	"not a match 123 !",
}

// NonMatching returns a value the pattern does not match. Patterns may use
// PCRE delimiters and flags, e.g. "/^[a-z]+$/i". RegexFallback is returned
// when the pattern does not compile or accepts every candidate.
func NonMatching(param string) string {
	re, err := CompilePattern(param)
	if err != nil {
		return RegexFallback
	}
	for _, candidate := range regexCandidates {
		ok, err := re.MatchString(candidate)
		if err != nil {
			continue
		}
		if !ok {
			return candidate
		}
	}
	return RegexFallback
}

// CompilePattern compiles a delimited or bare pattern.
func CompilePattern(param string) (*regexp2.Regexp, error) {
	pattern, opts := splitDelimited(strings.TrimSpace(param))
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = regexMatchTimeout
	return re, nil
}

// splitDelimited strips "/pattern/flags" style delimiters. Anything that does
// not look delimited is returned unchanged.
func splitDelimited(param string) (string, regexp2.RegexOptions) {
	if len(param) < 2 {
		return param, regexp2.None
	}
	delim := param[0]
	if isAlphaNumeric(delim) || delim == '\\' || delim == ' ' {
		return param, regexp2.None
	}
	closing := delim
	switch delim {
	case '(':
		closing = ')'
	case '{':
		closing = '}'
	case '[':
		closing = ']'
	case '<':
		closing = '>'
	}
	end := strings.LastIndexByte(param, closing)
	if end <= 0 {
		return param, regexp2.None
	}

	opts := regexp2.None
	for _, flag := range param[end+1:] {
		switch flag {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'x':
			opts |= regexp2.IgnorePatternWhitespace
		case 'u', 'D', 'U':
			// no regexp2 equivalent
		default:
			return param, regexp2.None
		}
	}
	return param[1:end], opts
}

func isAlphaNumeric(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
