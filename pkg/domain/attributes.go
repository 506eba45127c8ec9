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

// Attribute is a single field/value pair.
type Attribute struct {
	Field string `yaml:"field"`
	Value string `yaml:"value"`
}

// Attributes is an insertion-ordered attribute set. Methods never mutate the
// receiver; they return fresh copies.
type Attributes []Attribute

// Get returns the value of a field.
func (a Attributes) Get(field string) (string, bool) {
	for _, attr := range a {
		if attr.Field == field {
			return attr.Value, true
		}
	}
	return "", false
}

// Has reports whether the field is present.
func (a Attributes) Has(field string) bool {
	_, ok := a.Get(field)
	return ok
}

// Fields returns the field names in order.
func (a Attributes) Fields() []string {
	out := make([]string, 0, len(a))
	for _, attr := range a {
		out = append(out, attr.Field)
	}
	return out
}

// Clone returns a copy of the set.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	copy(out, a)
	return out
}

// With returns a copy where field is set to value. An existing field keeps
// its position; a new field is appended.
func (a Attributes) With(field, value string) Attributes {
	out := a.Clone()
	for i := range out {
		if out[i].Field == field {
			out[i].Value = value
			return out
		}
	}
	return append(out, Attribute{Field: field, Value: value})
}

// Without returns a copy with field removed.
func (a Attributes) Without(field string) Attributes {
	out := make(Attributes, 0, len(a))
	for _, attr := range a {
		if attr.Field != field {
			out = append(out, attr)
		}
	}
	return out
}

// Map returns the set as a plain map.
func (a Attributes) Map() map[string]string {
	out := make(map[string]string, len(a))
	for _, attr := range a {
		out[attr.Field] = attr.Value
	}
	return out
}
