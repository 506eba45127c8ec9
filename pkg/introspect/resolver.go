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

// Package introspect resolves model names into model descriptors.
package introspect

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/HidayetHidayetov/auto-testify/pkg/domain"
	"github.com/HidayetHidayetov/auto-testify/pkg/logging"
	"github.com/HidayetHidayetov/auto-testify/pkg/messages"
)

// Resolver looks up a model descriptor by name. Unknown names yield an
// error matching domain.ErrModelNotFound.
type Resolver interface {
	Resolve(ctx context.Context, name string) (*domain.Model, error)
}

// UniqueIndexSource reports single-column unique indexes of a table.
type UniqueIndexSource interface {
	UniqueColumns(ctx context.Context, table string) ([]string, error)
}

// NotFound returns the model-not-found error for name.
func NotFound(name string) error {
	return domain.NewError(domain.ErrCodeModelNotFound, fmt.Sprintf("model %s not found", name), nil)
}

// Static is an in-memory registry of descriptors.
type Static struct {
	models map[string]domain.Model
}

// NewStatic registers models by name.
func NewStatic(models ...domain.Model) *Static {
	s := &Static{models: make(map[string]domain.Model, len(models))}
	for _, m := range models {
		s.Add(m)
	}
	return s
}

// Add registers or replaces a model.
func (s *Static) Add(m domain.Model) {
	s.models[m.Name] = m
}

// Names returns the registered model names, sorted.
func (s *Static) Names() []string {
	names := make([]string, 0, len(s.models))
	for name := range s.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns a copy of the named model. Matching is exact first, then
// case-insensitive in sorted name order.
func (s *Static) Resolve(_ context.Context, name string) (*domain.Model, error) {
	if m, ok := s.models[name]; ok {
		return cloneModel(m), nil
	}
	for _, key := range s.Names() {
		if strings.EqualFold(key, name) {
			return cloneModel(s.models[key]), nil
		}
	}
	return nil, NotFound(name)
}

func cloneModel(m domain.Model) *domain.Model {
	out := m
	out.Fillable = append([]string(nil), m.Fillable...)
	out.Unique = append([]string(nil), m.Unique...)
	out.Rules = append([]domain.FieldRules(nil), m.Rules...)
	if m.GoFields != nil {
		out.GoFields = make(map[string]string, len(m.GoFields))
		for k, v := range m.GoFields {
			out.GoFields[k] = v
		}
	}
	return &out
}

type uniqueFallback struct {
	Resolver
	source UniqueIndexSource
	logger *logging.Logger
}

// WithUniqueFallback asks source for unique columns when a resolved model
// declares none. Failures leave the unique set empty and are logged.
func WithUniqueFallback(r Resolver, source UniqueIndexSource, logger *logging.Logger) Resolver {
	if source == nil {
		return r
	}
	return &uniqueFallback{Resolver: r, source: source, logger: logger}
}

func (u *uniqueFallback) Resolve(ctx context.Context, name string) (*domain.Model, error) {
	m, err := u.Resolver.Resolve(ctx, name)
	if err != nil || len(m.Unique) > 0 {
		return m, err
	}

	cols, err := u.source.UniqueColumns(ctx, m.TableName())
	if err != nil {
		if u.logger != nil {
			u.logger.Warn(messages.MsgUniqueIndexesFailed, "model", m.Name, "table", m.TableName(), "error", err)
		}
		m.Unique = nil
		return m, nil
	}
	m.Unique = cols
	if u.logger != nil {
		u.logger.Debug(messages.MsgUniqueFromDatabase, "model", m.Name, "columns", m.Unique)
	}
	return m, nil
}

// Chain tries resolvers in order and returns the first match.
type Chain []Resolver

// Resolve implements Resolver.
func (c Chain) Resolve(ctx context.Context, name string) (*domain.Model, error) {
	for _, r := range c {
		m, err := r.Resolve(ctx, name)
		if err == nil {
			return m, nil
		}
		if domain.CodeOf(err) != domain.ErrCodeModelNotFound {
			return nil, err
		}
	}
	return nil, NotFound(name)
}
