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

// Package markdown renders a document as a human-readable checklist.
package markdown

import (
	"context"
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/cbroglie/mustache"

	"github.com/HidayetHidayetov/auto-testify/pkg/domain"
)

// Name is the registry name of this renderer.
const Name = "markdown"

//go:embed templates/*.mustache
var templatesFS embed.FS

// Renderer renders the embedded mustache templates.
type Renderer struct {
	template *mustache.Template
}

// New parses the document template and its partials.
func New() (*Renderer, error) {
	content, err := templatesFS.ReadFile("templates/document.md.mustache")
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	tmpl, err := mustache.ParseStringPartials(string(content), partials{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse mustache template: %w", err)
	}
	return &Renderer{template: tmpl}, nil
}

// MustNew is New for init-time wiring.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func (*Renderer) Name() string      { return Name }
func (*Renderer) Extension() string { return ".md" }

func (r *Renderer) Render(ctx context.Context, doc domain.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := r.template.Render(viewData(doc))
	if err != nil {
		return nil, domain.NewError(domain.ErrCodeRenderFailed, "failed to render mustache template", err)
	}
	return []byte(out), nil
}

func viewData(doc domain.Document) map[string]any {
	attributes := make([]map[string]string, 0, len(doc.Attributes))
	for _, attr := range doc.Attributes {
		attributes = append(attributes, map[string]string{"field": attr.Field, "value": attr.Value})
	}

	cases := make([]map[string]any, 0, len(doc.Cases))
	for _, c := range doc.Cases {
		entry := map[string]any{"name": c.Name, "kind": string(c.Kind)}
		if c.Rule != nil {
			entry["rule"] = c.Rule.Raw
			if entry["rule"] == "" {
				entry["rule"] = c.Rule.Name
			}
		}
		if c.Assertion != nil && len(c.Assertion.ErrorKeys) > 0 {
			entry["error_keys"] = strings.Join(c.Assertion.ErrorKeys, "`, `")
		}
		cases = append(cases, entry)
	}

	return map[string]any{
		"model":       doc.Model.Name,
		"table":       doc.Model.TableName(),
		"soft_delete": doc.Model.SoftDelete,
		"attributes":  attributes,
		"cases":       cases,
	}
}

// partials resolves "{{> name}}" from the embedded templates.
type partials struct{}

func (partials) Get(name string) (string, error) {
	content, err := templatesFS.ReadFile(path.Join("templates", name+".mustache"))
	if err != nil {
		return "", fmt.Errorf("partial not found: %s", name)
	}
	return string(content), nil
}
