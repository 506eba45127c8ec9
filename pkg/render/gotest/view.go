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

package gotest

import (
	"go/token"
	"path"
	"strconv"
	"strings"
	"unicode"

	"github.com/HidayetHidayetov/auto-testify/pkg/domain"
	"github.com/HidayetHidayetov/auto-testify/pkg/utils"
)

const (
	bcryptImport  = "golang.org/x/crypto/bcrypt"
	sqliteImport  = "gorm.io/driver/sqlite"
	gormImport    = "gorm.io/gorm"
	assertImport  = "github.com/stretchr/testify/assert"
	requireImport = "github.com/stretchr/testify/require"
)

// reservedNames are identifiers the template declares itself.
var reservedNames = []string{
	"assert", "attributes", "bcrypt", "count", "db", "duplicate", "err", "errs",
	"gorm", "refreshed", "require", "retrieved", "sqlDB", "sqlite", "stored",
	"t", "testing", "trashed",
}

type importSpec struct {
	Alias string
	Path  string
}

type keyValue struct {
	Key   string
	Value string
}

type fieldView struct {
	GoName string
	Value  string
	Hash   bool
}

type testView struct {
	Kind       string
	Func       string
	Helper     string
	Model      string
	Var        string
	Record     string
	Validator  string
	RulesVar   string
	SoftDelete bool
	Fields     []fieldView
	Updates    []fieldView
	Checks     []fieldView
	Attributes []keyValue
	ErrorKeys  []string
}

type fileView struct {
	ModelName    string
	Package      string
	ImportGroups [][]importSpec
	Model        string
	Helper       string
	RulesVar     string
	Rules        []keyValue
	Tests        []testView
}

func newFileView(doc domain.Document) fileView {
	m := &doc.Model
	target := doc.Target
	internal := target.ModelsPackage == "" || target.Package == target.ModelsPackage

	modelsQual := ""
	if !internal {
		modelsQual = packageName(target.ModelsImport, target.ModelsPackage)
	}
	validatorQual := modelsQual
	validatorImport := ""
	if target.ValidatorImport != "" && target.ValidatorImport != target.ModelsImport {
		validatorImport = target.ValidatorImport
		validatorQual = packageName(target.ValidatorImport, "")
	}
	validatorFunc := target.ValidatorFunc
	if validatorFunc == "" {
		validatorFunc = "Validate"
	}

	base := utils.LowerFirst(utils.PascalCase(m.Name))
	view := fileView{
		ModelName: m.Name,
		Package:   target.Package,
		Model:     qualify(modelsQual, m.Name),
		Helper:    "new" + utils.PascalCase(m.Name) + "TestDB",
		RulesVar:  base + "Rules",
	}
	for _, fr := range m.Rules {
		if fr.Rules != "" {
			view.Rules = append(view.Rules, keyValue{Key: strconv.Quote(fr.Field), Value: strconv.Quote(fr.Rules)})
		}
	}

	reserved := append([]string{view.Helper, view.RulesVar, modelsQual, validatorQual}, reservedNames...)
	record := identifier(base, reserved)

	seen := map[string]int{}
	for _, c := range doc.Cases {
		tv := testView{
			Kind:       string(c.Kind),
			Func:       uniqueFunc(funcName(c.Name), seen),
			Helper:     view.Helper,
			Model:      view.Model,
			Var:        record,
			Validator:  qualify(validatorQual, validatorFunc),
			RulesVar:   view.RulesVar,
			SoftDelete: c.SoftDelete,
			Fields:     fields(m, c.Attributes),
			Updates:    fields(m, c.Updates),
			Checks:     checks(m, c.Checks),
		}
		switch c.Kind {
		case domain.KindCreate:
			tv.Record = "stored"
		case domain.KindUpdate:
			tv.Record = "refreshed"
		}
		if c.Kind == domain.KindValidation {
			for _, attr := range c.Attributes {
				tv.Attributes = append(tv.Attributes, keyValue{Key: strconv.Quote(attr.Field), Value: strconv.Quote(attr.Value)})
			}
			if c.Assertion != nil {
				for _, key := range c.Assertion.ErrorKeys {
					tv.ErrorKeys = append(tv.ErrorKeys, strconv.Quote(key))
				}
			}
		}
		view.Tests = append(view.Tests, tv)
	}

	third := []importSpec{{Path: assertImport}, {Path: requireImport}}
	if doc.HasCheck(domain.CheckHash) {
		third = append(third, importSpec{Path: bcryptImport})
	}
	third = append(third, importSpec{Path: sqliteImport}, importSpec{Path: gormImport})
	view.ImportGroups = append(view.ImportGroups, third)

	var local []importSpec
	if !internal {
		local = append(local, importSpec{Alias: alias(target.ModelsImport, modelsQual), Path: target.ModelsImport})
	}
	if validatorImport != "" && doc.CountKind(domain.KindValidation) > 0 {
		local = append(local, importSpec{Path: validatorImport})
	}
	if len(local) > 0 {
		view.ImportGroups = append(view.ImportGroups, local)
	}
	return view
}

func fields(m *domain.Model, attrs domain.Attributes) []fieldView {
	out := make([]fieldView, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, fieldView{GoName: m.GoField(attr.Field), Value: strconv.Quote(attr.Value)})
	}
	return out
}

func checks(m *domain.Model, cs []domain.Check) []fieldView {
	out := make([]fieldView, 0, len(cs))
	for _, c := range cs {
		out = append(out, fieldView{
			GoName: m.GoField(c.Field),
			Value:  strconv.Quote(c.Value),
			Hash:   c.Mode == domain.CheckHash,
		})
	}
	return out
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// packageName returns the declared name, or the last path element made
// into a valid identifier.
func packageName(importPath, declared string) string {
	if declared != "" {
		return declared
	}
	base := path.Base(importPath)
	base = strings.TrimSuffix(base, "-go")
	base = strings.TrimPrefix(base, "go-")
	return sanitize(strings.ReplaceAll(base, "-", ""))
}

func alias(importPath, name string) string {
	if path.Base(importPath) == name {
		return ""
	}
	return name
}

// funcName turns "test_user_can_be_created" into "TestUserCanBeCreated".
func funcName(snake string) string {
	name := sanitize(utils.PascalCase(snake))
	if !strings.HasPrefix(name, "Test") {
		name = "Test" + name
	}
	return name
}

func uniqueFunc(name string, seen map[string]int) string {
	seen[name]++
	if n := seen[name]; n > 1 {
		return name + strconv.Itoa(n)
	}
	return name
}

func identifier(name string, reserved []string) string {
	name = sanitize(name)
	if name == "" {
		name = "record"
	}
	if token.IsKeyword(name) || utils.ContainsString(reserved, name) || isPredeclared(name) {
		name += "Record"
	}
	return name
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out != "" && unicode.IsDigit([]rune(out)[0]) {
		out = "_" + out
	}
	return out
}

func isPredeclared(name string) bool {
	switch name {
	case "any", "bool", "byte", "error", "int", "string", "len", "cap", "make", "new",
		"append", "copy", "delete", "panic", "print", "println", "nil", "true", "false",
		"iota", "max", "min", "clear", "close", "recover", "real", "imag", "complex":
		return true
	}
	return false
}
