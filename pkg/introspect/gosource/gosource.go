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

// Package gosource reads model descriptors from Go struct declarations.
//
// Struct tags drive the result:
//
//	type User struct {
//		gorm.Model
//		Name  string `autotest:"fillable" rules:"required|max:255"`
//		Email string `autotest:"fillable,unique" gorm:"uniqueIndex" rules:"required|email"`
//	}
//
// Without any autotest tag every exported string field other than the
// primary key and timestamps is fillable.
package gosource

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/HidayetHidayetov/auto-testify/pkg/domain"
	"github.com/HidayetHidayetov/auto-testify/pkg/introspect"
	"github.com/HidayetHidayetov/auto-testify/pkg/logging"
	"github.com/HidayetHidayetov/auto-testify/pkg/messages"
	"github.com/HidayetHidayetov/auto-testify/pkg/utils"
)

// Tag keys.
const (
	TagAutotest = "autotest"
	TagRules    = "rules"
	TagValidate = "validate"
	TagGorm     = "gorm"
)

var timestampFields = []string{"ID", "CreatedAt", "UpdatedAt", "DeletedAt"}

// Resolver parses the Go files of one package directory.
type Resolver struct {
	fs     afero.Fs
	dir    string
	logger *logging.Logger
}

// New returns a resolver over dir. logger may be nil.
func New(fs afero.Fs, dir string, logger *logging.Logger) *Resolver {
	return &Resolver{fs: fs, dir: dir, logger: logger}
}

type parsedPackage struct {
	name       string
	structs    map[string]*ast.StructType
	order      []string
	tableNames map[string]string
}

// Resolve finds the struct named name and builds its descriptor.
func (r *Resolver) Resolve(ctx context.Context, name string) (*domain.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pkg, err := r.parse()
	if err != nil {
		return nil, err
	}

	typeName := pkg.lookup(name)
	if typeName == "" {
		return nil, introspect.NotFound(name)
	}
	m, nonString := buildModel(typeName, pkg.structs[typeName])
	m.Package = pkg.name
	m.Table = pkg.tableNames[typeName]
	if r.logger != nil {
		for _, f := range nonString {
			r.logger.Warn(messages.MsgNonStringFillable, "model", m.Name, "field", f.goName, "type", f.typ)
		}
	}
	return m, nil
}

func (r *Resolver) parse() (*parsedPackage, error) {
	entries, err := afero.ReadDir(r.fs, r.dir)
	if err != nil {
		return nil, domain.NewError(domain.ErrCodeIntrospection, "failed to read models directory "+r.dir, err)
	}

	pkg := &parsedPackage{structs: map[string]*ast.StructType{}, tableNames: map[string]string{}}
	fset := token.NewFileSet()
	for _, entry := range entries {
		fileName := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(fileName, ".go") || strings.HasSuffix(fileName, "_test.go") {
			continue
		}
		path := filepath.Join(r.dir, fileName)
		src, err := afero.ReadFile(r.fs, path)
		if err != nil {
			return nil, domain.NewError(domain.ErrCodeIntrospection, "failed to read "+path, err)
		}
		file, err := parser.ParseFile(fset, path, src, parser.SkipObjectResolution)
		if err != nil {
			return nil, domain.NewError(domain.ErrCodeParseError, "failed to parse "+path, err)
		}
		pkg.collect(file)
	}
	return pkg, nil
}

func (p *parsedPackage) collect(file *ast.File) {
	if p.name == "" {
		p.name = file.Name.Name
	}
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				if st, ok := ts.Type.(*ast.StructType); ok {
					p.structs[ts.Name.Name] = st
					p.order = append(p.order, ts.Name.Name)
				}
			}
		case *ast.FuncDecl:
			if recv := receiverName(d); recv != "" && d.Name.Name == "TableName" {
				if table := returnedLiteral(d); table != "" {
					p.tableNames[recv] = table
				}
			}
		}
	}
}

// lookup matches exactly first, then case-insensitively in declaration order.
func (p *parsedPackage) lookup(name string) string {
	if _, ok := p.structs[name]; ok {
		return name
	}
	for _, candidate := range p.order {
		if strings.EqualFold(candidate, name) {
			return candidate
		}
	}
	return ""
}

func receiverName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) != 1 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

func returnedLiteral(fn *ast.FuncDecl) string {
	if fn.Body == nil {
		return ""
	}
	for _, stmt := range fn.Body.List {
		ret, ok := stmt.(*ast.ReturnStmt)
		if !ok || len(ret.Results) != 1 {
			continue
		}
		lit, ok := ret.Results[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			continue
		}
		if value, err := strconv.Unquote(lit.Value); err == nil {
			return value
		}
	}
	return ""
}

type fieldInfo struct {
	goName   string
	column   string
	typ      string
	tag      reflect.StructTag
	autotest []string
	skip     bool
	primary  bool
	unique   bool
	indexKey string
}

// buildModel also returns the fillable fields that are not plain strings;
// their string sample values will not compile in the host project.
func buildModel(name string, st *ast.StructType) (*domain.Model, []fieldInfo) {
	m := &domain.Model{Name: name, GoFields: map[string]string{}}

	var (
		fields      []fieldInfo
		nonString   []fieldInfo
		tagged      bool
		indexCounts = map[string]int{}
	)
	for _, field := range st.Fields.List {
		typ := typeString(field.Type)
		if len(field.Names) == 0 {
			if typ == "gorm.Model" || typ == "gorm.DeletedAt" {
				m.SoftDelete = true
			}
			continue
		}
		if typ == "gorm.DeletedAt" {
			m.SoftDelete = true
		}

		var tag reflect.StructTag
		if field.Tag != nil {
			if raw, err := strconv.Unquote(field.Tag.Value); err == nil {
				tag = reflect.StructTag(raw)
			}
		}
		for _, ident := range field.Names {
			if !ident.IsExported() {
				continue
			}
			info := parseField(ident.Name, typ, tag)
			if len(info.autotest) > 0 {
				tagged = true
			}
			if info.indexKey != "" {
				indexCounts[info.indexKey]++
			}
			fields = append(fields, info)
		}
	}

	for _, f := range fields {
		if f.skip {
			continue
		}
		m.GoFields[f.column] = f.goName
		if isFillable(f, tagged) {
			m.Fillable = append(m.Fillable, f.column)
			if f.typ != "string" {
				nonString = append(nonString, f)
			}
		}
		if f.unique || utils.ContainsString(f.autotest, "unique") ||
			(f.indexKey != "" && indexCounts[f.indexKey] == 1) {
			m.Unique = append(m.Unique, f.column)
		}
		if rules := fieldRules(f.tag); rules != "" {
			m.Rules = append(m.Rules, domain.FieldRules{Field: f.column, Rules: rules})
		}
	}
	return m, nonString
}

func parseField(goName, typ string, tag reflect.StructTag) fieldInfo {
	info := fieldInfo{goName: goName, column: utils.SnakeCase(goName), typ: typ, tag: tag}

	if value, ok := tag.Lookup(TagAutotest); ok {
		if strings.TrimSpace(value) == "-" {
			info.skip = true
			return info
		}
		for _, opt := range strings.Split(value, ",") {
			if opt = strings.TrimSpace(opt); opt != "" {
				info.autotest = append(info.autotest, opt)
			}
		}
	}

	gormTag := tag.Get(TagGorm)
	if strings.TrimSpace(gormTag) == "-" {
		info.skip = true
		return info
	}
	for _, part := range strings.Split(gormTag, ";") {
		key, value, _ := strings.Cut(strings.TrimSpace(part), ":")
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "column":
			info.column = strings.TrimSpace(value)
		case "primarykey", "primary_key":
			info.primary = true
		case "unique":
			info.unique = true
		case "uniqueindex":
			// Named indexes shared by several fields are composite.
			info.indexKey = strings.TrimSpace(value)
			if info.indexKey == "" {
				info.unique = true
			}
		}
	}
	return info
}

func isFillable(f fieldInfo, tagged bool) bool {
	if tagged {
		return utils.ContainsString(f.autotest, "fillable")
	}
	if f.primary || utils.ContainsString(timestampFields, f.goName) {
		return false
	}
	return f.typ == "string"
}

// fieldRules prefers the rules tag and falls back to translating a
// go-playground validate tag.
func fieldRules(tag reflect.StructTag) string {
	if rules, ok := tag.Lookup(TagRules); ok {
		return strings.TrimSpace(rules)
	}
	validate := tag.Get(TagValidate)
	if validate == "" || validate == "-" {
		return ""
	}

	var out []string
	for _, part := range strings.Split(validate, ",") {
		name, param, _ := strings.Cut(strings.TrimSpace(part), "=")
		switch name {
		case "required", "email", "numeric":
			out = append(out, name)
		case "number":
			out = append(out, "numeric")
		case "url", "uri", "http_url":
			out = append(out, "url")
		case "max", "min":
			out = append(out, name+":"+param)
		case "oneof":
			out = append(out, "in:"+strings.Join(strings.Fields(param), ","))
		case "datetime":
			out = append(out, "date")
		}
	}
	return strings.Join(out, "|")
}

func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return typeString(t.X) + "." + t.Sel.Name
	case *ast.StarExpr:
		return "*" + typeString(t.X)
	case *ast.ArrayType:
		return "[]" + typeString(t.Elt)
	case *ast.MapType:
		return fmt.Sprintf("map[%s]%s", typeString(t.Key), typeString(t.Value))
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// Models lists the struct names declared in the directory, sorted.
func (r *Resolver) Models() ([]string, error) {
	pkg, err := r.parse()
	if err != nil {
		return nil, err
	}
	names := append([]string(nil), pkg.order...)
	sort.Strings(names)
	return names, nil
}
