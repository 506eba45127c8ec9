package gotest_test

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HidayetHidayetov/auto-testify/pkg/domain"
	"github.com/HidayetHidayetov/auto-testify/pkg/render/gotest"
)

func userDocument() domain.Document {
	attrs := domain.Attributes{
		{Field: "name", Value: "Test Name"},
		{Field: "email", Value: "test@example.com"},
		{Field: "password", Value: "password"},
	}
	emailRule := domain.ParseRule("email")
	return domain.Document{
		Model: domain.Model{
			Name:       "User",
			Fillable:   []string{"name", "email", "password"},
			Unique:     []string{"email"},
			SoftDelete: true,
			Rules:      []domain.FieldRules{{Field: "email", Rules: "required|email"}},
		},
		Target: domain.Target{
			Package:       "models_test",
			ModelsImport:  "example.com/app/models",
			ModelsPackage: "models",
			ValidatorFunc: "Validate",
		},
		Attributes: attrs,
		Cases: []domain.TestCase{
			{
				Kind:       domain.KindCreate,
				Name:       "test_user_can_be_created_with_fillable_fields",
				Attributes: attrs,
				Checks: []domain.Check{
					{Field: "name", Mode: domain.CheckEqual, Value: "Test Name"},
					{Field: "password", Mode: domain.CheckHash, Value: "password"},
				},
			},
			{
				Kind:       domain.KindRetrieve,
				Name:       "test_user_can_be_retrieved",
				Attributes: attrs,
				Checks:     []domain.Check{{Field: "email", Mode: domain.CheckEqual}},
			},
			{
				Kind:       domain.KindUpdate,
				Name:       "test_user_can_be_updated",
				Attributes: attrs,
				Updates:    domain.Attributes{{Field: "email", Value: "updated@example.com"}},
				Checks:     []domain.Check{{Field: "email", Mode: domain.CheckEqual, Value: "updated@example.com"}},
			},
			{
				Kind:       domain.KindDelete,
				Name:       "test_user_can_be_deleted",
				Attributes: attrs,
				SoftDelete: true,
			},
			{
				Kind:       domain.KindUnique,
				Name:       "test_user_email_must_be_unique",
				Field:      "email",
				Attributes: attrs,
			},
			{
				Kind:       domain.KindValidation,
				Name:       "test_user_email_must_be_valid_email",
				Field:      "email",
				Rule:       &emailRule,
				Attributes: attrs.With("email", "invalid-email"),
				Assertion:  &domain.Assertion{Fails: true, ErrorKeys: []string{"email"}},
			},
		},
	}
}

func parse(t *testing.T, src []byte) *ast.File {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "user_test.go", src, parser.ParseComments)
	require.NoError(t, err, string(src))
	return file
}

func funcNames(file *ast.File) []string {
	var names []string
	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok {
			names = append(names, fn.Name.Name)
		}
	}
	return names
}

func imports(file *ast.File) []string {
	var paths []string
	for _, spec := range file.Imports {
		p, _ := strconv.Unquote(spec.Path.Value)
		paths = append(paths, p)
	}
	return paths
}

func TestRender_ProducesValidGo(t *testing.T) {
	r := gotest.MustNew()
	assert.Equal(t, "gotest", r.Name())
	assert.Equal(t, "_test.go", r.Extension())

	src, err := r.Render(context.Background(), userDocument())
	require.NoError(t, err)

	file := parse(t, src)
	assert.Equal(t, "models_test", file.Name.Name)
	assert.Equal(t, []string{
		"newUserTestDB",
		"TestUserCanBeCreatedWithFillableFields",
		"TestUserCanBeRetrieved",
		"TestUserCanBeUpdated",
		"TestUserCanBeDeleted",
		"TestUserEmailMustBeUnique",
		"TestUserEmailMustBeValidEmail",
	}, funcNames(file))
	assert.ElementsMatch(t, []string{
		"testing",
		"github.com/stretchr/testify/assert",
		"github.com/stretchr/testify/require",
		"golang.org/x/crypto/bcrypt",
		"gorm.io/driver/sqlite",
		"gorm.io/gorm",
		"example.com/app/models",
	}, imports(file))

	out := string(src)
	assert.Contains(t, out, "// Generated by autotestify make:test-model User.")
	assert.Contains(t, out, `"email": "required|email",`)
	assert.Contains(t, out, "bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte(\"password\"))")
	assert.Contains(t, out, `assert.Equal(t, "updated@example.com", refreshed.Email)`)
	assert.Contains(t, out, "assert.True(t, trashed.DeletedAt.Valid)")
	assert.Contains(t, out, "gorm.ErrDuplicatedKey")
	assert.Contains(t, out, "errs := models.Validate(attributes, userRules)")
	assert.Contains(t, out, `"email":    "invalid-email",`)
}

func TestRender_SamePackageAndHardDelete(t *testing.T) {
	doc := userDocument()
	doc.Target.Package = "models"
	doc.Model.SoftDelete = false
	doc.Cases[0].Checks = doc.Cases[0].Checks[:1]
	doc.Cases[3].SoftDelete = false

	src, err := gotest.MustNew().Render(context.Background(), doc)
	require.NoError(t, err)

	file := parse(t, src)
	paths := imports(file)
	assert.NotContains(t, paths, "example.com/app/models")
	assert.NotContains(t, paths, "golang.org/x/crypto/bcrypt")

	out := string(src)
	assert.Contains(t, out, "var stored User")
	assert.Contains(t, out, "errs := Validate(attributes, userRules)")
	assert.Contains(t, out, `Unscoped().Model(&User{}).Where("id = ?", user.ID).Count(&count)`)
	assert.NotContains(t, out, "trashed")
}

func TestRender_SeparateValidatorPackage(t *testing.T) {
	doc := userDocument()
	doc.Target.ValidatorImport = "example.com/app/internal/rules"
	doc.Target.ValidatorFunc = "Check"

	src, err := gotest.MustNew().Render(context.Background(), doc)
	require.NoError(t, err)

	assert.Contains(t, imports(parse(t, src)), "example.com/app/internal/rules")
	assert.Contains(t, string(src), "errs := rules.Check(attributes, userRules)")
}

func TestRender_ReservedVariableNames(t *testing.T) {
	doc := userDocument()
	doc.Model.Name = "Count"
	for i := range doc.Cases {
		doc.Cases[i].Name = "test_count_case"
	}

	src, err := gotest.MustNew().Render(context.Background(), doc)
	require.NoError(t, err)

	file := parse(t, src)
	names := funcNames(file)
	assert.Contains(t, names, "TestCountCase")
	assert.Contains(t, names, "TestCountCase2")
	assert.Contains(t, string(src), "countRecord := models.Count{")
}

func TestRender_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gotest.MustNew().Render(ctx, userDocument())
	require.ErrorIs(t, err, context.Canceled)
}
