package cmd_test

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HidayetHidayetov/auto-testify/cmd"
	"github.com/HidayetHidayetov/auto-testify/pkg/cfg"
	"github.com/HidayetHidayetov/auto-testify/pkg/environment"
	"github.com/HidayetHidayetov/auto-testify/pkg/logging"
)

const userModel = "package models\n\n" +
	"type User struct {\n" +
	"\tID       uint\n" +
	"\tName     string `autotest:\"fillable\" rules:\"required|max:255\"`\n" +
	"\tEmail    string `autotest:\"fillable\" rules:\"required|email\"`\n" +
	"\tPassword string `autotest:\"fillable\"`\n" +
	"}\n"

func testConfig() *cfg.Config {
	config := cfg.Default()
	config.ModelsDir = "/app/models"
	config.TestDir = "/app/models"
	return config
}

func execute(t *testing.T, fs afero.Fs, config *cfg.Config, args ...string) (string, *logging.Logger) {
	t.Helper()
	logger := logging.NewTestLogger()
	env := &environment.Environment{Pwd: "/app", NonInteractive: "1"}

	root := cmd.NewRootCommand(context.Background(), fs, env, config, logger)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String(), logger
}

func modelsFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/app/models/user.go", []byte(userModel), 0o644))
	return fs
}

func TestMakeTestModel_Created(t *testing.T) {
	fs := modelsFs(t)

	out, _ := execute(t, fs, testConfig(), "make:test-model", "User")
	assert.Contains(t, out, "Generating test file for User...")
	assert.Contains(t, out, "Test file created successfully at: /app/models/user_test.go")

	content, err := afero.ReadFile(fs, "/app/models/user_test.go")
	require.NoError(t, err)
	assert.Contains(t, string(content), "package models\n")
	assert.Contains(t, string(content), "func TestUserNameMustNotExceed255Characters(t *testing.T)")
	assert.Contains(t, string(content), "assert.Equal(t, user.Email, retrieved.Email)")
	assert.NotContains(t, string(content), "retrieved.Password")
}

func TestMakeTestModel_Alias(t *testing.T) {
	out, _ := execute(t, modelsFs(t), testConfig(), "test-model", "user")
	assert.Contains(t, out, "Test file created successfully at:")
}

func TestMakeTestModel_NotFound(t *testing.T) {
	fs := modelsFs(t)

	out, _ := execute(t, fs, testConfig(), "make:test-model", "Invoice")
	assert.Contains(t, out, "Model Invoice not found!")

	exists, err := afero.Exists(fs, "/app/models/invoice_test.go")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMakeTestModel_AlreadyExists(t *testing.T) {
	fs := modelsFs(t)
	require.NoError(t, afero.WriteFile(fs, "/app/models/user_test.go", []byte("package models\n"), 0o644))

	out, _ := execute(t, fs, testConfig(), "make:test-model", "User")
	assert.Contains(t, out, "Test file for User already exists at /app/models/user_test.go!")

	content, err := afero.ReadFile(fs, "/app/models/user_test.go")
	require.NoError(t, err)
	assert.Equal(t, "package models\n", string(content))
}

func TestMakeTestModel_RequiresOneArgument(t *testing.T) {
	root := cmd.NewRootCommand(context.Background(), afero.NewMemMapFs(), &environment.Environment{}, testConfig(), logging.NewTestLogger())
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"make:test-model"})
	assert.Error(t, root.Execute())
}

func TestMakeTestModel_PlanRenderer(t *testing.T) {
	fs := modelsFs(t)
	config := testConfig()
	config.Renderer = "plan"
	config.TestDir = "/app/plans"

	out, _ := execute(t, fs, config, "make:test-model", "User")
	assert.Contains(t, out, "/app/plans/user.plan.yaml")
}

func TestMakeTestModel_UniqueIndexesFromDatabase(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT, email TEXT UNIQUE)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	fs := modelsFs(t)
	config := testConfig()
	config.Database = cfg.Database{Driver: "sqlite3", DSN: dsn}

	execute(t, fs, config, "make:test-model", "User")

	content, err := afero.ReadFile(fs, "/app/models/user_test.go")
	require.NoError(t, err)
	assert.Contains(t, string(content), "func TestUserEmailMustBeUnique(t *testing.T)")
}

func TestMakeTestModel_DatabaseFailureIsNotFatal(t *testing.T) {
	fs := modelsFs(t)
	config := testConfig()
	config.Database = cfg.Database{Driver: "sqlite3", DSN: filepath.Join(t.TempDir(), "empty.db")}

	out, logger := execute(t, fs, config, "make:test-model", "User")
	assert.Contains(t, out, "Test file created successfully")
	assert.NotContains(t, out, "MustBeUnique")

	content, err := afero.ReadFile(fs, "/app/models/user_test.go")
	require.NoError(t, err)
	assert.NotContains(t, string(content), "MustBeUnique")
	assert.NotContains(t, logger.GetOutput(), "ERRO")
}

func TestInit(t *testing.T) {
	fs := afero.NewMemMapFs()
	out, _ := execute(t, fs, testConfig(), "init")
	assert.Contains(t, out, "/app/.autotestify.yaml")

	exists, err := afero.Exists(fs, "/app/.autotestify.yaml")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestVersion(t *testing.T) {
	out, _ := execute(t, afero.NewMemMapFs(), testConfig(), "version")
	assert.Contains(t, out, "autotestify dev")
}

func TestRenderers(t *testing.T) {
	assert.Equal(t, []string{"gotest", "markdown", "plan"}, cmd.Renderers().List())
}

func TestNewGenerator_UnknownRenderer(t *testing.T) {
	config := testConfig()
	config.Renderer = "html"

	_, _, err := cmd.NewGenerator(afero.NewMemMapFs(), config, logging.NewTestLogger())
	assert.Error(t, err)
}

func TestMakeTestModel_ManifestBehindGoSource(t *testing.T) {
	fs := modelsFs(t)
	require.NoError(t, afero.WriteFile(fs, "/app/models.yaml", []byte(`
models:
  Invoice:
    fillable: [number, customer_email]
    unique: [number]
`), 0o644))
	config := testConfig()
	config.Manifest = "/app/models.yaml"

	out, _ := execute(t, fs, config, "make:test-model", "Invoice")
	assert.Contains(t, out, "Test file created successfully at: /app/models/invoice_test.go")

	content, err := afero.ReadFile(fs, "/app/models/invoice_test.go")
	require.NoError(t, err)
	assert.Contains(t, string(content), "func TestInvoiceNumberMustBeUnique(t *testing.T)")

	out, _ = execute(t, fs, config, "make:test-model", "User")
	assert.Contains(t, out, "Test file created successfully at: /app/models/user_test.go")
}

func TestMakeTestModel_DryRun(t *testing.T) {
	fs := modelsFs(t)

	out, _ := execute(t, fs, testConfig(), "make:test-model", "User", "--dry-run")
	assert.Contains(t, out, "name: test_user_can_be_created_with_fillable_fields")
	assert.Contains(t, out, "name: test_user_email_must_be_valid_email")

	exists, err := afero.Exists(fs, "/app/models/user_test.go")
	require.NoError(t, err)
	assert.False(t, exists)

	out, _ = execute(t, fs, testConfig(), "make:test-model", "Invoice", "--dry-run")
	assert.Contains(t, out, "Model Invoice not found!")
}
