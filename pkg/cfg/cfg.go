package cfg

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"

	"github.com/HidayetHidayetov/auto-testify/pkg/domain"
	"github.com/HidayetHidayetov/auto-testify/pkg/environment"
	"github.com/HidayetHidayetov/auto-testify/pkg/logging"
	"github.com/HidayetHidayetov/auto-testify/pkg/messages"
	"github.com/HidayetHidayetov/auto-testify/pkg/schema"
)

// Model sources.
const (
	SourceGo       = "go"
	SourceManifest = "manifest"
	SourceOpenAPI  = "openapi"
)

// Database configures the optional unique-index lookup.
type Database struct {
	Driver string `yaml:"driver,omitempty" validate:"omitempty,oneof=postgres mysql sqlite3 sqlserver oracle"`
	DSN    string `yaml:"dsn,omitempty"`
}

// Config is the content of .autotestify.yaml.
type Config struct {
	Source          string   `yaml:"source" validate:"required,oneof=go manifest openapi"`
	ModelsDir       string   `yaml:"models_dir" validate:"required_if=Source go"`
	Manifest        string   `yaml:"manifest,omitempty" validate:"required_if=Source manifest"`
	OpenAPI         string   `yaml:"openapi,omitempty" validate:"required_if=Source openapi"`
	ModelsImport    string   `yaml:"models_import,omitempty"`
	ModelsPackage   string   `yaml:"models_package,omitempty" validate:"omitempty,alphanum"`
	ValidatorImport string   `yaml:"validator_import,omitempty"`
	TestDir         string   `yaml:"test_dir" validate:"required"`
	TestPackage     string   `yaml:"test_package,omitempty"`
	FileNaming      string   `yaml:"file_naming" validate:"oneof=snake class"`
	Renderer        string   `yaml:"renderer" validate:"required"`
	ValidatorFunc   string   `yaml:"validator_func" validate:"required"`
	Database        Database `yaml:"database,omitempty"`
	Debug           bool     `yaml:"debug,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Source:        SourceGo,
		ModelsDir:     "models",
		TestDir:       "models",
		FileNaming:    "snake",
		Renderer:      "gotest",
		ValidatorFunc: "Validate",
	}
}

// Target returns the host-project settings for renderers.
func (c *Config) Target() domain.Target {
	return domain.Target{
		Package:         c.TestPackage,
		ModelsImport:    c.ModelsImport,
		ModelsPackage:   c.ModelsPackage,
		ValidatorImport: c.ValidatorImport,
		ValidatorFunc:   c.ValidatorFunc,
	}
}

// FindConfiguration returns the configuration file picked by the environment,
// or "" when there is none.
func FindConfiguration(fs afero.Fs, env *environment.Environment, logger *logging.Logger) (string, error) {
	logger.Debug("finding configuration...")

	if env.AutotestifyConfig == "" {
		logger.Debug(messages.MsgConfigNotFound, "config-file", environment.SystemConfigFileName)
		return "", nil
	}
	exists, err := afero.Exists(fs, env.AutotestifyConfig)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("configuration file %s does not exist", env.AutotestifyConfig)
	}
	logger.Debug(messages.MsgConfigFound, "config-file", env.AutotestifyConfig)
	return env.AutotestifyConfig, nil
}

// GenerateConfiguration writes the default configuration to the working
// directory. Interactive sessions are asked for confirmation first.
func GenerateConfiguration(fs afero.Fs, env *environment.Environment, logger *logging.Logger) (string, error) {
	configFile := filepath.Join(env.Pwd, environment.SystemConfigFileName)

	if exists, _ := afero.Exists(fs, configFile); exists {
		logger.Warn(messages.MsgConfigExists, "config-file", configFile)
		return configFile, nil
	}

	prompts := env.Prompts()
	switch {
	case prompts.IsNonInteractive && !prompts.Confirmed():
		return "", errors.New("aborted by NON_INTERACTIVE answer")
	case !prompts.IsNonInteractive:
		var confirm bool
		if err := huh.NewConfirm().
			Title("Configuration file not found. Do you want to generate one?").
			Description(configFile).
			Value(&confirm).
			Run(); err != nil {
			return "", fmt.Errorf("could not create a configuration file: %w", err)
		}
		if !confirm {
			return "", errors.New("aborted by user")
		}
	}

	config := Default()
	if modulePath, err := ModulePath(fs, env.Pwd); err == nil {
		config.ModelsImport = path.Join(modulePath, config.ModelsDir)
	}

	content, err := yaml.Marshal(config)
	if err != nil {
		return "", err
	}
	if err := afero.WriteFile(fs, configFile, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write to %s: %w", configFile, err)
	}

	logger.Info(messages.MsgConfigGenerated, "config-file", configFile)
	return configFile, nil
}

// LoadConfiguration reads configFile over the defaults, fills derived
// values and validates the result. An empty configFile yields the defaults.
func LoadConfiguration(fs afero.Fs, configFile string, env *environment.Environment, logger *logging.Logger) (*Config, error) {
	config := Default()

	if configFile != "" {
		logger.Debug("loading configuration file", "config-file", configFile)
		data, err := afero.ReadFile(fs, configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config-file '%s': %w", configFile, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, domain.NewError(domain.ErrCodeParseError, fmt.Sprintf("error parsing config-file '%s'", configFile), err)
		}
	}

	root := env.Pwd
	if configFile != "" && filepath.Base(configFile) == environment.SystemConfigFileName {
		root = filepath.Dir(configFile)
	}
	config.applyEnvironment(env)
	config.resolvePaths(root)

	if config.ModelsImport == "" && config.Source == SourceGo {
		if modulePath, err := ModulePath(fs, root); err == nil {
			config.ModelsImport = importPath(modulePath, root, config.ModelsDir)
		} else {
			logger.Debug("no go.mod found", "dir", root, "error", err)
		}
	}

	if err := ValidateConfiguration(config); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvironment reads the database settings of the host project.
func (c *Config) applyEnvironment(env *environment.Environment) {
	if env.IsDebug() {
		c.Debug = true
	}
	if c.Database.DSN == "" {
		for _, key := range []string{"DB_DSN", "DATABASE_URL"} {
			if dsn := env.Lookup(key); dsn != "" {
				c.Database.DSN = dsn
				break
			}
		}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = env.Lookup("DB_CONNECTION")
	}
	switch {
	case c.Database.Driver != "":
		c.Database.Driver = schema.NormalizeDriver(c.Database.Driver)
	case c.Database.DSN != "":
		c.Database.Driver = schema.DetectDriver(c.Database.DSN)
	}
}

func (c *Config) resolvePaths(root string) {
	for _, p := range []*string{&c.ModelsDir, &c.Manifest, &c.OpenAPI, &c.TestDir} {
		if *p != "" && !filepath.IsAbs(*p) && root != "" {
			*p = filepath.Join(root, *p)
		}
	}
}

// importPath joins the module path with dir relative to the module root.
func importPath(modulePath, root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return modulePath
	}
	return path.Join(modulePath, filepath.ToSlash(rel))
}

// ModulePath returns the module path declared in <dir>/go.mod.
func ModulePath(fs afero.Fs, dir string) (string, error) {
	data, err := afero.ReadFile(fs, filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", err
	}
	modulePath := modfile.ModulePath(data)
	if modulePath == "" {
		return "", fmt.Errorf("go.mod in %s declares no module", dir)
	}
	return modulePath, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateConfiguration checks the struct tags of config.
func ValidateConfiguration(config *Config) error {
	err := validate.Struct(config)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return domain.NewError(domain.ErrCodeInvalidConfig, "configuration validation failed", err)
	}
	problems := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		problems = append(problems, fmt.Sprintf("%s: failed %q", e.Namespace(), e.Tag()))
	}
	return domain.NewError(domain.ErrCodeInvalidConfig, "configuration validation failed: "+strings.Join(problems, "; "), nil)
}
