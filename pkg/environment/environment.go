package environment

import (
	"path/filepath"

	env "github.com/Netflix/go-env"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/HidayetHidayetov/auto-testify/pkg/utils"
)

// SystemConfigFileName is the per-project configuration file.
const SystemConfigFileName = ".autotestify.yaml"

// Environment holds environment configurations loaded from the OS or defaults.
type Environment struct {
	Home              string `env:"HOME"`
	Pwd               string `env:"PWD"`
	AutotestifyConfig string `env:"AUTOTESTIFY_CONFIG"`
	Debug             string `env:"DEBUG,default=0"`
	NonInteractive    string `env:"NON_INTERACTIVE,default=0"`

	// DotEnv holds the variables of the project's .env file. The process
	// environment is never modified.
	DotEnv map[string]string
	Extras env.EnvSet
}

// IsDebug reports whether DEBUG is set to a true value.
func (e *Environment) IsDebug() bool {
	return e.Debug == "1" || e.Debug == "true"
}

// IsNonInteractive reports whether prompts must be skipped.
func (e *Environment) IsNonInteractive() bool {
	return e.Prompts().IsNonInteractive
}

// Prompts returns the parsed NON_INTERACTIVE setting.
func (e *Environment) Prompts() utils.NonInteractiveConfig {
	return utils.ParseNonInteractive(e.NonInteractive)
}

// Lookup returns a variable from the process environment, falling back to
// the project's .env file.
func (e *Environment) Lookup(key string) string {
	if value, ok := e.Extras[key]; ok && value != "" {
		return value
	}
	return e.DotEnv[key]
}

// checkConfig checks if the configuration file exists in the given directory.
func checkConfig(fs afero.Fs, baseDir string) (string, error) {
	if baseDir == "" {
		return "", nil
	}
	configFile := filepath.Join(baseDir, SystemConfigFileName)
	exists, err := afero.Exists(fs, configFile)
	if err == nil && exists {
		return configFile, nil
	}
	return "", err
}

// UserConfigFile is the per-user configuration under the XDG config home.
func UserConfigFile() string {
	return filepath.Join(xdg.ConfigHome, "autotestify", "config.yaml")
}

// findConfig searches the working directory, then the XDG config file, then
// the home directory.
func findConfig(fs afero.Fs, pwd, home string) string {
	if configFile, _ := checkConfig(fs, pwd); configFile != "" {
		return configFile
	}
	if exists, _ := afero.Exists(fs, UserConfigFile()); exists {
		return UserConfigFile()
	}
	if configFile, _ := checkConfig(fs, home); configFile != "" {
		return configFile
	}
	return ""
}

// loadDotEnv reads <dir>/.env without exporting it.
func loadDotEnv(fs afero.Fs, dir string) (map[string]string, error) {
	if dir == "" {
		return map[string]string{}, nil
	}
	file, err := fs.Open(filepath.Join(dir, ".env"))
	if err != nil {
		return map[string]string{}, nil
	}
	defer file.Close()
	return godotenv.Parse(file)
}

// NewEnvironment initializes and returns a new Environment based on provided or default settings.
func NewEnvironment(fs afero.Fs, environ *Environment) (*Environment, error) {
	if environ == nil {
		environ = &Environment{}
		extras, err := env.UnmarshalFromEnviron(environ)
		if err != nil {
			return nil, err
		}
		environ.Extras = extras
	}

	out := *environ
	if out.Extras == nil {
		out.Extras = env.EnvSet{}
	}
	if out.AutotestifyConfig == "" {
		out.AutotestifyConfig = findConfig(fs, out.Pwd, out.Home)
	}

	dotEnv, err := loadDotEnv(fs, out.Pwd)
	if err != nil {
		return nil, err
	}
	out.DotEnv = dotEnv
	return &out, nil
}
