package cmd

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/HidayetHidayetov/auto-testify/pkg/cfg"
	"github.com/HidayetHidayetov/auto-testify/pkg/composer"
	"github.com/HidayetHidayetov/auto-testify/pkg/domain"
	"github.com/HidayetHidayetov/auto-testify/pkg/introspect"
	"github.com/HidayetHidayetov/auto-testify/pkg/introspect/gosource"
	"github.com/HidayetHidayetov/auto-testify/pkg/introspect/manifest"
	"github.com/HidayetHidayetov/auto-testify/pkg/introspect/openapi"
	"github.com/HidayetHidayetov/auto-testify/pkg/logging"
	"github.com/HidayetHidayetov/auto-testify/pkg/messages"
	"github.com/HidayetHidayetov/auto-testify/pkg/render"
	"github.com/HidayetHidayetov/auto-testify/pkg/render/gotest"
	"github.com/HidayetHidayetov/auto-testify/pkg/render/markdown"
	"github.com/HidayetHidayetov/auto-testify/pkg/render/plan"
	"github.com/HidayetHidayetov/auto-testify/pkg/schema"
	"github.com/HidayetHidayetov/auto-testify/pkg/storage"
)

// Renderers returns the registry of built-in renderers.
func Renderers() *render.Registry {
	registry := render.NewRegistry()
	registry.MustRegister(gotest.MustNew())
	registry.MustRegister(plan.New())
	registry.MustRegister(markdown.MustNew())
	return registry
}

// NewResolver builds the model resolver for the configured source. A
// manifest or OpenAPI document configured next to another source is
// consulted for models the primary source does not know. When a database is
// configured, unique indexes are read from it for models that declare none.
// The returned func releases the database connection.
func NewResolver(fs afero.Fs, config *cfg.Config, logger *logging.Logger) (introspect.Resolver, func(), error) {
	var chain introspect.Chain
	switch config.Source {
	case cfg.SourceGo:
		chain = append(chain, gosource.New(fs, config.ModelsDir, logger))
	case cfg.SourceManifest:
		chain = append(chain, manifest.New(fs, config.Manifest))
	case cfg.SourceOpenAPI:
		chain = append(chain, openapi.New(fs, config.OpenAPI))
	default:
		return nil, nil, domain.NewError(domain.ErrCodeInvalidConfig, fmt.Sprintf("unknown model source %q", config.Source), nil)
	}
	if config.Source != cfg.SourceManifest && config.Manifest != "" {
		chain = append(chain, manifest.New(fs, config.Manifest))
	}
	if config.Source != cfg.SourceOpenAPI && config.OpenAPI != "" {
		chain = append(chain, openapi.New(fs, config.OpenAPI))
	}

	var resolver introspect.Resolver = chain
	if len(chain) == 1 {
		resolver = chain[0]
	}

	noop := func() {}
	if config.Database.DSN == "" {
		return resolver, noop, nil
	}

	inspector, err := schema.Open(config.Database.Driver, config.Database.DSN)
	if err != nil {
		logger.Warn(messages.MsgUniqueLookupDisabled, "driver", config.Database.Driver, "error", err)
		return resolver, noop, nil
	}
	closeFn := func() {
		if err := inspector.Close(); err != nil {
			logger.Debug("failed to close database", "error", err)
		}
	}
	return introspect.WithUniqueFallback(resolver, inspector, logger), closeFn, nil
}

// NewGenerator wires the composer from the configuration.
func NewGenerator(fs afero.Fs, config *cfg.Config, logger *logging.Logger) (*composer.Generator, func(), error) {
	renderer, err := Renderers().Get(config.Renderer)
	if err != nil {
		return nil, nil, err
	}

	resolver, closeFn, err := NewResolver(fs, config, logger)
	if err != nil {
		return nil, nil, err
	}

	generator, err := composer.New(composer.Options{
		Resolver: resolver,
		Store:    storage.New(fs),
		Renderer: renderer,
		Layout: composer.Layout{
			TestDir: config.TestDir,
			Naming:  composer.FileNaming(config.FileNaming),
		},
		Target: config.Target(),
		Logger: logger,
	})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return generator, closeFn, nil
}
