package bootstrap

import (
	"fmt"
	"strings"

	bundle "github.com/goliatone/go-bundle"
	"github.com/goliatone/go-bundle/internal/logging"
	"github.com/goliatone/go-bundle/pkg/interfaces"
	"github.com/goliatone/go-bundle/publications"
)

// Options captures configuration for bundle CLI bootstraps.
type Options struct {
	ContentDir     string
	Pattern        string
	Recursive      bool
	Delimiter      string
	Policy         string
	StorageDriver  string
	StorageDSN     string
	Publications   bool
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the bundle module and the configured services and logger.
type Module struct {
	Module       *bundle.Module
	Service      interfaces.BundleService
	Publications publications.Service
	Logger       interfaces.Logger
}

// BuildModule constructs a bundle module configured for CLI operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := bundle.DefaultConfig()
	cfg.Features.Loader = true
	cfg.Features.Publications = opts.Publications

	cfg.Loader.ContentDir = strings.TrimSpace(opts.ContentDir)
	if cfg.Loader.ContentDir == "" {
		cfg.Loader.ContentDir = "content"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Loader.Pattern = trimmed
	}
	cfg.Loader.Recursive = opts.Recursive

	if trimmed := strings.TrimSpace(opts.Delimiter); trimmed != "" {
		cfg.Delimiter = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Policy); trimmed != "" {
		policy, err := bundle.ParsePolicy(trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse policy: %w", err)
		}
		cfg.Policy = policy
	}

	if trimmed := strings.TrimSpace(opts.StorageDriver); trimmed != "" {
		cfg.Storage.Driver = trimmed
	}
	if trimmed := strings.TrimSpace(opts.StorageDSN); trimmed != "" {
		cfg.Storage.DSN = trimmed
	}

	moduleOpts := []bundle.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, bundle.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := bundle.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise bundle module: %w", err)
	}

	service := module.Bundles()
	if service == nil {
		return nil, fmt.Errorf("bundle service not configured; ensure the loader feature is enabled")
	}

	logger := logging.ModuleLogger(module.LoggerProvider(), "")

	return &Module{
		Module:       module,
		Service:      service,
		Publications: module.Publications(),
		Logger:       logger,
	}, nil
}
