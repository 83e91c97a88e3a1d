// Package bundle is an embeddable toolkit for delimiter-packed document
// bundles: source files that hold two or more alternate renderings of the
// same logical document separated by a magic token. The package splits
// bundles into ordered variants, selects the canonical variant under a
// configurable policy, and feeds the selection into loading and publishing
// workflows.
package bundle

import (
	"github.com/goliatone/go-bundle/internal/loader"
	"github.com/goliatone/go-bundle/internal/logging"
	"github.com/goliatone/go-bundle/internal/logging/gologger"
	"github.com/goliatone/go-bundle/pkg/interfaces"
	"github.com/goliatone/go-bundle/pkg/storage"
	"github.com/goliatone/go-bundle/publications"
	"github.com/goliatone/go-bundle/variants"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

// Core re-exports. The variants package is the dependency-free leaf holding
// the splitter and selector; consumers that only need the core can import it
// directly.
type (
	Variant = variants.Variant
	Policy  = variants.Policy
)

const (
	PolicyFirst = variants.PolicyFirst
	PolicyLast  = variants.PolicyLast
	PolicyIndex = variants.PolicyIndex

	// DefaultDelimiter is the magic token recognised between variants when
	// no override is configured.
	DefaultDelimiter = variants.DefaultDelimiter
)

var (
	ErrDelimiterRequired = variants.ErrDelimiterRequired
	ErrOrdinalOutOfRange = variants.ErrOrdinalOutOfRange
	ErrPolicyInvalid     = variants.ErrPolicyInvalid
)

// Split cuts raw bundle text at every occurrence of delimiter. See
// variants.Split for the full contract.
func Split(raw, delimiter string) ([]string, error) {
	return variants.Split(raw, delimiter)
}

// SplitVariants behaves like Split but attaches ordinals to each segment.
func SplitVariants(raw, delimiter string) ([]Variant, error) {
	return variants.SplitVariants(raw, delimiter)
}

// Join re-inserts delimiter between adjacent variants, reconstructing the
// original bundle text.
func Join(segments []string, delimiter string) string {
	return variants.Join(segments, delimiter)
}

// Count reports the number of delimiter occurrences in raw.
func Count(raw, delimiter string) (int, error) {
	return variants.Count(raw, delimiter)
}

// Select returns exactly one variant from the ordered sequence according to
// policy. See variants.Select for the full contract.
func Select(segments []string, policy Policy) (string, error) {
	return variants.Select(segments, policy)
}

// ParsePolicy converts a configuration string ("first", "last", "index:N")
// into a Policy.
func ParsePolicy(value string) (Policy, error) {
	return variants.ParsePolicy(value)
}

// DefaultPolicy returns the last-wins selection policy.
func DefaultPolicy() Policy { return variants.DefaultPolicy() }

// First selects ordinal 0.
func First() Policy { return variants.First() }

// Last selects the final ordinal.
func Last() Policy { return variants.Last() }

// Index selects an explicit ordinal.
func Index(ordinal int) Policy { return variants.Index(ordinal) }

// GenerateDelimiter mints a fresh delimiter token with a random suffix.
func GenerateDelimiter() (string, error) {
	return variants.GenerateDelimiter()
}

// BundleService exports the loader service contract for consumers of the
// bundle package.
type BundleService = interfaces.BundleService

// Document exports the selected-variant document DTO.
type Document = interfaces.Document

// Module is the top level runtime façade wiring the loader service and the
// configured logger provider.
type Module struct {
	cfg      Config
	service  interfaces.BundleService
	provider interfaces.LoggerProvider
	pubRepo  publications.Repository
	pubs     publications.Service
	db       *bun.DB
}

// Option overrides module wiring during construction.
type Option func(*Module)

// WithLoggerProvider injects the logger provider used for module loggers.
// When omitted, a go-logger provider built from cfg.Logging is used.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// WithPublicationRepository injects the repository backing the publications
// service, bypassing the configured storage driver. Hosts use it to share a
// database handle; tests use it with the in-memory repository.
func WithPublicationRepository(repo publications.Repository) Option {
	return func(m *Module) {
		m.pubRepo = repo
	}
}

// New constructs a bundle module using the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}

	if cfg.Features.Loader {
		service, err := loader.NewService(loader.ServiceConfig{
			BasePath:  cfg.Loader.ContentDir,
			Delimiter: cfg.Delimiter,
			Policy:    cfg.Policy,
			Pattern:   cfg.Loader.Pattern,
			Recursive: cfg.Loader.Recursive,
			Parser: interfaces.ParseOptions{
				Extensions: cfg.Loader.Parser.Extensions,
				HardWraps:  cfg.Loader.Parser.HardWraps,
				SafeMode:   cfg.Loader.Parser.SafeMode,
			},
		}, nil)
		if err != nil {
			return nil, err
		}
		m.service = service
	}

	if cfg.Features.Publications {
		if m.pubRepo == nil {
			db, err := storage.Open(storage.Config{
				Driver: cfg.Storage.Driver,
				DSN:    cfg.Storage.DSN,
			})
			if err != nil {
				return nil, err
			}
			m.db = db
			repo, err := buildPublicationRepository(db, cfg.Cache)
			if err != nil {
				return nil, err
			}
			m.pubRepo = repo
		}
		m.pubs = publications.NewService(m.pubRepo, logging.PublicationsLogger(m.provider))
	}

	return m, nil
}

func buildPublicationRepository(db *bun.DB, cacheCfg CacheConfig) (publications.Repository, error) {
	if !cacheCfg.Enabled {
		return publications.NewBunPublicationRepository(db), nil
	}

	serviceCfg := repocache.DefaultConfig()
	if cacheCfg.DefaultTTL > 0 {
		serviceCfg.TTL = cacheCfg.DefaultTTL
	}
	cacheService, err := repocache.NewCacheService(serviceCfg)
	if err != nil {
		return nil, err
	}
	return publications.NewBunPublicationRepositoryWithCache(db, cacheService, repocache.NewDefaultKeySerializer()), nil
}

// Bundles returns the configured loader service, or nil when the loader
// feature is disabled.
func (m *Module) Bundles() interfaces.BundleService {
	if m == nil {
		return nil
	}
	return m.service
}

// Publications returns the configured publications service, or nil when the
// feature is disabled.
func (m *Module) Publications() publications.Service {
	if m == nil {
		return nil
	}
	return m.pubs
}

// DB exposes the bun handle the module opened for publications, or nil when
// storage was injected or the feature is disabled.
func (m *Module) DB() *bun.DB {
	if m == nil {
		return nil
	}
	return m.db
}

// LoggerProvider exposes the provider so hosts can scope their own loggers.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil {
		return nil
	}
	return m.provider
}

// Logger returns the root module logger.
func (m *Module) Logger() interfaces.Logger {
	if m == nil {
		return logging.NoOp()
	}
	return logging.ModuleLogger(m.provider, "")
}
