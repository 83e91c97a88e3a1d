package bundle

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrConfigDelimiterRequired    = errors.New("bundle config: delimiter is required")
	ErrConfigPolicyInvalid        = errors.New("bundle config: selection policy is invalid")
	ErrConfigContentDirRequired   = errors.New("bundle config: content directory is required when the loader is enabled")
	ErrConfigStorageDriverUnknown = errors.New("bundle config: storage driver is invalid")
	ErrLoggingLevelInvalid        = errors.New("bundle config: logging level is invalid")
	ErrLoggingFormatInvalid       = errors.New("bundle config: logging format is invalid")
)

// Config aggregates the module configuration. Fields use simple types so
// host applications can populate them from flags or their own config layer.
type Config struct {
	// Delimiter is the exact token recognised between variants.
	Delimiter string
	// Policy decides which variant of a bundle is canonical.
	Policy   Policy
	Loader   LoaderConfig
	Storage  StorageConfig
	Cache    CacheConfig
	Logging  LoggingConfig
	Features Features
}

// LoaderConfig controls filesystem discovery of bundle files.
type LoaderConfig struct {
	ContentDir string
	Pattern    string
	Recursive  bool
	Parser     ParserConfig
}

// ParserConfig carries markdown rendering options through to the goldmark
// parser.
type ParserConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// StorageConfig selects the publications store backend.
type StorageConfig struct {
	Driver string
	DSN    string
}

// CacheConfig toggles read caching on the publications repositories.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LoggingConfig captures go-logger options for the default provider.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// Features toggles optional module functionality.
type Features struct {
	Loader       bool
	Publications bool
}

// DefaultConfig returns opinionated defaults: the built-in delimiter,
// last-wins selection, markdown discovery under "content", and an in-memory
// sqlite publications store.
func DefaultConfig() Config {
	return Config{
		Delimiter: DefaultDelimiter,
		Policy:    DefaultPolicy(),
		Loader: LoaderConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "file::memory:?cache=shared",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Features: Features{
			Loader: true,
		},
	}
}

// Validate checks cross-field consistency before the module boots.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Delimiter) == "" {
		return ErrConfigDelimiterRequired
	}
	if err := cfg.Policy.Validate(); err != nil {
		return errors.Join(ErrConfigPolicyInvalid, err)
	}
	if cfg.Features.Loader && strings.TrimSpace(cfg.Loader.ContentDir) == "" {
		return ErrConfigContentDirRequired
	}
	if cfg.Features.Publications {
		switch strings.ToLower(strings.TrimSpace(cfg.Storage.Driver)) {
		case "sqlite", "sqlite3", "postgres", "postgresql", "pg":
		default:
			return ErrConfigStorageDriverUnknown
		}
	}
	return validateLogging(cfg.Logging)
}

func validateLogging(cfg LoggingConfig) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return ErrLoggingLevelInvalid
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json", "console", "pretty":
	default:
		return ErrLoggingFormatInvalid
	}
	return nil
}
