package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw markdown bytes are converted into HTML.
// Implementations should be reusable across goroutines without locking.
type MarkdownParser interface {
	// Parse converts markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// BundleService exposes the file workflows over delimiter-packed bundles:
// load a bundle, split it into variants, select the canonical one, and
// render it for the publishing pipeline.
type BundleService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
}

// Document is the selected variant of one bundle file after frontmatter
// extraction. The struct is shared between the interfaces package and
// internal implementations so consumers can depend on a stable contract.
type Document struct {
	FilePath    string
	FrontMatter FrontMatter
	Body        []byte
	BodyHTML    []byte
	// SelectedOrdinal is the 0-based position of the variant chosen from the
	// bundle; VariantCount is the total number of variants the bundle held.
	SelectedOrdinal int
	VariantCount    int
	LastModified    time.Time
	// Checksum stores a SHA-256 digest of the raw bundle bytes so publish
	// workflows can detect changes without re-reading unchanged files.
	Checksum []byte
}

// FrontMatter models metadata extracted from the selected variant. The
// Custom map keeps domain-specific values without forcing schema changes.
type FrontMatter struct {
	Title   string         `yaml:"title" json:"title"`
	Slug    string         `yaml:"slug" json:"slug"`
	Summary string         `yaml:"summary" json:"summary"`
	Tags    []string       `yaml:"tags" json:"tags"`
	Author  string         `yaml:"author" json:"author"`
	Date    time.Time      `yaml:"date" json:"date"`
	Draft   bool           `yaml:"draft" json:"draft"`
	Custom  map[string]any `yaml:",inline" json:"custom"`
	Raw     map[string]any `yaml:"-" json:"raw"`
}

// LoadOptions fine-tunes how bundles are discovered and parsed from disk.
// Nil pointer fields fall back to the service configuration.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Delimiter string
	// Policy overrides the configured selection policy when non-empty; it
	// uses the same string forms accepted by bundle.ParsePolicy.
	Policy string
	Parser  ParseOptions
}
