package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-bundle/pkg/interfaces"
	"github.com/goliatone/go-bundle/variants"
)

// ServiceConfig controls how the bundle service discovers and renders files.
type ServiceConfig struct {
	BasePath  string
	Delimiter string
	Policy    variants.Policy
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
}

// Service implements interfaces.BundleService for filesystem-backed bundles.
type Service struct {
	cfg    ServiceConfig
	parser interfaces.MarkdownParser
	loader *Loader
}

// NewService constructs a bundle service using an underlying loader. When
// parser is nil, a goldmark parser with the provided default options is
// created.
func NewService(cfg ServiceConfig, parser interfaces.MarkdownParser) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceWithFS(filesystem, cfg, parser)
}

// NewServiceWithFS constructs a bundle service over an explicit fs.FS, which
// keeps tests and embedded content off the host filesystem.
func NewServiceWithFS(filesystem fs.FS, cfg ServiceConfig, parser interfaces.MarkdownParser) (*Service, error) {
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	ldr := New(filesystem, Config{
		BasePath:  cfg.BasePath,
		Delimiter: cfg.Delimiter,
		Policy:    cfg.Policy,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	return &Service{
		cfg:    cfg,
		parser: parser,
		loader: ldr,
	}, nil
}

// Load reads a single bundle document relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	params, err := toLoaderParams(opts)
	if err != nil {
		return nil, err
	}
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path), params)
	if err != nil {
		return nil, err
	}
	if err := s.renderDocument(ctx, result.Document, opts.Parser); err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory reads every bundle document within the supplied directory.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	params, err := toLoaderParams(opts)
	if err != nil {
		return nil, err
	}
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), params)
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		if err := s.renderDocument(ctx, result.Document, opts.Parser); err != nil {
			return nil, err
		}
		docs = append(docs, result.Document)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})
	return docs, nil
}

// Render parses markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

// RenderDocument converts the document's markdown body into HTML using the
// configured parser.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("bundle service: document is nil")
	}
	html, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		return nil, err
	}
	doc.BodyHTML = html
	return html, nil
}

func (s *Service) renderDocument(ctx context.Context, doc *interfaces.Document, overrides interfaces.ParseOptions) error {
	if doc == nil {
		return nil
	}
	html, err := s.Render(ctx, doc.Body, overrides)
	if err != nil {
		return fmt.Errorf("bundle render document %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = html
	return nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func toLoaderParams(opts interfaces.LoadOptions) (Params, error) {
	params := Params{
		Pattern:   opts.Pattern,
		Delimiter: opts.Delimiter,
		Recursive: opts.Recursive,
	}
	if strings.TrimSpace(opts.Policy) != "" {
		policy, err := variants.ParsePolicy(opts.Policy)
		if err != nil {
			return Params{}, err
		}
		params.Policy = &policy
	}
	return params, nil
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("bundle service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
