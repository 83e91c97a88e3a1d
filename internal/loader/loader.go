package loader

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-bundle/pkg/interfaces"
	"github.com/goliatone/go-bundle/variants"
)

// Config configures how bundle files are discovered within a base directory
// and how variants are cut and chosen.
type Config struct {
	// BasePath is the root directory where bundle documents live.
	BasePath string
	// Delimiter is the exact token recognised between variants.
	Delimiter string
	// Policy decides which variant is canonical for each bundle.
	Policy variants.Policy
	// Pattern limits discovered files to those matching the supplied glob
	// (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into selected bundle documents.
type Loader struct {
	fs        fs.FS
	basePath  string
	delimiter string
	policy    variants.Policy
	pattern   string
	recursive bool
}

// New constructs a Loader using the provided filesystem and configuration.
func New(filesystem fs.FS, cfg Config) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	delimiter := cfg.Delimiter
	if delimiter == "" {
		delimiter = variants.DefaultDelimiter
	}
	policy := cfg.Policy
	if policy.Kind == "" {
		policy = variants.DefaultPolicy()
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		delimiter: delimiter,
		policy:    policy,
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// Result carries the parsed document along with every variant the bundle
// held, so callers can audit what selection skipped.
type Result struct {
	Document *interfaces.Document
	Variants []string
}

// Params provide call-specific overrides for delimiter, policy, and pattern
// matching.
type Params struct {
	Pattern   string
	Delimiter string
	Policy    *variants.Policy
	Recursive *bool
}

// LoadFile reads a single bundle file, splits it, selects the canonical
// variant, and parses its frontmatter.
func (l *Loader) LoadFile(ctx context.Context, path string, opts Params) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("bundle loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("bundle loader stat %s: %w", rel, err)
	}

	delimiter := opts.Delimiter
	if delimiter == "" {
		delimiter = l.delimiter
	}
	policy := l.policy
	if opts.Policy != nil {
		policy = *opts.Policy
	}

	segments, err := variants.Split(string(data), delimiter)
	if err != nil {
		return nil, fmt.Errorf("bundle loader split %s: %w", rel, err)
	}
	ordinal, err := variants.SelectOrdinal(len(segments), policy)
	if err != nil {
		return nil, fmt.Errorf("bundle loader select %s: %w", rel, err)
	}
	selected := segments[ordinal]

	meta, body, err := ParseFrontMatter([]byte(selected))
	if err != nil {
		return nil, fmt.Errorf("bundle loader parse %s: %w", rel, err)
	}

	sum := sha256.Sum256(data)

	doc := &interfaces.Document{
		FilePath:        rel,
		FrontMatter:     meta,
		Body:            body,
		SelectedOrdinal: ordinal,
		VariantCount:    len(segments),
		LastModified:    info.ModTime(),
		Checksum:        sum[:],
	}

	return &Result{
		Document: doc,
		Variants: segments,
	}, nil
}

// LoadDirectory discovers bundle files under dir and returns parsed
// documents sorted by file path.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts Params) ([]*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.Clean(root)

	var results []*Result

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.shouldRecurse(root, path, opts.Recursive) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.matchesPattern(rel, opts.Pattern) {
			return nil
		}

		result, err := l.LoadFile(ctx, rel, opts)
		if err != nil {
			return err
		}
		results = append(results, result)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Document.FilePath < results[j].Document.FilePath
	})

	return results, nil
}

func (l *Loader) shouldRecurse(root, current string, override *bool) bool {
	recursive := l.recursive
	if override != nil {
		recursive = *override
	}
	if recursive {
		return true
	}
	// If recursion is disabled, only walk the root directory.
	return filepath.Clean(root) == filepath.Clean(current)
}

func (l *Loader) matchesPattern(path string, override string) bool {
	pattern := override
	if strings.TrimSpace(pattern) == "" {
		pattern = l.pattern
	}
	// Normalise to slash as fs.WalkDir returns slash-separated paths for DirFS.
	pattern = filepath.ToSlash(pattern)
	if strings.Contains(pattern, "**") {
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	var target string
	if strings.Contains(pattern, "/") {
		target = path
	} else {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("bundle loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("bundle loader: make relative %s: %w", path, err)
	}
	return rel, nil
}
