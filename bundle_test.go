package bundle_test

import (
	"context"
	"errors"
	"testing"

	bundle "github.com/goliatone/go-bundle"
	"github.com/goliatone/go-bundle/pkg/interfaces"
	"github.com/goliatone/go-bundle/pkg/testsupport"
	"github.com/goliatone/go-bundle/publications"
)

func TestSplitSelectFacade(t *testing.T) {
	raw := "draft" + bundle.DefaultDelimiter + "final"

	segments, err := bundle.Split(raw, bundle.DefaultDelimiter)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	selected, err := bundle.Select(segments, bundle.DefaultPolicy())
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if selected != "final" {
		t.Fatalf("expected last variant, got %q", selected)
	}

	if bundle.Join(segments, bundle.DefaultDelimiter) != raw {
		t.Fatalf("expected Join to reconstruct the input")
	}
}

func TestModuleLoadsAndPublishes(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteBundle(t, dir, "guide.md", bundle.DefaultDelimiter,
		"---\ntitle: Guide v1\n---\nfirst\n",
		"---\ntitle: Guide v2\n---\nsecond\n",
	)

	cfg := bundle.DefaultConfig()
	cfg.Loader.ContentDir = dir
	cfg.Features.Publications = true

	repo := publications.NewMemoryPublicationRepository()
	module, err := bundle.New(cfg, bundle.WithPublicationRepository(repo))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := context.Background()

	doc, err := module.Bundles().Load(ctx, "guide.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.SelectedOrdinal != 1 || doc.VariantCount != 2 {
		t.Fatalf("unexpected selection: ordinal %d of %d", doc.SelectedOrdinal, doc.VariantCount)
	}
	if doc.FrontMatter.Title != "Guide v2" {
		t.Fatalf("expected last variant frontmatter, got %q", doc.FrontMatter.Title)
	}

	record, err := module.Publications().Record(ctx, publications.RecordRequest{
		Path:            doc.FilePath,
		Title:           doc.FrontMatter.Title,
		SelectedOrdinal: doc.SelectedOrdinal,
		VariantCount:    doc.VariantCount,
		Checksum:        doc.Checksum,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if record.Path != "guide.md" {
		t.Fatalf("unexpected recorded path %q", record.Path)
	}
}

func TestModuleRejectsInvalidConfig(t *testing.T) {
	cfg := bundle.DefaultConfig()
	cfg.Delimiter = ""

	if _, err := bundle.New(cfg); !errors.Is(err, bundle.ErrConfigDelimiterRequired) {
		t.Fatalf("expected ErrConfigDelimiterRequired, got %v", err)
	}
}

func TestModuleLoaderDisabled(t *testing.T) {
	cfg := bundle.DefaultConfig()
	cfg.Features.Loader = false

	module, err := bundle.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if module.Bundles() != nil {
		t.Fatal("expected nil bundle service when loader is disabled")
	}
}
