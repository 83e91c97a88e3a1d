package loader

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-bundle/pkg/interfaces"
	"github.com/goliatone/go-bundle/pkg/testsupport"
	"github.com/goliatone/go-bundle/variants"
)

const testDelimiter = variants.DefaultDelimiter

func TestServiceLoadSelectsLastVariant(t *testing.T) {
	svc := newTestService(t)

	doc, err := svc.Load(context.Background(), "guide.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.SelectedOrdinal != 2 {
		t.Fatalf("expected ordinal 2, got %d", doc.SelectedOrdinal)
	}
	if doc.VariantCount != 3 {
		t.Fatalf("expected 3 variants, got %d", doc.VariantCount)
	}
	if doc.FrontMatter.Title != "Guide v3" {
		t.Fatalf("expected frontmatter from selected variant, got %q", doc.FrontMatter.Title)
	}
	if !bytes.Contains(doc.Body, []byte("third revision")) {
		t.Fatalf("expected body from last variant, got %q", doc.Body)
	}
	if len(doc.BodyHTML) == 0 {
		t.Fatalf("expected BodyHTML to be populated")
	}
	if len(doc.Checksum) == 0 {
		t.Fatalf("expected checksum to be populated")
	}
}

func TestServiceLoadPolicyOverride(t *testing.T) {
	svc := newTestService(t)

	doc, err := svc.Load(context.Background(), "guide.md", interfaces.LoadOptions{Policy: "first"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.SelectedOrdinal != 0 {
		t.Fatalf("expected ordinal 0, got %d", doc.SelectedOrdinal)
	}
	if doc.FrontMatter.Title != "Guide v1" {
		t.Fatalf("expected first variant frontmatter, got %q", doc.FrontMatter.Title)
	}
}

func TestServiceLoadIndexOutOfRange(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Load(context.Background(), "guide.md", interfaces.LoadOptions{Policy: "index:9"})
	if !errors.Is(err, variants.ErrOrdinalOutOfRange) {
		t.Fatalf("expected ErrOrdinalOutOfRange, got %v", err)
	}
}

func TestServiceLoadSingleVariantFile(t *testing.T) {
	svc := newTestService(t)

	doc, err := svc.Load(context.Background(), "plain.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.VariantCount != 1 {
		t.Fatalf("expected 1 variant, got %d", doc.VariantCount)
	}
	if doc.SelectedOrdinal != 0 {
		t.Fatalf("expected ordinal 0, got %d", doc.SelectedOrdinal)
	}
	if doc.FrontMatter.Title != "Plain" {
		t.Fatalf("expected plain frontmatter, got %q", doc.FrontMatter.Title)
	}
}

func TestServiceLoadDirectory(t *testing.T) {
	svc := newTestService(t)

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	for i := 1; i < len(docs); i++ {
		if docs[i-1].FilePath >= docs[i].FilePath {
			t.Fatalf("expected documents sorted by path: %s before %s", docs[i-1].FilePath, docs[i].FilePath)
		}
	}
}

func TestServiceLoadDirectoryNonRecursiveOverride(t *testing.T) {
	svc := newTestService(t)

	no := false
	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{Recursive: &no})
	if err != nil {
		t.Fatalf("LoadDirectory override: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	for _, doc := range docs {
		if doc.FilePath == "notes/todo.md" {
			t.Fatalf("expected nested document to be skipped")
		}
	}
}

func TestServiceLoadDelimiterOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "<|RELATED_DOC_SEP-0a1b2c3d4e5f|>"
	testsupport.WriteBundle(t, dir, "alt.md", custom,
		"old rendering",
		"new rendering",
	)

	svc := mustService(t, dir)

	doc, err := svc.Load(context.Background(), "alt.md", interfaces.LoadOptions{Delimiter: custom})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.VariantCount != 2 {
		t.Fatalf("expected 2 variants, got %d", doc.VariantCount)
	}
	if !bytes.Contains(doc.Body, []byte("new rendering")) {
		t.Fatalf("expected last variant body, got %q", doc.Body)
	}
}

func TestLoaderContextCancellation(t *testing.T) {
	svc := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Load(ctx, "guide.md", interfaces.LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func newTestService(tb testing.TB) *Service {
	tb.Helper()

	dir := tb.TempDir()

	testsupport.WriteBundle(tb, dir, "guide.md", testDelimiter,
		"---\ntitle: Guide v1\n---\nfirst revision\n",
		"---\ntitle: Guide v2\n---\nsecond revision\n",
		"---\ntitle: Guide v3\nslug: guide\n---\nthird revision\n",
	)
	testsupport.WriteBundle(tb, dir, "plain.md", testDelimiter,
		"---\ntitle: Plain\n---\nonly rendering\n",
	)
	testsupport.WriteBundle(tb, dir, "notes/todo.md", testDelimiter,
		"initial\n",
		"revised\n",
	)

	return mustService(tb, dir)
}

func mustService(tb testing.TB, dir string) *Service {
	tb.Helper()

	svc, err := NewService(ServiceConfig{
		BasePath:  dir,
		Pattern:   "*.md",
		Recursive: true,
	}, nil)
	if err != nil {
		tb.Fatalf("NewService: %v", err)
	}
	return svc
}
