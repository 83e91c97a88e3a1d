package loader

import (
	"bytes"
	"testing"
)

func TestParseFrontMatter(t *testing.T) {
	source := []byte("---\ntitle: Release Notes\nslug: release-notes\ntags:\n  - changelog\n  - release\nversion: 2\n---\n# Notes\n")

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if meta.Title != "Release Notes" {
		t.Fatalf("expected title, got %q", meta.Title)
	}
	if meta.Slug != "release-notes" {
		t.Fatalf("expected slug, got %q", meta.Slug)
	}
	if len(meta.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(meta.Tags))
	}
	if meta.Custom["version"] != 2 {
		t.Fatalf("expected custom version in Custom map, got %#v", meta.Custom)
	}
	if meta.Raw["title"] != "Release Notes" {
		t.Fatalf("expected raw title, got %#v", meta.Raw)
	}
	if !bytes.Contains(body, []byte("# Notes")) {
		t.Fatalf("expected body without frontmatter, got %q", body)
	}
}

func TestParseFrontMatterAbsent(t *testing.T) {
	source := []byte("plain markdown without metadata\n")

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if meta.Title != "" {
		t.Fatalf("expected empty title, got %q", meta.Title)
	}
	if !bytes.Equal(body, source) {
		t.Fatalf("expected body unchanged, got %q", body)
	}
}
