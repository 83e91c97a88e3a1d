package main

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/goliatone/go-bundle/cmd/bundle/internal/bootstrap"
	"github.com/goliatone/go-bundle/internal/logging"
	"github.com/goliatone/go-bundle/pkg/interfaces"
	"github.com/goliatone/go-bundle/publications"
)

type stubBundleService struct {
	loadCalls int
	loadPath  string
	dirCalls  int
	dirPath   string
}

func (s *stubBundleService) Load(_ context.Context, path string, _ interfaces.LoadOptions) (*interfaces.Document, error) {
	s.loadCalls++
	s.loadPath = path
	checksum := sha256.Sum256([]byte("fixture"))
	return &interfaces.Document{
		FilePath:        path,
		FrontMatter:     interfaces.FrontMatter{Title: "Fixture"},
		Body:            []byte("body"),
		SelectedOrdinal: 1,
		VariantCount:    2,
		Checksum:        checksum[:],
	}, nil
}

func (s *stubBundleService) LoadDirectory(_ context.Context, dir string, _ interfaces.LoadOptions) ([]*interfaces.Document, error) {
	s.dirCalls++
	s.dirPath = dir
	return nil, nil
}

func (s *stubBundleService) Render(context.Context, []byte, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubBundleService) RenderDocument(context.Context, *interfaces.Document, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func newStubModule(svc *stubBundleService) *bootstrap.Module {
	repo := publications.NewMemoryPublicationRepository()
	return &bootstrap.Module{
		Service:      svc,
		Publications: publications.NewService(repo, logging.NoOp()),
		Logger:       logging.NoOp(),
	}
}

func TestRunPublishFileUsesCommandHandler(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubBundleService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return newStubModule(svc), nil
	}

	if err := runPublish([]string{
		"-file", "docs/guide.md",
	}); err != nil {
		t.Fatalf("runPublish returned error: %v", err)
	}
	if svc.loadCalls != 1 {
		t.Fatalf("expected load to be called once, got %d", svc.loadCalls)
	}
	if svc.loadPath != "docs/guide.md" {
		t.Fatalf("expected load path docs/guide.md, got %s", svc.loadPath)
	}
}

func TestRunPublishDirectoryUsesCommandHandler(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubBundleService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return newStubModule(svc), nil
	}

	if err := runPublish([]string{
		"-directory", "docs",
	}); err != nil {
		t.Fatalf("runPublish returned error: %v", err)
	}
	if svc.dirCalls != 1 {
		t.Fatalf("expected directory load to be called once, got %d", svc.dirCalls)
	}
	if svc.dirPath != "docs" {
		t.Fatalf("expected directory docs, got %s", svc.dirPath)
	}
}

func TestRunPublishRequiresTarget(t *testing.T) {
	if err := runPublish(nil); err == nil {
		t.Fatal("expected error when neither --file nor --directory is set")
	}
}
