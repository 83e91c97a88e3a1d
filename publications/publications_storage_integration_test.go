package publications_test

import (
	"context"
	"crypto/sha256"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-bundle/pkg/testsupport"
	"github.com/goliatone/go-bundle/publications"
	repocache "github.com/goliatone/go-repository-cache/cache"
)

func TestPublicationsService_WithBunStorageAndCache(t *testing.T) {
	ctx := context.Background()

	bunDB := testsupport.NewBunSQLiteDB(t)
	testsupport.CreatePublicationsTable(t, bunDB)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	repo := publications.NewBunPublicationRepositoryWithCache(bunDB, cacheService, keySerializer)
	svc := publications.NewService(repo, nil)

	checksum := sha256.Sum256([]byte("bundle-v1"))

	created, err := svc.Record(ctx, publications.RecordRequest{
		Path:            "docs/guide.md",
		Title:           "User Guide",
		SelectedOrdinal: 1,
		VariantCount:    2,
		Checksum:        checksum[:],
	})
	if err != nil {
		t.Fatalf("record publication: %v", err)
	}

	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); err != nil {
		t.Fatalf("cached get: %v", err)
	}

	fetched, err := svc.GetByPath(ctx, "docs/guide.md")
	if err != nil {
		t.Fatalf("get by path: %v", err)
	}
	if fetched.SelectedOrdinal != 1 || fetched.VariantCount != 2 {
		t.Fatalf("unexpected selection detail: %+v", fetched)
	}
}

func TestPublicationsService_BunUpsertUpdatesInPlace(t *testing.T) {
	ctx := context.Background()

	bunDB := testsupport.NewBunSQLiteDB(t)
	testsupport.CreatePublicationsTable(t, bunDB)

	repo := publications.NewBunPublicationRepository(bunDB)
	svc := publications.NewService(repo, nil)

	v1 := sha256.Sum256([]byte("bundle-v1"))
	v2 := sha256.Sum256([]byte("bundle-v2"))

	first, err := svc.Record(ctx, publications.RecordRequest{
		Path:            "docs/guide.md",
		Title:           "User Guide",
		SelectedOrdinal: 0,
		VariantCount:    2,
		Checksum:        v1[:],
	})
	if err != nil {
		t.Fatalf("first record: %v", err)
	}

	second, err := svc.Record(ctx, publications.RecordRequest{
		Path:            "docs/guide.md",
		Title:           "User Guide",
		SelectedOrdinal: 1,
		VariantCount:    2,
		Checksum:        v2[:],
	})
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected deterministic ID, got %s and %s", first.ID, second.ID)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one row after re-publish, got %d", len(all))
	}
}

func TestPublicationsService_BunNotFound(t *testing.T) {
	ctx := context.Background()

	bunDB := testsupport.NewBunSQLiteDB(t)
	testsupport.CreatePublicationsTable(t, bunDB)

	svc := publications.NewService(publications.NewBunPublicationRepository(bunDB), nil)

	if _, err := svc.GetByPath(ctx, "docs/missing.md"); !errors.Is(err, publications.ErrPublicationNotFound) {
		t.Fatalf("expected ErrPublicationNotFound, got %v", err)
	}
}
