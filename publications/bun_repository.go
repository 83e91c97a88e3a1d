package publications

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunPublicationRepository adapts the generic bun repository to the
// Repository contract used by the publications service.
type BunPublicationRepository struct {
	repo repository.Repository[*Publication]
}

// NewBunPublicationRepository constructs an uncached bun repository.
func NewBunPublicationRepository(db *bun.DB) *BunPublicationRepository {
	return NewBunPublicationRepositoryWithCache(db, nil, nil)
}

// NewBunPublicationRepositoryWithCache constructs a repository with optional
// read caching. Passing nil for either cache collaborator disables caching.
func NewBunPublicationRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPublicationRepository {
	base := NewPublicationRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunPublicationRepository{repo: wrapped}
}

func (r *BunPublicationRepository) Create(ctx context.Context, record *Publication) (*Publication, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("publication repository create: %w", err)
	}
	return created, nil
}

// Upsert stores the record, updating the existing row when one already
// exists for the same ID.
func (r *BunPublicationRepository) Upsert(ctx context.Context, record *Publication) (*Publication, error) {
	_, err := r.repo.GetByID(ctx, record.ID.String())
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return r.Create(ctx, record)
		}
		return nil, mapRepositoryError(err, "publication", record.ID.String())
	}
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("publication repository upsert: %w", err)
	}
	return updated, nil
}

func (r *BunPublicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*Publication, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "publication", id.String())
	}
	return result, nil
}

func (r *BunPublicationRepository) GetByPath(ctx context.Context, path string) (*Publication, error) {
	result, err := r.repo.GetByIdentifier(ctx, path)
	if err != nil {
		return nil, mapRepositoryError(err, "publication", path)
	}
	return result, nil
}

func (r *BunPublicationRepository) List(ctx context.Context) ([]*Publication, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunPublicationRepository) Delete(ctx context.Context, record *Publication) error {
	if err := r.repo.Delete(ctx, record); err != nil {
		return mapRepositoryError(err, "publication", record.Path)
	}
	return nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
