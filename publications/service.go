package publications

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-bundle/internal/identity"
	"github.com/goliatone/go-bundle/internal/logging"
	"github.com/goliatone/go-bundle/pkg/interfaces"
	"github.com/google/uuid"
)

// Repository is the storage contract the publications service depends on.
// BunPublicationRepository and MemoryPublicationRepository both satisfy it.
type Repository interface {
	Create(ctx context.Context, record *Publication) (*Publication, error)
	Upsert(ctx context.Context, record *Publication) (*Publication, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Publication, error)
	GetByPath(ctx context.Context, path string) (*Publication, error)
	List(ctx context.Context) ([]*Publication, error)
	Delete(ctx context.Context, record *Publication) error
}

// Service exposes publication record use cases.
type Service interface {
	Record(ctx context.Context, req RecordRequest) (*Publication, error)
	Get(ctx context.Context, id uuid.UUID) (*Publication, error)
	GetByPath(ctx context.Context, path string) (*Publication, error)
	List(ctx context.Context) ([]*Publication, error)
	Unpublish(ctx context.Context, path string) error
}

// RecordRequest captures the information required to record a publication.
type RecordRequest struct {
	Path            string
	Slug            string
	Title           string
	SelectedOrdinal int
	VariantCount    int
	Checksum        []byte
	PublishedAt     *time.Time
}

type service struct {
	repo   Repository
	logger interfaces.Logger
}

// NewService constructs a publications service over the supplied repository.
// A nil logger falls back to the no-op implementation.
func NewService(repo Repository, logger interfaces.Logger) Service {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{repo: repo, logger: logger}
}

// Record stores (or refreshes) the publication row for a bundle path. The
// record ID is derived deterministically from the path so repeated publishes
// update in place.
func (s *service) Record(ctx context.Context, req RecordRequest) (*Publication, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return nil, ErrPathRequired
	}
	if len(req.Checksum) == 0 {
		return nil, ErrChecksumRequired
	}
	if req.SelectedOrdinal < 0 || req.SelectedOrdinal >= req.VariantCount {
		return nil, ErrOrdinalInvalid
	}

	slugValue, err := resolveSlug(req.Slug, req.Title, path)
	if err != nil {
		return nil, err
	}

	publishedAt := time.Now().UTC()
	if req.PublishedAt != nil {
		publishedAt = req.PublishedAt.UTC()
	}

	record := &Publication{
		ID:              identity.PublicationUUID(path),
		Path:            path,
		Slug:            slugValue,
		Title:           strings.TrimSpace(req.Title),
		SelectedOrdinal: req.SelectedOrdinal,
		VariantCount:    req.VariantCount,
		Checksum:        append([]byte(nil), req.Checksum...),
		PublishedAt:     publishedAt,
	}

	stored, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}

	logging.WithBundleContext(s.logger, path, stored.SelectedOrdinal, stored.VariantCount).
		Info("publication.recorded", "slug", stored.Slug)
	return stored, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Publication, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByPath(ctx context.Context, path string) (*Publication, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, ErrPathRequired
	}
	return s.repo.GetByPath(ctx, trimmed)
}

func (s *service) List(ctx context.Context) ([]*Publication, error) {
	return s.repo.List(ctx)
}

// Unpublish removes the publication row for a bundle path.
func (s *service) Unpublish(ctx context.Context, path string) error {
	record, err := s.GetByPath(ctx, path)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, record); err != nil {
		return err
	}
	s.logger.Info("publication.removed", "path", record.Path)
	return nil
}

func resolveSlug(explicit, title, path string) (string, error) {
	candidate := strings.TrimSpace(explicit)
	if candidate != "" {
		if !IsValidSlug(candidate) {
			return "", ErrSlugInvalid
		}
		return candidate, nil
	}

	source := strings.TrimSpace(title)
	if source == "" {
		source = stem(path)
	}
	return NormalizeSlug(source)
}

// stem strips directory and extension from a bundle path, leaving a
// slug-able base name.
func stem(path string) string {
	base := path
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}
