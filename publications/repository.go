package publications

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewPublicationRepository creates the bun-backed repository for Publication
// records. Publications are addressed by path as their natural identifier.
func NewPublicationRepository(db *bun.DB) repository.Repository[*Publication] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Publication]{
		NewRecord: func() *Publication { return &Publication{} },
		GetID: func(p *Publication) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Publication, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "path"
		},
		GetIdentifierValue: func(p *Publication) string {
			if p == nil {
				return ""
			}
			return p.Path
		},
	})
}
