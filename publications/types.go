package publications

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Publication records which variant of a bundle was selected and published.
// One row exists per bundle path; repeated publishes update the row in place
// thanks to deterministic IDs derived from the path.
type Publication struct {
	bun.BaseModel `bun:"table:publications,alias:p"`

	ID              uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Path            string     `bun:"path,notnull" json:"path"`
	Slug            string     `bun:"slug,notnull" json:"slug"`
	Title           string     `bun:"title" json:"title"`
	SelectedOrdinal int        `bun:"selected_ordinal,notnull" json:"selected_ordinal"`
	VariantCount    int        `bun:"variant_count,notnull" json:"variant_count"`
	Checksum        []byte     `bun:"checksum,notnull" json:"checksum"`
	PublishedAt     time.Time  `bun:"published_at,nullzero,default:current_timestamp" json:"published_at"`
	CreatedAt       time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time  `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	DeletedAt       *time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
}
