package subtitles

import (
	"context"

	"github.com/sublab/subtitle-api/internal/models"
)

// SubtitleRepository defines the interface for subtitle document persistence
type SubtitleRepository interface {
	UpsertDocument(ctx context.Context, doc *models.SubtitleDocument) error
	GetDocumentByFingerprint(ctx context.Context, fingerprint string) (*models.SubtitleDocument, error)
	DeleteDocument(ctx context.Context, fingerprint string) error
	CountDocuments(ctx context.Context) (int64, error)
}

// SubtitleService defines the business logic interface for the subtitle
// result cache
type SubtitleService interface {
	// Lookup returns a previously generated document for the fingerprint,
	// or nil when the cache has no usable entry.
	Lookup(ctx context.Context, fingerprint, language string) (*models.SubtitleDocument, error)

	// Store saves a generated document. Placeholder documents are stored
	// too but never returned by Lookup.
	Store(ctx context.Context, doc *models.SubtitleDocument) error
}
