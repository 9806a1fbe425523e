package subtitles

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/sublab/subtitle-api/internal/models"
)

type Service struct {
	repo SubtitleRepository
}

// Ensure Service implements SubtitleService interface
var _ SubtitleService = (*Service)(nil)

func NewService(repo SubtitleRepository) *Service {
	return &Service{repo: repo}
}

// Lookup returns the cached document for a fingerprint and language.
// Placeholder documents and documents generated for another language are
// not returned; the caller regenerates in that case.
func (s *Service) Lookup(ctx context.Context, fingerprint, language string) (*models.SubtitleDocument, error) {
	if fingerprint == "" {
		return nil, nil
	}

	doc, err := s.repo.GetDocumentByFingerprint(ctx, fingerprint)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if doc.Placeholder || doc.Language != language {
		return nil, nil
	}
	log.Printf("[DEBUG] subtitle cache hit for %s (%s)", fingerprint, language)
	return doc, nil
}

// Store persists a generated document, replacing any previous entry for
// the same fingerprint.
func (s *Service) Store(ctx context.Context, doc *models.SubtitleDocument) error {
	if doc.Fingerprint == "" {
		return fmt.Errorf("subtitle document has no fingerprint")
	}
	if doc.Content == "" {
		return fmt.Errorf("subtitle document has no content")
	}
	return s.repo.UpsertDocument(ctx, doc)
}
