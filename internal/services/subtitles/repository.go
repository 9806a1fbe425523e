package subtitles

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sublab/subtitle-api/internal/models"
)

// ErrDocumentNotFound indicates no cached document exists for the
// fingerprint.
var ErrDocumentNotFound = errors.New("subtitle document not found")

type Repository struct {
	db *gorm.DB
}

// Ensure Repository implements SubtitleRepository interface
var _ SubtitleRepository = (*Repository)(nil)

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) UpsertDocument(ctx context.Context, doc *models.SubtitleDocument) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "fingerprint"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"language", "title", "content", "filename", "source",
				"segment_count", "duration", "placeholder", "updated_at",
			}),
		}).
		Create(doc).Error
	if err != nil {
		return fmt.Errorf("upserting subtitle document: %w", err)
	}
	return nil
}

func (r *Repository) GetDocumentByFingerprint(ctx context.Context, fingerprint string) (*models.SubtitleDocument, error) {
	var doc models.SubtitleDocument
	if err := r.db.WithContext(ctx).
		Where("fingerprint = ?", fingerprint).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("getting subtitle document: %w", err)
	}
	return &doc, nil
}

func (r *Repository) DeleteDocument(ctx context.Context, fingerprint string) error {
	result := r.db.WithContext(ctx).
		Where("fingerprint = ?", fingerprint).
		Delete(&models.SubtitleDocument{})
	if result.Error != nil {
		return fmt.Errorf("deleting subtitle document: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (r *Repository) CountDocuments(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SubtitleDocument{}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting subtitle documents: %w", err)
	}
	return count, nil
}
