package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmsuite/backend/internal/domain/sales"
)

// GormNumberSequenceRepository allocates document numbers from the
// document_sequences table. The upsert increments atomically, so
// concurrent allocations for the same company, kind, and year never
// hand out the same number.
type GormNumberSequenceRepository struct {
	db *gorm.DB
}

// NewGormNumberSequenceRepository creates a new GormNumberSequenceRepository
func NewGormNumberSequenceRepository(db *gorm.DB) *GormNumberSequenceRepository {
	return &GormNumberSequenceRepository{db: db}
}

// Next atomically allocates the next sequence number
func (r *GormNumberSequenceRepository) Next(ctx context.Context, companyID uuid.UUID, kind sales.DocumentKind, year int) (int, error) {
	var seq int
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO document_sequences (company_id, kind, year, seq)
		VALUES (?, ?, ?, 1)
		ON CONFLICT (company_id, kind, year)
		DO UPDATE SET seq = document_sequences.seq + 1
		RETURNING seq`,
		companyID, string(kind), year,
	).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}

var _ sales.NumberSequenceRepository = (*GormNumberSequenceRepository)(nil)
