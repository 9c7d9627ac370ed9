package persistence

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// Sales documents store their line items in a shared polymorphic table.
// Items are replaced wholesale on every save: positions are reassigned by
// the domain and the set is small, so a delete plus insert stays simple
// and correct.

// preloadItems adds the line-item preload in position order
func preloadItems(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// saveDocument persists a document header and replaces its line items
func saveDocument(tx *gorm.DB, doc interface{}, docID uuid.UUID, kind sales.DocumentKind, items []sales.LineItem) error {
	if err := tx.Omit(clause.Associations).Save(doc).Error; err != nil {
		return err
	}
	return replaceLineItems(tx, docID, kind, items)
}

// saveDocumentWithLock persists a document header under an optimistic
// version check and replaces its line items
func saveDocumentWithLock(tx *gorm.DB, doc interface{}, docID uuid.UUID, version int, kind sales.DocumentKind, items []sales.LineItem) error {
	result := tx.Model(doc).
		Where("id = ? AND version = ?", docID, version-1).
		Select("*").
		Omit(clause.Associations).
		Updates(doc)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return replaceLineItems(tx, docID, kind, items)
}

func replaceLineItems(tx *gorm.DB, docID uuid.UUID, kind sales.DocumentKind, items []sales.LineItem) error {
	err := tx.Where("document_id = ? AND document_type = ?", docID, string(kind)).
		Delete(&sales.LineItem{}).Error
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}
