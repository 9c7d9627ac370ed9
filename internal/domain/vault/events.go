package vault

import (
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const AggregateTypeVaultDocument = "VaultDocument"

const (
	EventTypeDocumentRegistered = "VaultDocumentRegistered"
)

// DocumentRegisteredEvent is published when a document upload is registered
type DocumentRegisteredEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID `json:"document_id"`
	FileName   string    `json:"file_name"`
	Size       int64     `json:"size"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
}

// NewDocumentRegisteredEvent creates a new DocumentRegisteredEvent
func NewDocumentRegisteredEvent(doc *Document) *DocumentRegisteredEvent {
	return &DocumentRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentRegistered, AggregateTypeVaultDocument, doc.ID, doc.CompanyID),
		DocumentID:      doc.ID,
		FileName:        doc.FileName,
		Size:            doc.Size,
		UploadedBy:      doc.UploadedBy,
	}
}
