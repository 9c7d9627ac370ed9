package vault

import (
	"strings"
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Maximum accepted file size (bytes)
const MaxFileSize = 100 << 20 // 100 MiB

// Document is a file stored in the company vault. The bytes live in
// object storage under StorageKey; only metadata is kept here.
type Document struct {
	shared.CompanyAggregateRoot
	FileName    string     `gorm:"type:varchar(255);not null"`
	ContentType string     `gorm:"type:varchar(100);not null"`
	Size        int64      `gorm:"not null"`
	StorageKey  string     `gorm:"type:varchar(500);not null;uniqueIndex"`
	UploadedBy  uuid.UUID  `gorm:"type:uuid;not null;index"`
	Uploaded    bool       `gorm:"not null;default:false"` // set once the client confirms the upload
	EntityKind  string     `gorm:"type:varchar(50);index"`
	EntityID    *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "vault_documents"
}

// NewDocument registers a document pending upload. The storage key is
// derived from the company and document IDs so keys never collide.
func NewDocument(companyID, uploadedBy uuid.UUID, fileName, contentType string, size int64) (*Document, error) {
	fileName = sanitizeFileName(fileName)
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if len(fileName) > 255 {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot exceed 255 characters")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if size <= 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "File size must be positive")
	}
	if size > MaxFileSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE", "File exceeds the maximum allowed size")
	}
	if uploadedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Uploader user ID is required")
	}

	doc := &Document{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		FileName:             fileName,
		ContentType:          contentType,
		Size:                 size,
		UploadedBy:           uploadedBy,
	}
	doc.StorageKey = "vault/" + companyID.String() + "/" + doc.ID.String() + "/" + fileName

	doc.AddDomainEvent(NewDocumentRegisteredEvent(doc))

	return doc, nil
}

// ConfirmUpload marks the object as present in storage
func (d *Document) ConfirmUpload() error {
	if d.Uploaded {
		return shared.NewDomainError("ALREADY_UPLOADED", "Upload has already been confirmed")
	}

	d.Uploaded = true
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// AttachTo links the document to a business record (invoice, deal, ...)
func (d *Document) AttachTo(kind string, id uuid.UUID) error {
	if strings.TrimSpace(kind) == "" || id == uuid.Nil {
		return shared.NewDomainError("INVALID_ENTITY", "Entity kind and ID are required")
	}

	d.EntityKind = kind
	d.EntityID = &id
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// sanitizeFileName strips path separators and leading dots so the name
// is safe to embed in a storage key
func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.TrimLeft(name, ".")
}
