package vault

import (
	"time"

	"github.com/google/uuid"

	"github.com/crmsuite/backend/internal/domain/vault"
)

// RegisterDocumentRequest carries metadata for a new document
type RegisterDocumentRequest struct {
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size" binding:"required,gt=0"`
}

// AttachRequest links a document to a business record
type AttachRequest struct {
	EntityKind string    `json:"entity_kind" binding:"required,oneof=company contact lead deal quote order invoice delivery_note"`
	EntityID   uuid.UUID `json:"entity_id" binding:"required"`
}

// DocumentResponse is the API representation of a vault document
type DocumentResponse struct {
	ID          uuid.UUID  `json:"id"`
	FileName    string     `json:"file_name"`
	ContentType string     `json:"content_type"`
	Size        int64      `json:"size"`
	Uploaded    bool       `json:"uploaded"`
	EntityKind  string     `json:"entity_kind,omitempty"`
	EntityID    *uuid.UUID `json:"entity_id,omitempty"`
	UploadedBy  uuid.UUID  `json:"uploaded_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RegisterDocumentResponse pairs the document with its one-time upload URL
type RegisterDocumentResponse struct {
	Document  *DocumentResponse `json:"document"`
	UploadURL string            `json:"upload_url"`
	ExpiresAt time.Time         `json:"expires_at"`
}

// DownloadResponse carries a one-time download URL
type DownloadResponse struct {
	DownloadURL string    `json:"download_url"`
	FileName    string    `json:"file_name"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ToDocumentResponse converts a domain document to a response DTO
func ToDocumentResponse(doc *vault.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:          doc.ID,
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		Size:        doc.Size,
		Uploaded:    doc.Uploaded,
		EntityKind:  doc.EntityKind,
		EntityID:    doc.EntityID,
		UploadedBy:  doc.UploadedBy,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

// ToDocumentResponses converts a slice of documents
func ToDocumentResponses(docs []vault.Document) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = *ToDocumentResponse(&docs[i])
	}
	return responses
}

// ListFilter holds list query parameters for vault documents
type ListFilter struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir"`
	Search     string `form:"search"`
	EntityKind string `form:"entity_kind"`
}
