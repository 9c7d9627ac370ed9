package vault

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/domain/vault"
)

// Presigner issues short-lived URLs against the object store. Uploads and
// downloads go straight from the client to storage; the API never proxies
// file bytes.
type Presigner interface {
	// PresignUpload returns a URL accepting a PUT of the object
	PresignUpload(ctx context.Context, key, contentType string) (url string, expiresAt time.Time, err error)

	// PresignDownload returns a URL serving the object with a
	// content-disposition for the given file name
	PresignDownload(ctx context.Context, key, fileName string) (url string, expiresAt time.Time, err error)

	// DeleteObject removes the object from storage
	DeleteObject(ctx context.Context, key string) error
}

// Service handles the company document vault
type Service struct {
	repo      vault.Repository
	presigner Presigner
	eventBus  shared.EventPublisher
}

// NewService creates a new vault service
func NewService(repo vault.Repository, presigner Presigner, eventBus shared.EventPublisher) *Service {
	return &Service{repo: repo, presigner: presigner, eventBus: eventBus}
}

// Register records a pending document and returns a presigned upload URL.
// The client PUTs the bytes to the URL and then confirms the upload.
func (s *Service) Register(ctx context.Context, scope shared.Scope, uploadedBy uuid.UUID, req RegisterDocumentRequest) (*RegisterDocumentResponse, error) {
	if scope.All {
		return nil, shared.NewDomainError("INVALID_SCOPE", "A company must be selected to upload documents")
	}

	doc, err := vault.NewDocument(scope.CompanyID, uploadedBy, req.FileName, req.ContentType, req.Size)
	if err != nil {
		return nil, err
	}

	uploadURL, expiresAt, err := s.presigner.PresignUpload(ctx, doc.StorageKey, doc.ContentType)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_UNAVAILABLE", "Failed to prepare upload")
	}

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, doc)

	return &RegisterDocumentResponse{
		Document:  ToDocumentResponse(doc),
		UploadURL: uploadURL,
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmUpload marks the object as present in storage
func (s *Service) ConfirmUpload(ctx context.Context, scope shared.Scope, id uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := doc.ConfirmUpload(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}
	return ToDocumentResponse(doc), nil
}

// GetByID retrieves a document's metadata
func (s *Service) GetByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return ToDocumentResponse(doc), nil
}

// List retrieves documents with pagination
func (s *Service) List(ctx context.Context, scope shared.Scope, filter ListFilter) (*shared.Paginated[DocumentResponse], error) {
	f := buildFilter(filter)

	docs, err := s.repo.FindAll(ctx, scope, f)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, scope, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToDocumentResponses(docs), total, f.Page, f.PageSize)
	return &result, nil
}

// ListByEntity retrieves documents attached to a business record
func (s *Service) ListByEntity(ctx context.Context, scope shared.Scope, kind string, entityID uuid.UUID) ([]DocumentResponse, error) {
	docs, err := s.repo.FindByEntity(ctx, scope, kind, entityID)
	if err != nil {
		return nil, err
	}
	return ToDocumentResponses(docs), nil
}

// Download returns a presigned download URL for an uploaded document
func (s *Service) Download(ctx context.Context, scope shared.Scope, id uuid.UUID) (*DownloadResponse, error) {
	doc, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if !doc.Uploaded {
		return nil, shared.NewDomainError("NOT_UPLOADED", "Upload has not been confirmed yet")
	}

	url, expiresAt, err := s.presigner.PresignDownload(ctx, doc.StorageKey, doc.FileName)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_UNAVAILABLE", "Failed to prepare download")
	}

	return &DownloadResponse{
		DownloadURL: url,
		FileName:    doc.FileName,
		ExpiresAt:   expiresAt,
	}, nil
}

// Attach links a document to a business record
func (s *Service) Attach(ctx context.Context, scope shared.Scope, id uuid.UUID, req AttachRequest) (*DocumentResponse, error) {
	doc, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := doc.AttachTo(req.EntityKind, req.EntityID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, err
	}
	return ToDocumentResponse(doc), nil
}

// Delete removes the document metadata and its stored object
func (s *Service) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	doc, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		return err
	}

	if doc.Uploaded {
		if err := s.presigner.DeleteObject(ctx, doc.StorageKey); err != nil {
			return shared.NewDomainError("STORAGE_UNAVAILABLE", "Failed to delete stored file")
		}
	}

	return s.repo.Delete(ctx, scope, id)
}

func (s *Service) publishEvents(ctx context.Context, doc *vault.Document) {
	if s.eventBus == nil {
		doc.ClearDomainEvents()
		return
	}
	for _, event := range doc.GetDomainEvents() {
		s.eventBus.Publish(ctx, event)
	}
	doc.ClearDomainEvents()
}

func buildFilter(filter ListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	if filter.EntityKind != "" {
		f.Filters["entity_kind"] = filter.EntityKind
	}
	return f
}
