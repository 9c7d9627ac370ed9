package catalog

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/catalog"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo catalog.ProductRepository
	eventBus    shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, eventBus shared.EventPublisher) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		eventBus:    eventBus,
	}
}

// Create creates a new product in the scope's company
func (s *ProductService) Create(ctx context.Context, scope shared.Scope, req CreateProductRequest) (*ProductResponse, error) {
	if scope.All {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Creating a product requires a company scope")
	}

	existing, err := s.productRepo.FindByCode(ctx, scope.CompanyID, req.Code)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this code already exists")
	}

	product, err := catalog.NewProduct(scope.CompanyID, req.Code, req.Name, req.UnitPrice)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if !req.VATRate.IsZero() {
		if err := product.SetPricing(req.UnitPrice, req.VATRate); err != nil {
			return nil, err
		}
	}
	if req.Unit != "" {
		if err := product.SetUnit(req.Unit); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, product)

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID within the scope
func (s *ProductService) GetByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, scope shared.Scope, filter ListFilter) ([]ProductResponse, int64, error) {
	domainFilter := buildFilter(filter)

	var products []catalog.Product
	var err error
	if filter.ActiveOnly {
		products, err = s.productRepo.FindActive(ctx, scope, domainFilter)
	} else {
		products, err = s.productRepo.FindAll(ctx, scope, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, scope, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, scope shared.Scope, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		description := product.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.UnitPrice != nil || req.VATRate != nil {
		unitPrice := product.UnitPrice
		vatRate := product.VATRate
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}
		if req.VATRate != nil {
			vatRate = *req.VATRate
		}
		if err := product.SetPricing(unitPrice, vatRate); err != nil {
			return nil, err
		}
	}

	if req.Unit != nil {
		if err := product.SetUnit(*req.Unit); err != nil {
			return nil, err
		}
	}

	if req.Active != nil && *req.Active != product.Active {
		if *req.Active {
			err = product.Activate()
		} else {
			err = product.Deactivate()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product within the scope. Documents that referenced it
// keep their line-item snapshots.
func (s *ProductService) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, scope, id)
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventBus == nil {
		return
	}
	for _, event := range product.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	product.ClearDomainEvents()
}

func buildFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
