package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/invoice"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/internal/domain/tenant"
)

const priceScaleMsg = "el precio admite como máximo 2 decimales"

// ProductUseCase casos de uso CRUD para el catálogo de productos.
type ProductUseCase struct {
	repo        repository.ProductRepository
	companyRepo repository.CompanyRepository
	now         func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, companyRepo repository.CompanyRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, companyRepo: companyRepo, now: utcNow}
}

// Create crea un producto. Unit por defecto "pcs".
func (uc *ProductUseCase) Create(ctx context.Context, tenantID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	verr := &domain.ValidationError{}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		verr.Add("name", "el nombre es obligatorio")
	}
	if in.Price.IsNegative() {
		verr.Add("price", "el precio no puede ser negativo")
	} else if !invoice.FitsScale(in.Price, invoice.StoredScale) {
		verr.Add("price", priceScaleMsg)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID, tenantID)
	if err := tenant.Guard(company, err, tenantID); err != nil {
		return nil, err
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = entity.DefaultProductUnit
	}
	now := uc.now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		CompanyID:   company.ID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    strings.TrimSpace(in.Category),
		Unit:        unit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.ProductFromEntity(product), nil
}

func (uc *ProductUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id, tenantID)
	if err := tenant.Guard(product, err, tenantID); err != nil {
		return nil, err
	}
	return dto.ProductFromEntity(product), nil
}

func (uc *ProductUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.ListResponse[dto.ProductResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ProductFromEntity(p))
	}
	return &dto.ListResponse[dto.ProductResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update aplica los campos enviados. Las facturas ya emitidas conservan su copia.
func (uc *ProductUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id, tenantID)
	if err := tenant.Guard(product, err, tenantID); err != nil {
		return nil, err
	}
	if in.CompanyID != nil && *in.CompanyID != product.CompanyID {
		company, err := uc.companyRepo.GetByID(ctx, *in.CompanyID, tenantID)
		if err := tenant.Guard(company, err, tenantID); err != nil {
			return nil, err
		}
		product.CompanyID = company.ID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "el nombre no puede quedar vacío")
		}
		product.Name = name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.NewValidationError("price", "el precio no puede ser negativo")
		}
		if !invoice.FitsScale(*in.Price, invoice.StoredScale) {
			return nil, domain.NewValidationError("price", priceScaleMsg)
		}
		product.Price = *in.Price
	}
	if in.Unit != nil {
		unit := strings.TrimSpace(*in.Unit)
		if unit == "" {
			unit = entity.DefaultProductUnit
		}
		product.Unit = unit
	}
	patchString(&product.Description, in.Description)
	patchString(&product.Category, in.Category)
	product.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.ProductFromEntity(product), nil
}

func (uc *ProductUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.repo.Delete(ctx, id, tenantID)
}
