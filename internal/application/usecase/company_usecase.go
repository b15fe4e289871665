package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/internal/domain/tenant"
)

// CompanyUseCase aplica reglas de negocio para empresas emisoras.
type CompanyUseCase struct {
	repo repository.CompanyRepository
	now  func() time.Time
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, now: utcNow}
}

// Create crea una nueva empresa del tenant.
func (uc *CompanyUseCase) Create(ctx context.Context, tenantID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	now := uc.now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		Country:   strings.TrimSpace(in.Country),
		Website:   strings.TrimSpace(in.Website),
		TaxID:     strings.TrimSpace(in.TaxID),
		LogoURL:   strings.TrimSpace(in.LogoURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return dto.CompanyFromEntity(company), nil
}

// GetByID obtiene una empresa del tenant. Ajena o inexistente: domain.ErrNotFound.
func (uc *CompanyUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id, tenantID)
	if err := tenant.Guard(company, err, tenantID); err != nil {
		return nil, err
	}
	return dto.CompanyFromEntity(company), nil
}

// List lista empresas del tenant con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.ListResponse[dto.CompanyResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.CompanyFromEntity(c))
	}
	return &dto.ListResponse[dto.CompanyResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update aplica los campos enviados sobre la empresa existente.
func (uc *CompanyUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id, tenantID)
	if err := tenant.Guard(company, err, tenantID); err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "el nombre no puede quedar vacío")
		}
		company.Name = name
	}
	patchString(&company.Email, in.Email)
	patchString(&company.Phone, in.Phone)
	patchString(&company.Address, in.Address)
	patchString(&company.City, in.City)
	patchString(&company.Country, in.Country)
	patchString(&company.Website, in.Website)
	patchString(&company.TaxID, in.TaxID)
	patchString(&company.LogoURL, in.LogoURL)
	company.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return dto.CompanyFromEntity(company), nil
}

// Delete elimina la empresa. domain.ErrConflict si aún tiene clientes, productos o facturas.
func (uc *CompanyUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.repo.Delete(ctx, id, tenantID)
}
