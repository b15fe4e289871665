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

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo        repository.ClientRepository
	companyRepo repository.CompanyRepository
	now         func() time.Time
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, companyRepo repository.CompanyRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo, companyRepo: companyRepo, now: utcNow}
}

// Create crea un cliente asociado a una empresa del mismo tenant.
func (uc *ClientUseCase) Create(ctx context.Context, tenantID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID, tenantID)
	if err := tenant.Guard(company, err, tenantID); err != nil {
		return nil, err
	}
	now := uc.now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		CompanyID: company.ID,
		Name:      name,
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		Country:   strings.TrimSpace(in.Country),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return dto.ClientFromEntity(client), nil
}

func (uc *ClientUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id, tenantID)
	if err := tenant.Guard(client, err, tenantID); err != nil {
		return nil, err
	}
	return dto.ClientFromEntity(client), nil
}

func (uc *ClientUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.ListResponse[dto.ClientResponse], error) {
	page.DefaultPage()
	list, err := uc.repo.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *dto.ClientFromEntity(c))
	}
	return &dto.ListResponse[dto.ClientResponse]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update aplica los campos enviados. Cambiar de empresa exige que la nueva sea del tenant.
func (uc *ClientUseCase) Update(ctx context.Context, tenantID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, id, tenantID)
	if err := tenant.Guard(client, err, tenantID); err != nil {
		return nil, err
	}
	if in.CompanyID != nil && *in.CompanyID != client.CompanyID {
		company, err := uc.companyRepo.GetByID(ctx, *in.CompanyID, tenantID)
		if err := tenant.Guard(company, err, tenantID); err != nil {
			return nil, err
		}
		client.CompanyID = company.ID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "el nombre no puede quedar vacío")
		}
		client.Name = name
	}
	patchString(&client.Email, in.Email)
	patchString(&client.Phone, in.Phone)
	patchString(&client.Address, in.Address)
	patchString(&client.City, in.City)
	patchString(&client.Country, in.Country)
	client.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return dto.ClientFromEntity(client), nil
}

// Delete elimina el cliente. domain.ErrConflict si tiene facturas.
func (uc *ClientUseCase) Delete(ctx context.Context, tenantID, id string) error {
	return uc.repo.Delete(ctx, id, tenantID)
}
