// Package analytics contiene los casos de uso de reportes del tenant.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// DashboardUseCase resume la actividad de facturación de un tenant.
type DashboardUseCase struct {
	companyRepo repository.CompanyRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) *DashboardUseCase {
	return &DashboardUseCase{
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
	}
}

// GetStats construye el DashboardStatsDTO del tenant.
//
// Cuatro consultas en paralelo:
//  1. conteo de empresas
//  2. conteo de clientes
//  3. conteo de productos
//  4. facturas agrupadas por estado → ingresos (pagadas), pendiente y conteos
func (uc *DashboardUseCase) GetStats(ctx context.Context, tenantID string) (*dto.DashboardStatsDTO, error) {
	out := &dto.DashboardStatsDTO{TotalRevenue: decimal.Zero, PendingAmount: decimal.Zero}
	var summary []repository.StatusSummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TotalCompanies, err = uc.companyRepo.CountByTenant(gctx, tenantID)
		return wrap("empresas", err)
	})
	g.Go(func() (err error) {
		out.TotalClients, err = uc.clientRepo.CountByTenant(gctx, tenantID)
		return wrap("clientes", err)
	})
	g.Go(func() (err error) {
		out.TotalProducts, err = uc.productRepo.CountByTenant(gctx, tenantID)
		return wrap("productos", err)
	})
	g.Go(func() (err error) {
		summary, err = uc.invoiceRepo.SummarizeByStatus(gctx, tenantID)
		return wrap("facturas", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, s := range summary {
		out.TotalInvoices += s.Count
		switch s.Status {
		case entity.InvoiceStatusPaid:
			out.PaidInvoices = s.Count
			out.TotalRevenue = s.Total
		case entity.InvoiceStatusPending:
			out.PendingInvoices = s.Count
			out.PendingAmount = out.PendingAmount.Add(s.Total)
		case entity.InvoiceStatusOverdue:
			out.OverdueInvoices = s.Count
			out.PendingAmount = out.PendingAmount.Add(s.Total)
		}
	}
	return out, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", what, err)
	}
	return nil
}
