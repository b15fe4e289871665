package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/analytics"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/memory"
)

func TestGetStats(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	company := &entity.Company{ID: uuid.NewString(), TenantID: "t1", Name: "A", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Companies().Create(ctx, company))
	client := &entity.Client{ID: uuid.NewString(), TenantID: "t1", CompanyID: company.ID, Name: "B", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Clients().Create(ctx, client))

	add := func(number, status, total string) {
		amount := decimal.RequireFromString(total)
		require.NoError(t, store.Invoices().Create(ctx, &entity.Invoice{
			ID: uuid.NewString(), TenantID: "t1", InvoiceNumber: number,
			ClientID: client.ID, CompanyID: company.ID,
			Subtotal: amount, Tax: decimal.Zero, Total: amount,
			Status: status, IssueDate: now, DueDate: now, Template: entity.TemplateModern,
			CreatedAt: now, UpdatedAt: now,
		}))
	}
	add("1", entity.InvoiceStatusPaid, "100")
	add("2", entity.InvoiceStatusPaid, "50.50")
	add("3", entity.InvoiceStatusPending, "30")
	add("4", entity.InvoiceStatusOverdue, "20")

	uc := analytics.NewDashboardUseCase(store.Companies(), store.Clients(), store.Products(), store.Invoices())
	got, err := uc.GetStats(ctx, "t1")
	require.NoError(t, err)

	assert.Equal(t, 1, got.TotalCompanies)
	assert.Equal(t, 1, got.TotalClients)
	assert.Equal(t, 0, got.TotalProducts)
	assert.Equal(t, 4, got.TotalInvoices)
	assert.Equal(t, 2, got.PaidInvoices)
	assert.Equal(t, 1, got.PendingInvoices)
	assert.Equal(t, 1, got.OverdueInvoices)
	assert.True(t, decimal.RequireFromString("150.50").Equal(got.TotalRevenue), got.TotalRevenue.String())
	assert.True(t, decimal.NewFromInt(50).Equal(got.PendingAmount), got.PendingAmount.String())

	empty, err := uc.GetStats(ctx, "t2")
	require.NoError(t, err)
	assert.Zero(t, empty.TotalInvoices)
	assert.True(t, empty.TotalRevenue.IsZero())
}
