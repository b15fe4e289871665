package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalCompanies  int             `json:"total_companies"`
	TotalClients    int             `json:"total_clients"`
	TotalProducts   int             `json:"total_products"`
	TotalInvoices   int             `json:"total_invoices"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"` // suma de facturas pagadas
	PendingAmount   decimal.Decimal `json:"pending_amount"` // pendientes + vencidas
	PaidInvoices    int             `json:"paid_invoices"`
	PendingInvoices int             `json:"pending_invoices"`
	OverdueInvoices int             `json:"overdue_invoices"`
}
