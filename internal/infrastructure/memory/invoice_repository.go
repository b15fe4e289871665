package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/internal/domain/tenant"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación en memoria de InvoiceRepository.
type InvoiceRepo struct {
	s session
}

func (r *InvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	return r.s.do(func(st *state) error {
		if _, ok := st.invoices[inv.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.invoices {
			if other.TenantID == inv.TenantID && other.InvoiceNumber == inv.InvoiceNumber {
				return domain.ErrDuplicate
			}
		}
		if _, ok := st.clients[inv.ClientID]; !ok {
			return domain.ErrConflict
		}
		if _, ok := st.companies[inv.CompanyID]; !ok {
			return domain.ErrConflict
		}
		st.invoices[inv.ID] = *inv
		return nil
	})
}

func (r *InvoiceRepo) CreateItems(_ context.Context, items []*entity.InvoiceItem) error {
	return r.s.do(func(st *state) error {
		for _, it := range items {
			if it.ID == "" {
				it.ID = uuid.New().String()
			}
			if _, ok := st.items[it.ID]; ok {
				return domain.ErrDuplicate
			}
			if _, ok := st.invoices[it.InvoiceID]; !ok {
				return domain.ErrConflict
			}
		}
		for _, it := range items {
			st.items[it.ID] = *it
		}
		return nil
	})
}

func (r *InvoiceRepo) GetByID(_ context.Context, id, tenantID string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.s.do(func(st *state) error {
		inv, err := ownedInvoice(st, id, tenantID)
		if err != nil {
			return err
		}
		out = &inv
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: dentro de RunBilling el mutex del store ya está tomado.
func (r *InvoiceRepo) GetForUpdate(ctx context.Context, id, tenantID string) (*entity.Invoice, error) {
	return r.GetByID(ctx, id, tenantID)
}

func (r *InvoiceRepo) GetByNumber(_ context.Context, tenantID, number string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.s.do(func(st *state) error {
		inv, ok := lo.Find(lo.Values(st.invoices), func(i entity.Invoice) bool {
			return i.TenantID == tenantID && i.InvoiceNumber == number
		})
		if !ok {
			return domain.ErrNotFound
		}
		out = &inv
		return nil
	})
	return out, err
}

func (r *InvoiceRepo) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	err := r.s.do(func(st *state) error {
		for _, inv := range st.invoices {
			if inv.TenantID == tenantID {
				inv := inv
				list = append(list, &inv)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].InvoiceNumber > list[j].InvoiceNumber
	})
	return page(list, limit, offset), err
}

func (r *InvoiceRepo) CountByTenant(_ context.Context, tenantID string) (int, error) {
	var n int
	err := r.s.do(func(st *state) error {
		n = lo.CountBy(lo.Values(st.invoices), func(i entity.Invoice) bool { return i.TenantID == tenantID })
		return nil
	})
	return n, err
}

func (r *InvoiceRepo) ListItems(_ context.Context, invoiceID, tenantID string) ([]*entity.InvoiceItem, error) {
	var list []*entity.InvoiceItem
	err := r.s.do(func(st *state) error {
		if _, err := ownedInvoice(st, invoiceID, tenantID); err != nil {
			return err
		}
		for _, it := range st.items {
			if it.InvoiceID == invoiceID {
				it := it
				list = append(list, &it)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Position != list[j].Position {
			return list[i].Position < list[j].Position
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// Update persiste la cabecera conservando invoice_number, company_id y created_at.
func (r *InvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	return r.s.do(func(st *state) error {
		cur, err := ownedInvoice(st, inv.ID, inv.TenantID)
		if err != nil {
			return err
		}
		if _, ok := st.clients[inv.ClientID]; !ok {
			return domain.ErrConflict
		}
		upd := *inv
		upd.InvoiceNumber = cur.InvoiceNumber
		upd.CompanyID = cur.CompanyID
		upd.CreatedAt = cur.CreatedAt
		st.invoices[inv.ID] = upd
		return nil
	})
}

func (r *InvoiceRepo) DeleteItems(_ context.Context, invoiceID, tenantID string) error {
	return r.s.do(func(st *state) error {
		if _, err := ownedInvoice(st, invoiceID, tenantID); err != nil {
			return err
		}
		deleteItems(st, invoiceID)
		return nil
	})
}

// Delete borra ítems y cabecera dentro del mismo bloqueo.
func (r *InvoiceRepo) Delete(_ context.Context, id, tenantID string) error {
	return r.s.do(func(st *state) error {
		if _, err := ownedInvoice(st, id, tenantID); err != nil {
			return err
		}
		deleteItems(st, id)
		delete(st.invoices, id)
		return nil
	})
}

func (r *InvoiceRepo) SummarizeByStatus(_ context.Context, tenantID string) ([]repository.StatusSummary, error) {
	byStatus := make(map[string]*repository.StatusSummary)
	err := r.s.do(func(st *state) error {
		for _, inv := range st.invoices {
			if inv.TenantID != tenantID {
				continue
			}
			s, ok := byStatus[inv.Status]
			if !ok {
				s = &repository.StatusSummary{Status: inv.Status, Total: decimal.Zero}
				byStatus[inv.Status] = s
			}
			s.Count++
			s.Total = s.Total.Add(inv.Total)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.StatusSummary, 0, len(byStatus))
	for _, s := range byStatus {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, nil
}

func ownedInvoice(st *state, id, tenantID string) (entity.Invoice, error) {
	inv, ok := st.invoices[id]
	if !ok {
		return entity.Invoice{}, domain.ErrNotFound
	}
	if err := tenant.Owns(inv.TenantID, tenantID); err != nil {
		return entity.Invoice{}, err
	}
	return inv, nil
}

func deleteItems(st *state, invoiceID string) {
	for id, it := range st.items {
		if it.InvoiceID == invoiceID {
			delete(st.items, id)
		}
	}
}
