package memory

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/internal/domain/tenant"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación en memoria de CompanyRepository.
type CompanyRepo struct {
	s session
}

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.companies[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id, tenantID string) (*entity.Company, error) {
	var out *entity.Company
	err := r.s.do(func(st *state) error {
		c, ok := st.companies[id]
		if !ok {
			return domain.ErrNotFound
		}
		if err := tenant.Owns(c.TenantID, tenantID); err != nil {
			return err
		}
		out = &c
		return nil
	})
	return out, err
}

func (r *CompanyRepo) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Company, error) {
	var list []*entity.Company
	err := r.s.do(func(st *state) error {
		for _, c := range st.companies {
			if c.TenantID == tenantID {
				c := c
				list = append(list, &c)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name != list[j].Name {
			return list[i].Name < list[j].Name
		}
		return list[i].ID < list[j].ID
	})
	return page(list, limit, offset), err
}

func (r *CompanyRepo) CountByTenant(_ context.Context, tenantID string) (int, error) {
	var n int
	err := r.s.do(func(st *state) error {
		n = lo.CountBy(lo.Values(st.companies), func(c entity.Company) bool { return c.TenantID == tenantID })
		return nil
	})
	return n, err
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	return r.s.do(func(st *state) error {
		cur, ok := st.companies[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := tenant.Owns(cur.TenantID, c.TenantID); err != nil {
			return err
		}
		upd := *c
		upd.CreatedAt = cur.CreatedAt
		st.companies[c.ID] = upd
		return nil
	})
}

// Delete falla con ErrConflict si algún cliente, producto o factura referencia la empresa.
func (r *CompanyRepo) Delete(_ context.Context, id, tenantID string) error {
	return r.s.do(func(st *state) error {
		cur, ok := st.companies[id]
		if !ok {
			return domain.ErrNotFound
		}
		if err := tenant.Owns(cur.TenantID, tenantID); err != nil {
			return err
		}
		referenced := lo.SomeBy(lo.Values(st.clients), func(c entity.Client) bool { return c.CompanyID == id }) ||
			lo.SomeBy(lo.Values(st.products), func(p entity.Product) bool { return p.CompanyID == id }) ||
			lo.SomeBy(lo.Values(st.invoices), func(i entity.Invoice) bool { return i.CompanyID == id })
		if referenced {
			return domain.ErrConflict
		}
		delete(st.companies, id)
		return nil
	})
}
