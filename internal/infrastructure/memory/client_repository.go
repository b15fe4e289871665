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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación en memoria de ClientRepository.
type ClientRepo struct {
	s session
}

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.clients[c.ID]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := st.companies[c.CompanyID]; !ok {
			return domain.ErrConflict
		}
		st.clients[c.ID] = *c
		return nil
	})
}

func (r *ClientRepo) GetByID(_ context.Context, id, tenantID string) (*entity.Client, error) {
	var out *entity.Client
	err := r.s.do(func(st *state) error {
		c, ok := st.clients[id]
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

func (r *ClientRepo) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Client, error) {
	var list []*entity.Client
	err := r.s.do(func(st *state) error {
		for _, c := range st.clients {
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

func (r *ClientRepo) CountByTenant(_ context.Context, tenantID string) (int, error) {
	var n int
	err := r.s.do(func(st *state) error {
		n = lo.CountBy(lo.Values(st.clients), func(c entity.Client) bool { return c.TenantID == tenantID })
		return nil
	})
	return n, err
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	return r.s.do(func(st *state) error {
		cur, ok := st.clients[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := tenant.Owns(cur.TenantID, c.TenantID); err != nil {
			return err
		}
		if _, ok := st.companies[c.CompanyID]; !ok {
			return domain.ErrConflict
		}
		upd := *c
		upd.CreatedAt = cur.CreatedAt
		st.clients[c.ID] = upd
		return nil
	})
}

func (r *ClientRepo) Delete(_ context.Context, id, tenantID string) error {
	return r.s.do(func(st *state) error {
		cur, ok := st.clients[id]
		if !ok {
			return domain.ErrNotFound
		}
		if err := tenant.Owns(cur.TenantID, tenantID); err != nil {
			return err
		}
		if lo.SomeBy(lo.Values(st.invoices), func(i entity.Invoice) bool { return i.ClientID == id }) {
			return domain.ErrConflict
		}
		delete(st.clients, id)
		return nil
	})
}
