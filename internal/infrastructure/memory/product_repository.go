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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s session
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := st.companies[p.CompanyID]; !ok {
			return domain.ErrConflict
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id, tenantID string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if err := tenant.Owns(p.TenantID, tenantID); err != nil {
			return err
		}
		out = &p
		return nil
	})
	return out, err
}

func (r *ProductRepo) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.s.do(func(st *state) error {
		for _, p := range st.products {
			if p.TenantID == tenantID {
				p := p
				list = append(list, &p)
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

func (r *ProductRepo) CountByTenant(_ context.Context, tenantID string) (int, error) {
	var n int
	err := r.s.do(func(st *state) error {
		n = lo.CountBy(lo.Values(st.products), func(p entity.Product) bool { return p.TenantID == tenantID })
		return nil
	})
	return n, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.s.do(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := tenant.Owns(cur.TenantID, p.TenantID); err != nil {
			return err
		}
		if _, ok := st.companies[p.CompanyID]; !ok {
			return domain.ErrConflict
		}
		upd := *p
		upd.CreatedAt = cur.CreatedAt
		st.products[p.ID] = upd
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id, tenantID string) error {
	return r.s.do(func(st *state) error {
		cur, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		if err := tenant.Owns(cur.TenantID, tenantID); err != nil {
			return err
		}
		delete(st.products, id)
		return nil
	})
}
