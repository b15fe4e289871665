// Package memory implementa los repositorios en memoria, con la misma semántica
// observable que el backend PostgreSQL. Útil para desarrollo local y tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

var _ billing.BillingTxRunner = (*Store)(nil)

// Store contiene todas las tablas detrás de un único mutex.
// RunBilling mantiene el mutex durante toda la transacción, por lo que las
// transacciones son serializables y el contador nunca se entrega dos veces.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

type state struct {
	companies map[string]entity.Company
	clients   map[string]entity.Client
	products  map[string]entity.Product
	invoices  map[string]entity.Invoice
	items     map[string]entity.InvoiceItem
	settings  map[string]entity.InvoiceSettings // por tenant
}

func newState() *state {
	return &state{
		companies: make(map[string]entity.Company),
		clients:   make(map[string]entity.Client),
		products:  make(map[string]entity.Product),
		invoices:  make(map[string]entity.Invoice),
		items:     make(map[string]entity.InvoiceItem),
		settings:  make(map[string]entity.InvoiceSettings),
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		companies: cloneMap(s.companies),
		clients:   cloneMap(s.clients),
		products:  cloneMap(s.products),
		invoices:  cloneMap(s.invoices),
		items:     cloneMap(s.items),
		settings:  cloneMap(s.settings),
	}
}

// session da acceso al estado: el compartido (tomando el mutex) o la copia de una tx en curso.
type session struct {
	store *Store
	tx    *state
}

func (x session) do(fn func(st *state) error) error {
	if x.tx != nil {
		return fn(x.tx)
	}
	x.store.mu.Lock()
	defer x.store.mu.Unlock()
	return fn(x.store.st)
}

func (s *Store) shared() session { return session{store: s} }

// Companies devuelve el repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s.shared()} }

// Clients devuelve el repositorio de clientes.
func (s *Store) Clients() *ClientRepo { return &ClientRepo{s: s.shared()} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s.shared()} }

// Invoices devuelve el repositorio de facturas fuera de transacción.
func (s *Store) Invoices() *InvoiceRepo { return &InvoiceRepo{s: s.shared()} }

// Settings devuelve el repositorio de configuración de numeración fuera de transacción.
func (s *Store) Settings() *InvoiceSettingsRepo { return &InvoiceSettingsRepo{s: s.shared()} }

// RunBilling ejecuta fn sobre una copia del estado. Si fn termina sin error la copia
// reemplaza al estado compartido; si no, se descarta completa.
// Los repos recibidos por fn no deben usarse fuera de ella.
func (s *Store) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	settingsRepo repository.InvoiceSettingsRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	sess := session{store: s, tx: work}
	if err := fn(&InvoiceRepo{s: sess}, &InvoiceSettingsRepo{s: sess}); err != nil {
		return err
	}
	s.st = work
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit >= 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
