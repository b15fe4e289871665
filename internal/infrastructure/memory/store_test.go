package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/memory"
	"github.com/jhoicas/Facturador-api/internal/infrastructure/storetest"
)

func backend(s *memory.Store) storetest.Backend {
	return storetest.Backend{
		Companies: s.Companies(),
		Clients:   s.Clients(),
		Products:  s.Products(),
		Invoices:  s.Invoices(),
		Settings:  s.Settings(),
		Tx:        s,
		ItemCount: func(_ *testing.T, invoiceID string) int { return s.ItemCount(invoiceID) },
	}
}

func TestStore_Contrato(t *testing.T) {
	storetest.Run(t, backend(memory.NewStore()))
}

func TestStore_RunBillingContextoCancelado(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.RunBilling(ctx, func(repository.InvoiceRepository, repository.InvoiceSettingsRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

// Las lecturas fuera de la tx no ven escrituras de una tx en curso ni de una abortada.
func TestStore_AislamientoDeTx(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	started := make(chan struct{})
	release := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.RunBilling(ctx, func(_ repository.InvoiceRepository, settings repository.InvoiceSettingsRepository) error {
			_, _, _ = settings.ReserveNumber(ctx, "t1", "{#}")
			close(started)
			<-release
			return errors.New("abortar")
		})
	}()

	<-started
	read := make(chan error, 1)
	go func() {
		_, err := s.Settings().Get(ctx, "t1")
		read <- err
	}()
	close(release)
	wg.Wait()

	err := <-read
	require.Error(t, err)

	_, n, err := s.Settings().ReserveNumber(ctx, "t1", "{#}")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStore_CopiasIndependientes(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	c := &entity.Company{ID: "c1", TenantID: "t1", Name: "Original"}
	require.NoError(t, s.Companies().Create(ctx, c))

	c.Name = "mutado fuera"
	got, err := s.Companies().GetByID(ctx, "c1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Name)

	got.Name = "mutado lectura"
	again, err := s.Companies().GetByID(ctx, "c1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Name)
}
