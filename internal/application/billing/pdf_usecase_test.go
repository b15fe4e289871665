package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
)

type recordingGenerator struct {
	got billing.InvoicePDFData
	err error
}

func (g *recordingGenerator) Generate(data billing.InvoicePDFData) ([]byte, error) {
	g.got = data
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3"), nil
}

func TestDownloadInvoicePDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.settings.Update(ctx, f.tenant, dto.UpdateInvoiceSettingsRequest{InvoicePattern: "INV/{YYYY}/{###}", NextNumber: 1})
	require.NoError(t, err)
	created, err := f.invoices.Create(ctx, f.tenant, f.request())
	require.NoError(t, err)

	gen := &recordingGenerator{}
	uc := billing.NewPDFUseCase(f.store.Invoices(), f.store.Clients(), f.store.Companies(), calculator(), gen)

	out, name, err := uc.DownloadInvoicePDF(ctx, f.tenant, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(out))
	assert.Equal(t, "factura_INV_2025_001.pdf", name)
	assert.Equal(t, "10", gen.got.TaxRate)
	assert.Equal(t, "Budi", gen.got.Client.Name)
	assert.Len(t, gen.got.Items, 1)

	_, _, err = uc.DownloadInvoicePDF(ctx, "tenant-b", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	gen.err = errors.New("fuente no disponible")
	_, _, err = uc.DownloadInvoicePDF(ctx, f.tenant, created.ID)
	assert.ErrorIs(t, err, gen.err)
}
