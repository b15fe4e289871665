package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

func sampleData(template string) appbilling.InvoicePDFData {
	issue := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	return appbilling.InvoicePDFData{
		Invoice: &entity.Invoice{
			ID: "inv-1", TenantID: "t1", InvoiceNumber: "INV250307-001",
			Subtotal: decimal.RequireFromString("100010.50"),
			Tax:      decimal.RequireFromString("10001.05"),
			Total:    decimal.RequireFromString("110011.55"),
			Status:   entity.InvoiceStatusPending, IssueDate: issue, DueDate: issue.AddDate(0, 1, 0),
			Notes: "Transfer ke BCA 123456", Template: template,
		},
		Items: []*entity.InvoiceItem{
			{ID: "it-1", InvoiceID: "inv-1", ProductName: "Desain", Quantity: 2, Price: decimal.NewFromInt(50000), Total: decimal.NewFromInt(100000)},
			{ID: "it-2", InvoiceID: "inv-1", ProductName: "Hosting", Description: "1 bulan", Quantity: 1, Price: decimal.RequireFromString("10.50"), Total: decimal.RequireFromString("10.50")},
		},
		Company: &entity.Company{ID: "c1", TenantID: "t1", Name: "Toko Maju", TaxID: "01.234.567.8-999.000", City: "Bandung"},
		Client:  &entity.Client{ID: "cl1", TenantID: "t1", Name: "Budi", Email: "budi@example.com"},
		TaxRate: "10",
	}
}

func TestGenerate_TodasLasPlantillas(t *testing.T) {
	g := NewMarotoPDFGenerator()
	for _, tpl := range []string{
		entity.TemplateModern, entity.TemplateClassic, entity.TemplateMinimal,
		entity.TemplateProfessional, entity.TemplateCreative, "desconocida",
	} {
		t.Run(tpl, func(t *testing.T) {
			out, err := g.Generate(sampleData(tpl))
			require.NoError(t, err)
			require.Greater(t, len(out), 4)
			assert.Equal(t, "%PDF", string(out[:4]))
		})
	}
}

func TestGenerate_AgregadoIncompleto(t *testing.T) {
	data := sampleData(entity.TemplateModern)
	data.Client = nil
	_, err := NewMarotoPDFGenerator().Generate(data)
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	g := NewMarotoPDFGenerator()
	assert.Equal(t, "Rp 1.234.567,50", g.money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "Rp 0,00", g.money(decimal.Zero))
	assert.Equal(t, "-Rp 10,05", g.money(decimal.RequireFromString("-10.05")))
}

func TestPaletteFor_PorDefectoModern(t *testing.T) {
	assert.Equal(t, palettes[entity.TemplateModern], paletteFor("neon"))
	assert.Equal(t, palettes[entity.TemplateClassic], paletteFor(entity.TemplateClassic))
}
