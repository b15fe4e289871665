// Package pdf genera la representación gráfica de una factura.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NPWP      │  N° Factura + Fechas         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                             │
//	│  FACTURAR A: Cliente + contacto                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Total                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto / TOTAL                        │
//	│  NOTAS                                                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/jhoicas/Facturador-api/internal/application/billing"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// ── Paletas por plantilla ────────────────────────────────────────────────────

type palette struct {
	primary *props.Color
	muted   *props.Color
}

var (
	colorGray  = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorBlack = &props.Color{Red: 20, Green: 20, Blue: 20}
)

var palettes = map[string]palette{
	entity.TemplateModern:       {primary: &props.Color{Red: 37, Green: 99, Blue: 235}, muted: colorGray},
	entity.TemplateClassic:      {primary: colorBlack, muted: colorGray},
	entity.TemplateMinimal:      {primary: &props.Color{Red: 82, Green: 82, Blue: 91}, muted: &props.Color{Red: 161, Green: 161, Blue: 170}},
	entity.TemplateProfessional: {primary: &props.Color{Red: 0, Green: 70, Blue: 127}, muted: colorGray},
	entity.TemplateCreative:     {primary: &props.Color{Red: 147, Green: 51, Blue: 234}, muted: &props.Color{Red: 219, Green: 39, Blue: 119}},
}

func paletteFor(template string) palette {
	if p, ok := palettes[template]; ok {
		return p
	}
	return palettes[entity.TemplateModern]
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	currency string
	printer  *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los montos se muestran en rupias (id-ID).
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{currency: "Rp", printer: message.NewPrinter(language.Indonesian)}
}

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// Generate genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generate(data appbilling.InvoicePDFData) ([]byte, error) {
	if data.Invoice == nil || data.Company == nil || data.Client == nil {
		return nil, fmt.Errorf("pdf: agregado incompleto")
	}
	pal := paletteFor(data.Invoice.Template)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+data.Invoice.InvoiceNumber, true).
		WithAuthor(data.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(pal, data.Invoice, data.Company))
	m.AddRows(line.NewRow(1, props.Line{Color: pal.primary, Thickness: 0.5}))
	m.AddRows(emisorRow(pal, data.Company))
	m.AddRows(clientRow(pal, data.Client))
	m.AddRows(line.NewRow(1, props.Line{Color: pal.primary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(pal))
	m.AddRows(g.itemRows(data.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: pal.primary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(pal, data.Invoice, data.TaxRate))

	if data.Invoice.Notes != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(notesRow(pal, data.Invoice.Notes))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(pal palette, inv *entity.Invoice, company *entity.Company) core.Row {
	left := col.New(7).Add(
		text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 13, Color: pal.primary, Top: 1}),
	)
	if company.TaxID != "" {
		left.Add(text.New("NPWP: "+company.TaxID, props.Text{Size: 9, Top: 9, Color: pal.muted}))
	}

	return row.New(22).Add(
		left,
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: pal.primary, Top: 1,
			}),
			text.New(inv.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Emisión: "+inv.IssueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: pal.muted,
			}),
			text.New("Vence: "+inv.DueDate.Format("02/01/2006")+"   |   "+statusLabel(inv.Status), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: pal.muted,
			}),
		),
	)
}

func emisorRow(pal palette, company *entity.Company) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: pal.primary, Top: 1}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(joinNonEmpty(", ", company.Address, company.City, company.Country), "-"),
				nonEmpty(company.Phone, "-"),
				nonEmpty(company.Email, "-"),
			), props.Text{Size: 8, Top: 7, Color: pal.muted}),
		),
	)
}

func clientRow(pal palette, client *entity.Client) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("FACTURAR A", props.Text{Style: fontstyle.Bold, Size: 8, Color: pal.primary, Top: 1}),
			text.New(client.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s   |   Email: %s   |   Tel: %s",
				nonEmpty(joinNonEmpty(", ", client.Address, client.City, client.Country), "-"),
				nonEmpty(client.Email, "-"),
				nonEmpty(client.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: pal.muted}),
		),
	)
}

func tableHeaderRow(pal palette) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: pal.primary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func (g *MarotoPDFGenerator) itemRows(items []*entity.InvoiceItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		desc := it.ProductName
		height := 7.0
		if it.Description != "" {
			desc += "\n" + it.Description
			height = 11
		}
		rows = append(rows, row.New(height).Add(
			col.New(1).Add(text.New(strconv.FormatInt(it.Quantity, 10), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(desc, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(it.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.money(it.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) totalsRow(pal palette, inv *entity.Invoice, taxRate string) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	taxLabel := "Impuesto:"
	if taxRate != "" {
		taxLabel = "Impuesto (" + taxRate + "%):"
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 1),
			label(taxLabel, 6),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: pal.primary, Right: 2, Top: 12,
			}),
		),
		col.New(3).Add(
			value(g.money(inv.Subtotal), 1),
			value(g.money(inv.Tax), 6),
			text.New(g.money(inv.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: pal.primary, Right: 1, Top: 12,
			}),
		),
	)
}

func notesRow(pal palette, notes string) core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New("NOTAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: pal.primary, Top: 1}),
		text.New(notes, props.Text{Size: 8, Top: 6, Color: pal.muted}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// money formatea un monto con separadores de la configuración regional, ej. "Rp 1.234.567,50".
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return g.currency + " " + fixed
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + g.currency + " " + g.printer.Sprintf("%d", n) + "," + frac
}

func statusLabel(status string) string {
	switch status {
	case entity.InvoiceStatusPaid:
		return "PAGADA"
	case entity.InvoiceStatusOverdue:
		return "VENCIDA"
	default:
		return "PENDIENTE"
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
