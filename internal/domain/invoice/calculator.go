package invoice

import "github.com/shopspring/decimal"

// StoredScale decimales de las columnas monetarias persistidas (NUMERIC(18, 2)).
const StoredScale int32 = 2

// FitsScale indica si amount se representa sin pérdida con scale decimales.
func FitsScale(amount decimal.Decimal, scale int32) bool {
	return amount.Equal(amount.Round(scale))
}

// Line cantidad y precio unitario de una línea de factura.
type Line struct {
	Quantity int64
	Price    decimal.Decimal
}

// Totals montos derivados de una factura.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Calculator servicio de dominio que deriva los montos de una factura.
//
//	LineTotal = Quantity * Price
//	Subtotal  = Σ LineTotal
//	Tax       = round(Subtotal * Rate, Scale)
//	Total     = Subtotal + Tax
type Calculator struct {
	Rate  decimal.Decimal
	Scale int32
}

// NewCalculator crea un calculador con la tasa (fracción) y los decimales de redondeo del impuesto.
func NewCalculator(rate decimal.Decimal, scale int32) Calculator {
	return Calculator{Rate: rate, Scale: scale}
}

// LineTotal total de una línea.
func (c Calculator) LineTotal(quantity int64, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(quantity))
}

// FitsScale indica si amount no tiene más decimales que los del calculador.
// Con precios en escala y cantidades enteras, ninguna línea ni el subtotal necesitan redondeo.
func (c Calculator) FitsScale(amount decimal.Decimal) bool {
	return FitsScale(amount, c.Scale)
}

// Compute calcula subtotal, impuesto y total de las líneas dadas.
func (c Calculator) Compute(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(c.LineTotal(l.Quantity, l.Price))
	}
	tax := subtotal.Mul(c.Rate).Round(c.Scale)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
