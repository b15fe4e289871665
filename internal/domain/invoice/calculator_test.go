package invoice_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Facturador-api/internal/domain/invoice"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculator_Compute(t *testing.T) {
	calc := invoice.NewCalculator(d("0.10"), 2)

	tests := []struct {
		name     string
		lines    []invoice.Line
		subtotal string
		tax      string
		total    string
	}{
		{"una línea", []invoice.Line{{Quantity: 2, Price: d("50000")}}, "100000", "10000", "110000"},
		{"varias líneas", []invoice.Line{{Quantity: 1, Price: d("10.50")}, {Quantity: 3, Price: d("2.25")}}, "17.25", "1.73", "18.98"},
		{"precio cero", []invoice.Line{{Quantity: 5, Price: decimal.Zero}}, "0", "0", "0"},
		{"sin líneas", nil, "0", "0", "0"},
		{"redondeo del impuesto", []invoice.Line{{Quantity: 1, Price: d("0.05")}}, "0.05", "0.01", "0.06"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Compute(tt.lines)
			assert.True(t, d(tt.subtotal).Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, d(tt.tax).Equal(got.Tax), "tax %s", got.Tax)
			assert.True(t, d(tt.total).Equal(got.Total), "total %s", got.Total)
		})
	}
}

func TestCalculator_TasaConfigurable(t *testing.T) {
	calc := invoice.NewCalculator(d("0.11"), 0)
	got := calc.Compute([]invoice.Line{{Quantity: 1, Price: d("1000")}})
	assert.True(t, d("110").Equal(got.Tax))
	assert.True(t, d("1110").Equal(got.Total))
}

// Propiedades: subtotal = Σ cantidad*precio, total = subtotal + impuesto,
// impuesto = round(subtotal*tasa).
func TestCalculator_Propiedades(t *testing.T) {
	calc := invoice.NewCalculator(d("0.10"), 2)
	rng := rand.New(rand.NewSource(20250307))

	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(8)
		lines := make([]invoice.Line, n)
		want := decimal.Zero
		for j := range lines {
			qty := int64(1 + rng.Intn(50))
			price := decimal.New(rng.Int63n(10_000_000), -2)
			lines[j] = invoice.Line{Quantity: qty, Price: price}
			want = want.Add(price.Mul(decimal.NewFromInt(qty)))
		}

		got := calc.Compute(lines)
		assert.True(t, want.Equal(got.Subtotal))
		assert.True(t, got.Subtotal.Mul(d("0.10")).Round(2).Equal(got.Tax))
		assert.True(t, got.Subtotal.Add(got.Tax).Equal(got.Total))
		assert.False(t, got.Total.IsNegative())
	}
}

func TestCalculator_LineTotal(t *testing.T) {
	calc := invoice.Calculator{Rate: d("0.10"), Scale: 2}
	assert.True(t, d("7.50").Equal(calc.LineTotal(3, d("2.50"))))
}

func TestFitsScale(t *testing.T) {
	calc := invoice.NewCalculator(d("0.10"), 2)

	assert.True(t, calc.FitsScale(d("10")))
	assert.True(t, calc.FitsScale(d("10.5")))
	assert.True(t, calc.FitsScale(d("10.500")), "ceros finales no cuentan")
	assert.False(t, calc.FitsScale(d("0.005")))
	assert.False(t, invoice.FitsScale(d("1.001"), invoice.StoredScale))
	assert.True(t, invoice.FitsScale(d("3"), 0))
	assert.False(t, invoice.FitsScale(d("3.1"), 0))
}
