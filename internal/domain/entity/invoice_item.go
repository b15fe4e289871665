package entity

import "github.com/shopspring/decimal"

// InvoiceItem línea de factura. ProductName y Price son una copia del catálogo al momento
// de facturar; cambios posteriores del producto no la afectan.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	ProductID   string // opcional
	ProductName string
	Description string
	Quantity    int64
	Price       decimal.Decimal
	Total       decimal.Decimal // Quantity * Price
	Position    int             // orden de la línea dentro de la factura
}
