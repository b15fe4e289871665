package dto

// InvoiceSettingsResponse configuración de numeración del tenant.
type InvoiceSettingsResponse struct {
	InvoicePattern string `json:"invoice_pattern"`
	NextNumber     int64  `json:"next_number"`
	Preview        string `json:"preview"` // número que recibiría la próxima factura emitida hoy
}

// UpdateInvoiceSettingsRequest body para PUT /api/settings/invoice.
type UpdateInvoiceSettingsRequest struct {
	InvoicePattern string `json:"invoice_pattern" validate:"max=100"`
	NextNumber     int64  `json:"next_number" validate:"gte=1"`
}

// PatternPreviewResponse respuesta de GET /api/settings/invoice/preview.
type PatternPreviewResponse struct {
	Pattern    string   `json:"pattern"`
	NextNumber int64    `json:"next_number"`
	Preview    string   `json:"preview"`
	Tokens     []string `json:"tokens"`
}
