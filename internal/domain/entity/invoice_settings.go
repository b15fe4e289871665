package entity

import "time"

// InvoiceSettings configuración de numeración de un tenant (una fila por tenant).
// NextNumber es el contador que recibirá la próxima factura creada.
type InvoiceSettings struct {
	ID             string
	TenantID       string
	InvoicePattern string
	NextNumber     int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s *InvoiceSettings) OwnerTenant() string {
	if s == nil {
		return ""
	}
	return s.TenantID
}
