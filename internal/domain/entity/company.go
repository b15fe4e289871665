package entity

import "time"

// Company representa la empresa emisora de facturas. Un tenant puede tener varias.
type Company struct {
	ID        string
	TenantID  string
	Name      string
	Email     string
	Phone     string
	Address   string
	City      string
	Country   string
	Website   string
	TaxID     string // NPWP u otro identificador fiscal
	LogoURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnerTenant devuelve el tenant dueño. Seguro sobre receptor nil.
func (c *Company) OwnerTenant() string {
	if c == nil {
		return ""
	}
	return c.TenantID
}
