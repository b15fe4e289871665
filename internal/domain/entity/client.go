package entity

import "time"

// Client representa el destinatario de las facturas de una empresa.
type Client struct {
	ID        string
	TenantID  string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Address   string
	City      string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Client) OwnerTenant() string {
	if c == nil {
		return ""
	}
	return c.TenantID
}
