package dto

import "github.com/jhoicas/Facturador-api/internal/domain/entity"

// CompanyFromEntity convierte la entidad a su representación de respuesta.
func CompanyFromEntity(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		Country:   c.Country,
		Website:   c.Website,
		TaxID:     c.TaxID,
		LogoURL:   c.LogoURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ClientFromEntity(c *entity.Client) *ClientResponse {
	if c == nil {
		return nil
	}
	return &ClientResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		City:      c.City,
		Country:   c.Country,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ProductFromEntity(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Unit:        p.Unit,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// InvoiceFromEntity arma la respuesta de factura. client y company pueden ser nil.
func InvoiceFromEntity(inv *entity.Invoice, items []*entity.InvoiceItem, client *entity.Client, company *entity.Company) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	out := &InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientID:      inv.ClientID,
		CompanyID:     inv.CompanyID,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Status:        inv.Status,
		IssueDate:     inv.IssueDate.Format(DateLayout),
		DueDate:       inv.DueDate.Format(DateLayout),
		Notes:         inv.Notes,
		Template:      inv.Template,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		Client:        ClientFromEntity(client),
		Company:       CompanyFromEntity(company),
		Items:         make([]InvoiceItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, InvoiceItemFromEntity(it))
	}
	return out
}

func InvoiceItemFromEntity(it *entity.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ID:          it.ID,
		ProductID:   it.ProductID,
		ProductName: it.ProductName,
		Description: it.Description,
		Quantity:    it.Quantity,
		Price:       it.Price,
		Total:       it.Total,
	}
}
