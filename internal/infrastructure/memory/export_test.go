package memory

// ItemCount cuenta todas las líneas que referencian invoiceID, sin filtrar por tenant.
func (s *Store) ItemCount(invoiceID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.st.items {
		if it.InvoiceID == invoiceID {
			n++
		}
	}
	return n
}
