package domain

// Supplier is the creditor party attached to invoices. SupplierID is the
// business code (e.g. "SP_00001"); UserID links the record to the login
// identity used for supplier-scoped queries. Suppliers are never mutated by
// the invoice lifecycle.
type Supplier struct {
	SupplierID string `json:"supplierID"`
	UserID     string `json:"userID"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	AuditFields
}

// Client is the debtor party that raises invoices. ClientID is the business
// code (e.g. "CL_00001"); UserID links the record to the login identity used
// for ownership checks.
type Client struct {
	ClientID string `json:"clientID"`
	UserID   string `json:"userID"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	AuditFields
}
