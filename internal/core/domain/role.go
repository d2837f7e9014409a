package domain

// Role identifies the kind of actor issuing a request. The set is closed:
// every decision point switches exhaustively over these three values.
type Role string

const (
	RoleBank     Role = "BANK"
	RoleClient   Role = "CLIENT"
	RoleSupplier Role = "SUPPLIER"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBank, RoleClient, RoleSupplier:
		return true
	}
	return false
}
