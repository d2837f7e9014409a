package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
// PENDING -> IN_REVIEW -> APPROVED | REJECTED. The two last states are terminal.
type InvoiceStatus string

const (
	StatusPending  InvoiceStatus = "PENDING"
	StatusInReview InvoiceStatus = "IN_REVIEW"
	StatusApproved InvoiceStatus = "APPROVED"
	StatusRejected InvoiceStatus = "REJECTED"
)

// Valid reports whether s is a known lifecycle state.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further status transition is permitted from s.
func (s InvoiceStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Editable reports whether the owning client may still edit or delete an
// invoice in state s.
func (s InvoiceStatus) Editable() bool {
	return s == StatusPending
}

// CanTransition reports whether the bank may set a new status while the
// invoice is currently in state s.
func (s InvoiceStatus) CanTransition() bool {
	return !s.IsTerminal()
}

// CurrencyType is the closed set of invoice currencies.
type CurrencyType string

const (
	CurrencyUSD CurrencyType = "USD"
	CurrencyEUR CurrencyType = "EUR"
	CurrencyGBP CurrencyType = "GBP"
)

// Valid reports whether c is a supported currency.
func (c CurrencyType) Valid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP:
		return true
	}
	return false
}

// Invoice is an invoice raised by a client against a supplier and reviewed by
// the bank. OwnerID is the identity of the client user that created it and is
// the only identity allowed to edit or delete it while PENDING. ClientID is
// the linked client party record and may be absent until a client claims the
// invoice.
type Invoice struct {
	InvoiceID     int64           `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	SupplierID    string          `json:"supplierID"`
	ClientID      *string         `json:"clientID,omitempty"`
	OwnerID       string          `json:"ownerID"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyType  CurrencyType    `json:"currencyType"`
	Status        InvoiceStatus   `json:"status"`
	AuditFields
}

// Ageing returns the invoice's age in whole days as of `today`.
func (i Invoice) Ageing(today time.Time) int {
	return DaysBetween(i.InvoiceDate, today)
}

// ExpiredAt reports whether the invoice age exceeds expiryDays as of `today`.
// Expiry blocks status updates only; edits and deletes are unaffected.
func (i Invoice) ExpiredAt(today time.Time, expiryDays int) bool {
	return i.Ageing(today) > expiryDays
}
