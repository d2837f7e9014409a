package pgsql

import (
	"testing"
	"time"

	"github.com/finportal/invoice_finance_app/internal/core/domain"
	portsrepo "github.com/finportal/invoice_finance_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string        { return &s }
func intPtr(i int) *int              { return &i }
func timePtr(t time.Time) *time.Time { return &t }

func TestBuildInvoiceWhere_Empty(t *testing.T) {
	where, args := buildInvoiceWhere(portsrepo.InvoiceFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildInvoiceWhere_SingleCriterion(t *testing.T) {
	where, args := buildInvoiceWhere(portsrepo.InvoiceFilter{
		SupplierID: strPtr("SP_00001"),
	})
	assert.Equal(t, " WHERE supplier_id = $1", where)
	assert.Equal(t, []any{"SP_00001"}, args)
}

func TestBuildInvoiceWhere_ConjunctionAndOrdinals(t *testing.T) {
	from := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC)
	where, args := buildInvoiceWhere(portsrepo.InvoiceFilter{
		ClientID:      strPtr("CL_00001"),
		OwnerID:       strPtr("client-1"),
		InvoiceNumber: strPtr("INV-100"),
		DateFrom:      timePtr(from),
		DateTo:        timePtr(to),
	})

	assert.Equal(t,
		" WHERE client_id = $1 AND owner_id = $2 AND invoice_number = $3 AND invoice_date >= $4 AND invoice_date <= $5",
		where)
	require.Len(t, args, 5)
	assert.Equal(t, "CL_00001", args[0])
	assert.Equal(t, from, args[3])
	assert.Equal(t, to, args[4])
}

func TestBuildInvoiceWhere_AgeingCutoff(t *testing.T) {
	today := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	where, args := buildInvoiceWhere(portsrepo.InvoiceFilter{
		Ageing: intPtr(10),
		Today:  today,
	})

	// Aged at least 10 days means dated on or before today minus 10 days.
	assert.Equal(t, " WHERE invoice_date <= $1", where)
	require.Len(t, args, 1)
	assert.Equal(t, time.Date(2021, 5, 22, 0, 0, 0, 0, time.UTC), args[0])
}

func TestBuildInvoiceWhere_Sets(t *testing.T) {
	where, args := buildInvoiceWhere(portsrepo.InvoiceFilter{
		Statuses:   []domain.InvoiceStatus{domain.StatusPending, domain.StatusApproved},
		Currencies: []domain.CurrencyType{domain.CurrencyUSD},
	})

	assert.Equal(t, " WHERE status = ANY($1) AND currency_type = ANY($2)", where)
	require.Len(t, args, 2)
	assert.Equal(t, []string{"PENDING", "APPROVED"}, args[0])
	assert.Equal(t, []string{"USD"}, args[1])
}

func TestBuildInvoiceWhere_FullFilter(t *testing.T) {
	today := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	where, args := buildInvoiceWhere(portsrepo.InvoiceFilter{
		SupplierID:    strPtr("SP_00001"),
		ClientID:      strPtr("CL_00001"),
		OwnerID:       strPtr("client-1"),
		InvoiceNumber: strPtr("INV-100"),
		DateFrom:      timePtr(today.AddDate(0, -1, 0)),
		DateTo:        timePtr(today),
		Ageing:        intPtr(5),
		Statuses:      []domain.InvoiceStatus{domain.StatusPending},
		Currencies:    []domain.CurrencyType{domain.CurrencyEUR, domain.CurrencyGBP},
		Today:         today,
	})

	assert.Equal(t,
		" WHERE supplier_id = $1 AND client_id = $2 AND owner_id = $3 AND invoice_number = $4"+
			" AND invoice_date >= $5 AND invoice_date <= $6 AND invoice_date <= $7"+
			" AND status = ANY($8) AND currency_type = ANY($9)",
		where)
	assert.Len(t, args, 9)
}
