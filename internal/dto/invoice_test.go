package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/finportal/invoice_finance_app/internal/core/domain"
	"github.com/finportal/invoice_finance_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice(today time.Time) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     42,
		InvoiceNumber: "INV-100",
		SupplierID:    "SP_00001",
		OwnerID:       "client-1",
		InvoiceDate:   today.AddDate(0, 0, -3),
		Amount:        decimal.NewFromInt(1250),
		CurrencyType:  domain.CurrencyUSD,
		Status:        domain.StatusPending,
	}
}

func TestToBankInvoiceResponse(t *testing.T) {
	today := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	inv := sampleInvoice(today)
	clientID := "CL_00001"
	inv.ClientID = &clientID

	supplier := &domain.Supplier{SupplierID: "SP_00001", Name: "Acme Metals", Email: "sales@acme.test"}
	client := &domain.Client{ClientID: clientID, Name: "Initech", Email: "ap@initech.test"}

	resp := dto.ToBankInvoiceResponse(inv, supplier, client, today)

	assert.Equal(t, int64(42), resp.InvoiceID)
	assert.Equal(t, 3, resp.Ageing)
	require.NotNil(t, resp.Supplier)
	assert.Equal(t, "Acme Metals", resp.Supplier.Name)
	require.NotNil(t, resp.Client)
	assert.Equal(t, "Initech", resp.Client.Name)
}

func TestToClientInvoiceResponse_MissingSupplier(t *testing.T) {
	today := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	inv := sampleInvoice(today)

	resp := dto.ToClientInvoiceResponse(inv, nil, today)

	assert.Nil(t, resp.Supplier)
	assert.Equal(t, domain.StatusPending, resp.Status)
}

func TestToSupplierInvoiceResponse_UnclaimedRendersNullClient(t *testing.T) {
	today := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	inv := sampleInvoice(today)

	resp := dto.ToSupplierInvoiceResponse(inv, nil, today)
	assert.Nil(t, resp.Client)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"client":null`)
}

func TestInvoicePageShape(t *testing.T) {
	today := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	page := dto.InvoicePage[dto.ClientInvoiceResponse]{
		Content: []dto.ClientInvoiceResponse{
			dto.ToClientInvoiceResponse(sampleInvoice(today), nil, today),
		},
		Page:             0,
		Size:             20,
		TotalElements:    1,
		NumberOfElements: 1,
	}

	raw, err := json.Marshal(page)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.EqualValues(t, 1, decoded["totalElements"])
	assert.EqualValues(t, 1, decoded["numberOfElements"])
	assert.Len(t, decoded["content"], 1)
}
