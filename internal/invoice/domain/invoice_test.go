package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() Payload {
	return Payload{
		Version:  "1.1",
		TranDtls: TranDtls{TaxSch: "GST", SupTyp: "B2B", RegRev: "N", IgstOnIntra: "N"},
		DocDtls:  DocDtls{Typ: "INV", No: "INV/2024/001", Dt: "01/01/2024"},
		SellerDtls: PartyDtls{
			Gstin: "29AABCT1332L000", LglNm: "ABC Electronics Pvt Ltd", Stcd: "29",
		},
		BuyerDtls: PartyDtls{
			Gstin: "27AWGPV7107B1Z1", LglNm: "ACME Corp", Pos: "27", Stcd: "27",
		},
		ItemList: []Item{{SlNo: "1", PrdDesc: "Laptop", Qty: 1, UnitPrice: 100, TotAmt: 100, AssAmt: 100, GstRt: 18, IgstAmt: 18, TotItemVal: 118}},
		ValDtls:  ValDtls{AssVal: 100, IgstVal: 18, TotInvVal: 118},
	}
}

func TestInvoice_Cancel(t *testing.T) {
	inv := &Invoice{IRN: "IRN1", Status: StatusGenerated}
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	err := inv.Cancel("Duplicate invoice", at)

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, inv.Status)
	assert.Equal(t, "Duplicate invoice", inv.CancelReason)
	require.NotNil(t, inv.CancelledAt)
	assert.True(t, at.Equal(*inv.CancelledAt))

	// una segunda cancelación falla
	err = inv.Cancel("otra", at)
	assert.ErrorIs(t, err, ErrInvoiceAlreadyCancelled)
	assert.Equal(t, "Duplicate invoice", inv.CancelReason)
}

func TestInvoice_RecordExposesSummaryAndDocument(t *testing.T) {
	inv := Invoice{
		ID:          3,
		IRN:         "IRNSAMPLE3",
		InvoiceData: validPayload(),
		Status:      StatusGenerated,
		GeneratedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	rec, err := inv.Record()
	require.NoError(t, err)

	tests := []struct {
		path string
		want string
	}{
		{"irn", "IRNSAMPLE3"},
		{"supplyType", "B2B"},
		{"invoiceData.TranDtls.SupTyp", "B2B"},
		{"buyerName", "ACME Corp"},
		{"invoiceData.ValDtls.TotInvVal", "118"},
		{"totalValue", "118"},
		{"isInterstate", "true"},
		{"itemCount", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v, ok := query.Resolve(rec, tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.want, v.String())
		})
	}

	var back Summary
	require.NoError(t, query.FromRecord(rec, &back))
	assert.Equal(t, NewSummary(inv), back)
}

func TestNewSampleView(t *testing.T) {
	p := validPayload()
	p.TranDtls.RegRev = "Y"

	view := NewSampleView(5, "Reverse Charge", p)

	assert.Equal(t, 5, view.ID)
	assert.Equal(t, "B2B", view.Type)
	assert.True(t, view.ReverseCharge)
	assert.True(t, view.IsInterstate)
	assert.Equal(t, "/api/e-invoice/sample/5", view.Endpoint)
}

func TestValidationError_Is(t *testing.T) {
	err := Validate(Payload{})

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.ErrorIs(t, err, ErrInvalidInvoice)
	assert.NotEmpty(t, vErr.Errors)
}
