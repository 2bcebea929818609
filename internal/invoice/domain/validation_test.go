package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBasic(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Payload)
		want   []string
	}{
		{"válida", func(p *Payload) {}, nil},
		{"versión incorrecta", func(p *Payload) { p.Version = "1.0" }, []string{"Version must be 1.1"}},
		{"tipo de documento", func(p *Payload) { p.DocDtls.Typ = "XYZ" }, []string{"Invalid document type"}},
		{"sin GSTIN vendedor", func(p *Payload) { p.SellerDtls.Gstin = "" }, []string{"Seller GSTIN is required"}},
		{"sin GSTIN comprador", func(p *Payload) { p.BuyerDtls.Gstin = " " }, []string{"Buyer GSTIN is required"}},
		{"sin items", func(p *Payload) { p.ItemList = nil }, []string{"At least one item is required"}},
		{"demasiados items", func(p *Payload) { p.ItemList = make([]Item, MaxItems+1) }, []string{"Maximum 1000 items allowed"}},
		{"tipo de suministro", func(p *Payload) { p.TranDtls.SupTyp = "B2C" }, []string{"Invalid supply type"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(&p)
			assert.Equal(t, tt.want, ValidateBasic(p))
		})
	}
}

func TestValidateBasic_EmptyPayloadReportsEverything(t *testing.T) {
	errs := ValidateBasic(Payload{})

	assert.Len(t, errs, 5)
}

func TestFinancialYear(t *testing.T) {
	tests := []struct {
		date    string
		want    string
		wantErr bool
	}{
		{"01/04/2024", "2024-2025", false},
		{"31/03/2024", "2023-2024", false},
		{"15/12/2023", "2023-2024", false},
		{"2024-04-01", "", true},
		{"01/13/2024", "", true},
		{"01/04/abcd", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, err := FinancialYear(tt.date)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
