package domain

import (
	"fmt"
	"time"
)

// Summary es la proyección de una factura que devuelven los listados.
type Summary struct {
	ID            int       `json:"id"`
	IRN           string    `json:"irn"`
	InvoiceNo     string    `json:"invoiceNo"`
	InvoiceDate   string    `json:"invoiceDate"`
	SellerGstin   string    `json:"sellerGstin"`
	SellerName    string    `json:"sellerName"`
	BuyerGstin    string    `json:"buyerGstin"`
	BuyerName     string    `json:"buyerName"`
	SupplyType    string    `json:"supplyType"`
	DocumentType  string    `json:"documentType"`
	TotalValue    float64   `json:"totalValue"`
	Status        Status    `json:"status"`
	GeneratedAt   time.Time `json:"generatedAt"`
	SellerState   string    `json:"sellerState"`
	BuyerState    string    `json:"buyerState"`
	Pos           string    `json:"pos"`
	IsInterstate  bool      `json:"isInterstate"`
	ReverseCharge bool      `json:"reverseCharge"`
	ItemCount     int       `json:"itemCount"`
}

func NewSummary(i Invoice) Summary {
	p := i.InvoiceData
	return Summary{
		ID:            i.ID,
		IRN:           i.IRN,
		InvoiceNo:     p.DocDtls.No,
		InvoiceDate:   p.DocDtls.Dt,
		SellerGstin:   p.SellerDtls.Gstin,
		SellerName:    p.SellerDtls.LglNm,
		BuyerGstin:    p.BuyerDtls.Gstin,
		BuyerName:     p.BuyerDtls.LglNm,
		SupplyType:    p.TranDtls.SupTyp,
		DocumentType:  p.DocDtls.Typ,
		TotalValue:    p.ValDtls.TotInvVal,
		Status:        i.Status,
		GeneratedAt:   i.GeneratedAt,
		SellerState:   p.SellerDtls.Stcd,
		BuyerState:    p.BuyerDtls.Stcd,
		Pos:           p.BuyerDtls.Pos,
		IsInterstate:  p.IsInterstate(),
		ReverseCharge: p.IsReverseCharge(),
		ItemCount:     len(p.ItemList),
	}
}

// SampleView describe una de las facturas de ejemplo fijas.
type SampleView struct {
	ID            int     `json:"id"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	InvoiceNo     string  `json:"invoiceNo"`
	TotalValue    float64 `json:"totalValue"`
	DocumentType  string  `json:"documentType"`
	SellerState   string  `json:"sellerState"`
	BuyerState    string  `json:"buyerState"`
	IsInterstate  bool    `json:"isInterstate"`
	ReverseCharge bool    `json:"reverseCharge"`
	ItemCount     int     `json:"itemCount"`
	InvoiceDate   string  `json:"invoiceDate"`
	Endpoint      string  `json:"endpoint"`
}

func NewSampleView(id int, description string, p Payload) SampleView {
	return SampleView{
		ID:            id,
		Type:          p.TranDtls.SupTyp,
		Description:   description,
		InvoiceNo:     p.DocDtls.No,
		TotalValue:    p.ValDtls.TotInvVal,
		DocumentType:  p.DocDtls.Typ,
		SellerState:   p.SellerDtls.Stcd,
		BuyerState:    p.BuyerDtls.Stcd,
		IsInterstate:  p.IsInterstate(),
		ReverseCharge: p.IsReverseCharge(),
		ItemCount:     len(p.ItemList),
		InvoiceDate:   p.DocDtls.Dt,
		Endpoint:      fmt.Sprintf("/api/e-invoice/sample/%d", id),
	}
}

// Paths buscables con search=. Cualquier otro campo queda fuera de la búsqueda.
var (
	InvoiceSearchPaths = []string{
		"irn",
		"invoiceData.DocDtls.No",
		"invoiceData.SellerDtls.LglNm",
		"invoiceData.BuyerDtls.LglNm",
		"invoiceData.SellerDtls.Gstin",
		"invoiceData.BuyerDtls.Gstin",
		"status",
	}

	SampleSearchPaths = []string{
		"invoiceNo",
		"type",
		"description",
		"documentType",
		"sellerState",
		"buyerState",
	}
)
