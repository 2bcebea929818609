package application

import (
	"fmt"
	"time"

	invoiceDomain "github.com/davicafu/einvoicelab/internal/invoice/domain"
	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/query"
)

// SignedInvoice es el documento enviado con el IRN añadido en la raíz.
type SignedInvoice struct {
	invoiceDomain.Payload
	IRN string `json:"IRN"`
}

// GenerateResult es la respuesta de POST /generate.
type GenerateResult struct {
	Irn           string        `json:"Irn"`
	AckNo         string        `json:"AckNo"`
	AckDt         string        `json:"AckDt"`
	SignedInvoice SignedInvoice `json:"SignedInvoice"`
	QRCode        string        `json:"QRCode"`
}

func newGenerateResult(inv invoiceDomain.Invoice, now time.Time) GenerateResult {
	return GenerateResult{
		Irn:           inv.IRN,
		AckNo:         fmt.Sprintf("ACK%d", now.UnixMilli()),
		AckDt:         now.Format("02/01/2006"),
		SignedInvoice: SignedInvoice{Payload: inv.InvoiceData, IRN: inv.IRN},
		QRCode:        "QR_" + inv.IRN,
	}
}

type ResetResult struct {
	Generation uint64 `json:"generation"`
	Count      int    `json:"count"`
}

// InvoicePage es un listado paginado junto con la consulta ya normalizada.
type InvoicePage struct {
	Page  query.PageResult[invoiceDomain.Summary]
	Query query.Query
}

type SamplePage struct {
	Page  query.PageResult[invoiceDomain.SampleView]
	Query query.Query
	Total int // samples tras filtrar
}

// SampleDetail es la respuesta de GET /sample/:id.
type SampleDetail struct {
	Data        invoiceDomain.Payload    `json:"data"`
	SampleID    int                      `json:"sampleId"`
	Description string                   `json:"description"`
	Type        string                   `json:"type"`
	Metadata    invoiceDomain.SampleView `json:"metadata"`
}

const (
	SearchAll      = "all"
	SearchInvoices = "invoices"
	SearchSamples  = "samples"
)

type SearchHit struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data"`
	Score float64     `json:"score"`
}

type SearchResult struct {
	Query   string            `json:"query"`
	Type    string            `json:"type"`
	Count   int               `json:"count"`
	Results []SearchHit       `json:"results"`
	Filters map[string]string `json:"filters"`
}

// Stats agrega las facturas filtradas. Los importes se suman con decimal y se redondean a 2.
type Stats struct {
	TotalInvoices  int            `json:"totalInvoices"`
	Generated      int            `json:"generated"`
	Cancelled      int            `json:"cancelled"`
	TotalValue     float64        `json:"totalValue"`
	AverageValue   float64        `json:"averageValue"`
	Interstate     int            `json:"interstate"`
	Intrastate     int            `json:"intrastate"`
	ReverseCharge  int            `json:"reverseCharge"`
	ByStatus       map[string]int `json:"byStatus"`
	BySupplyType   map[string]int `json:"bySupplyType"`
	ByDocumentType map[string]int `json:"byDocumentType"`
	TotalSamples   int            `json:"totalSamples"`
	Generation     uint64         `json:"generation"`
}

// FilterOptions es la respuesta de GET /filter-options.
type FilterOptions struct {
	Statuses      []string `json:"statuses"`
	SupplyTypes   []string `json:"supplyTypes"`
	DocumentTypes []string `json:"documentTypes"`
	States        []string `json:"states"`
	SortFields    []string `json:"sortFields"`
	SortOrders    []string `json:"sortOrders"`
	Scenarios     []string `json:"scenarios"`
}
