package domain

// NestedFields son los paths del documento que se pueden filtrar directamente.
var NestedFields = []string{
	"invoiceData.TranDtls.SupTyp",
	"invoiceData.TranDtls.RegRev",
	"invoiceData.DocDtls.No",
	"invoiceData.DocDtls.Typ",
	"invoiceData.DocDtls.Dt",
	"invoiceData.SellerDtls.Gstin",
	"invoiceData.SellerDtls.LglNm",
	"invoiceData.SellerDtls.Stcd",
	"invoiceData.BuyerDtls.Gstin",
	"invoiceData.BuyerDtls.LglNm",
	"invoiceData.BuyerDtls.Stcd",
	"invoiceData.BuyerDtls.Pos",
	"invoiceData.ValDtls.TotInvVal",
	"invoiceData.ValDtls.AssVal",
	"invoiceData.ValDtls.IgstVal",
	"invoiceData.ValDtls.CgstVal",
	"invoiceData.ValDtls.SgstVal",
}

var InvoiceFields = []string{
	"id", "irn", "invoiceNo", "invoiceDate", "sellerGstin", "sellerName", "buyerGstin", "buyerName",
	"supplyType", "documentType", "totalValue", "status", "generatedAt", "sellerState", "buyerState",
	"pos", "isInterstate", "reverseCharge", "itemCount",
}

var SampleFields = []string{
	"id", "type", "description", "invoiceNo", "totalValue", "documentType", "sellerState", "buyerState",
	"isInterstate", "reverseCharge", "itemCount", "invoiceDate", "endpoint",
}

// FieldCatalog documenta qué se puede filtrar y cómo. Lo sirve GET /fields.
type FieldCatalog struct {
	InvoiceFields   []string                     `json:"invoiceFields"`
	SampleFields    []string                     `json:"sampleFields"`
	NestedFields    []string                     `json:"nestedFields"`
	FieldTypes      map[string][]string          `json:"fieldTypes"`
	FilterOperators map[string]string            `json:"filterOperators"`
	Examples        map[string]map[string]string `json:"examples"`
}

func Catalog() FieldCatalog {
	return FieldCatalog{
		InvoiceFields: InvoiceFields,
		SampleFields:  SampleFields,
		NestedFields:  NestedFields,
		FieldTypes: map[string][]string{
			"string":  {"irn", "invoiceNo", "sellerGstin", "buyerGstin", "sellerName", "buyerName", "status", "supplyType", "documentType", "sellerState", "buyerState"},
			"number":  {"id", "totalValue", "itemCount"},
			"boolean": {"isInterstate", "reverseCharge"},
			"date":    {"generatedAt", "invoiceDate"},
			"nested":  NestedFields,
		},
		FilterOperators: map[string]string{
			"exact":       "field=value",
			"multiple":    "field=value1,value2,value3",
			"lessThan":    "field=lt:value",
			"greaterThan": "field=gt:value",
			"equalTo":     "field=eq:value",
			"notEqualTo":  "field=ne:value",
			"dateRange":   "dateField=2024-01-01:2024-12-31",
			"boolean":     "field=true or field=false",
			"search":      "search=term",
		},
		Examples: map[string]map[string]string{
			"invoices": {
				"exact":    "/invoices?status=Generated",
				"multiple": "/invoices?supplyType=B2B,EXPWP",
				"range":    "/invoices?totalValue=lt:100000",
				"date":     "/invoices?generatedAt=2024-01-01:2024-12-31",
				"nested":   "/invoices?invoiceData.TranDtls.SupTyp=B2B",
				"combined": "/invoices?status=Generated&supplyType=B2B&totalValue=gt:50000",
			},
			"samples": {
				"exact":    "/samples?totalValue=442500",
				"multiple": "/samples?type=B2B,EXPWP",
				"boolean":  "/samples?isInterstate=true",
				"range":    "/samples?totalValue=lt:100000",
				"search":   "/samples?search=INV/2024",
			},
		},
	}
}
