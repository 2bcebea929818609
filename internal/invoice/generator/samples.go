package generator

import (
	"sort"

	"github.com/davicafu/einvoicelab/internal/invoice/domain"
)

var sampleDescriptions = map[int]string{
	1: "B2B Intrastate (CGST + SGST)",
	2: "B2B Interstate (IGST)",
	3: "Export Invoice (Zero Tax)",
	4: "SEZ Supply",
	5: "Reverse Charge",
	6: "Credit Note",
	7: "Multiple Items",
}

// SampleDescription devuelve la descripción de un sample, o "Sample Invoice" si no existe.
func SampleDescription(id int) string {
	if d, ok := sampleDescriptions[id]; ok {
		return d
	}
	return "Sample Invoice"
}

// SampleIDs devuelve los IDs de los samples en orden ascendente.
func SampleIDs() []int {
	ids := make([]int, 0, len(sampleDescriptions))
	for id := range sampleDescriptions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Sample devuelve una copia del sample; false si el id no existe.
func Sample(id int) (domain.Payload, bool) {
	p, ok := TestSamples()[id]
	return p, ok
}

// TestSamples construye los siete documentos de referencia. Cada llamada devuelve
// valores nuevos, así que el llamador puede modificarlos.
func TestSamples() map[int]domain.Payload {
	gst := domain.TranDtls{TaxSch: "GST", SupTyp: "B2B", RegRev: "N", IgstOnIntra: "N"}
	with := func(supTyp, regRev string) domain.TranDtls {
		t := gst
		t.SupTyp = supTyp
		t.RegRev = regRev
		return t
	}

	return map[int]domain.Payload{
		1: {
			Version:  domain.SchemaVersion,
			TranDtls: gst,
			DocDtls:  domain.DocDtls{Typ: "INV", No: "INV/2024/001", Dt: "01/01/2024"},
			SellerDtls: domain.PartyDtls{
				Gstin: "29AABCT1332L000", LglNm: "ABC Electronics Pvt Ltd", TrdNm: "ABC Electronics",
				Addr1: "Electronics City", Addr2: "Phase 1", Loc: "BANGALORE", Pin: 560100, Stcd: "29",
				Ph: "9876543210", Em: "sales@abcelectronics.com",
			},
			BuyerDtls: domain.PartyDtls{
				Gstin: "29AWGPV7107B1Z1", LglNm: "XYZ Traders Bangalore", TrdNm: "XYZ Traders",
				Pos: "29", Addr1: "Commercial Street", Addr2: "Block A", Loc: "BANGALORE", Pin: 560001,
				Stcd: "29", Ph: "9876543211", Em: "purchase@xyztraders.com",
			},
			ItemList: []domain.Item{{
				SlNo: "1", IsServc: "N", PrdDesc: "Laptop Computer", HsnCd: "84713000",
				BchDtls: &domain.BchDtls{Nm: "BATCH001"}, Qty: 5, Unit: "NOS", UnitPrice: 75000, TotAmt: 375000,
				AssAmt: 375000, GstRt: 18, IgstAmt: 0, CgstAmt: 33750, SgstAmt: 33750, TotItemVal: 442500,
			}},
			ValDtls: domain.ValDtls{AssVal: 375000, CgstVal: 33750, SgstVal: 33750, IgstVal: 0, TotInvVal: 442500},
		},
		2: {
			Version:  domain.SchemaVersion,
			TranDtls: gst,
			DocDtls:  domain.DocDtls{Typ: "INV", No: "INV/2024/002", Dt: "15/01/2024"},
			SellerDtls: domain.PartyDtls{
				Gstin: "27AABCU9603R1ZM", LglNm: "Mumbai Textiles Ltd", TrdNm: "Mumbai Textiles",
				Addr1: "Textile Market", Loc: "MUMBAI", Pin: 400001, Stcd: "27",
				Ph: "9876543212", Em: "info@mumbaitextiles.com",
			},
			BuyerDtls: domain.PartyDtls{
				Gstin: "29AWGPV7107B1Z1", LglNm: "Bangalore Retailers", TrdNm: "Bangalore Retail",
				Pos: "29", Addr1: "MG Road", Loc: "BANGALORE", Pin: 560001, Stcd: "29",
				Ph: "9876543213", Em: "orders@bangaloreretail.com",
			},
			ItemList: []domain.Item{{
				SlNo: "1", IsServc: "N", PrdDesc: "Cotton Shirts", HsnCd: "62052000",
				BchDtls: &domain.BchDtls{Nm: "BATCH002"}, Qty: 100, Unit: "NOS", UnitPrice: 800, TotAmt: 80000,
				AssAmt: 80000, GstRt: 12, IgstAmt: 9600, CgstAmt: 0, SgstAmt: 0, TotItemVal: 89600,
			}},
			ValDtls: domain.ValDtls{AssVal: 80000, CgstVal: 0, SgstVal: 0, IgstVal: 9600, TotInvVal: 89600},
		},
		3: {
			Version:  domain.SchemaVersion,
			TranDtls: with("EXPWP", "N"),
			DocDtls:  domain.DocDtls{Typ: "INV", No: "EXP/2024/001", Dt: "20/02/2024"},
			SellerDtls: domain.PartyDtls{
				Gstin: "06AABCT1332L000", LglNm: "Export Goods India",
				Addr1: "Industrial Area", Loc: "GURGAON", Pin: 122001, Stcd: "06",
				Ph: "9876543214", Em: "export@exportgoods.com",
			},
			BuyerDtls: domain.PartyDtls{
				Gstin: "URP", LglNm: "International Buyer Inc", Pos: "96",
				Addr1: "123 International Street", Loc: "SINGAPORE", Pin: 999999, Stcd: "96",
				Ph: "6561234567", Em: "buyer@international.com",
			},
			ItemList: []domain.Item{{
				SlNo: "1", IsServc: "N", PrdDesc: "Handicraft Items", HsnCd: "44219090",
				Qty: 500, Unit: "NOS", UnitPrice: 500, TotAmt: 250000, AssAmt: 250000,
				GstRt: 0, IgstAmt: 0, CgstAmt: 0, SgstAmt: 0, TotItemVal: 250000,
			}},
			ValDtls: domain.ValDtls{AssVal: 250000, CgstVal: 0, SgstVal: 0, IgstVal: 0, TotInvVal: 250000},
		},
		4: {
			Version:  domain.SchemaVersion,
			TranDtls: with("SEZWP", "N"),
			DocDtls:  domain.DocDtls{Typ: "INV", No: "SEZ/2024/001", Dt: "10/03/2024"},
			SellerDtls: domain.PartyDtls{
				Gstin: "27AABCU9603R1ZM", LglNm: "Domestic Supplier Ltd",
				Addr1: "Commercial Street", Loc: "MUMBAI", Pin: 400001, Stcd: "27",
				Ph: "9876543215", Em: "contact@domesticsupplier.com",
			},
			BuyerDtls: domain.PartyDtls{
				Gstin: "27SEZ12345678901", LglNm: "SEZ Unit Mumbai", Pos: "96",
				Addr1: "SEZ Area", Loc: "MUMBAI", Pin: 400001, Stcd: "27",
				Ph: "9876543216", Em: "sez@sezunit.com",
			},
			ItemList: []domain.Item{{
				SlNo: "1", IsServc: "N", PrdDesc: "Electronic Components", HsnCd: "85429000",
				Qty: 1000, Unit: "NOS", UnitPrice: 100, TotAmt: 100000, AssAmt: 100000,
				GstRt: 18, IgstAmt: 18000, CgstAmt: 0, SgstAmt: 0, TotItemVal: 118000,
			}},
			ValDtls: domain.ValDtls{AssVal: 100000, CgstVal: 0, SgstVal: 0, IgstVal: 18000, TotInvVal: 118000},
		},
		5: {
			Version:  domain.SchemaVersion,
			TranDtls: with("B2B", "Y"),
			DocDtls:  domain.DocDtls{Typ: "INV", No: "INV/2024/005", Dt: "25/03/2024"},
			SellerDtls: domain.PartyDtls{
				Gstin: "29AABCT1332L000", LglNm: "Small Service Provider",
				Addr1: "Service Road", Loc: "BANGALORE", Pin: 560001, Stcd: "29",
				Ph: "9876543217", Em: "service@smallprovider.com",
			},
			BuyerDtls: domain.PartyDtls{
				Gstin: "29AWGPV7107B1Z1", LglNm: "Large Manufacturing Co", Pos: "29",
				Addr1: "Industrial Area", Loc: "BANGALORE", Pin: 560001, Stcd: "29",
				Ph: "9876543218", Em: "accounts@manufacturing.com",
			},
			ItemList: []domain.Item{{
				SlNo: "1", IsServc: "Y", PrdDesc: "Consulting Services", HsnCd: "998599",
				Qty: 1, Unit: "NOS", UnitPrice: 50000, TotAmt: 50000, AssAmt: 50000,
				GstRt: 18, IgstAmt: 0, CgstAmt: 4500, SgstAmt: 4500, TotItemVal: 59000,
			}},
			ValDtls: domain.ValDtls{AssVal: 50000, CgstVal: 4500, SgstVal: 4500, IgstVal: 0, TotInvVal: 59000},
		},
		6: {
			Version:  domain.SchemaVersion,
			TranDtls: gst,
			DocDtls:  domain.DocDtls{Typ: "CRN", No: "CRN/2024/001", Dt: "30/03/2024"},
			SellerDtls: domain.PartyDtls{
				Gstin: "29AABCT1332L000", LglNm: "Original Seller Ltd",
				Addr1: "Main Road", Loc: "BANGALORE", Pin: 560001, Stcd: "29",
				Ph: "9876543219", Em: "sales@originalseller.com",
			},
			BuyerDtls: domain.PartyDtls{
				Gstin: "29AWGPV7107B1Z1", LglNm: "Original Buyer Corp", Pos: "29",
				Addr1: "Trade Center", Loc: "BANGALORE", Pin: 560001, Stcd: "29",
				Ph: "9876543220", Em: "purchase@buyercorp.com",
			},
			ItemList: []domain.Item{{
				SlNo: "1", IsServc: "N", PrdDesc: "Defective Laptop - Return", HsnCd: "84713000",
				Qty: 1, Unit: "NOS", UnitPrice: -75000, TotAmt: -75000, AssAmt: -75000,
				GstRt: 18, IgstAmt: 0, CgstAmt: -6750, SgstAmt: -6750, TotItemVal: -88500,
			}},
			ValDtls: domain.ValDtls{AssVal: -75000, CgstVal: -6750, SgstVal: -6750, IgstVal: 0, TotInvVal: -88500},
		},
		7: {
			Version:  domain.SchemaVersion,
			TranDtls: gst,
			DocDtls:  domain.DocDtls{Typ: "INV", No: "INV/2024/007", Dt: "05/04/2024"},
			SellerDtls: domain.PartyDtls{
				Gstin: "33AABCT1332L000", LglNm: "Multi Product Traders",
				Addr1: "Trade Complex", Loc: "CHENNAI", Pin: 600001, Stcd: "33",
				Ph: "9876543221", Em: "info@multitraders.com",
			},
			BuyerDtls: domain.PartyDtls{
				Gstin: "33AWGPV7107B1Z1", LglNm: "Retail Chain Stores", Pos: "33",
				Addr1: "Shopping Mall", Loc: "CHENNAI", Pin: 600001, Stcd: "33",
				Ph: "9876543222", Em: "orders@retailchain.com",
			},
			ItemList: []domain.Item{
				{
					SlNo: "1", IsServc: "N", PrdDesc: "Office Desk", HsnCd: "94033000",
					BchDtls: &domain.BchDtls{Nm: "BATCH007A"}, Qty: 10, Unit: "NOS", UnitPrice: 8000, TotAmt: 80000,
					AssAmt: 80000, GstRt: 12, IgstAmt: 0, CgstAmt: 4800, SgstAmt: 4800, TotItemVal: 89600,
				},
				{
					SlNo: "2", IsServc: "N", PrdDesc: "Office Chair", HsnCd: "94013000",
					BchDtls: &domain.BchDtls{Nm: "BATCH007B"}, Qty: 20, Unit: "NOS", UnitPrice: 3000, TotAmt: 60000,
					AssAmt: 60000, GstRt: 12, IgstAmt: 0, CgstAmt: 3600, SgstAmt: 3600, TotItemVal: 67200,
				},
				{
					SlNo: "3", IsServc: "N", PrdDesc: "LED Bulbs", HsnCd: "85395000",
					BchDtls: &domain.BchDtls{Nm: "BATCH007C"}, Qty: 100, Unit: "NOS", UnitPrice: 200, TotAmt: 20000,
					AssAmt: 20000, GstRt: 18, IgstAmt: 0, CgstAmt: 1800, SgstAmt: 1800, TotItemVal: 23600,
				},
			},
			ValDtls: domain.ValDtls{AssVal: 160000, CgstVal: 10200, SgstVal: 10200, IgstVal: 0, TotInvVal: 180400},
		},
	}
}

// DefaultSample es el documento que devuelve GET /sample.
func DefaultSample() domain.Payload {
	return domain.Payload{
		Version:  domain.SchemaVersion,
		TranDtls: domain.TranDtls{TaxSch: "GST", SupTyp: "B2B", RegRev: "N", IgstOnIntra: "N"},
		DocDtls:  domain.DocDtls{Typ: "INV", No: "INV/2024/001", Dt: "20/05/2024"},
		SellerDtls: domain.PartyDtls{
			Gstin: "29AABCT1332L000", LglNm: "ABC Company Pvt Ltd", Addr1: "5th block, Kuvempu Layout",
			Loc: "BANGALORE", Pin: 560001, Stcd: "29",
		},
		BuyerDtls: domain.PartyDtls{
			Gstin: "29AWGPV7107B1Z1", LglNm: "XYZ Company Pvt Ltd", Pos: "29", Addr1: "7th block, Kuvempu Layout",
			Loc: "BANGALORE", Pin: 560004, Stcd: "29",
		},
		ItemList: []domain.Item{{
			SlNo: "1", IsServc: "N", PrdDesc: "Laptop", HsnCd: "8471", Qty: 2, Unit: "NOS", UnitPrice: 50000,
			TotAmt: 100000, AssAmt: 100000, GstRt: 18, IgstAmt: 18000, CgstAmt: 0, SgstAmt: 0, TotItemVal: 118000,
		}},
		ValDtls: domain.ValDtls{AssVal: 100000, IgstVal: 18000, CgstVal: 0, SgstVal: 0, TotInvVal: 118000},
	}
}
