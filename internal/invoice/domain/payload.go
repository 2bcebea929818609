package domain

// Payload es el documento de e-invoice tal como lo envía el cliente (esquema GST v1.1).
// Las claves JSON se conservan para que los paths de filtrado coincidan
// (invoiceData.SellerDtls.Gstin, invoiceData.ValDtls.TotInvVal, ...).
type Payload struct {
	Version    string    `json:"Version"`
	TranDtls   TranDtls  `json:"TranDtls"`
	DocDtls    DocDtls   `json:"DocDtls"`
	SellerDtls PartyDtls `json:"SellerDtls"`
	BuyerDtls  PartyDtls `json:"BuyerDtls"`
	ItemList   []Item    `json:"ItemList"`
	ValDtls    ValDtls   `json:"ValDtls"`
}

type TranDtls struct {
	TaxSch      string `json:"TaxSch"`
	SupTyp      string `json:"SupTyp"`
	RegRev      string `json:"RegRev"`
	IgstOnIntra string `json:"IgstOnIntra"`
}

type DocDtls struct {
	Typ string `json:"Typ"`
	No  string `json:"No"`
	Dt  string `json:"Dt"` // dd/mm/yyyy
}

// PartyDtls cubre vendedor y comprador; Pos sólo aplica al comprador.
type PartyDtls struct {
	Gstin string `json:"Gstin"`
	LglNm string `json:"LglNm"`
	TrdNm string `json:"TrdNm,omitempty"`
	Pos   string `json:"Pos,omitempty"`
	Addr1 string `json:"Addr1,omitempty"`
	Addr2 string `json:"Addr2,omitempty"`
	Loc   string `json:"Loc,omitempty"`
	Pin   int    `json:"Pin,omitempty"`
	Stcd  string `json:"Stcd,omitempty"`
	Ph    string `json:"Ph,omitempty"`
	Em    string `json:"Em,omitempty"`
}

type BchDtls struct {
	Nm string `json:"Nm"`
}

type Item struct {
	SlNo       string   `json:"SlNo"`
	IsServc    string   `json:"IsServc"`
	PrdDesc    string   `json:"PrdDesc"`
	HsnCd      string   `json:"HsnCd"`
	BchDtls    *BchDtls `json:"BchDtls,omitempty"`
	Qty        float64  `json:"Qty"`
	Unit       string   `json:"Unit"`
	UnitPrice  float64  `json:"UnitPrice"`
	TotAmt     float64  `json:"TotAmt"`
	AssAmt     float64  `json:"AssAmt"`
	GstRt      float64  `json:"GstRt"`
	IgstAmt    float64  `json:"IgstAmt"`
	CgstAmt    float64  `json:"CgstAmt"`
	SgstAmt    float64  `json:"SgstAmt"`
	TotItemVal float64  `json:"TotItemVal"`
}

type ValDtls struct {
	AssVal    float64 `json:"AssVal"`
	CgstVal   float64 `json:"CgstVal"`
	SgstVal   float64 `json:"SgstVal"`
	IgstVal   float64 `json:"IgstVal"`
	TotInvVal float64 `json:"TotInvVal"`
}

// IsInterstate compara el estado del vendedor con el lugar de suministro.
func (p Payload) IsInterstate() bool {
	return p.SellerDtls.Stcd != p.BuyerDtls.Pos
}

func (p Payload) IsReverseCharge() bool {
	return p.TranDtls.RegRev == "Y"
}
