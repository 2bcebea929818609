package generator

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/davicafu/einvoicelab/internal/invoice/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultTaxRate = 18
	exportStcd     = "96"
	gstinAlphabet  = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

type stateInfo struct {
	name     string
	capital  string
	pincodes []int
}

var states = map[string]stateInfo{
	"29": {"Karnataka", "BANGALORE", []int{560001, 560002, 560003, 560004}},
	"07": {"Delhi", "NEW DELHI", []int{110001, 110002, 110003, 110004}},
	"27": {"Maharashtra", "MUMBAI", []int{400001, 400002, 400003, 400004}},
	"33": {"Tamil Nadu", "CHENNAI", []int{600001, 600002, 600003, 600004}},
	"36": {"Telangana", "HYDERABAD", []int{500001, 500002, 500003, 500004}},
}

// orden fijo para que una semilla dada produzca siempre lo mismo
var stateCodes = func() []string {
	codes := make([]string, 0, len(states))
	for code := range states {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}()

type product struct {
	name     string
	hsn      string
	category string
	minPrice int64
	maxPrice int64
}

var products = []product{
	{"Laptop Computer", "84713000", "Electronics", 30000, 150000},
	{"Mobile Phone", "85171210", "Electronics", 8000, 80000},
	{"Office Chair", "94013000", "Furniture", 2000, 15000},
}

var (
	companies  = []string{"Global", "National", "Premium", "Elite", "Standard"}
	industries = []string{"Electronics", "Textiles", "Automobiles", "Chemicals", "Metals"}
	reasons    = []string{"Order cancelled", "Price dispute", "Duplicate invoice"}

	dynamicSupplyTypes = []string{"B2B", "EXPWP", "SEZWP"}
)

// scenario fija las variantes que GenerateScenario sabe construir.
type scenario struct {
	supplyType string
	intra      bool
	inter      bool
	reverse    bool
	docType    string
}

var scenarios = map[string]scenario{
	"b2b_interstate": {supplyType: "B2B", inter: true},
	"b2b_intrastate": {supplyType: "B2B", intra: true},
	"export":         {supplyType: "EXPWP"},
	"sez":            {supplyType: "SEZWP"},
	"reverse_charge": {supplyType: "B2B", reverse: true},
	"credit_note":    {supplyType: "B2B", docType: "CRN"},
}

// Scenarios lista los nombres aceptados por GenerateScenario.
func Scenarios() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsScenario indica si GenerateScenario conoce el nombre.
func IsScenario(name string) bool {
	_, ok := scenarios[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Generator crea documentos de prueba aleatorios. Es seguro para uso concurrente.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// New crea un generador. seed == 0 usa una semilla basada en el reloj.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

func (g *Generator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Intn(n)
}

func (g *Generator) int63n(n int64) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Int63n(n)
}

func pick[T any](g *Generator, items []T) T {
	return items[g.intn(len(items))]
}

// GSTIN genera un GSTIN de 15 caracteres con el prefijo del estado.
func (g *Generator) GSTIN(stateCode string) string {
	var b strings.Builder
	b.WriteString(stateCode)
	for b.Len() < 15 {
		b.WriteByte(gstinAlphabet[g.intn(len(gstinAlphabet))])
	}
	return b.String()[:15]
}

// GenerateInvoice crea un documento de un solo item con GST al 18%.
// CGST/SGST sólo en B2B dentro del mismo estado; el resto lleva IGST.
func (g *Generator) GenerateInvoice(supplyType string) domain.Payload {
	return g.build(scenario{supplyType: supplyType})
}

// GenerateMultiple crea count documentos con tipos de suministro aleatorios.
func (g *Generator) GenerateMultiple(count int) []domain.Payload {
	out := make([]domain.Payload, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, g.GenerateInvoice(pick(g, dynamicSupplyTypes)))
	}
	return out
}

// GenerateScenario crea un documento para un escenario con nombre. Un nombre
// desconocido genera un B2B normal.
func (g *Generator) GenerateScenario(name string) domain.Payload {
	sc, ok := scenarios[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		sc = scenario{supplyType: "B2B"}
	}
	return g.build(sc)
}

func (g *Generator) build(sc scenario) domain.Payload {
	if sc.supplyType == "" {
		sc.supplyType = "B2B"
	}
	now := g.now()

	sellerState := pick(g, stateCodes)
	buyerState := sellerState
	switch {
	case sc.supplyType == "B2B" && sc.intra:
		// mismo estado
	case sc.supplyType == "B2B" && sc.inter:
		for buyerState == sellerState {
			buyerState = pick(g, stateCodes)
		}
	case sc.supplyType == "B2B":
		buyerState = pick(g, stateCodes)
	}

	isExport := strings.HasPrefix(sc.supplyType, "EXP")
	isSEZ := strings.HasPrefix(sc.supplyType, "SEZ")
	intra := sc.supplyType == "B2B" && sellerState == buyerState

	prod := pick(g, products)
	qty := decimal.NewFromInt(int64(g.intn(10) + 1))
	price := decimal.NewFromInt(prod.minPrice + g.int63n(prod.maxPrice-prod.minPrice))
	total := qty.Mul(price)
	rate := decimal.NewFromInt(DefaultTaxRate)
	tax := total.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)

	if sc.docType == "CRN" {
		price = price.Neg()
		total = total.Neg()
		tax = tax.Neg()
	}

	var cgst, sgst, igst decimal.Decimal
	if intra {
		cgst = tax.Div(decimal.NewFromInt(2)).Round(2)
		sgst = tax.Sub(cgst)
	} else {
		igst = tax
	}
	grand := total.Add(tax)

	docType := sc.docType
	if docType == "" {
		docType = "INV"
	}
	regRev := "N"
	if sc.reverse {
		regRev = "Y"
	}

	buyer := domain.PartyDtls{
		Gstin: g.GSTIN(buyerState),
		LglNm: fmt.Sprintf("%s %s Ltd", pick(g, companies), pick(g, industries)),
		Pos:   buyerState,
		Addr1: "Buyer Address",
		Loc:   states[buyerState].capital,
		Pin:   states[buyerState].pincodes[0],
		Stcd:  buyerState,
	}
	switch {
	case isExport:
		buyer.Gstin = "URP"
		buyer.Pos = exportStcd
		buyer.Loc = "PORT AREA"
		buyer.Pin = 999999
		buyer.Stcd = exportStcd
	case isSEZ:
		buyer.Pos = exportStcd
	}

	return domain.Payload{
		Version:  domain.SchemaVersion,
		TranDtls: domain.TranDtls{TaxSch: "GST", SupTyp: sc.supplyType, RegRev: regRev, IgstOnIntra: "N"},
		DocDtls: domain.DocDtls{
			Typ: docType,
			No:  fmt.Sprintf("%s/%d/%d", docType, now.Year(), g.intn(1000)+1),
			Dt:  now.Format("02/01/2006"),
		},
		SellerDtls: domain.PartyDtls{
			Gstin: g.GSTIN(sellerState),
			LglNm: fmt.Sprintf("%s %s Pvt Ltd", pick(g, companies), pick(g, industries)),
			Addr1: "Address Line 1",
			Loc:   states[sellerState].capital,
			Pin:   states[sellerState].pincodes[0],
			Stcd:  sellerState,
		},
		BuyerDtls: buyer,
		ItemList: []domain.Item{{
			SlNo:       "1",
			IsServc:    "N",
			PrdDesc:    prod.name,
			HsnCd:      prod.hsn,
			Qty:        qty.InexactFloat64(),
			Unit:       "NOS",
			UnitPrice:  price.InexactFloat64(),
			TotAmt:     total.InexactFloat64(),
			AssAmt:     total.InexactFloat64(),
			GstRt:      rate.InexactFloat64(),
			IgstAmt:    igst.InexactFloat64(),
			CgstAmt:    cgst.InexactFloat64(),
			SgstAmt:    sgst.InexactFloat64(),
			TotItemVal: grand.InexactFloat64(),
		}},
		ValDtls: domain.ValDtls{
			AssVal:    total.InexactFloat64(),
			CgstVal:   cgst.InexactFloat64(),
			SgstVal:   sgst.InexactFloat64(),
			IgstVal:   igst.InexactFloat64(),
			TotInvVal: grand.InexactFloat64(),
		},
	}
}

// SeedInvoices convierte los samples en facturas iniciales del almacén:
// IRNSAMPLE<n>, fecha aleatoria en los últimos 30 días y un 20% canceladas.
// Los IDs los asigna el almacén.
func (g *Generator) SeedInvoices() []domain.Invoice {
	now := g.now().UTC()
	samples := TestSamples()
	window := int64(30 * 24 * time.Hour)

	out := make([]domain.Invoice, 0, len(samples))
	for _, id := range SampleIDs() {
		inv := domain.Invoice{
			IRN:         fmt.Sprintf("IRNSAMPLE%d", id),
			InvoiceData: samples[id],
			Status:      domain.StatusGenerated,
			GeneratedAt: now.Add(-time.Duration(g.int63n(window))),
		}
		if g.intn(10) < 2 {
			_ = inv.Cancel(pick(g, reasons), now)
		}
		out = append(out, inv)
	}
	return out
}
