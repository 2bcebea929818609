package generator

import (
	"strings"
	"testing"
	"time"

	"github.com/davicafu/einvoicelab/internal/invoice/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestGenerator() *Generator {
	return New(42).WithClock(func() time.Time { return fixedNow })
}

func assertTaxesAddUp(t *testing.T, p domain.Payload) {
	t.Helper()
	v := p.ValDtls
	assert.InDelta(t, v.AssVal+v.CgstVal+v.SgstVal+v.IgstVal, v.TotInvVal, 0.01)
	require.Len(t, p.ItemList, 1)
	assert.InDelta(t, v.TotInvVal, p.ItemList[0].TotItemVal, 0.01)
}

func TestTestSamples(t *testing.T) {
	samples := TestSamples()

	require.Len(t, samples, 7)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, SampleIDs())
	for id, p := range samples {
		assert.Empty(t, domain.ValidateBasic(p), "sample %d debe ser válido", id)
	}
	assert.Equal(t, "CRN", samples[6].DocDtls.Typ)
	assert.Len(t, samples[7].ItemList, 3)
	assert.Equal(t, 442500.0, samples[1].ValDtls.TotInvVal)

	// cada llamada devuelve copias independientes
	changed := samples[1]
	changed.DocDtls.No = "changed"
	samples[1] = changed
	again, ok := Sample(1)
	require.True(t, ok)
	assert.Equal(t, "INV/2024/001", again.DocDtls.No)
}

func TestSampleDescription(t *testing.T) {
	assert.Equal(t, "Credit Note", SampleDescription(6))
	assert.Equal(t, "Sample Invoice", SampleDescription(99))
}

func TestGSTIN(t *testing.T) {
	g := newTestGenerator()

	gstin := g.GSTIN("29")

	assert.Len(t, gstin, 15)
	assert.True(t, strings.HasPrefix(gstin, "29"))
	assert.Equal(t, strings.ToUpper(gstin), gstin)
}

func TestGenerateInvoice(t *testing.T) {
	g := newTestGenerator()

	for _, typ := range []string{"B2B", "EXPWP", "SEZWP"} {
		t.Run(typ, func(t *testing.T) {
			p := g.GenerateInvoice(typ)

			assert.Empty(t, domain.ValidateBasic(p))
			assert.Equal(t, typ, p.TranDtls.SupTyp)
			assert.Equal(t, "15/06/2024", p.DocDtls.Dt)
			assert.True(t, strings.HasPrefix(p.DocDtls.No, "INV/2024/"))
			assertTaxesAddUp(t, p)
			if typ != "B2B" {
				assert.Zero(t, p.ValDtls.CgstVal)
				assert.NotZero(t, p.ValDtls.IgstVal)
			}
		})
	}
}

func TestGenerateScenario(t *testing.T) {
	g := newTestGenerator()

	intra := g.GenerateScenario("b2b_intrastate")
	assert.Equal(t, intra.SellerDtls.Stcd, intra.BuyerDtls.Stcd)
	assert.Zero(t, intra.ValDtls.IgstVal)
	assert.InDelta(t, intra.ValDtls.CgstVal+intra.ValDtls.SgstVal, intra.ValDtls.AssVal*0.18, 0.01)
	assertTaxesAddUp(t, intra)

	inter := g.GenerateScenario("b2b_interstate")
	assert.NotEqual(t, inter.SellerDtls.Stcd, inter.BuyerDtls.Stcd)
	assert.Zero(t, inter.ValDtls.CgstVal)
	assertTaxesAddUp(t, inter)

	export := g.GenerateScenario("export")
	assert.Equal(t, "URP", export.BuyerDtls.Gstin)
	assert.Equal(t, "96", export.BuyerDtls.Pos)

	rc := g.GenerateScenario("reverse_charge")
	assert.True(t, rc.IsReverseCharge())

	crn := g.GenerateScenario("credit_note")
	assert.Equal(t, "CRN", crn.DocDtls.Typ)
	assert.Less(t, crn.ValDtls.TotInvVal, 0.0)
	assertTaxesAddUp(t, crn)

	unknown := g.GenerateScenario("does-not-exist")
	assert.Equal(t, "B2B", unknown.TranDtls.SupTyp)
}

func TestGenerateMultiple(t *testing.T) {
	g := newTestGenerator()

	got := g.GenerateMultiple(20)

	require.Len(t, got, 20)
	for _, p := range got {
		assert.Contains(t, dynamicSupplyTypes, p.TranDtls.SupTyp)
	}
	assert.Empty(t, g.GenerateMultiple(0))
}

func TestGenerator_DeterministicWithSeed(t *testing.T) {
	a := newTestGenerator().GenerateMultiple(5)
	b := newTestGenerator().GenerateMultiple(5)

	assert.Equal(t, a, b)
}

func TestSeedInvoices(t *testing.T) {
	g := newTestGenerator()

	seeded := g.SeedInvoices()

	require.Len(t, seeded, 7)
	for i, inv := range seeded {
		assert.Equal(t, "IRNSAMPLE"+string(rune('1'+i)), inv.IRN)
		assert.False(t, inv.GeneratedAt.After(fixedNow))
		assert.True(t, inv.GeneratedAt.After(fixedNow.Add(-31*24*time.Hour)))
		if inv.Status == domain.StatusCancelled {
			assert.NotNil(t, inv.CancelledAt)
			assert.Contains(t, reasons, inv.CancelReason)
		}
	}
}
