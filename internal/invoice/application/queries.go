package application

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	invoiceDomain "github.com/davicafu/einvoicelab/internal/invoice/domain"
	"github.com/davicafu/einvoicelab/internal/invoice/generator"
	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/celquery"
	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/query"
	sharedUtils "github.com/davicafu/einvoicelab/internal/shared/infra/utils"
)

var (
	invoiceDefaults = query.Defaults{SortBy: "generatedAt", Desc: true, Limit: query.DefaultLimit}
	sampleDefaults  = query.Defaults{SortBy: "id", Desc: false, Limit: query.MaxLimit}
)

// sampleCatalog guarda las vistas de los samples fijos, ya convertidas a records.
// Se construye una vez: los samples no cambian.
type sampleCatalog struct {
	views   []invoiceDomain.SampleView
	records []query.Record
	engine  *query.Engine
}

func newSampleCatalog() *sampleCatalog {
	c := &sampleCatalog{engine: query.NewEngine(invoiceDomain.SampleSearchPaths...)}
	samples := generator.TestSamples()
	for _, id := range generator.SampleIDs() {
		view := invoiceDomain.NewSampleView(id, generator.SampleDescription(id), samples[id])
		rec, err := query.ToRecord(view)
		if err != nil {
			continue // SampleView siempre serializa
		}
		c.views = append(c.views, view)
		c.records = append(c.records, rec)
	}
	return c
}

// ---------------- Listados ----------------

// ListInvoices filtra, ordena y pagina el snapshot actual.
// Por defecto: generatedAt desc, 10 por página.
func (s *InvoiceService) ListInvoices(params map[string]string) InvoicePage {
	q := query.ParseParams(params, invoiceDefaults)
	snap := s.repo.Snapshot()

	page := s.engine.Execute(snap.Records, q)
	return InvoicePage{
		Page:  query.MapPage(page, s.toSummary),
		Query: q,
	}
}

// ListSamples hace lo mismo sobre los samples fijos. Por defecto: id asc, 100 por página.
func (s *InvoiceService) ListSamples(params map[string]string) SamplePage {
	q := query.ParseParams(params, sampleDefaults)

	filtered := s.samples.engine.Apply(s.samples.records, q.Filters)
	sorted := query.SortRecords(filtered, q.Sort)
	page := query.Paginate(sorted, q.Page.Page, q.Page.Limit)

	return SamplePage{
		Page:  query.MapPage(page, s.toSampleView),
		Query: q,
		Total: len(filtered),
	}
}

// SampleViews devuelve todos los samples en orden de ID.
func (s *InvoiceService) SampleViews() []invoiceDomain.SampleView {
	out := make([]invoiceDomain.SampleView, len(s.samples.views))
	copy(out, s.samples.views)
	return out
}

func (s *InvoiceService) GetSample(id int) (SampleDetail, error) {
	p, ok := generator.Sample(id)
	if !ok {
		return SampleDetail{}, invoiceDomain.ErrSampleNotFound
	}
	return SampleDetail{
		Data:        p,
		SampleID:    id,
		Description: generator.SampleDescription(id),
		Type:        p.TranDtls.SupTyp,
		Metadata:    invoiceDomain.NewSampleView(id, generator.SampleDescription(id), p),
	}, nil
}

// DefaultSample es el documento de ejemplo de GET /sample.
func (s *InvoiceService) DefaultSample() invoiceDomain.Payload {
	return generator.DefaultSample()
}

// Query aplica primero la expresión CEL y después el resto de parámetros como en ListInvoices.
func (s *InvoiceService) Query(where string, params map[string]string) (InvoicePage, error) {
	prg, err := celquery.Compile(where)
	if err != nil {
		return InvoicePage{}, err
	}

	q := query.ParseParams(params, invoiceDefaults)
	matched := prg.Filter(s.repo.Snapshot().Records)

	page := s.engine.Execute(matched, q)
	return InvoicePage{
		Page:  query.MapPage(page, s.toSummary),
		Query: q,
	}, nil
}

// FilterOptions lista los valores distintos de los campos más filtrados.
func (s *InvoiceService) FilterOptions() FilterOptions {
	statuses := map[string]struct{}{}
	supplyTypes := map[string]struct{}{}
	docTypes := map[string]struct{}{}
	states := map[string]struct{}{}

	for _, inv := range s.repo.Snapshot().Invoices {
		statuses[string(inv.Status)] = struct{}{}
		supplyTypes[inv.InvoiceData.TranDtls.SupTyp] = struct{}{}
		docTypes[inv.InvoiceData.DocDtls.Typ] = struct{}{}
		states[inv.InvoiceData.SellerDtls.Stcd] = struct{}{}
		states[inv.InvoiceData.BuyerDtls.Stcd] = struct{}{}
	}

	return FilterOptions{
		Statuses:      sortedKeys(statuses),
		SupplyTypes:   sortedKeys(supplyTypes),
		DocumentTypes: sortedKeys(docTypes),
		States:        sortedKeys(states),
		SortFields:    invoiceDomain.InvoiceFields,
		SortOrders:    []string{"asc", "desc"},
		Scenarios:     generator.Scenarios(),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// ---------------- Búsqueda ----------------

// Search combina el término con el resto de filtros (AND) sobre facturas, samples o ambos.
// Un tipo desconocido no busca en ningún sitio. Todas las coincidencias puntúan 1.0.
func (s *InvoiceService) Search(term, kind string, filters map[string]string) (SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return SearchResult{}, invoiceDomain.ErrEmptySearch
	}
	kind = sharedUtils.FirstNonBlank(kind, SearchAll)

	spec := query.FilterSpec{}
	for k, v := range filters {
		spec[k] = v
	}
	spec[query.SearchField] = term

	hits := make([]SearchHit, 0)
	if kind == SearchAll || kind == SearchInvoices {
		for _, rec := range s.engine.Apply(s.repo.Snapshot().Records, spec) {
			hits = append(hits, SearchHit{Type: "invoice", Data: s.toSummary(rec), Score: 1.0})
		}
	}
	if kind == SearchAll || kind == SearchSamples {
		for _, rec := range s.samples.engine.Apply(s.samples.records, spec) {
			hits = append(hits, SearchHit{Type: "sample", Data: s.toSampleView(rec), Score: 1.0})
		}
	}

	if filters == nil {
		filters = map[string]string{}
	}
	return SearchResult{
		Query:   term,
		Type:    kind,
		Count:   len(hits),
		Results: hits,
		Filters: filters,
	}, nil
}

// ---------------- Estadísticas ----------------

// Stats agrega las facturas que pasan los filtros (los parámetros de control se ignoran).
func (s *InvoiceService) Stats(filters map[string]string) Stats {
	snap := s.repo.Snapshot()
	records := s.engine.Apply(snap.Records, query.FilterSpec(filters))

	st := Stats{
		ByStatus:       map[string]int{},
		BySupplyType:   map[string]int{},
		ByDocumentType: map[string]int{},
		TotalSamples:   len(s.samples.views),
		Generation:     snap.Generation,
	}

	total := decimal.Zero
	for _, rec := range records {
		sum := s.toSummary(rec)

		st.TotalInvoices++
		st.ByStatus[string(sum.Status)]++
		st.BySupplyType[sum.SupplyType]++
		st.ByDocumentType[sum.DocumentType]++

		switch sum.Status {
		case invoiceDomain.StatusGenerated:
			st.Generated++
		case invoiceDomain.StatusCancelled:
			st.Cancelled++
		}
		if sum.IsInterstate {
			st.Interstate++
		} else {
			st.Intrastate++
		}
		if sum.ReverseCharge {
			st.ReverseCharge++
		}

		total = total.Add(decimal.NewFromFloat(sum.TotalValue))
	}

	st.TotalValue = total.Round(2).InexactFloat64()
	if st.TotalInvoices > 0 {
		st.AverageValue = total.Div(decimal.NewFromInt(int64(st.TotalInvoices))).Round(2).InexactFloat64()
	}
	return st
}

// ---------------- Conversión de records ----------------

func (s *InvoiceService) toSummary(rec query.Record) invoiceDomain.Summary {
	var sum invoiceDomain.Summary
	if err := query.FromRecord(rec, &sum); err != nil {
		s.log.Warn("Invalid invoice record", zap.Error(err))
	}
	return sum
}

func (s *InvoiceService) toSampleView(rec query.Record) invoiceDomain.SampleView {
	var view invoiceDomain.SampleView
	if err := query.FromRecord(rec, &view); err != nil {
		s.log.Warn("Invalid sample record", zap.Error(err))
	}
	return view
}
