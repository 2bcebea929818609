package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davicafu/einvoicelab/internal/invoice/application"
	invoiceDomain "github.com/davicafu/einvoicelab/internal/invoice/domain"
	"github.com/davicafu/einvoicelab/internal/invoice/generator"
	"github.com/davicafu/einvoicelab/internal/shared/infra/platform/celquery"
	"github.com/davicafu/einvoicelab/pkg/utils"
)

// APIVersion se publica en /health.
const APIVersion = "2.2.0"

// InvoiceHandler encapsula los endpoints HTTP de las e-invoices
type InvoiceHandler struct {
	service *application.InvoiceService
	log     *zap.Logger
}

// NewInvoiceHandler crea un nuevo InvoiceHandler
func NewInvoiceHandler(service *application.InvoiceService, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{service: service, log: log}
}

// ---------------- Públicos ----------------

// Health endpoint GET /health
func (h *InvoiceHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "OK",
		"message":       "E-Invoice API is running smoothly",
		"timestamp":     time.Now().UTC().Format(time.RFC3339Nano),
		"totalInvoices": h.service.Count(),
		"version":       APIVersion,
		"features": gin.H{
			"genericFiltering":    true,
			"dynamicFieldSupport": true,
			"pagination":          true,
			"sorting":             true,
			"search":              true,
			"expressionQuery":     true,
		},
	})
}

// Stats endpoint GET /api/e-invoice/stats. Acepta los mismos filtros que /invoices.
func (h *InvoiceHandler) Stats(c *gin.Context) {
	utils.SendSuccess(c, http.StatusOK, h.service.Stats(queryParams(c)))
}

// ListSamples endpoint GET /api/e-invoice/samples
func (h *InvoiceHandler) ListSamples(c *gin.Context) {
	res := h.service.ListSamples(queryParams(c))

	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"data":    res.Page.Data,
		"count":   len(res.Page.Data),
		"total":   res.Total,
		"filters": res.Query.Filters,
		"pagination": gin.H{
			"page":  res.Page.Page,
			"limit": res.Page.Limit,
			"total": res.Page.Total,
			"pages": res.Page.Pages,
		},
		"sort": gin.H{
			"by":    res.Query.Sort.Field,
			"order": res.Query.Sort.Order(),
		},
	})
}

// DefaultSample endpoint GET /api/e-invoice/sample
func (h *InvoiceHandler) DefaultSample(c *gin.Context) {
	utils.SendSuccess(c, http.StatusOK, h.service.DefaultSample())
}

// GetSample endpoint GET /api/e-invoice/sample/:id
func (h *InvoiceHandler) GetSample(c *gin.Context) {
	idStr := c.Param("id")

	if id, convErr := strconv.Atoi(idStr); convErr == nil {
		if detail, err := h.service.GetSample(id); err == nil {
			utils.SendSuccessWith(c, http.StatusOK, gin.H{
				"data":        detail.Data,
				"sampleId":    detail.SampleID,
				"description": detail.Description,
				"type":        detail.Type,
				"metadata":    detail.Metadata,
			})
			return
		}
	}

	views := h.service.SampleViews()
	utils.SendErrorWith(c, http.StatusNotFound, "Sample not found",
		fmt.Sprintf("Sample %s not found. Available samples: 1-%d", idStr, len(views)),
		gin.H{"availableSamples": views},
	)
}

// Fields endpoint GET /api/e-invoice/fields
func (h *InvoiceHandler) Fields(c *gin.Context) {
	utils.SendSuccess(c, http.StatusOK, invoiceDomain.Catalog())
}

// ValidationRules endpoint GET /api/e-invoice/validation-rules
func (h *InvoiceHandler) ValidationRules(c *gin.Context) {
	utils.SendSuccess(c, http.StatusOK, invoiceDomain.Rules())
}

// FilterOptions endpoint GET /api/e-invoice/filter-options
func (h *InvoiceHandler) FilterOptions(c *gin.Context) {
	utils.SendSuccess(c, http.StatusOK, h.service.FilterOptions())
}

// ---------------- Protegidos: lectura ----------------

// ListInvoices endpoint GET /api/e-invoice/invoices
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	h.sendInvoicePage(c, h.service.ListInvoices(queryParams(c)))
}

// QueryInvoices endpoint POST /api/e-invoice/query. La expresión va en el cuerpo;
// paginación, orden y filtros adicionales en la query string.
func (h *InvoiceHandler) QueryInvoices(c *gin.Context) {
	var req struct {
		Where string `json:"where" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendBadRequest(c, "Body must be a JSON object with a non-empty \"where\" expression")
		return
	}

	page, err := h.service.Query(req.Where, queryParams(c))
	if errors.Is(err, celquery.ErrInvalidExpression) {
		utils.SendErrorWith(c, http.StatusBadRequest, "Bad Request", "Invalid where expression", gin.H{"details": err.Error()})
		return
	}
	if err != nil {
		h.log.Error("Expression query failed", zap.Error(err))
		utils.SendInternalServerError(c, "Error querying invoices")
		return
	}
	h.sendInvoicePage(c, page)
}

// GetInvoice endpoint GET /api/e-invoice/invoices/:irn
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.service.GetByIRN(c.Request.Context(), c.Param("irn"))
	if err != nil {
		h.sendDomainError(c, err)
		return
	}
	utils.SendSuccess(c, http.StatusOK, inv)
}

// Search endpoint GET /api/e-invoice/search?q=&type=
func (h *InvoiceHandler) Search(c *gin.Context) {
	params := queryParams(c)
	term, kind := params["q"], params["type"]
	delete(params, "q")
	delete(params, "type")

	res, err := h.service.Search(term, kind, params)
	if err != nil {
		h.sendDomainError(c, err)
		return
	}

	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"query":   res.Query,
		"type":    res.Type,
		"count":   res.Count,
		"results": res.Results,
		"filters": res.Filters,
	})
}

// ---------------- Protegidos: escritura ----------------

// Generate endpoint POST /api/e-invoice/generate
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var payload invoiceDomain.Payload
	if !h.bindPayload(c, &payload) {
		return
	}

	res, err := h.service.Generate(c.Request.Context(), payload)
	if err != nil {
		h.sendDomainError(c, err)
		return
	}

	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"data":    res,
		"message": "E-Invoice generated successfully",
	})
}

// GenerateDynamic endpoint POST /api/e-invoice/generate-dynamic. El cuerpo es opcional.
func (h *InvoiceHandler) GenerateDynamic(c *gin.Context) {
	var req struct {
		Count    int    `json:"count"`
		Scenario string `json:"scenario"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.SendBadRequest(c, "Invalid JSON payload")
		return
	}

	invoices, err := h.service.GenerateDynamic(c.Request.Context(), req.Count, req.Scenario)
	if err != nil {
		h.sendDomainError(c, err)
		return
	}

	data := make([]invoiceDomain.Summary, 0, len(invoices))
	for _, inv := range invoices {
		data = append(data, invoiceDomain.NewSummary(inv))
	}
	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"message":       fmt.Sprintf("Generated %d invoices", len(data)),
		"count":         len(data),
		"data":          data,
		"totalInvoices": h.service.Count(),
	})
}

// Validate endpoint POST /api/e-invoice/validate. Los fallos de validación responden 200.
func (h *InvoiceHandler) Validate(c *gin.Context) {
	var payload invoiceDomain.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"isValid": false,
			"message": "Validation error",
			"error":   bindErrorMessage(err),
		})
		return
	}

	errs := h.service.Validate(payload)
	if len(errs) > 0 {
		details := make([]gin.H, 0, len(errs))
		for _, msg := range errs {
			details = append(details, gin.H{"message": msg})
		}
		c.JSON(http.StatusOK, gin.H{"isValid": false, "errors": details})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isValid": true,
		"message": "E-Invoice data is valid for basic checks",
	})
}

// Cancel endpoint POST /api/e-invoice/cancel
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	var req struct {
		IRN          string `json:"irn"`
		CancelReason string `json:"cancelReason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.SendBadRequest(c, "Invalid JSON payload")
		return
	}

	inv, err := h.service.Cancel(c.Request.Context(), req.IRN, req.CancelReason)
	if err != nil {
		h.sendDomainError(c, err)
		return
	}

	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"message": "Invoice cancelled successfully",
		"data": gin.H{
			"irn":    inv.IRN,
			"status": inv.Status,
		},
	})
}

// Reset endpoint POST /api/e-invoice/reset
func (h *InvoiceHandler) Reset(c *gin.Context) {
	res, err := h.service.Reset(c.Request.Context())
	if err != nil {
		h.sendDomainError(c, err)
		return
	}
	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"message": "Invoice store reset to initial data",
		"data":    res,
	})
}

// ---------------- Helpers ----------------

func (h *InvoiceHandler) sendInvoicePage(c *gin.Context, res application.InvoicePage) {
	p := res.Page

	c.Header("X-Total-Count", strconv.Itoa(p.Total))
	c.Header("X-Page-Count", strconv.Itoa(p.Pages))
	c.Header("X-Page", strconv.Itoa(p.Page))
	c.Header("X-Limit", strconv.Itoa(p.Limit))
	c.Header("X-Has-Next", strconv.FormatBool(p.HasNext))
	c.Header("X-Has-Prev", strconv.FormatBool(p.HasPrev))

	utils.SendSuccessWith(c, http.StatusOK, gin.H{
		"data": p.Data,
		"pagination": gin.H{
			"page":    p.Page,
			"limit":   p.Limit,
			"total":   p.Total,
			"pages":   p.Pages,
			"hasNext": p.HasNext,
			"hasPrev": p.HasPrev,
		},
		"filters": res.Query.Filters,
		"sort": gin.H{
			"by":    res.Query.Sort.Field,
			"order": res.Query.Sort.Order(),
		},
		"availableFields": availableFields,
	})
}

var availableFields = append(append([]string{}, invoiceDomain.InvoiceFields...), invoiceDomain.NestedFields...)

// bindPayload decodifica el documento; un cuerpo de más de 2MB o mal formado es 400.
func (h *InvoiceHandler) bindPayload(c *gin.Context, dest *invoiceDomain.Payload) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		utils.SendBadRequest(c, bindErrorMessage(err))
		return false
	}
	return true
}

func bindErrorMessage(err error) string {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return invoiceDomain.ErrPayloadTooLarge.Error()
	}
	return "Invalid JSON payload"
}

// sendDomainError traduce los errores de dominio a respuestas HTTP.
func (h *InvoiceHandler) sendDomainError(c *gin.Context, err error) {
	var verr *invoiceDomain.ValidationError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  verr.Errors,
		})
	case errors.Is(err, invoiceDomain.ErrPayloadTooLarge):
		utils.SendBadRequest(c, "Payload size exceeds 2MB limit")
	case errors.Is(err, invoiceDomain.ErrIRNRequired):
		utils.SendBadRequest(c, "IRN is required")
	case errors.Is(err, invoiceDomain.ErrEmptySearch):
		utils.SendBadRequest(c, "Search query (q) is required")
	case errors.Is(err, invoiceDomain.ErrUnknownScenario):
		utils.SendErrorWith(c, http.StatusBadRequest, "Bad Request", err.Error(),
			gin.H{"availableScenarios": generator.Scenarios()})
	case errors.Is(err, invoiceDomain.ErrInvoiceNotFound):
		utils.SendNotFound(c, "Invoice not found")
	case errors.Is(err, invoiceDomain.ErrInvoiceAlreadyCancelled):
		utils.SendError(c, http.StatusConflict, "Invoice is already cancelled")
	default:
		h.log.Error("Unhandled invoice error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		utils.SendInternalServerError(c, "Something went wrong")
	}
}

// queryParams aplana la query string; de un parámetro repetido se queda el primer valor.
func queryParams(c *gin.Context) map[string]string {
	values := c.Request.URL.Query()
	params := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}
	return params
}
