package http

import (
	"github.com/gin-gonic/gin"

	invoiceDomain "github.com/davicafu/einvoicelab/internal/invoice/domain"
	"github.com/davicafu/einvoicelab/internal/shared/infra/http/middleware"
)

// AvailableEndpoints se lista en las respuestas 404.
var AvailableEndpoints = []string{
	"GET    /health",
	"GET    /api/e-invoice/invoices",
	"GET    /api/e-invoice/invoices/:irn",
	"GET    /api/e-invoice/samples",
	"GET    /api/e-invoice/sample",
	"GET    /api/e-invoice/sample/:id",
	"GET    /api/e-invoice/fields",
	"GET    /api/e-invoice/filter-options",
	"GET    /api/e-invoice/validation-rules",
	"GET    /api/e-invoice/search",
	"GET    /api/e-invoice/stats",
	"POST   /api/e-invoice/generate",
	"POST   /api/e-invoice/generate-dynamic",
	"POST   /api/e-invoice/validate",
	"POST   /api/e-invoice/cancel",
	"POST   /api/e-invoice/reset",
	"POST   /api/e-invoice/query",
}

// RegisterInvoiceRoutes monta las rutas. protect es el control de acceso de las rutas
// protegidas (API key, Basic o Bearer).
func RegisterInvoiceRoutes(r *gin.Engine, handler *InvoiceHandler, protect gin.HandlerFunc) {
	r.GET("/health", handler.Health)

	api := r.Group("/api/e-invoice", middleware.ValidateAccept())
	{
		api.GET("/stats", handler.Stats)
		api.GET("/samples", handler.ListSamples)
		api.GET("/sample", handler.DefaultSample)
		api.GET("/sample/:id", handler.GetSample)
		api.GET("/fields", handler.Fields)
		api.GET("/validation-rules", handler.ValidationRules)
		api.GET("/filter-options", handler.FilterOptions)
	}

	protected := api.Group("", protect, middleware.BodyLimit(invoiceDomain.MaxPayloadSize))
	{
		protected.GET("/invoices", handler.ListInvoices)
		protected.GET("/invoices/:irn", handler.GetInvoice)
		protected.GET("/search", handler.Search)
		protected.POST("/query", handler.QueryInvoices)
		protected.POST("/generate", handler.Generate)
		protected.POST("/generate-dynamic", handler.GenerateDynamic)
		protected.POST("/validate", handler.Validate)
		protected.POST("/cancel", handler.Cancel)
		protected.POST("/reset", handler.Reset)
	}
}
