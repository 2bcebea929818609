package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/davicafu/einvoicelab/pkg/utils"
)

// NotFound responde 404 en JSON e incluye la lista de endpoints disponibles.
func NotFound(endpoints []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.SendErrorWith(c, http.StatusNotFound, "Endpoint not found",
			fmt.Sprintf("The API endpoint %s %s does not exist", c.Request.Method, c.Request.URL.RequestURI()),
			gin.H{"availableEndpoints": endpoints},
		)
	}
}
