package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Todas las respuestas llevan "success". Los errores llevan además "message"
// y, opcionalmente, "error" con el título HTTP.

// SendSuccess envía {"success": true, "data": data}.
func SendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// SendSuccessWith añade success=true a un cuerpo arbitrario.
func SendSuccessWith(c *gin.Context, statusCode int, body gin.H) {
	body["success"] = true
	c.JSON(statusCode, body)
}

// SendError envía una respuesta de error con un formato estandarizado.
func SendError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}

// SendErrorWith envía un error con título y campos extra (ej. "errors", "availableEndpoints").
func SendErrorWith(c *gin.Context, statusCode int, title, message string, extra gin.H) {
	body := gin.H{
		"success": false,
		"error":   title,
		"message": message,
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// AbortWithError corta la cadena de middlewares con un error estándar.
func AbortWithError(c *gin.Context, statusCode int, title, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{
		"success": false,
		"error":   title,
		"message": message,
	})
}

// --- Helpers específicos para errores comunes ---

func SendBadRequest(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

func SendNotFound(c *gin.Context, message string) {
	SendError(c, http.StatusNotFound, message)
}

func SendInternalServerError(c *gin.Context, message string) {
	SendErrorWith(c, http.StatusInternalServerError, "Server Error", message, nil)
}
