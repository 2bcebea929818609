package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	sharedCache "github.com/davicafu/einvoicelab/internal/shared/infra/platform/cache"
	"github.com/davicafu/einvoicelab/pkg/utils"
)

const (
	CSRFCookie = "CSRF-TOKEN"
	CSRFHeader = "X-CSRF-TOKEN"
)

// RequireJSON exige Content-Type application/json en POST, PUT y PATCH.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		contentType := c.GetHeader("Content-Type")
		if contentType == "" {
			utils.AbortWithError(c, http.StatusBadRequest, "Bad Request", "Missing Content-Type header")
			return
		}
		if !strings.Contains(strings.ToLower(contentType), "application/json") {
			utils.AbortWithError(c, http.StatusUnsupportedMediaType, "Unsupported Media Type", "Content-Type must be application/json")
			return
		}
		c.Next()
	}
}

// ValidateAccept rechaza a los clientes que piden XML explícitamente.
func ValidateAccept() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.Contains(strings.ToLower(c.GetHeader("Accept")), "application/xml") {
			utils.AbortWithError(c, http.StatusNotAcceptable, "Not Acceptable", "API only supports application/json")
			return
		}
		c.Next()
	}
}

// BodyLimit corta el cuerpo en max bytes; al pasarse, el bind JSON falla con *http.MaxBytesError.
func BodyLimit(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
		}
		c.Next()
	}
}

// RateLimit cuenta peticiones por IP en ventanas fijas. El contador puede ser
// Redis (compartido entre réplicas) o la caché en memoria. Si el contador falla
// la petición pasa: preferimos servir a bloquear.
func RateLimit(counter sharedCache.Counter, scope string, limit int, window time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", scope, c.ClientIP())
		count, err := counter.Incr(c.Request.Context(), key, window)
		if err != nil {
			log.Warn("Rate limit counter unavailable", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			utils.AbortWithError(c, http.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded. Please try again later.")
			return
		}
		c.Next()
	}
}

// CSRFToken emite un token nuevo en cookie y en el cuerpo (double submit cookie).
func CSRFToken(c *gin.Context) {
	token := uuid.NewString()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(CSRFCookie, token, 3600, "/", "", false, false)
	utils.SendSuccessWith(c, http.StatusOK, gin.H{"csrfToken": token})
}

// CSRFProtect exige que la cookie y la cabecera existan y coincidan en métodos que modifican.
func CSRFProtect() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		cookie, err := c.Cookie(CSRFCookie)
		header := c.GetHeader(CSRFHeader)
		if err != nil || cookie == "" || header == "" || cookie != header {
			utils.AbortWithError(c, http.StatusForbidden, "Forbidden",
				"CSRF Validation Failed. Missing or mismatched token (Double Submit Cookie required).")
			return
		}
		c.Next()
	}
}
