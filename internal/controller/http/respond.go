package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/therealrustam/yamdb-final/internal/apperr"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// respondError maps use-case errors onto the HTTP contract. Validation
// errors come back as a field->message body, everything else as a single
// error string.
func respondError(c *gin.Context, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		if e.Kind == apperr.KindValidation && len(e.Fields) > 0 {
			c.JSON(e.Status(), e.Fields)
			return
		}
		c.JSON(e.Status(), gin.H{"error": e.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit = defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	if raw := c.Query("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func listResponse(count int64, results interface{}) gin.H {
	return gin.H{"count": count, "results": results}
}
