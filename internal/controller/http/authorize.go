package http

import (
	"net/http"

	"github.com/therealrustam/yamdb-final/internal/access"
	"github.com/therealrustam/yamdb-final/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// actionFor classifies the request independently of HTTP verbs so the
// authorization engine stays protocol-agnostic.
func actionFor(method string) access.Action {
	switch method {
	case http.MethodPost:
		return access.ActionCreate
	case http.MethodPatch, http.MethodPut:
		return access.ActionUpdate
	case http.MethodDelete:
		return access.ActionDelete
	default:
		return access.ActionRead
	}
}

// Authorize runs the endpoint-level pass of the authorization engine
// before any handler touches state.
func Authorize(policy access.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy(middleware.CurrentUser(c), actionFor(c.Request.Method)); err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
