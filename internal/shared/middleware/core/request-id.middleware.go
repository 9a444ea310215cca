package core

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-Id"
	RequestIDKey    = "request_id"
)

// RequestIDHandler type spécifique pour Fx
type RequestIDHandler gin.HandlerFunc

// RequestIDMiddleware propage l'identifiant de requête entrant ou en génère un
func RequestIDMiddleware() RequestIDHandler {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
