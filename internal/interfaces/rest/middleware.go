package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	storeIDKey = "store_id"
	actorIDKey = "actor_id"
)

// StoreContext extracts the acting store from the X-Store-ID header set by
// the authentication layer. Requests without a valid store are rejected;
// every resource in the system is store-scoped.
func StoreContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-Store-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Missing store identity",
			})
			return
		}
		storeID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Invalid store identity",
			})
			return
		}
		c.Set(storeIDKey, storeID)

		// The gateway also forwards the authenticated operator; writes are
		// attributed to it on the stock ledger
		if raw := c.GetHeader("X-Actor-ID"); raw != "" {
			actorID, err := uuid.Parse(raw)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid actor identity",
				})
				return
			}
			c.Set(actorIDKey, actorID)
		}

		c.Next()
	}
}

// StoreID returns the acting store from the request context
func StoreID(c *gin.Context) uuid.UUID {
	return c.MustGet(storeIDKey).(uuid.UUID)
}

// ActorID returns the authenticated operator, or uuid.Nil for callers the
// gateway did not attribute to a person
func ActorID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(actorIDKey); ok {
		return v.(uuid.UUID)
	}
	return uuid.Nil
}

// RequestLogger logs each request with its outcome
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("Request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
