package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pharmstore/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewRouter assembles the HTTP router
func NewRouter(cfg config.ServerConfig, grnHandler *GRNHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(cfg.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(StoreContext())
	{
		api.GET("/grns/:id", grnHandler.Get)
		api.POST("/grns/:id/complete", grnHandler.Complete)
		api.GET("/purchase-orders/:id", grnHandler.GetPurchaseOrder)
		api.GET("/barcodes/:barcode", grnHandler.LookupBarcode)
	}

	return router
}
