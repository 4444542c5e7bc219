// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agridex/market-gateway/internal/chain"
	"github.com/agridex/market-gateway/internal/config"
	"github.com/agridex/market-gateway/internal/handlers"
	"github.com/agridex/market-gateway/internal/middleware"
	"github.com/agridex/market-gateway/internal/services"
)

// Initialize wires the full service graph and returns the engine plus the
// controller so the caller can stop its poller on shutdown.
func Initialize(cfg *config.Config) (*gin.Engine, *services.MarketService) {
	// The wallet capability is optional; without it every connect attempt
	// fails with a wallet-not-found notification, which is the intended
	// user-visible behavior.
	var wallet chain.Wallet
	if cfg.Wallet.ServiceURL != "" {
		wallet = chain.NewRemoteWallet(cfg.Wallet.ServiceURL)
	}

	notificationService := services.NewNotificationService(0)
	gatewayService := services.NewGatewayService(cfg, wallet, chain.NewRestDialer())
	marketService := services.NewMarketService(gatewayService, notificationService,
		time.Duration(cfg.Chain.RefreshInterval)*time.Second)

	marketHandler := handlers.NewMarketHandler(marketService, notificationService)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		wallet := v1.Group("/wallet")
		{
			wallet.POST("/connect", marketHandler.Connect)
			wallet.GET("/status", marketHandler.Status)
		}

		products := v1.Group("/products")
		{
			products.GET("", marketHandler.GetProducts)
			products.POST("/refresh", marketHandler.RefreshProducts)
			products.GET("/:id", marketHandler.GetProduct)
			products.POST("", marketHandler.RegisterProduct)
			products.POST("/:id/buy", marketHandler.BuyProduct)
		}

		v1.GET("/notifications", marketHandler.GetNotifications)
	}

	return r, marketService
}
