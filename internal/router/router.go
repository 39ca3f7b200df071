// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storyboardapp/backend/internal/config"
	"github.com/storyboardapp/backend/internal/handlers"
	"github.com/storyboardapp/backend/internal/middleware"
	"github.com/storyboardapp/backend/internal/protocol"
	"github.com/storyboardapp/backend/internal/services"
	"github.com/storyboardapp/backend/internal/stores"
	"github.com/storyboardapp/backend/internal/storyapi"
	"github.com/storyboardapp/backend/internal/utils"
	"github.com/storyboardapp/backend/internal/wallet"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// External collaborators
	source := storyapi.NewClient(cfg.StoryAPI)
	protocolClient := protocol.NewGatewayClient(cfg.Protocol)
	confirmer := protocol.NewConfirmer(cfg.Chain, cfg.Protocol)
	wallets := wallet.NewRegistry()

	// Stores
	likedStore := stores.NewLikedStore(db)
	licenseStore := stores.NewLicenseStore(db)
	royaltyStore := stores.NewRoyaltyStore(db)
	notificationStore := stores.NewNotificationStore(db)

	// Services
	notificationService := services.NewNotificationService(notificationStore)
	feedService := services.NewFeedService(source, cfg.Feed)
	swipeService := services.NewSwipeService(feedService, likedStore, cfg.Feed)
	licenseService := services.NewLicenseService(protocolClient, confirmer, wallets, cfg.Chain)
	remixService := services.NewRemixService(protocolClient, confirmer, wallets, cfg.Chain)
	royaltyService := services.NewRoyaltyService(protocolClient, royaltyStore)
	authService := services.NewAuthService(wallets, cfg)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, wallets)
	walletHandler := handlers.NewWalletHandler(wallets, cfg.Chain)
	assetHandler := handlers.NewAssetHandler(feedService, swipeService)
	swipeHandler := handlers.NewSwipeHandler(swipeService)
	likeHandler := handlers.NewLikeHandler(likedStore)
	licenseHandler := handlers.NewLicenseHandler(licenseService, feedService, licenseStore, notificationService)
	remixHandler := handlers.NewRemixHandler(remixService, feedService, notificationService)
	royaltyHandler := handlers.NewRoyaltyHandler(royaltyService, feedService, notificationService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS([]string{cfg.Frontend.BaseURL}))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
			"chain":   cfg.Chain.Name,
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Wallet authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/connect", authHandler.Connect)
			auth.POST("/disconnect", middleware.WalletRequired(), authHandler.Disconnect)
			auth.GET("/me", middleware.WalletRequired(), authHandler.Me)
		}

		// Wallet session routes
		walletGroup := v1.Group("/wallet")
		walletGroup.Use(middleware.WalletRequired())
		{
			walletGroup.GET("/state", walletHandler.GetState)
			walletGroup.PUT("/state", walletHandler.UpdateState)
			walletGroup.POST("/switch-chain", walletHandler.SwitchChain)
		}

		// Asset feed routes
		assets := v1.Group("/assets")
		{
			assets.GET("", middleware.OptionalAuth(), assetHandler.GetAssets)
			assets.GET("/:id", middleware.OptionalAuth(), assetHandler.GetAsset)
			assets.POST("/refresh", middleware.OptionalAuth(), assetHandler.Refresh)
		}

		// Collection routes (public)
		collections := v1.Group("/collections")
		{
			collections.GET("", assetHandler.GetCollections)
		}

		// Swipe routes
		swipe := v1.Group("/swipe")
		swipe.Use(middleware.WalletRequired())
		{
			swipe.GET("/stack", swipeHandler.GetStack)
			swipe.GET("/history", swipeHandler.History)
			swipe.POST("/decide", swipeHandler.Decide)
			swipe.POST("/undo", swipeHandler.Undo)
			swipe.POST("/reset", swipeHandler.Reset)
		}

		// Liked collection routes
		likes := v1.Group("/likes")
		likes.Use(middleware.WalletRequired())
		{
			likes.GET("", likeHandler.GetLikes)
			likes.DELETE("/:assetID", likeHandler.RemoveLike)
		}

		// License routes
		licenses := v1.Group("/licenses")
		licenses.Use(middleware.WalletRequired())
		{
			licenses.POST("/mint", middleware.TransactionRateLimit(), licenseHandler.Mint)
			licenses.GET("", licenseHandler.GetLicenses)
			licenses.GET("/asset/:assetID", licenseHandler.GetLicensesForAsset)
		}

		// Remix routes
		remix := v1.Group("/remix")
		remix.Use(middleware.WalletRequired())
		{
			remix.POST("", middleware.TransactionRateLimit(), remixHandler.Create)
		}

		// Royalty routes
		royalty := v1.Group("/royalty")
		royalty.Use(middleware.WalletRequired())
		{
			royalty.GET("/holdings", royaltyHandler.GetHoldings)
			royalty.POST("/holdings", middleware.TransactionRateLimit(), royaltyHandler.AcquireShares)
			royalty.GET("/holdings/:assetID/claimable", royaltyHandler.GetClaimable)
			royalty.POST("/holdings/:assetID/claim", middleware.TransactionRateLimit(), royaltyHandler.Claim)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		notifications.Use(middleware.WalletRequired())
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}
	}

	return r
}
