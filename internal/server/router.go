package server

import (
	"casse-auctions/internal/accounts"
	bidding "casse-auctions/internal/biddingService"
	accountshandler "casse-auctions/services/accounts/handler"
	handler "casse-auctions/services/bidding/handler"
	"casse-auctions/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Options configures the router
type Options struct {
	CookieName   string
	CookieSecure bool
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(biddingService *bidding.BiddingService, accountsService *accounts.Service, opts Options) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(SessionMiddleware(accountsService, opts.CookieName))

	biddingHandler := handler.NewBiddingHandler(biddingService)
	accountsHandler := accountshandler.NewAccountsHandler(accountsService, accountshandler.CookieOptions{
		Name:   opts.CookieName,
		Secure: opts.CookieSecure,
	})

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"ok": true}, "healthy")
	})

	auctions := router.Group("/auctions")
	{
		auctions.GET("", biddingHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id", biddingHandler.GetAuctionHandler)
		// authentication is checked by the bidding rules themselves
		auctions.POST("/:auction_id/bids", biddingHandler.PlaceBidHandler)

		auctions.POST("", RequireAdmin, biddingHandler.CreateAuctionHandler)
		auctions.PUT("/:auction_id", RequireAdmin, biddingHandler.UpdateAuctionHandler)
		auctions.DELETE("/:auction_id", RequireAdmin, biddingHandler.DeleteAuctionHandler)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/register", accountsHandler.RegisterHandler)
		auth.POST("/login", accountsHandler.LoginHandler)
		auth.POST("/logout", accountsHandler.LogoutHandler)
		auth.GET("/me", RequireIdentity, accountsHandler.MeHandler)
		auth.GET("/me/bids", RequireIdentity, biddingHandler.MyBidsHandler)
	}

	users := router.Group("/users", RequireAdmin)
	{
		users.GET("", accountsHandler.ListUsersHandler)
		users.PUT("/:user_id/status", accountsHandler.SetStatusHandler)
		users.PUT("/:user_id/role", accountsHandler.SetRoleHandler)
	}

	return router
}
