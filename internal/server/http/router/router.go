package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/minegram/minegram/internal/server/http/handlers"
	"github.com/minegram/minegram/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.AppFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	miningHandler := handlers.NewMiningHandler(facade)
	withdrawHandler := handlers.NewWithdrawHandler(facade)
	referralHandler := handlers.NewReferralHandler()

	engine.POST("/auth/login", authHandler.Login)

	api := engine.Group("/api")
	api.Use(middleware.AuthRequired(facade))
	api.GET("/mining/status", miningHandler.Status)
	api.POST("/mining/collect", miningHandler.Collect)
	api.POST("/mining/ad", miningHandler.WatchAd)
	api.GET("/withdraw/coins", withdrawHandler.Coins)
	api.POST("/withdraw", withdrawHandler.Request)
	api.GET("/withdraw/history", withdrawHandler.History)
	api.GET("/referral/stats", referralHandler.Stats)

	return engine
}
