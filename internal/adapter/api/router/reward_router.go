package router

import (
	"reclaim/internal/adapter/api/handler"
	"reclaim/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupRewardRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	rewardHandler := handler.GetRewardHandler()

	e.GET("/v1/items/:id/reward", rewardHandler.GetByItem)

	rewards := e.Group("/v1/rewards")
	rewards.Use(authMiddleware.Authenticate)
	rewards.POST("", rewardHandler.CreateReward)
	rewards.GET("/mine", rewardHandler.ListMyRewards)
	rewards.POST("/:id/cancel", rewardHandler.CancelReward)
	rewards.POST("/:id/claims", rewardHandler.ClaimReward)
	rewards.GET("/:id/claims", rewardHandler.ListClaims)

	claims := e.Group("/v1/claims")
	claims.Use(authMiddleware.Authenticate)
	claims.GET("/mine", rewardHandler.ListMyClaims)
	claims.POST("/:id/approve", rewardHandler.ApproveClaim)
	claims.POST("/:id/reject", rewardHandler.RejectClaim)
}
