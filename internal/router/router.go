package router

import (
	"github.com/blues/cfl/internal/clock"
	"github.com/blues/cfl/internal/handler"
	"github.com/blues/cfl/internal/identity"
	"github.com/blues/cfl/internal/logic"
	"github.com/blues/cfl/internal/payment"
	"github.com/blues/cfl/internal/rent"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, rail payment.Rail, meter rent.Meter,
	clk clock.Clock, policy logic.Policy) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "crowdfunding-ledger",
		})
	})

	locks := logic.NewLocks()
	idp := identity.NewHeaderProvider()

	campaignHandler := handler.NewCampaignHandler(
		logic.NewCampaignLogic(db, rail, meter, clk, policy, locks),
		logic.NewHistoryLogic(db),
		idp,
	)
	contributeHandler := handler.NewContributeHandler(
		logic.NewContributeLogic(db, rail, clk, policy, locks),
		idp,
	)
	refundHandler := handler.NewRefundHandler(
		logic.NewLifecycleLogic(db, rail, clk, locks),
		idp,
	)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.Launch)
			campaigns.GET("/active", campaignHandler.GetActive)
			campaigns.GET("/successful", campaignHandler.GetSuccessful)
			campaigns.GET("/cancelled", campaignHandler.GetCancelled)
			campaigns.GET("/:id/exists", campaignHandler.CheckExists)
			campaigns.DELETE("/:id", campaignHandler.Cancel)
			campaigns.POST("/:id/contributions", contributeHandler.Contribute)
			campaigns.POST("/:id/withdrawals", contributeHandler.Withdraw)
			campaigns.GET("/:id/balance", contributeHandler.GetBalance)
			campaigns.POST("/:id/finish", refundHandler.Finish)
			campaigns.POST("/:id/refund", refundHandler.ClaimRefund)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-Caller-Id, X-Signer-Id")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
