package main

import (
	"github.com/blues/cfl/internal/clock"
	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/database"
	"github.com/blues/cfl/internal/logger"
	"github.com/blues/cfl/internal/logic"
	"github.com/blues/cfl/internal/model"
	"github.com/blues/cfl/internal/payment"
	"github.com/blues/cfl/internal/rent"
	"github.com/blues/cfl/internal/router"
	"github.com/blues/cfl/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	var l *logger.Logger
	var err error
	if cfg.Log.Output == "file" {
		l, err = logger.NewWithFileRotation(cfg.Log.Level, cfg.Log.File)
	} else {
		l, err = logger.New(cfg.Log.Level)
	}
	if err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化出金通道
	var rail payment.Rail
	if cfg.Chain.DryRun {
		logger.Warn("Chain dry-run enabled, payouts are recorded in memory only")
		rail = payment.NewMemoryRail()
	} else {
		rail, err = payment.NewEthRail(cfg.Chain)
		if err != nil {
			logger.Fatal("Failed to initialize payment rail: %v", err)
		}
	}

	// 初始化存储押金计费
	minFee, err := model.ParseAmount(cfg.Funding.MinCreationFee)
	if err != nil {
		logger.Fatal("Invalid funding.min_creation_fee: %v", err)
	}
	byteCost, err := model.ParseAmount(cfg.Funding.StorageByteCost)
	if err != nil {
		logger.Fatal("Invalid funding.storage_byte_cost: %v", err)
	}
	meter := rent.NewFixedMeter(minFee, byteCost)

	// 资金策略
	policy, err := logic.PolicyFromConfig(cfg.Funding)
	if err != nil {
		logger.Fatal("Invalid funding policy: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, rail, meter, clock.System{}, policy)

	// 启动出金对账任务
	manager := task.Start(db, rail, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
