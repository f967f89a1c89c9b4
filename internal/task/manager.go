package task

import (
	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/logger"
	"github.com/blues/cfl/internal/payment"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Manager 后台任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	rail      payment.Rail
	config    *config.Config
}

// NewManager 创建任务管理器
func NewManager(db *gorm.DB, rail payment.Rail, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		db:        db,
		rail:      rail,
		config:    cfg,
	}
}

// Start 注册所有任务并启动调度器
func Start(db *gorm.DB, rail payment.Rail, cfg *config.Config) *Manager {
	manager := NewManager(db, rail, cfg)
	manager.RegisterJobs()
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	m.registerPayoutConfirmJob()
}

// registerPayoutConfirmJob 注册出金对账任务
func (m *Manager) registerPayoutConfirmJob() {
	job := NewPayoutConfirmJob(m.db, m.rail, m.config)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
