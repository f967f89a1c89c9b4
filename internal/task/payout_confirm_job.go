package task

import (
	"context"
	"sync"
	"time"

	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/logger"
	"github.com/blues/cfl/internal/model"
	"github.com/blues/cfl/internal/payment"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// PayoutConfirmJob 出金对账任务
// 账本在转账提交成功时即提交事务；该任务负责事后跟踪链上结果：
// submitted记录查回执置confirmed，链上失败的记录重新提交
type PayoutConfirmJob struct {
	db     *gorm.DB
	rail   payment.Rail
	config *config.Config
}

// NewPayoutConfirmJob 创建出金对账任务
func NewPayoutConfirmJob(db *gorm.DB, rail payment.Rail, cfg *config.Config) *PayoutConfirmJob {
	return &PayoutConfirmJob{db: db, rail: rail, config: cfg}
}

// GetName 任务名称
func (j *PayoutConfirmJob) GetName() string {
	return "payout_confirmer"
}

// GetSchedule 调度配置
func (j *PayoutConfirmJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute 执行一轮对账
func (j *PayoutConfirmJob) Execute() {
	var records []model.PayoutRecord
	err := j.db.Where("status IN ?", []model.PayoutStatus{
		model.PayoutStatusSubmitted,
		model.PayoutStatusFailed,
	}).Find(&records).Error
	if err != nil {
		logger.Error("Failed to fetch payout records: %v", err)
		return
	}
	if len(records) == 0 {
		return
	}

	pool, err := ants.NewPool(j.config.Task.PoolSize)
	if err != nil {
		logger.Error("Failed to create worker pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range records {
		record := records[i]
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			j.process(record)
		}); err != nil {
			wg.Done()
			logger.Error("Failed to submit payout %d to pool: %v", record.ID, err)
		}
	}
	wg.Wait()
}

// process 处理单条出金记录
func (j *PayoutConfirmJob) process(record model.PayoutRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if record.Status == model.PayoutStatusFailed {
		j.resubmit(ctx, record)
		return
	}

	status, err := j.rail.Confirm(ctx, record.TxHash)
	if err != nil {
		logger.Error("Failed to confirm payout %d (%s): %v", record.ID, record.TxHash, err)
		return
	}

	switch status {
	case payment.StatusConfirmed:
		if err := j.db.Model(&record).Update("status", model.PayoutStatusConfirmed).Error; err != nil {
			logger.Error("Failed to update payout %d: %v", record.ID, err)
			return
		}
		logger.Debug("Payout %d confirmed (%s)", record.ID, record.TxHash)
	case payment.StatusFailed:
		logger.Warn("Payout %d rejected on chain (%s), scheduling resubmission", record.ID, record.TxHash)
		if err := j.db.Model(&record).Update("status", model.PayoutStatusFailed).Error; err != nil {
			logger.Error("Failed to update payout %d: %v", record.ID, err)
		}
	}
}

// resubmit 重新提交链上失败的出金
func (j *PayoutConfirmJob) resubmit(ctx context.Context, record model.PayoutRecord) {
	txHash, err := j.rail.Transfer(ctx, record.Recipient, record.Amount)
	if err != nil {
		logger.Error("Failed to resubmit payout %d: %v", record.ID, err)
		return
	}

	updates := map[string]interface{}{
		"tx_hash":  txHash,
		"status":   model.PayoutStatusSubmitted,
		"attempts": gorm.Expr("attempts + 1"),
	}
	if err := j.db.Model(&record).Updates(updates).Error; err != nil {
		logger.Error("Failed to update payout %d after resubmission: %v", record.ID, err)
		return
	}
	logger.Info("Payout %d resubmitted as %s", record.ID, txHash)
}
