package logic

import (
	"context"
	"errors"

	"github.com/blues/cfl/internal/clock"
	"github.com/blues/cfl/internal/logger"
	"github.com/blues/cfl/internal/model"
	"github.com/blues/cfl/internal/payment"
	"gorm.io/gorm"
)

// LifecycleLogic 活动生命周期业务逻辑
// Open -> Finished(达标即付/可退款)为单向迁移；可退款活动下
// 每个出资人各自领取退款
type LifecycleLogic struct {
	db    *gorm.DB
	rail  payment.Rail
	clk   clock.Clock
	locks *Locks
}

// NewLifecycleLogic 创建生命周期业务逻辑
func NewLifecycleLogic(db *gorm.DB, rail payment.Rail, clk clock.Clock, locks *Locks) *LifecycleLogic {
	return &LifecycleLogic{db: db, rail: rail, clk: clk, locks: locks}
}

// Finish 结束活动
// 达标：记入success历史、清零金额、将清零前的金额转给创建者；
// 未达标：置refund_eligible。两个分支都以finished=true收尾。
// 转账提交失败时整个事务回滚，活动保持未结束
func (l *LifecycleLogic) Finish(ctx context.Context, id uint64, caller string) error {
	unlock := l.locks.Campaign(id)
	defer unlock()

	var succeeded bool
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign model.Campaign
		if err := tx.First(&campaign, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCampaignNotFound
			}
			return err
		}

		if l.clk.NowMs() < campaign.EndMs {
			return ErrNotYetEnded
		}
		if campaign.Creator != caller {
			return ErrUnauthorized
		}
		if campaign.Finished {
			return ErrAlreadyFinished
		}

		if campaign.Amount.Cmp(campaign.Goal) >= 0 {
			succeeded = true
			entry := model.HistoryEntry{
				Kind:       model.HistoryKindSuccess,
				CampaignID: id,
				Name:       campaign.Name,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}

			payout := campaign.Amount
			// id可以是0，Save会把零主键当成新建，这里只能按列更新
			if err := tx.Model(&model.Campaign{}).Where("id = ?", id).Updates(map[string]interface{}{
				"amount":   model.ZeroAmount(),
				"finished": true,
			}).Error; err != nil {
				return err
			}
			if payout.IsZero() {
				return nil
			}
			return submitPayout(ctx, tx, l.rail, id, campaign.Creator, payout, model.PayoutKindPayout)
		}

		return tx.Model(&model.Campaign{}).Where("id = ?", id).Updates(map[string]interface{}{
			"refund_eligible": true,
			"finished":        true,
		}).Error
	})
	if err != nil {
		return err
	}

	if succeeded {
		logger.Info("Campaign %d finished: goal reached, payout submitted", id)
	} else {
		logger.Info("Campaign %d finished: goal missed, refunds open", id)
	}
	return nil
}

// ClaimRefund 出资人领取退款，返回退款金额
// 全额退款、删除出资记录并扣减活动金额，三者与转账提交同事务
func (l *LifecycleLogic) ClaimRefund(ctx context.Context, id uint64, caller string) (model.Amount, error) {
	unlock := l.locks.Campaign(id)
	defer unlock()

	paid := model.ZeroAmount()
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign model.Campaign
		if err := tx.First(&campaign, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCampaignNotFound
			}
			return err
		}
		if !campaign.RefundEligible {
			return ErrNotRefundable
		}

		var record model.Contribution
		if err := tx.Where("campaign_id = ? AND contributor = ?", id, caller).
			First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoPriorContribution
			}
			return err
		}

		paid = record.Amount
		if err := tx.Delete(&record).Error; err != nil {
			return err
		}

		newTotal, err := campaign.Amount.Sub(paid)
		if err != nil {
			return err
		}
		if err := tx.Model(&model.Campaign{}).Where("id = ?", id).
			Update("amount", newTotal).Error; err != nil {
			return err
		}

		if paid.IsZero() {
			return nil
		}
		return submitPayout(ctx, tx, l.rail, id, caller, paid, model.PayoutKindRefund)
	})
	if err != nil {
		return model.ZeroAmount(), err
	}

	logger.Info("Campaign %d refunded %s to %s", id, paid.String(), caller)
	return paid, nil
}
