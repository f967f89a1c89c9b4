package logic

import (
	"context"
	"errors"

	"github.com/blues/cfl/internal/clock"
	"github.com/blues/cfl/internal/logger"
	"github.com/blues/cfl/internal/model"
	"github.com/blues/cfl/internal/payment"
	"github.com/blues/cfl/internal/rent"
	"gorm.io/gorm"
)

// CampaignLogic 活动登记业务逻辑：创建、存在性、取消
type CampaignLogic struct {
	db     *gorm.DB
	rail   payment.Rail
	meter  rent.Meter
	clk    clock.Clock
	policy Policy
	locks  *Locks
}

// NewCampaignLogic 创建活动登记业务逻辑
func NewCampaignLogic(db *gorm.DB, rail payment.Rail, meter rent.Meter,
	clk clock.Clock, policy Policy, locks *Locks) *CampaignLogic {
	return &CampaignLogic{db: db, rail: rail, meter: meter, clk: clk, policy: policy, locks: locks}
}

// Launch 创建活动并返回id
// id从全局状态单调分配，取消后也不复用
func (l *CampaignLogic) Launch(ctx context.Context, signer, name string,
	goal model.Amount, startMs, endMs int64, deposit model.Amount) (uint64, error) {
	if startMs >= endMs {
		return 0, ErrInvalidTimeRange
	}
	if deposit.Cmp(l.meter.MinCreationFee()) < 0 {
		return 0, ErrInsufficientDeposit
	}

	unlock := l.locks.Registry()
	defer unlock()

	var id uint64
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var state model.RegistryState
		if err := tx.First(&state, model.RegistryStateID).Error; err != nil {
			return err
		}

		id = state.IDIndex
		campaign := model.Campaign{
			ID:      id,
			Name:    name,
			Creator: signer,
			Goal:    goal,
			Amount:  model.ZeroAmount(),
			StartMs: startMs,
			EndMs:   endMs,
		}
		if err := tx.Create(&campaign).Error; err != nil {
			return err
		}

		entry := model.HistoryEntry{Kind: model.HistoryKindActive, CampaignID: id, Name: name}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		state.IDIndex++
		state.LiveCount++
		if err := tx.Save(&state).Error; err != nil {
			return err
		}

		// 押金按新增存储字节结算，剩余部分退还签名方
		bytesDelta := campaign.StorageBytes() + int64(len(name)) + 8
		refund, err := l.meter.DepositRefund(deposit, bytesDelta)
		if err != nil {
			return err
		}
		if !refund.IsZero() {
			if err := submitPayout(ctx, tx, l.rail, id, signer, refund, model.PayoutKindDepositRefund); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Campaign %d (%s) launched by %s, goal %s", id, name, signer, goal.String())
	return id, nil
}

// Exists 活动是否存在
func (l *CampaignLogic) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	if err := l.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Cancel 取消活动
// 活动、其账本记录以及active历史条目整体删除；历史条目按活动id删除
func (l *CampaignLogic) Cancel(ctx context.Context, id uint64, caller string) error {
	unlockRegistry := l.locks.Registry()
	defer unlockRegistry()
	unlock := l.locks.Campaign(id)
	defer unlock()

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign model.Campaign
		if err := tx.First(&campaign, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCampaignNotFound
			}
			return err
		}
		if campaign.Creator != caller {
			return ErrUnauthorized
		}

		if !campaign.Amount.IsZero() {
			if !l.policy.ForfeitOnCancel {
				return ErrOutstandingContributions
			}
			logger.Warn("Campaign %d cancelled with %s in outstanding contributions forfeited",
				id, campaign.Amount.String())
		}

		record := model.CancellationRecord{
			Name:          campaign.Name,
			CancelledAtMs: l.clk.NowMs(),
			Canceller:     caller,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		var state model.RegistryState
		if err := tx.First(&state, model.RegistryStateID).Error; err != nil {
			return err
		}
		if state.LiveCount == 0 {
			return ErrCounterUnderflow
		}
		state.LiveCount--
		if err := tx.Save(&state).Error; err != nil {
			return err
		}

		if err := tx.Where("campaign_id = ?", id).Delete(&model.Contribution{}).Error; err != nil {
			return err
		}
		if err := tx.Where("kind = ? AND campaign_id = ?",
			model.HistoryKindActive, id).Delete(&model.HistoryEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Campaign{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	logger.Info("Campaign %d cancelled by %s", id, caller)
	return nil
}
