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

// ContributeLogic 出资账本业务逻辑
// 不变式：任一时刻活动的amount等于其全部出资记录之和
type ContributeLogic struct {
	db     *gorm.DB
	rail   payment.Rail
	clk    clock.Clock
	policy Policy
	locks  *Locks
}

// NewContributeLogic 创建出资账本业务逻辑
func NewContributeLogic(db *gorm.DB, rail payment.Rail, clk clock.Clock,
	policy Policy, locks *Locks) *ContributeLogic {
	return &ContributeLogic{db: db, rail: rail, clk: clk, policy: policy, locks: locks}
}

// Contribute 出资
// 时间窗口[start, end]闭区间；活动金额与出资记录同事务更新
func (l *ContributeLogic) Contribute(ctx context.Context, id uint64,
	contributor string, amount model.Amount) error {
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

		now := l.clk.NowMs()
		if now < campaign.StartMs {
			return ErrNotStartedYet
		}
		if now > campaign.EndMs {
			return ErrCampaignEnded
		}
		if amount.Cmp(l.policy.MinContribution) < 0 {
			return ErrContributionTooSmall
		}

		newTotal, err := campaign.Amount.Add(amount)
		if err != nil {
			return err
		}
		// id可以是0，Save会把零主键当成新建，这里只能按列更新
		if err := tx.Model(&model.Campaign{}).Where("id = ?", id).
			Update("amount", newTotal).Error; err != nil {
			return err
		}

		var record model.Contribution
		err = tx.Where("campaign_id = ? AND contributor = ?", id, contributor).First(&record).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			record = model.Contribution{CampaignID: id, Contributor: contributor, Amount: amount}
			return tx.Create(&record).Error
		case err != nil:
			return err
		default:
			newBalance, err := record.Amount.Add(amount)
			if err != nil {
				return err
			}
			record.Amount = newBalance
			return tx.Save(&record).Error
		}
	})
	if err != nil {
		return err
	}

	logger.Debug("Campaign %d received %s from %s", id, amount.String(), contributor)
	return nil
}

// Withdraw 撤回出资，返回实际退回金额
// 退回金额为请求金额与当前余额的较小者；转账提交与账本扣减同事务
func (l *ContributeLogic) Withdraw(ctx context.Context, id uint64,
	contributor string, requested model.Amount) (model.Amount, error) {
	unlock := l.locks.Campaign(id)
	defer unlock()

	refund := model.ZeroAmount()
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign model.Campaign
		if err := tx.First(&campaign, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCampaignNotFound
			}
			return err
		}

		var record model.Contribution
		if err := tx.Where("campaign_id = ? AND contributor = ?", id, contributor).
			First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoPriorContribution
			}
			return err
		}

		refund = requested.Min(record.Amount)
		if refund.IsZero() {
			return nil
		}

		newTotal, err := campaign.Amount.Sub(refund)
		if err != nil {
			return err
		}
		if err := tx.Model(&model.Campaign{}).Where("id = ?", id).
			Update("amount", newTotal).Error; err != nil {
			return err
		}

		newBalance, err := record.Amount.Sub(refund)
		if err != nil {
			return err
		}
		record.Amount = newBalance
		if err := tx.Save(&record).Error; err != nil {
			return err
		}

		return submitPayout(ctx, tx, l.rail, id, contributor, refund, model.PayoutKindWithdrawal)
	})
	if err != nil {
		return model.ZeroAmount(), err
	}

	logger.Info("Campaign %d returned %s to %s", id, refund.String(), contributor)
	return refund, nil
}

// BalanceOf 查询出资余额，没有出资记录视为零
func (l *ContributeLogic) BalanceOf(ctx context.Context, id uint64, contributor string) (model.Amount, error) {
	exists, err := campaignExists(ctx, l.db, id)
	if err != nil {
		return model.ZeroAmount(), err
	}
	if !exists {
		return model.ZeroAmount(), ErrCampaignNotFound
	}

	var record model.Contribution
	err = l.db.WithContext(ctx).
		Where("campaign_id = ? AND contributor = ?", id, contributor).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ZeroAmount(), nil
	}
	if err != nil {
		return model.ZeroAmount(), err
	}
	return record.Amount, nil
}

// HasContributed 是否有余额大于零的出资记录
func (l *ContributeLogic) HasContributed(ctx context.Context, id uint64, contributor string) (bool, error) {
	balance, err := l.BalanceOf(ctx, id, contributor)
	if err != nil {
		return false, err
	}
	return !balance.IsZero(), nil
}

func campaignExists(ctx context.Context, db *gorm.DB, id uint64) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Campaign{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
