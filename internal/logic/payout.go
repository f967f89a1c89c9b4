package logic

import (
	"context"
	"fmt"

	"github.com/blues/cfl/internal/model"
	"github.com/blues/cfl/internal/payment"
	"gorm.io/gorm"
)

// submitPayout 在当前事务内提交一笔出金并写入审计记录
// 提交失败返回错误，整个事务回滚，账本不会记下未发生的转账；
// 提交成功后的链上确认由对账任务跟踪
func submitPayout(ctx context.Context, tx *gorm.DB, rail payment.Rail,
	campaignID uint64, to string, amount model.Amount, kind model.PayoutKind) error {
	txHash, err := rail.Transfer(ctx, to, amount)
	if err != nil {
		return fmt.Errorf("payout submission failed: %w", err)
	}

	record := model.PayoutRecord{
		CampaignID: campaignID,
		Recipient:  to,
		Amount:     amount,
		Kind:       kind,
		TxHash:     txHash,
		Status:     model.PayoutStatusSubmitted,
	}
	return tx.Create(&record).Error
}
