package model

import (
	"time"
)

// PayoutKind 转账类型
type PayoutKind string

const (
	PayoutKindPayout        PayoutKind = "payout"         // 达标后转给创建者
	PayoutKindRefund        PayoutKind = "refund"         // 未达标退款
	PayoutKindWithdrawal    PayoutKind = "withdrawal"     // 出资人撤回
	PayoutKindDepositRefund PayoutKind = "deposit_refund" // 存储押金返还
)

// PayoutStatus 转账状态
type PayoutStatus string

const (
	PayoutStatusSubmitted PayoutStatus = "submitted" // 已提交待确认
	PayoutStatusConfirmed PayoutStatus = "confirmed" // 已确认
	PayoutStatusFailed    PayoutStatus = "failed"    // 链上失败，待重新提交
)

// PayoutRecord 出金审计记录
// 与触发它的账本变更在同一事务内写入，由对账任务跟踪确认
type PayoutRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignID uint64       `json:"campaign_id" gorm:"not null;index"`
	Recipient  string       `json:"recipient" gorm:"not null"`
	Amount     Amount       `json:"amount" gorm:"not null"`
	Kind       PayoutKind   `json:"kind" gorm:"not null"`
	TxHash     string       `json:"tx_hash" gorm:"index"`
	Status     PayoutStatus `json:"status" gorm:"not null;default:'submitted';index"`
	Attempts   int          `json:"attempts" gorm:"not null;default:1"`
}

// TableName 指定表名
func (PayoutRecord) TableName() string {
	return "payout_record"
}
