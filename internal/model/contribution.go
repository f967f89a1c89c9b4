package model

import (
	"time"
)

// Contribution 出资记录，按(活动, 出资人)唯一
// 活动的amount必须等于其所有出资记录金额之和
type Contribution struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignID  uint64 `json:"campaign_id" gorm:"not null;uniqueIndex:idx_campaign_contributor"`
	Contributor string `json:"contributor" gorm:"not null;uniqueIndex:idx_campaign_contributor"`
	Amount      Amount `json:"amount" gorm:"not null"`
}

// TableName 指定表名
func (Contribution) TableName() string {
	return "contribution"
}

// StorageBytes 估算该行占用的存储字节数
func (c *Contribution) StorageBytes() int64 {
	const fixed = 8 + 16
	return fixed + int64(len(c.Contributor))
}
