package model

import (
	"time"
)

// HistoryKind 历史序列类型
type HistoryKind string

const (
	HistoryKindActive  HistoryKind = "active"  // 已创建的活动
	HistoryKindSuccess HistoryKind = "success" // 达成目标的活动
)

// HistoryEntry 历史序列条目，按自增ID保序
// active序列的删除只按campaign_id进行，不按列表位置
type HistoryEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Kind       HistoryKind `json:"kind" gorm:"not null;index:idx_history_kind_campaign"`
	CampaignID uint64      `json:"campaign_id" gorm:"not null;index:idx_history_kind_campaign"`
	Name       string      `json:"name" gorm:"not null"`
}

// TableName 指定表名
func (HistoryEntry) TableName() string {
	return "history_entry"
}
