package model

import (
	"time"
)

// CancellationRecord 取消审计记录，只追加
type CancellationRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Name          string `json:"name" gorm:"not null"`
	CancelledAtMs int64  `json:"cancelled_at_ms" gorm:"not null"`
	Canceller     string `json:"canceller" gorm:"not null"`
}

// TableName 指定表名
func (CancellationRecord) TableName() string {
	return "cancellation_record"
}
