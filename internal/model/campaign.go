package model

import (
	"time"
)

// Campaign 众筹活动
// 取消时整行硬删除，不使用软删除，保证登记表中不存在已取消的活动
type Campaign struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Name    string `json:"name" gorm:"not null"`
	Creator string `json:"creator" gorm:"not null;index"`

	// 资金信息，单位为最小货币单位
	Goal   Amount `json:"goal" gorm:"not null"`
	Amount Amount `json:"amount" gorm:"not null"`

	// 时间窗口，毫秒时间戳
	StartMs int64 `json:"start_ms" gorm:"not null"`
	EndMs   int64 `json:"end_ms" gorm:"not null"`

	// 生命周期标志，finished一旦置位不再复位
	Finished       bool `json:"finished" gorm:"not null;default:false"`
	RefundEligible bool `json:"refund_eligible" gorm:"not null;default:false"`
}

// TableName 指定表名
func (Campaign) TableName() string {
	return "campaign"
}

// StorageBytes 估算该行占用的存储字节数，用于押金结算
func (c *Campaign) StorageBytes() int64 {
	// id + goal + amount + start + end + flags
	const fixed = 8 + 16 + 16 + 8 + 8 + 2
	return fixed + int64(len(c.Name)) + int64(len(c.Creator))
}

// RegistryState 登记表全局状态，单行
// id_index 单调递增，已取消活动的id不会被复用
type RegistryState struct {
	ID        uint32 `gorm:"primaryKey"`
	IDIndex   uint64 `gorm:"not null;default:0"`
	LiveCount uint64 `gorm:"not null;default:0"`
}

// TableName 指定表名
func (RegistryState) TableName() string {
	return "registry_state"
}

// RegistryStateID 单行主键
const RegistryStateID uint32 = 1
