package payment

import (
	"context"

	"github.com/blues/cfl/internal/model"
)

// Status 转账确认状态
type Status string

const (
	StatusPending   Status = "pending"   // 已提交，尚未确认
	StatusConfirmed Status = "confirmed" // 已确认
	StatusFailed    Status = "failed"    // 链上执行失败
)

// Rail 出金通道
// Transfer提交一笔原生币转账并返回交易哈希，提交失败必须返回错误，
// 调用方据此回滚账本变更；提交成功后的链上结果由Confirm跟踪
type Rail interface {
	Transfer(ctx context.Context, to string, amount model.Amount) (string, error)
	Confirm(ctx context.Context, txHash string) (Status, error)
}
