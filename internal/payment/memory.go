package payment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/blues/cfl/internal/model"
)

// ErrTransferRejected 内存通道被置为拒绝模式
var ErrTransferRejected = errors.New("transfer rejected")

// Transfer 内存通道记录的一笔转账
type Transfer struct {
	To     string
	Amount model.Amount
	TxHash string
}

// MemoryRail 进程内出金通道，dry-run与测试用
// 所有转账立即确认
type MemoryRail struct {
	mu        sync.Mutex
	seq       int
	transfers []Transfer
	rejecting bool
}

// NewMemoryRail 创建内存出金通道
func NewMemoryRail() *MemoryRail {
	return &MemoryRail{}
}

// Transfer 记录转账并返回伪哈希
func (r *MemoryRail) Transfer(_ context.Context, to string, amount model.Amount) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rejecting {
		return "", ErrTransferRejected
	}
	r.seq++
	hash := fmt.Sprintf("mem-%d", r.seq)
	r.transfers = append(r.transfers, Transfer{To: to, Amount: amount, TxHash: hash})
	return hash, nil
}

// Confirm 内存转账总是已确认
func (r *MemoryRail) Confirm(_ context.Context, _ string) (Status, error) {
	return StatusConfirmed, nil
}

// SetRejecting 切换拒绝模式，测试支付失败路径用
func (r *MemoryRail) SetRejecting(rejecting bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejecting = rejecting
}

// Transfers 已记录的转账快照
func (r *MemoryRail) Transfers() []Transfer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Transfer, len(r.transfers))
	copy(out, r.transfers)
	return out
}

// TotalTo 某收款方累计到账金额
func (r *MemoryRail) TotalTo(to string) model.Amount {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := model.ZeroAmount()
	for _, t := range r.transfers {
		if t.To != to {
			continue
		}
		sum, err := total.Add(t.Amount)
		if err != nil {
			return total
		}
		total = sum
	}
	return total
}
