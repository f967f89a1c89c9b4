package rent

import (
	"github.com/blues/cfl/internal/model"
)

// Meter 存储押金计费器
// 按调用产生的存储字节增量收费，多余押金退还调用方
type Meter interface {
	// MinCreationFee 创建活动必须附带的最低押金
	MinCreationFee() model.Amount
	// DepositRefund 按字节增量结算后应退还的押金
	DepositRefund(deposit model.Amount, bytesDelta int64) (model.Amount, error)
}

// FixedMeter 固定费率计费器
type FixedMeter struct {
	minFee   model.Amount
	byteCost model.Amount
}

// NewFixedMeter 创建固定费率计费器
func NewFixedMeter(minFee, byteCost model.Amount) *FixedMeter {
	return &FixedMeter{minFee: minFee, byteCost: byteCost}
}

// MinCreationFee 创建活动最低押金
func (m *FixedMeter) MinCreationFee() model.Amount {
	return m.minFee
}

// DepositRefund 结算押金
// 释放存储(增量非正)时押金全额退还
func (m *FixedMeter) DepositRefund(deposit model.Amount, bytesDelta int64) (model.Amount, error) {
	if bytesDelta <= 0 {
		return deposit, nil
	}
	cost, err := m.byteCost.MulUint64(uint64(bytesDelta))
	if err != nil {
		return model.ZeroAmount(), err
	}
	if cost.Cmp(deposit) >= 0 {
		return model.ZeroAmount(), nil
	}
	return deposit.Sub(cost)
}
