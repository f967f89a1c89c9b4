package rent

import (
	"testing"

	"github.com/blues/cfl/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositRefund(t *testing.T) {
	meter := NewFixedMeter(model.AmountFromUint64(100), model.AmountFromUint64(2))

	assert.Equal(t, 0, meter.MinCreationFee().Cmp(model.AmountFromUint64(100)))

	// 押金100，新增30字节花费60，退40
	refund, err := meter.DepositRefund(model.AmountFromUint64(100), 30)
	require.NoError(t, err)
	assert.Equal(t, 0, refund.Cmp(model.AmountFromUint64(40)))

	// 花费超过押金时不退
	refund, err = meter.DepositRefund(model.AmountFromUint64(100), 60)
	require.NoError(t, err)
	assert.True(t, refund.IsZero())

	// 释放存储时押金全退
	refund, err = meter.DepositRefund(model.AmountFromUint64(100), -10)
	require.NoError(t, err)
	assert.Equal(t, 0, refund.Cmp(model.AmountFromUint64(100)))
}
