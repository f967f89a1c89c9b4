package logic

import (
	"context"
	"testing"

	"github.com/blues/cfl/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishGoalReached(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.launch(t, "alice", "startup", 100, 0, 100)
	env.contribute(t, id, "carol", 120)
	env.contribute(t, id, "dave", 80)

	env.clk.Set(150)
	require.NoError(t, env.lifecycle.Finish(ctx, id, "alice"))

	c := env.campaign(t, id)
	assert.True(t, c.Finished)
	assert.False(t, c.RefundEligible)
	assert.True(t, c.Amount.IsZero())

	// 清零前的总额全额转给创建者
	assert.Equal(t, 0, env.rail.TotalTo("alice").Cmp(model.AmountFromUint64(200)))

	names, err := env.history.SuccessfulNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"startup"}, names)

	var record model.PayoutRecord
	require.NoError(t, env.db.Where("campaign_id = ? AND kind = ?",
		id, model.PayoutKindPayout).First(&record).Error)
	assert.Equal(t, "alice", record.Recipient)
	assert.Equal(t, model.PayoutStatusSubmitted, record.Status)
}

func TestFinishShortfall(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.launch(t, "alice", "startup", 100, 0, 100)
	env.contribute(t, id, "carol", 90)

	env.clk.Set(100)
	require.NoError(t, env.lifecycle.Finish(ctx, id, "alice"))

	c := env.campaign(t, id)
	assert.True(t, c.Finished)
	assert.True(t, c.RefundEligible)
	assert.Equal(t, 0, c.Amount.Cmp(model.AmountFromUint64(90)))

	// 不达标不付款、不进success历史
	assert.True(t, env.rail.TotalTo("alice").IsZero())
	names, err := env.history.SuccessfulNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
	env.assertConservation(t, id)
}

func TestFinishErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.ErrorIs(t, env.lifecycle.Finish(ctx, 9, "alice"), ErrCampaignNotFound)

	id := env.launch(t, "alice", "startup", 100, 0, 100)

	env.clk.Set(50)
	require.ErrorIs(t, env.lifecycle.Finish(ctx, id, "alice"), ErrNotYetEnded)

	env.clk.Set(100)
	require.ErrorIs(t, env.lifecycle.Finish(ctx, id, "mallory"), ErrUnauthorized)
}

func TestFinishOnlyOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.launch(t, "alice", "startup", 100, 0, 100)
	env.contribute(t, id, "carol", 90)

	env.clk.Set(150)
	require.NoError(t, env.lifecycle.Finish(ctx, id, "alice"))
	before := env.campaign(t, id)

	err := env.lifecycle.Finish(ctx, id, "alice")
	require.ErrorIs(t, err, ErrAlreadyFinished)

	// 第二次调用不改变任何状态
	after := env.campaign(t, id)
	assert.Equal(t, before.Finished, after.Finished)
	assert.Equal(t, before.RefundEligible, after.RefundEligible)
	assert.Equal(t, 0, before.Amount.Cmp(after.Amount))
}

func TestFinishPayoutFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.launch(t, "alice", "startup", 100, 0, 100)
	env.contribute(t, id, "carol", 200)

	env.clk.Set(150)
	env.rail.SetRejecting(true)
	require.Error(t, env.lifecycle.Finish(ctx, id, "alice"))

	// 转账提交失败时活动不能变成已结束且金额清零
	c := env.campaign(t, id)
	assert.False(t, c.Finished)
	assert.Equal(t, 0, c.Amount.Cmp(model.AmountFromUint64(200)))

	names, err := env.history.SuccessfulNames(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
	env.assertConservation(t, id)

	// 故障恢复后可以正常结束
	env.rail.SetRejecting(false)
	require.NoError(t, env.lifecycle.Finish(ctx, id, "alice"))
	assert.Equal(t, 0, env.rail.TotalTo("alice").Cmp(model.AmountFromUint64(200)))
}

func TestClaimRefundRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.launch(t, "alice", "startup", 100, 0, 100)
	env.contribute(t, id, "carol", 50)
	env.contribute(t, id, "dave", 40)

	env.clk.Set(150)
	require.NoError(t, env.lifecycle.Finish(ctx, id, "alice"))

	paid, err := env.lifecycle.ClaimRefund(ctx, id, "carol")
	require.NoError(t, err)
	assert.Equal(t, 0, paid.Cmp(model.AmountFromUint64(50)))
	assert.Equal(t, 0, env.rail.TotalTo("carol").Cmp(model.AmountFromUint64(50)))

	// 出资记录删除，活动金额同步扣减
	var count int64
	require.NoError(t, env.db.Model(&model.Contribution{}).
		Where("campaign_id = ? AND contributor = ?", id, "carol").Count(&count).Error)
	assert.Zero(t, count)

	c := env.campaign(t, id)
	assert.Equal(t, 0, c.Amount.Cmp(model.AmountFromUint64(40)))
	env.assertConservation(t, id)
}

func TestClaimRefundNotRefundable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.launch(t, "alice", "startup", 100, 0, 100)
	env.contribute(t, id, "carol", 200)

	// 未结束不可退款
	_, err := env.lifecycle.ClaimRefund(ctx, id, "carol")
	require.ErrorIs(t, err, ErrNotRefundable)

	// 达标结束同样不可退款
	env.clk.Set(150)
	require.NoError(t, env.lifecycle.Finish(ctx, id, "alice"))
	_, err = env.lifecycle.ClaimRefund(ctx, id, "carol")
	require.ErrorIs(t, err, ErrNotRefundable)
}

func TestClaimRefundNoContribution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.launch(t, "alice", "startup", 100, 0, 100)
	env.contribute(t, id, "carol", 50)

	env.clk.Set(150)
	require.NoError(t, env.lifecycle.Finish(ctx, id, "alice"))

	_, err := env.lifecycle.ClaimRefund(ctx, id, "mallory")
	require.ErrorIs(t, err, ErrNoPriorContribution)
}

func TestClaimRefundPaymentFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	id := env.launch(t, "alice", "startup", 100, 0, 100)
	env.contribute(t, id, "carol", 50)

	env.clk.Set(150)
	require.NoError(t, env.lifecycle.Finish(ctx, id, "alice"))

	env.rail.SetRejecting(true)
	_, err := env.lifecycle.ClaimRefund(ctx, id, "carol")
	require.Error(t, err)

	// 记录仍在，可以重试
	balance, err := env.ledger.BalanceOf(ctx, id, "carol")
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Cmp(model.AmountFromUint64(50)))
	env.assertConservation(t, id)

	env.rail.SetRejecting(false)
	paid, err := env.lifecycle.ClaimRefund(ctx, id, "carol")
	require.NoError(t, err)
	assert.Equal(t, 0, paid.Cmp(model.AmountFromUint64(50)))
}
