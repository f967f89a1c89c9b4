package logic

import (
	"context"
	"testing"

	"github.com/blues/cfl/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchAssignsMonotonicIDs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.Equal(t, uint64(0), env.launch(t, "alice", "one", 100, 0, 100))
	require.Equal(t, uint64(1), env.launch(t, "alice", "two", 100, 0, 100))
	require.Equal(t, uint64(2), env.launch(t, "bob", "three", 100, 0, 100))

	// 取消不回收id
	require.NoError(t, env.campaigns.Cancel(ctx, 1, "alice"))
	require.Equal(t, uint64(3), env.launch(t, "alice", "four", 100, 0, 100))

	exists, err := env.campaigns.Exists(ctx, 1)
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = env.campaigns.Exists(ctx, 3)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLaunchInitialState(t *testing.T) {
	env := newTestEnv(t)

	id := env.launch(t, "alice", "startup", 500, 10, 200)
	c := env.campaign(t, id)

	assert.Equal(t, "startup", c.Name)
	assert.Equal(t, "alice", c.Creator)
	assert.True(t, c.Amount.IsZero())
	assert.Equal(t, 0, c.Goal.Cmp(model.AmountFromUint64(500)))
	assert.False(t, c.Finished)
	assert.False(t, c.RefundEligible)

	names, err := env.history.ActiveNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"startup"}, names)
}

func TestLaunchInvalidTimeRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.campaigns.Launch(ctx, "alice", "bad", model.AmountFromUint64(100),
		100, 100, model.AmountFromUint64(1))
	require.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = env.campaigns.Launch(ctx, "alice", "bad", model.AmountFromUint64(100),
		200, 100, model.AmountFromUint64(1))
	require.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestLaunchRequiresMinimumDeposit(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.campaigns.Launch(context.Background(), "alice", "broke",
		model.AmountFromUint64(100), 0, 100, model.ZeroAmount())
	require.ErrorIs(t, err, ErrInsufficientDeposit)
}

func TestCancelNotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.campaigns.Cancel(context.Background(), 42, "alice")
	require.ErrorIs(t, err, ErrCampaignNotFound)
}

func TestCancelUnauthorizedLeavesStateUntouched(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.launch(t, "alice", "startup", 100, 0, 100)
	env.contribute(t, id, "carol", 30)

	err := env.campaigns.Cancel(ctx, id, "mallory")
	require.ErrorIs(t, err, ErrUnauthorized)

	// 活动、账本、历史都不受影响
	c := env.campaign(t, id)
	assert.Equal(t, 0, c.Amount.Cmp(model.AmountFromUint64(30)))
	env.assertConservation(t, id)

	names, err := env.history.ActiveNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"startup"}, names)

	cancels, err := env.history.Cancellations(ctx)
	require.NoError(t, err)
	assert.Empty(t, cancels)
}

func TestCancelRemovesHistoryByCampaignID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.launch(t, "alice", "alpha", 100, 0, 100)
	env.launch(t, "alice", "beta", 100, 0, 100)
	c := env.launch(t, "alice", "gamma", 100, 0, 100)

	// 先删最早的活动，再删id更大的：按位置删除会在这里错位
	require.NoError(t, env.campaigns.Cancel(ctx, a, "alice"))
	require.NoError(t, env.campaigns.Cancel(ctx, c, "alice"))

	names, err := env.history.ActiveNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, names)
}

func TestCancelRecordsAudit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.launch(t, "alice", "startup", 100, 0, 100)
	env.clk.Set(77)
	require.NoError(t, env.campaigns.Cancel(ctx, id, "alice"))

	cancels, err := env.history.Cancellations(ctx)
	require.NoError(t, err)
	require.Len(t, cancels, 1)
	assert.Equal(t, "startup", cancels[0].Name)
	assert.Equal(t, int64(77), cancels[0].CancelledAtMs)
	assert.Equal(t, "alice", cancels[0].Canceller)
}

func TestCancelWithOutstandingContributionsRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.launch(t, "alice", "startup", 100, 0, 100)
	env.contribute(t, id, "carol", 30)

	err := env.campaigns.Cancel(ctx, id, "alice")
	require.ErrorIs(t, err, ErrOutstandingContributions)

	exists, err := env.campaigns.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCancelForfeitPolicy(t *testing.T) {
	env := newTestEnv(t, func(p *Policy) { p.ForfeitOnCancel = true })
	ctx := context.Background()

	id := env.launch(t, "alice", "startup", 100, 0, 100)
	env.contribute(t, id, "carol", 30)

	require.NoError(t, env.campaigns.Cancel(ctx, id, "alice"))

	exists, err := env.campaigns.Exists(ctx, id)
	require.NoError(t, err)
	assert.False(t, exists)

	// 账本记录随活动一并删除，出资被没收，不产生退款转账
	var count int64
	require.NoError(t, env.db.Model(&model.Contribution{}).
		Where("campaign_id = ?", id).Count(&count).Error)
	assert.Zero(t, count)
	assert.True(t, env.rail.TotalTo("carol").IsZero())
}

func TestCancelCounterUnderflow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	id := env.launch(t, "alice", "startup", 100, 0, 100)

	// 人为破坏计数器，取消必须以CounterUnderflow中止而不是回绕
	require.NoError(t, env.db.Model(&model.RegistryState{}).
		Where("id = ?", model.RegistryStateID).Update("live_count", 0).Error)

	err := env.campaigns.Cancel(ctx, id, "alice")
	require.ErrorIs(t, err, ErrCounterUnderflow)

	// 事务回滚，活动仍在
	exists, err := env.campaigns.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)
}
