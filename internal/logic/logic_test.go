package logic

import (
	"context"
	"testing"

	"github.com/blues/cfl/internal/clock"
	"github.com/blues/cfl/internal/database"
	"github.com/blues/cfl/internal/model"
	"github.com/blues/cfl/internal/payment"
	"github.com/blues/cfl/internal/rent"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv 测试环境：内存库、内存出金通道、手动时钟
type testEnv struct {
	db        *gorm.DB
	rail      *payment.MemoryRail
	clk       *clock.Manual
	campaigns *CampaignLogic
	ledger    *ContributeLogic
	lifecycle *LifecycleLogic
	history   *HistoryLogic
}

// 押金与字节费都取1，创建活动时押金正好被存储费吃掉，
// 不会产生干扰断言的押金返还转账
func newTestEnv(t *testing.T, opts ...func(*Policy)) *testEnv {
	t.Helper()

	db, err := database.InitMemory()
	require.NoError(t, err)

	policy := Policy{
		MinContribution: model.ZeroAmount(),
		ForfeitOnCancel: false,
	}
	for _, opt := range opts {
		opt(&policy)
	}

	rail := payment.NewMemoryRail()
	clk := clock.NewManual(0)
	meter := rent.NewFixedMeter(model.AmountFromUint64(1), model.AmountFromUint64(1))
	locks := NewLocks()

	return &testEnv{
		db:        db,
		rail:      rail,
		clk:       clk,
		campaigns: NewCampaignLogic(db, rail, meter, clk, policy, locks),
		ledger:    NewContributeLogic(db, rail, clk, policy, locks),
		lifecycle: NewLifecycleLogic(db, rail, clk, locks),
		history:   NewHistoryLogic(db),
	}
}

func amt(t *testing.T, s string) model.Amount {
	t.Helper()
	a, err := model.ParseAmount(s)
	require.NoError(t, err)
	return a
}

func (e *testEnv) launch(t *testing.T, creator, name string, goal uint64, startMs, endMs int64) uint64 {
	t.Helper()
	id, err := e.campaigns.Launch(context.Background(), creator, name,
		model.AmountFromUint64(goal), startMs, endMs, model.AmountFromUint64(1))
	require.NoError(t, err)
	return id
}

func (e *testEnv) contribute(t *testing.T, id uint64, contributor string, amount uint64) {
	t.Helper()
	err := e.ledger.Contribute(context.Background(), id, contributor, model.AmountFromUint64(amount))
	require.NoError(t, err)
}

func (e *testEnv) campaign(t *testing.T, id uint64) model.Campaign {
	t.Helper()
	var c model.Campaign
	require.NoError(t, e.db.First(&c, "id = ?", id).Error)
	return c
}

// assertConservation 活动金额必须等于其全部出资记录之和
func (e *testEnv) assertConservation(t *testing.T, id uint64) {
	t.Helper()
	c := e.campaign(t, id)

	var records []model.Contribution
	require.NoError(t, e.db.Where("campaign_id = ?", id).Find(&records).Error)

	sum := model.ZeroAmount()
	for _, r := range records {
		next, err := sum.Add(r.Amount)
		require.NoError(t, err)
		sum = next
	}
	require.Equal(t, 0, c.Amount.Cmp(sum),
		"campaign amount %s diverged from ledger sum %s", c.Amount.String(), sum.String())
}
