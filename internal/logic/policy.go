package logic

import (
	"fmt"

	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/model"
)

// Policy 资金策略
// ForfeitOnCancel为false时，仍有未退出资的活动不允许取消；
// 为true时取消会连同账本记录一起删除，出资被没收（参考合约的行为）
type Policy struct {
	MinContribution model.Amount
	ForfeitOnCancel bool
}

// PolicyFromConfig 解析配置中的资金策略
func PolicyFromConfig(cfg config.FundingConfig) (Policy, error) {
	minContribution, err := model.ParseAmount(cfg.MinContribution)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid funding.min_contribution: %w", err)
	}
	return Policy{
		MinContribution: minContribution,
		ForfeitOnCancel: cfg.ForfeitOnCancel,
	}, nil
}
