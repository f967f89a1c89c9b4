package logic

import (
	"errors"

	"github.com/blues/cfl/internal/model"
)

// 所有公共操作的失败类型
// 任一错误都会中止整个操作，事务内的变更全部回滚
var (
	ErrInvalidTimeRange = errors.New("time start must be lower than time end")
	ErrCampaignNotFound = errors.New("this campaign doesn't exist")
	ErrUnauthorized     = errors.New("just the creator can execute this function")

	ErrAlreadyFinished = errors.New("this campaign was finished")
	ErrNotYetEnded     = errors.New("the time of this campaign is not over yet")
	ErrNotStartedYet   = errors.New("this campaign has not started yet")
	ErrCampaignEnded   = errors.New("this campaign has ended")

	ErrArithmeticOverflow  = model.ErrAmountOverflow
	ErrArithmeticUnderflow = model.ErrAmountUnderflow
	ErrCounterUnderflow    = errors.New("live campaign counter underflow")

	ErrNoPriorContribution = errors.New("you haven't contributed to this campaign")
	ErrNotRefundable       = errors.New("this campaign is not refundable")

	// 策略类错误
	ErrInsufficientDeposit      = errors.New("attached deposit is below the campaign creation fee")
	ErrContributionTooSmall     = errors.New("contribution amount is below the configured minimum")
	ErrOutstandingContributions = errors.New("campaign still holds contributor funds")
)
