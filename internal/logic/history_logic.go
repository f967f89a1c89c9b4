package logic

import (
	"context"

	"github.com/blues/cfl/internal/model"
	"gorm.io/gorm"
)

// HistoryLogic 历史序列只读查询
type HistoryLogic struct {
	db *gorm.DB
}

// NewHistoryLogic 创建历史查询逻辑
func NewHistoryLogic(db *gorm.DB) *HistoryLogic {
	return &HistoryLogic{db: db}
}

// ActiveNames 仍在登记表中的活动名，按创建顺序
func (l *HistoryLogic) ActiveNames(ctx context.Context) ([]string, error) {
	return l.names(ctx, model.HistoryKindActive)
}

// SuccessfulNames 达成目标的活动名，按结束顺序
func (l *HistoryLogic) SuccessfulNames(ctx context.Context) ([]string, error) {
	return l.names(ctx, model.HistoryKindSuccess)
}

func (l *HistoryLogic) names(ctx context.Context, kind model.HistoryKind) ([]string, error) {
	var entries []model.HistoryEntry
	if err := l.db.WithContext(ctx).Where("kind = ?", kind).
		Order("id").Find(&entries).Error; err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}

// Cancellations 取消审计记录，按取消顺序
func (l *HistoryLogic) Cancellations(ctx context.Context) ([]model.CancellationRecord, error) {
	var records []model.CancellationRecord
	if err := l.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
