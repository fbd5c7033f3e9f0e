package mysql

import (
	"context"

	"Campus_Hub/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{DB: DB}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, rows ...*model.NotificationOutbox) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(rows).Error
}

// ListPending 按批量取待投递记录，旧的先投
func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]model.NotificationOutbox, error) {
	var list []model.NotificationOutbox
	err := r.DB.WithContext(ctx).
		Where("status = ?", model.OutboxPending).
		Order("id asc").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.NotificationOutbox{}).
		Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}

// MarkRetry 投递失败累加重试计数，超过阈值置为 failed 不再重试
func (r *OutboxRepository) MarkRetry(ctx context.Context, id uint64, maxRetry int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row model.NotificationOutbox
		if err := tx.First(&row, id).Error; err != nil {
			return err
		}
		row.Retry++
		if row.Retry >= maxRetry {
			row.Status = model.OutboxFailed
		}
		return tx.Model(&model.NotificationOutbox{}).Where("id = ?", id).
			Updates(map[string]any{"retry": row.Retry, "status": row.Status}).Error
	})
}
