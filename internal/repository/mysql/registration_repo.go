package mysql

import (
	"context"

	"Campus_Hub/internal/model"
	"Campus_Hub/internal/pkg"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RegistrationRepository struct {
	DB *gorm.DB
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{DB: DB}
}

// Register 报名核心协议：事务内先锁活动行（MySQL），幂等命中直接返回旧记录；
// 容量检查 + 唯一键 DoNothing 插入 + 插入后复核，最后一个名额的并发竞争
// 只会有一方提交成功，输掉的一方整个事务回滚并报 409。
func (r *RegistrationRepository) Register(ctx context.Context, eventID uint64, email string) (*model.Registration, bool, error) {
	var reg model.Registration
	var already bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev model.Event
		if err := lockForUpdate(tx).First(&ev, eventID).Error; err != nil {
			if IsNotFound(err) {
				return pkg.NotFound("event not found")
			}
			return err
		}

		// 幂等：同一 (event, user) 只会有一条记录
		err := tx.Where("event_id = ? AND user_email = ?", eventID, email).
			First(&reg).Error
		if err == nil {
			already = true
			return nil
		}
		if !IsNotFound(err) {
			return err
		}

		if ev.Capacity > 0 {
			var count int64
			if err := tx.Model(&model.Registration{}).
				Where("event_id = ?", eventID).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(ev.Capacity) {
				return pkg.Conflict("event is full")
			}
		}

		reg = model.Registration{EventID: eventID, UserEmail: email}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_email"}},
			DoNothing: true,
		}).Create(&reg).Error; err != nil {
			return err
		}
		if reg.ID == 0 {
			// 唯一键竞争，另一请求已写入，按幂等命中处理
			if err := tx.Where("event_id = ? AND user_email = ?", eventID, email).
				First(&reg).Error; err != nil {
				return err
			}
			already = true
			return nil
		}

		if ev.Capacity > 0 {
			// 插入后复核名额，超卖方回滚
			var count int64
			if err := tx.Model(&model.Registration{}).
				Where("event_id = ?", eventID).Count(&count).Error; err != nil {
				return err
			}
			if count > int64(ev.Capacity) {
				return pkg.Conflict("event is full")
			}
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &reg, already, nil
}

func (r *RegistrationRepository) Unregister(ctx context.Context, eventID uint64, email string) error {
	tx := r.DB.WithContext(ctx).
		Where("event_id = ? AND user_email = ?", eventID, email).
		Delete(&model.Registration{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return pkg.NotFound("registration not found")
	}
	return nil
}

// ListByUser 内连接活动表，按活动开始时间升序；活动已删除的报名自然被排除
func (r *RegistrationRepository) ListByUser(email string) ([]model.Registration, error) {
	var list []model.Registration
	err := r.DB.Model(&model.Registration{}).
		Select("registrations.*").
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("registrations.user_email = ?", email).
		Order("events.starts_at asc").
		Find(&list).Error
	return list, err
}

func (r *RegistrationRepository) CountByEvent(eventID uint64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Registration{}).
		Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}
