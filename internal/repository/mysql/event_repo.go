package mysql

import (
	"strings"
	"time"

	"Campus_Hub/internal/model"

	"gorm.io/gorm"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository() *EventRepository {
	return &EventRepository{DB: DB}
}

const (
	SortByDate       = "date"
	SortByPopularity = "popularity"
)

// EventFilter Start 为空时服务层默认填 now，历史活动默认不出现
type EventFilter struct {
	Start    *time.Time
	End      *time.Time
	Category string
	Title    string
	Location string
	FreeOnly bool
	Sort     string
}

// EventWithCount 活动附带实时报名数，由外连接聚合得出，不落计数列
type EventWithCount struct {
	model.Event
	RegistrationCount int64 `json:"registration_count"`
}

func (r *EventRepository) Create(ev *model.Event) error {
	return r.DB.Create(ev).Error
}

func (r *EventRepository) FindByID(id uint64) (*model.Event, error) {
	var ev model.Event
	err := r.DB.First(&ev, id).Error
	return &ev, err
}

// 聚合报名数的基础查询
func (r *EventRepository) withCounts() *gorm.DB {
	return r.DB.Model(&model.Event{}).
		Select("events.*, COUNT(registrations.id) AS registration_count").
		Joins("LEFT JOIN registrations ON registrations.event_id = events.id").
		Group("events.id")
}

func (r *EventRepository) List(f EventFilter) ([]EventWithCount, error) {
	q := r.withCounts()
	if f.Start != nil {
		q = q.Where("events.starts_at >= ?", *f.Start)
	}
	if f.End != nil {
		q = q.Where("events.starts_at <= ?", *f.End)
	}
	if f.Category != "" {
		q = q.Where("events.category = ?", f.Category)
	}
	if f.Title != "" {
		q = q.Where("LOWER(events.title) LIKE ?", "%"+strings.ToLower(f.Title)+"%")
	}
	if f.Location != "" {
		q = q.Where("LOWER(events.location) LIKE ?", "%"+strings.ToLower(f.Location)+"%")
	}
	if f.FreeOnly {
		q = q.Where("events.price_cents = 0")
	}

	if f.Sort == SortByPopularity {
		// 并列报名数按开始时间早的在前
		q = q.Order("registration_count desc, events.starts_at asc")
	} else {
		q = q.Order("events.starts_at asc")
	}

	var list []EventWithCount
	err := q.Find(&list).Error
	return list, err
}

// Trending 未来活动按报名数排序
func (r *EventRepository) Trending(now time.Time, limit int) ([]EventWithCount, error) {
	var list []EventWithCount
	err := r.withCounts().
		Where("events.starts_at >= ?", now).
		Order("registration_count desc, events.starts_at asc").
		Limit(limit).
		Find(&list).Error
	return list, err
}

// UpcomingByClub 社团详情页的「即将开始」列表
func (r *EventRepository) UpcomingByClub(clubID uint64, now time.Time, limit int) ([]EventWithCount, error) {
	var list []EventWithCount
	err := r.withCounts().
		Where("events.club_id = ? AND events.starts_at >= ?", clubID, now).
		Order("events.starts_at asc").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *EventRepository) CountUpcoming(clubID uint64, now time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Event{}).
		Where("club_id = ? AND starts_at >= ?", clubID, now).
		Count(&count).Error
	return count, err
}

func (r *EventRepository) ListByIDs(ids []uint64) ([]EventWithCount, error) {
	var list []EventWithCount
	err := r.withCounts().Where("events.id IN ?", ids).Find(&list).Error
	return list, err
}

// DeleteCascade 删活动连同其全部报名记录，同一事务，不留孤儿报名
func (r *EventRepository) DeleteCascade(eventID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).
			Delete(&model.Registration{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Event{}, eventID).Error
	})
}
