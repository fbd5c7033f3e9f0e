package model

import "time"

// Event club_id 为空表示全校活动，只有管理员可删除；非空则归属该社团的负责人管理
type Event struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	ClubID     *uint64   `gorm:"index" json:"club_id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	StartsAt   time.Time `gorm:"not null;index" json:"starts_at"`
	Location   string    `gorm:"size:200;not null" json:"location"`
	Capacity   int       `gorm:"not null;default:0" json:"capacity"`    // 0 = 不限名额
	PriceCents int       `gorm:"not null;default:0" json:"price_cents"` // 0 = 免费
	Category   string    `gorm:"size:50;not null;default:general;index" json:"category"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// OwnerClub 归属判定：返回 (clubID, true) 表示社团活动，false 表示全校活动。
// 授权分支只看这里，不允许在业务里散落 nil 判断。
func (e *Event) OwnerClub() (uint64, bool) {
	if e.ClubID == nil {
		return 0, false
	}
	return *e.ClubID, true
}

// Registration (event_id, user_email) 唯一，重复报名幂等
type Registration struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	EventID   uint64    `gorm:"not null;index;uniqueIndex:uk_event_user" json:"event_id"`
	UserEmail string    `gorm:"size:255;not null;uniqueIndex:uk_event_user" json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
}
