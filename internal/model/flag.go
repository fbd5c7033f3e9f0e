package model

import (
	"strings"
	"time"
)

const (
	FlagItemEvent        = "event"
	FlagItemAnnouncement = "announcement"
)

// NormalizeFlagItemType 大小写不敏感，非法类型返回 false
func NormalizeFlagItemType(itemType string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(itemType))
	if t == FlagItemEvent || t == FlagItemAnnouncement {
		return t, true
	}
	return "", false
}

// Flag 用户举报记录，resolved 置位后从待处理队列消失，不做物理删除
type Flag struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	ItemType  string    `gorm:"size:50;not null" json:"item_type"`
	ItemID    uint64    `gorm:"not null" json:"item_id"`
	Reason    string    `gorm:"type:text" json:"reason"`
	UserEmail string    `gorm:"size:255;not null" json:"user_email"`
	Resolved  bool      `gorm:"not null;default:false;index" json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
}
