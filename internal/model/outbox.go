package model

import "time"

const (
	NotifyChannelEmail = "email"
	NotifyChannelPush  = "push"

	OutboxPending = int8(0)
	OutboxSent    = int8(1)
	OutboxFailed  = int8(2)
)

// NotificationOutbox 报名成功后的通知先落库，由后台 relayer 异步投递。
// 投递失败只累加 Retry，不影响报名事务。
type NotificationOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	Channel   string `gorm:"size:16;not null"` // email / push
	Recipient string `gorm:"size:255;not null"`
	Subject   string `gorm:"size:200;not null"`
	Body      string `gorm:"type:text"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (NotificationOutbox) TableName() string { return "notification_outbox" }
