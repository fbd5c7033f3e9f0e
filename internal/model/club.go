package model

import "time"

type Club struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"uniqueIndex;size:200;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	Category       string    `gorm:"size:50;index" json:"category"`
	Approved       bool      `gorm:"not null;default:false;index" json:"approved"`
	CreatedByEmail string    `gorm:"size:255;not null" json:"created_by_email"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	MemberRoleMember = "member"
	MemberRoleLeader = "leader"

	MemberStatusPending  = "pending"
	MemberStatusApproved = "approved"
	MemberStatusRemoved  = "removed"
)

// ClubMember (club_id, user_email) 唯一，重复加入走状态流转而不是插新行
type ClubMember struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	ClubID    uint64    `gorm:"not null;index;uniqueIndex:uk_club_user" json:"club_id"`
	UserEmail string    `gorm:"size:255;not null;uniqueIndex:uk_club_user" json:"user_email"`
	Role      string    `gorm:"size:20;not null;default:member" json:"role"`
	Status    string    `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ClubAnnouncement struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	ClubID    uint64    `gorm:"not null;index" json:"club_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
