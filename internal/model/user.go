package model

import "time"

const (
	RoleStudent = "student"
	RoleLeader  = "leader"
	RoleAdmin   = "admin"
)

// ValidRole 校验角色枚举值
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleLeader, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Email      string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Role       string    `gorm:"size:20;not null;default:student" json:"role"`
	IsApproved bool      `gorm:"not null;default:true" json:"is_approved"` // 学生注册即生效，leader 需管理员审批
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Identity 当前请求的操作者身份，由认证中间件注入
type Identity struct {
	UserID   uint64
	Email    string
	Role     string
	Approved bool
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// ApprovedLeader 是否为已审批的社团负责人（admin 视为放行）
func (i Identity) ApprovedLeader() bool {
	if i.Role == RoleAdmin {
		return true
	}
	return i.Role == RoleLeader && i.Approved
}
