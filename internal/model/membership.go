package model

import "errors"

// MembershipAction 对一条社团成员记录可执行的动作
type MembershipAction int

const (
	MembershipJoin MembershipAction = iota
	MembershipLeave
	MembershipApprove
)

var (
	// ErrAlreadyMember 已是正式成员，join 幂等返回
	ErrAlreadyMember = errors.New("already a member")
	// ErrNoMembership 成员记录不存在或已退出
	ErrNoMembership = errors.New("membership not found")
)

// NextMembershipStatus 成员状态机：输入当前状态（exists=false 表示无记录）和动作，
// 输出下一个状态。纯函数，不碰存储。
//
//	join:    无记录 -> pending；approved -> ErrAlreadyMember；pending/removed -> pending
//	leave:   无记录或 removed -> ErrNoMembership；其余 -> removed
//	approve: 无记录 -> ErrNoMembership；其余 -> approved
func NextMembershipStatus(current string, exists bool, action MembershipAction) (string, error) {
	switch action {
	case MembershipJoin:
		if !exists {
			return MemberStatusPending, nil
		}
		if current == MemberStatusApproved {
			return MemberStatusApproved, ErrAlreadyMember
		}
		return MemberStatusPending, nil
	case MembershipLeave:
		if !exists || current == MemberStatusRemoved {
			return "", ErrNoMembership
		}
		return MemberStatusRemoved, nil
	case MembershipApprove:
		if !exists {
			return "", ErrNoMembership
		}
		return MemberStatusApproved, nil
	}
	return "", errors.New("unknown membership action")
}
