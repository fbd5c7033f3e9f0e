package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinTransitions(t *testing.T) {
	// 无记录 -> pending
	next, err := NextMembershipStatus("", false, MembershipJoin)
	assert.NoError(t, err)
	assert.Equal(t, MemberStatusPending, next)

	// 已转正 -> 幂等
	next, err = NextMembershipStatus(MemberStatusApproved, true, MembershipJoin)
	assert.ErrorIs(t, err, ErrAlreadyMember)
	assert.Equal(t, MemberStatusApproved, next)

	// pending 重复 join 仍是 pending
	next, err = NextMembershipStatus(MemberStatusPending, true, MembershipJoin)
	assert.NoError(t, err)
	assert.Equal(t, MemberStatusPending, next)

	// removed 可以重新加入
	next, err = NextMembershipStatus(MemberStatusRemoved, true, MembershipJoin)
	assert.NoError(t, err)
	assert.Equal(t, MemberStatusPending, next)
}

func TestLeaveTransitions(t *testing.T) {
	// 无记录不能退出
	_, err := NextMembershipStatus("", false, MembershipLeave)
	assert.ErrorIs(t, err, ErrNoMembership)

	// 已退出再退出同样报不存在
	_, err = NextMembershipStatus(MemberStatusRemoved, true, MembershipLeave)
	assert.ErrorIs(t, err, ErrNoMembership)

	for _, current := range []string{MemberStatusPending, MemberStatusApproved} {
		next, err := NextMembershipStatus(current, true, MembershipLeave)
		assert.NoError(t, err)
		assert.Equal(t, MemberStatusRemoved, next)
	}
}

func TestApproveTransitions(t *testing.T) {
	_, err := NextMembershipStatus("", false, MembershipApprove)
	assert.ErrorIs(t, err, ErrNoMembership)

	for _, current := range []string{MemberStatusPending, MemberStatusApproved, MemberStatusRemoved} {
		next, err := NextMembershipStatus(current, true, MembershipApprove)
		assert.NoError(t, err)
		assert.Equal(t, MemberStatusApproved, next)
	}
}

func TestRemovedIsNotTerminal(t *testing.T) {
	// removed -> pending -> approved 闭环
	next, err := NextMembershipStatus(MemberStatusRemoved, true, MembershipJoin)
	assert.NoError(t, err)
	next, err = NextMembershipStatus(next, true, MembershipApprove)
	assert.NoError(t, err)
	assert.Equal(t, MemberStatusApproved, next)
}
