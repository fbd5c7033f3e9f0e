package service

import (
	"testing"

	"Campus_Hub/internal/model"
	"Campus_Hub/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoles(t *testing.T) {
	setupTestDB(t)
	users := NewUserService()

	// 学生注册直接生效
	student, err := users.Register("sam", "secret123", "Sam@Campus.edu", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, student.Role)
	assert.True(t, student.IsApproved)
	// 邮箱落库统一小写
	assert.Equal(t, "sam@campus.edu", student.Email)

	// leader 注册进入待审批
	leader, err := users.Register("lena", "secret123", "lena@campus.edu", "leader")
	require.NoError(t, err)
	assert.Equal(t, model.RoleLeader, leader.Role)
	assert.False(t, leader.IsApproved)

	// 不能自助注册 admin
	_, err = users.Register("evil", "secret123", "evil@campus.edu", "admin")
	assert.Equal(t, pkg.CodeInvalidArgument, pkg.CodeOf(err))
}

func TestRegisterValidation(t *testing.T) {
	setupTestDB(t)
	users := NewUserService()

	_, err := users.Register("", "secret123", "x@campus.edu", "")
	assert.Equal(t, pkg.CodeInvalidArgument, pkg.CodeOf(err))
	_, err = users.Register("x", "", "x@campus.edu", "")
	assert.Equal(t, pkg.CodeInvalidArgument, pkg.CodeOf(err))
	_, err = users.Register("x", "secret123", "", "")
	assert.Equal(t, pkg.CodeInvalidArgument, pkg.CodeOf(err))
}

func TestRegisterDuplicates(t *testing.T) {
	setupTestDB(t)
	users := NewUserService()

	_, err := users.Register("sam", "secret123", "sam@campus.edu", "")
	require.NoError(t, err)

	// 用户名和邮箱都不能重复
	_, err = users.Register("sam", "secret123", "other@campus.edu", "")
	assert.Equal(t, pkg.CodeInvalidArgument, pkg.CodeOf(err))
	_, err = users.Register("other", "secret123", "sam@campus.edu", "")
	assert.Equal(t, pkg.CodeInvalidArgument, pkg.CodeOf(err))
}

func TestApproveLeader(t *testing.T) {
	setupTestDB(t)
	users := NewUserService()

	leader, err := users.Register("lena", "secret123", "lena@campus.edu", "leader")
	require.NoError(t, err)
	student, err := users.Register("sam", "secret123", "sam@campus.edu", "")
	require.NoError(t, err)

	// 只有管理员能审批
	_, err = users.ApproveLeader(leaderID, leader.ID)
	assert.Equal(t, pkg.CodePermissionDenied, pkg.CodeOf(err))

	approved, err := users.ApproveLeader(adminID, leader.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	// 学生账号和不存在的 id 都按 not found 处理
	_, err = users.ApproveLeader(adminID, student.ID)
	assert.Equal(t, pkg.CodeNotFound, pkg.CodeOf(err))
	_, err = users.ApproveLeader(adminID, 9999)
	assert.Equal(t, pkg.CodeNotFound, pkg.CodeOf(err))
}

func TestListPendingLeaders(t *testing.T) {
	setupTestDB(t)
	users := NewUserService()

	lena, err := users.Register("lena", "secret123", "lena@campus.edu", "leader")
	require.NoError(t, err)
	_, err = users.Register("bob", "secret123", "bob@campus.edu", "leader")
	require.NoError(t, err)
	_, err = users.Register("sam", "secret123", "sam@campus.edu", "")
	require.NoError(t, err)

	_, err = users.ListPendingLeaders(studentID)
	assert.Equal(t, pkg.CodePermissionDenied, pkg.CodeOf(err))

	pending, err := users.ListPendingLeaders(adminID)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	// 用户名升序
	assert.Equal(t, "bob", pending[0].Username)
	assert.Equal(t, "lena", pending[1].Username)

	// 审批后从待办里消失
	_, err = users.ApproveLeader(adminID, lena.ID)
	require.NoError(t, err)
	pending, err = users.ListPendingLeaders(adminID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "bob", pending[0].Username)
}

func TestFlagLifecycle(t *testing.T) {
	setupTestDB(t)
	flags := NewFlagService()

	_, err := flags.Create(studentID, "bad type", 1, "spam")
	assert.Equal(t, pkg.CodeInvalidArgument, pkg.CodeOf(err))
	_, err = flags.Create(studentID, "event", 0, "spam")
	assert.Equal(t, pkg.CodeInvalidArgument, pkg.CodeOf(err))

	// item_type 归一化成小写
	flag, err := flags.Create(studentID, " Event ", 42, "inappropriate")
	require.NoError(t, err)
	assert.Equal(t, model.FlagItemEvent, flag.ItemType)

	_, err = flags.ListUnresolved(studentID)
	assert.Equal(t, pkg.CodePermissionDenied, pkg.CodeOf(err))

	list, err := flags.ListUnresolved(adminID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = flags.Resolve(studentID, flag.ID)
	assert.Equal(t, pkg.CodePermissionDenied, pkg.CodeOf(err))
	_, err = flags.Resolve(adminID, 9999)
	assert.Equal(t, pkg.CodeNotFound, pkg.CodeOf(err))

	resolved, err := flags.Resolve(adminID, flag.ID)
	require.NoError(t, err)
	assert.True(t, resolved.Resolved)

	list, err = flags.ListUnresolved(adminID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
