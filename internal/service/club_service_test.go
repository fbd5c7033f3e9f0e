package service

import (
	"testing"

	"Campus_Hub/internal/model"
	"Campus_Hub/internal/pkg"
	"Campus_Hub/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClubAuthz(t *testing.T) {
	setupTestDB(t)
	svc := NewClubService()

	// 学生和未审批的 leader 都不能建社团
	_, err := svc.Create(studentID, "Chess", "board games", "")
	assert.Equal(t, pkg.CodePermissionDenied, pkg.CodeOf(err))

	_, err = svc.Create(pendingLeaderID, "Chess", "board games", "")
	assert.Equal(t, pkg.CodePermissionDenied, pkg.CodeOf(err))

	// 已审批的 leader 可以
	sum, err := svc.Create(leaderID, "Chess", "board games", "games")
	require.NoError(t, err)
	assert.False(t, sum.Approved)
	// 创建者同时拿到一条 pending 的 leader 成员记录
	require.NotNil(t, sum.MembershipStatus)
	assert.Equal(t, model.MemberStatusPending, *sum.MembershipStatus)
	assert.Equal(t, model.MemberRoleLeader, *sum.MembershipRole)
}

func TestCreateClubValidation(t *testing.T) {
	setupTestDB(t)
	svc := NewClubService()

	_, err := svc.Create(leaderID, "   ", "desc", "")
	assert.Equal(t, pkg.CodeInvalidArgument, pkg.CodeOf(err))

	_, err = svc.Create(leaderID, "Chess", "  \t ", "")
	assert.Equal(t, pkg.CodeInvalidArgument, pkg.CodeOf(err))

	// 名字唯一
	_, err = svc.Create(leaderID, "Chess", "board games", "games")
	require.NoError(t, err)
	_, err = svc.Create(leaderID, "Chess", "another chess club", "games")
	assert.Equal(t, pkg.CodeConflict, pkg.CodeOf(err))
}

func TestJoinLifecycle(t *testing.T) {
	setupTestDB(t)
	svc := NewClubService()

	sum, err := svc.Create(leaderID, "Robotics", "we build robots", "tech")
	require.NoError(t, err)

	// 未审批的社团不开放加入
	_, err = svc.Join(studentID, sum.ID)
	assert.Equal(t, pkg.CodeNotFound, pkg.CodeOf(err))

	_, err = svc.ApproveClub(adminID, sum.ID)
	require.NoError(t, err)

	// 首次加入 -> pending
	res, err := svc.Join(studentID, sum.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusPending, res.Status)

	// pending 时重复 join 仍是 pending
	res, err = svc.Join(studentID, sum.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusPending, res.Status)

	// 负责人审批转正
	res, err = svc.ApproveMember(leaderID, sum.ID, studentID.Email)
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusApproved, res.Status)

	// 已转正后 join 幂等
	res, err = svc.Join(studentID, sum.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusApproved, res.Status)
	assert.Equal(t, "already a member", res.Message)

	// 退出 -> removed
	res, err = svc.Leave(studentID, sum.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusRemoved, res.Status)

	// 再退报 404
	_, err = svc.Leave(studentID, sum.ID)
	assert.Equal(t, pkg.CodeNotFound, pkg.CodeOf(err))

	// removed 可以重新加入，回到 pending
	res, err = svc.Join(studentID, sum.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusPending, res.Status)

	// 始终只有一条成员记录
	var count int64
	require.NoError(t, mysql.DB.Model(&model.ClubMember{}).
		Where("club_id = ? AND user_email = ?", sum.ID, studentID.Email).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLeaveWithoutMembership(t *testing.T) {
	setupTestDB(t)
	svc := NewClubService()
	clubID := mustApprovedClub(t, svc, leaderID, "Film Society")

	_, err := svc.Leave(studentID, clubID)
	assert.Equal(t, pkg.CodeNotFound, pkg.CodeOf(err))
}

func TestApproveMemberAuthz(t *testing.T) {
	setupTestDB(t)
	svc := NewClubService()
	clubID := mustApprovedClub(t, svc, leaderID, "Debate")

	_, err := svc.Join(studentID, clubID)
	require.NoError(t, err)

	// 学生不能审批
	_, err = svc.ApproveMember(studentID, clubID, studentID.Email)
	assert.Equal(t, pkg.CodePermissionDenied, pkg.CodeOf(err))

	// 其他社团的 leader 不能审批
	other := model.Identity{Email: "other@campus.edu", Role: model.RoleLeader, Approved: true}
	_, err = svc.ApproveMember(other, clubID, studentID.Email)
	assert.Equal(t, pkg.CodePermissionDenied, pkg.CodeOf(err))

	// 不存在的成员报 404
	_, err = svc.ApproveMember(leaderID, clubID, "ghost@campus.edu")
	assert.Equal(t, pkg.CodeNotFound, pkg.CodeOf(err))

	// admin 随时可以
	res, err := svc.ApproveMember(adminID, clubID, studentID.Email)
	require.NoError(t, err)
	assert.Equal(t, model.MemberStatusApproved, res.Status)
}

func TestApproveClubPromotesExistingLeaders(t *testing.T) {
	setupTestDB(t)
	svc := NewClubService()

	sum, err := svc.Create(leaderID, "Anime", "watch together", "")
	require.NoError(t, err)

	_, err = svc.ApproveClub(adminID, sum.ID)
	require.NoError(t, err)

	// 创建时的 pending leader 记录被整体转正，不会新建第二条
	var members []model.ClubMember
	require.NoError(t, mysql.DB.
		Where("club_id = ? AND role = ?", sum.ID, model.MemberRoleLeader).
		Find(&members).Error)
	require.Len(t, members, 1)
	assert.Equal(t, model.MemberStatusApproved, members[0].Status)
	assert.Equal(t, leaderID.Email, members[0].UserEmail)
}

func TestApproveClubBackfillsLeader(t *testing.T) {
	setupTestDB(t)
	svc := NewClubService()

	// 直接造一个没有任何成员记录的社团
	club := model.Club{Name: "Orphan", Description: "no members yet", CreatedByEmail: leaderID.Email}
	require.NoError(t, mysql.DB.Create(&club).Error)

	_, err := svc.ApproveClub(adminID, club.ID)
	require.NoError(t, err)

	var members []model.ClubMember
	require.NoError(t, mysql.DB.
		Where("club_id = ? AND role = ?", club.ID, model.MemberRoleLeader).
		Find(&members).Error)
	require.Len(t, members, 1)
	assert.Equal(t, model.MemberStatusApproved, members[0].Status)
	assert.Equal(t, leaderID.Email, members[0].UserEmail)
}

func TestApproveClubRequiresAdmin(t *testing.T) {
	setupTestDB(t)
	svc := NewClubService()

	sum, err := svc.Create(leaderID, "Choir", "sing", "")
	require.NoError(t, err)

	_, err = svc.ApproveClub(leaderID, sum.ID)
	assert.Equal(t, pkg.CodePermissionDenied, pkg.CodeOf(err))

	_, err = svc.ApproveClub(adminID, 9999)
	assert.Equal(t, pkg.CodeNotFound, pkg.CodeOf(err))
}

func TestAnnouncementAuthz(t *testing.T) {
	setupTestDB(t)
	svc := NewClubService()

	sum, err := svc.Create(leaderID, "Hiking", "walk far", "sports")
	require.NoError(t, err)

	// 社团未审批时创建者的 leader 记录还是 pending，发公告被拒
	_, err = svc.CreateAnnouncement(leaderID, sum.ID, "First trip", "this weekend")
	assert.Equal(t, pkg.CodePermissionDenied, pkg.CodeOf(err))

	_, err = svc.ApproveClub(adminID, sum.ID)
	require.NoError(t, err)

	a, err := svc.CreateAnnouncement(leaderID, sum.ID, "First trip", "this weekend")
	require.NoError(t, err)
	assert.Equal(t, "First trip", a.Title)

	// 账号未审批的 leader 永远不行
	_, err = svc.CreateAnnouncement(pendingLeaderID, sum.ID, "Hi", "")
	assert.Equal(t, pkg.CodePermissionDenied, pkg.CodeOf(err))

	// 空标题是参数错误
	_, err = svc.CreateAnnouncement(leaderID, sum.ID, "   ", "")
	assert.Equal(t, pkg.CodeInvalidArgument, pkg.CodeOf(err))
}

func TestListFiltersAndAnnotation(t *testing.T) {
	setupTestDB(t)
	svc := NewClubService()

	mustApprovedClub(t, svc, leaderID, "Go Club")
	chessID := mustApprovedClub(t, svc, leaderID, "Chess Masters")

	_, err := svc.Join(studentID, chessID)
	require.NoError(t, err)

	// 子串搜索大小写不敏感，命中名称或简介
	list, err := svc.List(studentID, mysql.ClubFilter{Search: "chess"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Chess Masters", list[0].Name)
	// 观察者注解
	require.NotNil(t, list[0].MembershipStatus)
	assert.Equal(t, model.MemberStatusPending, *list[0].MembershipStatus)

	// category 精确匹配
	list, err = svc.List(studentID, mysql.ClubFilter{Category: "tech"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	// 无过滤时按名称升序
	list, err = svc.List(studentID, mysql.ClubFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Chess Masters", list[0].Name)
	assert.Equal(t, "Go Club", list[1].Name)

	// 没有成员关系的观察者注解为空
	assert.Nil(t, list[1].MembershipStatus)
}

func TestMine(t *testing.T) {
	setupTestDB(t)
	svc := NewClubService()

	clubID := mustApprovedClub(t, svc, leaderID, "Astronomy")
	mustApprovedClub(t, svc, leaderID, "Baking")

	_, err := svc.Join(studentID, clubID)
	require.NoError(t, err)

	// pending 还不算「我的社团」
	mine, err := svc.Mine(studentID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	_, err = svc.ApproveMember(leaderID, clubID, studentID.Email)
	require.NoError(t, err)

	mine, err = svc.Mine(studentID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Astronomy", mine[0].Name)
}

func TestDetailRosterVisibility(t *testing.T) {
	setupTestDB(t)
	svc := NewClubService()
	clubID := mustApprovedClub(t, svc, leaderID, "Gardening")

	_, err := svc.Join(studentID, clubID)
	require.NoError(t, err)

	// 普通观察者只看到已转正成员（此时只有 leader 本人）
	detail, err := svc.Detail(studentID, clubID)
	require.NoError(t, err)
	require.Len(t, detail.Members, 1)
	assert.Equal(t, leaderID.Email, detail.Members[0].UserEmail)

	// 本社团负责人看到全部状态
	detail, err = svc.Detail(leaderID, clubID)
	require.NoError(t, err)
	assert.Len(t, detail.Members, 2)

	// 管理员同样看全量
	detail, err = svc.Detail(adminID, clubID)
	require.NoError(t, err)
	assert.Len(t, detail.Members, 2)

	_, err = svc.Detail(studentID, 9999)
	assert.Equal(t, pkg.CodeNotFound, pkg.CodeOf(err))
}
