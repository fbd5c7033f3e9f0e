package service

import (
	"path/filepath"
	"testing"

	"Campus_Hub/internal/model"
	"Campus_Hub/internal/repository/mysql"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// setupTestDB 每个测试用独立的 sqlite 文件库
func setupTestDB(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, mysql.Init(sqlite.Open(dbPath)))
	require.NoError(t, mysql.AutoMigrate())
}

var (
	adminID = model.Identity{Email: "admin@campus.edu", Role: model.RoleAdmin, Approved: true}

	leaderID = model.Identity{Email: "lena@campus.edu", Role: model.RoleLeader, Approved: true}

	// 账号还没过管理员审批的 leader
	pendingLeaderID = model.Identity{Email: "newbie@campus.edu", Role: model.RoleLeader, Approved: false}

	studentID = model.Identity{Email: "sam@campus.edu", Role: model.RoleStudent, Approved: true}
)

// mustApprovedClub 建一个已审批的社团，创建者的 leader 成员记录随审批转正
func mustApprovedClub(t *testing.T, clubs *ClubService, creator model.Identity, name string) uint64 {
	t.Helper()
	sum, err := clubs.Create(creator, name, "a club for testing", "tech")
	require.NoError(t, err)
	_, err = clubs.ApproveClub(adminID, sum.ID)
	require.NoError(t, err)
	return sum.ID
}
