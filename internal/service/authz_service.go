package service

import (
	"Campus_Hub/internal/model"
	"Campus_Hub/internal/pkg"
	"Campus_Hub/internal/repository/mysql"
)

// AuthzService 三条授权规则，全部返回 PERMISSION_DENIED 级别的错误，
// 与 NOT_FOUND 严格区分。
type AuthzService struct {
	members *mysql.ClubMemberRepository
}

func NewAuthzService() *AuthzService {
	return &AuthzService{members: mysql.NewClubMemberRepository()}
}

// EnsureAdmin 仅管理员
func (s *AuthzService) EnsureAdmin(id model.Identity) error {
	if id.Role != model.RoleAdmin {
		return pkg.Forbidden("admin access required")
	}
	return nil
}

// EnsureLeaderRole 账号维度的 leader 校验：admin 直接放行，
// leader 必须先通过管理员审批。不检查任何社团成员关系。
func (s *AuthzService) EnsureLeaderRole(id model.Identity) error {
	if id.Role == model.RoleAdmin {
		return nil
	}
	if id.Role != model.RoleLeader || !id.Approved {
		return pkg.Forbidden("leader approval required")
	}
	return nil
}

// EnsureClubLeader 社团维度的 leader 校验：账号审批是硬前置，
// 未过审批的 leader 连成员关系都不查；之后要求该社团存在
// (role=leader, status=approved) 的成员记录。
func (s *AuthzService) EnsureClubLeader(id model.Identity, clubID uint64) error {
	if id.Role == model.RoleAdmin {
		return nil
	}
	if err := s.EnsureLeaderRole(id); err != nil {
		return err
	}
	ok, err := s.members.IsApprovedLeader(clubID, id.Email)
	if err != nil {
		return err
	}
	if !ok {
		return pkg.Forbidden("leader access required for this club")
	}
	return nil
}
