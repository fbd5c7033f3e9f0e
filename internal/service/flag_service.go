package service

import (
	"strings"

	"Campus_Hub/internal/model"
	"Campus_Hub/internal/pkg"
	"Campus_Hub/internal/repository/mysql"
)

type FlagService struct {
	repo  *mysql.FlagRepository
	authz *AuthzService
}

func NewFlagService() *FlagService {
	return &FlagService{
		repo:  mysql.NewFlagRepository(),
		authz: NewAuthzService(),
	}
}

// Create 任何登录用户都可以举报，item_type 只接受 event / announcement
func (s *FlagService) Create(actor model.Identity, itemType string, itemID uint64, reason string) (*model.Flag, error) {
	normalized, ok := model.NormalizeFlagItemType(itemType)
	if !ok {
		return nil, pkg.Invalid("item_type must be event or announcement")
	}
	if itemID == 0 {
		return nil, pkg.Invalid("item_id required")
	}

	f := &model.Flag{
		ItemType:  normalized,
		ItemID:    itemID,
		Reason:    strings.TrimSpace(reason),
		UserEmail: actor.Email,
		Resolved:  false,
	}
	if err := s.repo.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

// ListUnresolved 管理员的待处理队列
func (s *FlagService) ListUnresolved(actor model.Identity) ([]model.Flag, error) {
	if err := s.authz.EnsureAdmin(actor); err != nil {
		return nil, err
	}
	return s.repo.ListUnresolved()
}

// Resolve 处理完的举报不删除，只置位；没有反向操作
func (s *FlagService) Resolve(actor model.Identity, flagID uint64) (*model.Flag, error) {
	if err := s.authz.EnsureAdmin(actor); err != nil {
		return nil, err
	}
	f, err := s.repo.FindByID(flagID)
	if err != nil {
		if mysql.IsNotFound(err) {
			return nil, pkg.NotFound("flag not found")
		}
		return nil, err
	}
	if err := s.repo.Resolve(f); err != nil {
		return nil, err
	}
	f.Resolved = true
	return f, nil
}
