package mysql

import (
	"errors"
	"strings"

	"Campus_Hub/internal/model"

	"gorm.io/gorm"
)

type ClubRepository struct {
	DB *gorm.DB
}

func NewClubRepository() *ClubRepository {
	return &ClubRepository{DB: DB}
}

// ClubFilter 列表过滤条件，Search 对名称/简介做大小写不敏感子串匹配
type ClubFilter struct {
	Search   string
	Category string
	Approved *bool
}

// Create 建社团并同时给创建者写入一条 pending 的 leader 成员记录，同一事务
func (r *ClubRepository) Create(club *model.Club, creatorEmail string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(club).Error; err != nil {
			return err
		}
		return tx.Create(&model.ClubMember{
			ClubID:    club.ID,
			UserEmail: creatorEmail,
			Role:      model.MemberRoleLeader,
			Status:    model.MemberStatusPending,
		}).Error
	})
}

func (r *ClubRepository) FindByID(id uint64) (*model.Club, error) {
	var club model.Club
	err := r.DB.First(&club, id).Error
	return &club, err
}

func (r *ClubRepository) FindByName(name string) (*model.Club, error) {
	var club model.Club
	err := r.DB.Where("name = ?", name).First(&club).Error
	return &club, err
}

func (r *ClubRepository) List(f ClubFilter) ([]model.Club, error) {
	q := r.DB.Model(&model.Club{})
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Approved != nil {
		q = q.Where("approved = ?", *f.Approved)
	}
	var list []model.Club
	err := q.Order("name asc").Find(&list).Error
	return list, err
}

func (r *ClubRepository) ListByIDs(ids []uint64) ([]model.Club, error) {
	var list []model.Club
	err := r.DB.Where("id IN ?", ids).Order("name asc").Find(&list).Error
	return list, err
}

func (r *ClubRepository) ListPending() ([]model.Club, error) {
	var list []model.Club
	err := r.DB.Where("approved = ?", false).Order("name asc").Find(&list).Error
	return list, err
}

// Approve 审批社团：置 approved 后，已有 leader 成员记录全部转正；
// 一条都没有时为 created_by_email 补一条已审批的 leader 记录，
// 保证审批过的社团至少有一个有效负责人。
func (r *ClubRepository) Approve(clubID uint64) (*model.Club, error) {
	var club model.Club
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&club, clubID).Error; err != nil {
			return err
		}
		if err := tx.Model(&club).Update("approved", true).Error; err != nil {
			return err
		}

		var leaderCount int64
		if err := tx.Model(&model.ClubMember{}).
			Where("club_id = ? AND role = ?", clubID, model.MemberRoleLeader).
			Count(&leaderCount).Error; err != nil {
			return err
		}
		if leaderCount > 0 {
			return tx.Model(&model.ClubMember{}).
				Where("club_id = ? AND role = ?", clubID, model.MemberRoleLeader).
				Update("status", model.MemberStatusApproved).Error
		}
		return tx.Create(&model.ClubMember{
			ClubID:    clubID,
			UserEmail: club.CreatedByEmail,
			Role:      model.MemberRoleLeader,
			Status:    model.MemberStatusApproved,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &club, nil
}

// IsNotFound gorm 的未命中统一从这里判断，避免各处散落 errors.Is
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
