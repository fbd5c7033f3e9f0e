package mysql

import (
	"Campus_Hub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClubMemberRepository struct {
	DB *gorm.DB
}

func NewClubMemberRepository() *ClubMemberRepository {
	return &ClubMemberRepository{DB: DB}
}

func (r *ClubMemberRepository) Find(clubID uint64, email string) (*model.ClubMember, error) {
	var m model.ClubMember
	err := r.DB.Where("club_id = ? AND user_email = ?", clubID, email).First(&m).Error
	return &m, err
}

// CreatePending 首次加入：幂等插入，并发重复 join 不会产生第二行
func (r *ClubMemberRepository) CreatePending(clubID uint64, email string) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "club_id"}, {Name: "user_email"}},
		DoNothing: true,
	}).Create(&model.ClubMember{
		ClubID:    clubID,
		UserEmail: email,
		Role:      model.MemberRoleMember,
		Status:    model.MemberStatusPending,
	}).Error
}

// UpdateStatus 状态流转由 model.NextMembershipStatus 决定，这里只做落库
func (r *ClubMemberRepository) UpdateStatus(m *model.ClubMember, status string) error {
	return r.DB.Model(m).Update("status", status).Error
}

// ListByClub statuses 为空返回全部状态，供负责人/管理员视角使用
func (r *ClubMemberRepository) ListByClub(clubID uint64, statuses ...string) ([]model.ClubMember, error) {
	q := r.DB.Where("club_id = ?", clubID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var list []model.ClubMember
	err := q.Order("id asc").Find(&list).Error
	return list, err
}

func (r *ClubMemberRepository) CountApproved(clubID uint64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ClubMember{}).
		Where("club_id = ? AND status = ?", clubID, model.MemberStatusApproved).
		Count(&count).Error
	return count, err
}

// ListApprovedClubIDs 用户已转正的社团 id，供「我的社团」使用
func (r *ClubMemberRepository) ListApprovedClubIDs(email string) ([]uint64, error) {
	var ids []uint64
	err := r.DB.Model(&model.ClubMember{}).
		Where("user_email = ? AND status = ?", email, model.MemberStatusApproved).
		Pluck("club_id", &ids).Error
	return ids, err
}

// IsApprovedLeader club 维度的负责人校验：要求 role=leader 且 status=approved
func (r *ClubMemberRepository) IsApprovedLeader(clubID uint64, email string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ClubMember{}).
		Where("club_id = ? AND user_email = ? AND role = ? AND status = ?",
			clubID, email, model.MemberRoleLeader, model.MemberStatusApproved).
		Count(&count).Error
	return count > 0, err
}
