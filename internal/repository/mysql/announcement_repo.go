package mysql

import (
	"Campus_Hub/internal/model"

	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	DB *gorm.DB
}

func NewAnnouncementRepository() *AnnouncementRepository {
	return &AnnouncementRepository{DB: DB}
}

func (r *AnnouncementRepository) Create(a *model.ClubAnnouncement) error {
	return r.DB.Create(a).Error
}

// ListRecent 最新在前，详情页固定取 5 条
func (r *AnnouncementRepository) ListRecent(clubID uint64, limit int) ([]model.ClubAnnouncement, error) {
	var list []model.ClubAnnouncement
	err := r.DB.Where("club_id = ?", clubID).
		Order("created_at desc, id desc").
		Limit(limit).Find(&list).Error
	return list, err
}
