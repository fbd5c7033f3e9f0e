package mysql

import (
	"Campus_Hub/internal/model"

	"gorm.io/gorm"
)

type FlagRepository struct {
	DB *gorm.DB
}

func NewFlagRepository() *FlagRepository {
	return &FlagRepository{DB: DB}
}

func (r *FlagRepository) Create(f *model.Flag) error {
	return r.DB.Create(f).Error
}

// ListUnresolved 待处理队列，最新在前
func (r *FlagRepository) ListUnresolved() ([]model.Flag, error) {
	var list []model.Flag
	err := r.DB.Where("resolved = ?", false).
		Order("created_at desc, id desc").
		Find(&list).Error
	return list, err
}

func (r *FlagRepository) FindByID(id uint64) (*model.Flag, error) {
	var f model.Flag
	err := r.DB.First(&f, id).Error
	return &f, err
}

func (r *FlagRepository) Resolve(f *model.Flag) error {
	return r.DB.Model(f).Update("resolved", true).Error
}
