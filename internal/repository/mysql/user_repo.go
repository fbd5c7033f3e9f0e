package mysql

import (
	"Campus_Hub/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository() *UserRepository {
	return &UserRepository{DB: DB}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

// FindByIdentifier 用户名或邮箱二选一登录
func (r *UserRepository) FindByIdentifier(identifier string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ? OR email = ?", identifier, identifier).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

// ExistsByUsernameOrEmail 注册前的重复检查
func (r *UserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

// ListPendingLeaders 未审批的 leader 账号，按用户名排序
func (r *UserRepository) ListPendingLeaders() ([]model.User, error) {
	var list []model.User
	err := r.DB.Where("role = ? AND is_approved = ?", model.RoleLeader, false).
		Order("username asc").Find(&list).Error
	return list, err
}

func (r *UserRepository) Approve(user *model.User) error {
	return r.DB.Model(user).Update("is_approved", true).Error
}
