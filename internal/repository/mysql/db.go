package mysql

import (
	"Campus_Hub/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var DB *gorm.DB

var lockingUpdate = clause.Locking{Strength: "UPDATE"}

// InitDB 连接 MySQL
func InitDB(dsn string) error {
	return Init(mysql.Open(dsn))
}

// Init 按 dialector 打开连接，测试用 sqlite 走这里
func Init(dialector gorm.Dialector) error {
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// AutoMigrate 自动建表（开发阶段 OK）
func AutoMigrate() error {
	return DB.AutoMigrate(
		&model.User{},
		&model.Club{},
		&model.ClubMember{},
		&model.ClubAnnouncement{},
		&model.Event{},
		&model.Registration{},
		&model.Flag{},
		&model.NotificationOutbox{},
	)
}

// BootstrapAdmin 库里没有任何 admin 时按配置创建一个引导账号
func BootstrapAdmin(email, passwordHash string) error {
	if email == "" || passwordHash == "" {
		return nil
	}
	var count int64
	if err := DB.Model(&model.User{}).
		Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return DB.Create(&model.User{
		Username:   "admin",
		Password:   passwordHash,
		Email:      email,
		Role:       model.RoleAdmin,
		IsApproved: true,
	}).Error
}

// lockForUpdate MySQL 下对查询行加排他锁；SQLite 写事务天然串行，无需行锁
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "mysql" {
		return tx.Clauses(lockingUpdate)
	}
	return tx
}
