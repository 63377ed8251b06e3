package dao

import (
	"fleamarket/model"

	"gorm.io/gorm"
)

type UserDAO struct {
	db    *gorm.DB
	retry RetryPolicy
}

// NewUserDAO 创建一个新的 UserDAO 实例
func NewUserDAO(db *gorm.DB, retry RetryPolicy) *UserDAO {
	return &UserDAO{db: db, retry: retry}
}

// CreateUser 创建新用户
func (dao *UserDAO) CreateUser(user *model.User) error {
	return dao.retry.Do(func() error {
		return dao.db.Create(user).Error
	})
}

// GetByUsername 根据用户名获取用户
func (dao *UserDAO) GetByUsername(username string) (*model.User, error) {
	var user model.User
	err := dao.retry.Do(func() error {
		return dao.db.Where("username = ?", username).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
