package dao

import (
	"fleamarket/model"

	"gorm.io/gorm"
)

type ItemDAO struct {
	db    *gorm.DB
	retry RetryPolicy
}

// NewItemDAO 创建一个新的 ItemDAO 实例
func NewItemDAO(db *gorm.DB, retry RetryPolicy) *ItemDAO {
	return &ItemDAO{db: db, retry: retry}
}

// CreateItem 创建新商品
func (dao *ItemDAO) CreateItem(item *model.Item) error {
	return dao.retry.Do(func() error {
		return dao.db.Create(item).Error
	})
}

// ListItems returns all items, newest first.
func (dao *ItemDAO) ListItems() ([]model.Item, error) {
	var items []model.Item
	err := dao.retry.Do(func() error {
		return dao.db.Order("created_at DESC, id DESC").Find(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID 根据 ID 获取商品
func (dao *ItemDAO) GetByID(id uint64) (*model.Item, error) {
	var item model.Item
	err := dao.retry.Do(func() error {
		return dao.db.First(&item, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}
