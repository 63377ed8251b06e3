package dao

import (
	"fleamarket/model"

	"gorm.io/gorm"
)

type BidDAO struct {
	db    *gorm.DB
	retry RetryPolicy
}

// NewBidDAO 创建一个新的 BidDAO 实例
func NewBidDAO(db *gorm.DB, retry RetryPolicy) *BidDAO {
	return &BidDAO{db: db, retry: retry}
}

// CreateBid 创建新竞价
func (dao *BidDAO) CreateBid(bid *model.Bid) error {
	return dao.retry.Do(func() error {
		return dao.db.Create(bid).Error
	})
}

// ListByItem returns all bids against the given item in submission order.
func (dao *BidDAO) ListByItem(itemID uint64) ([]model.Bid, error) {
	var bids []model.Bid
	err := dao.retry.Do(func() error {
		return dao.db.Where("item_id = ?", itemID).Order("id ASC").Find(&bids).Error
	})
	if err != nil {
		return nil, err
	}
	return bids, nil
}
