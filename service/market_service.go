package service

import (
	"errors"
	"fmt"
	"time"

	"fleamarket/internal/upload"
	"fleamarket/model"

	"gorm.io/gorm"
)

var ErrItemNotFound = errors.New("item not found")

// Identity is the authenticated user stamped onto created rows.
type Identity struct {
	UserID   uint64
	Nickname string
}

// SaveFunc writes the upload's content to the destination path. The
// handler supplies it so the service never touches multipart plumbing.
type SaveFunc func(dst string) error

// ItemStore is the slice of the item DAO the market flows need.
type ItemStore interface {
	CreateItem(item *model.Item) error
	ListItems() ([]model.Item, error)
	GetByID(id uint64) (*model.Item, error)
}

// BidStore is the slice of the bid DAO the market flows need.
type BidStore interface {
	CreateBid(bid *model.Bid) error
	ListByItem(itemID uint64) ([]model.Bid, error)
}

// MarketService covers item listing, item detail and the two posting
// flows (item, bid).
type MarketService struct {
	items ItemStore
	bids  BidStore
	store *upload.Store
}

// NewMarketService 创建一个新的 MarketService 实例
func NewMarketService(items ItemStore, bids BidStore, store *upload.Store) *MarketService {
	return &MarketService{items: items, bids: bids, store: store}
}

// ListItems returns all items newest-first, each decorated with its
// servable image URL.
func (s *MarketService) ListItems() ([]model.Item, error) {
	items, err := s.items.ListItems()
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ImageURL = s.store.ServeURL(items[i].ImagePath)
	}
	return items, nil
}

// ItemDetail returns one item and every bid submitted against it, in
// submission order.
func (s *MarketService) ItemDetail(id uint64) (*model.Item, []model.Bid, error) {
	item, err := s.items.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrItemNotFound
		}
		return nil, nil, err
	}
	item.ImageURL = s.store.ServeURL(item.ImagePath)

	bids, err := s.bids.ListByItem(id)
	if err != nil {
		return nil, nil, err
	}
	for i := range bids {
		bids[i].ImageURL = s.store.ServeURL(bids[i].ImagePath)
	}
	return item, bids, nil
}

// PostItem validates and stores the image, then inserts an Item row
// stamped with the formatted local timestamp and the session nickname.
// A rejected image creates no row.
func (s *MarketService) PostItem(who Identity, title, description, filename string, save SaveFunc) (*model.Item, error) {
	relPath, err := s.storeImage(filename, save)
	if err != nil {
		return nil, err
	}
	item := &model.Item{
		Title:       title,
		Description: description,
		ImagePath:   relPath,
		UserID:      who.UserID,
		Nickname:    who.Nickname,
		CreatedAt:   nowStamp(),
	}
	if err := s.items.CreateItem(item); err != nil {
		return nil, err
	}
	item.ImageURL = s.store.ServeURL(item.ImagePath)
	return item, nil
}

// PostBid is the same flow as PostItem but the row references the
// target item id. The target's existence is not verified.
func (s *MarketService) PostBid(who Identity, itemID uint64, title, description, filename string, save SaveFunc) (*model.Bid, error) {
	relPath, err := s.storeImage(filename, save)
	if err != nil {
		return nil, err
	}
	bid := &model.Bid{
		ItemID:      itemID,
		Title:       title,
		Description: description,
		ImagePath:   relPath,
		UserID:      who.UserID,
		Nickname:    who.Nickname,
		CreatedAt:   nowStamp(),
	}
	if err := s.bids.CreateBid(bid); err != nil {
		return nil, err
	}
	bid.ImageURL = s.store.ServeURL(bid.ImagePath)
	return bid, nil
}

// storeImage validates the filename, writes the file and returns the
// store-relative path. The file lands on disk before the row insert;
// a crash in between leaves an orphaned upload.
func (s *MarketService) storeImage(filename string, save SaveFunc) (string, error) {
	clean, err := s.store.Accept(filename)
	if err != nil {
		return "", err
	}
	if err := save(s.store.DestPath(clean)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return s.store.RelativePath(clean), nil
}

func nowStamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
