package model

// Item 商品模型
// Nickname is copied from the posting user at creation time and never
// refreshed afterwards.
type Item struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	Title       string `gorm:"size:100" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImagePath   string `gorm:"not null;size:255" json:"-"`
	UserID      uint64 `gorm:"not null;index" json:"user_id"`
	Nickname    string `gorm:"size:100" json:"nickname"`
	CreatedAt   string `gorm:"size:19;index" json:"created_at"` // "2006-01-02 15:04:05" local

	ImageURL string `gorm:"-" json:"image_url"` // derived, never stored
}
