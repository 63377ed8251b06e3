package model

// Bid 竞价模型 —— structurally an Item plus the target item reference.
// ItemID is taken as given; existence of the target item is not checked
// before insert.
type Bid struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	ItemID      uint64 `gorm:"not null;index" json:"item_id"`
	Title       string `gorm:"size:100" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	ImagePath   string `gorm:"not null;size:255" json:"-"`
	UserID      uint64 `gorm:"not null;index" json:"user_id"`
	Nickname    string `gorm:"size:100" json:"nickname"`
	CreatedAt   string `gorm:"size:19" json:"created_at"`

	ImageURL string `gorm:"-" json:"image_url"` // derived, never stored
}
