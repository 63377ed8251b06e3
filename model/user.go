package model

import "time"

// User 用户模型
type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"unique;not null;size:50" json:"username"`
	PasswordHash string    `gorm:"not null;size:255" json:"-"` // 忽略JSON序列化
	Nickname     string    `gorm:"not null;size:100" json:"nickname"`
	CreatedAt    time.Time `json:"created_at"`
}
