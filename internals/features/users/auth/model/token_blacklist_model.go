package model

import "time"

type TokenBlacklistModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"type:text;not null;uniqueIndex:uq_token_blacklist_token" json:"token"`
	ExpiredAt time.Time `gorm:"not null;index:idx_token_blacklist_expired" json:"expired_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (TokenBlacklistModel) TableName() string {
	return "token_blacklist"
}
