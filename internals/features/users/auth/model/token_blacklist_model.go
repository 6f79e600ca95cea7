package model

import "time"

// TokenBlacklist holds revoked access tokens as HMAC hex, never raw.
type TokenBlacklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"type:text;not null;unique" json:"-"`
	ExpiredAt time.Time `gorm:"type:timestamptz;not null;index" json:"expired_at"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
