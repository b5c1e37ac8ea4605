// Package models 数据模型 - 掉落
package models

import (
	"time"
)

// Drop 群组当前的掉落
// 以 chat_id 作主键，保证每群同时至多一个掉落
type Drop struct {
	ChatID      int64     `gorm:"column:chat_id;primaryKey;autoIncrement:false" json:"chat_id"`
	CharacterID uint      `gorm:"column:character_id;not null" json:"character_id"`
	MessageID   int       `gorm:"column:message_id" json:"message_id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	ExpiresAt   time.Time `gorm:"column:expires_at;index" json:"expires_at"`

	Character *Character `gorm:"foreignKey:CharacterID" json:"character,omitempty"`
}

// TableName 表名
func (Drop) TableName() string {
	return "drops"
}

// IsExpired 是否已超时
func (d *Drop) IsExpired(now time.Time) bool {
	return now.After(d.ExpiresAt)
}
