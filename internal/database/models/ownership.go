// Package models 数据模型 - 角色持有记录
package models

import (
	"time"
)

// Ownership 用户与角色的持有关系
// 同一 (user, character) 至多一行，重复捕获只增加计数
type Ownership struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserTG         int64     `gorm:"column:user_tg;not null;uniqueIndex:idx_user_character" json:"user_tg"`
	CharacterID    uint      `gorm:"column:character_id;not null;uniqueIndex:idx_user_character" json:"character_id"`
	Count          int       `gorm:"column:count;not null;default:1" json:"count"`
	FirstClaimedAt time.Time `gorm:"column:first_claimed_at" json:"first_claimed_at"`
	LastClaimedAt  time.Time `gorm:"column:last_claimed_at" json:"last_claimed_at"`

	Character *Character `gorm:"foreignKey:CharacterID" json:"character,omitempty"`
}

// TableName 表名
func (Ownership) TableName() string {
	return "ownerships"
}

// IsFirstCapture 是否首次捕获
func (o *Ownership) IsFirstCapture() bool {
	return o.Count == 1
}
