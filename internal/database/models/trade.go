// Package models 数据模型 - 交易
package models

import (
	"time"
)

// TradeStatus 交易状态
type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeRejected  TradeStatus = "rejected"
	TradeCancelled TradeStatus = "cancelled"
)

// Trade 交易表
// 双向交换：双方各出一个自己持有的角色
type Trade struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID            string      `gorm:"column:uuid;size:36;uniqueIndex" json:"uuid"`
	FromTG          int64       `gorm:"column:from_tg;not null;index" json:"from_tg"`
	ToTG            int64       `gorm:"column:to_tg;not null;index" json:"to_tg"`
	FromCharacterID uint        `gorm:"column:from_character_id;not null" json:"from_character_id"`
	ToCharacterID   uint        `gorm:"column:to_character_id;not null" json:"to_character_id"`
	Status          TradeStatus `gorm:"column:status;size:16;default:'pending';index" json:"status"`
	CreatedAt       time.Time   `gorm:"column:created_at" json:"created_at"`
	CompletedAt     *time.Time  `gorm:"column:completed_at" json:"completed_at,omitempty"`

	FromCharacter *Character `gorm:"foreignKey:FromCharacterID" json:"from_character,omitempty"`
	ToCharacter   *Character `gorm:"foreignKey:ToCharacterID" json:"to_character,omitempty"`
}

// TableName 表名
func (Trade) TableName() string {
	return "trades"
}

// IsPending 是否待处理
func (t *Trade) IsPending() bool {
	return t.Status == TradePending
}

// CanAccept 指定用户是否可以接受此交易
func (t *Trade) CanAccept(userTG int64) bool {
	return t.IsPending() && t.ToTG == userTG
}

// CanReject 指定用户是否可以拒绝此交易
func (t *Trade) CanReject(userTG int64) bool {
	return t.IsPending() && t.ToTG == userTG
}

// CanCancel 指定用户是否可以撤回此交易
func (t *Trade) CanCancel(userTG int64) bool {
	return t.IsPending() && t.FromTG == userTG
}

// StatusEmoji 状态图标
func (t *Trade) StatusEmoji() string {
	switch t.Status {
	case TradeAccepted:
		return "✅"
	case TradeRejected:
		return "❌"
	case TradeCancelled:
		return "🚮"
	default:
		return "⏳"
	}
}
