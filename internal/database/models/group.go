// Package models 数据模型 - 群组
package models

import (
	"time"
)

// GroupMode 群组掉落模式
type GroupMode string

const (
	ModeWaifu    GroupMode = "waifu"
	ModeHusbando GroupMode = "husbando"
)

// ValidMode 判断模式是否合法
func ValidMode(mode string) bool {
	return mode == string(ModeWaifu) || mode == string(ModeHusbando)
}

// Group 群组表
type Group struct {
	ChatID       int64      `gorm:"column:chat_id;primaryKey;autoIncrement:false" json:"chat_id"`
	Mode         GroupMode  `gorm:"column:mode;size:16;default:'waifu'" json:"mode"`
	DropLimit    int        `gorm:"column:drop_limit;default:10" json:"drop_limit"`
	MessageCount int        `gorm:"column:message_count;default:0" json:"message_count"`
	LastDropAt   *time.Time `gorm:"column:last_drop_at" json:"last_drop_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
}

// TableName 表名
func (Group) TableName() string {
	return "groups"
}

// ShouldDrop 消息计数是否已达掉落阈值
func (g *Group) ShouldDrop() bool {
	return g.MessageCount >= g.DropLimit
}
