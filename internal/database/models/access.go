// Package models 数据模型 - 特权与封禁名单
package models

import (
	"time"
)

// SpecialUser 特权用户表
type SpecialUser struct {
	UserTG   int64     `gorm:"column:user_tg;primaryKey;autoIncrement:false" json:"user_tg"`
	Username string    `gorm:"column:username;size:255" json:"username"`
	AddedAt  time.Time `gorm:"column:added_at" json:"added_at"`
}

// TableName 表名
func (SpecialUser) TableName() string {
	return "special_users"
}

// BannedUser 封禁用户表
type BannedUser struct {
	UserTG   int64     `gorm:"column:user_tg;primaryKey;autoIncrement:false" json:"user_tg"`
	Username string    `gorm:"column:username;size:255" json:"username"`
	Reason   string    `gorm:"column:reason;size:500" json:"reason"`
	BannedAt time.Time `gorm:"column:banned_at" json:"banned_at"`
}

// TableName 表名
func (BannedUser) TableName() string {
	return "banned_users"
}
