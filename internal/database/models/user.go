// Package models 数据模型 - 用户
package models

import (
	"time"
)

// User 用户表
type User struct {
	TG           int64      `gorm:"column:tg;primaryKey;autoIncrement:false" json:"tg"`
	Username     string     `gorm:"column:username;size:255" json:"username"`
	FirstName    string     `gorm:"column:first_name;size:255" json:"first_name"`
	Coins        int        `gorm:"column:coins;default:0" json:"coins"`
	TotalSummons int        `gorm:"column:total_summons;default:0" json:"total_summons"`
	LastDaily    *time.Time `gorm:"column:last_daily" json:"last_daily,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
}

// TableName 表名
func (User) TableName() string {
	return "users"
}

// DisplayName 用于展示的名称
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return "Collector"
}

// CanAfford 金币是否足够
func (u *User) CanAfford(cost int) bool {
	return u.Coins >= cost
}

// CanClaimDaily 是否可以领取每日奖励
func (u *User) CanClaimDaily(now time.Time) bool {
	if u.LastDaily == nil {
		return true
	}
	return now.Sub(*u.LastDaily) >= 24*time.Hour
}
