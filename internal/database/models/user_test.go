// Package models 数据模型测试
package models

import (
	"testing"
	"time"
)

func TestUser_CanClaimDaily(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		lastDaily *time.Time
		expected  bool
	}{
		{"从未领取", nil, true},
		{"25小时前领取", timePtr(now.Add(-25 * time.Hour)), true},
		{"恰好24小时前", timePtr(now.Add(-24 * time.Hour)), true},
		{"12小时前领取", timePtr(now.Add(-12 * time.Hour)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{LastDaily: tt.lastDaily}
			if got := u.CanClaimDaily(now); got != tt.expected {
				t.Errorf("CanClaimDaily() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUser_CanAfford(t *testing.T) {
	u := &User{Coins: 10}

	if !u.CanAfford(10) {
		t.Error("恰好等于余额应该买得起")
	}
	if u.CanAfford(11) {
		t.Error("超出余额不应该买得起")
	}
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		user     User
		expected string
	}{
		{"有名字", User{FirstName: "Rem", Username: "rem_fan"}, "Rem"},
		{"只有用户名", User{Username: "rem_fan"}, "@rem_fan"},
		{"什么都没有", User{}, "Collector"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.expected {
				t.Errorf("DisplayName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGroup_ShouldDrop(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		limit    int
		expected bool
	}{
		{"未达阈值", 9, 10, false},
		{"恰好达到", 10, 10, true},
		{"已超过", 11, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Group{MessageCount: tt.count, DropLimit: tt.limit}
			if got := g.ShouldDrop(); got != tt.expected {
				t.Errorf("ShouldDrop() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
