// Package config 配置模块测试
package config

import (
	"testing"
)

func TestConfig_IsAdmin(t *testing.T) {
	cfg := &Config{
		Owner:  12345,
		Admins: []int64{11111, 22222},
	}

	tests := []struct {
		name     string
		userID   int64
		expected bool
	}{
		{"Owner 是管理员", 12345, true},
		{"Admin 是管理员", 11111, true},
		{"Admin2 是管理员", 22222, true},
		{"普通用户不是管理员", 99999, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.IsAdmin(tt.userID); got != tt.expected {
				t.Errorf("IsAdmin(%d) = %v, want %v", tt.userID, got, tt.expected)
			}
		})
	}
}

func TestConfig_IsOwner(t *testing.T) {
	cfg := &Config{
		Owner: 12345,
	}

	if !cfg.IsOwner(12345) {
		t.Error("IsOwner(12345) 应该返回 true")
	}

	if cfg.IsOwner(99999) {
		t.Error("IsOwner(99999) 应该返回 false")
	}
}

func TestConfig_IsInGroup(t *testing.T) {
	cfg := &Config{
		Groups: []int64{-100001, -100002},
	}

	if !cfg.IsInGroup(-100001) {
		t.Error("IsInGroup(-100001) 应该返回 true")
	}

	if cfg.IsInGroup(-100099) {
		t.Error("IsInGroup(-100099) 应该返回 false")
	}
}

func TestConfig_SetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.setDefaults()

	if cfg.Game.InitialCoins != 100 {
		t.Errorf("默认初始金币应该是 100，实际是 %d", cfg.Game.InitialCoins)
	}

	if cfg.Game.SummonCost != 10 {
		t.Errorf("默认召唤消耗应该是 10，实际是 %d", cfg.Game.SummonCost)
	}

	if cfg.Game.DailyReward != 50 {
		t.Errorf("默认每日奖励应该是 50，实际是 %d", cfg.Game.DailyReward)
	}

	if cfg.Game.DefaultMode != "waifu" {
		t.Errorf("默认群组模式应该是 waifu，实际是 '%s'", cfg.Game.DefaultMode)
	}

	if cfg.Game.DefaultDropLimit != 10 {
		t.Errorf("默认掉落阈值应该是 10，实际是 %d", cfg.Game.DefaultDropLimit)
	}

	if cfg.Game.DropTimeout != 60 {
		t.Errorf("默认掉落超时应该是 60 秒，实际是 %d", cfg.Game.DropTimeout)
	}

	if cfg.Game.CatchThreshold != 0.7 {
		t.Errorf("默认匹配阈值应该是 0.7，实际是 %v", cfg.Game.CatchThreshold)
	}

	if cfg.Database.Port != 3306 {
		t.Errorf("默认数据库端口应该是 3306，实际是 %d", cfg.Database.Port)
	}

	if cfg.API.Port != 8838 {
		t.Errorf("默认 API 端口应该是 8838，实际是 %d", cfg.API.Port)
	}

	// 默认权重与原始配置一致
	wantWeights := map[string]int{
		"Common": 50, "Uncommon": 30, "Rare": 15, "Epic": 4, "Legendary": 1,
	}
	for rarity, weight := range wantWeights {
		if cfg.Game.RarityWeights[rarity] != weight {
			t.Errorf("默认权重 %s 应该是 %d，实际是 %d", rarity, weight, cfg.Game.RarityWeights[rarity])
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{
		Game: GameConfig{
			RarityWeights: map[string]int{"Common": 50, "Rare": -1},
		},
	}
	cfg.setDefaults()

	if err := cfg.validate(); err == nil {
		t.Error("非正权重应该校验失败")
	}

	cfg.Game.RarityWeights["Rare"] = 15
	if err := cfg.validate(); err != nil {
		t.Errorf("合法权重不应校验失败: %v", err)
	}
}
