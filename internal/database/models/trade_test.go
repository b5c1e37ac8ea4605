// Package models 交易模型测试
package models

import (
	"testing"
)

func TestTrade_CanAccept(t *testing.T) {
	trade := &Trade{FromTG: 100, ToTG: 200, Status: TradePending}

	tests := []struct {
		name     string
		userTG   int64
		status   TradeStatus
		expected bool
	}{
		{"接收方可接受", 200, TradePending, true},
		{"发起方不可接受", 100, TradePending, false},
		{"旁观者不可接受", 300, TradePending, false},
		{"已接受的不可再接受", 200, TradeAccepted, false},
		{"已拒绝的不可接受", 200, TradeRejected, false},
		{"已撤回的不可接受", 200, TradeCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade.Status = tt.status
			if got := trade.CanAccept(tt.userTG); got != tt.expected {
				t.Errorf("CanAccept(%d) = %v, want %v", tt.userTG, got, tt.expected)
			}
		})
	}
}

func TestTrade_CanCancel(t *testing.T) {
	trade := &Trade{FromTG: 100, ToTG: 200, Status: TradePending}

	if !trade.CanCancel(100) {
		t.Error("发起方应该可以撤回待处理交易")
	}
	if trade.CanCancel(200) {
		t.Error("接收方不应该可以撤回")
	}

	trade.Status = TradeAccepted
	if trade.CanCancel(100) {
		t.Error("已完成的交易不可撤回")
	}
}

func TestValidRarity(t *testing.T) {
	for _, r := range Rarities {
		if !ValidRarity(string(r)) {
			t.Errorf("ValidRarity(%q) 应该返回 true", r)
		}
	}

	if ValidRarity("Mythic") {
		t.Error("ValidRarity(\"Mythic\") 应该返回 false")
	}
	if ValidRarity("common") {
		t.Error("稀有度标签区分大小写")
	}
}

func TestValidMode(t *testing.T) {
	if !ValidMode("waifu") || !ValidMode("husbando") {
		t.Error("waifu/husbando 都应该是合法模式")
	}
	if ValidMode("tsundere") {
		t.Error("未知模式应该非法")
	}
}
