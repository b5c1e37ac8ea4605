// Package keyboards 键盘按钮
package keyboards

import (
	"fmt"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/config"
)

// StartPanelKeyboard 开始面板键盘
func StartPanelKeyboard(isAdmin bool) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var rows []tele.Row

	rows = append(rows, markup.Row(
		markup.Data("🎲 Summon", "summon"),
		markup.Data(fmt.Sprintf("🎰 Summon x%d", multiCountLabel()), "multi_summon"),
	))

	rows = append(rows, markup.Row(
		markup.Data("🎁 Daily reward", "daily"),
		markup.Data("📦 My collection", "collection_page|1"),
	))

	rows = append(rows, markup.Row(
		markup.Data("🏆 Top collectors", "leaderboard"),
		markup.Data("👤 My profile", "profile"),
	))

	if isAdmin {
		rows = append(rows, markup.Row(
			markup.Data("⚙️ Admin panel", "admin_panel"),
		))
	}

	markup.Inline(rows...)
	return markup
}

// AdminPanelKeyboard 管理面板键盘
func AdminPanelKeyboard(isOwner bool) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var rows []tele.Row

	rows = append(rows, markup.Row(
		markup.Data("➕ Add character", "admin_addchar"),
		markup.Data("📊 Catalog stats", "admin_stats"),
	))

	if isOwner {
		rows = append(rows, markup.Row(
			markup.Data("💾 Backup database", "owner_backup"),
			markup.Data("🚫 Banned users", "owner_banned"),
		))
	}

	rows = append(rows, markup.Row(
		markup.Data("« Back", "back_start"),
	))

	markup.Inline(rows...)
	return markup
}

// SummonResultKeyboard 召唤结果键盘
func SummonResultKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	markup.Inline(
		markup.Row(
			markup.Data("🎲 Again", "summon"),
			markup.Data("📦 Collection", "collection_page|1"),
		),
		markup.Row(
			markup.Data("« Back", "back_start"),
		),
	)
	return markup
}

// TradeKeyboard 交易确认键盘，接收方视角
func TradeKeyboard(tradeID uint) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	markup.Inline(
		markup.Row(
			markup.Data("✅ Accept", fmt.Sprintf("trade_accept|%d", tradeID)),
			markup.Data("❌ Reject", fmt.Sprintf("trade_reject|%d", tradeID)),
		),
		markup.Row(
			markup.Data("↩️ Cancel", fmt.Sprintf("trade_cancel|%d", tradeID)),
		),
	)
	return markup
}

// CloseKeyboard 关闭按钮
func CloseKeyboard() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("❌ Close", "close")))
	return markup
}

// multiCountLabel 连抽次数标签
func multiCountLabel() int {
	if cfg := config.Get(); cfg != nil {
		return cfg.Game.MultiSummonCount
	}
	return 5
}
