// Package handlers 回调分发
package handlers

import (
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/bot/keyboards"
	"github.com/smysle/waifu-collector-go/internal/bot/session"
	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/pkg/logger"
)

// OnCallback 回调查询总入口
// 回调数据用竖线分隔：action 或 action|参数
func OnCallback(c tele.Context) error {
	data := strings.TrimSpace(c.Callback().Data)
	data = strings.TrimPrefix(data, "\f")

	parts := strings.Split(data, "|")
	action := parts[0]

	logger.Debug().
		Int64("tg", c.Sender().ID).
		Str("action", action).
		Msg("收到回调")

	switch action {
	case "noop":
		return c.Respond(&tele.CallbackResponse{})

	case "close":
		c.Respond(&tele.CallbackResponse{})
		return c.Delete()

	case "back_start":
		c.Respond(&tele.CallbackResponse{})
		return Start(c)

	case "summon":
		c.Respond(&tele.CallbackResponse{})
		return Summon(c)

	case "multi_summon":
		c.Respond(&tele.CallbackResponse{})
		return MultiSummon(c)

	case "daily":
		c.Respond(&tele.CallbackResponse{})
		return Daily(c)

	case "profile":
		c.Respond(&tele.CallbackResponse{})
		return Profile(c)

	case "leaderboard":
		c.Respond(&tele.CallbackResponse{})
		return TopCollectors(c)

	case "collection_page":
		page := 1
		if len(parts) > 1 {
			if p, err := strconv.Atoi(parts[1]); err == nil {
				page = p
			}
		}
		c.Respond(&tele.CallbackResponse{})
		return showCollectionPage(c, page)

	case "trade_accept", "trade_reject", "trade_cancel":
		if len(parts) < 2 {
			return c.Respond(&tele.CallbackResponse{Text: "Malformed callback"})
		}
		tradeID, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Malformed callback"})
		}
		return handleTradeAction(c, action, uint(tradeID))

	case "admin_panel":
		if !config.Get().IsAdmin(c.Sender().ID) {
			return c.Respond(&tele.CallbackResponse{Text: "Admins only"})
		}
		c.Respond(&tele.CallbackResponse{})
		return c.Edit("⚙️ **Admin panel**", keyboards.AdminPanelKeyboard(config.Get().IsOwner(c.Sender().ID)), tele.ModeMarkdown)

	case "admin_addchar":
		if !canAddCharacters(c.Sender().ID) {
			return c.Respond(&tele.CallbackResponse{Text: "Not allowed"})
		}
		c.Respond(&tele.CallbackResponse{})
		session.GetManager().SetState(c.Sender().ID, session.StateWaitingAddChar)
		return c.Send("📝 Send: `Name | Series | waifu/husbando | Rarity [| image-url [| description]]`\n/cancel to abort", tele.ModeMarkdown)

	case "admin_stats":
		if !config.Get().IsAdmin(c.Sender().ID) {
			return c.Respond(&tele.CallbackResponse{Text: "Admins only"})
		}
		c.Respond(&tele.CallbackResponse{})
		return Stats(c)

	case "owner_backup":
		if !config.Get().IsOwner(c.Sender().ID) {
			return c.Respond(&tele.CallbackResponse{Text: "Owner only"})
		}
		c.Respond(&tele.CallbackResponse{})
		return BackupDB(c)

	case "owner_banned":
		if !config.Get().IsOwner(c.Sender().ID) {
			return c.Respond(&tele.CallbackResponse{Text: "Owner only"})
		}
		c.Respond(&tele.CallbackResponse{})
		return ListBanned(c)

	default:
		logger.Debug().Str("action", action).Msg("未知回调")
		return c.Respond(&tele.CallbackResponse{Text: "Unknown action"})
	}
}
