// Package handlers 交易
package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/bot/keyboards"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"github.com/smysle/waifu-collector-go/internal/service"
	"github.com/smysle/waifu-collector-go/pkg/logger"
)

// Trade /trade 发起交易
// 回复目标用户的消息：/trade <你的角色ID> <对方角色ID>
func Trade(c tele.Context) error {
	reply := c.Message().ReplyTo
	if reply == nil || reply.Sender == nil {
		return c.Send("↩️ Reply to the person you want to trade with:\n`/trade <your char #> <their char #>`", tele.ModeMarkdown)
	}
	if reply.Sender.IsBot {
		return c.Send("🤖 Bots don't collect characters")
	}

	args := c.Args()
	if len(args) != 2 {
		return c.Send("Usage: `/trade <your char #> <their char #>` as a reply", tele.ModeMarkdown)
	}

	myCharID, err1 := strconv.ParseUint(args[0], 10, 32)
	theirCharID, err2 := strconv.ParseUint(args[1], 10, 32)
	if err1 != nil || err2 != nil {
		return c.Send("❌ Character ids must be numbers — find them with /mycollection")
	}

	trade, err := tradeSvc.Propose(c.Sender().ID, reply.Sender.ID, uint(myCharID), uint(theirCharID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfTrade):
			return c.Send("❌ You can't trade with yourself")
		case errors.Is(err, service.ErrNotOwned):
			return c.Send(fmt.Sprintf("❌ %s", err.Error()))
		default:
			logger.Error().Err(err).Msg("发起交易失败")
			return c.Send("❌ Something went wrong, please try again later")
		}
	}

	text := fmt.Sprintf(
		"🔄 **Trade proposal #%d**\n\n"+
			"[%s](tg://user?id=%d) offers:\n%s **%s** · %s\n\n"+
			"[%s](tg://user?id=%d) gives:\n%s **%s** · %s",
		trade.ID,
		c.Sender().FirstName, trade.FromTG,
		trade.FromCharacter.Rarity.Emoji(), trade.FromCharacter.Name, trade.FromCharacter.Series,
		reply.Sender.FirstName, trade.ToTG,
		trade.ToCharacter.Rarity.Emoji(), trade.ToCharacter.Name, trade.ToCharacter.Series,
	)
	return c.Send(text, keyboards.TradeKeyboard(trade.ID), tele.ModeMarkdown)
}

// MyTrades /trades 待处理交易列表
func MyTrades(c tele.Context) error {
	trades, err := tradeSvc.Pending(c.Sender().ID)
	if err != nil {
		logger.Error().Err(err).Int64("tg", c.Sender().ID).Msg("读取待处理交易失败")
		return c.Send("❌ Something went wrong, please try again later")
	}
	if len(trades) == 0 {
		return c.Send("📭 No pending trades")
	}

	var sb strings.Builder
	sb.WriteString("🔄 **Your pending trades**\n\n")
	for _, t := range trades {
		role := "incoming"
		if t.FromTG == c.Sender().ID {
			role = "outgoing"
		}
		fmt.Fprintf(&sb, "`#%d` %s — your %s for their %s\n",
			t.ID, role, tradeSideName(&t, c.Sender().ID, true), tradeSideName(&t, c.Sender().ID, false))
	}

	return c.Send(sb.String(), keyboards.CloseKeyboard(), tele.ModeMarkdown)
}

// TradeHistory /history 最近的交易记录
func TradeHistory(c tele.Context) error {
	trades, err := tradeSvc.History(c.Sender().ID, 15)
	if err != nil {
		logger.Error().Err(err).Int64("tg", c.Sender().ID).Msg("读取交易历史失败")
		return c.Send("❌ Something went wrong, please try again later")
	}
	if len(trades) == 0 {
		return c.Send("📭 No trades yet")
	}

	var sb strings.Builder
	sb.WriteString("📜 **Trade history**\n\n")
	for _, t := range trades {
		fmt.Fprintf(&sb, "%s `#%d` your %s for their %s\n",
			t.StatusEmoji(), t.ID,
			tradeSideName(&t, c.Sender().ID, true), tradeSideName(&t, c.Sender().ID, false))
	}

	return c.Send(sb.String(), keyboards.CloseKeyboard(), tele.ModeMarkdown)
}

// tradeSideName 某一侧角色名，mine 指调用者视角
func tradeSideName(t *models.Trade, userTG int64, mine bool) string {
	fromSide := t.FromTG == userTG
	if mine == fromSide {
		if t.FromCharacter != nil {
			return t.FromCharacter.Name
		}
		return "?"
	}
	if t.ToCharacter != nil {
		return t.ToCharacter.Name
	}
	return "?"
}

// handleTradeAction 交易按钮回调
func handleTradeAction(c tele.Context, action string, tradeID uint) error {
	var (
		trade *models.Trade
		err   error
	)

	switch action {
	case "trade_accept":
		trade, err = tradeSvc.Accept(tradeID, c.Sender().ID)
	case "trade_reject":
		trade, err = tradeSvc.Reject(tradeID, c.Sender().ID)
	case "trade_cancel":
		trade, err = tradeSvc.Cancel(tradeID, c.Sender().ID)
	default:
		return c.Respond(&tele.CallbackResponse{Text: "Unknown action"})
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrTradeNotFound):
			return c.Respond(&tele.CallbackResponse{Text: "Trade not found"})
		case errors.Is(err, service.ErrTradeNotPending):
			return c.Respond(&tele.CallbackResponse{Text: "Already handled"})
		case errors.Is(err, service.ErrNotRecipient):
			return c.Respond(&tele.CallbackResponse{Text: "Only the recipient can do that"})
		case errors.Is(err, service.ErrNotProposer):
			return c.Respond(&tele.CallbackResponse{Text: "Only the proposer can cancel"})
		case errors.Is(err, service.ErrNotOwned):
			return c.Respond(&tele.CallbackResponse{Text: "A character changed hands, trade is void", ShowAlert: true})
		default:
			logger.Error().Err(err).Uint("trade", tradeID).Msg("处理交易失败")
			return c.Respond(&tele.CallbackResponse{Text: "Something went wrong"})
		}
	}

	var result string
	switch trade.Status {
	case models.TradeAccepted:
		result = fmt.Sprintf("✅ **Trade #%d complete!** Characters have been swapped.", trade.ID)
	case models.TradeRejected:
		result = fmt.Sprintf("❌ Trade #%d rejected", trade.ID)
	case models.TradeCancelled:
		result = fmt.Sprintf("↩️ Trade #%d cancelled", trade.ID)
	}

	c.Respond(&tele.CallbackResponse{})
	return c.Edit(result, tele.ModeMarkdown)
}
