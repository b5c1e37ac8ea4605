// Package handlers 掉落认领
package handlers

import (
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/service"
)

// Catch /catch 命令处理器，有掉落就直接认领
func Catch(c tele.Context) error {
	user := c.Sender()

	result, err := claimSvc.Claim(c.Chat().ID, user.ID, user.Username, user.FirstName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoDropActive):
			return c.Send("🍃 Nothing to catch right now — keep chatting!")
		case errors.Is(err, service.ErrAlreadyClaimed):
			return c.Send("💨 Too slow — someone else got there first")
		default:
			return c.Send("❌ Something went wrong, please try again later")
		}
	}

	return announceCatch(c, result)
}

// announceCatch 发认领成功公告并改写掉落消息
func announceCatch(c tele.Context, result *service.CatchResult) error {
	user := c.Sender()

	badge := ""
	if result.IsNew {
		badge = " 🆕"
	} else {
		badge = fmt.Sprintf(" (x%d)", result.Count)
	}

	// 原掉落消息改写成认领结果，公告单独发
	claimed := fmt.Sprintf("✅ Claimed by %s", user.FirstName)
	msg := &tele.Message{ID: result.MessageID, Chat: c.Chat()}
	c.Bot().Edit(msg, claimed)

	text := fmt.Sprintf(
		"🎉 [%s](tg://user?id=%d) caught %s **%s**!%s\n📚 %s",
		user.FirstName, user.ID,
		result.Character.Rarity.Emoji(), result.Character.Name,
		badge,
		result.Character.Series,
	)
	return c.Send(text, tele.ModeMarkdown)
}
