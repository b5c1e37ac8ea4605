// Package handlers 消息处理器
package handlers

import (
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/bot/session"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"github.com/smysle/waifu-collector-go/internal/service"
	"github.com/smysle/waifu-collector-go/pkg/logger"
)

// OnText 处理文本消息
// 群聊喂掉落计数并顺带尝试认领，私聊走会话状态
func OnText(c tele.Context) error {
	if c.Chat().Type == tele.ChatGroup || c.Chat().Type == tele.ChatSuperGroup {
		return onGroupText(c)
	}
	if c.Chat().Type == tele.ChatPrivate {
		return onPrivateText(c)
	}
	return nil
}

// onGroupText 群消息：先试认领，再计数，达到阈值就掉落
func onGroupText(c tele.Context) error {
	user := c.Sender()
	text := strings.TrimSpace(c.Text())

	if result, ok := claimSvc.TryAmbientCatch(c.Chat().ID, user.ID, user.Username, user.FirstName, text); ok {
		return announceCatch(c, result)
	}

	group, shouldDrop, err := dropSvc.RecordMessage(c.Chat().ID)
	if err != nil {
		logger.Error().Err(err).Int64("chat", c.Chat().ID).Msg("消息计数失败")
		return nil
	}
	if !shouldDrop {
		return nil
	}

	return postDrop(c, group)
}

// postDrop 发掉落公告并登记
func postDrop(c tele.Context, group *models.Group) error {
	character, err := dropSvc.PrepareDrop(group)
	if err != nil {
		if !errors.Is(err, service.ErrDropActive) && !errors.Is(err, service.ErrNoCharacters) {
			logger.Error().Err(err).Int64("chat", group.ChatID).Msg("准备掉落失败")
		}
		return nil
	}

	kind := "waifu"
	if group.Mode == models.ModeHusbando {
		kind = "husbando"
	}
	text := fmt.Sprintf(
		"🎐 **A wild %s appeared!**\n\n"+
			"%s Rarity: %s\n"+
			"Type `/catch` — or just say their name!",
		kind,
		character.Rarity.Emoji(), string(character.Rarity),
	)

	var sent *tele.Message
	if character.HasImage() {
		photo := characterPhoto(character)
		photo.Caption = text
		sent, err = c.Bot().Send(c.Chat(), photo, tele.ModeMarkdown)
	} else {
		sent, err = c.Bot().Send(c.Chat(), text, tele.ModeMarkdown)
	}
	if err != nil {
		logger.Error().Err(err).Int64("chat", group.ChatID).Msg("发送掉落消息失败")
		return nil
	}

	if err := dropSvc.RegisterDrop(group.ChatID, character.ID, sent.ID); err != nil {
		logger.Error().Err(err).Int64("chat", group.ChatID).Msg("登记掉落失败")
	}
	return nil
}

// characterPhoto 图片字段既可能是 http 链接也可能是 Telegram file id
func characterPhoto(character *models.Character) *tele.Photo {
	if strings.HasPrefix(character.ImageURL, "http") {
		return &tele.Photo{File: tele.FromURL(character.ImageURL)}
	}
	return &tele.Photo{File: tele.File{FileID: character.ImageURL}}
}

// OnPhoto 照片消息：私聊里带说明的照片可直接录入角色，图片存 file id
func OnPhoto(c tele.Context) error {
	if c.Chat().Type != tele.ChatPrivate {
		return nil
	}

	caption := strings.TrimSpace(c.Message().Caption)
	waiting := session.GetManager().GetState(c.Sender().ID) == session.StateWaitingAddChar
	if !waiting && !strings.HasPrefix(caption, "/addchar") {
		return nil
	}
	if !canAddCharacters(c.Sender().ID) {
		return c.Send("❌ You are not allowed to add characters")
	}
	defer session.GetManager().ClearSession(c.Sender().ID)

	input := strings.TrimSpace(strings.TrimPrefix(caption, "/addchar"))
	photo := c.Message().Photo
	if photo == nil || input == "" {
		return c.Send("📝 Caption the photo with `Name | Series | waifu/husbando | Rarity`", tele.ModeMarkdown)
	}

	character, err := characterSvc.AddFromPhoto(input, photo.FileID, c.Sender().ID)
	return sendAddResult(c, character, err)
}

// onPrivateText 私聊消息走会话状态
func onPrivateText(c tele.Context) error {
	userID := c.Sender().ID
	sessionMgr := session.GetManager()

	switch sessionMgr.GetState(userID) {
	case session.StateWaitingAddChar:
		return handleAddCharInput(c)
	default:
		return nil
	}
}

// Cancel /cancel 取消当前操作
func Cancel(c tele.Context) error {
	session.GetManager().ClearSession(c.Sender().ID)
	return c.Send("✅ Cancelled\n\nSend /start to open the menu")
}
