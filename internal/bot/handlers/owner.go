// Package handlers Owner 命令
package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/bot/keyboards"
	"github.com/smysle/waifu-collector-go/internal/database/repository"
	"github.com/smysle/waifu-collector-go/internal/service"
	"github.com/smysle/waifu-collector-go/pkg/logger"
	"github.com/smysle/waifu-collector-go/pkg/utils"
)

// targetFromContext 从回复或参数里解析目标用户
func targetFromContext(c tele.Context) (int64, string, []string, bool) {
	args := c.Args()

	if reply := c.Message().ReplyTo; reply != nil && reply.Sender != nil {
		return reply.Sender.ID, reply.Sender.Username, args, true
	}

	if len(args) >= 1 {
		if id, err := strconv.ParseInt(args[0], 10, 64); err == nil {
			return id, "", args[1:], true
		}
	}
	return 0, "", nil, false
}

// Ban /ban 封禁用户
func Ban(c tele.Context) error {
	target, username, rest, ok := targetFromContext(c)
	if !ok {
		return c.Send("Usage: reply with `/ban [reason]` or `/ban <id> [reason]`", tele.ModeMarkdown)
	}

	reason := strings.Join(rest, " ")
	accessRepo := repository.NewAccessRepository()
	if err := accessRepo.Ban(target, username, reason); err != nil {
		logger.Error().Err(err).Int64("tg", target).Msg("封禁失败")
		return c.Send("❌ Something went wrong, please try again later")
	}

	// 封禁缓存立即失效
	utils.CacheDelete("banned:" + strconv.FormatInt(target, 10))

	logger.Info().Int64("tg", target).Str("reason", reason).Msg("用户已封禁")
	return c.Send(fmt.Sprintf("🚫 User `%d` banned", target), tele.ModeMarkdown)
}

// Unban /unban 解封用户
func Unban(c tele.Context) error {
	target, _, _, ok := targetFromContext(c)
	if !ok {
		return c.Send("Usage: reply with `/unban` or `/unban <id>`", tele.ModeMarkdown)
	}

	accessRepo := repository.NewAccessRepository()
	if err := accessRepo.Unban(target); err != nil {
		logger.Error().Err(err).Int64("tg", target).Msg("解封失败")
		return c.Send("❌ Something went wrong, please try again later")
	}

	utils.CacheDelete("banned:" + strconv.FormatInt(target, 10))

	logger.Info().Int64("tg", target).Msg("用户已解封")
	return c.Send(fmt.Sprintf("✅ User `%d` unbanned", target), tele.ModeMarkdown)
}

// AddSpecial /addspecial 添加特权用户（可录入角色）
func AddSpecial(c tele.Context) error {
	target, username, _, ok := targetFromContext(c)
	if !ok {
		return c.Send("Usage: reply with `/addspecial` or `/addspecial <id>`", tele.ModeMarkdown)
	}

	accessRepo := repository.NewAccessRepository()
	if err := accessRepo.AddSpecial(target, username); err != nil {
		logger.Error().Err(err).Int64("tg", target).Msg("添加特权用户失败")
		return c.Send("❌ Something went wrong, please try again later")
	}

	logger.Info().Int64("tg", target).Msg("特权用户已添加")
	return c.Send(fmt.Sprintf("⭐ User `%d` can now add characters", target), tele.ModeMarkdown)
}

// RemoveSpecial /rmspecial 移除特权用户
func RemoveSpecial(c tele.Context) error {
	target, _, _, ok := targetFromContext(c)
	if !ok {
		return c.Send("Usage: reply with `/rmspecial` or `/rmspecial <id>`", tele.ModeMarkdown)
	}

	accessRepo := repository.NewAccessRepository()
	if err := accessRepo.RemoveSpecial(target); err != nil {
		logger.Error().Err(err).Int64("tg", target).Msg("移除特权用户失败")
		return c.Send("❌ Something went wrong, please try again later")
	}

	return c.Send(fmt.Sprintf("✅ User `%d` is no longer special", target), tele.ModeMarkdown)
}

// ListSpecial /listspecial 特权用户列表
func ListSpecial(c tele.Context) error {
	accessRepo := repository.NewAccessRepository()
	specials, err := accessRepo.ListSpecial()
	if err != nil {
		return respond(c, "❌ Something went wrong, please try again later")
	}
	if len(specials) == 0 {
		return respond(c, "📭 No special users")
	}

	var sb strings.Builder
	sb.WriteString("⭐ **Special users**\n\n")
	for _, s := range specials {
		fmt.Fprintf(&sb, "`%d` @%s · since %s\n", s.UserTG, s.Username, s.AddedAt.Format("2006-01-02"))
	}
	return respond(c, sb.String(), keyboards.CloseKeyboard(), tele.ModeMarkdown)
}

// ListBanned 封禁列表，回调与命令共用
func ListBanned(c tele.Context) error {
	accessRepo := repository.NewAccessRepository()
	banned, err := accessRepo.ListBanned()
	if err != nil {
		return respond(c, "❌ Something went wrong, please try again later")
	}
	if len(banned) == 0 {
		return respond(c, "✅ Nobody is banned")
	}

	var sb strings.Builder
	sb.WriteString("🚫 **Banned users**\n\n")
	for _, b := range banned {
		reason := b.Reason
		if reason == "" {
			reason = "—"
		}
		fmt.Fprintf(&sb, "`%d` @%s · %s\n", b.UserTG, b.Username, reason)
	}
	return respond(c, sb.String(), keyboards.CloseKeyboard(), tele.ModeMarkdown)
}

// BackupDB /backup_db 手动备份，回调共用
func BackupDB(c tele.Context) error {
	respond(c, "💾 Backing up...")

	backupSvc := service.NewBackupService()
	result, err := backupSvc.Backup(true)
	if err != nil {
		logger.Error().Err(err).Msg("手动备份失败")
		return c.Send("❌ Backup failed, check the logs")
	}

	text := fmt.Sprintf(
		"✅ **Backup complete**\n\n"+
			"📄 `%s`\n"+
			"📊 %d records · %s · %.1fs",
		result.Filename,
		result.Records,
		service.FormatSize(result.Size),
		result.Duration.Seconds(),
	)

	// 备份文件直接发给 Owner
	doc := &tele.Document{File: tele.FromDisk(result.FilePath), FileName: result.Filename}
	if err := c.Send(doc); err != nil {
		logger.Warn().Err(err).Msg("发送备份文件失败")
	}
	return c.Send(text, tele.ModeMarkdown)
}
