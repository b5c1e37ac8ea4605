// Package handlers 群组设置
package handlers

import (
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"github.com/smysle/waifu-collector-go/internal/database/repository"
	"github.com/smysle/waifu-collector-go/pkg/logger"
)

// 掉落阈值允许范围
const (
	minDropLimit = 1
	maxDropLimit = 100
)

// SetMode /setmode 设置群组掉落类别
func SetMode(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Send("Usage: `/setmode waifu` or `/setmode husbando`", tele.ModeMarkdown)
	}

	mode := strings.ToLower(args[0])
	if !models.ValidMode(mode) {
		return c.Send("❌ Mode must be `waifu` or `husbando`", tele.ModeMarkdown)
	}

	cfg := config.Get()
	groupRepo := repository.NewGroupRepository()
	if _, err := groupRepo.EnsureExists(c.Chat().ID, cfg.Game.DefaultMode, cfg.Game.DefaultDropLimit); err != nil {
		return c.Send("❌ Something went wrong, please try again later")
	}
	if err := groupRepo.SetMode(c.Chat().ID, models.GroupMode(mode)); err != nil {
		logger.Error().Err(err).Int64("chat", c.Chat().ID).Msg("设置群组模式失败")
		return c.Send("❌ Something went wrong, please try again later")
	}

	logger.Info().Int64("chat", c.Chat().ID).Str("mode", mode).Msg("群组模式已更新")
	return c.Send(fmt.Sprintf("✅ This group now drops **%s** characters", mode), tele.ModeMarkdown)
}

// SetWaifuLimit /setwaifulimit 设置掉落消息阈值
func SetWaifuLimit(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Send("Usage: `/setwaifulimit <number>`", tele.ModeMarkdown)
	}

	limit, err := strconv.Atoi(args[0])
	if err != nil || limit < minDropLimit || limit > maxDropLimit {
		return c.Send(fmt.Sprintf("❌ Limit must be a number between %d and %d", minDropLimit, maxDropLimit))
	}

	cfg := config.Get()
	groupRepo := repository.NewGroupRepository()
	if _, err := groupRepo.EnsureExists(c.Chat().ID, cfg.Game.DefaultMode, cfg.Game.DefaultDropLimit); err != nil {
		return c.Send("❌ Something went wrong, please try again later")
	}
	if err := groupRepo.SetDropLimit(c.Chat().ID, limit); err != nil {
		logger.Error().Err(err).Int64("chat", c.Chat().ID).Msg("设置掉落阈值失败")
		return c.Send("❌ Something went wrong, please try again later")
	}

	logger.Info().Int64("chat", c.Chat().ID).Int("limit", limit).Msg("掉落阈值已更新")
	return c.Send(fmt.Sprintf("✅ A character now drops every **%d** messages", limit), tele.ModeMarkdown)
}
