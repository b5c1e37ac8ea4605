// Package handlers 角色录入与检索
package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/bot/keyboards"
	"github.com/smysle/waifu-collector-go/internal/bot/session"
	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"github.com/smysle/waifu-collector-go/internal/database/repository"
	"github.com/smysle/waifu-collector-go/internal/images"
	"github.com/smysle/waifu-collector-go/internal/service"
	"github.com/smysle/waifu-collector-go/pkg/logger"
)

// AddChar /addchar 角色录入，管理员和特权用户可用
// 带参数直接录入，不带参数进入会话等待输入
func AddChar(c tele.Context) error {
	if !canAddCharacters(c.Sender().ID) {
		return c.Send("❌ You are not allowed to add characters")
	}

	payload := strings.TrimSpace(c.Message().Payload)
	if payload == "" {
		session.GetManager().SetState(c.Sender().ID, session.StateWaitingAddChar)
		return c.Send(
			"📝 Send the character like this:\n\n"+
				"`Name | Series | waifu/husbando | Rarity`\n"+
				"optionally `| image-url | description`\n\n"+
				"Rarities: Common, Uncommon, Rare, Epic, Legendary\n"+
				"/cancel to abort",
			tele.ModeMarkdown,
		)
	}
	return addCharacter(c, payload)
}

// canAddCharacters 管理员或特权用户
func canAddCharacters(userTG int64) bool {
	if cfg := config.Get(); cfg != nil && cfg.IsAdmin(userTG) {
		return true
	}
	special, err := repository.NewAccessRepository().IsSpecial(userTG)
	if err != nil {
		logger.Warn().Err(err).Int64("tg", userTG).Msg("特权查询失败")
		return false
	}
	return special
}

// handleAddCharInput 会话态角色录入
func handleAddCharInput(c tele.Context) error {
	defer session.GetManager().ClearSession(c.Sender().ID)
	return addCharacter(c, strings.TrimSpace(c.Text()))
}

// addCharacter 执行录入
func addCharacter(c tele.Context, input string) error {
	character, err := characterSvc.Add(input, c.Sender().ID)
	return sendAddResult(c, character, err)
}

// sendAddResult 录入结果反馈，文本与照片两条路径共用
func sendAddResult(c tele.Context, character *models.Character, err error) error {
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadFormat),
			errors.Is(err, service.ErrBadRarity),
			errors.Is(err, service.ErrBadGender):
			return c.Send(fmt.Sprintf("❌ %s", err.Error()))
		case errors.Is(err, images.ErrNotHTTP),
			errors.Is(err, images.ErrUnreachable),
			errors.Is(err, images.ErrNotImage):
			return c.Send("❌ That image URL doesn't work, check it and try again")
		default:
			logger.Error().Err(err).Msg("录入角色失败")
			return c.Send("❌ Something went wrong, please try again later")
		}
	}

	return c.Send(fmt.Sprintf(
		"✅ **Character #%d added!**\n\n%s",
		character.ID, character.Card(),
	), tele.ModeMarkdown)
}

// parseGiveMeArgs 解析 /giveme 参数
// 无参数发放全目录，带一个数字参数发放单个角色
func parseGiveMeArgs(args []string) (all bool, id uint, err error) {
	if len(args) == 0 {
		return true, 0, nil
	}
	if len(args) != 1 {
		return false, 0, fmt.Errorf("参数过多")
	}
	parsed, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return false, 0, fmt.Errorf("角色 ID 必须是数字")
	}
	return false, uint(parsed), nil
}

// GiveMe /giveme 特权用户领取角色
// 不带参数领取整个目录，带 ID 领取单个
func GiveMe(c tele.Context) error {
	user := c.Sender()

	special, err := repository.NewAccessRepository().IsSpecial(user.ID)
	if err != nil || !special {
		return c.Send("❌ This command is for special users only")
	}

	all, id, err := parseGiveMeArgs(c.Args())
	if err != nil {
		return c.Send("Usage: `/giveme` for the whole catalog, or `/giveme <char #>`", tele.ModeMarkdown)
	}

	if all {
		granted, err := gachaSvc.GrantAll(user.ID, user.Username, user.FirstName)
		if err != nil {
			if errors.Is(err, service.ErrNoCharacters) {
				return c.Send("📭 The catalog is empty, nothing to grant")
			}
			logger.Error().Err(err).Int64("tg", user.ID).Msg("目录整体发放失败")
			return c.Send("❌ Something went wrong, please try again later")
		}
		return c.Send(fmt.Sprintf("🎉 The whole catalog is yours — %d characters added!", granted))
	}

	character, err := characterSvc.Get(id)
	if err != nil {
		return c.Send("❌ No character with that id")
	}

	userRepo := repository.NewUserRepository()
	if _, err := userRepo.EnsureExists(user.ID, user.Username, user.FirstName, config.Get().Game.InitialCoins); err != nil {
		return c.Send("❌ Something went wrong, please try again later")
	}

	count, err := repository.NewOwnershipRepository().AddCopy(user.ID, character.ID)
	if err != nil {
		logger.Error().Err(err).Int64("tg", user.ID).Uint("character", character.ID).Msg("特权领取失败")
		return c.Send("❌ Something went wrong, please try again later")
	}

	logger.Info().Int64("tg", user.ID).Uint("character", character.ID).Msg("特权用户领取角色")

	badge := " 🆕"
	if count > 1 {
		badge = fmt.Sprintf(" (x%d)", count)
	}
	return c.Send(fmt.Sprintf("⭐ %s **%s** is yours!%s",
		character.Rarity.Emoji(), character.Name, badge), tele.ModeMarkdown)
}

// Search /search 角色检索
func Search(c tele.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args(), " "))
	if query == "" {
		return c.Send("Usage: `/search <name or series>`", tele.ModeMarkdown)
	}

	results, err := characterSvc.Search(query)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			return c.Send("Usage: `/search <name or series>`", tele.ModeMarkdown)
		}
		logger.Error().Err(err).Str("query", query).Msg("角色搜索失败")
		return c.Send("❌ Something went wrong, please try again later")
	}

	if len(results) == 0 {
		return c.Send(fmt.Sprintf("🔍 Nothing found for *%s*", query), tele.ModeMarkdown)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔍 **Results for** *%s*\n\n", query)
	for _, ch := range results {
		fmt.Fprintf(&sb, "`#%d` %s **%s** · %s\n", ch.ID, ch.Rarity.Emoji(), ch.Name, ch.Series)
	}
	sb.WriteString("\nUse the `#id` when proposing trades")

	return c.Send(sb.String(), keyboards.CloseKeyboard(), tele.ModeMarkdown)
}

// Stats 目录统计，管理面板回调
func Stats(c tele.Context) error {
	stats, err := gachaSvc.Stats()
	if err != nil {
		return respond(c, "❌ Something went wrong, please try again later")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 **Catalog: %d characters**\n\n", stats.Total)
	for _, rarity := range models.Rarities {
		fmt.Fprintf(&sb, "%s %s · %d\n", rarity.Emoji(), rarity, stats.ByRarity[rarity])
	}

	return respond(c, sb.String(), keyboards.CloseKeyboard(), tele.ModeMarkdown)
}
