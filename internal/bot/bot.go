// Package bot Telegram Bot 核心
package bot

import (
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/bot/handlers"
	"github.com/smysle/waifu-collector-go/internal/bot/middleware"
	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/pkg/logger"
)

// Bot Telegram Bot 实例
type Bot struct {
	*tele.Bot
	cfg *config.Config
}

var instance *Bot

// New 创建新的 Bot 实例
func New(cfg *config.Config) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error().Err(err).Msg("Bot 错误")
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		Bot: b,
		cfg: cfg,
	}

	handlers.Init(b)

	bot.registerMiddleware()
	bot.registerHandlers()
	bot.setCommands()

	instance = bot
	return bot, nil
}

// Get 获取 Bot 单例
func Get() *Bot {
	return instance
}

// registerMiddleware 注册中间件
func (b *Bot) registerMiddleware() {
	b.Use(middleware.Logger())
	b.Use(middleware.Recover())
	// 封禁用户在入口统一拦截
	b.Use(middleware.BannedCheck())
}

// registerHandlers 注册所有处理器
func (b *Bot) registerHandlers() {
	// 用户命令
	b.Handle("/start", handlers.Start)
	b.Handle("/menu", handlers.Start)
	b.Handle("/help", handlers.Help)
	b.Handle("/profile", handlers.Profile)
	b.Handle("/summon", handlers.Summon)
	b.Handle("/multisummon", handlers.MultiSummon)
	b.Handle("/daily", handlers.Daily)
	b.Handle("/mycollection", handlers.MyCollection)
	b.Handle("/search", handlers.Search)
	b.Handle("/top", handlers.TopCollectors)
	b.Handle("/trade", handlers.Trade)
	b.Handle("/trades", handlers.MyTrades)
	b.Handle("/pending", handlers.MyTrades)
	b.Handle("/history", handlers.TradeHistory)
	b.Handle("/addchar", handlers.AddChar)
	b.Handle("/giveme", handlers.GiveMe)

	// 群内命令
	groupGroup := b.Group()
	groupGroup.Use(middleware.GroupOnly())
	groupGroup.Handle("/catch", handlers.Catch)

	// 群设置命令，群管理员限定
	settingsGroup := b.Group()
	settingsGroup.Use(middleware.GroupOnly(), middleware.GroupAdminOnly())
	settingsGroup.Handle("/setmode", handlers.SetMode)
	settingsGroup.Handle("/setlimit", handlers.SetWaifuLimit)
	settingsGroup.Handle("/setwaifulimit", handlers.SetWaifuLimit)

	// Owner 命令
	ownerGroup := b.Group()
	ownerGroup.Use(middleware.OwnerOnly())
	ownerGroup.Handle("/ban", handlers.Ban)
	ownerGroup.Handle("/unban", handlers.Unban)
	ownerGroup.Handle("/addspecial", handlers.AddSpecial)
	ownerGroup.Handle("/removespecial", handlers.RemoveSpecial)
	ownerGroup.Handle("/listspecial", handlers.ListSpecial)
	ownerGroup.Handle("/listbanned", handlers.ListBanned)
	ownerGroup.Handle("/backup_db", handlers.BackupDB)

	// 回调查询
	b.Handle(tele.OnCallback, handlers.OnCallback)

	// 文本消息（掉落计数、顺带认领、会话状态）
	b.Handle(tele.OnText, handlers.OnText)

	// 照片消息（照片说明录入角色）
	b.Handle(tele.OnPhoto, handlers.OnPhoto)

	// 取消命令
	b.Handle("/cancel", handlers.Cancel)
}

// setCommands 设置命令列表
func (b *Bot) setCommands() {
	userCmds := []tele.Command{
		{Text: "start", Description: "Open the main menu"},
		{Text: "help", Description: "How the game works"},
		{Text: "summon", Description: "Spend coins on a random character"},
		{Text: "daily", Description: "Claim your daily coins"},
		{Text: "catch", Description: "[group] Claim a dropped character"},
		{Text: "mycollection", Description: "Browse your collection"},
		{Text: "search", Description: "Look up characters"},
		{Text: "trade", Description: "Propose a character swap"},
		{Text: "trades", Description: "Your pending trades"},
		{Text: "history", Description: "Your past trades"},
		{Text: "top", Description: "Top collectors"},
		{Text: "giveme", Description: "[special] Get every character"},
		{Text: "setmode", Description: "[group admin] waifu or husbando drops"},
		{Text: "setlimit", Description: "[group admin] messages per drop"},
	}

	adminCmds := append(userCmds, []tele.Command{
		{Text: "addchar", Description: "Add a character [admin]"},
	}...)

	ownerCmds := append(adminCmds, []tele.Command{
		{Text: "ban", Description: "Ban a user [owner]"},
		{Text: "unban", Description: "Unban a user [owner]"},
		{Text: "addspecial", Description: "Let a user add characters [owner]"},
		{Text: "rmspecial", Description: "Revoke special access [owner]"},
		{Text: "banned", Description: "List banned users [owner]"},
		{Text: "backup_db", Description: "Backup the database [owner]"},
	}...)

	b.SetCommands(userCmds)

	for _, adminID := range b.cfg.Admins {
		b.SetCommands(adminCmds, tele.CommandScope{
			Type:   tele.CommandScopeChat,
			ChatID: adminID,
		})
	}

	b.SetCommands(ownerCmds, tele.CommandScope{
		Type:   tele.CommandScopeChat,
		ChatID: b.cfg.Owner,
	})
}

// Run 运行 Bot
func (b *Bot) Run() {
	logger.Info().Str("bot", b.cfg.BotName).Msg("Bot 启动中...")
	b.Start()
}

// Stop 停止 Bot
func (b *Bot) Stop() {
	logger.Info().Msg("Bot 停止中...")
	b.Bot.Stop()
}
