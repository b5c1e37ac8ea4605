package handlers

import (
	"fmt"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/bot/keyboards"
	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/internal/database/repository"
	"github.com/smysle/waifu-collector-go/pkg/logger"
)

// Start /start 命令处理器
func Start(c tele.Context) error {
	cfg := config.Get()
	user := c.Sender()

	// 群里 /start 只做群组登记
	if c.Chat().Type != tele.ChatPrivate {
		groupRepo := repository.NewGroupRepository()
		if _, err := groupRepo.EnsureExists(c.Chat().ID, cfg.Game.DefaultMode, cfg.Game.DefaultDropLimit); err != nil {
			logger.Error().Err(err).Int64("chat", c.Chat().ID).Msg("登记群组失败")
		}
		return c.Send(
			fmt.Sprintf("👋 Hi [%s](tg://user?id=%d)! Keep chatting — characters drop as the group talks. DM me to summon!",
				user.FirstName, user.ID),
			tele.ModeMarkdown,
		)
	}

	userRepo := repository.NewUserRepository()
	record, err := userRepo.EnsureExists(user.ID, user.Username, user.FirstName, cfg.Game.InitialCoins)
	if err != nil {
		logger.Error().Err(err).Int64("tg", user.ID).Msg("创建用户记录失败")
		return c.Send("❌ Something went wrong, please try again later")
	}

	isAdmin := cfg.IsAdmin(user.ID)

	text := fmt.Sprintf(
		"**✨ Welcome to the collector's lounge!**\n\n"+
			"**· 🆔 ID** | `%d`\n"+
			"**· 💰 Coins** | %d\n"+
			"**· 🎲 Total summons** | %d\n\n"+
			"__Pick an option below__ 👇",
		user.ID,
		record.Coins,
		record.TotalSummons,
	)
	keyboard := keyboards.StartPanelKeyboard(isAdmin)

	if cfg.BotPhoto != "" {
		photo := &tele.Photo{File: tele.FromURL(cfg.BotPhoto)}
		photo.Caption = text
		return c.Send(photo, keyboard, tele.ModeMarkdown)
	}

	return c.Send(text, keyboard, tele.ModeMarkdown)
}

// Help /help 命令处理器
func Help(c tele.Context) error {
	text := "**🌸 Waifu Collector**\n\n" +
		"**In groups:**\n" +
		"`/catch` — claim a dropped character\n" +
		"`/setmode <waifu|husbando>` — what drops here (group admins)\n" +
		"`/setlimit <n>` — messages per drop (group admins)\n\n" +
		"**Anywhere:**\n" +
		"`/summon` — spend coins on a random character\n" +
		"`/daily` — claim your daily coins\n" +
		"`/mycollection` — browse what you own\n" +
		"`/search <name>` — look up characters\n" +
		"`/trade <your#> <their#>` — reply to someone to propose a swap\n" +
		"`/trades` — your pending trades\n" +
		"`/history` — your past trades\n" +
		"`/top` — top collectors"
	return c.Send(text, tele.ModeMarkdown)
}

// Profile /profile 命令与回调
func Profile(c tele.Context) error {
	profile, err := collectionSvc.GetProfile(c.Sender().ID)
	if err != nil {
		return respond(c, "❌ No account yet — send /start first")
	}

	text := fmt.Sprintf(
		"**👤 %s**\n\n"+
			"**· 💰 Coins** | %d\n"+
			"**· 📦 Characters** | %d unique, %d total\n"+
			"**· 🎲 Summons** | %d",
		profile.User.DisplayName(),
		profile.User.Coins,
		profile.Distinct, profile.Total,
		profile.User.TotalSummons,
	)
	return respond(c, text, keyboards.CloseKeyboard(), tele.ModeMarkdown)
}

// respond 命令直接回复，回调则改写原消息
func respond(c tele.Context, what interface{}, opts ...interface{}) error {
	if c.Callback() != nil {
		if err := c.Edit(what, opts...); err == nil {
			return nil
		}
		// 原消息是图片说明等不可改写时退回发送
	}
	return c.Send(what, opts...)
}
