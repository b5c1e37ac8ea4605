// Package handlers 召唤与每日奖励
package handlers

import (
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/bot/keyboards"
	"github.com/smysle/waifu-collector-go/internal/service"
)

// Summon /summon 命令与回调
func Summon(c tele.Context) error {
	result, err := gachaSvc.Summon(c.Sender().ID)
	if err != nil {
		return respond(c, summonErrText(err))
	}

	badge := ""
	if result.IsNew {
		badge = "\n🆕 **New to your collection!**"
	} else {
		badge = fmt.Sprintf("\n📦 You now own **x%d**", result.Count)
	}

	text := fmt.Sprintf(
		"🎲 **Summon result** (-%d coins)\n\n%s%s\n\n💰 Coins left: %d",
		result.CostPaid,
		result.Character.Card(),
		badge,
		result.CoinsLeft,
	)

	if result.Character.HasImage() {
		photo := characterPhoto(result.Character)
		photo.Caption = text
		return c.Send(photo, keyboards.SummonResultKeyboard(), tele.ModeMarkdown)
	}
	return respond(c, text, keyboards.SummonResultKeyboard(), tele.ModeMarkdown)
}

// MultiSummon 连抽命令与回调
func MultiSummon(c tele.Context) error {
	result, err := gachaSvc.MultiSummon(c.Sender().ID)
	if err != nil {
		return respond(c, summonErrText(err))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎰 **Multi summon** (-%d coins)\n\n", result.CostPaid)
	for i, r := range result.Results {
		marker := ""
		if r.IsNew {
			marker = " 🆕"
		}
		fmt.Fprintf(&sb, "%d. %s **%s** · %s%s\n",
			i+1, r.Character.Rarity.Emoji(), r.Character.Name, r.Character.Series, marker)
	}
	fmt.Fprintf(&sb, "\n✨ %d new · 💰 %d coins left", result.NewCount, result.CoinsLeft)

	return respond(c, sb.String(), keyboards.SummonResultKeyboard(), tele.ModeMarkdown)
}

// Daily /daily 命令与回调
func Daily(c tele.Context) error {
	result, err := rewardSvc.ClaimDaily(c.Sender().ID)
	if err != nil {
		if errors.Is(err, service.ErrDailyAlreadyClaimed) {
			remain, rerr := rewardSvc.TimeUntilNext(c.Sender().ID)
			if rerr == nil && remain != "" {
				return respond(c, fmt.Sprintf("⏳ Already claimed — come back in %s", remain))
			}
			return respond(c, "⏳ Already claimed today")
		}
		if errors.Is(err, service.ErrUserNotFound) {
			return respond(c, "❌ No account yet — send /start first")
		}
		return respond(c, "❌ Something went wrong, please try again later")
	}

	return respond(c, fmt.Sprintf(
		"🎁 **Daily reward claimed!**\n\n+%d coins · balance %d",
		result.Reward, result.CoinsLeft,
	), tele.ModeMarkdown)
}

// summonErrText 召唤错误转用户提示
func summonErrText(err error) string {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return "❌ No account yet — send /start first"
	case errors.Is(err, service.ErrInsufficientCoins):
		return "💸 Not enough coins — try /daily or catch drops in groups"
	case errors.Is(err, service.ErrNoCharacters):
		return "📭 The catalog is empty, ask an admin to /addchar"
	default:
		return "❌ Something went wrong, please try again later"
	}
}
