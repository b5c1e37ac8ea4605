// Package handlers 收藏与排行榜
package handlers

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/bot/keyboards"
	"github.com/smysle/waifu-collector-go/internal/service"
	"github.com/smysle/waifu-collector-go/pkg/imggen"
	"github.com/smysle/waifu-collector-go/pkg/logger"
)

// MyCollection /mycollection 命令
func MyCollection(c tele.Context) error {
	return showCollectionPage(c, 1)
}

// showCollectionPage 渲染收藏指定页
func showCollectionPage(c tele.Context, page int) error {
	result, err := collectionSvc.GetPage(c.Sender().ID, page)
	if err != nil {
		logger.Error().Err(err).Int64("tg", c.Sender().ID).Msg("读取收藏失败")
		return respond(c, "❌ Something went wrong, please try again later")
	}

	if len(result.Items) == 0 {
		return respond(c, "📭 Your collection is empty — catch drops in groups or /summon!")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📦 **Your collection** — %d unique, %d total\n\n", result.Distinct, result.Total)
	for _, own := range result.Items {
		if own.Character == nil {
			continue
		}
		countTag := ""
		if own.Count > 1 {
			countTag = fmt.Sprintf(" x%d", own.Count)
		}
		fmt.Fprintf(&sb, "`#%d` %s **%s** · %s%s\n",
			own.CharacterID, own.Character.Rarity.Emoji(),
			own.Character.Name, own.Character.Series, countTag)
	}
	fmt.Fprintf(&sb, "\nPage %d/%d", result.Page, result.TotalPages)

	return respond(c, sb.String(),
		keyboards.CollectionPagination(result.Page, result.TotalPages),
		tele.ModeMarkdown)
}

// TopCollectors /top 排行榜，渲染成图片
func TopCollectors(c tele.Context) error {
	entries, err := collectionSvc.TopCollectors(10)
	if err != nil {
		logger.Error().Err(err).Msg("读取排行榜失败")
		return respond(c, "❌ Something went wrong, please try again later")
	}
	if len(entries) == 0 {
		return respond(c, "🏆 Nobody has caught anything yet — be the first!")
	}

	items := make([]imggen.RankData, 0, len(entries))
	for _, e := range entries {
		items = append(items, imggen.RankData{
			Rank:     e.Rank,
			Username: e.Name,
			Distinct: e.Distinct,
			Total:    e.Total,
		})
	}

	img, err := imggen.GenerateLeaderboard(imggen.LeaderboardConfig{
		Title:       "Top Collectors",
		Subtitle:    "by unique characters owned",
		Items:       items,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("排行榜图片生成失败，退回文本")
		return sendLeaderboardText(c, entries)
	}

	photo := &tele.Photo{File: tele.FromReader(bytes.NewReader(img))}
	photo.Caption = "🏆 Top collectors"
	return c.Send(photo, keyboards.LeaderboardPagination())
}

// sendLeaderboardText 排行榜文本兜底
func sendLeaderboardText(c tele.Context, entries []service.LeaderboardEntry) error {
	var sb strings.Builder
	sb.WriteString("🏆 **Top collectors**\n\n")
	for _, e := range entries {
		medal := fmt.Sprintf("%d.", e.Rank)
		switch e.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		fmt.Fprintf(&sb, "%s **%s** — %d unique (%d total)\n", medal, e.Name, e.Distinct, e.Total)
	}
	return respond(c, sb.String(), keyboards.LeaderboardPagination(), tele.ModeMarkdown)
}
