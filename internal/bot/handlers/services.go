// Package handlers Bot 命令处理器
package handlers

import (
	"sync"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/service"
	"github.com/smysle/waifu-collector-go/pkg/logger"
)

// 掉落定时器跨消息共享，服务在这里做成单例
var (
	initOnce sync.Once

	dropSvc       *service.DropService
	claimSvc      *service.ClaimService
	gachaSvc      *service.GachaService
	tradeSvc      *service.TradeService
	rewardSvc     *service.RewardService
	collectionSvc *service.CollectionService
	characterSvc  *service.CharacterService
)

// Init 初始化处理器共享服务，注册掉落超时回调并恢复定时器
func Init(bot *tele.Bot) {
	initOnce.Do(func() {
		dropSvc = service.NewDropService()
		claimSvc = service.NewClaimService(dropSvc)
		gachaSvc = service.NewGachaService()
		tradeSvc = service.NewTradeService()
		rewardSvc = service.NewRewardService()
		collectionSvc = service.NewCollectionService()
		characterSvc = service.NewCharacterService()

		dropSvc.SetExpireFunc(func(chatID int64, messageID int) {
			chat := &tele.Chat{ID: chatID}
			msg := &tele.Message{ID: messageID, Chat: chat}
			if _, err := bot.Edit(msg, "💨 The character ran away... keep chatting for the next one!"); err != nil {
				logger.Debug().Err(err).Int64("chat", chatID).Msg("改写超时掉落消息失败")
			}
		})

		if err := dropSvc.RestoreTimers(); err != nil {
			logger.Error().Err(err).Msg("恢复掉落定时器失败")
		}
	})
}

// Drops 掉落服务（调度器清扫任务用）
func Drops() *service.DropService {
	return dropSvc
}

// Collections 收藏服务（排行榜任务用）
func Collections() *service.CollectionService {
	return collectionSvc
}
