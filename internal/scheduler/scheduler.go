// Package scheduler 定时任务调度
package scheduler

import (
	"bytes"
	"time"

	"github.com/go-co-op/gocron"
	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/bot/handlers"
	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/internal/service"
	"github.com/smysle/waifu-collector-go/pkg/imggen"
	"github.com/smysle/waifu-collector-go/pkg/logger"
)

// Scheduler 定时任务调度器
type Scheduler struct {
	cron *gocron.Scheduler
	cfg  *config.Config
	bot  *tele.Bot
}

var instance *Scheduler

// New 创建调度器
func New(cfg *config.Config) *Scheduler {
	s := gocron.NewScheduler(time.Local)
	s.SetMaxConcurrentJobs(5, gocron.RescheduleMode)

	instance = &Scheduler{
		cron: s,
		cfg:  cfg,
	}

	return instance
}

// Get 获取调度器实例
func Get() *Scheduler {
	return instance
}

// SetBot 设置 Bot 实例（用于发送消息）
func (s *Scheduler) SetBot(bot *tele.Bot) {
	s.bot = bot
}

// Start 启动调度器
func (s *Scheduler) Start() {
	logger.Info().Msg("启动定时任务调度器")

	s.registerJobs()
	s.cron.StartAsync()
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	logger.Info().Msg("停止定时任务调度器")
	s.cron.Stop()
}

// registerJobs 注册所有定时任务
func (s *Scheduler) registerJobs() {
	cfg := s.cfg.Scheduler

	// 掉落清扫 - 每分钟，兜底处理定时器丢失的过期掉落
	if cfg.DropSweep {
		s.cron.Every(1).Minute().Do(s.sweepDrops)
		logger.Info().Msg("已注册: 掉落清扫任务 (每分钟)")
	}

	// 收藏排行榜推送 - 每天晚上 21 点
	if cfg.DailyLeaderboard {
		s.cron.Every(1).Day().At("21:00").Do(s.pushLeaderboard)
		logger.Info().Msg("已注册: 排行榜推送任务 (每天 21:00)")
	}

	// 数据库备份 - 每天凌晨 3 点
	if cfg.BackupDB {
		s.cron.Every(1).Day().At("03:00").Do(s.backupDatabase)
		logger.Info().Msg("已注册: 数据库备份任务 (每天 03:00)")
	}
}

// sweepDrops 清扫过期掉落
func (s *Scheduler) sweepDrops() {
	drops := handlers.Drops()
	if drops == nil {
		return
	}
	drops.SweepExpired()
}

// pushLeaderboard 向配置的群组推送收藏排行榜
func (s *Scheduler) pushLeaderboard() {
	logger.Info().Msg("执行定时任务: 排行榜推送")

	if s.bot == nil {
		logger.Error().Msg("Bot 未设置，无法推送排行榜")
		return
	}
	if len(s.cfg.Groups) == 0 {
		logger.Warn().Msg("未配置群组，跳过排行榜推送")
		return
	}

	collections := handlers.Collections()
	if collections == nil {
		return
	}

	entries, err := collections.TopCollectors(10)
	if err != nil {
		logger.Error().Err(err).Msg("读取排行榜失败")
		return
	}
	if len(entries) == 0 {
		return
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
		Subtitle:    "daily standings",
		Items:       items,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		logger.Error().Err(err).Msg("排行榜图片生成失败")
		return
	}

	for _, chatID := range s.cfg.Groups {
		photo := &tele.Photo{File: tele.FromReader(bytes.NewReader(img))}
		photo.Caption = "🏆 Today's top collectors"
		chat := &tele.Chat{ID: chatID}
		if _, err := s.bot.Send(chat, photo); err != nil {
			logger.Warn().Err(err).Int64("chat", chatID).Msg("推送排行榜失败")
		}
	}
}

// backupDatabase 备份数据库
func (s *Scheduler) backupDatabase() {
	logger.Info().Msg("执行定时任务: 数据库备份")

	backupSvc := service.NewBackupService()

	result, err := backupSvc.Backup(true)
	if err != nil {
		logger.Error().Err(err).Msg("定时备份失败")
		return
	}

	logger.Info().
		Str("file", result.Filename).
		Int64("size", result.Size).
		Int("records", result.Records).
		Msg("定时备份完成")

	deleted, err := backupSvc.CleanOldBackups(s.cfg.Database.BackupMaxCount)
	if err != nil {
		logger.Warn().Err(err).Msg("清理旧备份失败")
	} else if deleted > 0 {
		logger.Info().Int("deleted", deleted).Msg("已清理旧备份")
	}
}

// RunNow 立即执行指定任务（用于调试）
func (s *Scheduler) RunNow(taskName string) {
	switch taskName {
	case "sweep":
		s.sweepDrops()
	case "leaderboard":
		s.pushLeaderboard()
	case "backup":
		s.backupDatabase()
	default:
		logger.Warn().Str("task", taskName).Msg("未知任务")
	}
}
