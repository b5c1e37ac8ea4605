// Waifu Collector - Telegram gacha collection bot
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/smysle/waifu-collector-go/internal/bot"
	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/internal/database"
	"github.com/smysle/waifu-collector-go/internal/scheduler"
	"github.com/smysle/waifu-collector-go/internal/web"
	"github.com/smysle/waifu-collector-go/pkg/logger"
)

var (
	configPath = flag.String("config", "config.json", "配置文件路径")
	debug      = flag.Bool("debug", false, "调试模式")
)

func main() {
	flag.Parse()

	logger.Init(*debug)
	logger.Info().Msg("🌸 Waifu Collector 启动中...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("加载配置失败")
	}
	config.SetConfigPath(*configPath)
	logger.Info().Msg("✅ 配置加载完成")

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal().Err(err).Msg("初始化数据库失败")
	}
	defer database.Close()
	logger.Info().Msg("✅ 数据库连接成功")

	// 初始化 Telegram Bot（掉落定时器在这里恢复）
	tgBot, err := bot.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化 Telegram Bot 失败")
	}
	logger.Info().Str("bot", cfg.BotName).Msg("✅ Telegram Bot 初始化完成")

	// 定时任务调度器
	sched := scheduler.New(cfg)
	sched.SetBot(tgBot.Bot)
	sched.Start()
	defer sched.Stop()
	logger.Info().Msg("✅ 定时任务调度器启动")

	// Web API 服务
	webServer := web.New(&cfg.API)
	go func() {
		if err := webServer.Start(); err != nil {
			logger.Error().Err(err).Msg("Web API 服务启动失败")
		}
	}()
	defer webServer.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go tgBot.Run()

	logger.Info().Msg("🚀 Waifu Collector 启动成功!")
	logger.Info().Msg("按 Ctrl+C 停止...")

	<-quit

	logger.Info().Msg("正在关闭服务...")
	tgBot.Stop()
	logger.Info().Msg("👋 再见!")
}
