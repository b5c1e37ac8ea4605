// Package web Web API 服务
package web

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"github.com/smysle/waifu-collector-go/internal/database/repository"
	pkglogger "github.com/smysle/waifu-collector-go/pkg/logger"
)

// Server 只读 Web API 服务器
type Server struct {
	app       *fiber.App
	cfg       *config.APIConfig
	startTime time.Time
}

// New 创建 Web 服务器
func New(cfg *config.APIConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	origins := "*"
	if len(cfg.AllowOrigins) > 0 {
		origins = strings.Join(cfg.AllowOrigins, ",")
	}

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	server := &Server{
		app:       app,
		cfg:       cfg,
		startTime: time.Now(),
	}

	server.registerRoutes()

	return server
}

// registerRoutes 注册路由
func (s *Server) registerRoutes() {
	s.app.Get("/health", s.healthCheck)
	s.app.Get("/", s.healthCheck)
	s.app.Get("/status", s.detailedStatus)

	v1 := s.app.Group("/api/v1")

	v1.Get("/characters", s.listCharacters)
	v1.Get("/characters/:id", s.getCharacter)
	v1.Get("/user/:id/collection", s.getCollection)
	v1.Get("/leaderboard", s.getLeaderboard)
	v1.Get("/stats", s.getStats)
}

// Start 启动服务器
func (s *Server) Start() error {
	if !s.cfg.Enabled {
		pkglogger.Info().Msg("【API服务】未启用，跳过...")
		return nil
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	pkglogger.Info().Str("addr", addr).Msg("【API服务】启动中...")

	return s.app.Listen(addr)
}

// Stop 停止服务器
func (s *Server) Stop() error {
	return s.app.Shutdown()
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

// healthCheck 健康检查
func (s *Server) healthCheck(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
	})
}

// detailedStatus 详细状态
func (s *Server) detailedStatus(c *fiber.Ctx) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return c.JSON(fiber.Map{
		"status":     "ok",
		"uptime":     time.Since(s.startTime).Round(time.Second).String(),
		"goroutines": runtime.NumGoroutine(),
		"memory_mb":  m.Alloc / 1024 / 1024,
	})
}

// listCharacters 角色目录（分页）
func (s *Server) listCharacters(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	const pageSize = 50

	charRepo := repository.NewCharacterRepository()
	characters, err := charRepo.List(pageSize, (page-1)*pageSize)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "query failed")
	}
	total, _ := charRepo.Count()

	return c.JSON(fiber.Map{
		"page":       page,
		"page_size":  pageSize,
		"total":      total,
		"characters": characters,
	})
}

// getCharacter 单个角色
func (s *Server) getCharacter(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid character id")
	}

	charRepo := repository.NewCharacterRepository()
	character, err := charRepo.GetByID(uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "character not found")
	}

	return c.JSON(character)
}

// getCollection 用户收藏
func (s *Server) getCollection(c *fiber.Ctx) error {
	tg, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	const pageSize = 50

	ownRepo := repository.NewOwnershipRepository()
	items, err := ownRepo.GetCollection(tg, pageSize, (page-1)*pageSize)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "query failed")
	}
	distinct, _ := ownRepo.CountDistinct(tg)
	total, _ := ownRepo.CountTotal(tg)

	return c.JSON(fiber.Map{
		"user":     tg,
		"page":     page,
		"distinct": distinct,
		"total":    total,
		"items":    items,
	})
}

// getLeaderboard 收藏排行
func (s *Server) getLeaderboard(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	ownRepo := repository.NewOwnershipRepository()
	rows, err := ownRepo.TopCollectors(limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "query failed")
	}

	return c.JSON(fiber.Map{"leaderboard": rows})
}

// getStats 全局统计
func (s *Server) getStats(c *fiber.Ctx) error {
	userRepo := repository.NewUserRepository()
	groupRepo := repository.NewGroupRepository()
	charRepo := repository.NewCharacterRepository()
	tradeRepo := repository.NewTradeRepository()

	users, _ := userRepo.Count()
	groups, _ := groupRepo.Count()
	characters, _ := charRepo.Count()
	byRarity, _ := charRepo.CountByRarity()
	completed, _ := tradeRepo.CountByStatus(models.TradeAccepted)

	rarities := make(map[string]int64, len(byRarity))
	for r, n := range byRarity {
		rarities[string(r)] = n
	}

	return c.JSON(fiber.Map{
		"users":            users,
		"groups":           groups,
		"characters":       characters,
		"by_rarity":        rarities,
		"trades_completed": completed,
	})
}
