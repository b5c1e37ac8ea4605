// Package middleware Bot 中间件
package middleware

import (
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/internal/database/repository"
	"github.com/smysle/waifu-collector-go/pkg/logger"
	"github.com/smysle/waifu-collector-go/pkg/utils"
)

// Logger 日志中间件
func Logger() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user != nil {
				logger.Debug().
					Int64("user_id", user.ID).
					Str("username", user.Username).
					Str("text", c.Text()).
					Msg("收到消息")
			}
			return next(c)
		}
	}
}

// Recover 恢复中间件
func Recover() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			defer func() {
				if r := recover(); r != nil {
					logger.Error().
						Interface("panic", r).
						Str("stack", string(debug.Stack())).
						Msg("处理器 panic")

					c.Send("❌ Something went wrong, please try again later")
				}
			}()
			return next(c)
		}
	}
}

// BannedCheck 封禁检查中间件，封禁用户的所有更新静默丢弃
// 结果缓存 1 分钟，避免每条消息都查库
func BannedCheck() tele.MiddlewareFunc {
	accessRepo := repository.NewAccessRepository()

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}

			cacheKey := "banned:" + strconv.FormatInt(user.ID, 10)
			if cached, ok := utils.CacheGet(cacheKey); ok {
				if cached.(bool) {
					return nil
				}
				return next(c)
			}

			banned, err := accessRepo.IsBanned(user.ID)
			if err != nil {
				logger.Warn().Err(err).Int64("tg", user.ID).Msg("封禁查询失败")
				return next(c)
			}
			utils.CacheSet(cacheKey, banned, utils.BanCacheTTL)

			if banned {
				logger.Debug().Int64("tg", user.ID).Msg("封禁用户消息已忽略")
				return nil
			}
			return next(c)
		}
	}
}

// AdminOnly 管理员权限中间件
func AdminOnly() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			cfg := config.Get()
			if cfg == nil {
				return c.Send("❌ Config not loaded")
			}

			user := c.Sender()
			if user == nil {
				return c.Send("❌ Cannot identify sender")
			}

			if !cfg.IsAdmin(user.ID) {
				return c.Send("❌ You are not allowed to do that")
			}

			return next(c)
		}
	}
}

// OwnerOnly Owner 权限中间件
func OwnerOnly() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			cfg := config.Get()
			if cfg == nil {
				return c.Send("❌ Config not loaded")
			}

			user := c.Sender()
			if user == nil {
				return c.Send("❌ Cannot identify sender")
			}

			if !cfg.IsOwner(user.ID) {
				return c.Send("❌ Owner only")
			}

			return next(c)
		}
	}
}

// GroupOnly 群组中间件
func GroupOnly() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if chat == nil || (chat.Type != tele.ChatGroup && chat.Type != tele.ChatSuperGroup) {
				return c.Send("❌ This command only works in groups")
			}
			return next(c)
		}
	}
}

// PrivateOnly 私聊中间件
func PrivateOnly() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if chat == nil || chat.Type != tele.ChatPrivate {
				return c.Send("❌ This command only works in private chat")
			}
			return next(c)
		}
	}
}

// GroupAdminOnly 群管理员中间件，群设置命令用
// Bot 管理员和 Owner 在任何群都放行
func GroupAdminOnly() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			cfg := config.Get()
			user := c.Sender()
			chat := c.Chat()
			if user == nil || chat == nil {
				return c.Send("❌ Cannot identify sender")
			}

			if cfg != nil && cfg.IsAdmin(user.ID) {
				return next(c)
			}

			member, err := c.Bot().ChatMemberOf(chat, user)
			if err != nil {
				logger.Warn().Err(err).Int64("chat", chat.ID).Msg("查询群成员失败")
				return c.Send("❌ Could not verify group admin rights")
			}
			if member.Role != tele.Administrator && member.Role != tele.Creator {
				return c.Send("❌ Group admins only")
			}
			return next(c)
		}
	}
}

// rateLimitEntry 速率限制条目
type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// rateLimiter 速率限制器
type rateLimiter struct {
	mu        sync.RWMutex
	entries   map[int64]*rateLimitEntry
	limit     int
	window    time.Duration
	lastClean time.Time
}

func newRateLimiter(requestsPerMinute int) *rateLimiter {
	return &rateLimiter{
		entries:   make(map[int64]*rateLimitEntry),
		limit:     requestsPerMinute,
		window:    time.Minute,
		lastClean: time.Now(),
	}
}

func (rl *rateLimiter) allow(userID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	if now.Sub(rl.lastClean) > 5*time.Minute {
		for id, entry := range rl.entries {
			if now.After(entry.resetTime) {
				delete(rl.entries, id)
			}
		}
		rl.lastClean = now
	}

	entry, exists := rl.entries[userID]
	if !exists || now.After(entry.resetTime) {
		rl.entries[userID] = &rateLimitEntry{
			count:     1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if entry.count >= rl.limit {
		return false
	}

	entry.count++
	return true
}

// RateLimit 速率限制中间件，管理员不受限
func RateLimit(requestsPerMinute int) tele.MiddlewareFunc {
	limiter := newRateLimiter(requestsPerMinute)

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}

			cfg := config.Get()
			if cfg != nil && cfg.IsAdmin(user.ID) {
				return next(c)
			}

			if !limiter.allow(user.ID) {
				logger.Warn().
					Int64("user_id", user.ID).
					Int("limit", requestsPerMinute).
					Msg("用户触发速率限制")

				return c.Send("⏳ Slow down, try again in a bit")
			}

			return next(c)
		}
	}
}
