// Package service 掉落服务
package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"github.com/smysle/waifu-collector-go/internal/database/repository"
	"github.com/smysle/waifu-collector-go/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrDropActive   = errors.New("本群已有待认领的掉落")
	ErrNoDropActive = errors.New("本群当前没有掉落")
)

// ExpireFunc 掉落超时回调，用于删除群里的掉落消息
type ExpireFunc func(chatID int64, messageID int)

// DropService 掉落服务
// 每个群至多一个活动掉落，超时由内存定时器与定期清扫双保险
type DropService struct {
	groupRepo *repository.GroupRepository
	charRepo  *repository.CharacterRepository
	dropRepo  *repository.DropRepository
	cfg       *config.Config

	mu       sync.Mutex
	timers   map[int64]*time.Timer
	onExpire ExpireFunc
}

// NewDropService 创建掉落服务
func NewDropService() *DropService {
	return &DropService{
		groupRepo: repository.NewGroupRepository(),
		charRepo:  repository.NewCharacterRepository(),
		dropRepo:  repository.NewDropRepository(),
		cfg:       config.Get(),
		timers:    make(map[int64]*time.Timer),
	}
}

// SetExpireFunc 注册超时回调
func (s *DropService) SetExpireFunc(fn ExpireFunc) {
	s.mu.Lock()
	s.onExpire = fn
	s.mu.Unlock()
}

// RecordMessage 群消息计数 +1，返回是否达到掉落阈值
func (s *DropService) RecordMessage(chatID int64) (*models.Group, bool, error) {
	group, err := s.groupRepo.EnsureExists(chatID, s.cfg.Game.DefaultMode, s.cfg.Game.DefaultDropLimit)
	if err != nil {
		return nil, false, err
	}

	if err := s.groupRepo.IncrementMessages(chatID); err != nil {
		return nil, false, err
	}
	group.MessageCount++

	return group, group.ShouldDrop(), nil
}

// PrepareDrop 为群组选出一个待掉落的角色
// 不论成败都把消息计数归零，避免阈值反复触发
func (s *DropService) PrepareDrop(group *models.Group) (*models.Character, error) {
	// 已有活动掉落时不再叠加
	if _, err := s.dropRepo.GetByChatID(group.ChatID); err == nil {
		s.groupRepo.ResetCounter(group.ChatID)
		return nil, ErrDropActive
	}

	character, err := s.charRepo.GetRandomByGender(group.Mode)
	if err != nil {
		s.groupRepo.ResetCounter(group.ChatID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCharacters
		}
		return nil, err
	}
	return character, nil
}

// RegisterDrop 掉落消息发出后落库并启动超时定时器
func (s *DropService) RegisterDrop(chatID int64, characterID uint, messageID int) error {
	now := time.Now()
	timeout := time.Duration(s.cfg.Game.DropTimeout) * time.Second

	drop := &models.Drop{
		ChatID:      chatID,
		CharacterID: characterID,
		MessageID:   messageID,
		CreatedAt:   now,
		ExpiresAt:   now.Add(timeout),
	}
	if err := s.dropRepo.Create(drop); err != nil {
		return fmt.Errorf("记录掉落失败: %w", err)
	}

	if err := s.groupRepo.ResetMessages(chatID, now); err != nil {
		logger.Warn().Err(err).Int64("chat", chatID).Msg("重置消息计数失败")
	}

	s.armTimer(chatID, characterID, messageID, timeout)

	logger.Info().
		Int64("chat", chatID).
		Uint("character", characterID).
		Msg("角色掉落")
	return nil
}

// armTimer 启动超时定时器，旧定时器先停
func (s *DropService) armTimer(chatID int64, characterID uint, messageID int, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[chatID]; ok {
		t.Stop()
	}
	s.timers[chatID] = time.AfterFunc(d, func() {
		s.expire(chatID, characterID, messageID)
	})
}

// CancelTimer 掉落被认领后停掉超时定时器
func (s *DropService) CancelTimer(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[chatID]; ok {
		t.Stop()
		delete(s.timers, chatID)
	}
}

// expire 掉落超时，条件删除保证和认领不会双赢
func (s *DropService) expire(chatID int64, characterID uint, messageID int) {
	s.mu.Lock()
	delete(s.timers, chatID)
	fn := s.onExpire
	s.mu.Unlock()

	won, err := s.dropRepo.ClaimDelete(chatID, characterID)
	if err != nil {
		logger.Error().Err(err).Int64("chat", chatID).Msg("清理超时掉落失败")
		return
	}
	if !won {
		// 已被认领
		return
	}

	logger.Info().Int64("chat", chatID).Uint("character", characterID).Msg("掉落超时")
	if fn != nil {
		fn(chatID, messageID)
	}
}

// GetActive 获取群组当前掉落
func (s *DropService) GetActive(chatID int64) (*models.Drop, error) {
	drop, err := s.dropRepo.GetByChatID(chatID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoDropActive
		}
		return nil, err
	}
	if drop.IsExpired(time.Now()) {
		return nil, ErrNoDropActive
	}
	return drop, nil
}

// RestoreTimers 重启后恢复所有掉落的定时器
// 已过期的直接清理
func (s *DropService) RestoreTimers() error {
	drops, err := s.dropRepo.GetAll()
	if err != nil {
		return err
	}

	now := time.Now()
	restored := 0
	for _, d := range drops {
		remain := d.ExpiresAt.Sub(now)
		if remain <= 0 {
			go s.expire(d.ChatID, d.CharacterID, d.MessageID)
			continue
		}
		s.armTimer(d.ChatID, d.CharacterID, d.MessageID, remain)
		restored++
	}

	if restored > 0 {
		logger.Info().Int("count", restored).Msg("掉落定时器已恢复")
	}
	return nil
}

// SweepExpired 定时清扫兜底，处理定时器丢失的过期掉落
func (s *DropService) SweepExpired() {
	drops, err := s.dropRepo.GetExpired(time.Now())
	if err != nil {
		logger.Error().Err(err).Msg("查询过期掉落失败")
		return
	}
	for _, d := range drops {
		s.expire(d.ChatID, d.CharacterID, d.MessageID)
	}
}
