// Package service 认领服务
package service

import (
	"errors"
	"fmt"

	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"github.com/smysle/waifu-collector-go/internal/database/repository"
	"github.com/smysle/waifu-collector-go/pkg/fuzzy"
	"github.com/smysle/waifu-collector-go/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrNameMismatch   = errors.New("名字不对，再想想")
	ErrAlreadyClaimed = errors.New("晚了一步，已被别人抢走")
)

// CatchResult 认领结果
type CatchResult struct {
	Character  *models.Character
	Count      int     // 认领后持有份数
	IsNew      bool    // 是否首次获得
	Similarity float64 // 名字相似度，/catch 直接认领时为 1
	MessageID  int     // 掉落消息 ID，认领后用于改写
}

// ClaimService 认领服务
type ClaimService struct {
	userRepo *repository.UserRepository
	dropRepo *repository.DropRepository
	ownRepo  *repository.OwnershipRepository
	drops    *DropService
	cfg      *config.Config
}

// NewClaimService 创建认领服务
func NewClaimService(drops *DropService) *ClaimService {
	return &ClaimService{
		userRepo: repository.NewUserRepository(),
		dropRepo: repository.NewDropRepository(),
		ownRepo:  repository.NewOwnershipRepository(),
		drops:    drops,
		cfg:      config.Get(),
	}
}

// Claim /catch 命令直接认领当前掉落，不做名字校验
func (s *ClaimService) Claim(chatID, userTG int64, username, firstName string) (*CatchResult, error) {
	drop, err := s.drops.GetActive(chatID)
	if err != nil {
		return nil, err
	}
	return s.commit(drop, chatID, userTG, username, firstName, 1)
}

// CatchByName 报名字认领，相似度达到阈值才算数
// 群聊普通消息顺带认领走这条路径
func (s *ClaimService) CatchByName(chatID, userTG int64, username, firstName, guess string) (*CatchResult, error) {
	drop, err := s.drops.GetActive(chatID)
	if err != nil {
		return nil, err
	}

	sim, ok := nameMatch(guess, drop.Character.Name, s.cfg.Game.CatchThreshold)
	if !ok {
		logger.Debug().
			Int64("chat", chatID).
			Int64("tg", userTG).
			Float64("similarity", sim).
			Msg("认领名字不匹配")
		return nil, ErrNameMismatch
	}
	return s.commit(drop, chatID, userTG, username, firstName, sim)
}

// nameMatch 名字相似度与是否达标（含边界）
func nameMatch(guess, name string, threshold float64) (float64, bool) {
	if guess == "" {
		return 0, false
	}
	sim := fuzzy.Similarity(guess, name)
	return sim, sim >= threshold
}

// commit 条件删除掉落记录决定并发胜负，赢者入库
func (s *ClaimService) commit(drop *models.Drop, chatID, userTG int64, username, firstName string, sim float64) (*CatchResult, error) {
	won, err := s.dropRepo.ClaimDelete(chatID, drop.CharacterID)
	if err != nil {
		return nil, fmt.Errorf("认领失败: %w", err)
	}
	if !won {
		return nil, ErrAlreadyClaimed
	}

	s.drops.CancelTimer(chatID)

	if _, err := s.userRepo.EnsureExists(userTG, username, firstName, s.cfg.Game.InitialCoins); err != nil {
		return nil, fmt.Errorf("初始化用户失败: %w", err)
	}

	count, err := s.ownRepo.AddCopy(userTG, drop.CharacterID)
	if err != nil {
		return nil, fmt.Errorf("入库失败: %w", err)
	}

	logger.Info().
		Int64("chat", chatID).
		Int64("tg", userTG).
		Uint("character", drop.CharacterID).
		Float64("similarity", sim).
		Msg("掉落被认领")

	return &CatchResult{
		Character:  drop.Character,
		Count:      count,
		IsNew:      count == 1,
		Similarity: sim,
		MessageID:  drop.MessageID,
	}, nil
}

// TryAmbientCatch 普通消息顺带尝试认领
// 没有掉落或名字不匹配都静默放过，只有真认领成功才返回结果
func (s *ClaimService) TryAmbientCatch(chatID, userTG int64, username, firstName, text string) (*CatchResult, bool) {
	if text == "" {
		return nil, false
	}

	result, err := s.CatchByName(chatID, userTG, username, firstName, text)
	if err != nil {
		if errors.Is(err, ErrNoDropActive) ||
			errors.Is(err, ErrNameMismatch) ||
			errors.Is(err, ErrAlreadyClaimed) ||
			errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false
		}
		logger.Error().Err(err).Int64("chat", chatID).Msg("顺带认领出错")
		return nil, false
	}
	return result, true
}
