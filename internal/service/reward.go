// Package service 每日奖励服务
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/internal/database/repository"
	"github.com/smysle/waifu-collector-go/pkg/logger"
	"github.com/smysle/waifu-collector-go/pkg/utils"
)

var ErrDailyAlreadyClaimed = errors.New("今日奖励已领取")

// DailyResult 每日奖励结果
type DailyResult struct {
	Reward    int
	CoinsLeft int
	NextAt    time.Time // 下次可领取时间
}

// RewardService 每日奖励服务
type RewardService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

// NewRewardService 创建每日奖励服务
func NewRewardService() *RewardService {
	return &RewardService{
		userRepo: repository.NewUserRepository(),
		cfg:      config.Get(),
	}
}

// ClaimDaily 领取每日奖励，间隔满 24 小时可再领
func (s *RewardService) ClaimDaily(tgID int64) (*DailyResult, error) {
	user, err := s.userRepo.GetByTG(tgID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	now := time.Now()
	if !user.CanClaimDaily(now) {
		return nil, ErrDailyAlreadyClaimed
	}

	reward := s.cfg.Game.DailyReward
	updates := map[string]interface{}{
		"coins":      user.Coins + reward,
		"last_daily": now,
	}
	if err := s.userRepo.UpdateFields(tgID, updates); err != nil {
		return nil, fmt.Errorf("发放奖励失败: %w", err)
	}

	logger.Info().Int64("tg", tgID).Int("reward", reward).Msg("每日奖励已领取")

	return &DailyResult{
		Reward:    reward,
		CoinsLeft: user.Coins + reward,
		NextAt:    now.Add(24 * time.Hour),
	}, nil
}

// TimeUntilNext 距下次可领取的剩余时间描述，可领取时返回空串
func (s *RewardService) TimeUntilNext(tgID int64) (string, error) {
	user, err := s.userRepo.GetByTG(tgID)
	if err != nil {
		return "", ErrUserNotFound
	}

	now := time.Now()
	if user.CanClaimDaily(now) {
		return "", nil
	}
	remain := user.LastDaily.Add(24 * time.Hour).Sub(now)
	return utils.FormatDuration(int64(remain.Seconds())), nil
}
