// Package service 召唤服务
package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/smysle/waifu-collector-go/internal/config"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"github.com/smysle/waifu-collector-go/internal/database/repository"
	"github.com/smysle/waifu-collector-go/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("用户不存在，请先 /start 初始化账户")
	ErrInsufficientCoins = errors.New("金币不足")
	ErrNoCharacters      = errors.New("角色目录为空")
)

// SummonResult 单次召唤结果
type SummonResult struct {
	Character *models.Character
	Count     int  // 召唤后持有份数
	IsNew     bool // 是否首次获得
	CoinsLeft int  // 剩余金币
	CostPaid  int  // 本次消耗
}

// MultiSummonResult 十连式多次召唤结果
type MultiSummonResult struct {
	Results   []*SummonResult
	NewCount  int // 其中首次获得的数量
	CoinsLeft int
	CostPaid  int
}

// GachaService 召唤服务
type GachaService struct {
	userRepo *repository.UserRepository
	charRepo *repository.CharacterRepository
	ownRepo  *repository.OwnershipRepository
	cfg      *config.Config
	mu       sync.Mutex
	rng      *rand.Rand
}

// NewGachaService 创建召唤服务
func NewGachaService() *GachaService {
	return &GachaService{
		userRepo: repository.NewUserRepository(),
		charRepo: repository.NewCharacterRepository(),
		ownRepo:  repository.NewOwnershipRepository(),
		cfg:      config.Get(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// DrawRarity 按权重抽取稀有度
// 权重表里缺失或非正的稀有度不参与抽取
func DrawRarity(rng *rand.Rand, weights map[string]int) models.Rarity {
	total := 0
	for _, r := range models.Rarities {
		if w := weights[string(r)]; w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return models.RarityCommon
	}

	roll := rng.Intn(total)
	for _, r := range models.Rarities {
		w := weights[string(r)]
		if w <= 0 {
			continue
		}
		if roll < w {
			return r
		}
		roll -= w
	}
	return models.RarityCommon
}

// Summon 执行一次召唤
func (s *GachaService) Summon(tgID int64) (*SummonResult, error) {
	user, err := s.userRepo.GetByTG(tgID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	cost := s.cfg.Game.SummonCost
	if !user.CanAfford(cost) {
		return nil, ErrInsufficientCoins
	}

	// 先扣费再抽取，抽取失败回滚
	if err := s.userRepo.AddCoins(tgID, -cost); err != nil {
		return nil, fmt.Errorf("扣除金币失败: %w", err)
	}

	character, err := s.drawCharacter()
	if err != nil {
		s.userRepo.AddCoins(tgID, cost)
		return nil, err
	}

	count, err := s.ownRepo.AddCopy(tgID, character.ID)
	if err != nil {
		s.userRepo.AddCoins(tgID, cost)
		return nil, fmt.Errorf("入库失败: %w", err)
	}

	s.userRepo.IncrementSummons(tgID)

	logger.Info().
		Int64("tg", tgID).
		Uint("character", character.ID).
		Str("rarity", string(character.Rarity)).
		Msg("召唤成功")

	return &SummonResult{
		Character: character,
		Count:     count,
		IsNew:     count == 1,
		CoinsLeft: user.Coins - cost,
		CostPaid:  cost,
	}, nil
}

// MultiSummon 连续多次召唤，一次性扣费
func (s *GachaService) MultiSummon(tgID int64) (*MultiSummonResult, error) {
	user, err := s.userRepo.GetByTG(tgID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	n := s.cfg.Game.MultiSummonCount
	totalCost := s.cfg.Game.SummonCost * n
	if !user.CanAfford(totalCost) {
		return nil, ErrInsufficientCoins
	}

	if err := s.userRepo.AddCoins(tgID, -totalCost); err != nil {
		return nil, fmt.Errorf("扣除金币失败: %w", err)
	}

	results := make([]*SummonResult, 0, n)
	newCount := 0
	for i := 0; i < n; i++ {
		character, err := s.drawCharacter()
		if err != nil {
			// 未完成的次数按单价退款
			refund := s.cfg.Game.SummonCost * (n - i)
			s.userRepo.AddCoins(tgID, refund)
			if len(results) == 0 {
				return nil, err
			}
			break
		}

		count, err := s.ownRepo.AddCopy(tgID, character.ID)
		if err != nil {
			refund := s.cfg.Game.SummonCost * (n - i)
			s.userRepo.AddCoins(tgID, refund)
			break
		}

		s.userRepo.IncrementSummons(tgID)
		if count == 1 {
			newCount++
		}
		results = append(results, &SummonResult{
			Character: character,
			Count:     count,
			IsNew:     count == 1,
			CostPaid:  s.cfg.Game.SummonCost,
		})
	}

	paid := s.cfg.Game.SummonCost * len(results)
	coinsLeft := user.Coins - paid

	logger.Info().
		Int64("tg", tgID).
		Int("count", len(results)).
		Int("new", newCount).
		Msg("多次召唤完成")

	return &MultiSummonResult{
		Results:   results,
		NewCount:  newCount,
		CoinsLeft: coinsLeft,
		CostPaid:  paid,
	}, nil
}

// drawCharacter 抽取稀有度后随机选角色
// 该稀有度没有角色时向低稀有度回落
func (s *GachaService) drawCharacter() (*models.Character, error) {
	s.mu.Lock()
	rarity := DrawRarity(s.rng, s.cfg.Game.RarityWeights)
	s.mu.Unlock()

	character, err := s.charRepo.GetRandomByRarity(rarity)
	if err == nil {
		return character, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 回落：从抽中的稀有度开始往下找
	start := 0
	for i, r := range models.Rarities {
		if r == rarity {
			start = i
			break
		}
	}
	for _, r := range models.Rarities[start:] {
		if r == rarity {
			continue
		}
		character, err := s.charRepo.GetRandomByRarity(r)
		if err == nil {
			return character, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, ErrNoCharacters
}

// GrantAll 把整个角色目录发给用户，返回发放份数
// 特权用户 /giveme 用
func (s *GachaService) GrantAll(tgID int64, username, firstName string) (int, error) {
	if _, err := s.userRepo.EnsureExists(tgID, username, firstName, s.cfg.Game.InitialCoins); err != nil {
		return 0, fmt.Errorf("初始化用户失败: %w", err)
	}

	characters, err := s.charRepo.GetAll()
	if err != nil {
		return 0, err
	}
	if len(characters) == 0 {
		return 0, ErrNoCharacters
	}

	granted := 0
	for _, character := range characters {
		if _, err := s.ownRepo.AddCopy(tgID, character.ID); err != nil {
			logger.Warn().Err(err).Uint("character", character.ID).Msg("目录发放失败")
			continue
		}
		granted++
	}

	logger.Info().Int64("tg", tgID).Int("count", granted).Msg("整个目录已发放")
	return granted, nil
}

// CatalogStats 角色目录统计
type CatalogStats struct {
	Total    int64
	ByRarity map[models.Rarity]int64
}

// Stats 获取目录统计
func (s *GachaService) Stats() (*CatalogStats, error) {
	total, err := s.charRepo.Count()
	if err != nil {
		return nil, err
	}
	byRarity, err := s.charRepo.CountByRarity()
	if err != nil {
		return nil, err
	}
	return &CatalogStats{Total: total, ByRarity: byRarity}, nil
}
