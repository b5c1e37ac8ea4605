// Package service 交易服务
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/smysle/waifu-collector-go/internal/database"
	"github.com/smysle/waifu-collector-go/internal/database/models"
	"github.com/smysle/waifu-collector-go/internal/database/repository"
	"github.com/smysle/waifu-collector-go/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrSelfTrade       = errors.New("不能和自己交易")
	ErrTradeNotFound   = errors.New("交易不存在")
	ErrTradeNotPending = errors.New("交易已处理")
	ErrNotRecipient    = errors.New("只有接收方可以处理这笔交易")
	ErrNotProposer     = errors.New("只有发起方可以撤回这笔交易")
	ErrNotOwned        = errors.New("对应角色不在收藏中")
)

// TradeService 交易服务
// 交换式交易：双方各出一个角色，接受时在一个事务里互换
type TradeService struct {
	tradeRepo *repository.TradeRepository
	ownRepo   *repository.OwnershipRepository
	charRepo  *repository.CharacterRepository
}

// NewTradeService 创建交易服务
func NewTradeService() *TradeService {
	return &TradeService{
		tradeRepo: repository.NewTradeRepository(),
		ownRepo:   repository.NewOwnershipRepository(),
		charRepo:  repository.NewCharacterRepository(),
	}
}

// Propose 发起交易，提案时双方持有都要验证
func (s *TradeService) Propose(fromTG, toTG int64, fromCharID, toCharID uint) (*models.Trade, error) {
	if fromTG == toTG {
		return nil, ErrSelfTrade
	}

	if _, err := s.ownRepo.GetByUserAndCharacter(fromTG, fromCharID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("你%w", ErrNotOwned)
		}
		return nil, err
	}
	if _, err := s.ownRepo.GetByUserAndCharacter(toTG, toCharID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("对方%w", ErrNotOwned)
		}
		return nil, err
	}

	trade := &models.Trade{
		UUID:            uuid.New().String(),
		FromTG:          fromTG,
		ToTG:            toTG,
		FromCharacterID: fromCharID,
		ToCharacterID:   toCharID,
		Status:          models.TradePending,
		CreatedAt:       time.Now(),
	}
	if err := s.tradeRepo.Create(trade); err != nil {
		return nil, fmt.Errorf("创建交易失败: %w", err)
	}

	logger.Info().
		Str("uuid", trade.UUID).
		Int64("from", fromTG).
		Int64("to", toTG).
		Msg("交易已发起")

	return s.tradeRepo.GetByID(trade.ID)
}

// Accept 接受交易，角色互换在单个事务内完成
func (s *TradeService) Accept(tradeID uint, userTG int64) (*models.Trade, error) {
	trade, err := s.tradeRepo.GetByID(tradeID)
	if err != nil {
		return nil, ErrTradeNotFound
	}
	if !trade.IsPending() {
		return nil, ErrTradeNotPending
	}
	if !trade.CanAccept(userTG) {
		return nil, ErrNotRecipient
	}

	// 接受时重新验证，提案之后持有可能已经变动
	if _, err := s.ownRepo.GetByUserAndCharacter(trade.FromTG, trade.FromCharacterID); err != nil {
		return nil, fmt.Errorf("发起方%w", ErrNotOwned)
	}
	if _, err := s.ownRepo.GetByUserAndCharacter(trade.ToTG, trade.ToCharacterID); err != nil {
		return nil, fmt.Errorf("你%w", ErrNotOwned)
	}

	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := s.ownRepo.MoveCopy(tx, trade.FromTG, trade.ToTG, trade.FromCharacterID); err != nil {
			return err
		}
		if err := s.ownRepo.MoveCopy(tx, trade.ToTG, trade.FromTG, trade.ToCharacterID); err != nil {
			return err
		}
		return s.tradeRepo.UpdateStatus(tx, trade.ID, models.TradeAccepted)
	})
	if err != nil {
		return nil, fmt.Errorf("交易执行失败: %w", err)
	}

	logger.Info().
		Str("uuid", trade.UUID).
		Int64("from", trade.FromTG).
		Int64("to", trade.ToTG).
		Msg("交易完成")

	return s.tradeRepo.GetByID(trade.ID)
}

// Reject 拒绝交易，仅接收方可操作
func (s *TradeService) Reject(tradeID uint, userTG int64) (*models.Trade, error) {
	trade, err := s.tradeRepo.GetByID(tradeID)
	if err != nil {
		return nil, ErrTradeNotFound
	}
	if !trade.IsPending() {
		return nil, ErrTradeNotPending
	}
	if !trade.CanReject(userTG) {
		return nil, ErrNotRecipient
	}

	if err := s.tradeRepo.UpdateStatus(nil, trade.ID, models.TradeRejected); err != nil {
		return nil, err
	}

	logger.Info().Str("uuid", trade.UUID).Int64("by", userTG).Msg("交易被拒绝")
	return s.tradeRepo.GetByID(trade.ID)
}

// Cancel 撤回交易，仅发起方可操作
func (s *TradeService) Cancel(tradeID uint, userTG int64) (*models.Trade, error) {
	trade, err := s.tradeRepo.GetByID(tradeID)
	if err != nil {
		return nil, ErrTradeNotFound
	}
	if !trade.IsPending() {
		return nil, ErrTradeNotPending
	}
	if !trade.CanCancel(userTG) {
		return nil, ErrNotProposer
	}

	if err := s.tradeRepo.UpdateStatus(nil, trade.ID, models.TradeCancelled); err != nil {
		return nil, err
	}

	logger.Info().Str("uuid", trade.UUID).Int64("by", userTG).Msg("交易被撤回")
	return s.tradeRepo.GetByID(trade.ID)
}

// Pending 用户相关的待处理交易
func (s *TradeService) Pending(userTG int64) ([]models.Trade, error) {
	return s.tradeRepo.PendingForUser(userTG)
}

// History 用户交易历史
func (s *TradeService) History(userTG int64, limit int) ([]models.Trade, error) {
	return s.tradeRepo.HistoryForUser(userTG, limit)
}
